package program

import "fmt"

// State is the lifecycle state of a single run of a task.
type State int

const (
	// Idle runs are queued but have not started.
	Idle State = iota
	// Running runs hold the scheduler and may write outputs.
	Running
	// Suspended runs have yielded or are awaiting a future.
	Suspended
	// Completed runs returned nil.
	Completed
	// Cancelled runs were superseded by newer work or stopped with the program.
	Cancelled
	// Failed runs returned an error or panicked.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IsTerminal reports whether the state is final.
func IsTerminal(s State) bool {
	switch s {
	case Completed, Cancelled, Failed:
		return true
	default:
		return false
	}
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case Idle:
		return to == Running
	case Running:
		return to == Suspended || to == Completed || to == Failed || to == Cancelled
	case Suspended:
		return to == Running || to == Cancelled
	default:
		return false
	}
}
