package box

import (
	"context"
	"sync"

	"github.com/matzehuels/apg/pkg/value"
)

// Task is a unit of work run on behalf of a box.
type Task func(ctx context.Context, y Yielder) error

// UpdateHandler runs after a new value has been delivered to an input plug.
type UpdateHandler func() error

// Yielder is handed to running tasks by the scheduler.
type Yielder interface {
	// Yield suspends the task so other work can run. It returns an error if
	// the run was cancelled while suspended.
	Yield() error
	// Await suspends the task until f settles and returns its result, or an
	// error if the run was cancelled first.
	Await(f *Future) (any, error)
}

// Scheduler is the program a box is attached to.
type Scheduler interface {
	// SchedulePlugUpdatesFrom delivers v to every input wired to the plug.
	SchedulePlugUpdatesFrom(boxID, plug string, v value.Value)
	// ScheduleProcessing queues t to run for the box.
	ScheduleProcessing(boxID string, t Task)
}

// Unit is implemented by *Box and by every type embedding it.
type Unit interface {
	Core() *Box
	CreateLayout() any
	Render(target any)
}

// Future is a result produced outside the scheduler, such as a timer, an
// external process or user input. It settles exactly once.
type Future struct {
	once sync.Once
	done chan struct{}
	val  any
	err  error
}

// NewFuture returns an unsettled future.
func NewFuture() *Future { return &Future{done: make(chan struct{})} }

// Resolved returns a future already settled with v.
func Resolved(v any) *Future {
	f := NewFuture()
	f.Resolve(v)
	return f
}

// Resolve settles f with v. Later calls are ignored.
func (f *Future) Resolve(v any) { f.settle(v, nil) }

// Reject settles f with err. Later calls are ignored.
func (f *Future) Reject(err error) { f.settle(nil, err) }

func (f *Future) settle(v any, err error) {
	f.once.Do(func() {
		f.val, f.err = v, err
		close(f.done)
	})
}

// Done is closed once f settles.
func (f *Future) Done() <-chan struct{} { return f.done }

// Result blocks until f settles and returns its value or error.
func (f *Future) Result() (any, error) {
	<-f.done
	return f.val, f.err
}
