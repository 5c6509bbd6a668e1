package box

import (
	"fmt"
	"sync"

	"github.com/matzehuels/apg/pkg/value"
)

// InputPlug receives frozen values from wired outputs.
type InputPlug struct {
	name    string
	owner   *Box
	handler UpdateHandler

	mu  sync.RWMutex
	val value.Value
}

// Name returns the plug's name.
func (p *InputPlug) Name() string { return p.name }

// Owner returns the box the plug belongs to.
func (p *InputPlug) Owner() *Box { return p.owner }

// Deliver stores v and runs the update handler, returning its error.
// Only schedulers call Deliver; v must already be frozen.
func (p *InputPlug) Deliver(v value.Value) error {
	p.mu.Lock()
	p.val = v
	p.mu.Unlock()
	if p.handler == nil {
		return nil
	}
	return p.handler()
}

// Read returns the last delivered value, or nil. The value is frozen and
// shared with every other reader.
func (p *InputPlug) Read() value.Value {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.val
}

// Copy returns an unfrozen deep copy of the last delivered value.
// Returns ErrNoValue if nothing has been delivered.
func (p *InputPlug) Copy() (value.Value, error) {
	v := p.Read()
	if v == nil {
		return nil, fmt.Errorf("input %q: %w", p.name, ErrNoValue)
	}
	return v.Clone(), nil
}

// Read returns the plug's value as a T. ok is false if no value was
// delivered or it is not a T.
func Read[T value.Value](p *InputPlug) (v T, ok bool) {
	v, ok = p.Read().(T)
	return v, ok
}

// Copy returns a private mutable copy of the plug's value as a T.
func Copy[T value.Value](p *InputPlug) (T, error) {
	var zero T
	v, err := p.Copy()
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("input %q holds %T, want %T: %w", p.name, v, zero, ErrNoValue)
	}
	return t, nil
}

// OutputPlug publishes frozen snapshots to the scheduler.
type OutputPlug struct {
	name  string
	owner *Box

	mu  sync.RWMutex
	val value.Value
}

// Name returns the plug's name.
func (p *OutputPlug) Name() string { return p.name }

// Owner returns the box the plug belongs to.
func (p *OutputPlug) Owner() *Box { return p.owner }

// Write publishes a frozen deep copy of v. The caller keeps ownership of v.
//
// Returns ErrWriteOutsideProcessing, leaving the plug unchanged, if the
// owning box is not processing.
func (p *OutputPlug) Write(v value.Value) error {
	if !p.owner.Processing() {
		return fmt.Errorf("output %q: %w", p.name, ErrWriteOutsideProcessing)
	}
	snap := value.Snapshot(v)

	p.mu.Lock()
	p.val = snap
	p.mu.Unlock()

	if s := p.owner.scheduler(); s != nil {
		s.SchedulePlugUpdatesFrom(p.owner.ID(), p.name, snap)
	}
	return nil
}

// Value returns the last published snapshot, or nil.
func (p *OutputPlug) Value() value.Value {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.val
}
