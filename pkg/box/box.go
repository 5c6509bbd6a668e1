package box

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Box is the shared core of every box: plug registries, attachment state and
// the processing window. Embed *Box in concrete box types.
type Box struct {
	mu sync.Mutex

	inputs      map[string]*InputPlug
	outputs     map[string]*OutputPlug
	inputOrder  []string
	outputOrder []string

	sched    Scheduler
	id       string
	attached bool
	flushing bool // deferred tasks are being handed to sched
	deferred []Task

	processing bool
}

// New returns an unattached box with no plugs.
func New() *Box {
	return &Box{
		inputs:  make(map[string]*InputPlug),
		outputs: make(map[string]*OutputPlug),
	}
}

// Core returns b. It lets embedding types satisfy [Unit].
func (b *Box) Core() *Box { return b }

// CreateLayout returns nil. Boxes that draw themselves override it.
func (b *Box) CreateLayout() any { return nil }

// Render does nothing. Boxes that draw themselves override it.
func (b *Box) Render(target any) {}

// ID returns the id assigned at attachment, or "" before.
func (b *Box) ID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.id
}

// Attached reports whether [Box.AttachToProgram] has succeeded.
func (b *Box) Attached() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attached
}

func (b *Box) scheduler() Scheduler {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sched
}

// =============================================================================
// Plug registration
// =============================================================================

// NewInputPlug registers an input. h runs after every delivery and may be nil.
//
// Returns ErrDuplicatePlug if an input with that name exists, ErrAlreadyAttached
// after attachment.
func (b *Box) NewInputPlug(name string, h UpdateHandler) (*InputPlug, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.attached {
		return nil, fmt.Errorf("new input %q: %w", name, ErrAlreadyAttached)
	}
	if _, ok := b.inputs[name]; ok {
		return nil, fmt.Errorf("new input %q: %w", name, ErrDuplicatePlug)
	}
	p := &InputPlug{name: name, owner: b, handler: h}
	b.inputs[name] = p
	b.inputOrder = append(b.inputOrder, name)
	return p, nil
}

// NewOutputPlug registers an output.
//
// Returns ErrDuplicatePlug if an output with that name exists, ErrAlreadyAttached
// after attachment.
func (b *Box) NewOutputPlug(name string) (*OutputPlug, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.attached {
		return nil, fmt.Errorf("new output %q: %w", name, ErrAlreadyAttached)
	}
	if _, ok := b.outputs[name]; ok {
		return nil, fmt.Errorf("new output %q: %w", name, ErrDuplicatePlug)
	}
	p := &OutputPlug{name: name, owner: b}
	b.outputs[name] = p
	b.outputOrder = append(b.outputOrder, name)
	return p, nil
}

// Input returns the named input plug.
func (b *Box) Input(name string) (*InputPlug, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.inputs[name]
	return p, ok
}

// Output returns the named output plug.
func (b *Box) Output(name string) (*OutputPlug, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.outputs[name]
	return p, ok
}

// Inputs returns input names in registration order.
func (b *Box) Inputs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.inputOrder)
}

// Outputs returns output names in registration order.
func (b *Box) Outputs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.outputOrder)
}

// =============================================================================
// Scheduling
// =============================================================================

// ScheduleProcessing asks for t to run on behalf of b. Before attachment the
// task is queued on the box; after, it goes to the scheduler directly. Tasks
// scheduled while attachment is still flushing the queue join the queue, so
// the scheduler sees every task in the order it was scheduled.
func (b *Box) ScheduleProcessing(t Task) {
	b.mu.Lock()
	if !b.attached || b.flushing {
		b.deferred = append(b.deferred, t)
		b.mu.Unlock()
		return
	}
	s, id := b.sched, b.id
	b.mu.Unlock()
	s.ScheduleProcessing(id, b.bind(id, t))
}

// bind labels errors from t with the box id.
func (b *Box) bind(id string, t Task) Task {
	return func(ctx context.Context, y Yielder) error {
		if err := t(ctx, y); err != nil {
			return fmt.Errorf("box %s: %w", id, err)
		}
		return nil
	}
}

// AttachToProgram binds b to s under id. Plug registries are frozen and
// tasks queued before attachment are handed to s in the order they were
// scheduled.
//
// Returns ErrAlreadyAttached if b is already attached.
func (b *Box) AttachToProgram(s Scheduler, id string) error {
	b.mu.Lock()
	if b.attached {
		b.mu.Unlock()
		return fmt.Errorf("attach box %s as %s: %w", b.id, id, ErrAlreadyAttached)
	}
	b.sched, b.id, b.attached, b.flushing = s, id, true, true
	for len(b.deferred) > 0 {
		t := b.deferred[0]
		b.deferred = b.deferred[1:]
		b.mu.Unlock()
		s.ScheduleProcessing(id, b.bind(id, t))
		b.mu.Lock()
	}
	b.deferred, b.flushing = nil, false
	b.mu.Unlock()
	return nil
}

// SetProcessing opens or closes the window in which outputs may be written.
// Only schedulers call it.
func (b *Box) SetProcessing(on bool) {
	b.mu.Lock()
	b.processing = on
	b.mu.Unlock()
}

// Processing reports whether the box is inside a processing window.
func (b *Box) Processing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.processing
}
