package program

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/matzehuels/apg/pkg/box"
	apgerrors "github.com/matzehuels/apg/pkg/errors"
)

type eventKind int

const (
	evYield eventKind = iota
	evAwait
	evDone
)

// event is sent from a task goroutine back to the scheduler each time the
// task gives up control.
type event struct {
	kind   eventKind
	future *box.Future
	err    error
}

// run is one execution of a task. The task body runs on its own goroutine
// but only between a send on resume and the next send on events, so at
// most one task executes at a time.
type run struct {
	entry *entry
	task  box.Task

	// Guarded by Program.mu.
	state    State
	started  bool
	cancel   bool
	awaiting *box.Future

	ctx    context.Context
	stop   context.CancelFunc
	begin  time.Time
	resume chan error
	events chan event
}

func newRun(e *entry, t box.Task) *run {
	return &run{
		entry:  e,
		task:   t,
		state:  Idle,
		resume: make(chan error),
		events: make(chan event),
	}
}

func (r *run) transition(to State) error {
	if !isAllowedTransition(r.state, to) {
		return apgerrors.New(apgerrors.ErrCodeInternal,
			"box %s: invalid run transition %s -> %s", r.entry.id, r.state, to)
	}
	r.state = to
	return nil
}

// start launches the task goroutine. It blocks until the first resume.
func (r *run) start(parent context.Context) {
	r.ctx, r.stop = context.WithCancel(parent)
	r.begin = time.Now()
	r.started = true
	go r.main()
}

func (r *run) main() {
	if err := <-r.resume; err != nil {
		r.events <- event{kind: evDone, err: err}
		return
	}
	r.events <- event{kind: evDone, err: r.invoke()}
}

func (r *run) invoke() (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = apgerrors.New(apgerrors.ErrCodeInternal,
				"box %s: task panicked: %v\n%s", r.entry.id, rec, debug.Stack())
		}
	}()
	return r.task(r.ctx, r)
}

// Yield implements box.Yielder.
func (r *run) Yield() error {
	r.events <- event{kind: evYield}
	return <-r.resume
}

// Await implements box.Yielder.
func (r *run) Await(f *box.Future) (any, error) {
	r.events <- event{kind: evAwait, future: f}
	if err := <-r.resume; err != nil {
		return nil, err
	}
	return f.Result()
}
