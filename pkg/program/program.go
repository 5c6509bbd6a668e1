package program

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/apg/pkg/box"
	apgerrors "github.com/matzehuels/apg/pkg/errors"
	"github.com/matzehuels/apg/pkg/observability"
	"github.com/matzehuels/apg/pkg/value"
)

var (
	// ErrUnknownBox is returned when a box id is not part of the program.
	ErrUnknownBox = apgerrors.New(apgerrors.ErrCodeUnknownBox, "box does not exist")

	// ErrDuplicateBox is returned by [Program.AddBox] for a taken id.
	ErrDuplicateBox = apgerrors.New(apgerrors.ErrCodeDuplicateBox, "box already exists")

	// ErrUnknownWire is returned by [Program.DeleteWire] for a missing wire.
	ErrUnknownWire = apgerrors.New(apgerrors.ErrCodeUnknownWire, "wire does not exist")

	// ErrDuplicateWire is returned by [Program.AddWire] when the same output
	// is already wired to the same input.
	ErrDuplicateWire = apgerrors.New(apgerrors.ErrCodeDuplicateWire, "wire already exists")

	// ErrCancelled is returned from Yield and Await inside a run that has
	// been cancelled.
	ErrCancelled = apgerrors.New(apgerrors.ErrCodeCancelled, "run cancelled")
)

var _ box.Scheduler = (*Program)(nil)

// Wire connects an output plug to an input plug.
type Wire struct {
	ID      string
	SrcBox  string
	SrcPlug string
	DstBox  string
	DstPlug string
}

// wireID length-prefixes every part, so ids stay distinct whatever
// characters box and plug names contain: "1|a3|out->1|b2|in".
func wireID(srcBox, srcPlug, dstBox, dstPlug string) string {
	var sb strings.Builder
	for i, part := range []string{srcBox, srcPlug, dstBox, dstPlug} {
		if i == 2 {
			sb.WriteString("->")
		}
		sb.WriteString(strconv.Itoa(len(part)))
		sb.WriteByte('|')
		sb.WriteString(part)
	}
	return sb.String()
}

// Status is the error indicator of a box: the outcome of its latest
// finished run plus what is still pending.
type Status struct {
	ID      string
	Kind    string
	State   State // Idle until the first run finishes
	Err     error
	Runs    int  // finished runs
	Active  bool // a run is queued, running or suspended
	Pending int  // tasks queued behind the active run
}

type entry struct {
	id      string
	kind    string
	unit    box.Unit
	queue   []box.Task
	active  *run
	status  Status
	deleted bool
}

// Program owns boxes and wires and schedules their tasks cooperatively.
// A Program implements [box.Scheduler].
//
// Each box runs at most one task at a time; further tasks wait in a FIFO.
// Scheduling a task for a box whose run is suspended cancels that run, so
// stale work is dropped as soon as newer input arrives.
type Program struct {
	logger *log.Logger
	hooks  observability.ProgramHooks

	mu     sync.Mutex
	boxes  map[string]*entry
	order  []string
	wires  []Wire
	ready  []*run
	parked int

	wokenMu sync.Mutex
	woken   []*run
	notify  chan struct{}
}

// Option configures a Program.
type Option func(*Program)

// WithLogger sets the logger used for run failures and scheduling events.
func WithLogger(l *log.Logger) Option {
	return func(p *Program) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithHooks sets the observability hooks. The default is the globally
// registered observability.Program().
func WithHooks(h observability.ProgramHooks) Option {
	return func(p *Program) {
		if h != nil {
			p.hooks = h
		}
	}
}

// New returns an empty program.
func New(opts ...Option) *Program {
	p := &Program{
		logger: log.New(io.Discard),
		hooks:  observability.Program(),
		boxes:  make(map[string]*entry),
		notify: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// =============================================================================
// Boxes
// =============================================================================

// kinded is implemented by boxes that report a catalogue type id.
type kinded interface{ TypeID() string }

// AddBox attaches u under id and returns the id. An empty id is replaced by
// a random UUID. Tasks the box scheduled before attachment are queued.
//
// Returns ErrDuplicateBox if the id is taken, or box.ErrAlreadyAttached if u
// belongs to another program.
func (p *Program) AddBox(id string, u box.Unit) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	kind := fmt.Sprintf("%T", u)
	if k, ok := u.(kinded); ok {
		kind = k.TypeID()
	}

	p.mu.Lock()
	if _, ok := p.boxes[id]; ok {
		p.mu.Unlock()
		return "", fmt.Errorf("add box %s: %w", id, ErrDuplicateBox)
	}
	e := &entry{id: id, kind: kind, unit: u, status: Status{ID: id, Kind: kind}}
	p.boxes[id] = e
	p.order = append(p.order, id)
	p.mu.Unlock()

	if err := u.Core().AttachToProgram(p, id); err != nil {
		p.mu.Lock()
		delete(p.boxes, id)
		p.order = slices.DeleteFunc(p.order, func(s string) bool { return s == id })
		p.mu.Unlock()
		return "", fmt.Errorf("add box %s: %w", id, err)
	}

	p.logger.Debug("box attached", "box", id, "kind", kind)
	p.hooks.OnBoxAttached(context.Background(), id, kind)
	return id, nil
}

// DeleteBox removes a box and every wire touching it. Queued tasks are
// dropped and a suspended run is cancelled.
func (p *Program) DeleteBox(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.boxes[id]
	if !ok {
		return fmt.Errorf("delete box %s: %w", id, ErrUnknownBox)
	}
	e.deleted = true
	e.queue = nil
	if r := e.active; r != nil {
		switch {
		case !r.started:
			p.ready = slices.DeleteFunc(p.ready, func(x *run) bool { return x == r })
			e.active = nil
		case r.state == Suspended:
			p.requestCancel(r)
		}
	}
	delete(p.boxes, id)
	p.order = slices.DeleteFunc(p.order, func(s string) bool { return s == id })
	p.wires = slices.DeleteFunc(p.wires, func(w Wire) bool { return w.SrcBox == id || w.DstBox == id })
	return nil
}

// Box returns the unit attached under id.
func (p *Program) Box(id string) (box.Unit, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.boxes[id]
	if !ok {
		return nil, false
	}
	return e.unit, true
}

// Boxes returns box ids in the order they were added.
func (p *Program) Boxes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.order)
}

// Status returns the error indicator of a box.
func (p *Program) Status(id string) (Status, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.boxes[id]
	if !ok {
		return Status{}, fmt.Errorf("status %s: %w", id, ErrUnknownBox)
	}
	return e.snapshot(), nil
}

// Statuses returns the status of every box in insertion order.
func (p *Program) Statuses() []Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Status, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.boxes[id].snapshot())
	}
	return out
}

func (e *entry) snapshot() Status {
	s := e.status
	s.Active = e.active != nil
	s.Pending = len(e.queue)
	return s
}

// =============================================================================
// Wires
// =============================================================================

// AddWire connects an output plug to an input plug and returns the wire id.
// If the output has already published a value it is delivered to the new
// input right away.
func (p *Program) AddWire(srcBox, srcPlug, dstBox, dstPlug string) (string, error) {
	p.mu.Lock()
	src, ok := p.boxes[srcBox]
	if !ok {
		p.mu.Unlock()
		return "", fmt.Errorf("add wire from %s: %w", srcBox, ErrUnknownBox)
	}
	dst, ok := p.boxes[dstBox]
	if !ok {
		p.mu.Unlock()
		return "", fmt.Errorf("add wire to %s: %w", dstBox, ErrUnknownBox)
	}
	out, ok := src.unit.Core().Output(srcPlug)
	if !ok {
		p.mu.Unlock()
		return "", fmt.Errorf("add wire from %s.%s: %w", srcBox, srcPlug, box.ErrUnknownPlug)
	}
	if _, ok := dst.unit.Core().Input(dstPlug); !ok {
		p.mu.Unlock()
		return "", fmt.Errorf("add wire to %s.%s: %w", dstBox, dstPlug, box.ErrUnknownPlug)
	}
	id := wireID(srcBox, srcPlug, dstBox, dstPlug)
	if slices.ContainsFunc(p.wires, func(w Wire) bool { return w.ID == id }) {
		p.mu.Unlock()
		return "", fmt.Errorf("add wire %s: %w", id, ErrDuplicateWire)
	}
	w := Wire{ID: id, SrcBox: srcBox, SrcPlug: srcPlug, DstBox: dstBox, DstPlug: dstPlug}
	p.wires = append(p.wires, w)
	p.mu.Unlock()

	if v := out.Value(); v != nil {
		p.ScheduleProcessing(dstBox, p.deliver(w, v))
	}
	return id, nil
}

// DeleteWire removes a wire. Values already delivered stay in place.
func (p *Program) DeleteWire(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := slices.IndexFunc(p.wires, func(w Wire) bool { return w.ID == id })
	if i < 0 {
		return fmt.Errorf("delete wire %s: %w", id, ErrUnknownWire)
	}
	p.wires = slices.Delete(p.wires, i, i+1)
	return nil
}

// Wires returns every wire in the order it was added.
func (p *Program) Wires() []Wire {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.wires)
}

// =============================================================================
// box.Scheduler
// =============================================================================

// SchedulePlugUpdatesFrom queues one delivery of v per wire leaving the plug,
// in wire order. Each delivery runs as a task of the receiving box.
func (p *Program) SchedulePlugUpdatesFrom(boxID, plug string, v value.Value) {
	p.mu.Lock()
	var out []Wire
	for _, w := range p.wires {
		if w.SrcBox == boxID && w.SrcPlug == plug {
			out = append(out, w)
		}
	}
	p.mu.Unlock()

	p.hooks.OnPublish(context.Background(), boxID, plug, len(out))
	for _, w := range out {
		p.ScheduleProcessing(w.DstBox, p.deliver(w, v))
	}
}

func (p *Program) deliver(w Wire, v value.Value) box.Task {
	return func(context.Context, box.Yielder) error {
		u, ok := p.Box(w.DstBox)
		if !ok {
			return nil
		}
		in, ok := u.Core().Input(w.DstPlug)
		if !ok {
			return fmt.Errorf("deliver %s: %w", w.ID, box.ErrUnknownPlug)
		}
		if err := in.Deliver(v); err != nil {
			return fmt.Errorf("deliver %s: %w", w.ID, err)
		}
		return nil
	}
}

// ScheduleProcessing queues t for the box. If the box's current run is
// suspended it is cancelled. Tasks for unknown boxes are dropped.
func (p *Program) ScheduleProcessing(boxID string, t box.Task) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.boxes[boxID]
	if !ok {
		p.logger.Warn("task for unknown box dropped", "box", boxID)
		return
	}
	e.queue = append(e.queue, t)
	switch r := e.active; {
	case r == nil:
		p.startNext(e)
	case r.state == Suspended && !r.cancel:
		p.logger.Debug("superseding suspended run", "box", boxID)
		p.requestCancel(r)
	}
}

// startNext makes the head of e's queue the active run. Caller holds p.mu.
func (p *Program) startNext(e *entry) {
	if e.deleted || len(e.queue) == 0 {
		return
	}
	t := e.queue[0]
	e.queue = e.queue[1:]
	r := newRun(e, t)
	e.active = r
	p.ready = append(p.ready, r)
}

// requestCancel marks a suspended run for cancellation and makes sure the
// scheduler visits it. Caller holds p.mu.
func (p *Program) requestCancel(r *run) {
	r.cancel = true
	r.stop()
	if r.awaiting != nil {
		r.awaiting = nil
		p.parked--
		p.ready = append(p.ready, r)
	}
}

// =============================================================================
// Driving runs
// =============================================================================

// Run executes queued work until nothing is ready and no run is waiting on
// a future. Runs parked on futures keep Run blocked until the futures
// settle. If ctx ends first, suspended runs are cancelled and ctx's error
// is returned; queued tasks stay queued for the next call.
func (p *Program) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			p.abortSuspended()
			return err
		}
		p.collectWoken()

		r, parked := p.next()
		if r != nil {
			if err := p.step(ctx, r); err != nil {
				return err
			}
			continue
		}
		if parked == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
		case <-p.notify:
		}
	}
}

func (p *Program) next() (*run, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.ready) == 0 {
		return nil, p.parked
	}
	r := p.ready[0]
	p.ready = p.ready[1:]
	return r, p.parked
}

// step hands control to r until it yields, awaits or finishes.
func (p *Program) step(ctx context.Context, r *run) error {
	core := r.entry.unit.Core()

	p.mu.Lock()
	cancelling := r.cancel
	if !r.started {
		r.start(ctx)
		p.hooks.OnRunStart(ctx, r.entry.id)
	}
	if !cancelling {
		if err := r.transition(Running); err != nil {
			p.mu.Unlock()
			return err
		}
	}
	p.mu.Unlock()

	var signal error
	if cancelling {
		signal = ErrCancelled
	} else {
		core.SetProcessing(true)
	}
	for {
		r.resume <- signal
		ev := <-r.events
		if !cancelling {
			core.SetProcessing(false)
		}
		switch {
		case ev.kind == evDone:
			return p.finish(r, ev.err, cancelling)
		case cancelling:
			// The task ignored the cancellation; keep unwinding it.
			continue
		default:
			return p.suspend(r, ev)
		}
	}
}

func (p *Program) suspend(r *run, ev event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := r.transition(Suspended); err != nil {
		return err
	}
	if ev.kind == evYield {
		p.ready = append(p.ready, r)
		return nil
	}
	r.awaiting = ev.future
	p.parked++
	go p.wait(r, ev.future)
	return nil
}

// wait reports r as woken once f settles, unless r is cancelled first.
func (p *Program) wait(r *run, f *box.Future) {
	select {
	case <-f.Done():
	case <-r.ctx.Done():
		return
	}
	p.wokenMu.Lock()
	p.woken = append(p.woken, r)
	p.wokenMu.Unlock()
	select {
	case p.notify <- struct{}{}:
	default:
	}
}

func (p *Program) collectWoken() {
	p.wokenMu.Lock()
	woken := p.woken
	p.woken = nil
	p.wokenMu.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range woken {
		// A run cancelled while parked was already requeued by requestCancel.
		if r.awaiting == nil || r.cancel {
			continue
		}
		r.awaiting = nil
		p.parked--
		p.ready = append(p.ready, r)
	}
}

func (p *Program) finish(r *run, err error, cancelled bool) error {
	state := Completed
	switch {
	case cancelled:
		state = Cancelled
	case err != nil && errors.Is(err, context.Canceled) && r.ctx.Err() != nil:
		state = Cancelled
	case err != nil:
		state = Failed
	}
	r.stop()
	elapsed := time.Since(r.begin)

	p.mu.Lock()
	if terr := r.transition(state); terr != nil {
		p.mu.Unlock()
		return terr
	}
	e := r.entry
	if e.active == r {
		e.active = nil
	}
	e.status.State = state
	e.status.Err = nil
	if state == Failed {
		e.status.Err = err
	}
	e.status.Runs++
	p.startNext(e)
	p.mu.Unlock()

	switch state {
	case Failed:
		p.logger.Error("run failed", "box", e.id, "kind", e.kind, "err", err)
	default:
		p.logger.Debug("run finished", "box", e.id, "state", state, "duration", elapsed)
	}
	p.hooks.OnRunComplete(r.ctx, e.id, state.String(), elapsed, err)
	return nil
}

// abortSuspended cancels every started run so no task goroutine outlives Run.
func (p *Program) abortSuspended() {
	p.mu.Lock()
	for _, e := range p.boxes {
		if r := e.active; r != nil && r.started && r.state == Suspended && !r.cancel {
			p.requestCancel(r)
		}
	}
	var doomed []*run
	keep := p.ready[:0]
	for _, r := range p.ready {
		if r.cancel {
			doomed = append(doomed, r)
		} else {
			keep = append(keep, r)
		}
	}
	p.ready = keep
	p.mu.Unlock()

	for _, r := range doomed {
		_ = p.step(context.Background(), r)
	}
}
