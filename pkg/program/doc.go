// Package program is a reference scheduler for boxes.
//
// A [Program] owns a set of boxes and the wires between their plugs. It
// implements box.Scheduler: output writes fan out along wires as delivery
// tasks, and every task a box schedules is queued on that box.
//
// # Runs
//
// Each task executes as a run that moves through [Idle], [Running],
// [Suspended] and ends [Completed], [Cancelled] or [Failed]. Transitions are
// validated; an invalid one is a scheduler bug and stops [Program.Run].
//
// Runs are cooperative. Every task body runs on its own goroutine, but the
// scheduler hands control to exactly one of them at a time and waits for it
// to give control back by yielding, awaiting a future or returning. The box
// is marked as processing only while its run holds control, which is the
// only time its outputs may be written.
//
// A box has at most one run in flight. Scheduling more work for a box whose
// run is suspended cancels that run: Yield and Await return [ErrCancelled]
// and the task is expected to return.
//
// # Errors
//
// A failing run does not stop the program. Its error is recorded in the
// box's [Status] and logged; nothing is retried.
//
//	p := program.New(program.WithLogger(logger))
//	src, _ := p.AddBox("", boxes.NewExampleGraph())
//	dst, _ := p.AddBox("", boxes.NewIntersections())
//	p.AddWire(src, "graph", dst, "graph")
//	if err := p.Run(ctx); err != nil { ... }
//	st, _ := p.Status(dst)
package program
