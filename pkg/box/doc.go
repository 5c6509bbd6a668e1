// Package box implements the box and plug lifecycle of a dataflow program.
//
// A [Box] is a unit of computation with named input and output plugs.
// Concrete boxes embed *Box, register their plugs in a constructor, and are
// then attached to a [Scheduler] exactly once:
//
//	type Doubler struct {
//		*box.Box
//		in  *box.InputPlug
//		out *box.OutputPlug
//	}
//
//	func NewDoubler() (*Doubler, error) {
//		d := &Doubler{Box: box.New()}
//		var err error
//		if d.in, err = d.NewInputPlug("in", d.changed); err != nil {
//			return nil, err
//		}
//		if d.out, err = d.NewOutputPlug("out"); err != nil {
//			return nil, err
//		}
//		return d, nil
//	}
//
// # Lifecycle
//
// Before attachment plugs may be registered and [Box.ScheduleProcessing]
// queues tasks locally. [Box.AttachToProgram] freezes the plug registries,
// records the box's id and hands the queued tasks to the scheduler in order.
// After attachment tasks go straight to the scheduler.
//
// # Publishing
//
// [OutputPlug.Write] is only legal while the scheduler has marked the box as
// processing (see [Box.SetProcessing]). It stores a frozen deep copy of the
// value, so the writer may keep mutating its own instance, and asks the
// scheduler to deliver that snapshot along every outgoing wire.
//
// [InputPlug.Deliver] is called by the scheduler. It stores the snapshot and
// runs the plug's [UpdateHandler], which usually schedules a task. Readers
// either share the frozen value ([InputPlug.Read]) or take a private mutable
// copy ([InputPlug.Copy]).
//
// # Tasks
//
// A [Task] runs cooperatively: it calls [Yielder.Yield] to let other boxes
// run and [Yielder.Await] to park until a [Future] settles. Both return an
// error once the run has been cancelled; tasks should return it.
package box
