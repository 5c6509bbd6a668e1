package boxes

import (
	"context"

	"github.com/matzehuels/apg/pkg/box"
	apgerrors "github.com/matzehuels/apg/pkg/errors"
	"github.com/matzehuels/apg/pkg/value"
)

// =============================================================================
// debug.constant
// =============================================================================

// Constant publishes an integer on output "value".
type Constant struct {
	*box.Box
	out *box.OutputPlug
}

// NewConstant returns a box that publishes n once attached.
func NewConstant(n int) *Constant {
	b := &Constant{Box: box.New()}
	b.out = mustOutput(b.Box, "value")
	b.Set(n)
	return b
}

func newConstantFromParams(p Params) (box.Unit, error) {
	n, err := p.Int("value", 0)
	if err != nil {
		return nil, err
	}
	return NewConstant(n), nil
}

func (*Constant) TypeID() string { return "debug.constant" }

// Set schedules publishing n.
func (b *Constant) Set(n int) {
	b.ScheduleProcessing(func(context.Context, box.Yielder) error {
		return b.out.Write(value.Of(n))
	})
}

// =============================================================================
// debug.slow
// =============================================================================

// SlowYieldMask sets how often [Slow] yields: whenever i&SlowYieldMask == 0.
const SlowYieldMask = 1023

// Slow iterates a linear congruential step as many times as the integer on
// input "iterations" says, yielding every 1024 steps, and publishes the
// result on "output". New input supersedes a computation in progress.
type Slow struct {
	*box.Box
	in  *box.InputPlug
	out *box.OutputPlug
}

// NewSlow returns the box.
func NewSlow() *Slow {
	b := &Slow{Box: box.New()}
	b.in = mustInput(b.Box, "iterations", func() error {
		b.Recompute()
		return nil
	})
	b.out = mustOutput(b.Box, "output")
	return b
}

func (*Slow) TypeID() string { return "debug.slow" }

// Recompute schedules the computation for the current input.
func (b *Slow) Recompute() { b.ScheduleProcessing(b.compute) }

func (b *Slow) compute(_ context.Context, y box.Yielder) error {
	n, _ := box.Read[value.Scalar[int]](b.in)
	out := 1
	for i := 1; i <= n.Get(); i++ {
		out = slowStep(out)
		if i&SlowYieldMask == 0 {
			if err := y.Yield(); err != nil {
				return err
			}
		}
	}
	return b.out.Write(value.Of(out))
}

func slowStep(x int) int { return (x*123456 + 789012) % 1500007 }

// =============================================================================
// debug.await
// =============================================================================

// AwaitCounter keeps a counter published on output "counter". Each awaited
// future adds its result: nil counts as 1, integers are added as is.
type AwaitCounter struct {
	*box.Box
	out     *box.OutputPlug
	counter int
}

// NewAwaitCounter returns the box.
func NewAwaitCounter() *AwaitCounter {
	b := &AwaitCounter{Box: box.New()}
	b.out = mustOutput(b.Box, "counter")
	return b
}

func (*AwaitCounter) TypeID() string { return "debug.await" }

// Await schedules a run that waits for f. A rejected future fails the run
// and leaves the counter alone.
func (b *AwaitCounter) Await(f *box.Future) {
	b.ScheduleProcessing(func(_ context.Context, y box.Yielder) error {
		v, err := y.Await(f)
		if err != nil {
			return err
		}
		inc := 1
		switch n := v.(type) {
		case nil:
		case int:
			inc = n
		case int64:
			inc = int(n)
		default:
			return apgerrors.New(apgerrors.ErrCodeInvalidInput, "awaited %T, want an integer", v)
		}
		b.counter += inc
		return b.out.Write(value.Of(b.counter))
	})
}

// Trigger creates a future, awaits it and returns it for the caller to settle.
func (b *AwaitCounter) Trigger() *box.Future {
	f := box.NewFuture()
	b.Await(f)
	return f
}
