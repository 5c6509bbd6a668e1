package boxes

import (
	"context"
	"fmt"

	"github.com/matzehuels/apg/pkg/box"
	"github.com/matzehuels/apg/pkg/graph"
	"github.com/matzehuels/apg/pkg/value"
)

// derived is the shape shared by boxes that recompute outputs from a single
// "graph" input.
type derived struct {
	*box.Box
	in *box.InputPlug
}

func newDerived(compute func(ctx context.Context, y box.Yielder, g *graph.Graph) error) *derived {
	d := &derived{Box: box.New()}
	d.in = mustInput(d.Box, "graph", func() error {
		d.ScheduleProcessing(func(ctx context.Context, y box.Yielder) error {
			g, ok := box.Read[*graph.Graph](d.in)
			if !ok {
				return fmt.Errorf("input %q: %w", "graph", box.ErrNoValue)
			}
			return compute(ctx, y, g)
		})
		return nil
	})
	return d
}

// =============================================================================
// graph.complement
// =============================================================================

// Complement publishes the complement of its input graph.
type Complement struct {
	*derived
	out *box.OutputPlug
}

// NewComplement returns the box.
func NewComplement() *Complement {
	b := &Complement{}
	b.derived = newDerived(func(_ context.Context, _ box.Yielder, g *graph.Graph) error {
		return b.out.Write(g.Complemented())
	})
	b.out = mustOutput(b.Box, "graph")
	return b
}

func (*Complement) TypeID() string { return "graph.complement" }

// =============================================================================
// graph.intersections
// =============================================================================

// Intersections publishes every proper edge crossing of its input as a
// value.List of graph.Intersection, and the number of crossings.
type Intersections struct {
	*derived
	list  *box.OutputPlug
	count *box.OutputPlug
}

// NewIntersections returns the box.
func NewIntersections() *Intersections {
	b := &Intersections{}
	b.derived = newDerived(func(_ context.Context, _ box.Yielder, g *graph.Graph) error {
		xs := g.EdgeIntersections()
		items := make([]value.Value, len(xs))
		for i, x := range xs {
			items[i] = x
		}
		if err := b.list.Write(value.NewList(items...)); err != nil {
			return err
		}
		return b.count.Write(value.Of(len(xs)))
	})
	b.list = mustOutput(b.Box, "intersections")
	b.count = mustOutput(b.Box, "count")
	return b
}

func (*Intersections) TypeID() string { return "graph.intersections" }

// =============================================================================
// graph.tile
// =============================================================================

// Tile lays rows×cols copies of its input on a grid, gap apart. Copy (r, c)
// has its nodes named "r<r>/c<c>/<name>" and its bounding box's top-left
// corner moved to its grid cell. The run yields after every copy.
type Tile struct {
	*derived
	out        *box.OutputPlug
	rows, cols int
	gap        float64
}

// NewTile returns the box. Rows and cols below 1 are treated as 1.
func NewTile(rows, cols int, gap float64) *Tile {
	b := &Tile{rows: max(rows, 1), cols: max(cols, 1), gap: gap}
	b.derived = newDerived(b.tile)
	b.out = mustOutput(b.Box, "graph")
	return b
}

func newTileFromParams(p Params) (box.Unit, error) {
	rows, err := p.Int("rows", 2)
	if err != nil {
		return nil, err
	}
	cols, err := p.Int("cols", 2)
	if err != nil {
		return nil, err
	}
	gap, err := p.Float("gap", 20)
	if err != nil {
		return nil, err
	}
	return NewTile(rows, cols, gap), nil
}

func (*Tile) TypeID() string { return "graph.tile" }

func (b *Tile) tile(_ context.Context, y box.Yielder, src *graph.Graph) error {
	nodes, edges := src.Flatten()
	bounds := src.BoundingBox()
	w, h := bounds.Width()+b.gap, bounds.Height()+b.gap

	out := graph.New(src.Directed())
	for r := range b.rows {
		row := out.Offset(0, float64(r)*h, 1, fmt.Sprintf("r%d/", r), 0)
		for c := range b.cols {
			cell := row.Offset(float64(c)*w, 0, 1, fmt.Sprintf("c%d/", c), 0).
				Translate(-bounds.X1, -bounds.Y1)
			for _, n := range nodes {
				if _, err := cell.AddNode(n.Name, n.X, n.Y); err != nil {
					return err
				}
			}
			for _, e := range edges {
				if _, err := cell.AddEdge("", e.From.Name, e.To.Name); err != nil {
					return err
				}
			}
			if err := y.Yield(); err != nil {
				return err
			}
		}
	}
	return b.out.Write(out)
}
