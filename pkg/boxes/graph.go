package boxes

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apg/pkg/box"
	"github.com/matzehuels/apg/pkg/graph"
	"github.com/matzehuels/apg/pkg/graphio"
	"github.com/matzehuels/apg/pkg/render/nodelink"
)

// =============================================================================
// graph.example_graph
// =============================================================================

// ExampleGraph publishes a fixed 100×100 square with nodes tl, tr, bl and br
// and the two diagonals, which cross at (50, 50).
type ExampleGraph struct {
	*box.Box
	out *box.OutputPlug
}

// NewExampleGraph returns the box. The graph is published by its first run.
func NewExampleGraph() *ExampleGraph {
	b := &ExampleGraph{Box: box.New()}
	b.out = mustOutput(b.Box, "graph")
	b.ScheduleProcessing(func(context.Context, box.Yielder) error {
		return b.out.Write(exampleSquare())
	})
	return b
}

func (*ExampleGraph) TypeID() string { return "graph.example_graph" }

func exampleSquare() *graph.Graph {
	g := graph.New(false)
	for _, n := range []struct {
		name string
		x, y float64
	}{{"tl", 0, 0}, {"tr", 100, 0}, {"bl", 0, 100}, {"br", 100, 100}} {
		if _, err := g.AddNode(n.name, n.x, n.y); err != nil {
			panic(err)
		}
	}
	for _, e := range [][2]string{{"tl", "br"}, {"tr", "bl"}} {
		if _, err := g.AddEdge("", e[0], e[1]); err != nil {
			panic(err)
		}
	}
	return g
}

// =============================================================================
// graph.graph
// =============================================================================

// Graph is an editable graph. A value arriving on input "graph" replaces
// the state; edit methods schedule a change. Either way the new state is
// published on output "graph".
//
// The state graph is only touched from the box's own runs.
type Graph struct {
	*box.Box
	in    *box.InputPlug
	out   *box.OutputPlug
	state *graph.Graph
}

// NewGraph returns an editable graph box starting from initial, or from an
// empty undirected graph if initial is nil. The box keeps its own copy.
func NewGraph(initial *graph.Graph) *Graph {
	b := &Graph{Box: box.New()}
	if initial != nil {
		b.state = initial.Copy()
	} else {
		b.state = graph.New(false)
	}
	b.in = mustInput(b.Box, "graph", b.replace)
	b.out = mustOutput(b.Box, "graph")
	b.ScheduleProcessing(func(context.Context, box.Yielder) error {
		return b.out.Write(b.state)
	})
	return b
}

func newGraphFromParams(p Params) (box.Unit, error) {
	path, err := p.String("file", "")
	if err != nil {
		return nil, err
	}
	directed, err := p.Bool("directed", false)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return NewGraph(graph.New(directed)), nil
	}
	g, err := graphio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewGraph(g), nil
}

func (*Graph) TypeID() string { return "graph.graph" }

func (b *Graph) replace() error {
	g, err := box.Copy[*graph.Graph](b.in)
	if err != nil {
		return err
	}
	b.state = g
	return b.out.Write(b.state)
}

func (b *Graph) edit(op string, fn func(g *graph.Graph) error) {
	b.ScheduleProcessing(func(context.Context, box.Yielder) error {
		if err := fn(b.state); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return b.out.Write(b.state)
	})
}

// AddNode schedules adding a node. An empty name is generated.
func (b *Graph) AddNode(name string, x, y float64) {
	b.edit("add node", func(g *graph.Graph) error {
		_, err := g.AddNode(name, x, y)
		return err
	})
}

// MoveNode schedules moving a node.
func (b *Graph) MoveNode(name string, x, y float64) {
	b.edit("move node", func(g *graph.Graph) error { return g.MoveNode(name, x, y) })
}

// DeleteNode schedules deleting a node and its edges.
func (b *Graph) DeleteNode(name string) {
	b.edit("delete node", func(g *graph.Graph) error { return g.DeleteNode(name) })
}

// AddEdge schedules adding an edge. An empty name is generated.
func (b *Graph) AddEdge(name, from, to string) {
	b.edit("add edge", func(g *graph.Graph) error {
		_, err := g.AddEdge(name, from, to)
		return err
	})
}

// DeleteEdge schedules deleting an edge.
func (b *Graph) DeleteEdge(name string) {
	b.edit("delete edge", func(g *graph.Graph) error { return g.DeleteEdge(name) })
}

// Current returns the last published graph, or nil. It is frozen.
func (b *Graph) Current() *graph.Graph {
	g, _ := b.out.Value().(*graph.Graph)
	return g
}

// CreateLayout returns the DOT options used by Render.
func (b *Graph) CreateLayout() any {
	return nodelink.Options{Labels: true, Crossings: true, Scale: nodelink.DefaultScale}
}

// Render writes the last published graph as DOT to target, which must be
// an io.Writer. Other targets are ignored. Write errors go to the default
// logger since Render has no error result.
func (b *Graph) Render(target any) {
	w, ok := target.(io.Writer)
	if !ok {
		return
	}
	g := b.Current()
	if g == nil {
		return
	}
	opts, _ := b.CreateLayout().(nodelink.Options)
	if _, err := io.WriteString(w, nodelink.ToDOT(g, opts)); err != nil {
		log.Error("render graph", "box", b.ID(), "err", err)
	}
}
