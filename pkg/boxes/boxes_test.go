package boxes

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apg/pkg/box"
	"github.com/matzehuels/apg/pkg/graph"
	"github.com/matzehuels/apg/pkg/program"
	"github.com/matzehuels/apg/pkg/value"
)

func run(t *testing.T, p *program.Program) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run() = %v", err)
	}
}

func add(t *testing.T, p *program.Program, id string, u box.Unit) {
	t.Helper()
	if _, err := p.AddBox(id, u); err != nil {
		t.Fatal(err)
	}
}

func wire(t *testing.T, p *program.Program, src, srcPlug, dst, dstPlug string) {
	t.Helper()
	if _, err := p.AddWire(src, srcPlug, dst, dstPlug); err != nil {
		t.Fatal(err)
	}
}

func graphOut(t *testing.T, o *box.OutputPlug) *graph.Graph {
	t.Helper()
	g, ok := o.Value().(*graph.Graph)
	if !ok {
		t.Fatalf("output %q holds %T", o.Name(), o.Value())
	}
	return g
}

func intOut(t *testing.T, o *box.OutputPlug) int {
	t.Helper()
	v, ok := o.Value().(value.Scalar[int])
	if !ok {
		t.Fatalf("output %q holds %T", o.Name(), o.Value())
	}
	return v.Get()
}

func TestExampleGraphIntersections(t *testing.T) {
	p := program.New()
	ex, x := NewExampleGraph(), NewIntersections()
	add(t, p, "ex", ex)
	add(t, p, "x", x)
	wire(t, p, "ex", "graph", "x", "graph")
	run(t, p)

	g := graphOut(t, ex.out)
	if !g.Frozen() {
		t.Error("published graph should be frozen")
	}
	if g.NodeCount() != 4 || g.EdgeCount() != 2 {
		t.Errorf("example graph has %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	if n := intOut(t, x.count); n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
	list, ok := x.list.Value().(*value.List)
	if !ok || list.Len() != 1 {
		t.Fatalf("intersections = %#v", x.list.Value())
	}
	hit := list.At(0).(graph.Intersection)
	if hit.X != 50 || hit.Y != 50 {
		t.Errorf("crossing at (%v, %v), want (50, 50)", hit.X, hit.Y)
	}
}

func TestComplement(t *testing.T) {
	p := program.New()
	c := NewComplement()
	add(t, p, "ex", NewExampleGraph())
	add(t, p, "c", c)
	wire(t, p, "ex", "graph", "c", "graph")
	run(t, p)

	g := graphOut(t, c.out)
	if g.EdgeCount() != 4 {
		t.Errorf("complement has %d edges, want 4", g.EdgeCount())
	}
	for _, pair := range [][2]string{{"tl", "tr"}, {"tr", "br"}, {"br", "bl"}, {"bl", "tl"}} {
		if !g.HasEdgeBetween(pair[0], pair[1]) {
			t.Errorf("missing side %s-%s", pair[0], pair[1])
		}
	}
	if g.HasEdgeBetween("tl", "br") {
		t.Error("diagonal should not be in the complement")
	}
}

func TestTile(t *testing.T) {
	p := program.New()
	tile := NewTile(2, 2, 10)
	add(t, p, "ex", NewExampleGraph())
	add(t, p, "t", tile)
	wire(t, p, "ex", "graph", "t", "graph")
	run(t, p)

	g := graphOut(t, tile.out)
	if g.NodeCount() != 16 || g.EdgeCount() != 8 {
		t.Fatalf("tiled graph has %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	tests := []struct {
		name string
		x, y float64
	}{
		{"r0/c0/tl", 0, 0},
		{"r0/c1/tl", 110, 0},
		{"r1/c0/br", 100, 210},
		{"r1/c1/br", 210, 210},
	}
	for _, tt := range tests {
		n, ok := g.Node(tt.name)
		if !ok {
			t.Errorf("missing node %s", tt.name)
			continue
		}
		if n.X != tt.x || n.Y != tt.y {
			t.Errorf("%s at (%v, %v), want (%v, %v)", tt.name, n.X, n.Y, tt.x, tt.y)
		}
	}
	if !g.HasEdgeBetween("r1/c0/tr", "r1/c0/bl") {
		t.Error("tile copies should keep their edges")
	}
	if got := len(g.EdgeIntersections()); got != 4 {
		t.Errorf("tiled crossings = %d, want 4", got)
	}
}

func TestGraphEditor(t *testing.T) {
	p := program.New()
	ed := NewGraph(nil)
	add(t, p, "ed", ed)

	ed.AddNode("a", 0, 0)
	ed.AddNode("b", 10, 0)
	ed.AddNode("", 5, 5)
	ed.AddEdge("ab", "a", "b")
	run(t, p)

	g := ed.Current()
	if g == nil || g.NodeCount() != 3 || !g.HasEdge("ab") {
		t.Fatalf("after edits: %+v", g)
	}

	ed.MoveNode("a", 1, 2)
	ed.DeleteEdge("ab")
	run(t, p)
	g = ed.Current()
	if n, _ := g.Node("a"); n.X != 1 || n.Y != 2 {
		t.Errorf("a at (%v, %v), want (1, 2)", n.X, n.Y)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("edges = %v, want none", g.Edges())
	}

	ed.AddEdge("", "a", "missing")
	run(t, p)
	st, err := p.Status("ed")
	if err != nil {
		t.Fatal(err)
	}
	if st.State != program.Failed || !errors.Is(st.Err, graph.ErrUnknownNode) {
		t.Errorf("status = %+v, want Failed with ErrUnknownNode", st)
	}
	if ed.Current().NodeCount() != 3 {
		t.Error("failed edit should not publish")
	}
}

func TestGraphEditorReplacesFromInput(t *testing.T) {
	p := program.New()
	ed := NewGraph(nil)
	add(t, p, "ex", NewExampleGraph())
	add(t, p, "ed", ed)
	wire(t, p, "ex", "graph", "ed", "graph")
	run(t, p)

	if ed.Current().NodeCount() != 4 {
		t.Fatalf("editor did not take the input graph")
	}

	ed.DeleteNode("tl")
	run(t, p)
	g := ed.Current()
	if g.NodeCount() != 3 || g.EdgeCount() != 1 {
		t.Errorf("after delete: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}

	var buf bytes.Buffer
	ed.Render(&buf)
	if dot := buf.String(); !strings.Contains(dot, `"tr" -- "bl"`) || strings.Contains(dot, `"tl"`) {
		t.Errorf("Render wrote:\n%s", dot)
	}
	ed.Render(42)
}

func slowExpected(n int) int {
	out := 1
	for range n {
		out = slowStep(out)
	}
	return out
}

func TestSlow(t *testing.T) {
	p := program.New()
	c, s := NewConstant(5000), NewSlow()
	add(t, p, "c", c)
	add(t, p, "s", s)
	wire(t, p, "c", "value", "s", "iterations")
	run(t, p)

	if got, want := intOut(t, s.out), slowExpected(5000); got != want {
		t.Errorf("output = %d, want %d", got, want)
	}

	c.Set(3000)
	run(t, p)
	if got, want := intOut(t, s.out), slowExpected(3000); got != want {
		t.Errorf("output after new input = %d, want %d", got, want)
	}
}

func TestSlowWithoutInput(t *testing.T) {
	p := program.New()
	s := NewSlow()
	add(t, p, "s", s)
	s.Recompute()
	run(t, p)
	if got := intOut(t, s.out); got != 1 {
		t.Errorf("output = %d, want 1", got)
	}
}

func TestAwaitCounter(t *testing.T) {
	p := program.New()
	a := NewAwaitCounter()
	add(t, p, "a", a)

	a.Trigger().Resolve(nil)
	run(t, p)
	if got := intOut(t, a.out); got != 1 {
		t.Fatalf("counter = %d, want 1", got)
	}

	f := a.Trigger()
	go func() {
		time.Sleep(10 * time.Millisecond)
		f.Resolve(10)
	}()
	run(t, p)
	if got := intOut(t, a.out); got != 11 {
		t.Fatalf("counter = %d, want 11", got)
	}

	hi := errors.New("hi")
	a.Trigger().Reject(hi)
	run(t, p)
	st, _ := p.Status("a")
	if st.State != program.Failed || !errors.Is(st.Err, hi) {
		t.Errorf("status = %+v, want Failed with the rejection", st)
	}
	if got := intOut(t, a.out); got != 11 {
		t.Errorf("counter = %d after rejection, want 11", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestGraphRenderLogsWriteErrors(t *testing.T) {
	p := program.New()
	ed := NewGraph(nil)
	add(t, p, "ed", ed)
	run(t, p)

	var logs bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(&logs))
	defer log.SetDefault(prev)

	ed.Render(failingWriter{})
	if out := logs.String(); !strings.Contains(out, "disk full") || !strings.Contains(out, "box=ed") {
		t.Errorf("log output = %q", out)
	}
}
