package graph

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestEdgeIntersectionsUnitSquare(t *testing.T) {
	g := square(t, false)
	mustEdge(t, g, "d1", "tl", "br")
	mustEdge(t, g, "d2", "tr", "bl")

	got := g.EdgeIntersections()
	if len(got) != 1 {
		t.Fatalf("got %d intersections, want 1", len(got))
	}
	x := got[0]
	if x.EdgeA != "d2" || x.EdgeB != "d1" {
		t.Errorf("edges = (%s, %s), want (d2, d1)", x.EdgeA, x.EdgeB)
	}
	if !near(x.X, 0.5) || !near(x.Y, 0.5) {
		t.Errorf("point = (%v, %v), want (0.5, 0.5)", x.X, x.Y)
	}
	if !near(x.TimeA, 0.5) || !near(x.TimeB, 0.5) {
		t.Errorf("times = (%v, %v), want (0.5, 0.5)", x.TimeA, x.TimeB)
	}
}

func TestEdgeIntersectionsNone(t *testing.T) {
	tests := []struct {
		name  string
		edges [][2]string
	}{
		{"parallel", [][2]string{{"tl", "tr"}, {"bl", "br"}}},
		{"shared endpoint", [][2]string{{"tl", "br"}, {"tl", "tr"}}},
		{"disjoint", [][2]string{{"tl", "bl"}, {"tr", "br"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := square(t, false)
			for _, e := range tt.edges {
				mustEdge(t, g, "", e[0], e[1])
			}
			if got := g.EdgeIntersections(); len(got) != 0 {
				t.Errorf("got %v, want none", got)
			}
		})
	}
}

func TestEdgeIntersectionsCollinearOverlap(t *testing.T) {
	g := New(false)
	for i, x := range []float64{0, 1, 2, 3} {
		if _, err := g.AddNode(string(rune('a'+i)), x, 0); err != nil {
			t.Fatal(err)
		}
	}
	mustEdge(t, g, "", "a", "c")
	mustEdge(t, g, "", "b", "d")
	if got := g.EdgeIntersections(); len(got) != 0 {
		t.Errorf("collinear overlapping segments reported %v", got)
	}
}

func TestEdgeIntersectionsEndpointTouch(t *testing.T) {
	g := New(false)
	_, _ = g.AddNode("a", 0, 0)
	_, _ = g.AddNode("b", 2, 0)
	_, _ = g.AddNode("c", 1, 0)
	_, _ = g.AddNode("d", 1, 5)
	mustEdge(t, g, "h", "a", "b")
	mustEdge(t, g, "v", "c", "d")

	got := g.EdgeIntersections()
	if len(got) != 1 {
		t.Fatalf("got %d intersections, want 1", len(got))
	}
	if !near(got[0].TimeA, 0) || !near(got[0].TimeB, 0.5) {
		t.Errorf("times = (%v, %v), want (0, 0.5)", got[0].TimeA, got[0].TimeB)
	}
}

func TestBoundingBox(t *testing.T) {
	if got := New(false).BoundingBox(); got != (Bounds{}) {
		t.Errorf("empty BoundingBox() = %+v, want zero", got)
	}

	g := New(false)
	_, _ = g.AddNode("a", -1, 4)
	_, _ = g.AddNode("b", 3, -2)
	_, _ = g.AddNode("c", 0, 0)
	want := Bounds{X1: -1, Y1: -2, X2: 3, Y2: 4}
	got := g.BoundingBox()
	if got != want {
		t.Errorf("BoundingBox() = %+v, want %+v", got, want)
	}
	if got.Width() != 4 || got.Height() != 6 {
		t.Errorf("Width/Height = %v/%v", got.Width(), got.Height())
	}
}

func TestFlatten(t *testing.T) {
	g := square(t, true)
	mustEdge(t, g, "e", "br", "tl")

	nodes, edges := g.Flatten()
	if len(nodes) != 4 || nodes[0].Name != "tl" || nodes[3].Name != "br" {
		t.Errorf("nodes = %+v", nodes)
	}
	if len(edges) != 1 {
		t.Fatalf("edges = %+v", edges)
	}
	if edges[0].From.Name != "br" || edges[0].From.X != 1 || edges[0].To.Name != "tl" {
		t.Errorf("edge = %+v", edges[0])
	}
}

func TestComplemented(t *testing.T) {
	g := square(t, false)
	mustEdge(t, g, "", "tl", "br")
	mustEdge(t, g, "", "tr", "bl")

	c := g.Complemented()
	if c.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", c.NodeCount())
	}
	if c.EdgeCount() != 4 {
		t.Errorf("EdgeCount() = %d, want 4", c.EdgeCount())
	}
	for _, pair := range [][2]string{{"tl", "tr"}, {"tl", "bl"}, {"tr", "br"}, {"bl", "br"}} {
		if !c.HasEdgeBetween(pair[0], pair[1]) {
			t.Errorf("complement missing %v", pair)
		}
	}
	if c.HasEdgeBetween("tl", "br") || c.HasEdgeBetween("tr", "bl") {
		t.Error("complement kept an original edge")
	}
	if len(c.EdgeIntersections()) != 0 {
		t.Error("square outline should not self-intersect")
	}
}

func TestComplementedDirected(t *testing.T) {
	g := New(true)
	_, _ = g.AddNode("a", 0, 0)
	_, _ = g.AddNode("b", 1, 0)
	_, _ = g.AddNode("c", 2, 0)
	mustEdge(t, g, "", "b", "a")

	c := g.Complemented()
	if c.HasEdgeBetween("a", "b") || c.HasEdgeBetween("b", "a") {
		t.Error("pair connected in either direction should stay unconnected")
	}
	if !c.HasEdgeBetween("a", "c") || !c.HasEdgeBetween("b", "c") {
		t.Error("missing pairs should be oriented in insertion order")
	}
	if c.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", c.EdgeCount())
	}
}

func TestComplementedTwiceRestoresPairs(t *testing.T) {
	g := square(t, false)
	mustEdge(t, g, "", "tl", "tr")
	mustEdge(t, g, "", "bl", "br")

	cc := g.Complemented().Complemented()
	for _, a := range g.Nodes() {
		for _, b := range g.Nodes() {
			if g.HasEdgeBetween(a, b) != cc.HasEdgeBetween(a, b) {
				t.Errorf("pair (%s, %s) differs after double complement", a, b)
			}
		}
	}
}
