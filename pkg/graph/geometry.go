package graph

import (
	"fmt"
	"math"
)

// Flatten returns the nodes and the edges with resolved endpoints, both in
// insertion order.
func (g *Graph) Flatten() ([]Node, []FlatEdge) {
	names := g.Nodes()
	nodes := make([]Node, len(names))
	for i, n := range names {
		nodes[i] = g.nodes[n]
	}

	enames := g.Edges()
	edges := make([]FlatEdge, len(enames))
	for i, n := range enames {
		e := g.edges[n]
		edges[i] = FlatEdge{Name: e.Name, From: g.nodes[e.From], To: g.nodes[e.To]}
	}
	return nodes, edges
}

// BoundingBox returns the smallest rectangle containing every node.
// An empty graph yields the zero Bounds.
func (g *Graph) BoundingBox() Bounds {
	if len(g.nodes) == 0 {
		return Bounds{}
	}
	b := Bounds{
		X1: math.Inf(1), Y1: math.Inf(1),
		X2: math.Inf(-1), Y2: math.Inf(-1),
	}
	for _, n := range g.nodes {
		b.X1 = math.Min(b.X1, n.X)
		b.Y1 = math.Min(b.Y1, n.Y)
		b.X2 = math.Max(b.X2, n.X)
		b.Y2 = math.Max(b.Y2, n.Y)
	}
	return b
}

// EdgeIntersections returns every crossing between two edges that share no
// endpoint. For edges i and j with j inserted before i, the result reports
// i as EdgeA and j as EdgeB; results are ordered by i, then j.
//
// Segments with a zero cross product (parallel or collinear) never
// intersect, even when collinear segments overlap. Crossings exactly at a
// segment end (time 0 or 1) are included.
func (g *Graph) EdgeIntersections() []Intersection {
	_, edges := g.Flatten()
	var out []Intersection
	for i := range edges {
		for j := 0; j < i; j++ {
			if x, ok := intersect(edges[i], edges[j]); ok {
				out = append(out, x)
			}
		}
	}
	return out
}

func intersect(a, b FlatEdge) (Intersection, bool) {
	if a.From.Name == b.From.Name || a.From.Name == b.To.Name ||
		a.To.Name == b.From.Name || a.To.Name == b.To.Name {
		return Intersection{}, false
	}

	ax, ay := a.From.X, a.From.Y
	adx, ady := a.To.X-ax, a.To.Y-ay
	bx, by := b.From.X, b.From.Y
	bdx, bdy := b.To.X-bx, b.To.Y-by

	den := adx*bdy - ady*bdx
	if den == 0 {
		return Intersection{}, false
	}
	ta := (bdy*(bx-ax) - bdx*(by-ay)) / den
	if ta < 0 || ta > 1 {
		return Intersection{}, false
	}
	tb := (ady*(ax-bx) - adx*(ay-by)) / -den
	if tb < 0 || tb > 1 {
		return Intersection{}, false
	}
	return Intersection{
		EdgeA: a.Name,
		EdgeB: b.Name,
		TimeA: ta,
		TimeB: tb,
		X:     ax + ta*adx,
		Y:     ay + ta*ady,
	}, true
}

// Complemented returns a new graph with g's nodes and an edge for every
// unordered pair of distinct nodes that g does not connect in either
// direction. Edges are oriented from the earlier-inserted node to the
// later one and get generated names.
func (g *Graph) Complemented() *Graph {
	out := New(g.directed)
	names := g.Nodes()
	for _, n := range names {
		node := g.nodes[n]
		mustAdd(out.AddNode(node.Name, node.X, node.Y))
	}
	for i, a := range names {
		for _, b := range names[i+1:] {
			if g.HasEdgeBetween(a, b) || g.HasEdgeBetween(b, a) {
				continue
			}
			mustAdd(out.AddEdge("", a, b))
		}
	}
	return out
}

// mustAdd panics on errors that a freshly built graph cannot produce.
func mustAdd(_ string, err error) {
	if err != nil {
		panic(fmt.Sprintf("graph: building derived graph: %v", err))
	}
}
