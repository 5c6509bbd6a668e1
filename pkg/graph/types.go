package graph

import (
	"fmt"

	"github.com/matzehuels/apg/pkg/value"
)

// Node is a named point in the plane.
type Node struct {
	Name string
	X, Y float64
}

// Equal reports whether other is a Node with the same name and coordinates.
func (n Node) Equal(other value.Value) bool {
	o, ok := other.(Node)
	return ok && o == n
}

// Clone returns n.
func (n Node) Clone() value.Value { return n }

// Freeze is a no-op.
func (n Node) Freeze() {}

// Edge connects two nodes by name. For undirected graphs From and To are
// just the order in which the endpoints were given.
type Edge struct {
	Name     string
	From, To string
}

// Other returns the endpoint of e opposite node.
// Returns ErrUnknownNode if node is not an endpoint of e.
func (e Edge) Other(node string) (string, error) {
	switch node {
	case e.From:
		return e.To, nil
	case e.To:
		return e.From, nil
	}
	return "", fmt.Errorf("%q is not an endpoint of edge %q: %w", node, e.Name, ErrUnknownNode)
}

// Touches reports whether node is one of e's endpoints.
func (e Edge) Touches(node string) bool { return e.From == node || e.To == node }

// Equal reports whether other is an Edge with the same name and endpoints.
func (e Edge) Equal(other value.Value) bool {
	o, ok := other.(Edge)
	return ok && o == e
}

// Clone returns e.
func (e Edge) Clone() value.Value { return e }

// Freeze is a no-op.
func (e Edge) Freeze() {}

// FlatEdge is an edge with its endpoint nodes resolved, as produced by
// [Graph.Flatten].
type FlatEdge struct {
	Name     string
	From, To Node
}

// Bounds is an axis-aligned rectangle. X1,Y1 is the minimum corner.
type Bounds struct {
	X1, Y1, X2, Y2 float64
}

// Width returns X2 - X1.
func (b Bounds) Width() float64 { return b.X2 - b.X1 }

// Height returns Y2 - Y1.
func (b Bounds) Height() float64 { return b.Y2 - b.Y1 }

// Intersection is a crossing between two edges treated as segments.
// TimeA and TimeB are the positions along each edge, from 0 at the From
// endpoint to 1 at the To endpoint.
type Intersection struct {
	EdgeA, EdgeB string
	TimeA, TimeB float64
	X, Y         float64
}

// Equal reports whether other is an identical Intersection.
func (i Intersection) Equal(other value.Value) bool {
	o, ok := other.(Intersection)
	return ok && o == i
}

// Clone returns i.
func (i Intersection) Clone() value.Value { return i }

// Freeze is a no-op.
func (i Intersection) Freeze() {}
