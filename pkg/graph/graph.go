package graph

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/matzehuels/apg/pkg/value"
)

const (
	nodePrefix = "node"
	edgePrefix = "edge"
)

// Graph is a set of positioned nodes and the edges between them.
// The zero value is not usable; create graphs with [New].
type Graph struct {
	directed bool

	nodes map[string]Node
	edges map[string]Edge
	index incidence
	pairs map[string]string // pairKey -> edge name

	lastAdded string

	// clock orders insertions and seeds generated names. It is not part of
	// the graph's value.
	clock     uint64
	nodeOrder map[string]uint64
	edgeOrder map[string]uint64

	frozen bool
}

// New returns an empty graph. Directedness is fixed for the graph's lifetime.
func New(directed bool) *Graph {
	return &Graph{
		directed:  directed,
		nodes:     make(map[string]Node),
		edges:     make(map[string]Edge),
		index:     newIncidence(directed),
		pairs:     make(map[string]string),
		nodeOrder: make(map[string]uint64),
		edgeOrder: make(map[string]uint64),
	}
}

// Directed reports whether edges have a direction.
func (g *Graph) Directed() bool { return g.directed }

// Frozen reports whether [Graph.Freeze] has been called.
func (g *Graph) Frozen() bool { return g.frozen }

// =============================================================================
// Mutation
// =============================================================================

// AddNode adds a node at (x, y) and returns its name. If name is empty a
// fresh one is generated. The new node becomes [Graph.LastAdded].
//
// Returns ErrDuplicateNode if the name is taken, ErrFrozen if the graph is frozen.
func (g *Graph) AddNode(name string, x, y float64) (string, error) {
	if g.frozen {
		return "", fmt.Errorf("add node: %w", ErrFrozen)
	}
	if name == "" {
		name = g.unusedNodeName("")
	}
	if _, ok := g.nodes[name]; ok {
		return "", fmt.Errorf("add node %q: %w", name, ErrDuplicateNode)
	}
	g.nodes[name] = Node{Name: name, X: x, Y: y}
	g.index.addNode(name)
	g.nodeOrder[name] = g.tick()
	g.lastAdded = name
	return name, nil
}

// MoveNode sets the coordinates of an existing node.
//
// Returns ErrUnknownNode if the node does not exist, ErrFrozen if the graph is frozen.
func (g *Graph) MoveNode(name string, x, y float64) error {
	if g.frozen {
		return fmt.Errorf("move node: %w", ErrFrozen)
	}
	n, ok := g.nodes[name]
	if !ok {
		return fmt.Errorf("move node %q: %w", name, ErrUnknownNode)
	}
	n.X, n.Y = x, y
	g.nodes[name] = n
	return nil
}

// DeleteNode removes a node and every edge incident to it.
// If the node was [Graph.LastAdded], LastAdded is cleared rather than
// restored, so AddNode followed by DeleteNode gives an Equal graph only
// when LastAdded was empty beforehand.
//
// Returns ErrUnknownNode if the node does not exist, ErrFrozen if the graph is frozen.
func (g *Graph) DeleteNode(name string) error {
	if g.frozen {
		return fmt.Errorf("delete node: %w", ErrFrozen)
	}
	if _, ok := g.nodes[name]; !ok {
		return fmt.Errorf("delete node %q: %w", name, ErrUnknownNode)
	}
	if g.lastAdded == name {
		g.lastAdded = ""
	}
	for _, e := range g.index.from(name).names() {
		g.removeEdge(e)
	}
	if g.directed {
		for _, e := range g.index.to(name).names() {
			g.removeEdge(e)
		}
	}
	g.index.removeNode(name)
	delete(g.nodes, name)
	delete(g.nodeOrder, name)
	return nil
}

// AddEdge connects two existing nodes and returns the edge's name. If name
// is empty a fresh one is generated.
//
// Checks run in this order: ErrUnknownNode if either endpoint is missing,
// ErrDuplicateEdge if the name is taken, ErrSelfLoop if from == to,
// ErrParallelEdge if the pair is already connected. A frozen graph returns
// ErrFrozen before any of them.
func (g *Graph) AddEdge(name, from, to string) (string, error) {
	if g.frozen {
		return "", fmt.Errorf("add edge: %w", ErrFrozen)
	}
	if !g.HasNode(from) || !g.HasNode(to) {
		return "", fmt.Errorf("add edge %q -> %q: %w", from, to, ErrUnknownNode)
	}
	if name == "" {
		name = unusedName(edgePrefix, g.clock, g.edges)
	}
	if _, ok := g.edges[name]; ok {
		return "", fmt.Errorf("add edge %q: %w", name, ErrDuplicateEdge)
	}
	if from == to {
		return "", fmt.Errorf("add edge %q on %q: %w", name, from, ErrSelfLoop)
	}
	key := pairKey(from, to, g.directed)
	if existing, ok := g.pairs[key]; ok {
		return "", fmt.Errorf("add edge %q -> %q (have %q): %w", from, to, existing, ErrParallelEdge)
	}

	e := Edge{Name: name, From: from, To: to}
	g.edges[name] = e
	g.index.link(e)
	g.pairs[key] = name
	g.edgeOrder[name] = g.tick()
	return name, nil
}

// DeleteEdge removes an edge.
//
// Returns ErrUnknownEdge if the edge does not exist, ErrFrozen if the graph is frozen.
func (g *Graph) DeleteEdge(name string) error {
	if g.frozen {
		return fmt.Errorf("delete edge: %w", ErrFrozen)
	}
	if _, ok := g.edges[name]; !ok {
		return fmt.Errorf("delete edge %q: %w", name, ErrUnknownEdge)
	}
	g.removeEdge(name)
	return nil
}

// removeEdge drops an edge known to exist from every index.
func (g *Graph) removeEdge(name string) {
	e, ok := g.edges[name]
	if !ok {
		panic(fmt.Sprintf("graph: incidence index references missing edge %q", name))
	}
	g.index.unlink(e)
	delete(g.pairs, pairKey(e.From, e.To, g.directed))
	delete(g.edges, name)
	delete(g.edgeOrder, name)
}

func (g *Graph) tick() uint64 {
	t := g.clock
	g.clock++
	return t
}

// unusedNodeName returns the first free "<prefix>node<N>" with N at or
// after the graph's clock.
func (g *Graph) unusedNodeName(prefix string) string {
	return unusedName(prefix+nodePrefix, g.clock, g.nodes)
}

func unusedName[V any](prefix string, start uint64, taken map[string]V) string {
	for n := start; ; n++ {
		name := prefix + strconv.FormatUint(n, 10)
		if _, ok := taken[name]; !ok {
			return name
		}
	}
}

// =============================================================================
// Queries
// =============================================================================

// Node returns the named node.
func (g *Graph) Node(name string) (Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Edge returns the named edge.
func (g *Graph) Edge(name string) (Edge, bool) {
	e, ok := g.edges[name]
	return e, ok
}

// HasNode reports whether the named node exists.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// HasEdge reports whether the named edge exists.
func (g *Graph) HasEdge(name string) bool {
	_, ok := g.edges[name]
	return ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns node names in insertion order.
func (g *Graph) Nodes() []string { return inOrder(g.nodeOrder) }

// Edges returns edge names in insertion order.
func (g *Graph) Edges() []string { return inOrder(g.edgeOrder) }

// EdgesFrom returns the names of edges leaving node, sorted. For undirected
// graphs this is every edge incident to node. Returns nil for unknown nodes.
func (g *Graph) EdgesFrom(node string) []string {
	s := g.index.from(node)
	if s == nil {
		return nil
	}
	return s.sorted()
}

// EdgesTo returns the names of edges entering node, sorted. For undirected
// graphs this is the same as [Graph.EdgesFrom].
func (g *Graph) EdgesTo(node string) []string {
	s := g.index.to(node)
	if s == nil {
		return nil
	}
	return s.sorted()
}

// HasEdgeBetween reports whether an edge connects from and to.
// For undirected graphs the result is symmetric.
func (g *Graph) HasEdgeBetween(from, to string) bool {
	_, ok := g.pairs[pairKey(from, to, g.directed)]
	return ok
}

// EdgeBetween returns the name of the edge connecting from and to.
func (g *Graph) EdgeBetween(from, to string) (string, bool) {
	name, ok := g.pairs[pairKey(from, to, g.directed)]
	return name, ok
}

// LastAdded returns the most recently added node that still exists.
func (g *Graph) LastAdded() (string, bool) {
	return g.lastAdded, g.lastAdded != ""
}

func inOrder(order map[string]uint64) []string {
	names := slices.Collect(maps.Keys(order))
	slices.SortFunc(names, func(a, b string) int { return cmp.Compare(order[a], order[b]) })
	return names
}

// =============================================================================
// value.Value
// =============================================================================

// Equal reports whether other is a *Graph with the same directedness,
// last-added node, nodes, edges and indices. Insertion order and frozen
// state are ignored.
func (g *Graph) Equal(other value.Value) bool {
	o, ok := other.(*Graph)
	if !ok {
		return false
	}
	if g == o {
		return true
	}
	return g.directed == o.directed &&
		g.lastAdded == o.lastAdded &&
		maps.Equal(g.nodes, o.nodes) &&
		maps.Equal(g.edges, o.edges) &&
		maps.Equal(g.pairs, o.pairs) &&
		g.index.equal(o.index)
}

// Clone returns an independent, unfrozen copy of g.
func (g *Graph) Clone() value.Value { return g.Copy() }

// Copy is [Graph.Clone] with a concrete return type.
func (g *Graph) Copy() *Graph {
	return &Graph{
		directed:  g.directed,
		nodes:     maps.Clone(g.nodes),
		edges:     maps.Clone(g.edges),
		index:     g.index.clone(),
		pairs:     maps.Clone(g.pairs),
		lastAdded: g.lastAdded,
		clock:     g.clock,
		nodeOrder: maps.Clone(g.nodeOrder),
		edgeOrder: maps.Clone(g.edgeOrder),
	}
}

// Freeze makes g immutable. Every mutating method returns ErrFrozen afterwards.
func (g *Graph) Freeze() { g.frozen = true }
