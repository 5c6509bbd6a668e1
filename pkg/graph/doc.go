// Package graph provides the 2-D node/edge graph value that boxes publish
// through plugs, together with its geometry queries and an affine authoring
// proxy.
//
// # Overview
//
// A [Graph] holds named [Node]s with x/y coordinates and named [Edge]s between
// them. Graphs are either directed or undirected, chosen once by [New], and
// never contain self-loops or parallel edges: for undirected graphs the pair
// (a, b) is the same as (b, a), for directed graphs it is not.
//
//	g := graph.New(false)
//	g.AddNode("tl", 0, 0)
//	g.AddNode("br", 1, 1)
//	g.AddEdge("", "tl", "br") // generated name, e.g. "edge2"
//
// Every mutating method either applies completely or returns an error without
// changing anything observable.
//
// # Names
//
// Passing "" as a node or edge name asks the graph to generate one. Generated
// names are "<prefix>node<N>" and "edge<N>", where N comes from a per-graph
// counter that only moves forward and skips names already in use, so generated
// names never collide with explicit ones. Node and edge names live in separate
// namespaces.
//
// # Indices
//
// Besides the node and edge maps, a graph keeps an incidence index (edges
// touching each node) and a pair index (canonical node pair to edge name), so
// [Graph.EdgesFrom], [Graph.HasEdgeBetween] and [Graph.EdgeBetween] are O(1)
// lookups. Directed graphs keep separate outgoing and incoming indices;
// undirected graphs keep a single shared one, which is why [Graph.EdgesFrom]
// on an undirected graph returns edges in which the node is the "to" endpoint.
//
// Pair keys length-prefix each name ("2|ab|1|c"), so "ab"+"c" and "a"+"bc"
// never share a key.
//
// # Geometry
//
// [Graph.BoundingBox] and [Graph.Flatten] feed renderers.
// [Graph.EdgeIntersections] treats every edge as a segment and reports the
// crossing points of each pair of edges that do not share an endpoint. Parallel
// segments are never reported, including collinear segments that overlap.
// [Graph.Complemented] returns a graph with the same nodes and an edge for
// every pair that has none.
//
// # Values
//
// *Graph implements [value.Value]. [Graph.Clone] copies all indices,
// [Graph.Freeze] makes every mutating method fail with [ErrFrozen] while reads
// keep working. [Node], [Edge] and [Intersection] are plain value types and
// implement [value.Value] trivially.
//
// # Proxies
//
// [Graph.Offset] returns a [Proxy] that rotates, scales and translates
// coordinates and prefixes node names before forwarding to the graph. Proxies
// nest; each layer only knows its parent:
//
//	tile := g.Offset(100, 0, 0.5, "t1/", 0)
//	tile.AddNode("a", 10, 10) // node "t1/a" at (105, 5)
//	tile.AddEdge("", "a", "$tl") // "$" marks an already qualified name
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. A frozen Graph is safe for
// concurrent reads from any number of goroutines.
package graph
