// Package graphio provides the file format for positioned graphs.
//
// This package sits at the serialization boundary: it converts between
// graph.Graph and a plain [Document] that encodes as JSON or TOML. It only
// uses the public graph API, so every document that loads also satisfies
// the graph's invariants (no self-loops, no parallel edges, unique names).
//
// # Format
//
//	{
//	  "directed": false,
//	  "nodes": [{"name": "tl", "x": 0, "y": 0}, {"name": "br", "x": 100, "y": 100}],
//	  "edges": [{"name": "diag", "from": "tl", "to": "br"}]
//	}
//
// The same document in TOML:
//
//	directed = false
//
//	[[nodes]]
//	name = "tl"
//	x = 0.0
//	y = 0.0
//
//	[[edges]]
//	from = "tl"
//	to = "br"
//
// Edge names are optional; missing ones are generated on load.
//
// # Common operations
//
//	g, _ := graphio.ReadFile("square.toml")   // File → Graph
//	graphio.WriteFile(g, "square.json")       // Graph → File
//	data, _ := graphio.Marshal(g, graphio.JSON)
package graphio
