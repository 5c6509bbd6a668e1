// Package pkg provides the core libraries for apg, a toolkit for positioned
// graphs and the dataflow programs that edit them.
//
// # Overview
//
// A graph in apg is a value: nodes carry coordinates, names are unique, and
// a frozen graph is safe to share between boxes. Programs connect boxes by
// wires from output plugs to input plugs; publishing on an output delivers
// a value to every wired input and schedules the receiving boxes.
//
// # Architecture
//
// The typical data flow through apg:
//
//	graph document (JSON/TOML)
//	         ↓
//	    [graphio] package (decode, validate names)
//	         ↓
//	    [graph] package (edit, proxies, intersections, complement)
//	         ↓
//	    [program] package (boxes, wires, cooperative runs)
//	         ↓
//	    [render/nodelink] package (DOT/SVG/PDF/PNG)
//
// # Quick Start
//
// Build a graph through a proxy and count its crossings:
//
//	g := graph.New(false)
//	cell := g.Offset(100, 0, 1, "c1/", 0)
//	a, _ := cell.AddNode("a", 0, 0)
//	b, _ := cell.AddNode("b", 50, 50)
//	cell.AddEdge("", a, b)
//	fmt.Println(len(g.EdgeIntersections()))
//
// Run a small program:
//
//	p := program.New()
//	p.AddBox("example", boxes.NewExampleGraph())
//	p.AddBox("crossings", boxes.NewIntersections())
//	p.AddWire("example", "graph", "crossings", "graph")
//	err := p.Run(ctx)
//
// # Main Packages
//
// [value] - The value contract: equality, cloning, and the scalar and list
// containers that travel between plugs.
//
// [graph] - The graph ADT with geometry (flattening, bounding boxes, edge
// intersections, complement) and [graph.Proxy] views that offset, scale,
// rotate and prefix names.
//
// [box] - Boxes, input and output plugs, futures and the task interface a
// box uses to schedule work.
//
// [program] - The scheduler that owns boxes and wires and drives runs.
//
// [boxes] - The catalogue of ready-made boxes.
//
// [graphio] - JSON and TOML graph documents.
//
// [render/nodelink] - Node-link rendering through Graphviz.
//
// [cache] - Render cache backends: file, Redis and null.
//
// [observability] - Hooks for program, render and cache events, with a
// Prometheus implementation in [observability/metrics].
//
// [errors] - Structured error codes shared by every package.
//
// [value]: https://pkg.go.dev/github.com/matzehuels/apg/pkg/value
// [graph]: https://pkg.go.dev/github.com/matzehuels/apg/pkg/graph
// [graph.Proxy]: https://pkg.go.dev/github.com/matzehuels/apg/pkg/graph#Proxy
// [box]: https://pkg.go.dev/github.com/matzehuels/apg/pkg/box
// [program]: https://pkg.go.dev/github.com/matzehuels/apg/pkg/program
// [boxes]: https://pkg.go.dev/github.com/matzehuels/apg/pkg/boxes
// [graphio]: https://pkg.go.dev/github.com/matzehuels/apg/pkg/graphio
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/apg/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/matzehuels/apg/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/apg/pkg/observability
// [observability/metrics]: https://pkg.go.dev/github.com/matzehuels/apg/pkg/observability/metrics
// [errors]: https://pkg.go.dev/github.com/matzehuels/apg/pkg/errors
package pkg
