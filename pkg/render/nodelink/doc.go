// Package nodelink renders positioned graphs as node-link diagrams.
//
// # Overview
//
// This package turns a graph.Graph into Graphviz DOT with every node pinned
// at its own coordinates, then renders it with the neato engine so nothing
// is moved. Edge crossings can be marked.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [Render] does both and converts to PDF or PNG on request:
//
//	png, err := nodelink.Render(ctx, g, nodelink.Options{}, nodelink.FormatPNG)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Labels: print node names next to the points
//   - Crossings: add a red marker at every edge intersection
//   - Scale: graph units per inch (default 72, so one unit is one point)
//
// # Coordinates
//
// Graph coordinates grow downwards, Graphviz coordinates grow upwards, so y
// is negated when pinning.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
