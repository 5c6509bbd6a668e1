// Package render provides output rendering for graphs.
//
// # Overview
//
// Graphs carry their own coordinates, so rendering never computes a layout:
// it pins every node where the graph put it and draws edges as straight
// segments, which keeps crossings in the picture exactly where
// graph.EdgeIntersections reports them.
//
//   - Generic format conversion (SVG to PDF/PNG) lives here
//   - Node-link diagrams live in the [nodelink] subpackage
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/apg/pkg/render/nodelink
package render
