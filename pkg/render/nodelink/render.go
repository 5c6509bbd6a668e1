package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/apg/pkg/graph"
	"github.com/matzehuels/apg/pkg/observability"
	"github.com/matzehuels/apg/pkg/render"
)

// Output formats accepted by [Render].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatDOT, FormatPDF, FormatPNG}

// Render converts g to DOT and renders it in the requested format.
func Render(ctx context.Context, g *graph.Graph, opts Options, format string) (out []byte, err error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format, g.NodeCount())
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, format, time.Since(start), err) }()

	dot := ToDOT(g, opts)
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(ctx, dot)
	case FormatPDF:
		return RenderPDF(ctx, dot)
	case FormatPNG:
		return RenderPNG(ctx, dot, 2.0)
	default:
		return nil, fmt.Errorf("unsupported format %q (want one of %v)", format, Formats)
	}
}

// RenderSVG lays out dot with neato, which honours the pinned pos
// attributes, and returns the SVG with a unitless width and height so the
// drawing scales with its container. The result can be passed on to
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("graphviz: parse: %w", err)
	}
	defer parsed.Close()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	var svg bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &svg); err != nil {
		return nil, fmt.Errorf("graphviz: layout: %w", err)
	}
	return unitlessSize(svg.Bytes()), nil
}

var sizeAttrRe = regexp.MustCompile(`\b(width|height)="([0-9.]+)pt"`)

// unitlessSize drops the pt unit from width and height on the root svg
// element. Everything else, including the viewBox, is left alone.
func unitlessSize(svg []byte) []byte {
	start := bytes.Index(svg, []byte("<svg"))
	if start < 0 {
		return svg
	}
	end := bytes.IndexByte(svg[start:], '>')
	if end < 0 {
		return svg
	}
	end += start

	out := make([]byte, 0, len(svg))
	out = append(out, svg[:start]...)
	out = append(out, sizeAttrRe.ReplaceAll(svg[start:end], []byte(`$1="$2"`))...)
	return append(out, svg[end:]...)
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
