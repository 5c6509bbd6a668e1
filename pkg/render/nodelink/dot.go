package nodelink

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/apg/pkg/graph"
)

// DefaultScale is the number of graph units per inch.
const DefaultScale = 72.0

// Options configures node-link diagram rendering.
type Options struct {
	// Labels prints node names. When false nodes are bare points.
	Labels bool

	// Crossings adds a marker at every edge intersection.
	Crossings bool

	// Scale is graph units per inch. Zero means [DefaultScale].
	Scale float64
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return DefaultScale
	}
	return o.Scale
}

// ToDOT converts a graph to Graphviz DOT with pinned node positions.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Undirected graphs produce a "graph" with "--" edges, directed graphs a
// "digraph" with "->" edges. Nodes and edges appear in insertion order.
func ToDOT(g *graph.Graph, opts Options) string {
	kind, op := "graph", "--"
	if g.Directed() {
		kind, op = "digraph", "->"
	}
	s := opts.scale()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	if opts.Labels {
		buf.WriteString("  node [shape=circle, width=0.12, fixedsize=true, style=filled, fillcolor=black, label=\"\", xlabel=\"\\N\", fontsize=10];\n")
	} else {
		buf.WriteString("  node [shape=circle, width=0.12, fixedsize=true, style=filled, fillcolor=black, label=\"\"];\n")
	}
	buf.WriteString("  edge [penwidth=1.5];\n")
	buf.WriteString("\n")

	nodes, edges := g.Flatten()
	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %q [pos=%q];\n", n.Name, pos(n.X, n.Y, s))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q %s %q [id=%q];\n", e.From.Name, op, e.To.Name, e.Name)
	}

	if opts.Crossings {
		buf.WriteString("\n")
		for i, x := range g.EdgeIntersections() {
			fmt.Fprintf(&buf, "  \"crossing %d\" [pos=%q, shape=point, width=0.08, color=red, fillcolor=red, xlabel=\"\", tooltip=%q];\n",
				i, pos(x.X, x.Y, s), x.EdgeA+" x "+x.EdgeB)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// pos formats a pinned neato position in inches. y is flipped with 0-y so
// that zero stays "0" rather than "-0".
func pos(x, y, scale float64) string {
	return strconv.FormatFloat(x/scale, 'f', -1, 64) + "," + strconv.FormatFloat((0-y)/scale, 'f', -1, 64) + "!"
}
