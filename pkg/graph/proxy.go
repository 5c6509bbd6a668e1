package graph

import (
	"math"
	"strings"
)

// EscapePrefix marks an edge endpoint passed to [Proxy.AddEdge] as already
// fully qualified. The prefix is stripped and the rest is used verbatim.
const EscapePrefix = "$"

// layer is implemented by *Graph and *Proxy. A proxy forwards coordinate
// mapping and name qualification to its parent until it reaches the graph.
type layer interface {
	toGraph(x, y float64) (float64, float64)
	qualify(name string) string
	root() *Graph
}

func (g *Graph) toGraph(x, y float64) (float64, float64) { return x, y }
func (g *Graph) qualify(name string) string               { return name }
func (g *Graph) root() *Graph                             { return g }

// Proxy is a view of a graph through an affine transform and a name prefix.
// Coordinates given to a proxy are rotated by rot radians, scaled, then
// translated by (cx, cy); names are prefixed. Proxies do not own state apart
// from their own last-added node.
type Proxy struct {
	parent layer
	cx, cy float64
	scale  float64
	sin    float64
	cos    float64
	prefix string

	lastAdded string
}

// Offset returns a proxy onto g. See [Proxy] for the transform.
func (g *Graph) Offset(cx, cy, scale float64, prefix string, rot float64) *Proxy {
	return newProxy(g, cx, cy, scale, prefix, rot)
}

// Translate is Offset with unit scale, no prefix and no rotation.
func (g *Graph) Translate(cx, cy float64) *Proxy { return g.Offset(cx, cy, 1, "", 0) }

// Offset returns a proxy layered on p. Transforms and prefixes compose:
// the inner proxy's transform is applied first, its prefix ends up last.
func (p *Proxy) Offset(cx, cy, scale float64, prefix string, rot float64) *Proxy {
	return newProxy(p, cx, cy, scale, prefix, rot)
}

// Translate is Offset with unit scale, no prefix and no rotation.
func (p *Proxy) Translate(cx, cy float64) *Proxy { return p.Offset(cx, cy, 1, "", 0) }

func newProxy(parent layer, cx, cy, scale float64, prefix string, rot float64) *Proxy {
	sin, cos := math.Sincos(rot)
	return &Proxy{parent: parent, cx: cx, cy: cy, scale: scale, sin: sin, cos: cos, prefix: prefix}
}

func (p *Proxy) toGraph(x, y float64) (float64, float64) {
	rx := x*p.cos - y*p.sin
	ry := x*p.sin + y*p.cos
	return p.parent.toGraph(p.cx+p.scale*rx, p.cy+p.scale*ry)
}

func (p *Proxy) qualify(name string) string { return p.parent.qualify(p.prefix + name) }
func (p *Proxy) root() *Graph               { return p.parent.root() }

// Graph returns the underlying graph.
func (p *Proxy) Graph() *Graph { return p.root() }

// Qualify returns the graph-level name for a proxy-local node name.
func (p *Proxy) Qualify(name string) string { return p.qualify(name) }

// ToGraph maps proxy-local coordinates to graph coordinates.
func (p *Proxy) ToGraph(x, y float64) (float64, float64) { return p.toGraph(x, y) }

// AddNode adds a node at local coordinates and returns its local name. If
// name is empty a fresh one is generated under the proxy's full prefix.
func (p *Proxy) AddNode(name string, x, y float64) (string, error) {
	g := p.root()
	base := p.qualify("")
	full := base + name
	if name == "" {
		full = g.unusedNodeName(base)
	}
	gx, gy := p.toGraph(x, y)
	if _, err := g.AddNode(full, gx, gy); err != nil {
		return "", err
	}
	local := strings.TrimPrefix(full, base)
	p.lastAdded = local
	return local, nil
}

// MoveNode moves a node addressed by its local name to local coordinates.
func (p *Proxy) MoveNode(name string, x, y float64) error {
	gx, gy := p.toGraph(x, y)
	return p.root().MoveNode(p.qualify(name), gx, gy)
}

// DeleteNode deletes a node addressed by its local name.
func (p *Proxy) DeleteNode(name string) error {
	if err := p.root().DeleteNode(p.qualify(name)); err != nil {
		return err
	}
	if p.lastAdded == name {
		p.lastAdded = ""
	}
	return nil
}

// AddEdge connects two nodes addressed by local name. Endpoints starting
// with [EscapePrefix] are taken as graph-level names. The edge name is not
// prefixed.
func (p *Proxy) AddEdge(name, from, to string) (string, error) {
	return p.root().AddEdge(name, p.resolve(from), p.resolve(to))
}

// LastAdded returns the local name of the last node added through p.
func (p *Proxy) LastAdded() (string, bool) {
	return p.lastAdded, p.lastAdded != ""
}

func (p *Proxy) resolve(name string) string {
	if rest, ok := strings.CutPrefix(name, EscapePrefix); ok {
		return rest
	}
	return p.qualify(name)
}
