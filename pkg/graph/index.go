package graph

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// nameSet is a set of edge names.
type nameSet map[string]struct{}

func (s nameSet) names() []string { return slices.Collect(maps.Keys(s)) }

func (s nameSet) sorted() []string { return slices.Sorted(maps.Keys(s)) }

func cloneSets(m map[string]nameSet) map[string]nameSet {
	out := make(map[string]nameSet, len(m))
	for k, s := range m {
		out[k] = maps.Clone(s)
	}
	return out
}

func equalSets(a, b map[string]nameSet) bool {
	return maps.EqualFunc(a, b, func(x, y nameSet) bool { return maps.Equal(x, y) })
}

// incidence records which edges touch each node. Undirected graphs use a
// single shared set per node; directed graphs keep outgoing and incoming
// edges apart.
type incidence interface {
	addNode(name string)
	removeNode(name string)
	link(e Edge)
	unlink(e Edge)
	from(node string) nameSet
	to(node string) nameSet
	clone() incidence
	equal(other incidence) bool
}

func newIncidence(directed bool) incidence {
	if directed {
		return directedIndex{out: map[string]nameSet{}, in: map[string]nameSet{}}
	}
	return undirectedIndex{shared: map[string]nameSet{}}
}

type undirectedIndex struct {
	shared map[string]nameSet
}

func (ix undirectedIndex) addNode(name string)      { ix.shared[name] = nameSet{} }
func (ix undirectedIndex) removeNode(name string)   { delete(ix.shared, name) }
func (ix undirectedIndex) from(node string) nameSet { return ix.shared[node] }
func (ix undirectedIndex) to(node string) nameSet   { return ix.shared[node] }

func (ix undirectedIndex) link(e Edge) {
	ix.shared[e.From][e.Name] = struct{}{}
	ix.shared[e.To][e.Name] = struct{}{}
}

func (ix undirectedIndex) unlink(e Edge) {
	delete(ix.shared[e.From], e.Name)
	delete(ix.shared[e.To], e.Name)
}

func (ix undirectedIndex) clone() incidence {
	return undirectedIndex{shared: cloneSets(ix.shared)}
}

func (ix undirectedIndex) equal(other incidence) bool {
	o, ok := other.(undirectedIndex)
	return ok && equalSets(ix.shared, o.shared)
}

type directedIndex struct {
	out, in map[string]nameSet
}

func (ix directedIndex) addNode(name string) {
	ix.out[name] = nameSet{}
	ix.in[name] = nameSet{}
}

func (ix directedIndex) removeNode(name string) {
	delete(ix.out, name)
	delete(ix.in, name)
}

func (ix directedIndex) from(node string) nameSet { return ix.out[node] }
func (ix directedIndex) to(node string) nameSet   { return ix.in[node] }

func (ix directedIndex) link(e Edge) {
	ix.out[e.From][e.Name] = struct{}{}
	ix.in[e.To][e.Name] = struct{}{}
}

func (ix directedIndex) unlink(e Edge) {
	delete(ix.out[e.From], e.Name)
	delete(ix.in[e.To], e.Name)
}

func (ix directedIndex) clone() incidence {
	return directedIndex{out: cloneSets(ix.out), in: cloneSets(ix.in)}
}

func (ix directedIndex) equal(other incidence) bool {
	o, ok := other.(directedIndex)
	return ok && equalSets(ix.out, o.out) && equalSets(ix.in, o.in)
}

// pairKey returns the canonical key for the node pair (a, b). Undirected
// pairs are ordered so (a, b) and (b, a) share a key.
func pairKey(a, b string, directed bool) string {
	if !directed && b < a {
		a, b = b, a
	}
	var sb strings.Builder
	sb.Grow(len(a) + len(b) + 8)
	sb.WriteString(strconv.Itoa(len(a)))
	sb.WriteByte('|')
	sb.WriteString(a)
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(len(b)))
	sb.WriteByte('|')
	sb.WriteString(b)
	return sb.String()
}
