package graphio

import (
	"fmt"

	apgerrors "github.com/matzehuels/apg/pkg/errors"
	"github.com/matzehuels/apg/pkg/graph"
)

// Document is the serialized form of a graph.
type Document struct {
	Directed bool   `json:"directed" toml:"directed"`
	Nodes    []Node `json:"nodes" toml:"nodes"`
	Edges    []Edge `json:"edges" toml:"edges"`
}

// Node is a serialized graph node.
type Node struct {
	Name string  `json:"name" toml:"name"`
	X    float64 `json:"x" toml:"x"`
	Y    float64 `json:"y" toml:"y"`
}

// Edge is a serialized graph edge. Name may be empty.
type Edge struct {
	Name string `json:"name,omitempty" toml:"name,omitempty"`
	From string `json:"from" toml:"from"`
	To   string `json:"to" toml:"to"`
}

// FromGraph converts a graph to a document. Nodes and edges keep insertion
// order so round trips are stable.
func FromGraph(g *graph.Graph) Document {
	nodes, edges := g.Flatten()
	doc := Document{
		Directed: g.Directed(),
		Nodes:    make([]Node, len(nodes)),
		Edges:    make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		doc.Nodes[i] = Node{Name: n.Name, X: n.X, Y: n.Y}
	}
	for i, e := range edges {
		doc.Edges[i] = Edge{Name: e.Name, From: e.From.Name, To: e.To.Name}
	}
	return doc
}

// ToGraph builds a graph from a document.
//
// Node and explicit edge names are validated with errors.ValidateName. Any
// graph contract violation (duplicate names, unknown endpoints, self-loops,
// parallel edges) is returned as the graph package's error, annotated with
// the position of the offending entry.
func ToGraph(doc Document) (*graph.Graph, error) {
	g := graph.New(doc.Directed)
	for i, n := range doc.Nodes {
		if err := apgerrors.ValidateName("node", n.Name); err != nil {
			return nil, fmt.Errorf("nodes[%d]: %w", i, err)
		}
		if _, err := g.AddNode(n.Name, n.X, n.Y); err != nil {
			return nil, fmt.Errorf("nodes[%d]: %w", i, err)
		}
	}
	for i, e := range doc.Edges {
		if e.Name != "" {
			if err := apgerrors.ValidateName("edge", e.Name); err != nil {
				return nil, fmt.Errorf("edges[%d]: %w", i, err)
			}
		}
		if _, err := g.AddEdge(e.Name, e.From, e.To); err != nil {
			return nil, fmt.Errorf("edges[%d]: %w", i, err)
		}
	}
	return g, nil
}
