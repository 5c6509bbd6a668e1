package graph

import (
	apgerrors "github.com/matzehuels/apg/pkg/errors"
	"github.com/matzehuels/apg/pkg/value"
)

var (
	// ErrDuplicateNode is returned by [Graph.AddNode] when the name is taken.
	ErrDuplicateNode = apgerrors.New(apgerrors.ErrCodeDuplicateNode, "node already exists")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when the name is taken.
	ErrDuplicateEdge = apgerrors.New(apgerrors.ErrCodeDuplicateEdge, "edge already exists")

	// ErrUnknownNode is returned when a referenced node does not exist,
	// including either endpoint passed to [Graph.AddEdge].
	ErrUnknownNode = apgerrors.New(apgerrors.ErrCodeUnknownNode, "node does not exist")

	// ErrUnknownEdge is returned by [Graph.DeleteEdge] for a missing edge.
	ErrUnknownEdge = apgerrors.New(apgerrors.ErrCodeUnknownEdge, "edge does not exist")

	// ErrSelfLoop is returned by [Graph.AddEdge] when from == to.
	ErrSelfLoop = apgerrors.New(apgerrors.ErrCodeSelfLoop, "self-loops are not allowed")

	// ErrParallelEdge is returned by [Graph.AddEdge] when the node pair already
	// has an edge. For undirected graphs (a, b) and (b, a) are the same pair.
	ErrParallelEdge = apgerrors.New(apgerrors.ErrCodeParallelEdge, "edge between nodes already exists")

	// ErrFrozen is returned by every mutating method of a frozen graph.
	ErrFrozen = value.ErrFrozen
)
