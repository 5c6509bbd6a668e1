package boxes

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/apg/pkg/box"
	apgerrors "github.com/matzehuels/apg/pkg/errors"
)

// ErrUnknownType is returned by [New] for a type id missing from the catalogue.
var ErrUnknownType = apgerrors.New(apgerrors.ErrCodeInvalidInput, "unknown box type")

// Entry describes one catalogue box.
type Entry struct {
	Category    string
	Name        string
	Description string
	Inputs      []string
	Outputs     []string
	New         func(Params) (box.Unit, error)
}

// TypeID returns "category.name".
func (e Entry) TypeID() string { return e.Category + "." + e.Name }

var catalogue = map[string]Entry{}

func register(e Entry) {
	id := e.TypeID()
	if _, ok := catalogue[id]; ok {
		panic("boxes: duplicate type " + id)
	}
	catalogue[id] = e
}

func init() {
	register(Entry{
		Category: "graph", Name: "example_graph",
		Description: "100×100 square with crossing diagonals",
		Outputs:     []string{"graph"},
		New:         func(Params) (box.Unit, error) { return NewExampleGraph(), nil },
	})
	register(Entry{
		Category: "graph", Name: "graph",
		Description: "editable graph; params: file, directed",
		Inputs:      []string{"graph"},
		Outputs:     []string{"graph"},
		New:         newGraphFromParams,
	})
	register(Entry{
		Category: "graph", Name: "complement",
		Description: "complement of the input graph",
		Inputs:      []string{"graph"},
		Outputs:     []string{"graph"},
		New:         func(Params) (box.Unit, error) { return NewComplement(), nil },
	})
	register(Entry{
		Category: "graph", Name: "intersections",
		Description: "edge crossings of the input graph",
		Inputs:      []string{"graph"},
		Outputs:     []string{"intersections", "count"},
		New:         func(Params) (box.Unit, error) { return NewIntersections(), nil },
	})
	register(Entry{
		Category: "graph", Name: "tile",
		Description: "grid of copies of the input; params: rows, cols, gap",
		Inputs:      []string{"graph"},
		Outputs:     []string{"graph"},
		New:         newTileFromParams,
	})
	register(Entry{
		Category: "debug", Name: "constant",
		Description: "publishes a fixed integer; params: value",
		Outputs:     []string{"value"},
		New:         newConstantFromParams,
	})
	register(Entry{
		Category: "debug", Name: "slow",
		Description: "cooperative computation over \"iterations\" steps",
		Inputs:      []string{"iterations"},
		Outputs:     []string{"output"},
		New:         func(Params) (box.Unit, error) { return NewSlow(), nil },
	})
	register(Entry{
		Category: "debug", Name: "await",
		Description: "adds the result of an awaited future to a counter",
		Outputs:     []string{"counter"},
		New:         func(Params) (box.Unit, error) { return NewAwaitCounter(), nil },
	})
}

// Catalogue returns every entry sorted by type id.
func Catalogue() []Entry {
	ids := slices.Sorted(maps.Keys(catalogue))
	out := make([]Entry, len(ids))
	for i, id := range ids {
		out[i] = catalogue[id]
	}
	return out
}

// Lookup returns the entry for a type id.
func Lookup(typeID string) (Entry, bool) {
	e, ok := catalogue[typeID]
	return e, ok
}

// New builds a box by type id.
//
// Returns ErrUnknownType for ids not in the catalogue, or the factory's
// parameter error.
func New(typeID string, params Params) (box.Unit, error) {
	e, ok := catalogue[typeID]
	if !ok {
		return nil, fmt.Errorf("%q: %w", typeID, ErrUnknownType)
	}
	u, err := e.New(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", typeID, err)
	}
	return u, nil
}
