package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/apg/pkg/boxes"
	apgerrors "github.com/matzehuels/apg/pkg/errors"
	"github.com/matzehuels/apg/pkg/program"
)

// programDoc is a program file: boxes from the catalogue and the wires
// between their plugs.
//
//	[[boxes]]
//	id = "example"
//	type = "graph.example_graph"
//
//	[[boxes]]
//	id = "tile"
//	type = "graph.tile"
//	params = { rows = 2, cols = 3 }
//
//	[[wires]]
//	from = "example.graph"
//	to = "tile.graph"
type programDoc struct {
	Boxes []boxDoc  `toml:"boxes"`
	Wires []wireDoc `toml:"wires"`
}

type boxDoc struct {
	ID     string         `toml:"id"`
	Type   string         `toml:"type"`
	Params map[string]any `toml:"params"`
}

type wireDoc struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// demoProgram feeds the example square through an editor into every graph
// box, and runs a slow computation next to it.
const demoProgram = `
[[boxes]]
id = "example"
type = "graph.example_graph"

[[boxes]]
id = "editor"
type = "graph.graph"

[[boxes]]
id = "crossings"
type = "graph.intersections"

[[boxes]]
id = "complement"
type = "graph.complement"

[[boxes]]
id = "tile"
type = "graph.tile"
params = { rows = 2, cols = 3, gap = 20 }

[[boxes]]
id = "iterations"
type = "debug.constant"
params = { value = 200000 }

[[boxes]]
id = "slow"
type = "debug.slow"

[[wires]]
from = "example.graph"
to = "editor.graph"

[[wires]]
from = "editor.graph"
to = "crossings.graph"

[[wires]]
from = "editor.graph"
to = "complement.graph"

[[wires]]
from = "editor.graph"
to = "tile.graph"

[[wires]]
from = "iterations.value"
to = "slow.iterations"
`

// loadProgramDoc reads a program file, or the demo program if path is empty.
func loadProgramDoc(path string) (programDoc, error) {
	var (
		doc programDoc
		md  toml.MetaData
		err error
	)
	if path == "" {
		md, err = toml.Decode(demoProgram, &doc)
	} else {
		md, err = toml.DecodeFile(path, &doc)
	}
	if err != nil {
		return programDoc{}, apgerrors.Wrap(apgerrors.ErrCodeInvalidFormat, err, "decode program")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		// Params are free-form; anything else is a typo.
		for _, k := range undecoded {
			if len(k) < 2 || k[0] != "boxes" || k[1] != "params" {
				return programDoc{}, apgerrors.New(apgerrors.ErrCodeInvalidFormat, "program: unknown key %s", k)
			}
		}
	}
	return doc, nil
}

// buildProgram adds the document's boxes and wires to p.
func buildProgram(p *program.Program, doc programDoc) error {
	for i, b := range doc.Boxes {
		if err := apgerrors.ValidateName("box", b.ID); err != nil {
			return fmt.Errorf("boxes[%d]: %w", i, err)
		}
		u, err := boxes.New(b.Type, boxes.Params(b.Params))
		if err != nil {
			return fmt.Errorf("box %s: %w", b.ID, err)
		}
		if _, err := p.AddBox(b.ID, u); err != nil {
			return err
		}
	}
	for i, w := range doc.Wires {
		srcBox, srcPlug, err := splitPlugRef(w.From)
		if err != nil {
			return fmt.Errorf("wires[%d].from: %w", i, err)
		}
		dstBox, dstPlug, err := splitPlugRef(w.To)
		if err != nil {
			return fmt.Errorf("wires[%d].to: %w", i, err)
		}
		if _, err := p.AddWire(srcBox, srcPlug, dstBox, dstPlug); err != nil {
			return err
		}
	}
	return nil
}

// splitPlugRef splits "box.plug" at the last dot.
func splitPlugRef(ref string) (boxID, plug string, err error) {
	i := strings.LastIndexByte(ref, '.')
	if i <= 0 || i == len(ref)-1 {
		return "", "", apgerrors.New(apgerrors.ErrCodeInvalidInput, "plug reference %q: want BOX.PLUG", ref)
	}
	return ref[:i], ref[i+1:], nil
}
