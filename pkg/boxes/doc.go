// Package boxes is the catalogue of built-in boxes.
//
// Every box embeds *box.Box, registers its plugs in its constructor and
// reports a catalogue type id of the form "category.name" through TypeID.
// The program uses that id as the box kind in statuses and metrics.
//
// # Graph boxes
//
//   - graph.example_graph: publishes a 100×100 square whose diagonals cross
//   - graph.graph: an editable graph; input "graph" replaces the state,
//     edit methods (AddNode, MoveNode, ...) schedule a change and republish
//   - graph.complement: publishes the complement of its input
//   - graph.intersections: publishes every edge crossing and their count
//   - graph.tile: lays copies of its input out on a grid
//
// # Debug boxes
//
//   - debug.constant: publishes a fixed integer
//   - debug.slow: a long cooperative computation that yields regularly
//   - debug.await: adds the result of an external future to a counter
//
// # Construction
//
// Boxes can be built directly (NewExampleGraph, NewTile, ...) or by type id
// with parameters, which is how program files are loaded:
//
//	u, err := boxes.New("graph.tile", boxes.Params{"rows": 2, "cols": 3})
package boxes
