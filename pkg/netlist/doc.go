// Package netlist models board connectivity as a graph of nets, chips and
// the pins (nodes) joining them.
//
// # Model
//
// A Net maps chip names to the pin of that chip on the net. A Chip maps net
// names to its pin on that net. Both maps are views of the same edges: a pin
// attached to net N and owned by chip C is N's entry for C and C's entry for
// N. Graph.Attach is the only way to change an attachment and always updates
// both sides, so Graph.IsOrphan never reports a pin after a sequence of
// Attach calls.
//
// # Ownership
//
// A Graph owns all nets and chips created through it, one per name, in
// registration order. Nets and chips are created on first reference and are
// never removed; after a reduction some of them simply have no pins left.
// Pins are not registered by name since pin names are local to a chip.
//
// # Reduction
//
// Graph.Eliminate splices a two-pin chip out of a net, merging the net on
// its far side into the near one. Graph.Reduce applies it to every chip
// selected by a Reducer. Graph.ExtractRows then reports, for each net of a
// host chip, the pin at the other end.
package netlist
