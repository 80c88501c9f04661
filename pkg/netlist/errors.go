package netlist

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned when a net, chip or pin that must already
	// exist is missing from the graph.
	ErrNotFound = errors.New("netlist: not found")

	// ErrReduction is returned when a chip cannot be made transparent.
	// The graph is left unchanged.
	ErrReduction = errors.New("netlist: chip cannot be made transparent")

	// ErrAmbiguous is returned by strict extraction when a net still has
	// more than one pin besides the host's.
	ErrAmbiguous = errors.New("netlist: ambiguous net")
)
