// Package domain defines the NeuroML model entities handled by nmlcell.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A NeuroML document holding cells, channels and includes
//   - Cell: A neuron with a Morphology and BiophysicalProperties
//   - SegmentGroup: A named, possibly nested subset of segments
//   - IonChannelHH: A Hodgkin-Huxley channel built from gates and rates
//   - Quantity: A NeuroML value with its unit, e.g. "-80mV"
//
// The typed builder methods on Cell and GateHHRates are the only way the
// services mutate a model; they report ErrDuplicateID and ErrValidation
// directly so callers never assemble an invalid graph silently.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
