package network

import "errors"

var (
	// ErrMultipleDontCarePorts is returned when a node's four ports carry
	// more than one don't-care sentinel.
	ErrMultipleDontCarePorts = errors.New("network: node has more than one don't-care port")
	// ErrInconsistentBoundaryColour is returned when two external ports on
	// the same side (input or output) disagree on which colour crosses
	// the balancer boundary.
	ErrInconsistentBoundaryColour = errors.New("network: inconsistent external boundary colour")
)
