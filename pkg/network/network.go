// Package network compiles a splitter graph into grid constraints: it
// reads the JSON network format, ties each splitter node to a one-hot
// location on the grid, couples colour flow across the two lanes of every
// splitter half, and pins the left/right edges of the grid to the
// network's external input/output lanes. Grounded on belt_balancer.py's
// create_balancer / setup_balancer_ends / enforce_edge_splitters, the one
// source file in the reference material that names this concern (its own
// "from network import get_input_output_colours, open_network" shows a
// sibling module existed but was not retrieved; the functions below are
// reconstructed from every call site that exercises them).
package network

import (
	"encoding/json"
	"io"

	"github.com/gitrdm/beltcompiler/pkg/cnf"
)

// ColourOrNone is one splitter port: either a concrete colour id or the
// "don't-care / recirculation" sentinel (JSON null).
type ColourOrNone struct {
	Colour  int
	Defined bool
}

// Colour wraps a concrete colour id.
func Colour(c int) ColourOrNone { return ColourOrNone{Colour: c, Defined: true} }

// None is the don't-care sentinel.
var None = ColourOrNone{}

// UnmarshalJSON decodes a small nonnegative integer or null.
func (c *ColourOrNone) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = None
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Colour(v)
	return nil
}

// MarshalJSON encodes a concrete colour as an integer, or None as null.
func (c ColourOrNone) MarshalJSON() ([]byte, error) {
	if !c.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(c.Colour)
}

// Node is one two-input/two-output splitter: each of its four ports
// carries a colour or the don't-care sentinel. At most one of the four
// ports may be don't-care.
type Node struct {
	Inputs  [2]ColourOrNone
	Outputs [2]ColourOrNone
}

// UnmarshalJSON decodes the wire shape [[in0, in1], [out0, out1]].
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw [2][2]ColourOrNone
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n.Inputs, n.Outputs = raw[0], raw[1]
	return nil
}

// MarshalJSON encodes the wire shape [[in0, in1], [out0, out1]].
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal([2][2]ColourOrNone{n.Inputs, n.Outputs})
}

// Network is an ordered list of splitter nodes.
type Network []Node

// Open parses a network document from r, matching belt_balancer.py's
// open_network(args.network).
func Open(r io.Reader) (Network, error) {
	var n Network
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, err
	}
	return n, nil
}

// ColourBits returns the bit width needed to encode colours 0..maxColour,
// the value BeltTemplate's colourBits parameter expects.
func ColourBits(maxColour int) int {
	return cnf.BinLength(maxColour + 1)
}
