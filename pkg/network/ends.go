package network

import (
	"github.com/gitrdm/beltcompiler/pkg/cardinality"
	"github.com/gitrdm/beltcompiler/pkg/cnf"
	"github.com/gitrdm/beltcompiler/pkg/grid"
	"github.com/gitrdm/beltcompiler/pkg/tile"
)

// endpointClauses pins a single cell as an east-facing, non-splitter belt
// carrying colour: one of the balancer's I input lanes or O output lanes.
func endpointClauses(t *tile.Instance, colour int) (cnf.Clauses, error) {
	in := t.Get(tile.FieldInputDirection).Data
	out := t.Get(tile.FieldOutputDirection).Data
	splitter := t.Get(tile.FieldIsSplitter).Data

	clauses := cnf.Clauses{
		{in[tile.East]},
		{out[tile.East]},
		{-splitter[0]},
		{-splitter[1]},
	}
	colourClauses, err := cnf.SetNumber(colour, t.Get(tile.FieldColour).Data)
	if err != nil {
		return nil, err
	}
	return append(clauses, colourClauses...), nil
}

type balancerEnd struct {
	x       int
	offsets []cnf.Literal
	colour  int
	count   int
}

// SetupBalancerEnds pins the left column to the network's I input lanes
// and the right column to its O output lanes, choosing a contiguous
// vertical placement for each side (exactly-one among H-I candidate start
// offsets, H-O end offsets) and forcing every other cell in that column
// empty. When aligned, the chosen start and end offsets are additionally
// constrained to overlap. Ported from belt_balancer.py's
// setup_balancer_ends.
func SetupBalancerEnds(g *grid.Grid, network Network, aligned bool) error {
	inputColour, inputCount, outputColour, outputCount, err := GetInputOutputColours(network)
	if err != nil {
		return err
	}

	startOffsets := make([]cnf.Literal, g.H-inputCount)
	for i := range startOffsets {
		startOffsets[i] = g.AllocateVariable()
	}
	endOffsets := make([]cnf.Literal, g.H-outputCount)
	for i := range endOffsets {
		endOffsets[i] = g.AllocateVariable()
	}

	ends := []balancerEnd{
		{x: 0, offsets: startOffsets, colour: inputColour, count: inputCount},
		{x: g.W - 1, offsets: endOffsets, colour: outputColour, count: outputCount},
	}

	for _, end := range ends {
		if len(end.offsets) == 0 {
			for y := 0; y < g.H; y++ {
				cs, err := endpointClauses(g.GetTileInstance(end.x, y), end.colour)
				if err != nil {
					return err
				}
				g.AddClauses(cs)
			}
			continue
		}

		eo, err := cardinality.QuadraticExactlyOne(end.offsets)
		if err != nil {
			return err
		}
		g.AddClauses(eo)

		for dy, variable := range end.offsets {
			var consequences cnf.Clauses
			for y := 0; y < g.H; y++ {
				t := g.GetTileInstance(end.x, y)
				if y >= dy && y < dy+end.count {
					cs, err := endpointClauses(t, end.colour)
					if err != nil {
						return err
					}
					consequences = append(consequences, cs...)
				} else {
					cs, err := cnf.SetNumber(0, t.Get(tile.FieldAllDirection).Data)
					if err != nil {
						return err
					}
					consequences = append(consequences, cs...)
				}
			}
			g.AddClauses(cnf.Implies([]cnf.Literal{variable}, consequences))
		}
	}

	if aligned {
		alignOffsets(g, startOffsets, endOffsets, inputCount, outputCount)
	}
	return nil
}

// alignOffsets implements the "aligned" option: whichever side has the
// larger lane count, each of its offsets implies the other side's offset
// falls within the sliding window that keeps the two spans overlapping.
func alignOffsets(g *grid.Grid, startOffsets, endOffsets []cnf.Literal, inputCount, outputCount int) {
	if inputCount >= outputCount {
		span := 1 + inputCount - outputCount
		for i, start := range startOffsets {
			hi := i + span
			if hi > len(endOffsets) {
				hi = len(endOffsets)
			}
			g.AddClauses(cnf.Implies([]cnf.Literal{start}, cnf.Clauses{cnf.Clause(endOffsets[i:hi])}))
		}
		return
	}
	span := 1 + outputCount - inputCount
	for i, end := range endOffsets {
		hi := i + span
		if hi > len(startOffsets) {
			hi = len(startOffsets)
		}
		g.AddClauses(cnf.Implies([]cnf.Literal{end}, cnf.Clauses{cnf.Clause(startOffsets[i:hi])}))
	}
}
