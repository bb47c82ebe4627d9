package network

import (
	"fmt"

	"github.com/gitrdm/beltcompiler/pkg/cardinality"
	"github.com/gitrdm/beltcompiler/pkg/cnf"
	"github.com/gitrdm/beltcompiler/pkg/grid"
	"github.com/gitrdm/beltcompiler/pkg/tile"
)

// CreateBalancer builds a width x height grid sized for network, ties each
// splitter node to a one-hot location, and couples colour flow across the
// two lanes of every splitter half. Ported from belt_balancer.py's
// create_balancer.
func CreateBalancer(network Network, width, height int) (*grid.Grid, error) {
	maxColour := 0
	seen := map[int]bool{}
	for _, node := range network {
		for _, p := range node.Inputs {
			if p.Defined {
				seen[p.Colour] = true
				if p.Colour > maxColour {
					maxColour = p.Colour
				}
			}
		}
		for _, p := range node.Outputs {
			if p.Defined {
				seen[p.Colour] = true
				if p.Colour > maxColour {
					maxColour = p.Colour
				}
			}
		}
	}

	schema, err := tile.BeltTemplate(ColourBits(maxColour), len(network))
	if err != nil {
		return nil, fmt.Errorf("network: building belt template: %w", err)
	}
	g, err := grid.New(width, height, maxColour+1, schema)
	if err != nil {
		return nil, err
	}

	for colour := 0; colour <= maxColour; colour++ {
		if seen[colour] {
			continue
		}
		if err := grid.PreventColour(g, colour); err != nil {
			return nil, err
		}
	}

	if err := grid.PreventBadUndergrounding(g); err != nil {
		return nil, err
	}
	if err := grid.PreventBadColouring(g, grid.Uniform(grid.EdgeBlock)); err != nil {
		return nil, err
	}

	// Exactly one location per splitter node, encoded logarithmically for
	// scalability (node count grows with network size, cell count with
	// grid area).
	for i := range network {
		locations := make([]cnf.Literal, 0, g.W*g.H)
		for x := 0; x < g.W; x++ {
			for y := 0; y < g.H; y++ {
				locations = append(locations, g.GetTileInstance(x, y).Get(tile.FieldNode).At(i))
			}
		}
		clauses, err := cardinality.LogarithmicExactlyOne(locations, g.Allocator())
		if err != nil {
			return nil, err
		}
		g.AddClauses(clauses)
	}

	// Each cell has at most one splitter-node type (or none at all), and
	// a cell holding a node must be the left half of a splitter pair.
	for _, t := range g.IterateTiles() {
		nodes := t.Get(tile.FieldNode).Data
		splitterHalf0 := t.Get(tile.FieldIsSplitter).Data[0]
		clauses, err := cardinality.QuadraticExactlyOne(append([]cnf.Literal{-splitterHalf0}, nodes...))
		if err != nil {
			return nil, err
		}
		g.AddClauses(clauses)
		for _, n := range nodes {
			g.AddClause(cnf.Clause{-n, splitterHalf0})
		}
	}

	for i, node := range network {
		inputsHaveNone := !node.Inputs[0].Defined || !node.Inputs[1].Defined
		outputsHaveNone := !node.Outputs[0].Defined || !node.Outputs[1].Defined
		if inputsHaveNone && outputsHaveNone {
			return nil, fmt.Errorf("network: node %d has don't-care ports on both sides", i)
		}

		for x := 0; x < g.W; x++ {
			for y := 0; y < g.H; y++ {
				t00 := g.GetTileInstance(x, y)
				nodeLit := t00.Get(tile.FieldNode).At(i)
				in00 := t00.Get(tile.FieldInputDirection).Data
				out00 := t00.Get(tile.FieldOutputDirection).Data

				if inputsHaveNone {
					g.AddClause(append(cnf.Clause{-nodeLit}, out00...))
				} else {
					g.AddClause(append(cnf.Clause{-nodeLit}, in00...))
				}

				for direction := 0; direction < 4; direction++ {
					dx0, dy0 := tile.DirectionVector(direction)
					dx1, dy1 := tile.DirectionVector((direction + 1) % 4)

					var side cnf.Literal
					if inputsHaveNone {
						side = out00[direction]
					} else {
						side = in00[direction]
					}
					precondition := []cnf.Literal{nodeLit, side}

					c10 := g.GetTileInstanceOffset(x, y, dx0, dy0, grid.Uniform(grid.EdgeBlock))
					c01 := g.GetTileInstanceOffset(x, y, dx1, dy1, grid.Uniform(grid.EdgeBlock))
					c11 := g.GetTileInstanceOffset(x, y, dx0+dx1, dy0+dy1, grid.Uniform(grid.EdgeBlock))

					if !c10.IsReal() || !c01.IsReal() || !c11.IsReal() {
						g.AddClause(cnf.InvertComponents(precondition))
						continue
					}

					t01, t10, t11 := c01.Tile, c10.Tile, c11.Tile

					if err := coupleLane(g, precondition, direction,
						tile.FieldInputDirection, node.Inputs, t00, t01, t00, t01); err != nil {
						return nil, err
					}
					if err := coupleLane(g, precondition, direction,
						tile.FieldOutputDirection, node.Outputs, t00, t01, t10, t11); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return g, nil
}

// coupleLane asserts the colour-flow coupling for one side (input or
// output) of a splitter node. The direction literal pair (dirTileA,
// dirTileB) names which of the two lanes is active; the colour pair
// (colourTileA, colourTileB) is pinned once that lane is known — for the
// input side these coincide (the receiving cell's own colour), for the
// output side the colour instead belongs to the downstream neighbour the
// belt empties into. colours a/b either both defined (both lanes present,
// set jointly via SetNumbers) or one don't-care (exactly one lane
// receives, pinned to the defined colour).
func coupleLane(g *grid.Grid, precondition []cnf.Literal, direction int, field string, colours [2]ColourOrNone, dirTileA, dirTileB, colourTileA, colourTileB *tile.Instance) error {
	dirA := dirTileA.Get(field).Data[direction]
	dirB := dirTileB.Get(field).Data[direction]
	colourA := colourTileA.Get(tile.FieldColour).Data
	colourB := colourTileB.Get(tile.FieldColour).Data

	if !colours[0].Defined || !colours[1].Defined {
		defined := colours[0]
		if !defined.Defined {
			defined = colours[1]
		}
		g.AddClauses(cnf.Implies(precondition, cnf.VariablesDifferent(dirA, dirB)))

		setA, err := cnf.SetNumber(defined.Colour, colourA)
		if err != nil {
			return err
		}
		g.AddClauses(cnf.Implies(append(append([]cnf.Literal{}, precondition...), dirA), setA))

		setB, err := cnf.SetNumber(defined.Colour, colourB)
		if err != nil {
			return err
		}
		g.AddClauses(cnf.Implies(append(append([]cnf.Literal{}, precondition...), dirB), setB))
		return nil
	}

	g.AddClauses(cnf.Implies(precondition, cnf.Clauses{{dirA}, {dirB}}))
	sn, err := cnf.SetNumbers(colours[0].Colour, colours[1].Colour, colourA, colourB)
	if err != nil {
		return err
	}
	g.AddClauses(cnf.Implies(precondition, sn))
	return nil
}
