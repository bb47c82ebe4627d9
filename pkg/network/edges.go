package network

import (
	"github.com/gitrdm/beltcompiler/pkg/cardinality"
	"github.com/gitrdm/beltcompiler/pkg/cnf"
	"github.com/gitrdm/beltcompiler/pkg/grid"
	"github.com/gitrdm/beltcompiler/pkg/tile"
)

// EnforceEdgeSplitters asserts that splitters whose inputs are purely the
// network's external input colour (and symmetrically for output) prefer
// the second-from-edge column: when no internal recirculation reuses that
// colour, every such splitter must land there; otherwise at least
// |edge splitters| - recirculate of them must, via the adder-based ≥k
// encoder. Ported from belt_balancer.py's enforce_edge_splitters.
func EnforceEdgeSplitters(g *grid.Grid, network Network) error {
	networkInputColour, _, networkOutputColour, _, err := GetInputOutputColours(network)
	if err != nil {
		return err
	}

	recirculateInput := 0
	recirculateOutput := 0
	for _, node := range network {
		for _, c := range node.Inputs {
			if c.Defined && c.Colour == networkOutputColour {
				recirculateOutput++
			}
		}
		for _, c := range node.Outputs {
			if c.Defined && c.Colour == networkInputColour {
				recirculateInput++
			}
		}
	}

	var inputSplitters []int
	for i, node := range network {
		if allEqual(node.Inputs, networkInputColour) {
			inputSplitters = append(inputSplitters, i)
		}
	}
	if err := pinOrBoundEdgeColumn(g, inputSplitters, recirculateInput, 1); err != nil {
		return err
	}

	var outputSplitters []int
	for i, node := range network {
		if allEqual(node.Outputs, networkOutputColour) {
			outputSplitters = append(outputSplitters, i)
		}
	}
	return pinOrBoundEdgeColumn(g, outputSplitters, recirculateOutput, g.W-2)
}

func allEqual(ports [2]ColourOrNone, colour int) bool {
	for _, p := range ports {
		if !p.Defined || p.Colour != colour {
			return false
		}
	}
	return true
}

// pinOrBoundEdgeColumn forces (recirculate == 0) or lower-bounds
// (recirculate > 0) how many of splitters' one-hot locations land in
// column, oriented straight through (east in, east out).
func pinOrBoundEdgeColumn(g *grid.Grid, splitters []int, recirculate, column int) error {
	if recirculate == 0 {
		for _, i := range splitters {
			locations := make(cnf.Clause, g.H)
			for y := 0; y < g.H; y++ {
				locations[y] = g.GetTileInstance(column, y).Get(tile.FieldNode).At(i)
			}
			g.AddClause(locations)

			for y := 0; y < g.H; y++ {
				t := g.GetTileInstance(column, y)
				nodeLit := t.Get(tile.FieldNode).At(i)
				in0 := t.Get(tile.FieldInputDirection).Data[tile.East]
				out0 := t.Get(tile.FieldOutputDirection).Data[tile.East]
				g.AddClauses(cnf.Implies([]cnf.Literal{nodeLit}, cnf.Clauses{{in0}, {out0}}))
			}
		}
		return nil
	}

	edgeMin := len(splitters) - recirculate
	if edgeMin <= 0 {
		return nil
	}

	variables := make([]cnf.Literal, len(splitters))
	for k := range variables {
		variables[k] = g.AllocateVariable()
	}
	for k, i := range splitters {
		locations := make(cnf.Clause, g.H)
		for y := 0; y < g.H; y++ {
			t := g.GetTileInstance(column, y)
			locations[y] = t.Get(tile.FieldNode).At(i)
			in0 := t.Get(tile.FieldInputDirection).Data[tile.East]
			out0 := t.Get(tile.FieldOutputDirection).Data[tile.East]
			g.AddClauses(cnf.Implies([]cnf.Literal{variables[k], locations[y]}, cnf.Clauses{{in0}, {out0}}))
		}
		g.AddClauses(cnf.Implies([]cnf.Literal{variables[k]}, cnf.Clauses{locations}))
	}

	ge, err := cardinality.AdderGreaterEqual(variables, edgeMin, g.Allocator())
	if err != nil {
		return err
	}
	g.AddClauses(ge)
	return nil
}
