// Layout constraints: the content-rich predicates that give belts,
// undergrounds, splitters, and colours their meaning. Each is a free
// function over a *Grid that appends clauses; none of them retains state
// beyond what it writes into g.Clauses.
//
// solver.py, the original Grid subclass that owned these predicates
// (prevent_intersection, prevent_bad_undergrounding,
// set_maximum_underground_length, prevent_empty_along_underground,
// prevent_small_loops, prevent_colour), was not part of the retrieved
// reference material — only util.py, belt_balancer.py, and make_block.py
// were. Every function below is derived directly from the invariant text
// and cross-checked against the call-site shapes (field names, argument
// types, edge-mode combinations) visible in belt_balancer.py and
// make_block.py; PropagateColour is a direct translation of
// make_block.py's ensure_loop_length, the one predicate whose full body
// is present in the reference material.
package grid

import (
	"fmt"

	"github.com/gitrdm/beltcompiler/pkg/cardinality"
	"github.com/gitrdm/beltcompiler/pkg/cnf"
	"github.com/gitrdm/beltcompiler/pkg/tile"
)

func directionClause(lits []cnf.Literal) cnf.Clause {
	out := make(cnf.Clause, len(lits))
	copy(out, lits)
	return out
}

// PerCellWellFormedness asserts, for every cell: at-most-one across
// input_direction, output_direction, and underground; at-most-one across
// is_splitter; equal input/output presence (both empty or both
// occupied); and that a splitter half forces input_direction and
// output_direction to be one-hot-one and equal to each other.
func PerCellWellFormedness(g *Grid) error {
	for _, t := range g.IterateTiles() {
		in := t.Get(tile.FieldInputDirection).Data
		out := t.Get(tile.FieldOutputDirection).Data
		und := t.Get(tile.FieldUnderground).Data
		splitter := t.Get(tile.FieldIsSplitter).Data

		for _, group := range [][]cnf.Literal{in, out, und, splitter} {
			g.AddClauses(cardinality.QuadraticAtMostOne(group))
		}

		inClause := directionClause(in)
		outClause := directionClause(out)
		for _, d := range in {
			g.AddClauses(cnf.Implies([]cnf.Literal{d}, cnf.Clauses{outClause}))
		}
		for _, d := range out {
			g.AddClauses(cnf.Implies([]cnf.Literal{d}, cnf.Clauses{inClause}))
		}

		for _, half := range splitter {
			g.AddClauses(cnf.Implies([]cnf.Literal{half}, cnf.Clauses{inClause}))
			g.AddClauses(cnf.Implies([]cnf.Literal{half}, cnf.Clauses{outClause}))
			for d := 0; d < 4; d++ {
				g.AddClauses(cnf.Implies([]cnf.Literal{half, in[d]}, cnf.Clauses{{out[d]}}))
				g.AddClauses(cnf.Implies([]cnf.Literal{half, out[d]}, cnf.Clauses{{in[d]}}))
			}
		}
	}
	return nil
}

// PreventIntersection asserts that an outgoing belt stream is always
// matched by the downstream neighbour's matching input, and symmetrically
// that a claimed input is always backed by the upstream neighbour's
// matching output — unless the cell is an underground endpoint of that
// direction, in which case the stream instead travels through the tunnel
// and the immediate-neighbour requirement is dropped. Edge handling
// follows edgeMode: a blocked neighbour forbids the corresponding
// direction outright (unless tunnelling); an ignored neighbour drops the
// constraint.
func PreventIntersection(g *Grid, edgeMode EdgeModes) error {
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			a := g.GetTileInstance(x, y)
			aIn := a.Get(tile.FieldInputDirection).Data
			aOut := a.Get(tile.FieldOutputDirection).Data
			aUnd := a.Get(tile.FieldUnderground).Data

			for d := 0; d < 4; d++ {
				dx, dy := tile.DirectionVector(d)

				// Forward: output[d] && !underground[d] -> downstream input[d].
				fwd := g.GetTileInstanceOffset(x, y, dx, dy, edgeMode)
				switch fwd.Kind {
				case CellIgnored:
					// no constraint at this edge
				case CellBlocked:
					g.AddClause(cnf.Clause{-aOut[d], aUnd[d]})
				case CellReal:
					bIn := fwd.Tile.Get(tile.FieldInputDirection).Data
					g.AddClauses(cnf.Implies([]cnf.Literal{aOut[d], -aUnd[d]}, cnf.Clauses{{bIn[d]}}))
				}

				// Backward: input[d] && !underground[d] -> upstream output[d].
				bwd := g.GetTileInstanceOffset(x, y, -dx, -dy, edgeMode)
				switch bwd.Kind {
				case CellIgnored:
				case CellBlocked:
					g.AddClause(cnf.Clause{-aIn[d], aUnd[d]})
				case CellReal:
					bOut := bwd.Tile.Get(tile.FieldOutputDirection).Data
					g.AddClauses(cnf.Implies([]cnf.Literal{aIn[d], -aUnd[d]}, cnf.Clauses{{bOut[d]}}))
				}
			}
		}
	}
	return nil
}

// PreventBadUndergrounding asserts rule 3 of the underground semantics:
// a cell crossed by an underground beam of a given axis cannot also carry
// a surface belt direction along that same axis (perpendicular crossing
// remains legal, since it does not share bits with the tunnelled axis).
func PreventBadUndergrounding(g *Grid) error {
	for _, t := range g.IterateTiles() {
		in := t.Get(tile.FieldInputDirection).Data
		out := t.Get(tile.FieldOutputDirection).Data
		und := t.Get(tile.FieldUnderground).Data

		for d := 0; d < 4; d++ {
			axisOpposite := (d + 2) % 4
			g.AddClause(cnf.Clause{-und[d], -in[d]})
			g.AddClause(cnf.Clause{-und[d], -in[axisOpposite]})
			g.AddClause(cnf.Clause{-und[d], -out[d]})
			g.AddClause(cnf.Clause{-und[d], -out[axisOpposite]})
		}
	}
	return nil
}

// PreventEmptyAlongUnderground asserts that a cell crossed by an
// underground beam is never entirely empty on the surface: it must still
// carry some belt direction, matching the invariant "the beam cannot
// cross air". length is accepted for API symmetry with
// SetMaximumUndergroundLength (both are parameterised the same way in the
// original command-line tools) though this predicate's truth value does
// not depend on it.
func PreventEmptyAlongUnderground(g *Grid, length int) error {
	_ = length
	for _, t := range g.IterateTiles() {
		all := t.Get(tile.FieldAllDirection).Data
		allClause := directionClause(all)
		und := t.Get(tile.FieldUnderground).Data
		for d := 0; d < 4; d++ {
			g.AddClauses(cnf.Implies([]cnf.Literal{und[d]}, cnf.Clauses{allClause}))
		}
	}
	return nil
}

// SetMaximumUndergroundLength forbids any run of more than length
// consecutive cells along a direction all carrying underground[d],
// bounding how far apart a matched entry/exit pair of tunnelled belts can
// be. Under EdgeTile a window that would cross the boundary wraps; under
// EdgeBlock or EdgeIgnore such a window adds no clause.
func SetMaximumUndergroundLength(g *Grid, length int, edgeMode EdgeModes) error {
	if length < 0 {
		return fmt.Errorf("grid: negative underground length %d", length)
	}
	windowSize := length + 1

	for d := 0; d < 4; d++ {
		dx, dy := tile.DirectionVector(d)
		for x := 0; x < g.W; x++ {
			for y := 0; y < g.H; y++ {
				clause := make(cnf.Clause, 0, windowSize)
				ok := true
				for i := 0; i < windowSize; i++ {
					if i == 0 {
						t := g.GetTileInstance(x, y)
						clause = append(clause, -t.Get(tile.FieldUnderground).Data[d])
					} else {
						cell := g.GetTileInstanceOffset(x, y, i*dx, i*dy, edgeMode)
						switch cell.Kind {
						case CellIgnored:
							ok = false
						case CellBlocked:
							ok = false
						case CellReal:
							clause = append(clause, -cell.Tile.Get(tile.FieldUnderground).Data[d])
						}
					}
					if !ok {
						break
					}
				}
				if ok && len(clause) == windowSize {
					g.AddClause(clause)
				}
			}
		}
	}
	return nil
}

// PreventColour forbids colour c from being encoded by any cell's colour
// field, by appending the single negated-encoding clause per cell that
// cnf.SetNotNumber produces.
func PreventColour(g *Grid, colour int) error {
	for _, t := range g.IterateTiles() {
		c := t.Get(tile.FieldColour).Data
		clause, err := cnf.SetNotNumber(colour, c)
		if err != nil {
			return err
		}
		g.AddClause(clause)
	}
	return nil
}

// PropagateColour is a direct translation of make_block.py's
// ensure_loop_length. For each cell and each neighbour one step toward d,
// using the axis-appropriate colour carrier (colour_ux horizontally,
// colour_uy vertically): a belt whose output leaves toward d increments
// the cell's colour into the neighbour's colour; a belt whose input moves
// toward d and which has no output of its own increments the cell's
// colour into the neighbour's carrier; a neighbour with no input and an
// output toward d takes this cell's carrier as its colour unchanged; and
// when both cells carry underground[d], their carriers are asserted equal.
func PropagateColour(g *Grid, edgeMode EdgeModes) error {
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			a := g.GetTileInstance(x, y)
			aOut := a.Get(tile.FieldOutputDirection).Data
			aIn := a.Get(tile.FieldInputDirection).Data
			aColour := a.Get(tile.FieldColour).Data
			aUnd := a.Get(tile.FieldUnderground).Data

			for d := 0; d < 4; d++ {
				dx, dy := tile.DirectionVector(d)
				b := g.GetTileInstanceOffset(x, y, dx, dy, edgeMode)
				if !b.IsReal() {
					continue
				}
				bColour := b.Tile.Get(tile.FieldColour).Data
				bIn := b.Tile.Get(tile.FieldInputDirection).Data
				bOut := b.Tile.Get(tile.FieldOutputDirection).Data
				bUnd := b.Tile.Get(tile.FieldUnderground).Data

				var aColourAxis, bColourAxis []cnf.Literal
				if d%2 == 0 {
					aColourAxis = a.Get(tile.FieldColourUX).Data
					bColourAxis = b.Tile.Get(tile.FieldColourUX).Data
				} else {
					aColourAxis = a.Get(tile.FieldColourUY).Data
					bColourAxis = b.Tile.Get(tile.FieldColourUY).Data
				}

				incr, err := cnf.IncrementNumber(aColour, bColour)
				if err != nil {
					return err
				}
				g.AddClauses(cnf.Implies([]cnf.Literal{aOut[d]}, incr))

				incrAxis, err := cnf.IncrementNumber(aColour, bColourAxis)
				if err != nil {
					return err
				}
				pre := append([]cnf.Literal{aIn[d]}, cnf.InvertComponents(directionClause(aOut))...)
				g.AddClauses(cnf.Implies(pre, incrAxis))

				for i := range aColour {
					pre := append(cnf.InvertComponents(directionClause(bIn)), bOut[d])
					g.AddClauses(cnf.Implies(pre, cnf.VariablesSame(aColourAxis[i], bColour[i])))
					g.AddClauses(cnf.Implies([]cnf.Literal{aUnd[d], bUnd[d]}, cnf.VariablesSame(aColourAxis[i], bColourAxis[i])))
				}
			}
		}
	}
	return nil
}

// PreventBadColouring asserts the plain, non-incrementing form of colour
// propagation, with the same four cases as PropagateColour: a belt whose
// output leaves toward d carries its own colour unchanged into the
// downstream neighbour's colour; a belt whose input moves toward d and
// which has no output of its own carries its colour unchanged into the
// downstream neighbour's axis carrier (colour_ux horizontally, colour_uy
// vertically); a neighbour with no input and an output toward d takes
// this cell's carrier as its colour; and when both cells carry
// underground[d], their carriers are asserted equal.
// Reuses PropagateColour's per-direction, per-edge-mode shape but with
// cnf.EqualNumbers in place of cnf.IncrementNumber throughout: the
// increment-by-one trick is single-loop-mode-specific cycle-breaking
// (PropagateColour's own purpose, see pkg/grid/loop.go's EnsureLoopLength),
// and is never appropriate for a splitter network, whose splitter-coupled
// cells are pinned to exact matching colours by pkg/network's coupleLane,
// not incrementing ones. Reconstructed from spec.md's "Colour propagation"
// invariant text, since solver.py's own prevent_bad_colouring body was not
// part of the retrieved reference material; see DESIGN.md.
func PreventBadColouring(g *Grid, edgeMode EdgeModes) error {
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			a := g.GetTileInstance(x, y)
			aOut := a.Get(tile.FieldOutputDirection).Data
			aIn := a.Get(tile.FieldInputDirection).Data
			aColour := a.Get(tile.FieldColour).Data
			aUnd := a.Get(tile.FieldUnderground).Data

			for d := 0; d < 4; d++ {
				dx, dy := tile.DirectionVector(d)
				b := g.GetTileInstanceOffset(x, y, dx, dy, edgeMode)
				if !b.IsReal() {
					continue
				}
				bColour := b.Tile.Get(tile.FieldColour).Data
				bIn := b.Tile.Get(tile.FieldInputDirection).Data
				bOut := b.Tile.Get(tile.FieldOutputDirection).Data
				bUnd := b.Tile.Get(tile.FieldUnderground).Data

				var aColourAxis, bColourAxis []cnf.Literal
				if d%2 == 0 {
					aColourAxis = a.Get(tile.FieldColourUX).Data
					bColourAxis = b.Tile.Get(tile.FieldColourUX).Data
				} else {
					aColourAxis = a.Get(tile.FieldColourUY).Data
					bColourAxis = b.Tile.Get(tile.FieldColourUY).Data
				}

				eq, err := cnf.EqualNumbers(aColour, bColour)
				if err != nil {
					return err
				}
				g.AddClauses(cnf.Implies([]cnf.Literal{aOut[d]}, eq))

				eqAxis, err := cnf.EqualNumbers(aColour, bColourAxis)
				if err != nil {
					return err
				}
				pre := append([]cnf.Literal{aIn[d]}, cnf.InvertComponents(directionClause(aOut))...)
				g.AddClauses(cnf.Implies(pre, eqAxis))

				for i := range aColour {
					pre := append(cnf.InvertComponents(directionClause(bIn)), bOut[d])
					g.AddClauses(cnf.Implies(pre, cnf.VariablesSame(aColourAxis[i], bColour[i])))
					g.AddClauses(cnf.Implies([]cnf.Literal{aUnd[d], bUnd[d]}, cnf.VariablesSame(aColourAxis[i], bColourAxis[i])))
				}
			}
		}
	}
	return nil
}

// PreventSmallLoops forbids every simple belt cycle of length 2 up to
// maxLoopSize (inclusive) by enumerating the direction sequences that
// realise such a cycle and adding the negation of each. The cutoff is an
// explicit parameter per Design Note 2's resolution of the corresponding
// open question (the original enumerates a fixed, unparameterised set of
// small loops).
func PreventSmallLoops(g *Grid, maxLoopSize int) error {
	if maxLoopSize < 2 {
		return nil
	}
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			visited := map[[2]int]bool{{x, y}: true}
			path := make(cnf.Clause, 0, maxLoopSize)
			walkLoops(g, x, y, x, y, maxLoopSize, visited, path)
		}
	}
	return nil
}

// walkLoops performs a bounded DFS over output-direction moves, starting
// and ending at (sx, sy). Each accumulated path is a conjunction of
// "output[d] at the current cell" preconditions; when the path returns to
// the start with length in [2, maxLen], its negation is added as a single
// clause forbidding that exact cycle of direction choices.
func walkLoops(g *Grid, sx, sy, cx, cy, maxLen int, visited map[[2]int]bool, path cnf.Clause) {
	if len(path) >= maxLen {
		return
	}
	t := g.GetTileInstance(cx, cy)
	out := t.Get(tile.FieldOutputDirection).Data

	for d := 0; d < 4; d++ {
		dx, dy := tile.DirectionVector(d)
		nx, ny := cx+dx, cy+dy
		if nx < 0 || ny < 0 || nx >= g.W || ny >= g.H {
			continue
		}
		next := cnf.InvertComponents(cnf.Clause{out[d]})
		newPath := append(append(cnf.Clause{}, path...), next[0])

		if nx == sx && ny == sy && len(newPath) >= 2 {
			g.AddClause(append(cnf.Clause{}, newPath...))
			continue
		}
		key := [2]int{nx, ny}
		if visited[key] {
			continue
		}
		visited[key] = true
		walkLoops(g, sx, sy, nx, ny, maxLen, visited, newPath)
		delete(visited, key)
	}
}
