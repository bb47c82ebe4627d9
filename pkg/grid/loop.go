package grid

import (
	"github.com/gitrdm/beltcompiler/pkg/cnf"
	"github.com/gitrdm/beltcompiler/pkg/tile"
)

// IsPowerOfTwo reports whether value is a power of two, matching
// make_block.py's is_power_of_two guard for --single-loop.
func IsPowerOfTwo(value int) bool {
	return value > 0 && value&(value-1) == 0
}

// EnsureLoopLength wires up the single-loop cycle-breaking trick:
// PropagateColour adds one to the colour at every step along a belt, and
// the increment wraps modulo 2^bits, so a closed chain of steps returns to
// its starting colour only when its length is a multiple of 2^bits
// (make-block sizes the colour field so that 2^bits is the cell count).
// The origin cell's colour is also pinned to zero. Grounded on
// make_block.py's --single-loop branch,
// which calls ensure_loop_length then pins grid.get_tile_instance(0,
// 0).colour to zero.
func EnsureLoopLength(g *Grid, edgeMode EdgeModes) error {
	if err := PropagateColour(g, edgeMode); err != nil {
		return err
	}
	origin := g.GetTileInstance(0, 0)
	clauses, err := cnf.SetNumber(0, origin.Get(tile.FieldColour).Data)
	if err != nil {
		return err
	}
	g.AddClauses(clauses)
	return nil
}
