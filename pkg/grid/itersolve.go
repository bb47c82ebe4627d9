package grid

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/gitrdm/beltcompiler/pkg/cnf"
	"github.com/gitrdm/beltcompiler/pkg/satsolver"
	"github.com/gitrdm/beltcompiler/pkg/tile"
)

// Solution is one parsed model: the per-cell decoded field values plus
// the grid dimensions needed to index them, matching util.py's
// parse_solution (a (height, width)-shaped array, transposed so callers
// index [x][y]).
type Solution struct {
	W, H  int
	Tiles []tile.ParsedTile // row-major: index = y*W + x
}

// At returns the parsed tile at (x, y).
func (s Solution) At(x, y int) tile.ParsedTile {
	return s.Tiles[y*s.W+x]
}

// ModelIterator is a lazy, restartable sequence of models over a Grid's
// accumulated clauses, one solve-block-solve cycle per call to Next, as
// an explicit pull iterator (Go precedent: database/sql's *Rows,
// bufio.Scanner) rather than a language-level generator.
type ModelIterator struct {
	grid      *Grid
	session   satsolver.Session
	important *bitset.BitSet
	closed    bool
}

// Itersolve opens a session against provider, bootstrapped with the
// grid's accumulated clauses, and returns an iterator that yields one
// parsed Solution per call to Next until the backend reports UNSAT.
// important selects which literals participate in the blocking clause
// appended after each model; a nil slice treats every grid variable as
// important (classic "enumerate all distinct total assignments").
func (g *Grid) Itersolve(important []cnf.Literal, provider satsolver.Provider) (*ModelIterator, error) {
	numVars := g.alloc.Count()
	session, err := provider.Open(g.Clauses, numVars)
	if err != nil {
		return nil, err
	}

	bs := bitset.New(uint(numVars + 1))
	if important == nil {
		for v := 1; v <= numVars; v++ {
			bs.Set(uint(v))
		}
	} else {
		for _, lit := range important {
			v := int(lit)
			if v < 0 {
				v = -v
			}
			bs.Set(uint(v))
		}
	}

	return &ModelIterator{grid: g, session: session, important: bs}, nil
}

// Next solves for one more model, returning it along with true, or
// returns (zero, false, nil) once the backend reports UNSAT. It must not
// be called again after ok is false or after Close.
func (it *ModelIterator) Next() (Solution, bool, error) {
	if it.closed {
		return Solution{}, false, nil
	}
	sat, err := it.session.Solve()
	if err != nil {
		return Solution{}, false, err
	}
	if !sat {
		return Solution{}, false, nil
	}

	model, err := it.session.Model()
	if err != nil {
		return Solution{}, false, err
	}

	assignment := make([]bool, it.grid.TotalVariables()+1)
	blocking := make(cnf.Clause, 0, it.important.Count())
	for _, signed := range model {
		v := signed
		truth := true
		if v < 0 {
			v = -v
			truth = false
		}
		if v <= it.grid.TotalVariables() {
			assignment[v] = truth
		}
		if it.important.Test(uint(v)) {
			if truth {
				blocking = append(blocking, cnf.Literal(-v))
			} else {
				blocking = append(blocking, cnf.Literal(v))
			}
		}
	}

	tiles, err := it.grid.Schema.ParseAssignment(assignment, it.grid.W*it.grid.H)
	if err != nil {
		return Solution{}, false, err
	}
	sol := Solution{W: it.grid.W, H: it.grid.H, Tiles: tiles}

	if len(blocking) > 0 {
		if err := it.session.AddClause(blocking); err != nil {
			return Solution{}, false, err
		}
	}

	return sol, true, nil
}

// Close releases the backend session. Safe to call more than once;
// equivalent to "dropping the iterator closes the backend" in the
// generator-protocol description.
func (it *ModelIterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	return it.session.Close()
}
