package grid

import (
	"testing"

	"github.com/gitrdm/beltcompiler/pkg/cnf"
	"github.com/gitrdm/beltcompiler/pkg/satsolver"
	"github.com/gitrdm/beltcompiler/pkg/tile"
)

func newTestGrid(t *testing.T, w, h int) *Grid {
	t.Helper()
	schema, err := tile.BeltTemplate(2, 0)
	if err != nil {
		t.Fatalf("BeltTemplate: %v", err)
	}
	g, err := New(w, h, 4, schema)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func bruteforceProvider(t *testing.T) satsolver.Provider {
	t.Helper()
	p, err := satsolver.Get("bruteforce")
	if err != nil {
		t.Fatalf("satsolver.Get(bruteforce): %v", err)
	}
	return p
}

func TestPerCellWellFormednessIsSatisfiable(t *testing.T) {
	g := newTestGrid(t, 2, 1)
	if err := PerCellWellFormedness(g); err != nil {
		t.Fatalf("PerCellWellFormedness: %v", err)
	}

	it, err := g.Itersolve(nil, bruteforceProvider(t))
	if err != nil {
		t.Fatalf("Itersolve: %v", err)
	}
	defer it.Close()
	_, ok, err := it.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !ok {
		t.Error("expected per-cell well-formedness alone to be satisfiable")
	}
}

func TestPreventColourForbidsEncoding(t *testing.T) {
	g := newTestGrid(t, 1, 1)
	if err := PerCellWellFormedness(g); err != nil {
		t.Fatal(err)
	}
	if err := PreventColour(g, 0); err != nil {
		t.Fatalf("PreventColour: %v", err)
	}

	// Block on the colour bits only, so each distinct colour value is
	// enumerated once rather than every full assignment of the cell.
	colourLits := g.GetTileInstance(0, 0).Get(tile.FieldColour).Data
	it, err := g.Itersolve(colourLits, bruteforceProvider(t))
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()
	seen := 0
	for {
		sol, ok, err := it.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		seen++
		if seen > 32 {
			t.Fatal("too many models, aborting")
		}
		if got := sol.At(0, 0)[tile.FieldColour].Ints[0]; got == 0 {
			t.Errorf("PreventColour(0) allowed colour 0 in a model")
		}
	}
}

func TestPreventSmallLoopsForbidsTwoCellCycle(t *testing.T) {
	g := newTestGrid(t, 2, 1)
	if err := PreventSmallLoops(g, 2); err != nil {
		t.Fatalf("PreventSmallLoops: %v", err)
	}

	a := g.GetTileInstance(0, 0)
	b := g.GetTileInstance(1, 0)
	// Force the 2-cell cycle: a outputs east, b outputs west.
	g.AddClause(cnf.Clause{a.Get(tile.FieldOutputDirection).Data[tile.East]})
	g.AddClause(cnf.Clause{b.Get(tile.FieldOutputDirection).Data[tile.West]})

	it, err := g.Itersolve(nil, bruteforceProvider(t))
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()
	_, ok, err := it.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ok {
		t.Error("expected the forced 2-cell cycle to be UNSAT under PreventSmallLoops(2)")
	}
}

func TestPreventBadColouringPropagatesUnchanged(t *testing.T) {
	g := newTestGrid(t, 2, 1)
	if err := PreventBadColouring(g, Uniform(EdgeBlock)); err != nil {
		t.Fatalf("PreventBadColouring: %v", err)
	}

	a := g.GetTileInstance(0, 0)
	g.AddClause(cnf.Clause{a.Get(tile.FieldOutputDirection).Data[tile.East]})
	setA, err := cnf.SetNumber(2, a.Get(tile.FieldColour).Data)
	if err != nil {
		t.Fatal(err)
	}
	g.AddClauses(setA)

	it, err := g.Itersolve(nil, bruteforceProvider(t))
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()
	sol, ok, err := it.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !ok {
		t.Fatal("expected a model with an eastbound belt of colour 2")
	}
	got := sol.At(1, 0)[tile.FieldColour].Ints[0]
	if got != 2 {
		t.Errorf("downstream colour = %d, want 2 (unchanged, not incremented)", got)
	}
}

func TestSetMaximumUndergroundLengthBoundsRun(t *testing.T) {
	g := newTestGrid(t, 4, 1)
	if err := SetMaximumUndergroundLength(g, 1, Uniform(EdgeBlock)); err != nil {
		t.Fatalf("SetMaximumUndergroundLength: %v", err)
	}

	// Force three consecutive cells to carry an east-bound underground
	// beam; with length 1 (window size 2) no run of 3 should be allowed.
	for x := 0; x < 3; x++ {
		c := g.GetTileInstance(x, 0)
		g.AddClause(cnf.Clause{c.Get(tile.FieldUnderground).Data[tile.East]})
	}

	it, err := g.Itersolve(nil, bruteforceProvider(t))
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()
	_, ok, err := it.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ok {
		t.Error("expected a 3-long underground run to be UNSAT under length bound 1")
	}
}
