package grid

import (
	"testing"

	"github.com/gitrdm/beltcompiler/pkg/cnf"
	"github.com/gitrdm/beltcompiler/pkg/tile"
)

func testSchema(t *testing.T) *tile.Schema {
	t.Helper()
	s, err := tile.BeltTemplate(2, 0)
	if err != nil {
		t.Fatalf("BeltTemplate: %v", err)
	}
	return s
}

func TestNewRejectsNonPositiveDimensions(t *testing.T) {
	s := testSchema(t)
	if _, err := New(0, 3, 1, s); err == nil {
		t.Error("expected an error for width 0")
	}
	if _, err := New(3, -1, 1, s); err == nil {
		t.Error("expected an error for negative height")
	}
}

func TestGetTileInstanceOffsetBlock(t *testing.T) {
	s := testSchema(t)
	g, err := New(3, 3, 1, s)
	if err != nil {
		t.Fatal(err)
	}
	cell := g.GetTileInstanceOffset(0, 0, -1, 0, Uniform(EdgeBlock))
	if cell.Kind != CellBlocked {
		t.Errorf("expected CellBlocked, got %v", cell.Kind)
	}
}

func TestGetTileInstanceOffsetIgnore(t *testing.T) {
	s := testSchema(t)
	g, err := New(3, 3, 1, s)
	if err != nil {
		t.Fatal(err)
	}
	cell := g.GetTileInstanceOffset(0, 0, -1, 0, Uniform(EdgeIgnore))
	if cell.Kind != CellIgnored {
		t.Errorf("expected CellIgnored, got %v", cell.Kind)
	}
}

func TestGetTileInstanceOffsetTileWraps(t *testing.T) {
	s := testSchema(t)
	g, err := New(3, 3, 1, s)
	if err != nil {
		t.Fatal(err)
	}
	cell := g.GetTileInstanceOffset(0, 0, -1, 0, Uniform(EdgeTile))
	if !cell.IsReal() {
		t.Fatalf("expected a real wrapped tile, got %v", cell.Kind)
	}
	want := g.GetTileInstance(2, 0)
	if cell.Tile.Get(tile.FieldInputDirection).Scalar() != want.Get(tile.FieldInputDirection).Scalar() {
		t.Errorf("wrapped tile does not match expected column")
	}
}

func TestGetTileInstanceOffsetRealCenter(t *testing.T) {
	s := testSchema(t)
	g, err := New(3, 3, 1, s)
	if err != nil {
		t.Fatal(err)
	}
	cell := g.GetTileInstanceOffset(1, 1, 1, 0, Uniform(EdgeBlock))
	if !cell.IsReal() {
		t.Fatalf("expected a real tile in-bounds, got %v", cell.Kind)
	}
	want := g.GetTileInstance(2, 1)
	if cell.Tile.Get(tile.FieldInputDirection).Scalar() != want.Get(tile.FieldInputDirection).Scalar() {
		t.Error("offset tile does not match GetTileInstance(2, 1)")
	}
}

func TestAllocateVariableAfterDenseBlock(t *testing.T) {
	s := testSchema(t)
	g, err := New(2, 2, 1, s)
	if err != nil {
		t.Fatal(err)
	}
	v := g.AllocateVariable()
	if int(v) != g.TotalVariables()+1 {
		t.Errorf("first allocated variable = %d, want %d", v, g.TotalVariables()+1)
	}
	v2 := g.AllocateVariable()
	if v2 != v+1 {
		t.Errorf("second allocated variable = %d, want %d", v2, v+1)
	}
}

func TestAddClauseRecordsIntoRecorder(t *testing.T) {
	s := testSchema(t)
	g, err := New(2, 2, 1, s)
	if err != nil {
		t.Fatal(err)
	}
	before := len(g.Clauses)
	g.AddClause(cnf.Clause{1, -2})
	if len(g.Clauses) != before+1 {
		t.Errorf("AddClause did not append, len=%d want %d", len(g.Clauses), before+1)
	}
}
