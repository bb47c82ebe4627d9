package satsolver

import (
	"testing"

	"github.com/gitrdm/beltcompiler/pkg/cnf"
)

func TestGetUnknownBackend(t *testing.T) {
	if _, err := Get("no-such-backend"); err != ErrUnknownBackend {
		t.Errorf("Get(unknown) error = %v, want %v", err, ErrUnknownBackend)
	}
}

func TestNamesIncludesRegisteredBackends(t *testing.T) {
	names := Names()
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["bruteforce"] {
		t.Errorf("Names() = %v, want it to include \"bruteforce\"", names)
	}
	if !found[DefaultBackend] {
		t.Errorf("Names() = %v, want it to include the default backend %q", names, DefaultBackend)
	}
}

func TestBruteforceSatisfiable(t *testing.T) {
	// (x1 or x2) and (not x1 or x2) and (x1 or not x2): forces x1 = x2 = true.
	clauses := cnf.Clauses{
		{1, 2},
		{-1, 2},
		{1, -2},
	}
	session, err := Open("bruteforce", clauses, 2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer session.Close()

	sat, err := session.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !sat {
		t.Fatal("expected satisfiable")
	}
	model, err := session.Model()
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	values := map[int]bool{}
	for _, lit := range model {
		values[abs(lit)] = lit > 0
	}
	if !values[1] || !values[2] {
		t.Errorf("model = %v, want both variables true", model)
	}
}

func TestBruteforceUnsatisfiable(t *testing.T) {
	clauses := cnf.Clauses{
		{1},
		{-1},
	}
	session, err := Open("bruteforce", clauses, 1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer session.Close()

	sat, err := session.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sat {
		t.Fatal("expected unsatisfiable")
	}
}

func TestBruteforceAddClauseNarrowsSubsequentSolve(t *testing.T) {
	clauses := cnf.Clauses{{1, 2}}
	session, err := Open("bruteforce", clauses, 2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer session.Close()

	if err := session.AddClause(cnf.Clause{-1}); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	if err := session.AddClause(cnf.Clause{-2}); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	sat, err := session.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sat {
		t.Fatal("expected unsatisfiable once both variables are forced false against (x1 or x2)")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
