package network

import "testing"

func TestCreateBalancerBuildsWithoutError(t *testing.T) {
	n := twoLaneBalancerNetwork()
	g, err := CreateBalancer(n, 4, 2)
	if err != nil {
		t.Fatalf("CreateBalancer: %v", err)
	}
	if g.W != 4 || g.H != 2 {
		t.Fatalf("grid dims = (%d, %d), want (4, 2)", g.W, g.H)
	}
	if len(g.Clauses) == 0 {
		t.Error("expected CreateBalancer to have accumulated clauses")
	}
}

func TestSetupBalancerEndsBuildsWithoutError(t *testing.T) {
	n := twoLaneBalancerNetwork()
	g, err := CreateBalancer(n, 4, 2)
	if err != nil {
		t.Fatalf("CreateBalancer: %v", err)
	}
	before := len(g.Clauses)
	if err := SetupBalancerEnds(g, n, true); err != nil {
		t.Fatalf("SetupBalancerEnds: %v", err)
	}
	if len(g.Clauses) <= before {
		t.Error("expected SetupBalancerEnds to add clauses")
	}
}

func TestEnforceEdgeSplittersBuildsWithoutError(t *testing.T) {
	n := twoLaneBalancerNetwork()
	g, err := CreateBalancer(n, 4, 2)
	if err != nil {
		t.Fatalf("CreateBalancer: %v", err)
	}
	if err := EnforceEdgeSplitters(g, n); err != nil {
		t.Fatalf("EnforceEdgeSplitters: %v", err)
	}
}
