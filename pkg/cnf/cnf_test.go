package cnf

import "testing"

func TestSetVariable(t *testing.T) {
	tests := []struct {
		name string
		v    Literal
		b    bool
		want Literal
	}{
		{"true keeps sign", 5, true, 5},
		{"false negates", 5, false, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SetVariable(tt.v, tt.b); got != tt.want {
				t.Errorf("SetVariable(%d, %v) = %d, want %d", tt.v, tt.b, got, tt.want)
			}
		})
	}
}

func TestVariablesSame(t *testing.T) {
	clauses := VariablesSame(1, 2)
	for _, assignment := range bruteForceSolutions(clauses, 2) {
		if assignment[1] != assignment[2] {
			t.Errorf("VariablesSame allowed a=%v b=%v", assignment[1], assignment[2])
		}
	}
	if got := len(bruteForceSolutions(clauses, 2)); got != 2 {
		t.Errorf("VariablesSame admits %d assignments, want 2", got)
	}
}

func TestVariablesDifferent(t *testing.T) {
	clauses := VariablesDifferent(1, 2)
	for _, assignment := range bruteForceSolutions(clauses, 2) {
		if assignment[1] == assignment[2] {
			t.Errorf("VariablesDifferent allowed a=b=%v", assignment[1])
		}
	}
	if got := len(bruteForceSolutions(clauses, 2)); got != 2 {
		t.Errorf("VariablesDifferent admits %d assignments, want 2", got)
	}
}

func TestImplies(t *testing.T) {
	// pre -> (a OR b); verify truth table over {pre, a, b}.
	consequences := Clauses{{2, 3}}
	clauses := Implies([]Literal{1}, consequences)

	for _, assignment := range bruteForceSolutions(clauses, 3) {
		if assignment[1] && !assignment[2] && !assignment[3] {
			t.Errorf("Implies allowed pre=true with consequence false: %v", assignment)
		}
	}

	if got := Implies([]Literal{1}, nil); got != nil {
		t.Errorf("Implies with empty consequences = %v, want nil", got)
	}
}

func TestSetNumber(t *testing.T) {
	vars := []Literal{1, 2, 3}
	clauses, err := SetNumber(5, vars) // 5 = 0b101
	if err != nil {
		t.Fatalf("SetNumber: %v", err)
	}
	solutions := bruteForceSolutions(clauses, 3)
	if len(solutions) != 1 {
		t.Fatalf("SetNumber should pin exactly one assignment, got %d", len(solutions))
	}
	got := ReadNumber(solutions[0][1:], false)
	if got != 5 {
		t.Errorf("decoded value = %d, want 5", got)
	}
}

func TestSetNotNumber(t *testing.T) {
	vars := []Literal{1, 2, 3}
	clause, err := SetNotNumber(5, vars) // forbid 0b101
	if err != nil {
		t.Fatalf("SetNotNumber: %v", err)
	}
	solutions := bruteForceSolutions(Clauses{clause}, 3)
	if len(solutions) != 7 {
		t.Fatalf("SetNotNumber should admit 7 of 8 assignments, got %d", len(solutions))
	}
	for _, sol := range solutions {
		if ReadNumber(sol[1:], false) == 5 {
			t.Errorf("SetNotNumber admitted the forbidden value 5")
		}
	}
}

func TestSetNumberOverflow(t *testing.T) {
	_, err := SetNumber(8, []Literal{1, 2, 3})
	if err == nil {
		t.Fatal("expected an error for a value that overflows the bit width")
	}
}

func TestBinLength(t *testing.T) {
	tests := []struct {
		value int
		want  int
	}{
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{9, 4},
	}
	for _, tt := range tests {
		if got := BinLength(tt.value); got != tt.want {
			t.Errorf("BinLength(%d) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestReadNumberSigned(t *testing.T) {
	// 0b111 as a 3-bit two's complement number is -1.
	got := ReadNumber([]bool{true, true, true}, true)
	if got != -1 {
		t.Errorf("ReadNumber(111, signed) = %d, want -1", got)
	}
}
