package cnf

import "testing"

// solveFor fixes input literals to the given bits, appends clauses as unit
// clauses, and brute-forces the remaining (output/aux) variables to find a
// unique satisfying assignment. numVars is the total variable count.
func solveFor(t *testing.T, clauses Clauses, fixed map[Literal]bool, numVars int) []bool {
	t.Helper()
	full := make(Clauses, len(clauses))
	copy(full, clauses)
	for v, b := range fixed {
		full = append(full, Clause{SetVariable(v, b)})
	}
	solutions := bruteForceSolutions(full, numVars)
	if len(solutions) != 1 {
		t.Fatalf("expected exactly one solution, got %d for fixed=%v", len(solutions), fixed)
	}
	return solutions[0]
}

func TestAddNumbersExact(t *testing.T) {
	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			// 2-bit inputs, 3-bit output (room for carry-out).
			alloc := newCountingAllocator(8)
			aVars := []Literal{1, 2}
			bVars := []Literal{3, 4}
			out := []Literal{5, 6, 7}
			clauses, err := AddNumbers(aVars, bVars, out, alloc, nil, false)
			if err != nil {
				t.Fatalf("AddNumbers(%d,%d): %v", a, b, err)
			}
			fixed := map[Literal]bool{
				1: a&1 != 0, 2: a&2 != 0,
				3: b&1 != 0, 4: b&2 != 0,
			}
			result := solveFor(t, clauses, fixed, int(alloc.next)-1)
			got := ReadNumber(result[5:8], false)
			want := a + b
			if got != want {
				t.Errorf("%d + %d = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestAddNumbersOverflowForbidden(t *testing.T) {
	// 2-bit + 2-bit -> 2-bit output forbids overflow; 3+3=6 doesn't fit in 2 bits.
	alloc := newCountingAllocator(8)
	clauses, err := AddNumbers([]Literal{1, 2}, []Literal{3, 4}, []Literal{5, 6}, alloc, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	fixed := map[Literal]bool{1: true, 2: true, 3: true, 4: true} // a=3, b=3
	full := append(Clauses{}, clauses...)
	for v, b := range fixed {
		full = append(full, Clause{SetVariable(v, b)})
	}
	solutions := bruteForceSolutions(full, int(alloc.next)-1)
	if len(solutions) != 0 {
		t.Errorf("expected UNSAT on overflow, got %d solutions", len(solutions))
	}
}

func TestAddNumbersAllowOverflow(t *testing.T) {
	alloc := newCountingAllocator(7)
	clauses, err := AddNumbers([]Literal{1, 2}, []Literal{3, 4}, []Literal{5, 6}, alloc, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	fixed := map[Literal]bool{1: true, 2: true, 3: true, 4: true} // a=3, b=3 -> 6 mod 4 = 2
	result := solveFor(t, clauses, fixed, int(alloc.next)-1)
	got := ReadNumber(result[5:7], false)
	if got != 2 {
		t.Errorf("3+3 mod 4 = %d, want 2", got)
	}
}

func TestIncrementNumber(t *testing.T) {
	for v := 0; v < 8; v++ {
		in := []Literal{1, 2, 3}
		out := []Literal{4, 5, 6}
		clauses, err := IncrementNumber(in, out)
		if err != nil {
			t.Fatal(err)
		}
		fixed := map[Literal]bool{1: v&1 != 0, 2: v&2 != 0, 3: v&4 != 0}
		result := solveFor(t, clauses, fixed, 6)
		got := ReadNumber(result[4:7], false)
		want := (v + 1) % 8
		if got != want {
			t.Errorf("increment(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestEqualNumbers(t *testing.T) {
	for v := 0; v < 8; v++ {
		a := []Literal{1, 2, 3}
		b := []Literal{4, 5, 6}
		clauses, err := EqualNumbers(a, b)
		if err != nil {
			t.Fatal(err)
		}
		fixed := map[Literal]bool{1: v&1 != 0, 2: v&2 != 0, 3: v&4 != 0}
		result := solveFor(t, clauses, fixed, 6)
		got := ReadNumber(result[4:7], false)
		if got != v {
			t.Errorf("equal(%d) forced the other side to %d", v, got)
		}
	}
}

func TestEqualNumbersLengthMismatch(t *testing.T) {
	if _, err := EqualNumbers([]Literal{1, 2}, []Literal{3}); err == nil {
		t.Error("expected an error for mismatched lengths")
	}
}

func TestInvertNumber(t *testing.T) {
	for v := 1; v < 8; v++ { // skip zero: forbidden
		alloc := newCountingAllocator(7)
		in := []Literal{1, 2, 3}
		out := []Literal{4, 5, 6}
		clauses, err := InvertNumber(in, out, alloc)
		if err != nil {
			t.Fatal(err)
		}
		fixed := map[Literal]bool{1: v&1 != 0, 2: v&2 != 0, 3: v&4 != 0}
		result := solveFor(t, clauses, fixed, int(alloc.next)-1)
		got := ReadNumber(result[4:7], false)
		want := (8 - v) % 8
		if got != want {
			t.Errorf("invert(%d) = %d, want %d", v, got, want)
		}
	}
}

func TestInvertNumberForbidsZero(t *testing.T) {
	alloc := newCountingAllocator(7)
	in := []Literal{1, 2, 3}
	out := []Literal{4, 5, 6}
	clauses, err := InvertNumber(in, out, alloc)
	if err != nil {
		t.Fatal(err)
	}
	full := append(Clauses{}, clauses...)
	full = append(full, Clause{-1}, Clause{-2}, Clause{-3})
	solutions := bruteForceSolutions(full, int(alloc.next)-1)
	if len(solutions) != 0 {
		t.Errorf("expected inverting zero to be UNSAT, got %d solutions", len(solutions))
	}
}

func TestPopcount(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		alloc := newCountingAllocator(8)
		bitsIn := []Literal{1, 2, 3, 4}
		out := []Literal{5, 6, 7} // ceil(log2(5)) = 3
		clauses, err := Popcount(bitsIn, out, alloc)
		if err != nil {
			t.Fatal(err)
		}
		fixed := map[Literal]bool{}
		want := 0
		for i := 0; i < 4; i++ {
			b := mask&(1<<uint(i)) != 0
			fixed[Literal(i+1)] = b
			if b {
				want++
			}
		}
		result := solveFor(t, clauses, fixed, int(alloc.next)-1)
		got := ReadNumber(result[5:8], false)
		if got != want {
			t.Errorf("popcount(%04b) = %d, want %d", mask, got, want)
		}
	}
}

func TestSumNumbers(t *testing.T) {
	alloc := newCountingAllocator(9)
	// SumNumbers needs every input as wide as out: 2-bit inputs and a
	// 2-bit output, which holds sums up to 3.
	a := []Literal{1, 2}
	b := []Literal{3, 4}
	c := []Literal{5, 6}
	out := []Literal{7, 8}
	clauses, err := SumNumbers([][]Literal{a, b, c}, out, alloc, false)
	if err != nil {
		t.Fatal(err)
	}
	fixed := map[Literal]bool{1: true, 2: false, 3: true, 4: false, 5: true, 6: false} // a=b=c=1
	result := solveFor(t, clauses, fixed, int(alloc.next)-1)
	got := ReadNumber(result[7:9], false)
	if got != 3 {
		t.Errorf("sum(1,1,1) = %d, want 3", got)
	}
}

func TestSetNumbersAgreeingBits(t *testing.T) {
	// value 0b01 and 0b01: identical, every bit shared.
	varsA := []Literal{1, 2}
	varsB := []Literal{3, 4}
	clauses, err := SetNumbers(1, 1, varsA, varsB)
	if err != nil {
		t.Fatal(err)
	}
	solutions := bruteForceSolutions(clauses, 4)
	if len(solutions) != 1 {
		t.Fatalf("expected unique solution, got %d", len(solutions))
	}
	if ReadNumber(solutions[0][1:3], false) != 1 || ReadNumber(solutions[0][3:5], false) != 1 {
		t.Errorf("SetNumbers(1,1) decoded wrong: %v", solutions[0])
	}
}

func TestSetNumbersDiffering(t *testing.T) {
	// value 0 and 1 on a single bit: the two variables must differ, and
	// both pairings (A=0,B=1 and A=1,B=0) are admitted.
	varsA := []Literal{1}
	varsB := []Literal{2}
	clauses, err := SetNumbers(0, 1, varsA, varsB)
	if err != nil {
		t.Fatal(err)
	}
	solutions := bruteForceSolutions(clauses, 2)
	if len(solutions) != 2 {
		t.Fatalf("expected two solutions (one per pairing), got %d", len(solutions))
	}
	for _, s := range solutions {
		if s[1] == s[2] {
			t.Errorf("SetNumbers(0,1) let both variables agree: %v", s)
		}
	}
}

func TestSetNumbersLengthMismatch(t *testing.T) {
	_, err := SetNumbers(0, 0, []Literal{1}, []Literal{1, 2})
	if err == nil {
		t.Fatal("expected a length-mismatch error")
	}
}
