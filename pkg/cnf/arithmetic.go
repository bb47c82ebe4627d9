package cnf

import "fmt"

// AddNumbers emits the CNF of a ripple-carry adder computing a + b (+
// carryIn, if non-nil) into out. When len(out) == len(a)+1 the final carry
// becomes the extra output bit; when allowOverflow is false and out is the
// same width as the inputs, overflow is forbidden by a unit clause pinning
// the top carry to false; when allowOverflow is true the top carry is
// simply dropped, realising addition modulo 2^n. Mirrors util.py's
// add_numbers bit for bit.
func AddNumbers(a, b, out []Literal, alloc Allocator, carryIn *Literal, allowOverflow bool) (Clauses, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("cnf.AddNumbers: %w", ErrLengthMismatch)
	}
	if len(out) != len(a) && len(out) != len(a)+1 {
		return nil, fmt.Errorf("cnf.AddNumbers: out must be len(a) or len(a)+1 wide: %w", ErrLengthMismatch)
	}

	var clauses Clauses
	cin := carryIn
	for i := range a {
		inA, inB, o := a[i], b[i], out[i]
		carryOut := alloc.Next()

		if cin == nil {
			clauses = append(clauses,
				Clause{-inA, -inB, carryOut},
				Clause{inA, -carryOut},
				Clause{inB, -carryOut},

				Clause{inA, inB, -o},
				Clause{-inA, inB, o},
				Clause{inA, -inB, o},
				Clause{-inA, -inB, -o},
			)
		} else {
			ci := *cin
			clauses = append(clauses,
				Clause{-inA, -inB, carryOut},
				Clause{-inA, -ci, carryOut},
				Clause{-inB, -ci, carryOut},

				Clause{inA, inB, -carryOut},
				Clause{inA, ci, -carryOut},
				Clause{inB, ci, -carryOut},

				Clause{inA, inB, ci, -o},
				Clause{-inA, inB, ci, o},
				Clause{inA, -inB, ci, o},
				Clause{-inA, -inB, ci, -o},
				Clause{inA, inB, -ci, o},
				Clause{-inA, inB, -ci, -o},
				Clause{inA, -inB, -ci, -o},
				Clause{-inA, -inB, -ci, o},
			)
		}

		co := carryOut
		cin = &co
	}

	if len(out) > len(a) {
		clauses = append(clauses, VariablesSame(*cin, out[len(out)-1])...)
	} else if !allowOverflow {
		clauses = append(clauses, Clause{-*cin})
	}
	return clauses, nil
}

// SumNumbers chains AddNumbers left to right across numbers, allocating
// intermediate equal-width numbers between stages. Mirrors util.py's
// sum_numbers.
func SumNumbers(numbers [][]Literal, out []Literal, alloc Allocator, allowOverflow bool) (Clauses, error) {
	if len(numbers) < 2 {
		return nil, fmt.Errorf("cnf.SumNumbers: need at least two numbers: %w", ErrEmptyInput)
	}
	size := len(numbers[0])
	for _, n := range numbers {
		if len(n) != size {
			return nil, fmt.Errorf("cnf.SumNumbers: %w", ErrLengthMismatch)
		}
	}
	if len(out) != size {
		return nil, fmt.Errorf("cnf.SumNumbers: %w", ErrLengthMismatch)
	}

	var clauses Clauses
	numberIn := numbers[0]
	for i, number := range numbers[1:] {
		var numberOut []Literal
		if i == len(numbers)-2 {
			numberOut = out
		} else {
			numberOut = make([]Literal, size)
			for j := range numberOut {
				numberOut[j] = alloc.Next()
			}
		}
		cs, err := AddNumbers(numberIn, number, numberOut, alloc, nil, allowOverflow)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, cs...)
		numberIn = numberOut
	}
	return clauses, nil
}

// IncrementNumber emits the CNF for out = in + 1, wrapping on overflow
// (modulo 2^n, no width expansion). Per bit i, under the precondition that
// every lower bit of in is 1, out[i] must differ from in[i]; otherwise it
// must match. Mirrors util.py's increment_number.
func IncrementNumber(in, out []Literal) (Clauses, error) {
	if len(in) != len(out) {
		return nil, fmt.Errorf("cnf.IncrementNumber: %w", ErrLengthMismatch)
	}
	if len(in) == 0 {
		return nil, fmt.Errorf("cnf.IncrementNumber: %w", ErrEmptyInput)
	}

	var clauses Clauses
	for i := range in {
		clauses = append(clauses, Implies(in[:i], VariablesDifferent(in[i], out[i]))...)
		for _, v := range in[:i] {
			clauses = append(clauses, Implies([]Literal{-v}, VariablesSame(in[i], out[i]))...)
		}
	}
	return clauses, nil
}

// EqualNumbers emits the CNF for a == b: one VariablesSame pair per bit.
// Unlike IncrementNumber this carries no cross-bit carry chain, since
// equality has none.
func EqualNumbers(a, b []Literal) (Clauses, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("cnf.EqualNumbers: %w", ErrLengthMismatch)
	}
	var clauses Clauses
	for i := range a {
		clauses = append(clauses, VariablesSame(a[i], b[i])...)
	}
	return clauses, nil
}

// InvertNumber emits the CNF for a two's-complement negation of in into
// out, via the same ripple borrow-chain util.py's invert_number uses. The
// all-zero input is forbidden by an added clause, since its negation would
// overflow the width; this is carried forward deliberately rather than
// re-derived as a zero-safe variant.
func InvertNumber(in, out []Literal, alloc Allocator) (Clauses, error) {
	if len(in) != len(out) {
		return nil, fmt.Errorf("cnf.InvertNumber: %w", ErrLengthMismatch)
	}
	if len(in) == 0 {
		return nil, fmt.Errorf("cnf.InvertNumber: %w", ErrEmptyInput)
	}

	var clauses Clauses
	var carryIn *Literal
	for i := range in {
		a, b := in[i], out[i]
		var carryOut *Literal
		if i != len(in)-1 {
			c := alloc.Next()
			carryOut = &c
		}

		if carryIn == nil {
			clauses = append(clauses, VariablesSame(a, b)...)
			if carryOut != nil {
				co := *carryOut
				clauses = append(clauses,
					Clause{-a, -b, co},
					Clause{a, -co},
					Clause{b, -co},
				)
			}
		} else {
			ci := *carryIn
			clauses = append(clauses,
				Clause{-a, -b, -ci},
				Clause{-a, b, ci},
				Clause{a, -b, ci},
				Clause{a, b, -ci},
			)
			if carryOut != nil {
				co := *carryOut
				clauses = append(clauses,
					Clause{-a, -b, co},
					Clause{-a, -ci, co},
					Clause{-b, -ci, co},

					Clause{a, b, -co},
					Clause{a, ci, -co},
					Clause{b, ci, -co},
				)
			}
		}
		carryIn = carryOut
	}

	forbidZero := make(Clause, len(in))
	copy(forbidZero, in)
	clauses = append(clauses, forbidZero)

	return clauses, nil
}

// Popcount emits the CNF computing the population count (number of true
// bits) of bits into a freshly-specified output number of width
// ceil(log2(len(bits)+1)), via the divide-and-conquer recursive adder tree
// of util.py's get_popcount.
func Popcount(bitsIn []Literal, out []Literal, alloc Allocator) (Clauses, error) {
	if len(bitsIn) <= 1 {
		return nil, fmt.Errorf("cnf.Popcount: need at least two input bits: %w", ErrEmptyInput)
	}
	want := BinLength(len(bitsIn) + 1)
	if len(out) != want {
		return nil, fmt.Errorf("cnf.Popcount: output must be %d bits wide for %d inputs: %w", want, len(bitsIn), ErrLengthMismatch)
	}

	var clauses Clauses
	if len(bitsIn) <= 3 {
		var carryIn *Literal
		if len(bitsIn) == 3 {
			c := bitsIn[2]
			carryIn = &c
		}
		cs, err := AddNumbers([]Literal{bitsIn[0]}, []Literal{bitsIn[1]}, out, alloc, carryIn, false)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, cs...)
		return clauses, nil
	}

	var carryIn *Literal
	if len(bitsIn)%2 != 0 {
		c := bitsIn[len(bitsIn)-1]
		carryIn = &c
	}
	subSize := len(bitsIn) / 2

	outputA := make([]Literal, len(out)-1)
	outputB := make([]Literal, len(out)-1)
	for i := range outputA {
		outputA[i] = alloc.Next()
		outputB[i] = alloc.Next()
	}

	csA, err := Popcount(bitsIn[:subSize], outputA, alloc)
	if err != nil {
		return nil, err
	}
	csB, err := Popcount(bitsIn[subSize:2*subSize], outputB, alloc)
	if err != nil {
		return nil, err
	}
	csSum, err := AddNumbers(outputA, outputB, out, alloc, carryIn, false)
	if err != nil {
		return nil, err
	}
	clauses = append(clauses, csA...)
	clauses = append(clauses, csB...)
	clauses = append(clauses, csSum...)
	return clauses, nil
}
