// Package cnf provides the bit and clause primitives that every other
// compiler package builds on: literals, clauses, an allocator abstraction,
// and the ripple-carry arithmetic encoders used to constrain binary numbers
// in conjunctive normal form.
//
// Nothing in this package knows about grids, tiles, or splitter networks.
// It is the same kind of leaf layer that pkg/minikanren's domain.go and
// fd_arith.go occupy for finite-domain solving: small, allocation-aware,
// and exercised entirely through explicit values rather than interfaces
// tied to any particular problem.
package cnf

import "fmt"

// Literal identifies a Boolean variable, or its negation when negative.
// Variable 0 is reserved and never appears in a well-formed literal.
type Literal int

// Clause is a finite disjunction of literals.
type Clause []Literal

// Clauses is an ordered, append-only list of Clause values. Order is
// significant: identical inputs must compile to byte-identical CNF, so
// callers must never reorder a Clauses value.
type Clauses []Clause

// Allocator hands out fresh, monotonically increasing variable numbers.
// Grid implementations back this with a counter seeded after the dense
// tile-variable block; cardinality and arithmetic encoders treat it as
// an opaque source of auxiliary variables.
type Allocator interface {
	Next() Literal
}

// AllocatorFunc adapts a plain function to the Allocator interface.
type AllocatorFunc func() Literal

// Next implements Allocator.
func (f AllocatorFunc) Next() Literal { return f() }

// CounterAllocator is the simplest Allocator: a monotonic counter starting
// just above an existing variable block.
type CounterAllocator struct {
	next Literal
}

// NewCounterAllocator returns an allocator whose first call to Next returns
// firstFree.
func NewCounterAllocator(firstFree Literal) *CounterAllocator {
	return &CounterAllocator{next: firstFree}
}

// Next returns the next free variable and advances the counter.
func (c *CounterAllocator) Next() Literal {
	v := c.next
	c.next++
	return v
}

// Count returns how many variables are in use so far: every variable
// numbered below the one Next would return, including the block that
// preceded firstFree.
func (c *CounterAllocator) Count() int {
	return int(c.next) - 1
}

// SetVariable returns the literal for v under polarity b: v itself when b is
// true, its negation otherwise. Mirrors util.py's set_variable.
func SetVariable(v Literal, b bool) Literal {
	if b {
		return v
	}
	return -v
}

// VariablesSame returns the two clauses enforcing a <-> b.
func VariablesSame(a, b Literal) Clauses {
	return Clauses{
		{-a, b},
		{a, -b},
	}
}

// VariablesDifferent returns the two clauses enforcing a XOR b.
func VariablesDifferent(a, b Literal) Clauses {
	return Clauses{
		{a, b},
		{-a, -b},
	}
}

// Implies broadcasts the negated precondition across every consequence
// clause, producing not(pre) OR C for each C in consequences. An empty
// consequence list yields an empty result, matching util.py's implies.
func Implies(pre []Literal, consequences Clauses) Clauses {
	if len(consequences) == 0 {
		return nil
	}
	negPre := make(Clause, len(pre))
	for i, p := range pre {
		negPre[i] = -p
	}
	out := make(Clauses, 0, len(consequences))
	for _, c := range consequences {
		clause := make(Clause, 0, len(negPre)+len(c))
		clause = append(clause, negPre...)
		clause = append(clause, c...)
		out = append(out, clause)
	}
	return out
}

// InvertComponents converts a clause "c0 OR c1 OR ..." into the literal list
// realising its negation "NOT c0 AND NOT c1 AND ...": the caller is
// responsible for treating the result as a conjunction of unit clauses, or
// as a precondition list to negate-and-broadcast via Implies.
func InvertComponents(clause Clause) Clause {
	out := make(Clause, len(clause))
	for i, v := range clause {
		out[i] = -v
	}
	return out
}

// bits returns the little-endian bit expansion of value across n positions.
func bits(value int, n int) []bool {
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = value&(1<<uint(i)) != 0
	}
	return out
}

// SetNumber returns unit clauses pinning the little-endian expansion of
// value onto variables. It reports ErrBitWidthExceeded if value does not
// fit in len(variables) bits.
func SetNumber(value int, variables []Literal) (Clauses, error) {
	if value < 0 || value >= (1<<uint(len(variables))) {
		return nil, fmt.Errorf("cnf: value %d does not fit in %d bits: %w", value, len(variables), ErrBitWidthExceeded)
	}
	out := make(Clauses, 0, len(variables))
	for i, v := range variables {
		out = append(out, Clause{SetVariable(v, bits(value, len(variables))[i])})
	}
	return out, nil
}

// SetNotNumber returns the single clause forbidding variables from encoding
// value: the disjunction of each bit literal negated relative to value's
// expansion. Mirrors util.py's set_not_number, which collapses SetNumber's
// unit clauses into one clause of negated literals.
func SetNotNumber(value int, variables []Literal) (Clause, error) {
	unitClauses, err := SetNumber(value, variables)
	if err != nil {
		return nil, err
	}
	out := make(Clause, len(unitClauses))
	for i, c := range unitClauses {
		out[i] = -c[0]
	}
	return out, nil
}

// ReadNumber decodes a little-endian Boolean assignment into an integer.
// When signed is true the top bit is interpreted as a two's-complement
// sign bit, matching util.py's read_number.
func ReadNumber(assignment []bool, signed bool) int {
	result := 0
	for i, b := range assignment {
		if b {
			result |= 1 << uint(i)
		}
	}
	if signed && len(assignment) > 0 && assignment[len(assignment)-1] {
		result -= 1 << uint(len(assignment))
	}
	return result
}

// BinLength returns ceil(log2(value)), the number of bits needed to count up
// to value-1 distinct states (or to represent values 0..value-1).
func BinLength(value int) int {
	n := 0
	for (1 << uint(n)) < value {
		n++
	}
	return n
}
