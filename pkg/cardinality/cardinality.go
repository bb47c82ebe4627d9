// Package cardinality implements the at-most-one, exactly-one, and
// at-least-k encodings layered on top of pkg/cnf. These are correctness-
// and performance-critical: almost every invariant in the tile template
// ("at most one input direction", "exactly one node per splitter")
// ultimately reduces to one of the encoders in this file.
//
// The shape mirrors pkg/minikanren's counting constraints (gcc.go and
// nvalue.go build global-cardinality and n-value propagators on top of a
// lower-level domain primitive); here the "propagator" is a CNF encoder
// and the "domain" is always Boolean, but allocate-then-constrain is the
// same idiom.
package cardinality

import (
	"fmt"

	"github.com/gitrdm/beltcompiler/pkg/cnf"
)

// QuadraticAtMostOne forbids every pair of literals in L from being true
// simultaneously, using O(n^2) binary clauses. Grounded on
// belt_balancer.py's imported quadratic_one (used for exactly-one; the
// at-most-one half is the same pairwise loop without the final big clause).
func QuadraticAtMostOne(lits []cnf.Literal) cnf.Clauses {
	var clauses cnf.Clauses
	for i := 0; i < len(lits); i++ {
		for j := i + 1; j < len(lits); j++ {
			clauses = append(clauses, cnf.Clause{-lits[i], -lits[j]})
		}
	}
	return clauses
}

// QuadraticExactlyOne additionally requires at least one literal to be
// true, on top of QuadraticAtMostOne. Mirrors the unnamed quadratic_one
// gadget belt_balancer.go imports from cardinality.py.
func QuadraticExactlyOne(lits []cnf.Literal) (cnf.Clauses, error) {
	if len(lits) == 0 {
		return nil, fmt.Errorf("cardinality.QuadraticExactlyOne: %w", cnf.ErrEmptyInput)
	}
	clauses := QuadraticAtMostOne(lits)
	atLeastOne := make(cnf.Clause, len(lits))
	copy(atLeastOne, lits)
	clauses = append(clauses, atLeastOne)
	return clauses, nil
}

// LogarithmicExactlyOne encodes exactly-one over n literals using
// ceil(log2(n)) auxiliary index bits instead of O(n^2) pairwise clauses:
// for each literal L[i], under the precondition L[i] the index bits are
// pinned to i; the disjunction of all L[i] is required separately. Size is
// O(n log n), matching belt_balancer.py's logarithmic_one, used there for
// "exactly one location per splitter node" across potentially large grids.
func LogarithmicExactlyOne(lits []cnf.Literal, alloc cnf.Allocator) (cnf.Clauses, error) {
	n := len(lits)
	if n == 0 {
		return nil, fmt.Errorf("cardinality.LogarithmicExactlyOne: %w", cnf.ErrEmptyInput)
	}
	if n == 1 {
		return cnf.Clauses{{lits[0]}}, nil
	}

	width := cnf.BinLength(n)
	index := make([]cnf.Literal, width)
	for i := range index {
		index[i] = alloc.Next()
	}

	var clauses cnf.Clauses
	for i, lit := range lits {
		set, err := cnf.SetNumber(i, index)
		if err != nil {
			return nil, fmt.Errorf("cardinality.LogarithmicExactlyOne: %w", err)
		}
		clauses = append(clauses, cnf.Implies([]cnf.Literal{lit}, set)...)
	}

	atLeastOne := make(cnf.Clause, n)
	copy(atLeastOne, lits)
	clauses = append(clauses, atLeastOne)

	return clauses, nil
}

// AdderGreaterEqual requires at least k of the literals in L to be true.
// It computes popcount(L) into a fresh number and forces that number >= k
// via the standard lexicographic comparison (see numberGreaterEqual): for
// each bit of k that is one, if every higher bit of the popcount equals
// the corresponding bit of k, the popcount must have that bit set too.
// Mirrors belt_balancer.py's imported
// adder_greater_equal, used for "at least |edge input splitters| -
// recirculate_input of them land in the edge column".
func AdderGreaterEqual(lits []cnf.Literal, k int, alloc cnf.Allocator) (cnf.Clauses, error) {
	n := len(lits)
	if n < 2 {
		return nil, fmt.Errorf("cardinality.AdderGreaterEqual: %w", cnf.ErrEmptyInput)
	}
	if k <= 0 {
		return nil, nil
	}

	width := cnf.BinLength(n + 1)
	count := make([]cnf.Literal, width)
	for i := range count {
		count[i] = alloc.Next()
	}

	clauses, err := cnf.Popcount(lits, count, alloc)
	if err != nil {
		return nil, fmt.Errorf("cardinality.AdderGreaterEqual: %w", err)
	}

	geq, err := numberGreaterEqual(count, k)
	if err != nil {
		return nil, fmt.Errorf("cardinality.AdderGreaterEqual: %w", err)
	}
	clauses = append(clauses, geq...)
	return clauses, nil
}

// numberGreaterEqual forces the little-endian unsigned number represented
// by bits to be >= k via a standard bit-by-bit lexicographic comparison
// starting from the most significant bit. `matched` accumulates, from the
// top down, the precondition that every higher bit of the number equals
// the corresponding bit of k exactly; N < k can only happen at the first
// position (from the top) where the bits diverge, and only if the number's
// bit is 0 there while k's is 1 — so a clause is only needed at positions
// where k's bit is 1, under the precondition that everything above matched.
func numberGreaterEqual(bits []cnf.Literal, k int) (cnf.Clauses, error) {
	width := len(bits)
	if k < 0 {
		return nil, nil
	}
	if k >= (1 << uint(width)) {
		// No assignment of width bits can reach k: unsatisfiable.
		return cnf.Clauses{{}}, nil
	}

	var clauses cnf.Clauses
	var matched []cnf.Literal
	for i := width - 1; i >= 0; i-- {
		kBit := (k>>uint(i))&1 != 0
		if kBit {
			clauses = append(clauses, cnf.Implies(matched, cnf.Clauses{{bits[i]}})...)
			matched = append(matched, bits[i])
		} else {
			matched = append(matched, -bits[i])
		}
	}
	return clauses, nil
}
