package cnf

import "fmt"

// SetNumbers assigns valueA to variablesA and valueB to variablesB
// simultaneously, sharing literals where the two encodings agree bit for
// bit and correlating the literals where they differ. The result admits
// exactly two assignments, (valueA, valueB) and the swapped pair
// (valueB, valueA), where two SetNumber calls admit only the first.
//
// For each bit position where the two values agree, one unit clause per
// variable pins both variables to that bit (so the two literals are forced
// equal as a side effect, without a VariablesSame pair). For
// positions where the values differ, the two variables are forced to
// differ (VariablesDifferent); in addition, every pair of differing
// positions is correlated against the first such position: two positions
// that have the same bit in valueA must agree across valueA (and hence,
// being paired with variablesB, anti-correlate with variablesB at those
// same positions would double-encode the same information, so only the
// valueA side is linked), while positions whose bits differ in valueA must
// disagree across valueA. This is the mechanism belt_balancer.go uses to
// say "choose which of two possible input colour pairs appears, but
// consistently across the whole splitter" — see network.CreateBalancer.
func SetNumbers(valueA, valueB int, variablesA, variablesB []Literal) (Clauses, error) {
	if len(variablesA) != len(variablesB) {
		return nil, fmt.Errorf("cnf.SetNumbers: %w", ErrLengthMismatch)
	}
	totalBits := len(variablesA)
	if valueA < 0 || valueA >= (1<<uint(totalBits)) || valueB < 0 || valueB >= (1<<uint(totalBits)) {
		return nil, fmt.Errorf("cnf.SetNumbers: value does not fit in %d bits: %w", totalBits, ErrBitWidthExceeded)
	}

	bitsA := bits(valueA, totalBits)
	bitsB := bits(valueB, totalBits)

	var clauses Clauses
	type diff struct {
		varA, varB Literal
		bitA       bool
	}
	var differences []diff

	for i := 0; i < totalBits; i++ {
		varA, varB := variablesA[i], variablesB[i]
		if bitsA[i] == bitsB[i] {
			clauses = append(clauses, Clause{SetVariable(varA, bitsA[i])})
			clauses = append(clauses, Clause{SetVariable(varB, bitsA[i])})
		} else {
			clauses = append(clauses, VariablesDifferent(varA, varB)...)
			differences = append(differences, diff{varA, varB, bitsA[i]})
		}
	}

	if len(differences) != 0 {
		first := differences[0]
		for _, d := range differences[1:] {
			if first.bitA == d.bitA {
				clauses = append(clauses, VariablesSame(first.varA, d.varA)...)
			} else {
				clauses = append(clauses, VariablesDifferent(first.varA, d.varA)...)
			}
		}
	}

	return clauses, nil
}
