package satsolver

import "github.com/gitrdm/beltcompiler/pkg/cnf"

func init() {
	Register("bruteforce", AdaptVector(bruteforceSolver{}))
}

// bruteforceSolver is a small pure-Go DPLL solver: unit propagation plus
// chronological backtracking over the first unassigned variable. It has
// no tuning and is not meant to compete with a real SAT solver — it
// exists so this package's own tests are deterministic and don't require
// an external process, and is registered under the backend name
// "bruteforce". Grounded on pkg/minikanren/search.go's backtracking
// search, written here as plain recursion rather than an explicit stack.
type bruteforceSolver struct{}

func (bruteforceSolver) VectorSolve(clauses cnf.Clauses, numVars int) (bool, []bool, error) {
	assignment := make([]int8, numVars+1) // 0 = unassigned, 1 = true, -1 = false
	ok := dpll(clauses, assignment)
	if !ok {
		return false, nil, nil
	}
	model := make([]bool, numVars+1)
	for v := 1; v <= numVars; v++ {
		model[v] = assignment[v] == 1
	}
	return true, model, nil
}

// dpll mutates assignment in place and reports whether a satisfying
// completion exists for the given partial assignment.
func dpll(clauses cnf.Clauses, assignment []int8) bool {
	working := make([]int8, len(assignment))
	copy(working, assignment)

	if !unitPropagate(clauses, working) {
		return false
	}

	status := evaluate(clauses, working)
	if status == satResultFalse {
		return false
	}
	if status == satResultTrue {
		copy(assignment, working)
		return true
	}

	branchVar := firstUnassigned(working)
	if branchVar == 0 {
		copy(assignment, working)
		return true
	}

	for _, val := range [2]int8{1, -1} {
		trial := make([]int8, len(working))
		copy(trial, working)
		trial[branchVar] = val
		if dpll(clauses, trial) {
			copy(assignment, trial)
			return true
		}
	}
	return false
}

type satResult int

const (
	satResultUnknown satResult = iota
	satResultTrue
	satResultFalse
)

func evaluate(clauses cnf.Clauses, assignment []int8) satResult {
	allSatisfied := true
	for _, clause := range clauses {
		sat := false
		hasUnassigned := false
		for _, lit := range clause {
			v := int(lit)
			neg := v < 0
			if neg {
				v = -v
			}
			switch assignment[v] {
			case 0:
				hasUnassigned = true
			case 1:
				if !neg {
					sat = true
				}
			case -1:
				if neg {
					sat = true
				}
			}
		}
		if !sat {
			if !hasUnassigned {
				return satResultFalse
			}
			allSatisfied = false
		}
	}
	if allSatisfied {
		return satResultTrue
	}
	return satResultUnknown
}

func firstUnassigned(assignment []int8) int {
	for v := 1; v < len(assignment); v++ {
		if assignment[v] == 0 {
			return v
		}
	}
	return 0
}

// unitPropagate repeatedly assigns unit clauses until fixpoint or
// contradiction.
func unitPropagate(clauses cnf.Clauses, assignment []int8) bool {
	for {
		changed := false
		for _, clause := range clauses {
			unassignedLit := cnf.Literal(0)
			unassignedCount := 0
			satisfied := false
			for _, lit := range clause {
				v := int(lit)
				neg := v < 0
				if neg {
					v = -v
				}
				switch assignment[v] {
				case 1:
					if !neg {
						satisfied = true
					}
				case -1:
					if neg {
						satisfied = true
					}
				case 0:
					unassignedCount++
					unassignedLit = lit
				}
			}
			if satisfied {
				continue
			}
			if unassignedCount == 0 {
				return false
			}
			if unassignedCount == 1 {
				v := int(unassignedLit)
				if v < 0 {
					assignment[-v] = -1
				} else {
					assignment[v] = 1
				}
				changed = true
			}
		}
		if !changed {
			return true
		}
	}
}
