package satsolver

import "github.com/gitrdm/beltcompiler/pkg/cnf"

// VectorProvider is the second backend shape named in util.py's commented
// pycryptosat branch: a solver whose result is a dense, 1-indexed Boolean
// vector rather than a signed-literal list. VectorSolve is re-invoked on
// every call (no incremental solving), matching the original's
// "solve -> get whole vector back" contract.
type VectorProvider interface {
	// VectorSolve returns satisfiability and, when true, a vector indexed
	// [1..numVars] (index 0 is unused) of the satisfying assignment.
	VectorSolve(clauses cnf.Clauses, numVars int) (bool, []bool, error)
}

// AdaptVector wraps a VectorProvider so it can be registered and opened
// through the common Provider/Session interface. Each new clause appended
// after the initial Open re-solves the accumulated clause list from
// scratch, since VectorProvider has no incremental solving primitive.
func AdaptVector(vp VectorProvider) Provider {
	return vectorAdapter{vp: vp}
}

type vectorAdapter struct{ vp VectorProvider }

func (a vectorAdapter) Open(clauses cnf.Clauses, numVars int) (Session, error) {
	cs := make(cnf.Clauses, len(clauses))
	copy(cs, clauses)
	return &vectorSession{vp: a.vp, clauses: cs, numVars: numVars}, nil
}

type vectorSession struct {
	vp      VectorProvider
	clauses cnf.Clauses
	numVars int
	model   []bool
}

func (s *vectorSession) AddClause(clause cnf.Clause) error {
	s.clauses = append(s.clauses, clause)
	for _, lit := range clause {
		v := int(lit)
		if v < 0 {
			v = -v
		}
		if v > s.numVars {
			s.numVars = v
		}
	}
	return nil
}

func (s *vectorSession) Solve() (bool, error) {
	sat, model, err := s.vp.VectorSolve(s.clauses, s.numVars)
	if err != nil {
		return false, err
	}
	s.model = model
	return sat, nil
}

func (s *vectorSession) Model() ([]int, error) {
	out := make([]int, 0, len(s.model)-1)
	for v := 1; v < len(s.model); v++ {
		if s.model[v] {
			out = append(out, v)
		} else {
			out = append(out, -v)
		}
	}
	return out, nil
}

func (s *vectorSession) Close() error { return nil }
