package satsolver

import (
	"github.com/gitrdm/beltcompiler/pkg/cnf"
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
)

func init() {
	Register(DefaultBackend, giniProvider{})
}

// giniProvider opens sessions backed by github.com/irifrance/gini, the
// default backend (name "g3", matching util.py's PySAT "Glucose3"
// default identifier carried forward as this repo's default name).
type giniProvider struct{}

func (giniProvider) Open(clauses cnf.Clauses, numVars int) (Session, error) {
	g := gini.New()
	s := &giniSession{g: g, maxVar: numVars}
	for _, c := range clauses {
		if err := s.AddClause(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

type giniSession struct {
	g      *gini.Gini
	maxVar int
	closed bool
}

func dimacsToLit(v int) z.Lit {
	if v < 0 {
		return z.Var(-v).Neg()
	}
	return z.Var(v).Pos()
}

func (s *giniSession) AddClause(clause cnf.Clause) error {
	for _, lit := range clause {
		v := int(lit)
		if v < 0 {
			v = -v
		}
		if v > s.maxVar {
			s.maxVar = v
		}
		s.g.Add(dimacsToLit(int(lit)))
	}
	s.g.Add(0)
	return nil
}

func (s *giniSession) Solve() (bool, error) {
	return s.g.Solve() == 1, nil
}

func (s *giniSession) Model() ([]int, error) {
	out := make([]int, 0, s.maxVar)
	for v := 1; v <= s.maxVar; v++ {
		lit := z.Var(v).Pos()
		if s.g.Value(lit) {
			out = append(out, v)
		} else {
			out = append(out, -v)
		}
	}
	return out, nil
}

func (s *giniSession) Close() error {
	s.closed = true
	return nil
}
