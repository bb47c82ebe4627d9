// Package satsolver defines the thin SAT backend abstraction the grid
// compiler solves against, plus two concrete providers: a real solver
// (gini) and a dense-boolean-vector shape adapted to the same interface.
// Grounded on util.py's solve/itersolve, which open a pysat.Solver
// bootstrapped with the accumulated clauses, call .solve()/.get_model(),
// and add blocking clauses between iterations — and on the commented-out
// pycryptosat branch, which returns a flat vector instead of a signed
// literal list.
package satsolver

import (
	"errors"

	"github.com/gitrdm/beltcompiler/pkg/cnf"
)

// ErrUnknownBackend is returned by Open when no Provider is registered
// under the requested name.
var ErrUnknownBackend = errors.New("satsolver: unknown backend name")

// DefaultBackend is the identifier used when a caller doesn't specify one,
// matching util.py's "g3" default (Glucose3 via PySAT).
const DefaultBackend = "g3"

// Session is a single solve-and-iterate conversation with a backend,
// bootstrapped with a fixed initial clause set and then incrementally
// extended with blocking clauses between models.
type Session interface {
	// Solve runs the backend and reports satisfiability.
	Solve() (bool, error)
	// Model returns the most recent model as signed 1-indexed DIMACS
	// literals (valid only immediately after Solve returns true).
	Model() ([]int, error)
	// AddClause adds one more clause to the session's working set.
	AddClause(clause cnf.Clause) error
	// Close releases backend resources. Safe to call more than once.
	Close() error
}

// Provider opens a new Session bootstrapped with clauses, which together
// touch variables 1..numVars.
type Provider interface {
	Open(clauses cnf.Clauses, numVars int) (Session, error)
}

var registry = map[string]Provider{}

// Register installs a Provider under name, overwriting any previous
// registration. Intended to be called from an init() in the package that
// implements the provider (gini_backend.go, bruteforce_backend.go).
func Register(name string, p Provider) {
	registry[name] = p
}

// Open resolves name to a registered Provider and opens a Session.
func Open(name string, clauses cnf.Clauses, numVars int) (Session, error) {
	p, err := Get(name)
	if err != nil {
		return nil, err
	}
	return p.Open(clauses, numVars)
}

// Get resolves name to a registered Provider, for callers (such as
// *grid.Grid.Itersolve) that want the Provider value itself rather than
// an already-opened Session.
func Get(name string) (Provider, error) {
	p, ok := registry[name]
	if !ok {
		return nil, ErrUnknownBackend
	}
	return p, nil
}

// Names returns every currently registered backend name, for CLI help
// text and validation.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}
