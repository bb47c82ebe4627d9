package grid

import (
	"bufio"
	"fmt"
	"io"
)

// WriteDIMACS serialises the grid's accumulated clauses as DIMACS CNF,
// with one "c " comment line per entry in comments before the problem
// line. Grounded on util.py's Grid.write, which builds a
// pysat.formula.CNF(from_clauses=self.clauses) and calls cnf.to_file with
// the same comment list shape.
func (g *Grid) WriteDIMACS(w io.Writer, comments []string) error {
	bw := bufio.NewWriter(w)
	for _, c := range comments {
		if _, err := fmt.Fprintf(bw, "c %s\n", c); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", g.alloc.Count(), len(g.Clauses)); err != nil {
		return err
	}
	for _, clause := range g.Clauses {
		for _, lit := range clause {
			if _, err := fmt.Fprintf(bw, "%d ", lit); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(bw, "0"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
