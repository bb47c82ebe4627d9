// Command make-block generates tileable (or edge-bounded) blocks of
// random belt layouts, optionally constrained to a single Hamiltonian
// loop. Ported from make_block.py.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gitrdm/beltcompiler/pkg/cnf"
	"github.com/gitrdm/beltcompiler/pkg/grid"
	"github.com/gitrdm/beltcompiler/pkg/satsolver"
	"github.com/gitrdm/beltcompiler/pkg/tile"
)

// defaultSmallLoopCutoff bounds how large a belt cycle PreventSmallLoops
// forbids. Not exposed as a flag (see DESIGN.md's Open Question 2 note);
// 4 matches the smallest loop shapes a 2x2 splitter-free block can form.
const defaultSmallLoopCutoff = 4

var errIncompatibleFlags = errors.New("make-block: incompatible flags")

type options struct {
	tileEdges        bool
	allowEmpty       bool
	undergroundLen   int
	all              bool
	label            string
	solverName       string
	singleLoop       bool
	outputPath       string
}

func main() {
	opts := &options{}
	var width, height int

	root := &cobra.Command{
		Use:   "make-block WIDTH HEIGHT",
		Short: "Generate random tileable belt blocks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := parsePositiveInt(args[0], "width")
			if err != nil {
				return err
			}
			h, err := parsePositiveInt(args[1], "height")
			if err != nil {
				return err
			}
			width, height = w, h
			return run(width, height, opts)
		},
	}

	flags := root.Flags()
	flags.BoolVar(&opts.tileEdges, "tile", false, "make output blocks tileable across their own edges")
	flags.BoolVar(&opts.allowEmpty, "allow-empty", false, "allow cells with no belt at all")
	flags.IntVar(&opts.undergroundLen, "underground-length", 4, "maximum length of an underground section (excludes ends)")
	flags.BoolVar(&opts.all, "all", false, "produce every block, not just the first")
	flags.StringVar(&opts.label, "label", "", "output blueprint label")
	flags.StringVar(&opts.solverName, "solver", satsolver.DefaultBackend, "backend SAT solver to use")
	flags.BoolVar(&opts.singleLoop, "single-loop", false, "constrain the block to a single belt loop")
	flags.StringVar(&opts.outputPath, "output", "", "output file path (default: standard output)")

	if err := root.Execute(); err != nil {
		logrus.WithError(err).Fatal("make-block failed")
	}
}

func parsePositiveInt(s, name string) (int, error) {
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, fmt.Errorf("make-block: %s must be an integer: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("make-block: %s must be positive", name)
	}
	return v, nil
}

func run(width, height int, opts *options) error {
	if opts.allowEmpty && opts.singleLoop {
		return fmt.Errorf("%w: --allow-empty with --single-loop", errIncompatibleFlags)
	}
	if opts.singleLoop && !grid.IsPowerOfTwo(width*height) {
		return fmt.Errorf("%w: --single-loop requires width*height to be a power of two", errIncompatibleFlags)
	}
	if opts.undergroundLen < 0 {
		return fmt.Errorf("%w: --underground-length cannot be negative", errIncompatibleFlags)
	}

	logEntry := logrus.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
		"solver": opts.solverName,
	})
	if opts.label != "" {
		logEntry = logEntry.WithField("label", opts.label)
	}
	logEntry.Info("compiling block constraints")

	colourCount := 1
	if opts.singleLoop {
		colourCount = width * height
	}
	schema, err := tile.BeltTemplate(cnf.BinLength(colourCount), 0)
	if err != nil {
		return err
	}
	g, err := grid.New(width, height, colourCount, schema)
	if err != nil {
		return err
	}

	edgeMode := grid.Uniform(grid.EdgeBlock)
	if opts.tileEdges {
		edgeMode = grid.Uniform(grid.EdgeTile)
	}

	if err := grid.PreventIntersection(g, edgeMode); err != nil {
		return err
	}
	if err := grid.PreventBadUndergrounding(g); err != nil {
		return err
	}
	if err := grid.PreventSmallLoops(g, defaultSmallLoopCutoff); err != nil {
		return err
	}
	if opts.undergroundLen > 0 {
		if err := grid.PreventEmptyAlongUnderground(g, opts.undergroundLen); err != nil {
			return err
		}
		if err := grid.SetMaximumUndergroundLength(g, opts.undergroundLen, edgeMode); err != nil {
			return err
		}
	}
	if opts.singleLoop {
		if err := grid.EnsureLoopLength(g, edgeMode); err != nil {
			return err
		}
	}

	for _, t := range g.IterateTiles() {
		if !opts.allowEmpty {
			g.AddClause(cnf.Clause(t.Get(tile.FieldAllDirection).Data))
		}
		if opts.undergroundLen == 0 {
			for _, u := range t.Get(tile.FieldUnderground).Data {
				g.AddClause(cnf.Clause{-u})
			}
		}
		zeroSplitters, err := cnf.SetNumber(0, t.Get(tile.FieldIsSplitter).Data)
		if err != nil {
			return err
		}
		g.AddClauses(zeroSplitters)
	}

	provider, err := satsolver.Get(opts.solverName)
	if err != nil {
		return err
	}
	it, err := g.Itersolve(nil, provider)
	if err != nil {
		return err
	}
	defer it.Close()

	out := os.Stdout
	if opts.outputPath != "" {
		f, err := os.Create(opts.outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	count := 0
	for {
		sol, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := enc.Encode(sol.Tiles); err != nil {
			return err
		}
		count++
		if !opts.all {
			break
		}
	}
	logrus.WithField("models", count).Info("done")
	return nil
}
