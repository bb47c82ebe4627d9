// Command belt-balancer compiles a splitter network description into a
// grid layout of belts and splitters that realizes it. Ported from
// belt_balancer.py.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gitrdm/beltcompiler/pkg/grid"
	"github.com/gitrdm/beltcompiler/pkg/network"
	"github.com/gitrdm/beltcompiler/pkg/satsolver"
)

type options struct {
	edgeSplitters  bool
	aligned        bool
	undergroundLen int
	all            bool
	label          string
	solverName     string
	outputPath     string
}

func main() {
	opts := &options{}

	root := &cobra.Command{
		Use:   "belt-balancer NETWORK WIDTH HEIGHT",
		Short: "Compile a splitter network into a belt balancer layout",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := parsePositiveInt(args[1], "width")
			if err != nil {
				return err
			}
			height, err := parsePositiveInt(args[2], "height")
			if err != nil {
				return err
			}
			return run(args[0], width, height, opts)
		},
	}

	flags := root.Flags()
	flags.BoolVar(&opts.edgeSplitters, "edge-splitters", false, "prefer edge-column placement for purely-external splitters")
	flags.BoolVar(&opts.aligned, "aligned", false, "align input and output lane spans")
	flags.IntVar(&opts.undergroundLen, "underground-length", 4, "maximum length of an underground section (excludes ends)")
	flags.BoolVar(&opts.all, "all", false, "produce every layout, not just the first")
	flags.StringVar(&opts.label, "label", "", "output blueprint label")
	flags.StringVar(&opts.solverName, "solver", satsolver.DefaultBackend, "backend SAT solver to use")
	flags.StringVar(&opts.outputPath, "output", "", "output file path (default: standard output)")

	if err := root.Execute(); err != nil {
		logrus.WithError(err).Fatal("belt-balancer failed")
	}
}

func parsePositiveInt(s, name string) (int, error) {
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, fmt.Errorf("belt-balancer: %s must be an integer: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("belt-balancer: %s must be positive", name)
	}
	return v, nil
}

func run(networkPath string, width, height int, opts *options) error {
	if opts.undergroundLen < 0 {
		return fmt.Errorf("belt-balancer: --underground-length cannot be negative")
	}

	f, err := os.Open(networkPath)
	if err != nil {
		return err
	}
	net, err := network.Open(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("belt-balancer: parsing %s: %w", networkPath, err)
	}

	logEntry := logrus.WithFields(logrus.Fields{
		"network": networkPath,
		"nodes":   len(net),
		"width":   width,
		"height":  height,
		"solver":  opts.solverName,
	})
	if opts.label != "" {
		logEntry = logEntry.WithField("label", opts.label)
	}
	logEntry.Info("compiling balancer constraints")

	g, err := network.CreateBalancer(net, width, height)
	if err != nil {
		return err
	}

	// Splitter bodies span two adjacent cells; the grid must not treat
	// the far edge of the x axis as wrapping or blocking that pairing,
	// while the y axis still blocks (matches belt_balancer.py's
	// prevent_intersection((EDGE_MODE_IGNORE, EDGE_MODE_BLOCK))).
	edgeMode := grid.EdgeModes{X: grid.EdgeIgnore, Y: grid.EdgeBlock}
	if err := grid.PreventIntersection(g, edgeMode); err != nil {
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

	if opts.edgeSplitters {
		if err := network.EnforceEdgeSplitters(g, net); err != nil {
			return err
		}
	}

	if err := network.SetupBalancerEnds(g, net, opts.aligned); err != nil {
		return err
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
		outFile, err := os.Create(opts.outputPath)
		if err != nil {
			return err
		}
		defer outFile.Close()
		out = outFile
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
	logrus.WithField("layouts", count).Info("done")
	return nil
}
