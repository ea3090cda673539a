package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/arena/printer"
	"github.com/joshuapare/arenakit/cmd/arenactl/logger"
)

var (
	demoMap   bool
	demoStats bool
)

func init() {
	cmd := newDemoCmd()
	cmd.Flags().BoolVar(&demoMap, "map", false, "Print the block map afterwards")
	cmd.Flags().BoolVar(&demoStats, "stats", false, "Print statistics afterwards")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Allocate 50 and 100 bytes, release the first, allocate 40",
		Long: `The demo command runs the classic first-fit sequence: allocate 50 bytes,
allocate 100 bytes, release the first block, then allocate 40 bytes. The
40-byte request lands in the released 50-byte block.

Example:
  arenactl demo
  arenactl demo --map --stats
  arenactl demo --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

// demoStep is one line of demo output.
type demoStep struct {
	Op     string `json:"op"`
	Bytes  int    `json:"bytes"`
	Offset int    `json:"offset"`
	Error  string `json:"error,omitempty"`
}

func runDemo() error {
	a, err := newAllocator()
	if err != nil {
		return err
	}

	var steps []demoStep
	alloc := func(n int) arena.Handle {
		h, _, err := a.Alloc(n)
		step := demoStep{Op: "alloc", Bytes: n, Offset: -1}
		if err != nil {
			step.Error = err.Error()
			logger.Warn("demo allocation failed", "bytes", n, "error", err)
		} else {
			step.Offset = h.Offset()
		}
		steps = append(steps, step)
		return h
	}

	data1 := alloc(50)
	alloc(100)
	if !data1.IsZero() {
		step := demoStep{Op: "free", Bytes: 0, Offset: data1.Offset()}
		if err := a.Free(data1); err != nil {
			step.Error = err.Error()
		}
		steps = append(steps, step)
	}
	alloc(40)

	if jsonOut {
		return printJSON(struct {
			Steps []demoStep    `json:"steps"`
			Stats arena.Stats   `json:"stats"`
			Map   []arena.Block `json:"map"`
		}{steps, a.Stats(), a.BlockList()})
	}

	var failed error
	for _, s := range steps {
		switch {
		case s.Error != "":
			printInfo("Failed to %s %d bytes: %s\n", s.Op, s.Bytes, s.Error)
			failed = errors.New(s.Error)
		case s.Op == "free":
			printInfo("Released block at offset %d\n", s.Offset)
		default:
			printInfo("Allocated %d bytes at offset %d\n", s.Bytes, s.Offset)
		}
	}

	if err := printReports(a, demoMap, demoStats); err != nil {
		return err
	}
	return failed
}

// printReports prints the block map and/or statistics unless quiet.
func printReports(src printer.Inspector, showMap, showStats bool) error {
	if quiet {
		return nil
	}
	p := printer.New(src, os.Stdout, printerOptions())
	if showMap {
		fmt.Fprintln(os.Stdout)
		if err := p.PrintMap(); err != nil {
			return err
		}
	}
	if showStats {
		fmt.Fprintln(os.Stdout)
		if err := p.PrintStats(); err != nil {
			return err
		}
	}
	return nil
}
