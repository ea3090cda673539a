package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/cmd/arenactl/logger"
)

var (
	runStrict bool
	runMap    bool
	runStats  bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().BoolVar(&runStrict, "strict", false, "Stop at the first failed operation")
	cmd.Flags().BoolVar(&runMap, "map", false, "Print the block map after the script")
	cmd.Flags().BoolVar(&runStats, "stats", false, "Print statistics after the script")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <script|->",
		Short: "Replay an allocation script against a fresh arena",
		Long: `The run command executes a script, one operation per line, against a
fresh arena. Blank lines and lines starting with # are ignored.

  alloc <name> <bytes>   allocate and bind the handle to name
  free <name>            release the handle bound to name
  write <name> <text>    copy text into the payload
  read <name>            print the payload
  check                  verify the block chain
  map                    print the block map
  stats                  print statistics

Failed operations (out of memory, double release) are reported and the
script continues unless --strict is given.

Example:
  arenactl run frag.txt --map
  echo "alloc a 50" | arenactl run - --stats
  arenactl run frag.txt --capacity 218 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(args)
		},
	}
}

func runScript(args []string) error {
	path := args[0]

	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	a, err := newAllocator()
	if err != nil {
		return err
	}
	printVerbose("Arena: %d bytes from %s source\n", a.Capacity(), source)
	logger.Info("running script", "path", path, "capacity", a.Capacity(), "source", source)

	out := io.Writer(os.Stdout)
	if quiet {
		out = io.Discard
	}
	s := newSession(a, out, printerOptions())
	s.strict = runStrict
	runErr := s.run(in)

	if jsonOut {
		if err := printJSON(struct {
			Results []result      `json:"results"`
			Stats   arena.Stats   `json:"stats"`
			Map     []arena.Block `json:"map"`
		}{s.results, a.Stats(), a.BlockList()}); err != nil {
			return err
		}
		return runErr
	}
	if runErr != nil {
		return runErr
	}

	if err := printReports(a, runMap, runStats); err != nil {
		return err
	}
	if n := s.failures(); n > 0 {
		printVerbose("%d operation(s) failed\n", n)
	}
	return nil
}
