package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/arena/printer"
	"github.com/joshuapare/arenakit/cmd/arenactl/logger"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	capacity int
	source   string
	logDir   string
)

var rootCmd = &cobra.Command{
	Use:   "arenactl",
	Short: "Drive a fixed-capacity first-fit arena allocator",
	Long: `arenactl drives a fixed-capacity, first-fit, split-only arena allocator.
It replays allocation scripts against a fresh arena and prints the resulting
block map and statistics, which makes fragmentation easy to observe.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		return logger.Init(logger.Options{
			Enabled: verbose || logDir != "",
			LogDir:  logDir,
			Level:   level,
		})
	},
	SilenceUsage: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		IntVarP(&capacity, "capacity", "c", arena.DefaultCapacity, "Arena size in bytes, headers included")
	rootCmd.PersistentFlags().
		StringVar(&source, "source", "mmap", "Where the arena region comes from (mmap, heap)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write JSON logs to this directory")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newAllocator builds an allocator from the global flags.
func newAllocator() (*arena.Allocator, error) {
	var src arena.Source
	switch source {
	case "mmap", "":
		src = arena.MmapSource
	case "heap":
		src = arena.HeapSource
	default:
		return nil, fmt.Errorf("unknown source %q (want mmap or heap)", source)
	}
	return arena.New(
		arena.WithCapacity(capacity),
		arena.WithSource(src),
		arena.WithLogger(logger.L),
	)
}

// printerOptions returns printer options matching the global flags.
func printerOptions() printer.Options {
	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	return opts
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
