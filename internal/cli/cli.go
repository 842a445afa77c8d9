// ============================================================================
// AoC 2018 CLI - Command Line Interface
// ============================================================================
//
// Package: internal/cli
// File: cli.go
// Purpose: Cobra command tree for the day 4 and day 7 solvers
//
// Command Structure:
//   aoc                                        # Root command
//   ├── day4 <input>                           # Guard sleep analysis
//   ├── day7 <input> <workers> <baseDuration>  # Step scheduling simulation
//   ├── show <report.json>                     # Print a saved report
//   ├── --config, -c                           # YAML config file
//   ├── --out, -o                              # Write a JSON report
//   └── --metrics                              # Dump Prometheus metrics to stderr
//
// Configuration:
//   YAML config file (default: configs/default.yaml). A missing default file
//   is not an error; an explicitly given one must exist. Flags override it.
//   Positional arguments never come from the config.
//
// Output:
//   Answers go to stdout. Logs, metrics and errors go to stderr.
//
// Error Handling:
//   - Missing or unknown command, wrong argument count, unusable argument
//     or bad flag: *UsageError, printed to stdout by main, exit status 1
//   - Unreadable or malformed input: returned as is, exit status 1
//
// ============================================================================

package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ChuLiYu/aoc2018/internal/controller"
	"github.com/ChuLiYu/aoc2018/internal/guards"
	"github.com/ChuLiYu/aoc2018/internal/metrics"
	"github.com/ChuLiYu/aoc2018/internal/report"
	"github.com/ChuLiYu/aoc2018/internal/steps"
	"github.com/ChuLiYu/aoc2018/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "configs/default.yaml"

// Config represents the complete CLI configuration structure
type Config struct {
	Metrics struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`

	Report struct {
		Path string `yaml:"path"`
	} `yaml:"report"`

	Log struct {
		Level string `yaml:"level"` // debug, info, warn, error
	} `yaml:"log"`
}

// UsageError reports a command invoked with the wrong arguments
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func usagef(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// exactArgs is cobra.ExactArgs with the solver's own usage message
func exactArgs(n int, msg string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &UsageError{Msg: msg}
		}
		return nil
	}
}

type rootOptions struct {
	configFile string
	outPath    string
	metrics    bool
}

// session carries what every subcommand needs once config is resolved
type session struct {
	cfg       *Config
	logger    *slog.Logger
	collector *metrics.Collector
	outPath   string
}

func BuildCLI() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "aoc",
		Short: "Advent of Code 2018 solvers for days 4 and 7",
		Long: `aoc solves two Advent of Code 2018 puzzles:
- day4: guard sleep tally (two strategies)
- day7: step dependency order and multi-worker scheduling simulation`,
		Version:       "1.0.0",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("Error: unknown command %q - expected day4, day7 or show", args[0])
			}
			return usagef("Error: a command is expected - day4, day7 or show")
		},
	}

	// Inherited by every subcommand; a bad flag is a usage problem like a bad argument
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usagef("Error: %v", err)
	})

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().StringVarP(&opts.outPath, "out", "o", "", "write a JSON report to this path")
	rootCmd.PersistentFlags().BoolVar(&opts.metrics, "metrics", false, "print Prometheus metrics to stderr after the run")

	rootCmd.AddCommand(buildDay4Command(opts))
	rootCmd.AddCommand(buildDay7Command(opts))
	rootCmd.AddCommand(buildShowCommand())

	return rootCmd
}

func buildDay4Command(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day4 <input>",
		Short: "Find the sleepiest guard and minute",
		Long:  "Parse a guard shift log, tally each guard's sleep per minute and apply both strategies.",
		Args:  exactArgs(1, "Error: 1 argument expected - path to input file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return runDay4(cmd.OutOrStdout(), cmd.ErrOrStderr(), s, args[0])
		},
	}
	return cmd
}

func buildDay7Command(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day7 <input> <workers> <baseDuration>",
		Short: "Order and time the steps of a dependency graph",
		Long: `Part 1 completes the steps with one worker and no base duration and prints the order.
Part 2 completes them with <workers> workers, each step costing <baseDuration> plus its
letter position (A=1 .. Z=26), and prints the total time.

Flags must come before <input>; everything after it is positional, so a
negative <workers> or <baseDuration> is reported as such.`,
		Args: exactArgs(3, "Error: 3 arguments expected - path to input file, total number of workers, and base step duration (in seconds)"),
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, err := strconv.Atoi(args[1])
			if err != nil || workers < 1 {
				return usagef("Error: total number of workers must be a positive integer, got %q", args[1])
			}
			baseDelay, err := strconv.Atoi(args[2])
			if err != nil || baseDelay < 0 {
				return usagef("Error: base step duration must be a non-negative integer, got %q", args[2])
			}

			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return runDay7(cmd.OutOrStdout(), cmd.ErrOrStderr(), s, args[0], workers, baseDelay)
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func buildShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <report.json>",
		Short: "Print a saved report",
		Long:  "Load a report written with --out and print it in the same format as the solver.",
		Args:  exactArgs(1, "Error: 1 argument expected - path to report file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showReport(cmd.OutOrStdout(), args[0])
		},
	}
	return cmd
}

// newSession resolves config, logger and metrics for one run
func newSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		explicit := cmd.Flags().Changed("config")
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = &Config{}
	}

	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		logger:  slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})),
		outPath: cfg.Report.Path,
	}
	if opts.outPath != "" {
		s.outPath = opts.outPath
	}
	if opts.metrics || cfg.Metrics.Enabled {
		s.collector = metrics.NewCollector(prometheus.NewRegistry())
	}
	return s, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

func runDay7(stdout, stderr io.Writer, s *session, inputPath string, workers, baseDelay int) error {
	g, err := steps.ParseFile(inputPath)
	if err != nil {
		return err
	}

	ctrl := controller.NewController(s.collector, s.logger)
	r, err := ctrl.SolveDay7(g, workers, baseDelay)
	if err != nil {
		return err
	}

	writeDay7(stdout, r)
	return s.finish(stderr, types.Report{Kind: types.KindDay7, Input: inputPath, Day7: &r})
}

func runDay4(stdout, stderr io.Writer, s *session, inputPath string) error {
	events, err := guards.ParseFile(inputPath)
	if err != nil {
		return err
	}

	ctrl := controller.NewController(s.collector, s.logger)
	r, err := ctrl.SolveDay4(events)
	if err != nil {
		return err
	}

	writeDay4(stdout, r)
	return s.finish(stderr, types.Report{Kind: types.KindDay4, Input: inputPath, Day4: &r})
}

// finish writes the optional report file and metrics dump
func (s *session) finish(stderr io.Writer, r types.Report) error {
	if s.outPath != "" {
		r.CreatedAt = time.Now().UnixMilli()
		if err := report.NewManager(s.outPath).Write(r); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		log.Printf("Report written to %s\n", s.outPath)
	}

	if s.collector != nil {
		if err := s.collector.WriteText(stderr); err != nil {
			return err
		}
	}
	return nil
}

func showReport(stdout io.Writer, path string) error {
	r, err := report.NewManager(path).Load()
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}

	fmt.Fprintf(stdout, "Report for %s (%s, %s)\n", r.Input, r.Kind, time.UnixMilli(r.CreatedAt).UTC().Format(time.RFC3339))
	switch r.Kind {
	case types.KindDay4:
		writeDay4(stdout, *r.Day4)
	case types.KindDay7:
		writeDay7(stdout, *r.Day7)
	}
	return nil
}

func writeDay7(w io.Writer, r types.Day7Report) {
	fmt.Fprintf(w, "(Part 1) The order the steps will be completed is with 1 worker is: %s\n", r.CompletionOrder)
	fmt.Fprintf(w, "(Part 2) The time (in seconds) it will take to complete all steps with %d workers and %ds base duration is: %d\n",
		r.Workers, r.BaseDelay, r.ExecutionTime)
}

func writeDay4(w io.Writer, r types.Day4Report) {
	fmt.Fprintf(w, "(Part 1.1) The ID of the guard with the most minutes asleep is: %d\n", r.SleepiestGuard.GuardID)
	fmt.Fprintf(w, "(Part 1.2) The minute that guard is most often asleep is: %d\n", r.SleepiestGuard.Minute)
	fmt.Fprintf(w, "> (Part 1) Multiplied: %d\n", r.SleepiestGuard.Product)
	fmt.Fprintf(w, "(Part 2.1) The ID of the guard most frequently asleep at the same minute is: %d\n", r.SleepiestMinute.GuardID)
	fmt.Fprintf(w, "(Part 2.2) The minute that guard is most frequently asleep at is: %d\n", r.SleepiestMinute.Minute)
	fmt.Fprintf(w, "> (Part 2) Multiplied: %d\n", r.SleepiestMinute.Product)
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}
