package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/geofduf/extrapolate/extrapolate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds the state shared by the commands of a single invocation.
type app struct {
	configPath string
	logLevel   string
	config     Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "extrapolate",
		Short: "Guess the next terms of integer sequences",
		Long: `extrapolate builds tables of differences, quotients or sign flips
of a sequence until a constant row is found, then walks the table back up
to predict the next term.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemo(cmd.OutOrStdout())
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path of a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Extend 1, 2, 6, 24 twice and run the self check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemo(cmd.OutOrStdout())
		},
	}

	var tableOps string
	tableCmd := &cobra.Command{
		Use:   "table [terms...]",
		Short: "Print the table of a sequence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, schedule, err := a.parseInput(args, tableOps)
			if err != nil {
				return err
			}
			t, err := extrapolate.BuildTable(s, schedule.Funcs())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), extrapolate.Render(s, t))
			return nil
		},
	}
	tableCmd.Flags().StringVar(&tableOps, "ops", "", "comma separated operations, one per level or a single one for every level")

	var nextOps string
	var nextCount int
	nextCmd := &cobra.Command{
		Use:   "next [terms...]",
		Short: "Extend a sequence using a schedule",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, schedule, err := a.parseInput(args, nextOps)
			if err != nil {
				return err
			}
			if nextCount < 1 {
				return errors.New("count must be at least 1")
			}
			if len(schedule) < len(s)+nextCount-1 {
				schedule = expand(schedule, len(s)+nextCount-1)
			}
			x, err := extrapolate.Extend(s, schedule.Funcs(), schedule.Inverses(), nextCount)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), extrapolate.FormatSequence(x))
			return nil
		},
	}
	nextCmd.Flags().StringVar(&nextOps, "ops", "", "comma separated operations, one per level or a single one for every level")
	nextCmd.Flags().IntVarP(&nextCount, "count", "n", 1, "number of terms to predict")

	var solveJSON, solveVerbose bool
	solveCmd := &cobra.Command{
		Use:   "solve [terms...]",
		Short: "List the predictions of every schedule",
		Long: `solve tries every combination of sub, div and flip on the sequence
and prints the distinct predictions. Without terms, the sequences of the
configuration file are solved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSolve(cmd, args, solveJSON, solveVerbose)
		},
	}
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "print JSON reports")
	solveCmd.Flags().BoolVarP(&solveVerbose, "verbose", "v", false, "print the schedules leading to each prediction")

	rootCmd.AddCommand(demoCmd, tableCmd, nextCmd, solveCmd)
	return rootCmd
}

// init loads the configuration and builds the logger. Flags override the
// values of the configuration file.
func (a *app) init(cmd *cobra.Command) error {
	config, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		config.LogLevel = a.logLevel
	}
	logger, err := newLogger(config.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", config.LogLevel, err)
	}
	zap.ReplaceGlobals(logger)
	a.config = config
	a.logger = logger.With(zap.String("command", cmd.Name()))
	return nil
}

// parseInput returns the sequence given as arguments and the schedule given
// by ops, or by the configuration if ops is empty. A single operation is
// repeated at every level.
func (a *app) parseInput(args []string, ops string) ([]int64, extrapolate.Schedule, error) {
	s, err := parseSequence(args)
	if err != nil {
		return nil, nil, err
	}
	if ops == "" {
		ops = a.config.Schedule
	}
	schedule, err := extrapolate.ParseSchedule(ops)
	if err != nil {
		return nil, nil, err
	}
	if len(schedule) == 1 {
		schedule = expand(schedule, len(s)-1)
	}
	return s, schedule, nil
}

func (a *app) runSolve(cmd *cobra.Command, args []string, asJSON, verbose bool) error {
	w := cmd.OutOrStdout()
	store := extrapolate.NewStore(extrapolate.StoreConfig{Logger: a.logger})
	if len(args) > 0 {
		s, err := parseSequence(args)
		if err != nil {
			return err
		}
		store.Add(extrapolate.FormatSequence(s), s)
	} else {
		if len(a.config.Sequences) == 0 {
			return errors.New("no sequence given and none configured")
		}
		for name, s := range a.config.Sequences {
			store.Add(name, s)
		}
	}
	solver := extrapolate.NewSolver(extrapolate.SolverConfig{Logger: a.logger, Workers: a.config.Workers})
	for _, key := range store.Keys() {
		s, _ := store.Get(key)
		c, err := solver.Solve(cmd.Context(), s)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		a.logger.Info("solved", zap.String("key", key), zap.Int("candidates", c.Len()))
		if asJSON {
			r := extrapolate.Report{Sequence: s, Candidates: c}
			fmt.Fprintf(w, "%s\n", r.Serialize(extrapolate.SerializeSequence|extrapolate.SerializeCandidates))
			continue
		}
		if len(args) > 0 {
			fmt.Fprintf(w, "Candidates for %s: %s\n", key, c)
		} else {
			fmt.Fprintf(w, "%s %s: %s\n", key, extrapolate.FormatSequence(s), c)
		}
		if verbose {
			writeSchedules(w, c)
		}
	}
	return nil
}

func writeSchedules(w io.Writer, c *extrapolate.Candidates) {
	for _, v := range c.Values() {
		schedules := c.Schedules(v)
		names := make([]string, len(schedules))
		for i, s := range schedules {
			names[i] = s.String()
		}
		fmt.Fprintf(w, "  %d <- %s\n", v, strings.Join(names, " | "))
	}
}

// parseSequence parses the terms given as arguments, each argument holding
// one term or a comma separated list of terms.
func parseSequence(args []string) ([]int64, error) {
	var s []int64
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid term %q", field)
			}
			s = append(s, v)
		}
	}
	if len(s) < 2 {
		return nil, extrapolate.ErrTooShort
	}
	return s, nil
}

// expand returns a schedule of length n repeating the last operation of
// schedule on the missing levels.
func expand(schedule extrapolate.Schedule, n int) extrapolate.Schedule {
	if len(schedule) >= n || len(schedule) == 0 {
		return schedule
	}
	return append(append(extrapolate.Schedule{}, schedule...), extrapolate.Repeat(schedule[len(schedule)-1], n-len(schedule))...)
}
