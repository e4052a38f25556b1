package main

import (
	"context"
	"fmt"
	"io"

	"github.com/geofduf/extrapolate/extrapolate"
	"go.uber.org/zap"
)

const demoKey = "demo"

var (
	demoSequence = []int64{1, 2, 6, 24}
	demoSchedule = extrapolate.Schedule{extrapolate.Divide, extrapolate.Subtract}
)

// runDemo prints the table of the demo sequence, extends it twice printing
// the table after each extension, then runs the self check.
func (a *app) runDemo(w io.Writer) error {
	store := extrapolate.NewStore(extrapolate.StoreConfig{Logger: a.logger})
	store.Add(demoKey, demoSequence)

	t, err := extrapolate.BuildTable(demoSequence, demoSchedule.Funcs())
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Tree for %s:\n", extrapolate.FormatSequence(demoSequence))
	fmt.Fprint(w, extrapolate.Render(demoSequence, t))

	fmt.Fprintf(w, "\nNext 2 items for %s:\n", extrapolate.FormatSequence(demoSequence))
	for i := 0; i < 2; i++ {
		err := store.Execute(extrapolate.Statement{
			Key:      demoKey,
			Type:     extrapolate.StatementExtend,
			Schedule: demoSchedule,
		})
		if err != nil {
			return err
		}
		s, _ := store.Get(demoKey)
		if t, err = extrapolate.BuildTable(s, demoSchedule.Funcs()); err != nil {
			return err
		}
		fmt.Fprint(w, extrapolate.Render(s, t))
		fmt.Fprintln(w)
	}
	return a.selfCheck(w)
}

// A check compares a prediction with its expected outcome.
type check struct {
	name string
	run  func() (string, error)
	want string
}

func predictCheck(name string, s []int64, schedule extrapolate.Schedule, want int64) check {
	return check{
		name: name,
		run: func() (string, error) {
			v, err := schedule.Predict(s)
			return fmt.Sprint(v), err
		},
		want: fmt.Sprint(want),
	}
}

func (a *app) checks() []check {
	sub := func(n int) extrapolate.Schedule { return extrapolate.Repeat(extrapolate.Subtract, n) }
	div := func(n int) extrapolate.Schedule { return extrapolate.Repeat(extrapolate.Divide, n) }
	solver := extrapolate.NewSolver(extrapolate.SolverConfig{Logger: a.logger, Workers: a.config.Workers})
	return []check{
		predictCheck("difference table, not converging", []int64{6, 9, 2, 5}, sub(3), 38),
		predictCheck("difference table", []int64{1, 2, 4, 7}, sub(3), 11),
		predictCheck("division table", []int64{1, 2, 4, 8}, div(3), 16),
		predictCheck("division table, second level", []int64{1, 2, 8, 64}, div(3), 1024),
		predictCheck("combined table", demoSequence, demoSchedule, 120),
		{
			name: "find solutions",
			run: func() (string, error) {
				c, err := solver.Solve(context.Background(), demoSequence)
				if err != nil {
					return "", err
				}
				return c.String(), nil
			},
			want: "{67, 96, 98, 120}",
		},
	}
}

func (a *app) selfCheck(w io.Writer) error {
	return a.runChecks(w, a.checks())
}

// runChecks runs checks, printing one line per check, and fails if any check
// does not produce its expected outcome.
func (a *app) runChecks(w io.Writer, checks []check) error {
	failed := 0
	for _, c := range checks {
		got, err := c.run()
		switch {
		case err != nil:
			failed++
			fmt.Fprintf(w, "FAIL %s: %s\n", c.name, err)
		case got != c.want:
			failed++
			fmt.Fprintf(w, "FAIL %s: got %s, want %s\n", c.name, got, c.want)
		default:
			fmt.Fprintf(w, "ok   %s\n", c.name)
		}
	}
	if failed > 0 {
		a.logger.Error("self check failed", zap.Int("failed", failed), zap.Int("checks", len(checks)))
		return fmt.Errorf("%d of %d checks failed", failed, len(checks))
	}
	return nil
}
