package extrapolate

import (
	"context"
	"runtime"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SolverConfig contains configuration for a Solver.
type SolverConfig struct {
	Logger *zap.Logger
	// Workers bounds the number of schedules evaluated concurrently.
	// Defaults to GOMAXPROCS.
	Workers int
}

// A Solver tries every schedule of the palette on a sequence. A Solver
// holds no state between calls and can be used from multiple goroutines.
type Solver struct {
	logger  *zap.Logger
	workers int
}

// An Attempt is the outcome of predicting a sequence with one schedule.
type Attempt struct {
	Schedule Schedule
	Value    int64
	Err      error
}

// NewSolver creates a Solver.
func NewSolver(config SolverConfig) *Solver {
	s := &Solver{logger: config.Logger, workers: config.Workers}
	if s.logger == nil {
		s.logger = zap.L()
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	return s
}

// Solve returns the distinct predictions obtained by running every schedule
// of the palette on x with a default Solver.
func Solve(x []int64) (*Candidates, error) {
	return NewSolver(SolverConfig{}).Solve(context.Background(), x)
}

// Solve returns the distinct predictions obtained by running every schedule
// of the palette on x. Schedules failing on x, e.g. because of a division by
// zero, are discarded.
func (s *Solver) Solve(ctx context.Context, x []int64) (*Candidates, error) {
	logger := s.logger.With(zap.String("operation", "Solve"))
	attempts, err := s.Attempts(ctx, x)
	if err != nil {
		return nil, err
	}
	c := newCandidates()
	discarded := 0
	for _, a := range attempts {
		if a.Err != nil {
			logger.Debug("discard schedule", zap.Stringer("schedule", a.Schedule), zap.Error(a.Err))
			discarded++
			continue
		}
		c.add(a.Value, a.Schedule)
	}
	logger.Debug("return from Solve()",
		zap.Int64s("sequence", x),
		zap.Int("schedules", len(attempts)),
		zap.Int("discarded", discarded),
		zap.Int64s("candidates", c.Values()))
	return c, nil
}

// Attempts runs every schedule of the palette of length len(x)-1 on x and
// returns one Attempt per schedule, in enumeration order. The error is
// non-nil only if x is too short or ctx is done.
func (s *Solver) Attempts(ctx context.Context, x []int64) ([]Attempt, error) {
	if len(x) < 2 {
		return nil, ErrTooShort
	}
	schedules := enumerate(len(x) - 1)
	attempts := make([]Attempt, len(schedules))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, schedule := range schedules {
		if gctx.Err() != nil {
			break
		}
		i, schedule := i, schedule
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := schedule.Predict(x)
			attempts[i] = Attempt{Schedule: schedule, Value: v, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return attempts, nil
}

// enumerate returns every schedule of length n built from the palette.
func enumerate(n int) []Schedule {
	var schedules []Schedule
	schedule := Repeat(Palette[0], n)
	for {
		schedules = append(schedules, schedule.clone())
		if !schedule.inc() {
			return schedules
		}
	}
}

// Candidates is a set of predicted values. It also records the schedules
// which led to each value.
type Candidates struct {
	m *treemap.Map
}

func newCandidates() *Candidates {
	return &Candidates{m: treemap.NewWith(utils.Int64Comparator)}
}

func (c *Candidates) add(v int64, schedule Schedule) {
	var schedules []Schedule
	if x, ok := c.m.Get(v); ok {
		schedules = x.([]Schedule)
	}
	c.m.Put(v, append(schedules, schedule))
}

// Len returns the number of distinct values.
func (c *Candidates) Len() int {
	return c.m.Size()
}

// Contains reports whether v is one of the candidates.
func (c *Candidates) Contains(v int64) bool {
	_, ok := c.m.Get(v)
	return ok
}

// Values returns the candidates in ascending order.
func (c *Candidates) Values() []int64 {
	values := make([]int64, 0, c.m.Size())
	for _, k := range c.m.Keys() {
		values = append(values, k.(int64))
	}
	return values
}

// Schedules returns the schedules which predicted v, in enumeration order.
func (c *Candidates) Schedules(v int64) []Schedule {
	x, ok := c.m.Get(v)
	if !ok {
		return nil
	}
	return x.([]Schedule)
}

func (c *Candidates) String() string {
	values := c.Values()
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = strconv.FormatInt(v, 10)
	}
	return "{" + strings.Join(s, ", ") + "}"
}
