package extrapolate

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by the package. Errors are wrapped with additional context,
// use errors.Is to test for them.
var (
	ErrDivisionByZero   = errors.New("division by zero")
	ErrTooShort         = errors.New("sequence needs at least two terms")
	ErrScheduleTooShort = errors.New("schedule does not cover every table level")
	ErrNotInvertible    = errors.New("operation cannot be inverted")
)

// A Func is a binary operation applied to adjacent terms of a sequence,
// prior being the earlier of the two. Inverse functions receive the last
// term of the row above and the accumulated value instead.
type Func func(prior, current int64) (int64, error)

// An Op is one of the operations of the built-in palette. Each Op is paired
// with its inverse, see Op.Inverse.
type Op uint8

// Built-in operations.
const (
	Subtract Op = iota // b - a
	Divide             // b div a, rounded toward negative infinity
	Flip               // -a, or -b if a is zero
	opUnknown
)

// Palette lists the built-in operations in enumeration order.
var Palette = []Op{Subtract, Divide, Flip}

var opNames = [...]string{
	Subtract: "sub",
	Divide:   "div",
	Flip:     "flip",
}

// Func returns the forward operation.
func (o Op) Func() Func {
	switch o {
	case Subtract:
		return sub
	case Divide:
		return div
	case Flip:
		return flip
	}
	return unknown(o)
}

// Inverse returns the operation walking a table back up one level. Flip
// discards its second operand when the first one is not zero, its inverse
// then fails with ErrNotInvertible.
func (o Op) Inverse() Func {
	switch o {
	case Subtract:
		return add
	case Divide:
		return mul
	case Flip:
		return unflip
	}
	return unknown(o)
}

func (o Op) String() string {
	if o >= opUnknown {
		return fmt.Sprintf("op(%d)", uint8(o))
	}
	return opNames[o]
}

// ParseOp returns the Op named s. "diff" is accepted as an alias of "sub".
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sub", "diff":
		return Subtract, nil
	case "div":
		return Divide, nil
	case "flip":
		return Flip, nil
	}
	return opUnknown, fmt.Errorf("unknown operation %q", s)
}

func sub(a, b int64) (int64, error) { return b - a, nil }

func add(a, b int64) (int64, error) { return b + a, nil }

func mul(a, b int64) (int64, error) { return b * a, nil }

func div(a, b int64) (int64, error) {
	if a == 0 {
		return 0, ErrDivisionByZero
	}
	q := b / a
	if (b%a != 0) && ((b < 0) != (a < 0)) {
		q--
	}
	return q, nil
}

func flip(a, b int64) (int64, error) {
	if a != 0 {
		return -a, nil
	}
	return -b, nil
}

func unflip(a, b int64) (int64, error) {
	if a != 0 {
		return 0, ErrNotInvertible
	}
	return -b, nil
}

func unknown(o Op) Func {
	return func(int64, int64) (int64, error) {
		return 0, fmt.Errorf("unknown operation %d", uint8(o))
	}
}

// A Schedule holds the operation used at each level of a table.
type Schedule []Op

// ParseSchedule parses a comma separated list of operation names,
// e.g. "div,sub".
func ParseSchedule(s string) (Schedule, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("empty schedule")
	}
	fields := strings.Split(s, ",")
	schedule := make(Schedule, len(fields))
	for i, v := range fields {
		op, err := ParseOp(v)
		if err != nil {
			return nil, err
		}
		schedule[i] = op
	}
	return schedule, nil
}

// Repeat returns a schedule of length n using op at every level.
func Repeat(op Op, n int) Schedule {
	if n < 0 {
		n = 0
	}
	s := make(Schedule, n)
	for i := range s {
		s[i] = op
	}
	return s
}

// Funcs returns the forward operations of the schedule.
func (s Schedule) Funcs() []Func {
	funcs := make([]Func, len(s))
	for i, op := range s {
		funcs[i] = op.Func()
	}
	return funcs
}

// Inverses returns the inverse operations of the schedule, level by level.
func (s Schedule) Inverses() []Func {
	funcs := make([]Func, len(s))
	for i, op := range s {
		funcs[i] = op.Inverse()
	}
	return funcs
}

// Predict returns the next term of x using the schedule and its inverses.
func (s Schedule) Predict(x []int64) (int64, error) {
	return Predict(x, s.Funcs(), s.Inverses())
}

func (s Schedule) String() string {
	names := make([]string, len(s))
	for i, op := range s {
		names[i] = op.String()
	}
	return strings.Join(names, ",")
}

// clone returns a copy of s.
func (s Schedule) clone() Schedule {
	c := make(Schedule, len(s))
	copy(c, s)
	return c
}

// inc advances s to the next schedule of the palette in odometer order, the
// last level varying fastest. It returns false once every schedule has been
// visited, leaving s back at its first value.
func (s Schedule) inc() bool {
	for i := len(s) - 1; i >= 0; i-- {
		if int(s[i])+1 < len(Palette) {
			s[i]++
			return true
		}
		s[i] = Palette[0]
	}
	return false
}
