package extrapolate

import "fmt"

// Predict guesses the term following s. It builds the table of s using
// schedule, assumes the last row stays constant and walks the table back up
// using inverse, inverse[i] undoing schedule[i]. The pairing of the two
// schedules is not checked.
//
// Predict returns ErrTooShort if s has fewer than two terms. Errors returned
// by the operations are propagated.
func Predict(s []int64, schedule, inverse []Func) (int64, error) {
	if len(s) < 2 {
		return 0, ErrTooShort
	}
	t, err := BuildTable(s, schedule)
	if err != nil {
		return 0, err
	}
	last := t.Last()
	r := last[len(last)-1]
	for i := len(t) - 1; i >= 1; i-- {
		above := t[i-1]
		if r, err = invert(inverse, i, above[len(above)-1], r); err != nil {
			return 0, err
		}
	}
	return invert(inverse, 0, s[len(s)-1], r)
}

// PredictFixed is like Predict but uses f and inv at every level.
func PredictFixed(s []int64, f, inv Func) (int64, error) {
	return Predict(s, repeatFunc(f, len(s)-1), repeatFunc(inv, len(s)-1))
}

// Extend returns a copy of s extended by n successive predictions, each
// prediction being made on the sequence extended so far.
func Extend(s []int64, schedule, inverse []Func, n int) ([]int64, error) {
	x := make([]int64, len(s), len(s)+n)
	copy(x, s)
	for i := 0; i < n; i++ {
		v, err := Predict(x, schedule, inverse)
		if err != nil {
			return nil, err
		}
		x = append(x, v)
	}
	return x, nil
}

func invert(inverse []Func, level int, a, b int64) (int64, error) {
	if level >= len(inverse) {
		return 0, fmt.Errorf("inverse level %d: %w", level, ErrScheduleTooShort)
	}
	v, err := inverse[level](a, b)
	if err != nil {
		return 0, fmt.Errorf("inverse level %d: %w", level, err)
	}
	return v, nil
}
