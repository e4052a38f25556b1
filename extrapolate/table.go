package extrapolate

import "fmt"

// A Table holds the rows derived from a sequence, row 0 being derived from
// the sequence itself and each row being one term shorter than the row above.
type Table [][]int64

// Last returns the final, most reduced row of the table, or nil if the table
// is empty.
func (t Table) Last() []int64 {
	if len(t) == 0 {
		return nil
	}
	return t[len(t)-1]
}

// BuildTable derives the rows of s, using schedule[i] to build row i from
// row i-1, until a row is constant or holds a single term. An empty table is
// returned if s has fewer than two terms. The schedule only needs to cover
// the levels actually reached; a missing level is reported as
// ErrScheduleTooShort. Errors returned by the operations are propagated.
func BuildTable(s []int64, schedule []Func) (Table, error) {
	if len(s) < 2 {
		return Table{}, nil
	}
	row, err := derive(s, schedule, 0)
	if err != nil {
		return nil, err
	}
	t := Table{row}
	for len(row) > 1 && !isConstant(row) {
		if row, err = derive(row, schedule, len(t)); err != nil {
			return nil, err
		}
		t = append(t, row)
	}
	return t, nil
}

// BuildTableFixed is like BuildTable but uses f at every level.
func BuildTableFixed(s []int64, f Func) (Table, error) {
	return BuildTable(s, repeatFunc(f, len(s)-1))
}

// derive returns the row obtained by applying schedule[level] to each pair
// of adjacent terms of s.
func derive(s []int64, schedule []Func, level int) ([]int64, error) {
	if level >= len(schedule) {
		return nil, fmt.Errorf("level %d: %w", level, ErrScheduleTooShort)
	}
	f := schedule[level]
	row := make([]int64, len(s)-1)
	for i := 1; i < len(s); i++ {
		v, err := f(s[i-1], s[i])
		if err != nil {
			return nil, fmt.Errorf("level %d, terms %d and %d: %w", level, i-1, i, err)
		}
		row[i-1] = v
	}
	return row, nil
}

// isConstant reports whether every term of s is equal to the first one.
func isConstant(s []int64) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// repeatFunc returns a schedule of length n using f at every level.
func repeatFunc(f Func, n int) []Func {
	if n < 0 {
		n = 0
	}
	funcs := make([]Func, n)
	for i := range funcs {
		funcs[i] = f
	}
	return funcs
}
