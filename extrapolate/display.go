package extrapolate

import (
	"strconv"
	"strings"
)

// Render returns the sequence s and its table t as a triangle of centered
// columns, one line per row, each row shifted to sit between the terms of
// the row above.
func Render(s []int64, t Table) string {
	pad := 0
	for _, v := range s {
		pad = max(pad, len(strconv.FormatInt(v, 10)))
	}
	for _, row := range t {
		for _, v := range row {
			pad = max(pad, len(strconv.FormatInt(v, 10)))
		}
	}
	var b strings.Builder
	writeRow(&b, s, pad)
	half := roundHalfEven(pad)
	for i, row := range t {
		b.WriteString(strings.Repeat(" ", pad*i+half-i))
		writeRow(&b, row, pad)
	}
	return b.String()
}

// FormatSequence returns s as a bracketed, comma separated list.
func FormatSequence(s []int64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	b.WriteByte(']')
	return b.String()
}

func writeRow(b *strings.Builder, row []int64, width int) {
	for i, v := range row {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(center(strconv.FormatInt(v, 10), width))
	}
	b.WriteByte('\n')
}

// center pads s with spaces to width. When the margin is odd the extra
// space goes to the left only if width is odd too.
func center(s string, width int) string {
	margin := width - len(s)
	if margin <= 0 {
		return s
	}
	left := margin/2 + (margin & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", margin-left)
}

// roundHalfEven returns n/2 rounded to the nearest integer, ties to even.
func roundHalfEven(n int) int {
	h := n / 2
	if n%2 != 0 && h%2 != 0 {
		h++
	}
	return h
}
