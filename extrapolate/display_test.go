package extrapolate

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		id    string
		s     []int64
		table Table
		want  []string
	}{
		{
			"Factorial",
			[]int64{1, 2, 6, 24},
			Table{{2, 3, 4}, {1, 1}},
			[]string{
				"1  2  6  24",
				" 2  3  4 ",
				"  1  1 ",
			},
		},
		{
			"FactorialExtended",
			[]int64{1, 2, 6, 24, 120},
			Table{{2, 3, 4, 5}, {1, 1, 1}},
			[]string{
				" 1   2   6   24 120",
				"   2   3   4   5 ",
				"     1   1   1 ",
			},
		},
		{
			"Negative",
			[]int64{6, 9, 2, 5},
			Table{{3, -7, 3}, {-10, 10}, {20}},
			[]string{
				" 6   9   2   5 ",
				"   3   -7  3 ",
				"    -10  10",
				"       20",
			},
		},
		{
			"WideTerm",
			[]int64{100, -3, 7},
			Table{{-103, 10}, {113}},
			[]string{
				"100   -3   7  ",
				"  -103  10 ",
				"     113 ",
			},
		},
		{
			"NoTable",
			[]int64{5},
			Table{},
			[]string{"5"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := Render(tt.s, tt.table)
			want := strings.Join(tt.want, "\n") + "\n"
			if got != want {
				t.Fatalf("\ngot\n%q\nwant\n%q", got, want)
			}
		})
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"1", 2, "1 "},
		{"1", 3, " 1 "},
		{"24", 3, " 24"},
		{"-7", 4, " -7 "},
		{"7", 4, " 7  "},
		{"120", 3, "120"},
		{"1234", 3, "1234"},
	}
	for _, tt := range tests {
		if got := center(tt.s, tt.width); got != tt.want {
			t.Fatalf("center(%q, %d): got %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestFormatSequence(t *testing.T) {
	if got, want := FormatSequence([]int64{1, 2, 6, 24}), "[1, 2, 6, 24]"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	if got, want := FormatSequence(nil), "[]"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
