/*
Package extrapolate guesses the next term of an integer sequence using tables
of successive differences, quotients or sign flips.

A Table is derived from a sequence by applying an operation to each pair of
adjacent terms, then again on the resulting row, until a row is constant or
holds a single term. The operation used at each level is given by a schedule.
Assuming the last row stays constant, the table is walked back up using the
inverse operations to obtain the next term of the sequence:

	1   2   6   24
	  2   3   4       div
	    1   1         sub

	next = 24 * (4 + 1) = 120

The built-in operations form a small palette:

	const (
	  Subtract Op = iota // b - a,  inverse b + a
	  Divide             // b div a, inverse b * a
	  Flip               // -a, or -b if a is zero; inverse -b if a is zero
	)

Arbitrary operations can be used through the Func type, the caller being
responsible for pairing each operation with its inverse.

Solve tries every schedule of the palette and returns the set of distinct
predictions, schedules failing on the sequence (e.g. division by zero) being
discarded.

A Store is a collection of named working sequences, safe to use from multiple
goroutines, which can be extended with predictions.
*/
package extrapolate
