// Command extrapolate guesses the next terms of integer sequences.
//
// Without a subcommand it runs a demonstration on the sequence 1, 2, 6, 24
// followed by a self check of the solver.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
