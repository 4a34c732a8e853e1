// Package main provides the tiernet CLI: it evaluates partnership-tax
// scenarios against the ownership network engine and keeps a store of
// evaluated runs.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
