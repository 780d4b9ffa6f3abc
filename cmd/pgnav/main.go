// Package main is the entry point for the pgnav CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/pgnav/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
