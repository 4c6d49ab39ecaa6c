// Package main is the esenrich command.
package main

import (
	"os"

	"github.com/leapstack-labs/esenrich/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
