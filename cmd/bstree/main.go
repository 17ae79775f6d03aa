// Package main provides the bstree command.
package main

import (
	"os"

	"github.com/leapstack-labs/bstree/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
