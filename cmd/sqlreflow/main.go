// Package main provides the sqlreflow command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlreflow/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
