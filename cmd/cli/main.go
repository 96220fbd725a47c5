// Package main is the entry point for the budgetcast CLI.
package main

import (
	"os"

	"budgetcast/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
