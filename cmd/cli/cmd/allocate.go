// Package cmd - allocate command
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"budgetcast/core/aggregate"
	"budgetcast/core/output"
	"budgetcast/internal/config"
)

var allocateFormat string

// allocateCmd represents the allocate command
var allocateCmd = &cobra.Command{
	Use:   "allocate [plan-dir]",
	Short: "Allocate category balances against the current pay period",
	Long: `Project the current pay period, compare each budget category's
balance against what comes due, and rank funding recommendations.

Examples:
  budgetcast allocate ./plans
  budgetcast allocate --format json ./plans`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAllocate,
}

func init() {
	allocateCmd.Flags().StringVarP(&allocateFormat, "format", "f", "", "output format (cli, json)")
}

func runAllocate(cmd *cobra.Command, args []string) error {
	plan, err := loadPlan(args)
	if err != nil {
		return err
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	report, err := eng.Report(plan.Subscriptions, plan.Categories, aggregate.FilterActive())
	if err != nil {
		return err
	}

	formatter, err := output.New(formatOrDefault(allocateFormat))
	if err != nil {
		return err
	}
	return formatter.Render(os.Stdout, stripWarnings(report))
}

func configDefaultFormat() string {
	return config.Get().Output.DefaultFormat
}
