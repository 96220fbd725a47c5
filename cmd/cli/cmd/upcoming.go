// Package cmd - upcoming command
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"budgetcast/adapters/hclplan"
	"budgetcast/core/aggregate"
	"budgetcast/core/engine"
	"budgetcast/core/output"
	"budgetcast/internal/config"
	"budgetcast/internal/logging"
)

var (
	upcomingFormat  string
	upcomingPeriods int
	includeAll      bool
)

// upcomingCmd represents the upcoming command
var upcomingCmd = &cobra.Command{
	Use:   "upcoming [plan-dir]",
	Short: "Show billing occurrences in upcoming pay periods",
	Long: `Project subscription charges into the pay period containing the
reference date, or across several consecutive periods.

Examples:
  budgetcast upcoming ./plans
  budgetcast upcoming --periods 4 ./plans
  budgetcast upcoming --all --as-of 2026-03-06 ./plans`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpcoming,
}

func init() {
	upcomingCmd.Flags().StringVarP(&upcomingFormat, "format", "f", "", "output format (cli, json)")
	upcomingCmd.Flags().IntVarP(&upcomingPeriods, "periods", "n", 1, "number of consecutive pay periods")
	upcomingCmd.Flags().BoolVar(&includeAll, "all", false, "include cancelled and watchlist subscriptions")
}

func runUpcoming(cmd *cobra.Command, args []string) error {
	plan, err := loadPlan(args)
	if err != nil {
		return err
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	filter := aggregate.FilterActive()
	if includeAll {
		filter = aggregate.FilterAll()
	}

	reports, err := eng.Horizon(plan.Subscriptions, nil, filter, upcomingPeriods)
	if err != nil {
		return err
	}

	formatter, err := output.New(formatOrDefault(upcomingFormat))
	if err != nil {
		return err
	}
	for _, report := range reports {
		if err := formatter.Render(os.Stdout, stripWarnings(report)); err != nil {
			return err
		}
	}
	return nil
}

// stripWarnings honors the show_warnings output setting.
func stripWarnings(report *engine.Report) *engine.Report {
	if config.Get().Output.ShowWarnings {
		return report
	}
	trimmed := *report
	trimmed.Warnings = nil
	return &trimmed
}

// loadPlan reads the plan directory named by args (default ".").
func loadPlan(args []string) (*hclplan.Plan, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	plan, err := hclplan.NewLoader().LoadDir(dir)
	if err != nil {
		return nil, err
	}
	logging.Sugar.Debugw("plan loaded",
		"dir", dir,
		"subscriptions", len(plan.Subscriptions),
		"categories", len(plan.Categories))
	return plan, nil
}

func formatOrDefault(format string) string {
	if format != "" {
		return format
	}
	return configDefaultFormat()
}
