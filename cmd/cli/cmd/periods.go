// Package cmd - periods command
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"budgetcast/core/period"
	"budgetcast/internal/config"
	"budgetcast/internal/errors"
)

var periodsCount int

// periodsCmd represents the periods command
var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "Print upcoming pay-period windows",
	Long: `Print the pay period containing the reference date and the
following consecutive windows.

Examples:
  budgetcast periods
  budgetcast periods -n 8 --as-of 2026-01-01`,
	Args: cobra.NoArgs,
	RunE: runPeriods,
}

func init() {
	periodsCmd.Flags().IntVarP(&periodsCount, "count", "n", 4, "number of periods to print")
}

func runPeriods(cmd *cobra.Command, args []string) error {
	anchor, err := config.Get().Anchor()
	if err != nil {
		return err
	}
	calc := period.Calculator{Anchor: anchor}

	at := time.Now().UTC()
	if asOf != "" {
		at, err = time.Parse("2006-01-02", asOf)
		if err != nil {
			return errors.Wrap(errors.TypeInput, "parsing --as-of date", err)
		}
	}

	periods, err := calc.PeriodsFrom(at, periodsCount)
	if err != nil {
		return err
	}

	for i, p := range periods {
		fmt.Printf("%2d. %s .. %s\n", i+1,
			p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
	}
	return nil
}
