package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"budgetcast/core/engine"
)

const dateLayout = "2006-01-02"

// CLIFormatter renders a report as aligned, human-readable tables.
type CLIFormatter struct{}

// Format implements Formatter
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render implements Formatter
func (f *CLIFormatter) Render(w io.Writer, report *engine.Report) error {
	fmt.Fprintf(w, "Pay period %s .. %s\n\n",
		report.Period.Start.Format(dateLayout),
		report.Period.End.Format(dateLayout))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSUBSCRIPTION\tCOST")
	for _, occ := range report.Summary.Occurrences {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			occ.Date.Format(dateLayout), occ.SubscriptionID, occ.Cost.StringFixed(2))
	}
	fmt.Fprintf(tw, "\tTOTAL (%d)\t%s\n",
		report.Summary.OccurrenceCount, report.Summary.TotalCost.StringFixed(2))
	if err := tw.Flush(); err != nil {
		return err
	}

	if report.Allocation != nil {
		fmt.Fprintln(w)
		if err := f.renderAllocation(w, report); err != nil {
			return err
		}
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Data quality warnings:")
		for _, warn := range report.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}

	return nil
}

func (f *CLIFormatter) renderAllocation(w io.Writer, report *engine.Report) error {
	alloc := report.Allocation

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tDUE\tREQUIRED\tHEALTH\tUTILIZATION\tRUNWAY")
	for _, cat := range alloc.Categories {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s%%\t%dw\n",
			cat.CategoryName,
			cat.TotalDue.StringFixed(2),
			cat.RequiredFunding.StringFixed(2),
			cat.BalanceHealth,
			cat.UtilizationRate.StringFixed(1),
			cat.ProjectedWeeks)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nNeed %s against balance %s",
		alloc.TotalWeeklyNeed.StringFixed(2),
		alloc.TotalCurrentBalance.StringFixed(2))
	if alloc.AdditionalFundingRequired.IsPositive() {
		fmt.Fprintf(w, " - short %s", alloc.AdditionalFundingRequired.StringFixed(2))
	}
	fmt.Fprintln(w)

	if len(alloc.FundingRecommendations) > 0 {
		fmt.Fprintln(w, "\nFunding recommendations:")
		for i, rec := range alloc.FundingRecommendations {
			auto := ""
			if rec.AutoFund {
				auto = " [auto]"
			}
			fmt.Fprintf(w, "  %d. %s: %s (priority %d)%s\n",
				i+1, rec.CategoryName, rec.Amount.StringFixed(2), rec.Priority, auto)
		}
	}

	return nil
}
