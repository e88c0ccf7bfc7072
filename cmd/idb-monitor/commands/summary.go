package commands

import (
	"context"
	"fmt"
	"io"

	"idb-monitor/internal/filter"
	"idb-monitor/internal/stats"

	"github.com/spf13/cobra"
)

var summaryFilters filterFlags

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the executive summary, key insights and vendor recommendations",
	Run: func(cmd *cobra.Command, args []string) {
		ds := mustLoad(context.Background())
		sess := summaryFilters.session(ds)
		out := cmd.OutOrStdout()

		s, ok := stats.ExecutiveSummary(ds.Field)
		if !ok {
			fmt.Fprintln(out, "The field dataset is empty.")
			return
		}

		fmt.Fprintln(out, "Executive summary (all data)")
		for _, line := range s.Lines() {
			fmt.Fprintf(out, "  %s\n", line)
		}

		filtered := sess.Filtered()
		if len(filtered) == 0 {
			fmt.Fprintln(out, "\nNo records match the selected filters.")
		} else {
			printInsights(out, stats.Insights(filtered, !filter.IsAll(sess.State().User)))
		}

		fmt.Fprintln(out, "\nVendor assessment (all data)")
		for _, r := range sess.Recommendations() {
			fmt.Fprintf(out, "  %s: %s, %d/day over %d days, %.1f%% defects\n", r.Vendor, r.Status, r.RunRate, r.ActiveDays, r.DefectPct)
			for _, rec := range r.Recommendations {
				fmt.Fprintf(out, "    - %s: %s\n", rec.Title, rec.Text)
			}
		}
	},
}

func printInsights(out io.Writer, k stats.KeyInsights) {
	fmt.Fprintln(out, "\nKey insights")
	fmt.Fprintf(out, "  Top vendor:          %s (%.0f%%)\n", k.TopVendor, k.TopVendorShare)
	if k.ShowOfficers {
		fmt.Fprintf(out, "  Top officer:         %s\n", k.TopOfficer)
		fmt.Fprintf(out, "  Lowest officer:      %s, %s (%.1f%%)\n", k.BottomOfficer, k.BottomOfficerVendor, k.BottomOfficerShare)
	}
	fmt.Fprintf(out, "  Highest undertaking: %s\n", k.HighestUndertaking)
	fmt.Fprintf(out, "  Lowest undertaking:  %s\n", k.LowestUndertaking)
	fmt.Fprintf(out, "  Coverage:            %s\n", k.Coverage())
}

func init() {
	summaryFilters.register(summaryCmd)
}
