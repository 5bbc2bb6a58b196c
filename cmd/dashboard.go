package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/satdrill/internal/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"stats"},
	Short:   "Show per-topic ratings, strengths and weaknesses",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		dash := d.reporter.Dashboard(cmd.Context(), d.catalog)
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dash)
		}
		printDashboard(cmd.OutOrStdout(), dash)
		return nil
	},
}

func printDashboard(w io.Writer, dash *dashboard.Dashboard) {
	fmt.Fprintf(w, "%-8s  %-24s  %6s  %-8s  %5s  %8s\n",
		"Subject", "Topic", "Rating", "Level", "Seen", "Accuracy")
	fmt.Fprintln(w, strings.Repeat("─", 70))

	for _, t := range dash.Topics {
		acc := "-"
		if t.Accuracy != nil {
			acc = fmt.Sprintf("%d%%", *t.Accuracy)
		}
		fmt.Fprintf(w, "%-8s  %-24s  %6d  %-8s  %5d  %8s\n",
			t.Subject, shorten(t.Topic, 24), t.Rating, t.Level, t.Seen, acc)
	}

	fmt.Fprintf(w, "\nOverall: %d (%s)\n", dash.Overall.Rating, dash.Overall.Level)
	fmt.Fprintf(w, "Focus on:  %s\n", topicNames(dash.Weaknesses))
	fmt.Fprintf(w, "Strongest: %s\n", topicNames(dash.Strengths))
}

func topicNames(ts []dashboard.TopicReport) string {
	if len(ts) == 0 {
		return "-"
	}
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = fmt.Sprintf("%s/%s (%d)", t.Subject, t.Topic, t.Rating)
	}
	return strings.Join(names, ", ")
}

func init() {
	dashboardCmd.Flags().Bool("json", false, "Print the dashboard as JSON")
}
