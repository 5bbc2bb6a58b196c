package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "satdrill",
	Short: "Adaptive SAT practice in the terminal",
	Long: "satdrill picks SAT math, reading and vocabulary items that match your current level, " +
		"tracks a rating per topic and explains answers.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default ./config.yaml or $XDG_CONFIG_HOME/satdrill/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides SATDRILL_DB env var)")
	pf.String("catalog", "", "Path to a JSON, YAML or XLSX catalog (default: built-in content)")
	pf.BoolP("verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(tutorCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
