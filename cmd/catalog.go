package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/satdrill/internal/catalog"
	"github.com/abhisek/satdrill/internal/mastery"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and convert content catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog items (optionally filtered by subject)",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")

		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cmd, cfg)
		if err != nil {
			return err
		}

		items := cat.Items()
		if subject != "" {
			items = cat.BySubject(subject)
			if len(items) == 0 {
				return fmt.Errorf("no items found for subject %q", subject)
			}
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-20s  %-6s  %-8s  %-24s  %s\n", "ID", "Type", "Subject", "Topic", "Difficulty")
		fmt.Fprintln(w, strings.Repeat("─", 80))
		for _, it := range items {
			diff := "-"
			if d, ok := mastery.KnownDifficulty(it); ok && it.IsQuiz() {
				diff = strconv.Itoa(d)
			}
			fmt.Fprintf(w, "%-20s  %-6s  %-8s  %-24s  %s\n", it.ID, it.Type, it.Subject, it.TopicName(), diff)
		}
		fmt.Fprintf(w, "\n%d items\n", len(items))
		return nil
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Convert a JSON, YAML or XLSX catalog to JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		cat, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if out != "" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()
			w = f
		}
		if err := catalog.WriteJSON(w, cat); err != nil {
			return fmt.Errorf("write catalog: %w", err)
		}
		if out != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d items to %s\n", cat.Len(), out)
		}
		return nil
	},
}

func init() {
	catalogListCmd.Flags().StringP("subject", "s", "", "Filter by subject")
	catalogImportCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogImportCmd)
}
