package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all learner progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Fprintln(cmd.OutOrStdout(), "This deletes every rating and the answer history. Re-run with --yes to confirm.")
			return nil
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		d.engine.Reset(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "Progress cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
