package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record <item-id>",
	Short: "Record a graded answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		correct, _ := cmd.Flags().GetBool("correct")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		it, err := d.item(args[0])
		if err != nil {
			return err
		}

		d.engine.RecordResult(cmd.Context(), it, correct)

		result := "wrong"
		if correct {
			result = "correct"
		}
		key, ok := it.Key()
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s answer for %s\n", result, it.ID)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s answer for %s (%s): rating %d\n",
			result, it.ID, key, d.topicRating(cmd, it))
		return nil
	},
}

func init() {
	recordCmd.Flags().Bool("correct", false, "The answer was correct")
	recordCmd.Flags().Bool("wrong", false, "The answer was wrong")
	recordCmd.MarkFlagsMutuallyExclusive("correct", "wrong")
	recordCmd.MarkFlagsOneRequired("correct", "wrong")
}
