package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/satdrill/internal/catalog"
	"github.com/abhisek/satdrill/internal/mastery"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Pick the next practice item for a subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		it, ok := d.selector.NextItem(cmd.Context(), subject, d.catalog)
		if !ok {
			return fmt.Errorf("no quizzes for subject %q", subject)
		}

		printItem(cmd.OutOrStdout(), it, difficultyLabel(it, d.topicRating(cmd, it)))
		return nil
	},
}

// difficultyLabel shows the explicit or topic-table difficulty. Other items
// are scored against a random draw around the topic rating, so only that
// rating is shown, marked as an estimate.
func difficultyLabel(it catalog.Item, topicRating int) string {
	if d, ok := mastery.KnownDifficulty(it); ok {
		return strconv.Itoa(d)
	}
	return fmt.Sprintf("~%d (estimate)", topicRating)
}

func printItem(w io.Writer, it catalog.Item, difficulty string) {
	fmt.Fprintf(w, "ID:          %s\n", it.ID)
	fmt.Fprintf(w, "Subject:     %s\n", it.Subject)
	fmt.Fprintf(w, "Topic:       %s\n", it.TopicName())
	fmt.Fprintf(w, "Difficulty:  %s\n", difficulty)
	if it.Passage != "" {
		fmt.Fprintf(w, "\n%s\n", it.Passage)
	}
	if it.Prompt != "" {
		fmt.Fprintf(w, "\n%s\n", it.Prompt)
	}
	for i, c := range it.Choices {
		fmt.Fprintf(w, "  %c. %s\n", 'A'+i, c)
	}
}

func init() {
	nextCmd.Flags().StringP("subject", "s", "math", "Subject to practice (math, reading, vocab)")
}
