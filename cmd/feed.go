package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/satdrill/internal/session"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Build a practice session: intro, quizzes, summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		count, _ := cmd.Flags().GetInt("count")
		completed, _ := cmd.Flags().GetStringSlice("completed")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if count <= 0 {
			count = d.cfg.Session.FeedCount
		}
		opts := session.FeedOptions{Count: count, Completed: make(map[string]bool, len(completed))}
		for _, id := range completed {
			opts.Completed[id] = true
		}

		feed := d.feeds.BuildFeed(cmd.Context(), subject, d.catalog, opts)
		if len(feed.Items) == 0 {
			return fmt.Errorf("no content for subject %q", subject)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Feed %s  (%s, %d quizzes)\n", feed.ID, feed.Subject, len(feed.Quizzes()))
		fmt.Fprintln(w, strings.Repeat("─", 72))
		for i, it := range feed.Items {
			label := it.Prompt
			if !it.IsQuiz() {
				label = it.Title
			}
			fmt.Fprintf(w, "%3d  %-6s  %-20s  %-24s  %s\n", i+1, it.Type, it.ID, it.TopicName(), shorten(label, 40))
		}
		return nil
	},
}

func init() {
	feedCmd.Flags().StringP("subject", "s", "math", "Subject to practice (math, reading, vocab)")
	feedCmd.Flags().IntP("count", "n", 0, "Number of quizzes (default session.feed_count)")
	feedCmd.Flags().StringSlice("completed", nil, "Item ids to leave out, comma separated")
}
