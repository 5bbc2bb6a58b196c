package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/satdrill/internal/explain"
	"github.com/abhisek/satdrill/internal/llm"
)

var explainCmd = &cobra.Command{
	Use:   "explain <item-id>",
	Short: "Explain a quiz item, optionally against your answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answer, _ := cmd.Flags().GetInt("answer")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		it, err := d.item(args[0])
		if err != nil {
			return err
		}
		svc, err := newExplainer(cmd, d)
		if err != nil {
			return err
		}

		e := svc.Explain(cmd.Context(), explain.FromItem(it, answer))
		printExplanation(cmd.OutOrStdout(), e)
		return nil
	},
}

func printExplanation(w io.Writer, e explain.Explanation) {
	if e.Mock {
		fmt.Fprintln(w, "(offline explanation)")
	}
	printList(w, "Steps", e.Bullets)
	printList(w, "Tips", e.Tips)
	printList(w, "Next", e.NextSteps)
}

func printList(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("─", len(title)))
	for _, s := range items {
		fmt.Fprintf(w, "  • %s\n", s)
	}
}

var tutorCmd = &cobra.Command{
	Use:   "tutor <item-id> <message>...",
	Short: "Ask the tutor about a quiz item",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		answer, _ := cmd.Flags().GetInt("answer")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		it, err := d.item(args[0])
		if err != nil {
			return err
		}
		svc, err := newExplainer(cmd, d)
		if err != nil {
			return err
		}

		reply, err := svc.Tutor(cmd.Context(), explain.TutorRequest{
			Context:  explain.FromItem(it, answer),
			Messages: []llm.Message{{Role: llm.RoleUser, Content: strings.Join(args[1:], " ")}},
		})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, reply.Reply)
		if len(reply.Suggestions) > 0 {
			printList(w, "Try asking", reply.Suggestions)
		}
		return nil
	},
}

func init() {
	explainCmd.Flags().IntP("answer", "a", -1, "0-based index of the choice you picked")
	tutorCmd.Flags().IntP("answer", "a", -1, "0-based index of the choice you picked")
}
