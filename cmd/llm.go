package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/satdrill/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the configured LLM provider",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Send a tiny request to verify the provider works",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, log)
		if errors.Is(err, llm.ErrNoProvider) {
			return fmt.Errorf("%w: set OPENAI_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY or OPENROUTER_API_KEY, or llm.provider in the config file", err)
		}
		if err != nil {
			return err
		}

		ctx := llm.WithPurpose(cmd.Context(), llm.PurposeCheck)
		ctx, cancel := context.WithTimeout(ctx, cfg.LLMTimeout())
		defer cancel()

		start := time.Now()
		resp, err := provider.Generate(ctx, llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Reply with the single word: ok"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.LLM.Provider, err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Provider:  %s\n", cfg.LLM.Provider)
		fmt.Fprintf(w, "Model:     %s\n", resp.Model)
		fmt.Fprintf(w, "Reply:     %s\n", resp.Text())
		fmt.Fprintf(w, "Tokens:    %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
		fmt.Fprintf(w, "Latency:   %dms\n", time.Since(start).Milliseconds())
		if cost := llm.LookupCost(resp.Model); cost != nil {
			fmt.Fprintf(w, "Cost:      %s\n", formatCost(cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)))
		}
		return nil
	},
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmCmd.AddCommand(llmCheckCmd)
}
