package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mailsense/mailsense/internal/genai"
	"github.com/mailsense/mailsense/internal/gmail"
	"github.com/mailsense/mailsense/internal/priority"
)

func newRankCmd() *cobra.Command {
	var (
		account    string
		maxResults int64
		model      string
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank unread mail by urgency",
		Long: `Fetch unread messages from your Gmail inbox and rank them by urgency.

Each message gets a blended score: an AI model judges the content while a
keyword and recency heuristic anchors the result. When the model is
unavailable the heuristic score is used on its own.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := gmail.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to create Gmail client for account %s: %w", account, err)
			}

			opts := []genai.GeminiOption{}
			if model != "" {
				opts = append(opts, genai.WithModel(model))
			}
			generator, err := genai.NewGeminiClient(opts...)
			if err != nil {
				return fmt.Errorf("failed to create text generation client: %w", err)
			}

			ranker := priority.NewRanker(client, priority.NewModelScorer(generator, nil), nil)
			ranked, err := ranker.RankUnread(ctx, maxResults)
			if err != nil {
				return fmt.Errorf("failed to rank unread mail: %w", err)
			}

			if len(ranked) == 0 {
				fmt.Println("No unread messages.")
				return nil
			}

			for i, msg := range ranked {
				fmt.Printf("%2d. [%.1f] %s | %s\n", i+1, msg.FinalScore, msg.From, msg.Subject)
				if msg.Reasoning != "" {
					fmt.Printf("      %s\n", msg.Reasoning)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().Int64Var(&maxResults, "max-results", 0, "Maximum number of messages to rank (default: 10)")
	cmd.Flags().StringVar(&model, "model", "", "Override the text generation model")
	return cmd
}
