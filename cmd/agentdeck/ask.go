package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"agentdeck/internal/api"
)

func newAskCmd() *cobra.Command {
	var conversationID string
	var temperature float64

	cmd := &cobra.Command{
		Use:   "ask AGENT_ID QUESTION...",
		Short: "Ask an agent a question and print the full reply",
		Long: `Ask an agent a question and wait for the complete answer. Pass
--conversation to continue an existing thread; the reply prints the
conversation id so follow-ups can reference it.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client := newClient(cfg)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			agentID := args[0]
			question := strings.Join(args[1:], " ")

			resp, err := client.Query(ctx, agentID, question, api.QueryOptions{
				ConversationID: conversationID,
				Temperature:    temperature,
			})
			if err != nil {
				return err
			}

			fmt.Println(resp.Answer)
			if resp.ConversationID != "" {
				fmt.Printf("\nconversation: %s\n", resp.ConversationID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&conversationID, "conversation", "c", "", "continue an existing conversation")
	cmd.Flags().Float64VarP(&temperature, "temperature", "t", 0, "sampling temperature override")
	return cmd
}
