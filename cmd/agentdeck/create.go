package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"agentdeck/internal/commit"
)

func newCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the drafted agent and upload every staged source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			session, _, err := openSession(cfg)
			if err != nil {
				return err
			}
			if name != "" {
				session.SetAgentName(name)
			}

			client := newClient(cfg)
			orch := commit.New(client, commit.Options{
				MaxConcurrent: cfg.Staging.MaxConcurrentUploads,
				OnStateChange: func(s commit.State) {
					fmt.Println(s.String())
				},
				OnItemDone: func(r commit.ItemResult) {
					if r.Err != nil {
						fmt.Printf("  ✗ %s: %v\n", r.Name, r.Err)
					} else {
						fmt.Printf("  ✓ %s\n", r.Name)
					}
				},
			})

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			result, err := orch.Commit(ctx, session)
			if err != nil {
				var uploadErr *commit.UploadError
				if errors.As(err, &uploadErr) {
					fmt.Printf("agent %s created, but %d of %d sources failed; they remain staged for retry\n",
						result.Agent.Name, uploadErr.Failed, uploadErr.Total)
					return err
				}
				return err
			}

			fmt.Printf("agent %s created with %d source(s)\n", result.Agent.Name, len(result.Items))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "agent name (overrides the drafted name)")
	return cmd
}
