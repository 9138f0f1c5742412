package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newAgentsCmd() *cobra.Command {
	agentsCmd := &cobra.Command{
		Use:   "agents",
		Short: "List the agents on the platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client := newClient(cfg)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			agents, err := client.ListAgents(ctx)
			if err != nil {
				return err
			}

			if len(agents) == 0 {
				fmt.Println("no agents yet")
				return nil
			}
			for _, a := range agents {
				created := ""
				if !a.CreatedAt.IsZero() {
					created = a.CreatedAt.Format("2006-01-02")
				}
				fmt.Printf("%-36s  %-24s  %-12s  %s\n", a.ID, a.Name, a.Model, created)
			}
			return nil
		},
	}

	agentsCmd.AddCommand(&cobra.Command{
		Use:   "delete ID",
		Short: "Delete an agent and everything attached to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client := newClient(cfg)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := client.DeleteAgent(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("agent deleted")
			return nil
		},
	})

	return agentsCmd
}
