package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"agentdeck/internal/staging"
	"agentdeck/internal/webmeta"
)

func newStageCmd() *cobra.Command {
	stageCmd := &cobra.Command{
		Use:   "stage",
		Short: "Manage the staged knowledge sources for the next agent",
	}

	stageCmd.AddCommand(newStageFileCmd())
	stageCmd.AddCommand(newStageTextCmd())
	stageCmd.AddCommand(newStageWebsiteCmd())
	stageCmd.AddCommand(newStageListCmd())
	stageCmd.AddCommand(newStageRmCmd())
	stageCmd.AddCommand(newStageClearCmd())
	return stageCmd
}

func newStageFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "file PATTERN...",
		Short: "Stage local files matching glob patterns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			session, _, err := openSession(cfg)
			if err != nil {
				return err
			}

			staged := 0
			for _, pattern := range args {
				matches, err := doublestar.FilepathGlob(pattern)
				if err != nil {
					return fmt.Errorf("bad pattern %q: %w", pattern, err)
				}
				for _, path := range matches {
					info, err := os.Stat(path)
					if err != nil || info.IsDir() {
						continue
					}
					item := staging.NewFileItem(uuid.NewString(), filepath.Base(path), path, info.Size())
					session.Add(item)
					fmt.Printf("staged %s (%s, %d bytes)\n", item.Name(), item.ID()[:8], info.Size())
					staged++
				}
			}

			if staged == 0 {
				return fmt.Errorf("no files matched")
			}
			fmt.Printf("%d file(s) staged, %d source(s) total\n", staged, session.TotalCount())
			return nil
		},
	}
}

func newStageTextCmd() *cobra.Command {
	var name string
	var file string

	cmd := &cobra.Command{
		Use:   "text [TEXT]",
		Short: "Stage a raw text source",
		Long: `Stage a raw text source. The body comes from the argument, from
--file, or from stdin when neither is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			session, _, err := openSession(cfg)
			if err != nil {
				return err
			}

			var body string
			switch {
			case len(args) == 1:
				body = args[0]
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				body = string(data)
			default:
				data, err := io.ReadAll(os.Stdin)
				if err != nil || len(data) == 0 {
					return fmt.Errorf("no text given: pass it as an argument, --file or stdin")
				}
				body = string(data)
			}
			if body == "" {
				return fmt.Errorf("text source is empty")
			}

			if name == "" {
				name = "Text snippet"
			}
			item := staging.NewTextItem(uuid.NewString(), name, body)
			session.Add(item)
			fmt.Printf("staged %s (%s)\n", item.Name(), item.ID()[:8])
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name for the snippet")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the text body from a file")
	return cmd
}

func newStageWebsiteCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "website URL",
		Short: "Stage a website for server-side crawling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			if err := webmeta.ValidateURL(url); err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			session, _, err := openSession(cfg)
			if err != nil {
				return err
			}

			if name == "" {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				name = webmeta.FetchTitle(ctx, url)
			}

			item := staging.NewWebsiteItem(uuid.NewString(), name, url)
			session.Add(item)
			fmt.Printf("staged %s (%s)\n", item.Name(), item.ID()[:8])
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name (default is the page title)")
	return cmd
}

func newStageListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the staged sources",
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

			draft := session.Draft()
			fmt.Printf("draft agent: %s (%s)\n", draft.Name, draft.Model)

			items := session.Items()
			if len(items) == 0 {
				fmt.Println("nothing staged")
				return nil
			}

			for _, item := range items {
				fmt.Printf("%s  %-7s  %s\n", item.ID()[:8], item.Kind(), item.Name())
			}
			fmt.Printf("%d source(s), %d bytes of files\n", len(items), session.TotalBytes())
			return nil
		},
	}
}

func newStageRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID...",
		Short: "Unstage sources by id (prefixes accepted)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			session, _, err := openSession(cfg)
			if err != nil {
				return err
			}

			items := session.Items()
			var full []string
			for _, prefix := range args {
				matched := ""
				for _, item := range items {
					if item.ID() == prefix || (len(prefix) >= 4 && len(item.ID()) > len(prefix) && item.ID()[:len(prefix)] == prefix) {
						if matched != "" {
							return fmt.Errorf("id prefix %q is ambiguous", prefix)
						}
						matched = item.ID()
					}
				}
				if matched == "" {
					return fmt.Errorf("no staged source matches %q", prefix)
				}
				full = append(full, matched)
			}

			session.RemoveMany(full)
			fmt.Printf("removed %d source(s), %d remaining\n", len(full), session.TotalCount())
			return nil
		},
	}
}

func newStageClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every staged source and reset the draft",
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

			session.ClearAll()
			fmt.Println("staging cleared")
			return nil
		},
	}
}
