package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eventpage/guestbook/internal/guestbook"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List all guestbook entries, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			ctx := context.Background()
			store, closeFn, err := openBackend(ctx, cfg, cfg.Guestbook.Backend)
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			return printDocument(cmd, output, store.Load(ctx))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format: table (default), json or yaml")
	return cmd
}

func printDocument(cmd *cobra.Command, output string, doc guestbook.Document) error {
	switch output {
	case "", "table":
		tw := table.NewWriter()
		tw.Style().Options.DrawBorder = false
		tw.Style().Options.SeparateColumns = false
		tw.Style().Options.SeparateFooter = false
		tw.Style().Options.SeparateHeader = false
		tw.Style().Options.SeparateRows = false
		tw.AppendHeader(table.Row{"ID", "NAME", "MESSAGE", "CREATED AT"})
		for _, e := range doc.Entries {
			tw.AppendRow(table.Row{e.ID, e.Name, e.Text, e.CreatedAt})
		}
		cmd.Printf("%s\n", tw.Render())
	case "json":
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		cmd.Println(string(out))
	case "yaml":
		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal YAML: %w", err)
		}
		cmd.Println(string(out))
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
	return nil
}
