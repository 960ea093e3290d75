package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/eventpage/guestbook/internal/guestbook/service"
)

func newAppendCmd(opts *rootOptions) *cobra.Command {
	var name, text string
	cmd := &cobra.Command{
		Use:   "append",
		Short: "Append an entry to the guestbook",
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

			entries, err := service.NewService(store, true).Append(ctx, name, text)
			if err != nil {
				return err
			}
			last := entries[len(entries)-1]
			cmd.Printf("appended %s (%d entries)\n", last.ID, len(entries))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&text, "text", "", "Message text")
	return cmd
}
