package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/eventpage/guestbook/pkg/logger"
)

func newCopyCmd(opts *rootOptions) *cobra.Command {
	var from, to string
	var allowEmpty bool
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy the whole guestbook from one backend to another",
		Long: "Copy loads the document from --from and overwrites the document in --to.\n" +
			"Legacy files ({\"messages\": [...]}) are converted on the way.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" {
				return errors.New("--from and --to are required")
			}
			if from == to {
				return errors.New("--from and --to must differ")
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			ctx := context.Background()
			src, closeSrc, err := openBackend(ctx, cfg, from)
			if err != nil {
				return err
			}
			defer func() { _ = closeSrc() }()
			dst, closeDst, err := openBackend(ctx, cfg, to)
			if err != nil {
				return err
			}
			defer func() { _ = closeDst() }()

			doc := src.Load(ctx)
			if len(doc.Entries) == 0 && !allowEmpty {
				return errors.New("source is empty; pass --allow-empty to overwrite the destination anyway")
			}
			if err := dst.Save(ctx, doc); err != nil {
				return err
			}
			logger.Infof("copied %d entries from %s to %s", len(doc.Entries), src.Key(), dst.Key())
			cmd.Printf("copied %d entries\n", len(doc.Entries))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Source backend")
	cmd.Flags().StringVar(&to, "to", "", "Destination backend")
	cmd.Flags().BoolVar(&allowEmpty, "allow-empty", false, "Allow copying an empty document")
	return cmd
}
