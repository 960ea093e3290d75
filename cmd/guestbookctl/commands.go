package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventpage/guestbook/internal/config"
	"github.com/eventpage/guestbook/internal/guestbook/repository"
)

type rootOptions struct {
	backend  string
	dataFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "guestbookctl",
		Short:         "Inspect and maintain the guestbook store",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "Store backend (file, memory, mongo, redis, minio, bolt); defaults to GUESTBOOK_BACKEND")
	cmd.PersistentFlags().StringVar(&opts.dataFile, "file", "", "JSON file for the file backend; defaults to GUESTBOOK_DATA_FILE")

	cmd.AddCommand(newListCmd(opts), newAppendCmd(opts), newCopyCmd(opts))
	return cmd
}

// loadConfig reads the environment and applies command line overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if o.backend != "" {
		cfg.Guestbook.Backend = o.backend
	}
	if o.dataFile != "" {
		cfg.Guestbook.DataFile = o.dataFile
	}
	return cfg, cfg.Validate()
}

// openBackend opens the store for backend, using cfg for connection settings.
func openBackend(ctx context.Context, cfg *config.Config, backend string) (repository.Store, func() error, error) {
	c := *cfg
	c.Guestbook.Backend = backend
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	store, closeFn, err := repository.Open(ctx, &c)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", backend, err)
	}
	return store, closeFn, nil
}
