package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/helixml/splist/infrastructure/persistence"
	"github.com/helixml/splist/internal/log"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "import <file.yaml|->",
		Short: "Add pages to the page index",
		Long: `Add pages from a YAML file to the page index. Use - to read standard input.

  pages:
    - title: Help:Guide
    - title: Help:Guide/Install
      touched: 2024-05-01T10:00:00Z
    - title: Help:Setup
      redirect: true

Existing pages are updated. All pages are saved in one transaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			logger := log.NewWithWriter(cmd.ErrOrStderr(), cfg.LogFormat(), cfg.LogLevel())

			r, closeInput, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeInput()

			client, err := openClient(cfg, logger)
			if err != nil {
				return err
			}
			defer closeClient(client, logger)

			rows, err := persistence.LoadFixture(r, client.Namespaces(), time.Now().UTC())
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			if err := client.Pages.Save(cmd.Context(), rows); err != nil {
				return err
			}

			logger.Info("pages imported", slog.Int("count", len(rows)), slog.String("source", args[0]))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d pages\n", len(rows))
			return err
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	return cmd
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
