package main

import (
	"fmt"
	"log/slog"

	"github.com/helixml/splist"
	"github.com/helixml/splist/infrastructure/authz"
	"github.com/helixml/splist/internal/config"
)

// clientOptions returns the splist.Option slice derived from AppConfig.
func clientOptions(cfg config.AppConfig, logger *slog.Logger) ([]splist.Option, error) {
	opts := []splist.Option{
		splist.WithDatabaseURL(cfg.DBURL()),
		splist.WithDataDir(cfg.DataDir()),
		splist.WithLogger(logger),
		splist.WithLanguage(cfg.Language()),
		splist.WithArticlePath(cfg.ArticlePath()),
	}

	if path := cfg.PolicyFile(); path != "" {
		policy, err := authz.LoadPolicyFile(path)
		if err != nil {
			return nil, fmt.Errorf("read policy: %w", err)
		}
		opts = append(opts, splist.WithAuthorizer(policy))
		logger.Info("read policy loaded", slog.String("path", path), slog.Int("rules", len(policy.Rules)))
	}

	return opts, nil
}

// openClient opens a splist client configured by cfg.
func openClient(cfg config.AppConfig, logger *slog.Logger) (*splist.Client, error) {
	opts, err := clientOptions(cfg, logger)
	if err != nil {
		return nil, err
	}

	client, err := splist.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create splist client: %w", err)
	}
	return client, nil
}

// closeClient closes client, logging any failure.
func closeClient(client *splist.Client, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.Error("failed to close splist client", slog.Any("error", err))
	}
}
