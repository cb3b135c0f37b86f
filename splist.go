// Package splist lists the subpages of wiki pages.
//
// A page's subpages are the pages whose titles extend its own title with
// "/" segments, for example "Guide/Install" below "Guide". The hierarchy is
// inferred from titles stored in a page index; nothing else is persisted.
//
// Basic usage:
//
//	client, err := splist.New(
//	    splist.WithSQLite(".splist/splist.db"),
//	    splist.WithLanguage("de"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	current, _ := client.Namespaces().Parse("Guide")
//	out, err := client.Subpages.Render(ctx, service.NewRenderRequest(
//	    current, access.Anonymous(), map[string]string{"showpath": "notparent"},
//	))
//	fmt.Println(out.HTML())
package splist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/helixml/splist/application/service"
	"github.com/helixml/splist/domain/page"
	"github.com/helixml/splist/infrastructure/authz"
	"github.com/helixml/splist/infrastructure/i18n"
	"github.com/helixml/splist/infrastructure/markup"
	"github.com/helixml/splist/infrastructure/persistence"
	"github.com/helixml/splist/internal/config"
	"github.com/helixml/splist/internal/database"
)

// Client is the main entry point for the splist library.
//
//	client.Subpages.Render(ctx, req)
//	client.Pages.Save(ctx, rows)
type Client struct {
	Subpages *service.Subpages
	Pages    page.Store

	db         database.Database
	namespaces page.Namespaces
	logger     *slog.Logger
	closed     atomic.Bool
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.database == databaseUnset {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = config.DefaultLogger()
	}

	if cfg.dataDir != "" {
		if _, err := config.PrepareDataDir(cfg.dataDir); err != nil {
			return nil, err
		}
	}

	messages := cfg.messages
	if messages == nil {
		catalog, err := i18n.New(cfg.language)
		if err != nil {
			return nil, fmt.Errorf("load messages: %w", err)
		}
		messages = catalog
	}

	authorizer := cfg.authorizer
	if authorizer == nil {
		authorizer = authz.AllowAll{}
	}

	expander := cfg.expander
	if expander == nil {
		expander = markup.NewListRenderer(cfg.articlePath)
	}

	dbURL, err := buildDatabaseURL(cfg)
	if err != nil {
		return nil, fmt.Errorf("build database url: %w", err)
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	if err := persistence.ValidateSchema(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("validate schema: %w", err), errClose)
	}

	pages := persistence.NewPageStore(db)

	client := &Client{
		Subpages:   service.NewSubpages(pages, cfg.namespaces, authorizer, expander, messages, logger),
		Pages:      pages,
		db:         db,
		namespaces: cfg.namespaces,
		logger:     logger,
	}

	dialect := "sqlite"
	if db.IsPostgres() {
		dialect = "postgres"
	}
	logger.Debug("splist client ready",
		slog.String("database", dialect),
		slog.String("language", cfg.language),
	)
	return client, nil
}

// Namespaces returns the namespace registry used to parse titles.
func (c *Client) Namespaces() page.Namespaces {
	return c.namespaces
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	return c.closed.Load()
}

// Close releases the database connection.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return service.ErrClientClosed
	}

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Debug("splist client closed")
	return nil
}

func buildDatabaseURL(cfg *clientConfig) (string, error) {
	switch cfg.database {
	case databaseSQLite:
		return "sqlite:///" + cfg.dbPath, nil
	case databasePostgres, databaseURL:
		return cfg.dbDSN, nil
	default:
		return "", ErrNoDatabase
	}
}
