package splist

import (
	"errors"
	"log/slog"

	"github.com/helixml/splist/domain/page"
	domainservice "github.com/helixml/splist/domain/service"
	"github.com/helixml/splist/internal/config"
)

// ErrNoDatabase indicates New was called without a database option.
var ErrNoDatabase = errors.New("splist: no database configured")

type databaseType int

const (
	databaseUnset databaseType = iota
	databaseSQLite
	databasePostgres
	databaseURL
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	database    databaseType
	dbPath      string
	dbDSN       string
	dataDir     string
	logger      *slog.Logger
	language    string
	articlePath string
	namespaces  page.Namespaces
	authorizer  domainservice.Authorizer
	expander    domainservice.MarkupExpander
	messages    domainservice.Messages
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		language:    config.DefaultLanguage,
		articlePath: config.DefaultArticlePath,
		namespaces:  page.DefaultNamespaces(),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite stores the page index in a SQLite file.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.database = databaseSQLite
		c.dbPath = path
	}
}

// WithPostgres stores the page index in PostgreSQL.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.database = databasePostgres
		c.dbDSN = dsn
	}
}

// WithDatabaseURL selects the database from a sqlite:/// or postgres:// URL.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.database = databaseURL
		c.dbDSN = url
	}
}

// WithDataDir creates dir before the database is opened.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithLanguage selects the language of the built-in messages.
// It has no effect when WithMessages is also given.
func WithLanguage(lang string) Option {
	return func(c *clientConfig) {
		c.language = lang
	}
}

// WithArticlePath sets the URL pattern used by the built-in HTML renderer.
func WithArticlePath(path string) Option {
	return func(c *clientConfig) {
		if path != "" {
			c.articlePath = path
		}
	}
}

// WithNamespaces replaces the namespace registry.
func WithNamespaces(ns page.Namespaces) Option {
	return func(c *clientConfig) {
		c.namespaces = ns
	}
}

// WithAuthorizer sets the read authorizer for explicit parents.
// Defaults to allowing every read.
func WithAuthorizer(a domainservice.Authorizer) Option {
	return func(c *clientConfig) {
		c.authorizer = a
	}
}

// WithExpander sets how listing wikitext is expanded.
// Defaults to the built-in HTML list renderer.
func WithExpander(e domainservice.MarkupExpander) Option {
	return func(c *clientConfig) {
		c.expander = e
	}
}

// WithMessages replaces the built-in message catalog.
func WithMessages(m domainservice.Messages) Option {
	return func(c *clientConfig) {
		c.messages = m
	}
}
