package service

import "context"

// MarkupExpander turns wikitext into the host's output format.
type MarkupExpander interface {
	// Expand renders wikitext produced by the listing.
	Expand(ctx context.Context, wikitext string) (string, error)
}
