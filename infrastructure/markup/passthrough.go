// Package markup expands the wikitext produced by subpage listings.
package markup

import "context"

// Passthrough returns wikitext unchanged, for hosts that expand it later.
type Passthrough struct{}

// Expand returns wikitext as is.
func (Passthrough) Expand(_ context.Context, wikitext string) (string, error) {
	return wikitext, nil
}
