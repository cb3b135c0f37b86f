// Package service declares the collaborators the subpage listing relies on.
package service

import (
	"context"

	"github.com/helixml/splist/domain/access"
	"github.com/helixml/splist/domain/page"
)

// Authorizer decides whether a user may read a page.
type Authorizer interface {
	// CanRead reports whether user may read title.
	CanRead(ctx context.Context, user access.User, title page.Title) (bool, error)
}
