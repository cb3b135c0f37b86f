// Package authz provides read authorizers for page titles.
package authz

import (
	"context"

	"github.com/helixml/splist/domain/access"
	"github.com/helixml/splist/domain/page"
)

// AllowAll permits every read.
type AllowAll struct{}

// CanRead always returns true.
func (AllowAll) CanRead(context.Context, access.User, page.Title) (bool, error) {
	return true, nil
}
