package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/helixml/splist/domain/access"
)

// Headers used to identify the reading user. The wiki front end is
// expected to authenticate the user and forward these.
const (
	UserHeader   = "X-Wiki-User"
	GroupsHeader = "X-Wiki-Groups"
)

type userKey struct{}

// User returns a middleware that stores the requesting user in the context.
// Requests without a user header are treated as anonymous.
func User(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := access.Anonymous()
		if name := strings.TrimSpace(r.Header.Get(UserHeader)); name != "" {
			user = access.NewUser(name, splitGroups(r.Header.Get(GroupsHeader))...)
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// WithUser returns a context carrying user.
func WithUser(ctx context.Context, user access.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFrom returns the user stored in ctx, or the anonymous user.
func UserFrom(ctx context.Context) access.User {
	if user, ok := ctx.Value(userKey{}).(access.User); ok {
		return user
	}
	return access.Anonymous()
}

func splitGroups(s string) []string {
	var groups []string
	for _, g := range strings.Split(s, ",") {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}
