// Package access describes the subject that page reads are authorized for.
package access

import "slices"

// AnonymousName is the name given to users that are not logged in.
const AnonymousName = "*"

// User is the reader a listing is rendered for.
type User struct {
	name   string
	groups []string
}

// NewUser creates a User with the given group memberships.
func NewUser(name string, groups ...string) User {
	if name == "" {
		name = AnonymousName
	}
	return User{name: name, groups: slices.Clone(groups)}
}

// Anonymous returns a user that is not logged in.
func Anonymous() User {
	return NewUser(AnonymousName)
}

// Name returns the user name.
func (u User) Name() string {
	if u.name == "" {
		return AnonymousName
	}
	return u.name
}

// Groups returns a copy of the user's groups.
func (u User) Groups() []string { return slices.Clone(u.groups) }

// InGroup reports whether the user belongs to group.
func (u User) InGroup(group string) bool {
	return slices.Contains(u.groups, group)
}

// IsAnonymous reports whether the user is not logged in.
func (u User) IsAnonymous() bool { return u.Name() == AnonymousName }
