package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser(t *testing.T) {
	u := NewUser("Alice", "editor", "sysop")
	assert.Equal(t, "Alice", u.Name())
	assert.True(t, u.InGroup("sysop"))
	assert.False(t, u.InGroup("bot"))
	assert.False(t, u.IsAnonymous())

	groups := u.Groups()
	groups[0] = "changed"
	assert.True(t, u.InGroup("editor"), "Groups returns a copy")
}

func TestAnonymous(t *testing.T) {
	assert.True(t, Anonymous().IsAnonymous())
	assert.True(t, NewUser("").IsAnonymous())
	assert.Equal(t, AnonymousName, User{}.Name())
}
