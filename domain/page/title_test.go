package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaces_Parse(t *testing.T) {
	ns := DefaultNamespaces()

	tests := []struct {
		name      string
		input     string
		namespace Namespace
		dbKey     string
		prefixed  string
	}{
		{"main namespace", "Guide", NamespaceMain, "Guide", "Guide"},
		{"underscores folded", "getting_started/Install", NamespaceMain, "Getting_started/Install", "Getting started/Install"},
		{"whitespace collapsed", "  Release   notes ", NamespaceMain, "Release_notes", "Release notes"},
		{"namespace prefix", "help:FAQ/Setup", NamespaceHelp, "FAQ/Setup", "Help:FAQ/Setup"},
		{"multi word namespace", "User_talk:alice", NamespaceUserTalk, "Alice", "User talk:Alice"},
		{"unknown prefix stays in title", "Foo:Bar", NamespaceMain, "Foo:Bar", "Foo:Bar"},
		{"leading colon", ":Guide", NamespaceMain, "Guide", "Guide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, err := ns.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.namespace, title.Namespace())
			assert.Equal(t, tt.dbKey, title.DBKey())
			assert.Equal(t, tt.prefixed, title.PrefixedText())
		})
	}
}

func TestNamespaces_Parse_Invalid(t *testing.T) {
	ns := DefaultNamespaces()

	for _, input := range []string{"", "   ", "Help:", "A[b]", "A|b", "A#b", "{x}", "<b>"} {
		t.Run(input, func(t *testing.T) {
			_, err := ns.Parse(input)
			assert.ErrorIs(t, err, ErrInvalidTitle)
		})
	}
}

func TestNamespaces_Title_UnknownNamespace(t *testing.T) {
	_, err := DefaultNamespaces().Title(Namespace(999), "X")
	assert.ErrorIs(t, err, ErrInvalidTitle)
}

func TestTitle_Depth(t *testing.T) {
	ns := DefaultNamespaces()

	tests := []struct {
		input string
		depth int
	}{
		{"Guide", 0},
		{"Guide/Install", 1},
		{"Guide/Install/Linux", 2},
		{"Help:Guide/Install", 1},
	}

	for _, tt := range tests {
		title, err := ns.Parse(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.depth, title.Depth(), tt.input)
	}
}

func TestTitle_IsSubpageOf(t *testing.T) {
	ns := DefaultNamespaces()
	parse := func(s string) Title {
		title, err := ns.Parse(s)
		require.NoError(t, err)
		return title
	}

	parent := parse("Guide")
	assert.True(t, parse("Guide/Install").IsSubpageOf(parent))
	assert.True(t, parse("Guide/Install/Linux").IsSubpageOf(parent))
	assert.False(t, parse("Guides/Install").IsSubpageOf(parent))
	assert.False(t, parse("Guide").IsSubpageOf(parent))
	assert.False(t, parse("Help:Guide/Install").IsSubpageOf(parent))
}

func TestTitle_Equal(t *testing.T) {
	ns := DefaultNamespaces()
	a, err := ns.Parse("Guide_book")
	require.NoError(t, err)
	b, err := ns.Parse("guide book")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.False(t, a.IsZero())
	assert.True(t, Title{}.IsZero())
}
