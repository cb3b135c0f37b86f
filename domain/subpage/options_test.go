package subpage

import (
	"testing"

	"github.com/helixml/splist/domain/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions_Defaults(t *testing.T) {
	opts, diags := ParseOptions(nil)
	require.Empty(t, diags)

	assert.False(t, opts.Debug())
	assert.False(t, opts.Descending())
	assert.Equal(t, page.SortByTitle, opts.SortField())
	assert.Equal(t, ListUnordered, opts.ListStyle())
	assert.Equal(t, PathLeaf, opts.PathStyle())
	assert.False(t, opts.KidsOnly())
	assert.False(t, opts.ShowParent())

	_, ok := opts.Parent()
	assert.False(t, ok)
	_, ok = opts.NoSubpages()
	assert.False(t, ok)
}

func TestParseOptions_Valid(t *testing.T) {
	opts, diags := ParseOptions(map[string]string{
		"debug":      "1",
		"sort":       "DESC",
		"sortby":     "LastEdit",
		"liststyle":  "bar",
		"parent":     " Guide/Install ",
		"showpath":   "notparent",
		"kidsonly":   "Yes",
		"showparent": "1",
		"nosubpages": "Nothing here",
	})
	require.Empty(t, diags)

	assert.True(t, opts.Debug())
	assert.True(t, opts.Descending())
	assert.Equal(t, page.SortByLastEdit, opts.SortField())
	assert.Equal(t, ListBar, opts.ListStyle())
	assert.Equal(t, PathNotParent, opts.PathStyle())
	assert.True(t, opts.KidsOnly())
	assert.True(t, opts.ShowParent())

	parent, ok := opts.Parent()
	assert.True(t, ok)
	assert.Equal(t, "Guide/Install", parent)

	text, ok := opts.NoSubpages()
	assert.True(t, ok)
	assert.Equal(t, "Nothing here", text)
}

func TestParseOptions_InvalidKeepsDefaults(t *testing.T) {
	opts, diags := ParseOptions(map[string]string{
		"debug":      "yes",
		"sort":       "sideways",
		"sortby":     "author",
		"liststyle":  "table",
		"showpath":   "partial",
		"kidsonly":   "2",
		"showparent": "maybe",
	})

	keys := make([]string, len(diags))
	for i, d := range diags {
		keys[i] = d.Key()
	}
	assert.Equal(t, []string{"debug", "sort", "sortby", "liststyle", "showpath", "kidsonly", "showparent"}, keys)
	assert.Equal(t, DefaultOptions(), opts)
}

func TestParseOptions_UnknownKeysIgnored(t *testing.T) {
	opts, diags := ParseOptions(map[string]string{"colour": "red"})
	assert.Empty(t, diags)
	assert.Equal(t, DefaultOptions(), opts)
}

func TestParseOptions_ParentCurrentPage(t *testing.T) {
	opts, diags := ParseOptions(map[string]string{"parent": "-1"})
	require.Empty(t, diags)
	_, ok := opts.Parent()
	assert.False(t, ok)
}

func TestParseOptions_ShowPath(t *testing.T) {
	tests := map[string]PathStyle{
		"no":        PathLeaf,
		"0":         PathLeaf,
		"false":     PathLeaf,
		"notparent": PathNotParent,
		"full":      PathFull,
		"yes":       PathFull,
		"1":         PathFull,
		"TRUE":      PathFull,
	}
	for value, want := range tests {
		t.Run(value, func(t *testing.T) {
			opts, diags := ParseOptions(map[string]string{"showpath": value})
			require.Empty(t, diags)
			assert.Equal(t, want, opts.PathStyle())
		})
	}
}

func TestParseOptions_Flags(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"YES", true},
		{"1", true},
		{"01", true},
		{"false", false},
		{"no", false},
		{"0", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			opts, diags := ParseOptions(map[string]string{"kidsonly": tt.value, "showparent": tt.value})
			require.Empty(t, diags)
			assert.Equal(t, tt.want, opts.KidsOnly())
			assert.Equal(t, tt.want, opts.ShowParent())
		})
	}
}

func TestParseOptions_FlagsRejectText(t *testing.T) {
	for _, value := range []string{"abc", "2", "-1", "on"} {
		t.Run(value, func(t *testing.T) {
			opts, diags := ParseOptions(map[string]string{"kidsonly": value})
			require.Len(t, diags, 1)
			assert.Equal(t, KeyKidsOnly, diags[0].Key())
			assert.False(t, opts.KidsOnly())
		})
	}
}

func TestDiagnostic_Error(t *testing.T) {
	d := NewDiagnostic("sort", "up")
	assert.Equal(t, `invalid value "up" for sort`, d.Error())
	assert.Equal(t, "up", d.Value())
}
