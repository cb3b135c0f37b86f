package subpage

import (
	"fmt"
	"strings"
	"testing"

	"github.com/helixml/splist/domain/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(t *testing.T, texts ...string) []page.Title {
	t.Helper()
	ns := page.DefaultNamespaces()
	result := make([]page.Title, len(texts))
	for i, text := range texts {
		title, err := ns.Parse(text)
		require.NoError(t, err)
		result[i] = title
	}
	return result
}

func listing(t *testing.T, parent string, children ...string) Listing {
	t.Helper()
	return NewListing(titles(t, parent)[0], titles(t, children...))
}

func format(t *testing.T, args map[string]string, l Listing) string {
	t.Helper()
	opts, diags := ParseOptions(args)
	require.Empty(t, diags)
	return NewFormatter(opts).Format(l)
}

func TestFormatter_Nested(t *testing.T) {
	l := listing(t, "Guide", "Guide/Install", "Guide/Install/Linux", "Guide/Usage")

	got := format(t, nil, l)

	assert.Equal(t, "\n* [[Guide/Install|Install]]\n** [[Guide/Install/Linux|Linux]]\n* [[Guide/Usage|Usage]]", got)
}

func TestFormatter_Ordered(t *testing.T) {
	l := listing(t, "Guide", "Guide/Install", "Guide/Install/Linux")

	got := format(t, map[string]string{"liststyle": "ordered"}, l)

	assert.Equal(t, "\n# [[Guide/Install|Install]]\n## [[Guide/Install/Linux|Linux]]", got)
}

func TestFormatter_KidsOnly(t *testing.T) {
	l := listing(t, "Guide", "Guide/Install", "Guide/Install/Linux", "Guide/Usage")

	got := format(t, map[string]string{"kidsonly": "yes"}, l)

	assert.Equal(t, "\n* [[Guide/Install|Install]]\n* [[Guide/Usage|Usage]]", got)
}

func TestFormatter_ShowParent(t *testing.T) {
	l := listing(t, "Guide", "Guide/Install", "Guide/Install/Linux")

	got := format(t, map[string]string{"showparent": "1"}, l)

	assert.Equal(t, "\n*[[Guide|Guide]]\n** [[Guide/Install|Install]]\n*** [[Guide/Install/Linux|Linux]]", got)
}

func TestFormatter_Bar(t *testing.T) {
	l := listing(t, "Guide", "Guide/Install", "Guide/Usage")

	got := format(t, map[string]string{"liststyle": "bar"}, l)
	assert.Equal(t, "\n[[Guide/Install|Install]]&#160;·  [[Guide/Usage|Usage]]", got)

	got = format(t, map[string]string{"liststyle": "bar", "showparent": "true"}, l)
	assert.Equal(t, "\n[[Guide|Guide]]&#160;·  [[Guide/Install|Install]]&#160;·  [[Guide/Usage|Usage]]", got)
}

func TestFormatter_PathStyles(t *testing.T) {
	l := listing(t, "Help:Guide", "Help:Guide/Install/Linux")

	tests := map[string]string{
		"no":        "\n** [[Help:Guide/Install/Linux|Linux]]",
		"notparent": "\n** [[Help:Guide/Install/Linux|Install/Linux]]",
		"full":      "\n** [[Help:Guide/Install/Linux|Guide/Install/Linux]]",
	}
	for value, want := range tests {
		t.Run(value, func(t *testing.T) {
			assert.Equal(t, want, format(t, map[string]string{"showpath": value}, l))
		})
	}
}

func TestFormatter_NotParentStripsWholeParent(t *testing.T) {
	l := listing(t, "A/B", "A/B/C/D")

	got := format(t, map[string]string{"showpath": "notparent"}, l)
	assert.Equal(t, "\n** [[A/B/C/D|C/D]]", got)
}

func TestFormatter_Empty(t *testing.T) {
	assert.Equal(t, "", format(t, nil, listing(t, "Guide")))
}

func TestFormatter_Cap(t *testing.T) {
	children := make([]string, 250)
	for i := range children {
		children[i] = fmt.Sprintf("Guide/Page %03d", i)
	}
	l := listing(t, "Guide", children...)

	got := format(t, nil, l)
	lines := strings.Split(strings.TrimPrefix(got, "\n"), "\n")
	assert.Len(t, lines, MaxEntries)
	assert.Equal(t, "* [[Guide/Page 199|Page 199]]", lines[len(lines)-1])

	got = format(t, map[string]string{"showparent": "yes"}, l)
	lines = strings.Split(strings.TrimPrefix(got, "\n"), "\n")
	assert.Len(t, lines, MaxEntries, "the parent entry counts toward the cap")
	assert.Equal(t, "** [[Guide/Page 198|Page 198]]", lines[len(lines)-1])
}

func TestListing_TitlesIsCopy(t *testing.T) {
	l := listing(t, "Guide", "Guide/A")
	got := l.Titles()
	got[0] = page.Title{}
	assert.False(t, l.Titles()[0].IsZero())
	assert.Equal(t, 1, l.Len())
	assert.False(t, l.Empty())
}
