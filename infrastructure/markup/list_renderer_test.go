package markup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRenderer_NestedList(t *testing.T) {
	r := NewListRenderer("")

	got, err := r.Expand(context.Background(), "\n* [[Guide/Install|Install]]\n** [[Guide/Install/Linux|Linux]]\n* [[Guide/Usage|Usage]]")
	require.NoError(t, err)

	want := `<ul><li><a href="/wiki/Guide/Install" title="Guide/Install">Install</a>` +
		`<ul><li><a href="/wiki/Guide/Install/Linux" title="Guide/Install/Linux">Linux</a></li></ul></li>` +
		`<li><a href="/wiki/Guide/Usage" title="Guide/Usage">Usage</a></li></ul>`
	assert.Equal(t, want, got)
}

func TestListRenderer_OrderedSkipsLevel(t *testing.T) {
	r := NewListRenderer("/w/index.php?title=$1")

	got, err := r.Expand(context.Background(), "\n#[[Guide|Guide]]\n### [[Guide/A/B|B]]")
	require.NoError(t, err)

	want := `<ol><li><a href="/w/index.php?title=Guide" title="Guide">Guide</a>` +
		`<ol><li><ol><li><a href="/w/index.php?title=Guide/A/B" title="Guide/A/B">B</a></li></ol></li></ol></li></ol>`
	assert.Equal(t, want, got)
}

func TestListRenderer_Italic(t *testing.T) {
	r := NewListRenderer("")

	got, err := r.Expand(context.Background(), "''[[Help:Getting started]] has no subpages to list.''\n")
	require.NoError(t, err)

	want := `<p><i><a href="/wiki/Help:Getting_started" title="Help:Getting started">Help:Getting started</a>` +
		` has no subpages to list.</i></p>`
	assert.Equal(t, want, got)
}

func TestListRenderer_Bar(t *testing.T) {
	r := NewListRenderer("")

	got, err := r.Expand(context.Background(), "\n[[A|A]]&#160;·  [[B|B]]")
	require.NoError(t, err)

	assert.Equal(t, `<p><a href="/wiki/A" title="A">A</a>&#160;·  <a href="/wiki/B" title="B">B</a></p>`, got)
}

func TestListRenderer_EscapesText(t *testing.T) {
	r := NewListRenderer("")

	got, err := r.Expand(context.Background(), `<b>x</b> & y &bogus; [[broken`)
	require.NoError(t, err)

	assert.Equal(t, `<p>&lt;b&gt;x&lt;/b&gt; &amp; y &amp;bogus; [[broken</p>`, got)
}

func TestListRenderer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewListRenderer("").Expand(ctx, "* x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPassthrough(t *testing.T) {
	got, err := Passthrough{}.Expand(context.Background(), "\n* [[A|A]]")
	require.NoError(t, err)
	assert.Equal(t, "\n* [[A|A]]", got)
}
