package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command against a database in a temp dir.
func runCLI(t *testing.T, dataDir, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATA_DIR", dataDir)
	t.Setenv("DB_URL", "")
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("POLICY_FILE", "")

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

const fixture = `pages:
  - title: Guide
  - title: Guide/Install
    touched: 2024-05-01T10:00:00Z
  - title: Guide/Install/Linux
  - title: Guide/Old
    redirect: true
`

func TestImportAndRender(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, fixture, "import", "-")
	require.NoError(t, err)
	assert.Equal(t, "imported 4 pages\n", out)

	out, err = runCLI(t, dir, "", "render", "--page", "Guide", "--wikitext", "--opt", "showpath=notparent")
	require.NoError(t, err)
	assert.Equal(t, "* [[Guide/Install|Install]]\n** [[Guide/Install/Linux|Install/Linux]]\n", out)

	out, err = runCLI(t, dir, "", "render", "--page", "Guide", "--opt", "kidsonly=yes")
	require.NoError(t, err)
	assert.Contains(t, out, `<div class="subpagelist">`)
	assert.Contains(t, out, `title="Guide/Install"`)
	assert.NotContains(t, out, "Linux")
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	out, err := runCLI(t, dir, "", "import", path)
	require.NoError(t, err)
	assert.Equal(t, "imported 4 pages\n", out)

	_, err = runCLI(t, dir, "", "import", filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestRender_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "", "render", "--page", "Guide", "--opt", "novalue")
	assert.ErrorContains(t, err, "expected key=value")

	_, err = runCLI(t, dir, "", "render", "--page", "A|B")
	assert.Error(t, err)

	_, err = runCLI(t, dir, "", "render")
	assert.Error(t, err)
}

func TestParseOptionArgs(t *testing.T) {
	args, err := parseOptionArgs([]string{"Sort=desc", "showpath=no", "sort=asc", "nosubpages=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"sort": "asc", "showpath": "no", "nosubpages": "a=b"}, args)

	_, err = parseOptionArgs([]string{"=x"})
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "splist version dev\n"))
}

func TestApplyServeOverrides(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	cfg = applyServeOverrides(cfg, "127.0.0.1", 9000)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
}
