package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdsite/internal/content"
	"git.home.luguber.info/inful/mdsite/internal/history"
	"git.home.luguber.info/inful/mdsite/internal/site"
)

func parseCLI(t *testing.T, args ...string) *CLI {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return &cli
}

func TestCLIDefaults(t *testing.T) {
	cli := parseCLI(t, "build")
	assert.Equal(t, "mdsite.yaml", cli.Config)
	assert.False(t, cli.Verbose)
	assert.Empty(t, cli.Build.Output)
}

func TestCLIBuildFlags(t *testing.T) {
	cli := parseCLI(t, "build", "-o", "dist", "-c", "custom.yaml", "-v")
	assert.Equal(t, "custom.yaml", cli.Config)
	assert.True(t, cli.Verbose)
	assert.Equal(t, "dist", cli.Build.Output)
}

func TestCLIInitArgs(t *testing.T) {
	cli := parseCLI(t, "init")
	assert.Equal(t, ".", cli.Init.Dir)
	assert.False(t, cli.Init.Force)

	cli = parseCLI(t, "init", "site", "--force")
	assert.Equal(t, "site", cli.Init.Dir)
	assert.True(t, cli.Init.Force)
}

func TestCLIServeFlags(t *testing.T) {
	cli := parseCLI(t, "serve", "--addr", "127.0.0.1:9999")
	assert.Equal(t, "127.0.0.1:9999", cli.Serve.Addr)
}

func TestCLIHistoryFlags(t *testing.T) {
	cli := parseCLI(t, "history")
	assert.Equal(t, 20, cli.History.Limit)

	cli = parseCLI(t, "history", "--limit", "5")
	assert.Equal(t, 5, cli.History.Limit)
}

func TestRenderMappings(t *testing.T) {
	docs := []content.File{
		{Rel: "index.md", IsDoc: true},
		{Rel: "docs/guide.md", IsDoc: true},
		{Rel: "docs/index.md", IsDoc: true},
	}
	assets := []content.File{
		{Rel: "img/logo.png"},
	}

	var buf bytes.Buffer
	err := renderMappings(&buf, site.NewMapper("index.md"), docs, assets)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "TYPE")
	assert.Contains(t, out, "docs/guide/index.html")
	assert.Contains(t, out, "docs/index.html")
	assert.Contains(t, out, "img/logo.png")
	assert.Contains(t, out, "3 documents, 1 assets")
}

func TestRenderHistory(t *testing.T) {
	entries := []history.Entry{
		{
			ID:         "0123456789abcdef",
			Started:    time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
			Outcome:    "success",
			Pages:      12,
			Assets:     4,
			DurationMS: 1500,
			Commit:     "deadbeefcafe0123",
		},
		{
			ID:         "fedcba9876543210",
			Started:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			Outcome:    "failed",
			DurationMS: 80,
			Error:      "render: malformed front matter in docs/broken.md",
		},
	}

	var buf bytes.Buffer
	err := renderHistory(&buf, entries)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789")
	assert.Contains(t, out, "2026-03-01 10:30:00")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "deadbeef")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "malformed front matter")
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := renderHistory(&buf, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No builds recorded yet")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abcdef", truncate("abcdef", 10))
	assert.Equal(t, "abc...", truncate("abcdefghij", 6))
	assert.Equal(t, "abcd", short("abcdefgh", 4))
	assert.Equal(t, "abc", short("abc", 8))
}
