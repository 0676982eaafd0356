package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitScaffold(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir, false))

	assert.FileExists(t, filepath.Join(dir, DefaultFileName))
	assert.FileExists(t, filepath.Join(dir, "docs", "index.md"))
	assert.FileExists(t, filepath.Join(dir, "docs", "guide.md"))

	// The scaffold must load cleanly through the normal path.
	cfg, err := Load(filepath.Join(dir, DefaultFileName))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.SiteTitle)
	assert.Equal(t, "index.md", cfg.HomeMD)
	assert.Equal(t, "docs", cfg.ContentDir)
	require.Len(t, cfg.Nav, 1)
	assert.Equal(t, "guide.md", cfg.Nav[0].Key)
}

func TestInitRefusesExistingConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir, false))

	err := Init(dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Init(dir, true))
}

func TestInitKeepsExistingContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	custom := []byte("# My Existing Home\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "index.md"), custom, 0o644))

	require.NoError(t, Init(dir, false))

	got, err := os.ReadFile(filepath.Join(dir, "docs", "index.md"))
	require.NoError(t, err)
	assert.Equal(t, custom, got)
}

func TestDeriveSiteTitle(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"/srv/widget-factory", "Widget Factory"},
		{"/srv/my_project", "My Project"},
		{"/srv/docs", "Docs"},
		{"/", "Documentation"},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveSiteTitle(tt.dir))
		})
	}
}
