package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/site"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `site_title: Project Docs
home_md: index.md
nav:
  - guide.md
`

func TestLoadMinimal(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "Project Docs", cfg.SiteTitle)
	assert.Equal(t, "index.md", cfg.HomeMD)
	require.Len(t, cfg.Nav, 1)
	assert.Equal(t, "guide.md", cfg.Nav[0].Key)
	assert.Empty(t, cfg.Nav[0].Title)

	assert.Equal(t, DefaultContentDir, cfg.ContentDir)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultServeAddr, cfg.Serve.Addr)
	assert.True(t, cfg.EditLinksEnabled())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfig))
}

func TestLoadRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing site_title", "home_md: index.md\nnav:\n  - guide.md\n"},
		{"missing home_md", "site_title: Docs\nnav:\n  - guide.md\n"},
		{"missing nav", "site_title: Docs\nhome_md: index.md\n"},
		{"empty nav", "site_title: Docs\nhome_md: index.md\nnav: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsCategory(err, errors.CategoryConfig))
		})
	}
}

func TestLoadHomeMDValidation(t *testing.T) {
	tests := []struct {
		name   string
		homeMD string
	}{
		{"not markdown", "readme.txt"},
		{"absolute", "/srv/docs/index.md"},
		{"escapes root", "../index.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "site_title: Docs\nhome_md: " + tt.homeMD + "\nnav:\n  - guide.md\n"
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
			assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
		})
	}
}

func TestLoadNormalizesHomeMD(t *testing.T) {
	cfg, err := Load(writeConfig(t, "site_title: Docs\nhome_md: ./docs//index.md\nnav:\n  - guide.md\n"))
	require.NoError(t, err)

	assert.Equal(t, "docs/index.md", cfg.HomeMD)
}

func TestLoadNavForms(t *testing.T) {
	content := `site_title: Docs
home_md: index.md
nav:
  - guide.md
  - reference: API Reference
  - https://example.com/repo: Source
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)

	require.Len(t, cfg.Nav, 3)
	assert.Equal(t, NavEntry{Key: "guide.md"}, cfg.Nav[0])
	assert.Equal(t, NavEntry{Key: "reference", Title: "API Reference"}, cfg.Nav[1])
	assert.Equal(t, NavEntry{Key: "https://example.com/repo", Title: "Source"}, cfg.Nav[2])

	specs := cfg.NavSpecs()
	require.Len(t, specs, 3)
	assert.Equal(t, site.NavSpec{Key: "reference", Title: "API Reference"}, specs[1])
}

func TestLoadEnvExpansion(t *testing.T) {
	t.Setenv("MDSITE_TEST_TITLE", "From Env")

	cfg, err := Load(writeConfig(t, "site_title: ${MDSITE_TEST_TITLE}\nhome_md: index.md\nnav:\n  - guide.md\n"))
	require.NoError(t, err)

	assert.Equal(t, "From Env", cfg.SiteTitle)
}

func TestLoadDotEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MDSITE_TEST_DOTENV=Dot Env Title\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName),
		[]byte("site_title: ${MDSITE_TEST_DOTENV}\nhome_md: index.md\nnav:\n  - guide.md\n"), 0o644))

	oldCwd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(oldCwd) }()
	require.NoError(t, os.Chdir(dir))

	cfg, err := Load(DefaultFileName)
	require.NoError(t, err)

	assert.Equal(t, "Dot Env Title", cfg.SiteTitle)
}

func TestLoadRebuildEvery(t *testing.T) {
	base := "site_title: Docs\nhome_md: index.md\nnav:\n  - guide.md\nserve:\n  rebuild_every: "

	cfg, err := Load(writeConfig(t, base+"90s\n"))
	require.NoError(t, err)
	d, ok := cfg.RebuildInterval()
	assert.True(t, ok)
	assert.Equal(t, 90*time.Second, d)

	_, err = Load(writeConfig(t, base+"sometimes\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))

	_, err = Load(writeConfig(t, base+"500ms\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}

func TestRebuildIntervalUnset(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	_, ok := cfg.RebuildInterval()
	assert.False(t, ok)
}

func TestLoadEditLinksDisabled(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+"edit_links: false\n"))
	require.NoError(t, err)

	assert.False(t, cfg.EditLinksEnabled())
}

func TestLoadEventsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+"events:\n  url: nats://localhost:4222\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultEventSubject, cfg.Events.Subject)
	assert.Equal(t, DefaultEventStream, cfg.Events.Stream)

	cfg, err = Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)
	assert.Empty(t, cfg.Events.Subject)
}

func TestRootResolution(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+"content_dir: docs\noutput_dir: build/site\n"))
	require.NoError(t, err)

	configPath := filepath.Join("/srv/project", DefaultFileName)
	assert.Equal(t, filepath.Join("/srv/project", "docs"), cfg.ContentRoot(configPath))
	assert.Equal(t, filepath.Join("/srv/project", "build", "site"), cfg.OutputRoot(configPath))

	cfg.OutputDir = "/var/www/site"
	assert.Equal(t, "/var/www/site", cfg.OutputRoot(configPath))
}
