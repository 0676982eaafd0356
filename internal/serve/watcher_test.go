package serve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdsite/internal/build"
	"git.home.luguber.info/inful/mdsite/internal/config"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func testConfig() *config.Config {
	return &config.Config{
		SiteTitle:   "Test Site",
		HomeMD:      "index.md",
		Nav:         []config.NavEntry{{Key: "index.md", Title: "Home"}},
		ContentDir:  ".",
		OutputDir:   "public",
		ExcludeDirs: []string{"drafts"},
		Serve:       config.ServeConfig{Addr: ":0"},
	}
}

func newTestServer(t *testing.T, dir string, cfg *config.Config) *Server {
	t.Helper()
	factory := func(c *config.Config, configPath string) (*build.Builder, error) {
		return build.New(c, configPath)
	}
	srv, err := New(cfg, filepath.Join(dir, "mdsite.yaml"), factory)
	require.NoError(t, err)
	return srv
}

func TestUnderRoot(t *testing.T) {
	root := filepath.Join("/srv", "site")

	assert.True(t, underRoot(root, root))
	assert.True(t, underRoot(filepath.Join(root, "docs"), root))
	assert.True(t, underRoot(filepath.Join(root, "docs", "a.md"), root))

	assert.False(t, underRoot(filepath.Join("/srv", "other"), root))
	assert.False(t, underRoot("/srv", root))
	// Sibling sharing the root as a name prefix.
	assert.False(t, underRoot(filepath.Join("/srv", "site_stage"), root))
}

func TestShouldIgnore(t *testing.T) {
	dir := t.TempDir()
	srv := newTestServer(t, dir, testConfig())

	ignored := []string{
		filepath.Join(dir, "public", "index.html"),
		filepath.Join(dir, "public_stage", "index.html"),
		filepath.Join(dir, "public.prev", "index.html"),
		filepath.Join(dir, ".git"),
		filepath.Join(dir, ".hidden.md"),
		filepath.Join(dir, "node_modules"),
		filepath.Join(dir, "drafts"),
		filepath.Join(dir, "notes.md.swp"),
		filepath.Join(dir, "notes.md~"),
		filepath.Join(dir, "#buffer#"),
		filepath.Join(dir, "Thumbs.db"),
		filepath.Join(t.TempDir(), "outside.md"),
	}
	for _, p := range ignored {
		assert.True(t, srv.shouldIgnore(p), p)
	}

	watched := []string{
		filepath.Join(dir, "index.md"),
		filepath.Join(dir, "docs", "guide.md"),
		filepath.Join(dir, "img", "logo.png"),
	}
	for _, p := range watched {
		assert.False(t, srv.shouldIgnore(p), p)
	}
}

func TestHandleEventTriggers(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"index.md": "# Home\n"})
	srv := newTestServer(t, dir, testConfig())

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	triggered := 0
	trigger := func() { triggered++ }

	srv.handleEvent(watcher, fsnotify.Event{
		Name: filepath.Join(dir, "index.md"),
		Op:   fsnotify.Write,
	}, trigger)
	assert.Equal(t, 1, triggered)
	assert.False(t, srv.configDirty.Load())

	srv.handleEvent(watcher, fsnotify.Event{
		Name: filepath.Join(dir, "index.md"),
		Op:   fsnotify.Remove,
	}, trigger)
	assert.Equal(t, 2, triggered)
}

func TestHandleEventConfigChange(t *testing.T) {
	dir := t.TempDir()
	srv := newTestServer(t, dir, testConfig())

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	triggered := 0
	trigger := func() { triggered++ }

	srv.handleEvent(watcher, fsnotify.Event{Name: srv.configPath, Op: fsnotify.Write}, trigger)
	assert.Equal(t, 1, triggered)
	assert.True(t, srv.configDirty.Load())

	// Removal of the config file alone never triggers a rebuild.
	srv.configDirty.Store(false)
	srv.handleEvent(watcher, fsnotify.Event{Name: srv.configPath, Op: fsnotify.Remove}, trigger)
	assert.Equal(t, 1, triggered)
	assert.False(t, srv.configDirty.Load())
}

func TestHandleEventIgnoresOutputTree(t *testing.T) {
	dir := t.TempDir()
	srv := newTestServer(t, dir, testConfig())

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	triggered := 0
	trigger := func() { triggered++ }

	for _, name := range []string{
		filepath.Join(dir, "public", "index.html"),
		filepath.Join(dir, "public_stage", "index.html"),
		filepath.Join(dir, "index.md.swp"),
	} {
		srv.handleEvent(watcher, fsnotify.Event{Name: name, Op: fsnotify.Create}, trigger)
	}
	assert.Zero(t, triggered)
}

func TestAddDirsRecursiveSkipsExcluded(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"index.md":            "# Home\n",
		"docs/guide.md":       "# Guide\n",
		"docs/sub/deep.md":    "# Deep\n",
		"drafts/wip.md":       "# WIP\n",
		"node_modules/x.js":   "x",
		".git/HEAD":           "ref",
		"public/index.html":   "old",
		"public_stage/x.html": "stale",
	})
	srv := newTestServer(t, dir, testConfig())

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	require.NoError(t, srv.addDirsRecursive(watcher, srv.contentRoot))

	got := watcher.WatchList()
	assert.Contains(t, got, dir)
	assert.Contains(t, got, filepath.Join(dir, "docs"))
	assert.Contains(t, got, filepath.Join(dir, "docs", "sub"))

	for _, skipped := range []string{"drafts", "node_modules", ".git", "public", "public_stage"} {
		assert.NotContains(t, got, filepath.Join(dir, skipped), skipped)
	}
}
