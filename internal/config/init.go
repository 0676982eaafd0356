package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

const sampleHome = `# Welcome

This site is built with mdsite. Start with the [guide](guide.md).
`

const sampleGuide = `# Guide

## Writing pages

Pages are plain Markdown files. Cross-reference them with relative links,
for example back to the [home page](index.md). Links to Markdown files are
rewritten to the published page URLs at build time.
`

// Init scaffolds a starter configuration and content tree in dir: an
// mdsite.yaml, a docs/ content root, a home document and one guide page.
//
// An existing mdsite.yaml is an error unless force is set. Existing content
// files are kept as they are unless force is set.
func Init(dir string, force bool) error {
	configPath := filepath.Join(dir, DefaultFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	cfg := Config{
		SiteTitle:  deriveSiteTitle(dir),
		HomeMD:     "index.md",
		ContentDir: "docs",
		Nav: []NavEntry{
			{Key: "guide.md", Title: "Guide"},
		},
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	slog.Info("Wrote configuration", logfields.Path(configPath))

	contentDir := filepath.Join(dir, cfg.ContentDir)
	if err := os.MkdirAll(contentDir, 0o755); err != nil {
		return fmt.Errorf("failed to create content directory: %w", err)
	}

	samples := map[string]string{
		filepath.Join(contentDir, "index.md"): sampleHome,
		filepath.Join(contentDir, "guide.md"): sampleGuide,
	}
	for p, content := range samples {
		if _, err := os.Stat(p); err == nil && !force {
			slog.Debug("Keeping existing file", logfields.Path(p))
			continue
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write sample page: %w", err)
		}
		slog.Info("Wrote sample page", logfields.Path(p))
	}
	return nil
}

// deriveSiteTitle turns the directory name into a human-readable site
// title, e.g. "widget-factory" becomes "Widget Factory".
func deriveSiteTitle(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "Documentation"
	}
	base := filepath.Base(abs)
	if base == "." || base == "/" || base == string(filepath.Separator) {
		return "Documentation"
	}
	words := strings.NewReplacer("-", " ", "_", " ").Replace(base)
	title := strings.TrimSpace(cases.Title(language.English).String(words))
	if title == "" {
		return "Documentation"
	}
	return title
}
