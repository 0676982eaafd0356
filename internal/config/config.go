// Package config loads and validates the site configuration file.
//
// Configuration values may reference environment variables using $VAR or
// ${VAR} syntax. A .env or .env.local file in the working directory is
// loaded first and never overrides variables already present in the
// environment.
package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/site"
)

// DefaultFileName is the configuration file the CLI looks for when --config
// is not given.
const DefaultFileName = "mdsite.yaml"

// Defaults applied after unmarshaling.
const (
	DefaultContentDir   = "."
	DefaultOutputDir    = "public"
	DefaultServeAddr    = ":8080"
	DefaultEventSubject = "mdsite.builds"
	DefaultEventStream  = "MDSITE"
)

// Config is the site configuration loaded from mdsite.yaml.
type Config struct {
	SiteTitle       string     `yaml:"site_title"`
	SiteDescription string     `yaml:"site_description,omitempty"`
	HomeMD          string     `yaml:"home_md"`
	Nav             []NavEntry `yaml:"nav"`

	ContentDir  string   `yaml:"content_dir,omitempty"`
	OutputDir   string   `yaml:"output_dir,omitempty"`
	ExcludeDirs []string `yaml:"exclude_dirs,omitempty"`
	EditLinks   *bool    `yaml:"edit_links,omitempty"`
	HistoryDB   string   `yaml:"history_db,omitempty"`

	Serve  ServeConfig  `yaml:"serve,omitempty"`
	Events EventsConfig `yaml:"events,omitempty"`
}

// ServeConfig configures the local preview server.
type ServeConfig struct {
	Addr         string `yaml:"addr,omitempty"`
	RebuildEvery string `yaml:"rebuild_every,omitempty"`
	Metrics      bool   `yaml:"metrics,omitempty"`
}

// EventsConfig configures NATS build event publication. Publication is
// disabled while URL is empty.
type EventsConfig struct {
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
	Stream  string `yaml:"stream,omitempty"`
}

// Load reads, expands and validates the configuration at configPath.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to parse config file").
			WithContext("path", configPath)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ContentDir == "" {
		c.ContentDir = DefaultContentDir
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.HomeMD != "" {
		c.HomeMD = path.Clean(filepath.ToSlash(c.HomeMD))
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultServeAddr
	}
	if c.Events.URL != "" {
		if c.Events.Subject == "" {
			c.Events.Subject = DefaultEventSubject
		}
		if c.Events.Stream == "" {
			c.Events.Stream = DefaultEventStream
		}
	}
}

// Validate checks required fields and value consistency. Defaults are
// expected to have been applied.
func (c *Config) Validate() error {
	if c.SiteTitle == "" {
		return errors.ConfigRequired("site_title")
	}
	if c.HomeMD == "" {
		return errors.ConfigRequired("home_md")
	}
	if len(c.Nav) == 0 {
		return errors.ConfigRequired("nav")
	}

	if !site.IsMarkdown(c.HomeMD) {
		return errors.ValidationFailed("home_md", "must point to a Markdown file")
	}
	if path.IsAbs(c.HomeMD) || strings.HasPrefix(c.HomeMD, "../") {
		return errors.ValidationFailed("home_md", "must be relative to the content root")
	}

	for i, entry := range c.Nav {
		if entry.Key == "" {
			return errors.ValidationFailed(fmt.Sprintf("nav[%d]", i), "entry key must not be empty")
		}
	}

	if c.Serve.RebuildEvery != "" {
		d, err := time.ParseDuration(c.Serve.RebuildEvery)
		if err != nil {
			return errors.ValidationFailed("serve.rebuild_every", "not a valid duration: "+c.Serve.RebuildEvery)
		}
		if d < time.Second {
			return errors.ValidationFailed("serve.rebuild_every", "must be at least 1s")
		}
	}
	return nil
}

// EditLinksEnabled reports whether pages should carry "edit this page"
// links when git metadata is available. Enabled unless set to false.
func (c *Config) EditLinksEnabled() bool {
	return c.EditLinks == nil || *c.EditLinks
}

// RebuildInterval returns the parsed serve.rebuild_every interval. ok is
// false when no interval is configured.
func (c *Config) RebuildInterval() (time.Duration, bool) {
	if c.Serve.RebuildEvery == "" {
		return 0, false
	}
	d, err := time.ParseDuration(c.Serve.RebuildEvery)
	if err != nil {
		return 0, false
	}
	return d, true
}

// NavSpecs converts the nav list into the navigation builder's input form.
func (c *Config) NavSpecs() []site.NavSpec {
	specs := make([]site.NavSpec, 0, len(c.Nav))
	for _, e := range c.Nav {
		specs = append(specs, site.NavSpec{Key: e.Key, Title: e.Title})
	}
	return specs
}

// ContentRoot resolves the content root against the directory containing
// the config file.
func (c *Config) ContentRoot(configPath string) string {
	return resolveAgainst(configPath, c.ContentDir)
}

// OutputRoot resolves the output root against the directory containing the
// config file.
func (c *Config) OutputRoot(configPath string) string {
	return resolveAgainst(configPath, c.OutputDir)
}

// HistoryPath resolves the history database path against the directory
// containing the config file. Empty when history is disabled.
func (c *Config) HistoryPath(configPath string) string {
	if c.HistoryDB == "" {
		return ""
	}
	return resolveAgainst(configPath, c.HistoryDB)
}

func resolveAgainst(configPath, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(filepath.Dir(configPath), dir)
}
