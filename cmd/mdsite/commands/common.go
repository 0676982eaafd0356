package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdsite/internal/build"
	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/events"
	"git.home.luguber.info/inful/mdsite/internal/history"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"mdsite.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Build the site from the content tree"`
	Init     InitCmd     `cmd:"" help:"Scaffold a starter configuration and content tree"`
	Discover DiscoverCmd `cmd:"" help:"List discovered files and their output locations without building"`
	Serve    ServeCmd    `cmd:"" help:"Serve the site locally and rebuild on changes"`
	History  HistoryCmd  `cmd:"" help:"List recent builds from the history database"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// wireBuilder attaches the optional history store and event publisher to
// builder according to cfg. Either one failing to open disables that feature
// with a warning instead of failing the build. The returned func closes
// whatever was opened.
func wireBuilder(builder *build.Builder, cfg *config.Config, configPath string) func() {
	var closers []func()

	if p := cfg.HistoryPath(configPath); p != "" {
		store, err := history.Open(p)
		if err != nil {
			slog.Warn("Build history disabled", logfields.Error(err))
		} else {
			builder.SetHistory(store)
			closers = append(closers, func() { _ = store.Close() })
		}
	}

	if cfg.Events.URL != "" {
		pub, err := events.NewNATSPublisher(cfg.Events)
		if err != nil {
			slog.Warn("Event publication disabled", logfields.Error(err))
		} else {
			builder.SetPublisher(pub)
			closers = append(closers, func() { _ = pub.Close() })
		}
	}

	return func() {
		for _, c := range closers {
			c()
		}
	}
}
