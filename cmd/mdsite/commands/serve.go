package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdsite/internal/build"
	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/events"
	"git.home.luguber.info/inful/mdsite/internal/history"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/metrics"
	"git.home.luguber.info/inful/mdsite/internal/serve"
)

// ServeCmd implements the 'serve' command: build once, serve the output over
// HTTP, and rebuild whenever the content tree or config file changes.
type ServeCmd struct {
	Addr string `help:"Listen address, overriding serve.addr from the config"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	var registry *prom.Registry
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Serve.Metrics {
		registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	// History and events outlive any single builder so that config reloads
	// during a serve session keep appending to the same store and stream.
	var store *history.Store
	if p := cfg.HistoryPath(root.Config); p != "" {
		store, err = history.Open(p)
		if err != nil {
			slog.Warn("Build history disabled", logfields.Error(err))
			store = nil
		} else {
			defer store.Close()
		}
	}

	var publisher *events.NATSPublisher
	if cfg.Events.URL != "" {
		publisher, err = events.NewNATSPublisher(cfg.Events)
		if err != nil {
			slog.Warn("Event publication disabled", logfields.Error(err))
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	factory := func(c *config.Config, configPath string) (*build.Builder, error) {
		b, err := build.New(c, configPath)
		if err != nil {
			return nil, err
		}
		b.SetRecorder(recorder)
		if store != nil {
			b.SetHistory(store)
		}
		if publisher != nil {
			b.SetPublisher(publisher)
		}
		return b, nil
	}

	srv, err := serve.New(cfg, root.Config, factory)
	if err != nil {
		return err
	}
	srv.SetAddr(s.Addr).SetRegistry(registry)
	return srv.Run(ctx)
}
