package serve

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// rebuildDebounce collapses bursts of filesystem events (an editor save
// often produces several) into a single rebuild request.
const rebuildDebounce = 300 * time.Millisecond

// debouncedTrigger returns a function that requests a rebuild after a quiet
// period. The request channel holds one pending request, so triggers that
// arrive while a build is running coalesce into one trailing rebuild.
func (s *Server) debouncedTrigger() func() {
	var mu sync.Mutex
	var timer *time.Timer

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(rebuildDebounce, func() {
			select {
			case s.rebuildReq <- struct{}{}:
			default:
			}
		})
	}
}

// rebuildWorker processes rebuild requests one at a time until ctx is
// canceled.
func (s *Server) rebuildWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-s.rebuildReq:
			if !ok {
				return
			}
			s.processRebuild(ctx)
		}
	}
}

// processRebuild reloads the configuration if it changed, then runs a full
// build. A failure leaves the previous output serving.
func (s *Server) processRebuild(ctx context.Context) {
	if s.configDirty.Swap(false) {
		s.reloadConfig()
	}

	slog.Info("Change detected; rebuilding site")
	if _, err := s.currentBuilder().Run(ctx); err != nil {
		slog.Warn("Rebuild failed; previous output still serving", logfields.Error(err))
	}
}

// reloadConfig loads the configuration file again and swaps in a fresh
// builder. Any failure keeps the previous configuration running.
func (s *Server) reloadConfig() {
	slog.Info("Reloading configuration", logfields.Path(s.configPath))

	cfg, err := config.Load(s.configPath)
	if err != nil {
		slog.Warn("Config reload failed; keeping previous configuration", logfields.Error(err))
		return
	}
	b, err := s.newBuilder(cfg, s.configPath)
	if err != nil {
		slog.Warn("Config reload failed; keeping previous configuration", logfields.Error(err))
		return
	}

	s.mu.Lock()
	old := s.cfg
	s.cfg = cfg
	s.builder = b
	s.mu.Unlock()

	if cfg.Serve != old.Serve {
		slog.Warn("Changed serve settings take effect on restart")
	}
	if cfg.ContentDir != old.ContentDir {
		slog.Warn("Changed content_dir is not watched until restart")
	}
	slog.Info("Configuration reloaded")
}
