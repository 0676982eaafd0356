// Package serve runs the local preview server: one initial build, a static
// file server over the output root, and filesystem watching that turns
// content or configuration changes into debounced full rebuilds. A failed
// rebuild is logged and the previous output keeps serving.
package serve

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdsite/internal/build"
	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/metrics"
)

// BuilderFactory constructs a Builder for a loaded configuration. The server
// calls it once at startup and again after every configuration reload, so
// the factory must be safe to invoke repeatedly.
type BuilderFactory func(cfg *config.Config, configPath string) (*build.Builder, error)

// Server serves the generated site and rebuilds it when sources change.
type Server struct {
	configPath  string
	contentRoot string
	addr        string
	newBuilder  BuilderFactory
	registry    *prom.Registry

	mu      sync.RWMutex // guards cfg and builder across config reloads
	cfg     *config.Config
	builder *build.Builder

	rebuildReq  chan struct{}
	configDirty atomic.Bool
}

// New creates a Server for the configuration loaded from configPath. The
// path is resolved to an absolute one so watcher events compare cleanly.
func New(cfg *config.Config, configPath string, factory BuilderFactory) (*Server, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	b, err := factory(cfg, absPath)
	if err != nil {
		return nil, err
	}
	return &Server{
		configPath:  absPath,
		contentRoot: b.ContentRoot(),
		addr:        cfg.Serve.Addr,
		newBuilder:  factory,
		cfg:         cfg,
		builder:     b,
		rebuildReq:  make(chan struct{}, 1),
	}, nil
}

// SetAddr overrides the listen address. Returns the server for chaining.
func (s *Server) SetAddr(addr string) *Server {
	if addr != "" {
		s.addr = addr
	}
	return s
}

// SetRegistry injects the Prometheus registry backing /metrics. The endpoint
// is registered only when serve.metrics is enabled in the configuration.
func (s *Server) SetRegistry(reg *prom.Registry) *Server {
	s.registry = reg
	return s
}

// Run builds the site once and serves it until ctx is canceled. An initial
// build failure is logged, not fatal: the server may still have a previous
// output tree to serve while the operator fixes the content.
func (s *Server) Run(ctx context.Context) error {
	if _, err := s.currentBuilder().Run(ctx); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	watcher, err := s.setupWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	trigger := s.debouncedTrigger()
	go s.rebuildWorker(ctx)

	var scheduler gocron.Scheduler
	if interval, ok := s.currentConfig().RebuildInterval(); ok {
		scheduler, err = startScheduler(interval, trigger)
		if err != nil {
			return errors.ServeError("failed to schedule periodic rebuilds", err)
		}
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		if scheduler != nil {
			_ = scheduler.Shutdown()
		}
		return errors.ServeError("failed to listen on "+s.addr, err)
	}
	httpServer := s.startHTTP(ln)
	slog.Info("Preview server listening",
		logfields.Addr(s.addr),
		slog.String("url", listenURL(s.addr)))

	return s.eventLoop(ctx, watcher, trigger, httpServer, scheduler)
}

// startHTTP serves the output root on ln. The root is resolved per request
// so an output directory change after a config reload takes effect without
// a restart.
func (s *Server) startHTTP(ln net.Listener) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.FileServer(http.Dir(s.outputRoot())).ServeHTTP(w, r)
	}))

	if s.currentConfig().Serve.Metrics && s.registry != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(s.registry))
		slog.Info("Metrics endpoint registered", logfields.Path("/metrics"))
	}

	srv := &http.Server{
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("Preview server error", logfields.Error(err))
		}
	}()
	return srv
}

// eventLoop dispatches filesystem events until ctx is canceled, then shuts
// everything down.
func (s *Server) eventLoop(ctx context.Context, watcher *fsnotify.Watcher, trigger func(), httpServer *http.Server, scheduler gocron.Scheduler) error {
	for {
		select {
		case <-ctx.Done():
			return s.shutdown(httpServer, scheduler)
		case ev, ok := <-watcher.Events:
			if !ok {
				return s.shutdown(httpServer, scheduler)
			}
			s.handleEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return s.shutdown(httpServer, scheduler)
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// shutdown stops the scheduler and HTTP server. The rebuild worker exits on
// its own when the run context is canceled.
func (s *Server) shutdown(httpServer *http.Server, scheduler gocron.Scheduler) error {
	slog.Info("Shutting down preview server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			slog.Warn("Scheduler shutdown error", logfields.Error(err))
		}
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return nil
}

func (s *Server) currentBuilder() *build.Builder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builder
}

func (s *Server) currentConfig() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Server) outputRoot() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builder.OutputRoot()
}

// listenURL renders addr as a browsable URL for the startup log line.
func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
