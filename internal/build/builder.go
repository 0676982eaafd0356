// Package build runs the staged site assembly pipeline: discover content,
// resolve navigation, render pages, copy assets, and atomically promote the
// result into the output directory. A build either completes fully or leaves
// the previous output untouched.
package build

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/events"
	"git.home.luguber.info/inful/mdsite/internal/history"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/metrics"
	"git.home.luguber.info/inful/mdsite/internal/render"
	"git.home.luguber.info/inful/mdsite/internal/site"
	"git.home.luguber.info/inful/mdsite/internal/theme"
)

// Builder assembles the site described by a loaded configuration. The
// renderer, sanitizer, recorder, history store and event publisher are all
// injected; defaults are wired in New so a bare Builder is fully usable.
type Builder struct {
	cfg         *config.Config
	configPath  string
	contentRoot string
	outputRoot  string
	stageDir    string

	theme     *theme.Theme
	renderer  render.Renderer
	sanitizer render.Sanitizer
	recorder  metrics.Recorder
	history   *history.Store
	publisher events.Publisher
}

// New creates a Builder for the configuration loaded from configPath.
// Content and output roots resolve against the config file's directory.
func New(cfg *config.Config, configPath string) (*Builder, error) {
	t, err := theme.New()
	if err != nil {
		return nil, errors.InternalError("failed to initialize page theme", err)
	}
	return &Builder{
		cfg:         cfg,
		configPath:  configPath,
		contentRoot: cfg.ContentRoot(configPath),
		outputRoot:  cfg.OutputRoot(configPath),
		theme:       t,
		renderer:    render.NewMarkdownRenderer(),
		sanitizer:   render.NewPolicy(),
		recorder:    metrics.NoopRecorder{},
		publisher:   events.NoopPublisher{},
	}, nil
}

// ContentRoot returns the resolved content root directory.
func (b *Builder) ContentRoot() string { return b.contentRoot }

// OutputRoot returns the resolved output root directory.
func (b *Builder) OutputRoot() string { return b.outputRoot }

// SetOutputRoot overrides the output directory. Returns the builder for
// chaining.
func (b *Builder) SetOutputRoot(dir string) *Builder {
	if dir != "" {
		b.outputRoot = dir
	}
	return b
}

// SetRenderer injects a markdown renderer.
func (b *Builder) SetRenderer(r render.Renderer) *Builder {
	if r != nil {
		b.renderer = r
	}
	return b
}

// SetSanitizer injects an HTML sanitizer.
func (b *Builder) SetSanitizer(s render.Sanitizer) *Builder {
	if s != nil {
		b.sanitizer = s
	}
	return b
}

// SetRecorder injects a metrics recorder (optional).
func (b *Builder) SetRecorder(r metrics.Recorder) *Builder {
	if r == nil {
		b.recorder = metrics.NoopRecorder{}
		return b
	}
	b.recorder = r
	return b
}

// SetHistory injects a build history store (optional).
func (b *Builder) SetHistory(s *history.Store) *Builder {
	b.history = s
	return b
}

// SetPublisher injects a build event publisher (optional).
func (b *Builder) SetPublisher(p events.Publisher) *Builder {
	if p == nil {
		b.publisher = events.NoopPublisher{}
		return b
	}
	b.publisher = p
	return b
}

// Run executes a full build honoring the provided context for cancellation.
// The returned report is non-nil whenever the pipeline started, including
// failed builds.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	slog.Info("Starting site build",
		slog.String("content", b.contentRoot),
		slog.String("output", b.outputRoot))

	if err := b.beginStaging(); err != nil {
		return nil, err
	}

	report := newReport()
	mapper := site.NewMapper(b.cfg.HomeMD)
	st := &State{
		Config:      b.cfg,
		ContentRoot: b.contentRoot,
		OutputRoot:  b.outputRoot,
		StageDir:    b.stageDir,
		Mapper:      mapper,
		Resolver:    site.NewResolver(mapper),
		Theme:       b.theme,
		Renderer:    b.renderer,
		Sanitizer:   b.sanitizer,
		Report:      report,
		recorder:    b.recorder,
		builder:     b,
	}

	stages := NewPipeline().
		Add(StagePrepare, stagePrepare).
		Add(StageDiscover, stageDiscover).
		Add(StageNavigation, stageNavigation).
		Add(StageRenderPages, stageRenderPages).
		Add(StageCopyAssets, stageCopyAssets).
		Add(StageStylesheet, stageStylesheet).
		Add(StageFinalize, stageFinalize).
		Build()

	if err := runStages(ctx, st, stages); err != nil {
		report.deriveOutcome()
		report.finish()
		b.abortStaging()
		b.recordOutcome(report)
		slog.Error("Site build failed",
			logfields.BuildID(report.ID),
			logfields.Outcome(string(report.Outcome)),
			logfields.Error(err))
		return report, err
	}

	report.deriveOutcome()
	report.finish()

	// Best effort; a report that fails to persist never fails the build.
	if err := report.Persist(b.outputRoot); err != nil {
		slog.Warn("Failed to persist build report", "error", err)
	}

	b.recordOutcome(report)

	slog.Info("Site build completed",
		logfields.BuildID(report.ID),
		logfields.Output(b.outputRoot),
		logfields.Pages(report.RenderedPages),
		logfields.Assets(report.CopiedAssets),
		slog.Duration("duration", report.Duration()))
	return report, nil
}

// recordOutcome emits build metrics and records the run in history and on
// the event bus. All failures here are warnings; the build outcome is
// already decided.
func (b *Builder) recordOutcome(report *Report) {
	label := metrics.OutcomeLabel(report.Outcome)
	b.recorder.ObserveBuildDuration(label, report.Duration())
	b.recorder.IncBuildOutcome(label)
	b.recorder.AddPagesRendered(report.RenderedPages)
	b.recorder.AddAssetsCopied(report.CopiedAssets)

	// Fresh context: canceled builds still get recorded.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if b.history != nil {
		entry := history.Entry{
			ID:         report.ID,
			Started:    report.Start,
			Finished:   report.End,
			Outcome:    string(report.Outcome),
			Pages:      report.RenderedPages,
			Assets:     report.CopiedAssets,
			DurationMS: report.Duration().Milliseconds(),
			Commit:     report.Commit,
			Error:      report.FirstError(),
		}
		if err := b.history.Record(ctx, entry); err != nil {
			slog.Warn("Failed to record build history", "error", err)
		}
	}

	event := &events.BuildEvent{
		BuildID:    report.ID,
		Outcome:    string(report.Outcome),
		Started:    report.Start,
		Finished:   report.End,
		DurationMS: report.Duration().Milliseconds(),
		Pages:      report.RenderedPages,
		Assets:     report.CopiedAssets,
		OutputDir:  b.outputRoot,
		Commit:     report.Commit,
		Branch:     report.Branch,
		Error:      report.FirstError(),
	}
	if err := b.publisher.PublishBuildCompleted(ctx, event); err != nil {
		slog.Warn("Failed to publish build event", "error", err)
	}
}
