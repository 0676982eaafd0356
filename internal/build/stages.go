package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, st *State) error

// StageName is a strongly-typed identifier for a build stage. All canonical
// stages are declared as constants here for compile-time safety.
type StageName string

// Canonical stage names.
const (
	StagePrepare     StageName = "prepare"
	StageDiscover    StageName = "discover"
	StageNavigation  StageName = "navigation"
	StageRenderPages StageName = "render_pages"
	StageCopyAssets  StageName = "copy_assets"
	StageStylesheet  StageName = "stylesheet"
	StageFinalize    StageName = "finalize"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// Pipeline is a fluent builder for ordered stage definitions.
type Pipeline struct{ Defs []StageDef }

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline { return &Pipeline{Defs: make([]StageDef, 0, 8)} }

// Add appends a stage.
func (p *Pipeline) Add(name StageName, fn Stage) *Pipeline {
	p.Defs = append(p.Defs, StageDef{Name: name, Fn: fn})
	return p
}

// Build returns a defensive copy of the stage definitions slice.
func (p *Pipeline) Build() []StageDef {
	out := make([]StageDef, len(p.Defs))
	copy(out, p.Defs)
	return out
}

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageResult enumerates per-stage classification outcomes as recorded in
// the build report.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultWarning  StageResult = "warning"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

func resultForKind(kind StageErrorKind) StageResult {
	switch kind {
	case StageErrorWarning:
		return StageResultWarning
	case StageErrorCanceled:
		return StageResultCanceled
	default:
		return StageResultFatal
	}
}

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// runStages executes stages in order, recording timing and stopping on first
// fatal error. Warning-classified stage errors are recorded and execution
// continues; cancellation between or inside stages aborts with a canceled
// classification.
func runStages(ctx context.Context, st *State, stages []StageDef) error {
	for _, def := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(def.Name, ctx.Err())
			st.Report.recordStageError(se)
			return se
		default:
		}

		t0 := time.Now()
		err := def.Fn(ctx, st)
		dur := time.Since(t0)
		st.Report.StageDurations[string(def.Name)] = dur
		st.recorder.ObserveStageDuration(string(def.Name), dur)
		slog.Debug("Stage completed",
			logfields.Stage(string(def.Name)),
			logfields.DurationMS(float64(dur.Milliseconds())))

		if err == nil {
			st.Report.StageResults[string(def.Name)] = StageResultSuccess
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			// Unclassified errors abort by default.
			se = newFatalStageError(def.Name, err)
		}
		if se.Kind == StageErrorFatal && errors.Is(se.Err, context.Canceled) {
			se = newCanceledStageError(def.Name, se.Err)
		}
		st.Report.recordStageError(se)
		if se.Kind == StageErrorWarning {
			continue
		}
		return se
	}
	return nil
}
