package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Outcome is the typed enumeration of final build result states.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Report captures metrics and results of a single build run. Stages run
// exactly once, so per-stage classification is a single result rather than
// a counter.
type Report struct {
	SchemaVersion int
	ID            string
	Start         time.Time
	End           time.Time

	Documents  int // markdown documents discovered
	Assets     int // non-markdown files discovered
	NavEntries int // resolved navigation entries

	RenderedPages int // pages written to the output tree
	CopiedAssets  int // assets written to the output tree

	Commit string // HEAD commit of the content tree, when under git
	Branch string

	StageDurations map[string]time.Duration
	StageResults   map[string]StageResult

	Errors   []error // fatal errors causing build abortion (at most one today)
	Warnings []error // non-fatal issues recorded along the way

	Outcome Outcome
}

func newReport() *Report {
	return &Report{
		SchemaVersion:  1,
		ID:             uuid.NewString(),
		Start:          time.Now(),
		StageDurations: make(map[string]time.Duration),
		StageResults:   make(map[string]StageResult),
	}
}

func (r *Report) finish() { r.End = time.Now() }

// Duration returns the wall-clock build time.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// recordStageError files a classified stage error under the matching result
// and severity list.
func (r *Report) recordStageError(se *StageError) {
	r.StageResults[string(se.Stage)] = resultForKind(se.Kind)
	if se.Kind == StageErrorWarning {
		r.Warnings = append(r.Warnings, se)
		return
	}
	r.Errors = append(r.Errors, se)
}

// AddWarning records a non-fatal issue that is not tied to a stage result,
// such as an infrastructure write failing after the build finished.
func (r *Report) AddWarning(err error) {
	r.Warnings = append(r.Warnings, err)
}

// deriveOutcome sets the Outcome field from recorded errors. Warnings never
// change the outcome.
func (r *Report) deriveOutcome() {
	for _, e := range r.Errors {
		if se, ok := e.(*StageError); ok && se.Kind == StageErrorCanceled {
			r.Outcome = OutcomeCanceled
			return
		}
	}
	if len(r.Errors) > 0 {
		r.Outcome = OutcomeFailed
		return
	}
	r.Outcome = OutcomeSuccess
}

// FirstError returns the message of the first fatal error, or "".
func (r *Report) FirstError() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Error()
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("documents=%d assets=%d nav=%d rendered=%d copied=%d duration=%s errors=%d warnings=%d outcome=%s",
		r.Documents, r.Assets, r.NavEntries, r.RenderedPages, r.CopiedAssets,
		r.Duration().Truncate(time.Millisecond), len(r.Errors), len(r.Warnings), r.Outcome)
}

// Persist writes the report into the provided root directory (final output
// dir, not staging). It writes two files:
//
//	build-report.json  (machine readable)
//	build-report.txt   (human summary)
//
// Best effort; errors are returned for caller logging but do not change
// build outcome.
func (r *Report) Persist(root string) error {
	if r.End.IsZero() {
		r.finish()
		r.deriveOutcome()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("ensure root for report: %w", err)
	}

	jb, err := json.MarshalIndent(r.serializable(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	jsonPath := filepath.Join(root, "build-report.json")
	tmpJSON := jsonPath + ".tmp"
	if err := os.WriteFile(tmpJSON, jb, 0o644); err != nil {
		return fmt.Errorf("write temp report json: %w", err)
	}
	if err := os.Rename(tmpJSON, jsonPath); err != nil {
		return fmt.Errorf("atomic rename json: %w", err)
	}

	summaryPath := filepath.Join(root, "build-report.txt")
	tmpTxt := summaryPath + ".tmp"
	if err := os.WriteFile(tmpTxt, []byte(r.Summary()+"\n"), 0o644); err != nil {
		return fmt.Errorf("write temp report summary: %w", err)
	}
	if err := os.Rename(tmpTxt, summaryPath); err != nil {
		return fmt.Errorf("atomic rename summary: %w", err)
	}
	return nil
}

// serializable returns a shallow copy with error fields converted to strings
// for JSON friendliness.
func (r *Report) serializable() *ReportSerializable {
	if r.StageDurations == nil {
		r.StageDurations = map[string]time.Duration{}
	}
	if r.StageResults == nil {
		r.StageResults = map[string]StageResult{}
	}
	s := &ReportSerializable{
		SchemaVersion:  r.SchemaVersion,
		ID:             r.ID,
		Start:          r.Start,
		End:            r.End,
		Documents:      r.Documents,
		Assets:         r.Assets,
		NavEntries:     r.NavEntries,
		RenderedPages:  r.RenderedPages,
		CopiedAssets:   r.CopiedAssets,
		Commit:         r.Commit,
		Branch:         r.Branch,
		StageDurations: r.StageDurations,
		StageResults:   r.StageResults,
		Errors:         make([]string, len(r.Errors)),
		Warnings:       make([]string, len(r.Warnings)),
		Outcome:        string(r.Outcome),
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		s.Warnings[i] = w.Error()
	}
	return s
}

// ReportSerializable mirrors Report but with string errors for JSON output.
type ReportSerializable struct {
	SchemaVersion  int                      `json:"schema_version"`
	ID             string                   `json:"id"`
	Start          time.Time                `json:"start"`
	End            time.Time                `json:"end"`
	Documents      int                      `json:"documents"`
	Assets         int                      `json:"assets"`
	NavEntries     int                      `json:"nav_entries"`
	RenderedPages  int                      `json:"rendered_pages"`
	CopiedAssets   int                      `json:"copied_assets"`
	Commit         string                   `json:"commit,omitempty"`
	Branch         string                   `json:"branch,omitempty"`
	StageDurations map[string]time.Duration `json:"stage_durations"`
	StageResults   map[string]StageResult   `json:"stage_results"`
	Errors         []string                 `json:"errors"`
	Warnings       []string                 `json:"warnings"`
	Outcome        string                   `json:"outcome"`
}
