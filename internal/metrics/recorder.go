// Package metrics provides optional build observability through a Recorder
// interface. Components receive a Recorder by injection; the default
// NoopRecorder makes metrics collection free when nothing is configured,
// and PrometheusRecorder forwards to Prometheus instruments for serve mode.
package metrics

import "time"

// OutcomeLabel enumerates final build outcomes for counters.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for build metrics. Implementations
// must tolerate nil receivers so injection stays optional.
type Recorder interface {
	ObserveBuildDuration(outcome OutcomeLabel, d time.Duration)
	ObserveStageDuration(stage string, d time.Duration)
	IncBuildOutcome(outcome OutcomeLabel)
	AddPagesRendered(n int)
	AddAssetsCopied(n int)
}

// NoopRecorder is the default Recorder; it does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(OutcomeLabel, time.Duration) {}
func (NoopRecorder) ObserveStageDuration(string, time.Duration)       {}
func (NoopRecorder) IncBuildOutcome(OutcomeLabel)                     {}
func (NoopRecorder) AddPagesRendered(int)                             {}
func (NoopRecorder) AddAssetsCopied(int)                              {}
