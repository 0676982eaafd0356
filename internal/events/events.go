// Package events publishes build lifecycle events to NATS JetStream.
// Downstream consumers (dashboards, notification bots) subscribe to the
// configured subject; the site builder itself never depends on delivery.
package events

import (
	"context"
	"time"
)

// BuildEvent describes a completed build.
type BuildEvent struct {
	BuildID    string    `json:"build_id"`
	Outcome    string    `json:"outcome"`
	Started    time.Time `json:"started"`
	Finished   time.Time `json:"finished"`
	DurationMS int64     `json:"duration_ms"`
	Pages      int       `json:"pages"`
	Assets     int       `json:"assets"`
	OutputDir  string    `json:"output_dir"`
	Commit     string    `json:"commit,omitempty"`
	Branch     string    `json:"branch,omitempty"`
	Error      string    `json:"error,omitempty"`

	// Timestamp is set by the publisher at publish time.
	Timestamp time.Time `json:"timestamp"`
}

// Publisher delivers build events. Implementations must tolerate being
// called after a failed build; publish errors are reported to the caller
// but never fail a build.
type Publisher interface {
	PublishBuildCompleted(ctx context.Context, event *BuildEvent) error
	Close() error
}

// NoopPublisher discards all events. Used when no event URL is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishBuildCompleted(context.Context, *BuildEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
