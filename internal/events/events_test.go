package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdsite/internal/config"
)

func TestNoopPublisherSatisfiesPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.PublishBuildCompleted(context.Background(), &BuildEvent{}))
	assert.NoError(t, p.Close())
}

func TestBuildEventJSON(t *testing.T) {
	event := BuildEvent{
		BuildID:    "b-123",
		Outcome:    "success",
		Started:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Finished:   time.Date(2026, 3, 1, 12, 0, 4, 0, time.UTC),
		DurationMS: 4000,
		Pages:      12,
		Assets:     3,
		OutputDir:  "public",
		Commit:     "abcdef12",
		Branch:     "main",
		Timestamp:  time.Date(2026, 3, 1, 12, 0, 4, 0, time.UTC),
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "b-123", decoded["build_id"])
	assert.Equal(t, "success", decoded["outcome"])
	assert.Equal(t, float64(4000), decoded["duration_ms"])
	assert.Equal(t, float64(12), decoded["pages"])
	assert.Equal(t, "public", decoded["output_dir"])
	assert.Equal(t, "main", decoded["branch"])

	// Empty optional fields stay off the wire.
	assert.NotContains(t, decoded, "error")
}

func TestNewNATSPublisherRequiresURL(t *testing.T) {
	_, err := NewNATSPublisher(config.EventsConfig{Subject: "mdsite.builds", Stream: "MDSITE"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URL is required")
}
