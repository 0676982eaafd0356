package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(id string, started time.Time) Entry {
	return Entry{
		ID:         id,
		Started:    started,
		Finished:   started.Add(2 * time.Second),
		Outcome:    "success",
		Pages:      10,
		Assets:     2,
		DurationMS: 2000,
		Commit:     "abcdef12",
	}
}

func TestRecordAndRecent(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, entryAt("b1", base)))
	require.NoError(t, store.Record(ctx, entryAt("b2", base.Add(time.Minute))))
	require.NoError(t, store.Record(ctx, entryAt("b3", base.Add(2*time.Minute))))

	entries, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b3", entries[0].ID)
	assert.Equal(t, "b2", entries[1].ID)
}

func TestRecentDefaultLimit(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Now()
	for i := 0; i < DefaultLimit+5; i++ {
		require.NoError(t, store.Record(ctx, entryAt(string(rune('a'+i)), base.Add(time.Duration(i)*time.Second))))
	}

	entries, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, DefaultLimit)
}

func TestRoundTripFields(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	want := Entry{
		ID:         "build-1",
		Started:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Finished:   time.Date(2026, 3, 1, 12, 0, 3, 0, time.UTC),
		Outcome:    "failed",
		Pages:      7,
		Assets:     1,
		DurationMS: 3000,
		Commit:     "1234abcd",
		Error:      "render failed: docs/broken.md",
	}
	require.NoError(t, store.Record(ctx, want))

	entries, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Started.UnixMilli(), got.Started.UnixMilli())
	assert.Equal(t, want.Finished.UnixMilli(), got.Finished.UnixMilli())
	assert.Equal(t, want.Outcome, got.Outcome)
	assert.Equal(t, want.Pages, got.Pages)
	assert.Equal(t, want.Assets, got.Assets)
	assert.Equal(t, want.DurationMS, got.DurationMS)
	assert.Equal(t, want.Commit, got.Commit)
	assert.Equal(t, want.Error, got.Error)
}

func TestPersistsAcrossOpens(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, entryAt("b1", time.Now())))
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b1", entries[0].ID)
}
