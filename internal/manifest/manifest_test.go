// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "ledger", "odcsv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	started := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	first, err := store.Record(ctx, Run{
		Input:      "q1.ods",
		OutputDir:  "out",
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Outputs:    []string{"out/Revenue.csv", "out/Costs.csv"},
	})
	require.NoError(t, err)
	assert.Positive(t, first)

	second, err := store.Record(ctx, Run{
		Input:      "broken.xlsx",
		OutputDir:  "out",
		StartedAt:  started.Add(time.Minute),
		FinishedAt: started.Add(time.Minute + time.Second),
		Error:      "office server rejected loadComponentFromURL: error code 2074",
	})
	require.NoError(t, err)
	assert.Greater(t, second, first)

	runs, err := store.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "broken.xlsx", runs[0].Input)
	assert.Contains(t, runs[0].Error, "2074")
	assert.Empty(t, runs[0].Outputs)
	assert.Equal(t, 0, runs[0].SheetCount)

	assert.Equal(t, "q1.ods", runs[1].Input)
	assert.Equal(t, 2, runs[1].SheetCount)
	assert.Equal(t, []string{"out/Revenue.csv", "out/Costs.csv"}, runs[1].Outputs)
	assert.True(t, runs[1].StartedAt.Equal(started))
	assert.Empty(t, runs[1].Error)
}

func TestRunsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Record(ctx, Run{
			Input:      "book.ods",
			OutputDir:  "out",
			StartedAt:  time.Now(),
			FinishedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	runs, err := store.Runs(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	// Non-positive limit falls back to the default.
	runs, err = store.Runs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 5)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odcsv.db")

	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.Record(context.Background(), Run{
		Input: "a.ods", OutputDir: "out",
		StartedAt: time.Now(), FinishedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening an existing ledger keeps its rows.
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Runs(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
