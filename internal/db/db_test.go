// ABOUTME: Tests for the SQLite history store.
// ABOUTME: Covers run logging, ordering, and since/search filters.
package db

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
	store, err := Open(filepath.Join(t.TempDir(), "data", "gitpush.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func intPtr(v int) *int { return &v }

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestLogAndQueryRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.LogRun(ctx, RunRecord{
		RunID: "a", Tool: "git", Remote: "origin", Branch: "main",
		ExitCode: intPtr(0), Stderr: "Everything up-to-date\n",
		StartedAt: base, DurationMS: 42,
	}))
	require.NoError(t, store.LogRun(ctx, RunRecord{
		RunID: "b", Tool: "git", Remote: "origin", Branch: "main",
		LaunchError: "launching git: executable file not found in $PATH",
		StartedAt:   base.Add(time.Hour),
	}))

	runs, err := store.QueryRuns(ctx, 10, nil, "")
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "b", runs[0].RunID, "newest first")
	assert.Nil(t, runs[0].ExitCode)
	assert.False(t, runs[0].Succeeded())

	assert.Equal(t, "a", runs[1].RunID)
	require.NotNil(t, runs[1].ExitCode)
	assert.True(t, runs[1].Succeeded())
	assert.Equal(t, int64(42), runs[1].DurationMS)
	assert.True(t, base.Equal(runs[1].StartedAt))
}

func TestQueryRunsFilters(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, stderr := range []string{"rejected", "Everything up-to-date", "remote: denied"} {
		require.NoError(t, store.LogRun(ctx, RunRecord{
			RunID: string(rune('a' + i)), Tool: "git", Remote: "origin", Branch: "main",
			ExitCode: intPtr(i), Stderr: stderr,
			StartedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		}))
	}

	since := base.Add(36 * time.Hour)
	runs, err := store.QueryRuns(ctx, 10, &since, "")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "c", runs[0].RunID)

	runs, err = store.QueryRuns(ctx, 10, nil, "up-to-date")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "b", runs[0].RunID)

	runs, err = store.QueryRuns(ctx, 1, nil, "")
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestLogRunRequiresRunID(t *testing.T) {
	store := openTestStore(t)
	err := store.LogRun(context.Background(), RunRecord{Tool: "git"})
	assert.Error(t, err)
}

func TestNilStore(t *testing.T) {
	var store *Store
	assert.NoError(t, store.Close())
	assert.Error(t, store.LogRun(context.Background(), RunRecord{RunID: "x"}))
	_, err := store.QueryRuns(context.Background(), 1, nil, "")
	assert.Error(t, err)
}
