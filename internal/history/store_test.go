// SPDX-License-Identifier: MPL-2.0

package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func boxyRun(outcome Outcome) Record {
	return Record{
		PluginName:       "boxy",
		LaunchExpression: "maya_tools.utilities.boxy.boxy_tool.BoxyTool().show()",
		Layout:           "package_module",
		OutputDir:        "/studio/plug-ins",
		FileCount:        8,
		Duration:         1200 * time.Millisecond,
		Outcome:          outcome,
	}
}

func TestOpen_CreatesParentDir(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "nested", "deeper", "history.db")
	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	// Schema must be usable right away.
	_, err = store.Append(boxyRun(OutcomeSucceeded))
	assert.NoError(t, err)
}

func TestAppendAndRecent(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	first := boxyRun(OutcomeSucceeded)
	first.BundledAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	_, err := store.Append(first)
	require.NoError(t, err)

	second := boxyRun(OutcomeFailed)
	second.Error = "launch expression did not resolve"
	second.BundledAt = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	_, err = store.Append(second)
	require.NoError(t, err)

	records, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, OutcomeFailed, records[0].Outcome)
	assert.Equal(t, "launch expression did not resolve", records[0].Error)
	assert.Equal(t, OutcomeSucceeded, records[1].Outcome)
	assert.Equal(t, 8, records[1].FileCount)
	assert.Equal(t, 1200*time.Millisecond, records[1].Duration)
}

func TestAppend_RejectsInvalidOutcome(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	rec := boxyRun("exploded")
	_, err := store.Append(rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOutcome)
}

func TestAppend_DefaultsBundledAt(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	before := time.Now().UTC().Add(-time.Second)
	_, err := store.Append(boxyRun(OutcomeSucceeded))
	require.NoError(t, err)

	records, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].BundledAt.Before(before),
		"BundledAt should default to the insert time")
}

func TestForPlugin(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	_, err := store.Append(boxyRun(OutcomeSucceeded))
	require.NoError(t, err)

	other := boxyRun(OutcomeSucceeded)
	other.PluginName = "time_date_tool"
	_, err = store.Append(other)
	require.NoError(t, err)

	records, err := store.ForPlugin("boxy", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "boxy", records[0].PluginName)

	records, err = store.ForPlugin("unknown", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStats(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalRuns)
	assert.False(t, stats.LastBundledAt.Valid)

	_, err = store.Append(boxyRun(OutcomeSucceeded))
	require.NoError(t, err)
	failed := boxyRun(OutcomeFailed)
	failed.Error = "icon missing"
	_, err = store.Append(failed)
	require.NoError(t, err)

	stats, err = store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRuns)
	assert.Equal(t, 1, stats.FailedRuns)
	assert.True(t, stats.LastBundledAt.Valid)
}

func TestPrune(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		rec := boxyRun(OutcomeSucceeded)
		rec.BundledAt = base.Add(time.Duration(i) * time.Hour)
		_, err := store.Append(rec)
		require.NoError(t, err)
	}

	removed, err := store.Prune(2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	records, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// The newest two survive.
	assert.Equal(t, base.Add(4*time.Hour), records[0].BundledAt.UTC())
	assert.Equal(t, base.Add(3*time.Hour), records[1].BundledAt.UTC())
}

func TestOutcome_IsValid(t *testing.T) {
	t.Parallel()

	for _, outcome := range []Outcome{OutcomeSucceeded, OutcomeFailed} {
		ok, errs := outcome.IsValid()
		assert.True(t, ok)
		assert.Empty(t, errs)
	}

	ok, errs := Outcome("crashed").IsValid()
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], ErrInvalidOutcome))
}
