// SPDX-License-Identifier: MPL-2.0

package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// OutcomeSucceeded marks a bundle run that produced a plugin.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeFailed marks a bundle run that errored before completion.
	OutcomeFailed Outcome = "failed"
)

// ErrInvalidOutcome is returned when an Outcome value is not recognized.
var ErrInvalidOutcome = errors.New("invalid outcome")

const schema = `
CREATE TABLE IF NOT EXISTS bundle_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	plugin_name TEXT NOT NULL,
	launch_expression TEXT NOT NULL,
	layout TEXT NOT NULL,
	output_dir TEXT NOT NULL,
	file_count INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	outcome TEXT NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	bundled_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bundle_runs_plugin ON bundle_runs(plugin_name, bundled_at);
`

type (
	// Outcome classifies how a bundle run ended.
	Outcome string

	// InvalidOutcomeError is returned when an Outcome value is not recognized.
	// It wraps ErrInvalidOutcome for errors.Is() compatibility.
	InvalidOutcomeError struct {
		Value Outcome
	}

	// Record is one bundle run.
	Record struct {
		ID               int64
		PluginName       string
		LaunchExpression string
		Layout           string
		OutputDir        string
		FileCount        int
		Duration         time.Duration
		Outcome          Outcome
		// Error holds the failure message for failed runs, empty otherwise.
		Error     string
		BundledAt time.Time
	}

	// Stats summarizes the recorded runs.
	Stats struct {
		TotalRuns     int
		FailedRuns    int
		LastBundledAt sql.NullTime
	}

	// Store persists bundle runs in a SQLite database.
	Store struct {
		db *sql.DB
		mu sync.RWMutex
	}
)

// String returns the string representation of the Outcome.
func (o Outcome) String() string { return string(o) }

// IsValid returns whether the Outcome is one of the defined outcomes,
// and a list of validation errors if it is not.
func (o Outcome) IsValid() (bool, []error) {
	switch o {
	case OutcomeSucceeded, OutcomeFailed:
		return true, nil
	default:
		return false, []error{&InvalidOutcomeError{Value: o}}
	}
}

// Error implements the error interface for InvalidOutcomeError.
func (e *InvalidOutcomeError) Error() string {
	return fmt.Sprintf("invalid outcome %q (valid: succeeded, failed)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOutcomeError) Unwrap() error { return ErrInvalidOutcome }

// Open opens (creating if necessary) the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one bundle run and returns its row id.
func (s *Store) Append(rec Record) (int64, error) {
	if ok, errs := rec.Outcome.IsValid(); !ok {
		return 0, errors.Join(errs...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bundledAt := rec.BundledAt
	if bundledAt.IsZero() {
		bundledAt = time.Now().UTC()
	}

	result, err := s.db.Exec(`
		INSERT INTO bundle_runs (plugin_name, launch_expression, layout, output_dir, file_count, duration_ms, outcome, error, bundled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.PluginName, rec.LaunchExpression, rec.Layout, rec.OutputDir,
		rec.FileCount, rec.Duration.Milliseconds(), string(rec.Outcome), rec.Error, bundledAt)
	if err != nil {
		return 0, fmt.Errorf("append bundle run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get bundle run id: %w", err)
	}
	return id, nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, plugin_name, launch_expression, layout, output_dir, file_count, duration_ms, outcome, error, bundled_at
		FROM bundle_runs ORDER BY bundled_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent runs: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ForPlugin returns the most recent runs for one plugin, newest first.
func (s *Store) ForPlugin(pluginName string, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, plugin_name, launch_expression, layout, output_dir, file_count, duration_ms, outcome, error, bundled_at
		FROM bundle_runs WHERE plugin_name = ? ORDER BY bundled_at DESC, id DESC LIMIT ?
	`, pluginName, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs for plugin %s: %w", pluginName, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Stats summarizes all recorded runs.
func (s *Store) Stats() (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats Stats
	err := s.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = 'failed' THEN 1 ELSE 0 END), 0),
			MAX(bundled_at)
		FROM bundle_runs
	`).Scan(&stats.TotalRuns, &stats.FailedRuns, &stats.LastBundledAt)
	if err != nil {
		return Stats{}, fmt.Errorf("get history stats: %w", err)
	}
	return stats, nil
}

// Prune deletes all but the newest keep runs and returns how many were removed.
func (s *Store) Prune(keep int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`
		DELETE FROM bundle_runs WHERE id NOT IN (
			SELECT id FROM bundle_runs ORDER BY bundled_at DESC, id DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune bundle runs: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count pruned runs: %w", err)
	}
	return removed, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var rec Record
		var durationMs int64
		var outcome string
		if err := rows.Scan(
			&rec.ID, &rec.PluginName, &rec.LaunchExpression, &rec.Layout,
			&rec.OutputDir, &rec.FileCount, &durationMs, &outcome,
			&rec.Error, &rec.BundledAt,
		); err != nil {
			return nil, fmt.Errorf("scan bundle run: %w", err)
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		rec.Outcome = Outcome(outcome)
		records = append(records, rec)
	}
	return records, rows.Err()
}
