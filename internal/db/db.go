// ABOUTME: SQLite database layer for push attempt history.
// ABOUTME: Records each invocation outcome and supports filtered queries.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite handle and exposes helpers for persistence operations.
type Store struct {
	sql *sql.DB
}

// RunRecord mirrors the runs table schema. ExitCode is nil when the tool
// could not be launched, in which case LaunchError holds the reason.
type RunRecord struct {
	ID          int64     `json:"id"`
	RunID       string    `json:"run_id"`
	Tool        string    `json:"tool"`
	Remote      string    `json:"remote"`
	Branch      string    `json:"branch"`
	Dir         string    `json:"dir,omitempty"`
	ExitCode    *int      `json:"exit_code,omitempty"`
	Stdout      string    `json:"stdout,omitempty"`
	Stderr      string    `json:"stderr,omitempty"`
	LaunchError string    `json:"launch_error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	DurationMS  int64     `json:"duration_ms"`
}

// Succeeded reports whether the attempt ran and exited zero.
func (r RunRecord) Succeeded() bool {
	return r.ExitCode != nil && *r.ExitCode == 0
}

// Open creates (if necessary) and opens the SQLite database.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("database path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := conn.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("configuring sqlite: %w", err)
	}

	store := &Store{sql: conn}
	if err := store.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return store, nil
}

// Close releases the underlying SQL handle.
func (s *Store) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}
	return s.sql.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
            id INTEGER PRIMARY KEY,
            run_id TEXT NOT NULL UNIQUE,
            tool TEXT NOT NULL,
            remote TEXT NOT NULL,
            branch TEXT NOT NULL,
            dir TEXT,
            exit_code INTEGER,
            stdout TEXT,
            stderr TEXT,
            launch_error TEXT,
            started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            duration_ms INTEGER DEFAULT 0
        );`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);`,
	}

	for _, stmt := range stmts {
		if _, err := s.sql.Exec(stmt); err != nil {
			return fmt.Errorf("running migration: %w", err)
		}
	}

	return nil
}

// LogRun persists a single push attempt.
func (s *Store) LogRun(ctx context.Context, rec RunRecord) error {
	if s == nil || s.sql == nil {
		return errors.New("database not initialized")
	}
	if rec.RunID == "" {
		return errors.New("run id is required")
	}

	startedAt := rec.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	var exitCode interface{}
	if rec.ExitCode != nil {
		exitCode = *rec.ExitCode
	}

	_, err := s.sql.ExecContext(ctx,
		`INSERT INTO runs (run_id, tool, remote, branch, dir, exit_code, stdout, stderr, launch_error, started_at, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		rec.RunID,
		rec.Tool,
		rec.Remote,
		rec.Branch,
		rec.Dir,
		exitCode,
		rec.Stdout,
		rec.Stderr,
		rec.LaunchError,
		startedAt.UTC(),
		rec.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("insert run record: %w", err)
	}
	return nil
}

// QueryRuns returns persisted attempts, newest first, applying the optional filters.
// search matches captured output and launch errors.
func (s *Store) QueryRuns(ctx context.Context, limit int, since *time.Time, search string) ([]RunRecord, error) {
	if s == nil || s.sql == nil {
		return nil, errors.New("database not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	clauses := []string{"1=1"}
	args := []interface{}{}

	if since != nil && !since.IsZero() {
		clauses = append(clauses, "started_at >= ?")
		args = append(args, since.UTC())
	}

	if search != "" {
		like := fmt.Sprintf("%%%s%%", search)
		clauses = append(clauses, "(stdout LIKE ? OR stderr LIKE ? OR launch_error LIKE ?)")
		args = append(args, like, like, like)
	}

	query := fmt.Sprintf(`SELECT id, run_id, tool, remote, branch, dir, exit_code,
            stdout, stderr, launch_error, started_at, duration_ms
        FROM runs
        WHERE %s
        ORDER BY started_at DESC, id DESC
        LIMIT ?;`, strings.Join(clauses, " AND "))
	args = append(args, limit)

	rows, err := s.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []RunRecord
	for rows.Next() {
		var rec RunRecord
		var dir, stdout, stderr, launchErr sql.NullString
		var exitCode sql.NullInt64
		var started time.Time
		if err := rows.Scan(
			&rec.ID,
			&rec.RunID,
			&rec.Tool,
			&rec.Remote,
			&rec.Branch,
			&dir,
			&exitCode,
			&stdout,
			&stderr,
			&launchErr,
			&started,
			&rec.DurationMS,
		); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		rec.Dir = dir.String
		rec.Stdout = stdout.String
		rec.Stderr = stderr.String
		rec.LaunchError = launchErr.String
		rec.StartedAt = started
		if exitCode.Valid {
			code := int(exitCode.Int64)
			rec.ExitCode = &code
		}
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return results, nil
}
