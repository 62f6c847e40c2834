// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest records conversion runs in a SQLite ledger, giving
// operators a durable account of what was converted, when, and into
// which files.
package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store manages the run ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path, creating the
// schema and any missing parent directories.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			sheet_count INTEGER NOT NULL,
			error TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS sheet_files (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			sheet_index INTEGER NOT NULL,
			path TEXT NOT NULL,
			PRIMARY KEY (run_id, sheet_index)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(input)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run is one recorded conversion of a single input document.
type Run struct {
	ID         int64     `json:"id"`
	Input      string    `json:"input"`
	OutputDir  string    `json:"output_dir"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	SheetCount int       `json:"sheet_count"`
	Error      string    `json:"error,omitempty"`
	Outputs    []string  `json:"outputs,omitempty"`
}

// Record inserts a run and its emitted files in one transaction and
// returns the run's id.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning ledger transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (input, output_dir, started_at, finished_at, sheet_count, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.Input,
		run.OutputDir,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		len(run.Outputs),
		run.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("recording run for %s: %w", run.Input, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for i, path := range run.Outputs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sheet_files (run_id, sheet_index, path) VALUES (?, ?, ?)`,
			id, i, path,
		); err != nil {
			return 0, fmt.Errorf("recording output %s: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing ledger transaction: %w", err)
	}
	return id, nil
}

// Runs returns the most recent runs, newest first, with their outputs.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, output_dir, started_at, finished_at, sheet_count, COALESCE(error, '')
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &r.Input, &r.OutputDir, &started, &finished, &r.SheetCount, &r.Error); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parsing run %d start time: %w", r.ID, err)
		}
		if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parsing run %d finish time: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range runs {
		outputs, err := s.runOutputs(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Outputs = outputs
	}
	return runs, nil
}

func (s *Store) runOutputs(ctx context.Context, runID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path FROM sheet_files WHERE run_id = ? ORDER BY sheet_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying outputs of run %d: %w", runID, err)
	}
	defer rows.Close()

	var outputs []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning output of run %d: %w", runID, err)
		}
		outputs = append(outputs, p)
	}
	return outputs, rows.Err()
}
