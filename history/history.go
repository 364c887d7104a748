// Package history keeps a SQLite journal of finished conversion batches.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"heic2jpg/contracts"
)

const timeLayout = time.RFC3339Nano

// Store is an open history database.
type Store struct {
	db *sql.DB
}

// Batch is one journal row with its result counts.
type Batch struct {
	ID         int64
	OutputDir  string
	StartedAt  time.Time
	FinishedAt time.Time
	Converted  int
	Failed     int
}

func (b Batch) Total() int {
	return b.Converted + b.Failed
}

// Result is one file of a recorded batch.
type Result struct {
	Source string
	Output string
	Error  string
}

// Open opens or creates the database at path, creating parent directories
// and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS batches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			output_dir TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			converted INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id INTEGER NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			source TEXT NOT NULL,
			output TEXT,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_batch_id ON results(batch_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a finished batch and its per-file results in one
// transaction and returns the new batch id.
func (s *Store) Record(ctx context.Context, summary contracts.BatchSummary) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO batches (output_dir, started_at, finished_at, converted, failed)
		 VALUES (?, ?, ?, ?, ?)`,
		summary.OutputDir,
		summary.StartedAt.UTC().Format(timeLayout),
		summary.FinishedAt.UTC().Format(timeLayout),
		len(summary.Converted()),
		len(summary.Failed()),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting batch: %w", err)
	}
	batchID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading batch id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (batch_id, position, source, output, error) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing result insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range summary.Results {
		var output, errMsg sql.NullString
		if r.OK() {
			output = sql.NullString{String: r.Output, Valid: true}
		} else {
			errMsg = sql.NullString{String: r.Err.Error(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, batchID, i, r.Source, output, errMsg); err != nil {
			return 0, fmt.Errorf("inserting result %s: %w", r.Source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing batch: %w", err)
	}
	return batchID, nil
}

// Recent returns up to limit batches, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Batch, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, output_dir, started_at, finished_at, converted, failed
		 FROM batches ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var b Batch
		var started, finished string
		if err := rows.Scan(&b.ID, &b.OutputDir, &started, &finished, &b.Converted, &b.Failed); err != nil {
			return nil, fmt.Errorf("scanning batch: %w", err)
		}
		b.StartedAt, _ = time.Parse(timeLayout, started)
		b.FinishedAt, _ = time.Parse(timeLayout, finished)
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// Results returns the recorded files of one batch in conversion order.
func (s *Store) Results(ctx context.Context, batchID int64) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, output, error FROM results WHERE batch_id = ? ORDER BY position`, batchID)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var output, errMsg sql.NullString
		if err := rows.Scan(&r.Source, &output, &errMsg); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Output = output.String
		r.Error = errMsg.String
		results = append(results, r)
	}
	return results, rows.Err()
}
