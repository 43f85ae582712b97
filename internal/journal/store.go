package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; the journal carries no migrations, the user clears it instead.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("journal schema version mismatch")

// Batch summarizes one executed import run.
type Batch struct {
	ID            string
	SourceRoot    string
	DestRoot      string
	Mode          string // move, copy, or dry-run
	TaskCount     int
	ExecutedCount int
	StartedAt     time.Time
	FinishedAt    time.Time
}

// Operation is one completed file operation within a batch.
type Operation struct {
	Seq    int
	Source string
	Dest   string
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordBatch stores a batch summary and its completed operations in one
// transaction.
func (s *Store) RecordBatch(ctx context.Context, batch Batch, ops []Operation) error {
	if strings.TrimSpace(batch.ID) == "" {
		return errors.New("batch ID cannot be empty")
	}

	return s.withRetry(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin journal tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO batches (id, source_root, dest_root, mode, task_count, executed_count, started_at, finished_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			batch.ID, batch.SourceRoot, batch.DestRoot, batch.Mode,
			batch.TaskCount, batch.ExecutedCount,
			batch.StartedAt.UTC().Format(time.RFC3339),
			batch.FinishedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("insert batch: %w", err)
		}

		for _, op := range ops {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO operations (batch_id, seq, source, dest) VALUES (?, ?, ?, ?)`,
				batch.ID, op.Seq, op.Source, op.Dest,
			); err != nil {
				return fmt.Errorf("insert operation %d: %w", op.Seq, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit journal tx: %w", err)
		}
		return nil
	})
}

// RecentBatches returns up to limit batches, newest first.
func (s *Store) RecentBatches(ctx context.Context, limit int) ([]Batch, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_root, dest_root, mode, task_count, executed_count, started_at, finished_at
		 FROM batches ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var b Batch
		var started, finished string
		if err := rows.Scan(&b.ID, &b.SourceRoot, &b.DestRoot, &b.Mode,
			&b.TaskCount, &b.ExecutedCount, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		if b.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, fmt.Errorf("parse started_at %q: %w", started, err)
		}
		if b.FinishedAt, err = time.Parse(time.RFC3339, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at %q: %w", finished, err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// BatchOperations returns the completed operations of one batch in
// execution order.
func (s *Store) BatchOperations(ctx context.Context, batchID string) ([]Operation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, source, dest FROM operations WHERE batch_id = ? ORDER BY seq`, batchID)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	var ops []Operation
	for rows.Next() {
		var op Operation
		if err := rows.Scan(&op.Seq, &op.Source, &op.Dest); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

const (
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == 5 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func (s *Store) withRetry(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
