package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store provides database operations
type Store struct {
	db *sql.DB
}

// NewStore creates a new Store with the given database path
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			triggered_by TEXT NOT NULL,
			account TEXT,
			total INTEGER NOT NULL,
			urgent INTEGER NOT NULL,
			drafts INTEGER NOT NULL,
			categories TEXT,
			sent INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_trigger ON runs(triggered_by)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// SaveRun stores a report run record
func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, triggered_by, account, total, urgent, drafts, categories, sent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID, run.Trigger, run.Account, run.Total, run.Urgent, run.Drafts,
		string(run.Categories), run.Sent, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	var categories sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, triggered_by, account, total, urgent, drafts, categories, sent, created_at
		FROM runs WHERE id = ?
	`, id).Scan(
		&run.ID, &run.Trigger, &run.Account, &run.Total, &run.Urgent,
		&run.Drafts, &categories, &run.Sent, &run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if categories.Valid {
		run.Categories = []byte(categories.String)
	}

	return &run, nil
}

// ListRuns returns the most recent runs, newest first
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, triggered_by, account, total, urgent, drafts, categories, sent, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var categories sql.NullString

		if err := rows.Scan(
			&run.ID, &run.Trigger, &run.Account, &run.Total, &run.Urgent,
			&run.Drafts, &categories, &run.Sent, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if categories.Valid {
			run.Categories = []byte(categories.String)
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// GetStats returns aggregate run statistics
func (s *Store) GetStats(ctx context.Context) (*RunStats, error) {
	var stats RunStats

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&stats.TotalRuns)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE sent = 1`).Scan(&stats.SentRuns)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(total), 0) FROM runs`).Scan(&stats.EmailsProcessed)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// DB returns the underlying database connection for custom queries
func (s *Store) DB() *sql.DB {
	return s.db
}
