package sink

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jonwraymond/warden/run"
)

const storeSchema = `
CREATE TABLE IF NOT EXISTS iterations (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	ordinal      INTEGER NOT NULL,
	started_at   TEXT NOT NULL,
	completed_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	iteration_id INTEGER NOT NULL REFERENCES iterations(id),
	watcher      TEXT NOT NULL,
	valid        INTEGER NOT NULL,
	description  TEXT,
	started_at   TEXT NOT NULL,
	completed_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_watcher ON results(watcher);
`

// Store persists iteration records to a SQLite database. Attach registers an
// asynchronous callback on the IterationCompleted chain; a failed write
// propagates and terminates the run, so hosts that want best-effort
// persistence should wrap SaveIteration themselves.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and applies the schema.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sink: open sqlite: %w", err)
	}
	// SQLite prefers a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	if _, err := db.Exec(storeSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sink: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// AttachRun registers the persistence callback.
func (s *Store) AttachRun(h *run.Hooks) {
	h.IterationCompleted.OnAsync(func(ctx context.Context, it *run.Iteration) error {
		return s.SaveIteration(ctx, it)
	})
}

// SaveIteration writes one iteration record and its results in a single
// transaction.
func (s *Store) SaveIteration(ctx context.Context, it *run.Iteration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sink: begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO iterations(ordinal, started_at, completed_at) VALUES(?,?,?)`,
		it.Ordinal,
		it.StartedAt.Format(time.RFC3339Nano),
		it.CompletedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sink: insert iteration: %w", err)
	}
	iterationID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sink: iteration id: %w", err)
	}

	for _, r := range it.Results {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO results(iteration_id, watcher, valid, description, started_at, completed_at)
			 VALUES(?,?,?,?,?,?)`,
			iterationID,
			r.Outcome.Watcher,
			r.Outcome.Valid,
			r.Outcome.Description,
			r.StartedAt.Format(time.RFC3339Nano),
			r.CompletedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("sink: insert result: %w", err)
		}
	}
	return tx.Commit()
}

// IterationCount returns the number of persisted iteration records.
func (s *Store) IterationCount(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM iterations`).Scan(&n)
	return n, err
}

// ResultCount returns the number of persisted results for one watcher.
func (s *Store) ResultCount(ctx context.Context, watcher string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results WHERE watcher = ?`, watcher).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
