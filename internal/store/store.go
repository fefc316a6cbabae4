// Package store keeps a history of design runs and their ranked primer sets
// in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"lamp-core/lamp"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	target     TEXT    NOT NULL,
	length     INTEGER NOT NULL,
	status     TEXT    NOT NULL,
	error      TEXT    NOT NULL DEFAULT '',
	preset     TEXT    NOT NULL DEFAULT '',
	config     BLOB,
	created_at TEXT    NOT NULL,
	elapsed_ms INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS primer_sets (
	run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	rank   INTEGER NOT NULL,
	set_id TEXT    NOT NULL,
	score  REAL    NOT NULL,
	report BLOB    NOT NULL,
	PRIMARY KEY (run_id, rank)
);
CREATE INDEX IF NOT EXISTS primer_sets_set_id ON primer_sets(set_id);
`

// Run is one stored Design call.
type Run struct {
	ID        int64
	Target    string
	Length    int
	Status    string
	Error     string
	Preset    string
	Config    json.RawMessage
	CreatedAt time.Time
	Elapsed   time.Duration
	Sets      int
}

// Store is a SQLite-backed run history.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer; :memory: databases are also per connection
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

// SaveRun stores run and its reports in one transaction and returns the
// new run ID.
func (s *Store) SaveRun(ctx context.Context, run Run, reports []lamp.Report) (id int64, retErr error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (target, length, status, error, preset, config, created_at, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Target, run.Length, run.Status, run.Error, run.Preset, []byte(run.Config),
		run.CreatedAt.UTC().Format(time.RFC3339Nano), run.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, err
	}
	for i, r := range reports {
		rank := r.Rank
		if rank == 0 {
			rank = i + 1
		}
		blob, err := json.Marshal(r)
		if err != nil {
			return 0, fmt.Errorf("encode set %s: %w", r.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO primer_sets (run_id, rank, set_id, score, report) VALUES (?, ?, ?, ?, ?)`,
			id, rank, r.ID, r.OverallScore, blob,
		); err != nil {
			return 0, fmt.Errorf("insert set %s: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// Runs lists stored runs, newest first. A non-empty target filters by
// target ID.
func (s *Store) Runs(ctx context.Context, target string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.target, r.length, r.status, r.error, r.preset, r.config, r.created_at, r.elapsed_ms,
		       (SELECT COUNT(*) FROM primer_sets p WHERE p.run_id = r.id)
		FROM runs r
		WHERE ? = '' OR r.target = ?
		ORDER BY r.id DESC`, target, target)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []Run
	for rows.Next() {
		var (
			r       Run
			cfg     []byte
			created string
			ms      int64
		)
		if err := rows.Scan(&r.ID, &r.Target, &r.Length, &r.Status, &r.Error, &r.Preset, &cfg, &created, &ms, &r.Sets); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if len(cfg) > 0 {
			r.Config = json.RawMessage(cfg)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("run %d: created_at: %w", r.ID, err)
		}
		r.Elapsed = time.Duration(ms) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}

// Sets returns the reports of one run in rank order.
func (s *Store) Sets(ctx context.Context, runID int64) ([]lamp.Report, error) {
	return s.reports(ctx, `SELECT report FROM primer_sets WHERE run_id = ? ORDER BY rank`, runID)
}

// FindSet returns every stored report with the given set ID, newest run
// first. Identical primer sets share an ID across runs.
func (s *Store) FindSet(ctx context.Context, setID string) ([]lamp.Report, error) {
	return s.reports(ctx, `SELECT report FROM primer_sets WHERE set_id = ? ORDER BY run_id DESC`, setID)
}

func (s *Store) reports(ctx context.Context, query string, arg any) ([]lamp.Report, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("select sets: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []lamp.Report
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		var r lamp.Report
		if err := json.Unmarshal(blob, &r); err != nil {
			return nil, fmt.Errorf("decode set: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
