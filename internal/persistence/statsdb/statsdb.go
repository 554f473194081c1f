// Package statsdb indexes finished runs in SQLite for leaderboards. The
// run log files stay the source of truth.
package statsdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"void-miner/internal/inventory"
	"void-miner/internal/persistence/runlog"
)

// DB is a SQLite-backed run index. Safe for concurrent use; writes are
// serialised through a single connection.
type DB struct {
	db *sql.DB
}

// Summary is one leaderboard row.
type Summary struct {
	ID         int64
	Player     string
	Started    time.Time
	Duration   float64
	Score      int
	TotalMined int
	Destroyed  bool
}

// OpenSQLite opens (creating if needed) the index at path.
func OpenSQLite(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create stats dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open stats db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("stats db pragmas: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("stats db schema: %w", err)
	}
	return &DB{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			seed INTEGER NOT NULL,
			started TEXT NOT NULL,
			duration REAL NOT NULL,
			score INTEGER NOT NULL,
			destroyed INTEGER NOT NULL,
			total_mined INTEGER NOT NULL,
			hits INTEGER NOT NULL,
			activations INTEGER NOT NULL,
			unloads INTEGER NOT NULL,
			raw_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_total ON runs(total_mined DESC, started);`,
		`CREATE TABLE IF NOT EXISTS mined (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			resource TEXT NOT NULL,
			amount INTEGER NOT NULL,
			PRIMARY KEY (run_id, resource)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *DB) Close() error { return s.db.Close() }

// SaveRun indexes r. It lets *DB serve wherever a run sink is expected.
func (s *DB) SaveRun(ctx context.Context, r runlog.Record) error {
	_, err := s.RecordRun(ctx, r)
	return err
}

// RecordRun inserts r and its per-resource totals in one transaction and
// returns the new row id.
func (s *DB) RecordRun(ctx context.Context, r runlog.Record) (int64, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("encode run: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs(player, seed, started, duration, score, destroyed, total_mined, hits, activations, unloads, raw_json)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Player, r.Seed, r.Started.UTC().Format(time.RFC3339Nano), r.Duration, r.Score,
		boolInt(r.Destroyed), r.TotalMined, r.Hits, r.Activations, r.Unloads, string(raw))
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for t, n := range r.Mined {
		if n <= 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mined(run_id, resource, amount) VALUES(?, ?, ?)`, id, t.String(), n); err != nil {
			return 0, fmt.Errorf("insert mined %v: %w", t, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	return id, nil
}

// TopRuns returns the n runs with the most ore mined, earliest first on ties.
func (s *DB) TopRuns(ctx context.Context, n int) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player, started, duration, score, total_mined, destroyed
		 FROM runs ORDER BY total_mined DESC, started ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query top runs: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum       Summary
			started   string
			destroyed int
		)
		if err := rows.Scan(&sum.ID, &sum.Player, &started, &sum.Duration, &sum.Score, &sum.TotalMined, &destroyed); err != nil {
			return nil, err
		}
		sum.Started, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("run %d started: %w", sum.ID, err)
		}
		sum.Destroyed = destroyed != 0
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Totals returns the ore mined per resource across every recorded run.
func (s *DB) Totals(ctx context.Context) (map[inventory.ResourceType]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT resource, SUM(amount) FROM mined GROUP BY resource`)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	out := make(map[inventory.ResourceType]int)
	for rows.Next() {
		var (
			name   string
			amount int
		)
		if err := rows.Scan(&name, &amount); err != nil {
			return nil, err
		}
		t, err := inventory.ParseResourceType(name)
		if err != nil {
			return nil, err
		}
		out[t] = amount
	}
	return out, rows.Err()
}

// Run loads the full record stored for id.
func (s *DB) Run(ctx context.Context, id int64) (runlog.Record, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT raw_json FROM runs WHERE id = ?`, id).Scan(&raw)
	if err != nil {
		return runlog.Record{}, fmt.Errorf("load run %d: %w", id, err)
	}
	var r runlog.Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return runlog.Record{}, fmt.Errorf("decode run %d: %w", id, err)
	}
	return r, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
