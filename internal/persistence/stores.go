// Package persistence opens the on-disk run history: the compressed run log
// and the SQLite leaderboard index.
package persistence

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"void-miner/internal/persistence/runlog"
	"void-miner/internal/persistence/statsdb"
)

// StatsFile is the leaderboard database name inside the data directory.
const StatsFile = "stats.sqlite"

// Stores fans finished runs out to every store that opened.
type Stores struct {
	Runs  *runlog.Writer
	Stats *statsdb.DB
}

// Open opens both stores under dir. A store that fails to open is logged and
// left nil; the game still runs without history.
func Open(dir string, logger *slog.Logger) *Stores {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Stores{Runs: runlog.NewWriter(dir)}
	db, err := statsdb.OpenSQLite(filepath.Join(dir, StatsFile))
	if err != nil {
		logger.Warn("stats db unavailable", "error", err)
	} else {
		s.Stats = db
	}
	return s
}

// SaveRun writes r to the run log and indexes it.
func (s *Stores) SaveRun(ctx context.Context, r runlog.Record) error {
	var errs []error
	if s.Runs != nil {
		if err := s.Runs.SaveRun(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Stats != nil {
		if err := s.Stats.SaveRun(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TopRuns returns the leaderboard, or nothing when the index is unavailable.
func (s *Stores) TopRuns(ctx context.Context, n int) ([]statsdb.Summary, error) {
	if s.Stats == nil {
		return nil, nil
	}
	return s.Stats.TopRuns(ctx, n)
}

// Close closes both stores.
func (s *Stores) Close() error {
	var errs []error
	if s.Runs != nil {
		errs = append(errs, s.Runs.Close())
	}
	if s.Stats != nil {
		errs = append(errs, s.Stats.Close())
	}
	return errors.Join(errs...)
}
