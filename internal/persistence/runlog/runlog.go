// Package runlog appends finished mining runs to daily zstd-compressed JSONL
// files under the user's data directory.
package runlog

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"void-miner/internal/inventory"
	"void-miner/internal/mining"
	"void-miner/internal/sim"

	"github.com/klauspost/compress/zstd"
)

// AppName names the directory under $XDG_DATA_HOME.
const AppName = "void-miner"

// Record is one finished run.
type Record struct {
	Player            string                         `json:"player"`
	Seed              int64                          `json:"seed"`
	Started           time.Time                      `json:"started"`
	Duration          float64                        `json:"duration"` // simulated seconds
	Score             int                            `json:"score"`
	Destroyed         bool                           `json:"destroyed"`
	Activations       int                            `json:"activations"`
	FailedActivations int                            `json:"failed_activations"`
	Hits              int                            `json:"hits"`
	CargoFull         int                            `json:"cargo_full"`
	AsteroidsDepleted int                            `json:"asteroids_depleted"`
	Unloads           int                            `json:"unloads"`
	TotalMined        int                            `json:"total_mined"`
	Mined             map[inventory.ResourceType]int `json:"mined"`
	Tiers             map[mining.Tier]int            `json:"tiers"`
	Refined           map[inventory.ResourceType]int `json:"refined"`
}

// FromStats builds a Record from a session's statistics.
func FromStats(player string, seed int64, started time.Time, st sim.Stats, destroyed bool) Record {
	return Record{
		Player:            player,
		Seed:              seed,
		Started:           started.UTC(),
		Duration:          st.Elapsed,
		Score:             st.Score,
		Destroyed:         destroyed,
		Activations:       st.Activations,
		FailedActivations: st.FailedActivations,
		Hits:              st.Hits,
		CargoFull:         st.CargoFull,
		AsteroidsDepleted: st.AsteroidsDepleted,
		Unloads:           st.Unloads,
		TotalMined:        st.TotalMined(),
		Mined:             st.Mined,
		Tiers:             st.Tiers,
		Refined:           st.Refined,
	}
}

// Dir returns the directory where run logs are stored.
// Follows XDG Base Directory spec: $XDG_DATA_HOME/void-miner,
// defaulting to ~/.local/share/void-miner.
func Dir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppName), nil
}

// Writer appends JSON lines to runs-<date>.jsonl.zst, one file per UTC day.
// Every line is its own zstd frame.
type Writer struct {
	baseDir string
	now     func() time.Time

	mu     sync.Mutex
	curDay string
	f      *os.File
	enc    *zstd.Encoder
	w      *bufio.Writer
}

// NewWriter returns a Writer rooted at baseDir. Files are opened lazily.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir, now: time.Now}
}

// SaveRun appends r.
func (w *Writer) SaveRun(_ context.Context, r Record) error {
	return w.Write(r)
}

// Write appends v as one JSON line.
func (w *Writer) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	day := w.now().UTC().Format("2006-01-02")
	if day != w.curDay {
		if err := w.rotateLocked(day); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	// End the frame so the file is readable while the writer stays open.
	if err := w.enc.Close(); err != nil {
		return err
	}
	w.enc.Reset(w.f)
	return nil
}

// Close flushes and closes the current file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

// Path returns the log file used for the given day.
func (w *Writer) Path(day time.Time) string {
	return w.pathForDay(day.UTC().Format("2006-01-02"))
}

func (w *Writer) rotateLocked(day string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.baseDir, 0o755); err != nil {
		return fmt.Errorf("create run log dir: %w", err)
	}
	f, err := os.OpenFile(w.pathForDay(day), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 16*1024)
	w.curDay = day
	return nil
}

func (w *Writer) closeLocked() error {
	var err1 error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err1 = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	w.curDay = ""
	return err1
}

func (w *Writer) pathForDay(day string) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("runs-%s.jsonl.zst", day))
}

// ReadFile decodes every record in a run log file. Concatenated zstd frames
// from separate writer sessions decode as one stream.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []Record
	jd := json.NewDecoder(dec)
	for {
		var r Record
		if err := jd.Decode(&r); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
		}
		out = append(out, r)
	}
}
