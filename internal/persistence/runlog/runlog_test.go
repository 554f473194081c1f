package runlog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"void-miner/internal/inventory"
	"void-miner/internal/mining"
	"void-miner/internal/sim"
)

func TestDirXDGEnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir returned error: %v", err)
	}
	want := filepath.Join(tmp, "void-miner")
	if dir != want {
		t.Errorf("dir = %q; want %q", dir, want)
	}
}

func TestDirDefaultFallback(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "") // force the fallback path

	dir, err := Dir()
	if err != nil {
		t.Skip("skipping: no user home directory available in test environment")
	}
	suffix := filepath.Join(".local", "share", "void-miner")
	if !strings.HasSuffix(dir, suffix) {
		t.Errorf("dir %q does not end with %q", dir, suffix)
	}
}

func sampleRecord(player string) Record {
	return Record{
		Player:     player,
		Seed:       42,
		Started:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:   95.5,
		Score:      3,
		Hits:       4,
		TotalMined: 85,
		Mined:      map[inventory.ResourceType]int{inventory.Veldspar: 60, inventory.Omber: 25},
		Tiers:      map[mining.Tier]int{mining.Normal: 3, mining.Critical: 1},
		Refined:    map[inventory.ResourceType]int{inventory.Tritanium: 24},
	}
}

func TestWriteAndReadBack(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	day := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return day }

	if err := w.SaveRun(context.Background(), sampleRecord("ada")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	// Readable before Close.
	got, err := ReadFile(w.Path(day))
	if err != nil {
		t.Fatalf("ReadFile before close: %v", err)
	}
	if len(got) != 1 || got[0].Player != "ada" {
		t.Fatalf("records = %+v", got)
	}

	if err := w.SaveRun(context.Background(), sampleRecord("bob")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err = ReadFile(filepath.Join(dir, "runs-2026-03-01.jsonl.zst"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != 2 || got[1].Player != "bob" {
		t.Fatalf("records = %+v", got)
	}
	r := got[0]
	if r.Mined[inventory.Veldspar] != 60 || r.Tiers[mining.Critical] != 1 || r.Refined[inventory.Tritanium] != 24 {
		t.Fatalf("maps did not survive: %+v", r)
	}
	if !r.Started.Equal(sampleRecord("").Started) {
		t.Fatalf("started = %v", r.Started)
	}
}

func TestWriterRotatesDaily(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	now := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	if err := w.Write(sampleRecord("day1")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if err := w.Write(sampleRecord("day2")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, name := range []string{"runs-2026-03-01.jsonl.zst", "runs-2026-03-02.jsonl.zst"} {
		got, err := ReadFile(filepath.Join(dir, name))
		if err != nil || len(got) != 1 {
			t.Fatalf("%s: records=%d err=%v", name, len(got), err)
		}
	}
}

func TestAppendAcrossWriters(t *testing.T) {
	dir := t.TempDir()
	day := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for _, p := range []string{"first", "second"} {
		w := NewWriter(dir)
		w.now = func() time.Time { return day }
		if err := w.Write(sampleRecord(p)); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}
	got, err := ReadFile(filepath.Join(dir, "runs-2026-03-01.jsonl.zst"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != 2 || got[0].Player != "first" || got[1].Player != "second" {
		t.Fatalf("records = %+v", got)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "runs-1999-01-01.jsonl.zst"))
	if !os.IsNotExist(err) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestFromStats(t *testing.T) {
	st := sim.Stats{
		Elapsed:     12.5,
		Score:       2,
		Hits:        3,
		Activations: 4,
		Mined:       map[inventory.ResourceType]int{inventory.Scordite: 20, inventory.Veldspar: 25},
		Tiers:       map[mining.Tier]int{mining.Normal: 3},
		Refined:     map[inventory.ResourceType]int{},
	}
	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.FixedZone("CET", 3600))
	r := FromStats("ada", 7, started, st, true)
	if r.TotalMined != 45 || r.Duration != 12.5 || !r.Destroyed || r.Seed != 7 {
		t.Fatalf("record = %+v", r)
	}
	if r.Started.Location() != time.UTC || r.Started.Hour() != 8 {
		t.Fatalf("started = %v, want UTC", r.Started)
	}
}
