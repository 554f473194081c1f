package persistence

import (
	"context"
	"testing"
	"time"

	"void-miner/internal/inventory"
	"void-miner/internal/persistence/runlog"
)

func TestStoresSaveAndRank(t *testing.T) {
	dir := t.TempDir()
	s := Open(dir, nil)
	if s.Stats == nil {
		t.Fatal("stats db did not open")
	}
	ctx := context.Background()
	started := time.Now().UTC()

	for i, mined := range []int{10, 30} {
		r := runlog.Record{
			Player:     "ada",
			Started:    started.Add(time.Duration(i) * time.Second),
			TotalMined: mined,
			Mined:      map[inventory.ResourceType]int{inventory.Veldspar: mined},
		}
		if err := s.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	top, err := s.TopRuns(ctx, 5)
	if err != nil || len(top) != 2 || top[0].TotalMined != 30 {
		t.Fatalf("TopRuns = %+v, %v", top, err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	recs, err := runlog.ReadFile(s.Runs.Path(started))
	if err != nil || len(recs) != 2 {
		t.Fatalf("run log: %d records, %v", len(recs), err)
	}
}

func TestStoresWithoutIndex(t *testing.T) {
	s := &Stores{}
	if err := s.SaveRun(context.Background(), runlog.Record{}); err != nil {
		t.Fatalf("SaveRun with no stores: %v", err)
	}
	top, err := s.TopRuns(context.Background(), 3)
	if err != nil || top != nil {
		t.Fatalf("TopRuns = %v, %v", top, err)
	}
}
