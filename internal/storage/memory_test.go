package storage

import (
	"context"
	"testing"

	"pelagia/internal/model"
)

func testRun(id, created string) model.RunRecord {
	return Stamp(model.RunRecord{
		RunID:        id,
		CreatedAtUTC: created,
		Years:        2,
		Seasons:      2,
		MaxSeasons:   2,
		AgeLabels:    []float64{1, 2},
		Sexes:        1,
		Areas:        1,
		Workers:      1,
	})
}

func testReports() []model.SubpopulationReport {
	return []model.SubpopulationReport{
		{
			ObjectID:  3,
			Sex:       0,
			AreaIndex: 0,
			AreaID:    1,
			Cells: []model.CellRecord{
				{Year: 0, Season: 0, Age: 0, Value: 0},
				{Year: 0, Season: 0, Age: 1, Value: 1},
			},
		},
	}
}

func TestMemoryStoreRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	if err := store.SaveRun(ctx, testRun("run-1", "2026-01-02T00:00:00Z")); err != nil {
		t.Fatalf("save run: %v", err)
	}
	run, ok, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatal("run not found")
	}
	if run.Years != 2 || run.Sexes != 1 || len(run.AgeLabels) != 2 {
		t.Fatalf("unexpected run record: %+v", run)
	}

	if _, ok, err := store.GetRun(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing run: ok=%v err=%v", ok, err)
	}
}

func TestMemoryStoreListRunsOrderedAndLimited(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	for _, run := range []model.RunRecord{
		testRun("run-a", "2026-01-01T00:00:00Z"),
		testRun("run-b", "2026-01-03T00:00:00Z"),
		testRun("run-c", "2026-01-02T00:00:00Z"),
	} {
		if err := store.SaveRun(ctx, run); err != nil {
			t.Fatalf("save run %s: %v", run.RunID, err)
		}
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("run count = %d, want 3", len(runs))
	}
	if runs[0].RunID != "run-b" || runs[1].RunID != "run-c" || runs[2].RunID != "run-a" {
		t.Fatalf("unexpected order: %s %s %s", runs[0].RunID, runs[1].RunID, runs[2].RunID)
	}

	limited, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list runs limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limited count = %d, want 2", len(limited))
	}
}

func TestMemoryStoreReportsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	if err := store.SaveReports(ctx, "run-1", testReports()); err != nil {
		t.Fatalf("save reports: %v", err)
	}
	reports, ok, err := store.GetReports(ctx, "run-1")
	if err != nil {
		t.Fatalf("get reports: %v", err)
	}
	if !ok || len(reports) != 1 || len(reports[0].Cells) != 2 {
		t.Fatalf("unexpected reports: ok=%v %+v", ok, reports)
	}

	// Mutating the returned slice must not affect the stored copy.
	reports[0].Cells[0].Value = 99
	again, _, err := store.GetReports(ctx, "run-1")
	if err != nil {
		t.Fatalf("get reports again: %v", err)
	}
	if again[0].Cells[0].Value != 0 {
		t.Fatal("stored reports were mutated through a returned slice")
	}
}
