package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"heic2jpg/contracts"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSummary(dir string, started time.Time) contracts.BatchSummary {
	return contracts.BatchSummary{
		OutputDir:  dir,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Results: []contracts.ConversionResult{
			{Source: "/in/a.heic", Output: filepath.Join(dir, "a.jpg")},
			{Source: "/in/b.heic", Err: errors.New("not a HEIC/HEIF file")},
			{Source: "/in/c.heic", Output: filepath.Join(dir, "c.jpg")},
		},
	}
}

func TestRecordAndRecent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	id, err := s.Record(ctx, sampleSummary("/out", started))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	batches, err := s.Recent(ctx, 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(batches))
	}
	b := batches[0]
	if b.ID != id || b.OutputDir != "/out" {
		t.Errorf("unexpected batch %+v", b)
	}
	if b.Converted != 2 || b.Failed != 1 || b.Total() != 3 {
		t.Errorf("counts = %d/%d, want 2/1", b.Converted, b.Failed)
	}
	if !b.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", b.StartedAt, started)
	}
	if b.FinishedAt.Sub(b.StartedAt) != 3*time.Second {
		t.Errorf("duration = %v, want 3s", b.FinishedAt.Sub(b.StartedAt))
	}
}

func TestResultsKeepOrder(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Record(ctx, sampleSummary("/out", time.Now()))
	if err != nil {
		t.Fatal(err)
	}
	results, err := s.Results(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	want := []string{"/in/a.heic", "/in/b.heic", "/in/c.heic"}
	for i, r := range results {
		if r.Source != want[i] {
			t.Errorf("results[%d].Source = %q, want %q", i, r.Source, want[i])
		}
	}
	if results[1].Output != "" || results[1].Error != "not a HEIC/HEIF file" {
		t.Errorf("failed row = %+v", results[1])
	}
	if results[0].Error != "" || results[0].Output != "/out/a.jpg" {
		t.Errorf("converted row = %+v", results[0])
	}
}

func TestRecentNewestFirstAndLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		dir := filepath.Join("/out", string(rune('a'+i)))
		if _, err := s.Record(ctx, sampleSummary(dir, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	batches, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(batches) != 2 {
		t.Fatalf("got %d batches, want 2", len(batches))
	}
	if batches[0].OutputDir != "/out/d" || batches[1].OutputDir != "/out/c" {
		t.Errorf("order = %s, %s", batches[0].OutputDir, batches[1].OutputDir)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Record(ctx, sampleSummary("/out", time.Now())); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	batches, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(batches) != 1 {
		t.Errorf("got %d batches after reopen, want 1", len(batches))
	}
}
