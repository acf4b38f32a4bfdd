package store

import (
	"path/filepath"
	"testing"
)

func TestStore_RunLogRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	id, err := s.CreateRunLog("run-1234", "/tmp/out", false, 3)
	if err != nil {
		t.Fatalf("create run log: %v", err)
	}

	if err := s.InsertRunFile(id, "export_2020_2021.xlsx", "2020_2021", "converted", 5, ""); err != nil {
		t.Fatalf("insert run file: %v", err)
	}
	if err := s.InsertRunFile(id, "report_finale.xlsx", "", "skipped", 0, "season pattern not found"); err != nil {
		t.Fatalf("insert run file: %v", err)
	}

	if err := s.FinishRunLog(id, 1, 2, "done"); err != nil {
		t.Fatalf("finish run log: %v", err)
	}

	runs, err := s.RecentRuns(10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.RunUUID != "run-1234" || r.ConvertedFiles != 1 || r.SkippedFiles != 2 || r.Status != "done" {
		t.Fatalf("unexpected run entry: %+v", r)
	}
	if r.CompletedAt == "" {
		t.Fatalf("expected completed_at to be set")
	}
}
