package ledger

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "worldgen.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStartRunThenFinishRunMarksComplete(t *testing.T) {
	db := openTestDB(t)

	if err := db.StartRun("run-1", 42, `{"seed":42}`); err != nil {
		t.Fatalf("StartRun: %v", err)
	}

	var status string
	var seed int64
	if err := db.conn.QueryRow("SELECT status, seed FROM runs WHERE id = ?", "run-1").Scan(&status, &seed); err != nil {
		t.Fatalf("query run: %v", err)
	}
	if status != "running" || seed != 42 {
		t.Fatalf("expected running/42, got %s/%d", status, seed)
	}

	if err := db.FinishRun("run-1", ""); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}
	if err := db.conn.QueryRow("SELECT status FROM runs WHERE id = ?", "run-1").Scan(&status); err != nil {
		t.Fatalf("query run: %v", err)
	}
	if status != "complete" {
		t.Fatalf("expected complete, got %s", status)
	}
}

func TestFinishRunWithErrorMarksFailed(t *testing.T) {
	db := openTestDB(t)
	if err := db.StartRun("run-2", 1, "{}"); err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	if err := db.FinishRun("run-2", "partition failed"); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	var status string
	var detail *string
	if err := db.conn.QueryRow("SELECT status, error_detail FROM runs WHERE id = ?", "run-2").Scan(&status, &detail); err != nil {
		t.Fatalf("query run: %v", err)
	}
	if status != "failed" || detail == nil || *detail != "partition failed" {
		t.Fatalf("expected failed/partition failed, got %s/%v", status, detail)
	}
}

func TestRecordStageIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := db.StartRun("run-3", 1, "{}"); err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	if err := db.RecordStage("run-3", "rivers"); err != nil {
		t.Fatalf("RecordStage: %v", err)
	}
	if err := db.RecordStage("run-3", "rivers"); err != nil {
		t.Fatalf("RecordStage (repeat): %v", err)
	}

	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM run_stages WHERE run_id = ? AND stage = ?", "run-3", "rivers").Scan(&count); err != nil {
		t.Fatalf("query stages: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one stage row despite duplicate RecordStage, got %d", count)
	}
}

func TestRecordDegradation(t *testing.T) {
	db := openTestDB(t)
	if err := db.StartRun("run-4", 1, "{}"); err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	if err := db.RecordDegradation("run-4", "citystates", "fell back to uninhabited slot"); err != nil {
		t.Fatalf("RecordDegradation: %v", err)
	}

	var detail string
	if err := db.conn.QueryRow("SELECT detail FROM run_degradations WHERE run_id = ?", "run-4").Scan(&detail); err != nil {
		t.Fatalf("query degradations: %v", err)
	}
	if detail != "fell back to uninhabited slot" {
		t.Fatalf("unexpected detail: %q", detail)
	}
}
