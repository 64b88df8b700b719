package calibration

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	h, err := NewHistory(context.Background(), db)
	if err != nil {
		t.Fatalf("NewHistory() error = %v", err)
	}
	return h
}

func TestHistoryRecordAndRecent(t *testing.T) {
	h := newTestHistory(t)
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	sessions := []Session{
		{
			CalibrationType: "Npose",
			Outcome:         OutcomeCompleted,
			Quality:         QualityGood,
			StartedAt:       base,
			FinishedAt:      base.Add(30 * time.Second),
		},
		{
			CalibrationType: "Tpose",
			Outcome:         OutcomeRejected,
			Quality:         QualityPoor,
			Warnings:        []string{"left arm drift", "pelvis offset"},
			StartedAt:       base.Add(time.Minute),
			FinishedAt:      base.Add(90 * time.Second),
		},
	}
	for _, s := range sessions {
		if err := h.Record(s); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := h.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent() returned %d sessions, want 2", len(got))
	}
	// Newest first.
	if got[0].CalibrationType != "Tpose" || got[1].CalibrationType != "Npose" {
		t.Errorf("order = %s, %s; want Tpose, Npose", got[0].CalibrationType, got[1].CalibrationType)
	}
	if got[0].Quality != QualityPoor || got[0].Outcome != OutcomeRejected {
		t.Errorf("Tpose session = %s/%s", got[0].Outcome, got[0].Quality)
	}
	if len(got[0].Warnings) != 2 || got[0].Warnings[0] != "left arm drift" {
		t.Errorf("warnings = %v", got[0].Warnings)
	}
	if len(got[1].Warnings) != 0 {
		t.Errorf("Npose warnings = %v, want none", got[1].Warnings)
	}
	if got[0].ID == "" {
		t.Error("Record must assign an id when none is set")
	}
}

func TestHistoryRecentLimit(t *testing.T) {
	h := newTestHistory(t)
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s := Session{
			CalibrationType: "Npose",
			Outcome:         OutcomeCompleted,
			Quality:         QualityAcceptable,
			StartedAt:       base.Add(time.Duration(i) * time.Minute),
			FinishedAt:      base.Add(time.Duration(i)*time.Minute + 30*time.Second),
		}
		if err := h.Record(s); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := h.Recent(context.Background(), 3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Recent(3) returned %d sessions", len(got))
	}
}
