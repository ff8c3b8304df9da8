package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetRun(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	run := &Run{
		ID:         "run-1",
		Trigger:    TriggerAPI,
		Account:    "owner@example.com",
		Total:      5,
		Urgent:     2,
		Drafts:     3,
		Categories: []byte(`{"INVOICES":1}`),
		Sent:       true,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	got, err := s.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetRun() returned nil for an existing run")
	}
	if got.Trigger != TriggerAPI || got.Total != 5 || !got.Sent {
		t.Errorf("unexpected run: %+v", got)
	}
	if string(got.Categories) != `{"INVOICES":1}` {
		t.Errorf("categories = %s", got.Categories)
	}
}

func TestGetRun_Missing(t *testing.T) {
	s := testStore(t)

	got, err := s.GetRun(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for a missing run, got %+v", got)
	}
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, id := range []string{"a", "b", "c"} {
		run := &Run{
			ID:        id,
			Trigger:   TriggerCron,
			Total:     i,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun(%s) error = %v", id, err)
		}
	}

	runs, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	if runs[0].ID != "c" || runs[1].ID != "b" {
		t.Errorf("runs out of order: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestGetStats(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, run := range []*Run{
		{ID: "1", Trigger: TriggerCron, Total: 5, Sent: true, CreatedAt: time.Now().UTC()},
		{ID: "2", Trigger: TriggerAPI, Total: 3, Sent: false, CreatedAt: time.Now().UTC()},
	} {
		if err := s.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.TotalRuns != 2 || stats.SentRuns != 1 || stats.EmailsProcessed != 8 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
