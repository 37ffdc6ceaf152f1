package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crickd/insights-engine/internal/model"
)

func testMatch(id string) *model.Match {
	return &model.Match{
		ID:         id,
		HomeTeam:   "Australia",
		AwayTeam:   "India",
		Venue:      "MCG",
		OversLimit: 50,
		Status:     "live",
		Roster: []model.Player{
			{ID: "p1", Name: "Smith"},
			{ID: "p2", Name: "Kohli"},
		},
		CreatedAt: time.Now(),
	}
}

func TestMemoryStore_CreateAndGetMatch(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	m := testMatch("m1")
	if err := s.CreateMatch(ctx, m); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	got, err := s.GetMatch(ctx, "m1")
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if got.HomeTeam != "Australia" || got.OversLimit != 50 {
		t.Errorf("unexpected match: %+v", got)
	}
	if len(got.Roster) != 2 {
		t.Errorf("expected 2 roster entries, got %d", len(got.Roster))
	}
}

func TestMemoryStore_CreateDuplicate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.CreateMatch(ctx, testMatch("m1")); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if err := s.CreateMatch(ctx, testMatch("m1")); err == nil {
		t.Error("expected error for duplicate match")
	}
}

func TestMemoryStore_GetMatchNotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.GetMatch(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_GetMatchReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.CreateMatch(ctx, testMatch("m1")); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	got, _ := s.GetMatch(ctx, "m1")
	got.Status = "abandoned"
	got.Roster[0].Name = "mutated"

	fresh, _ := s.GetMatch(ctx, "m1")
	if fresh.Status != "live" || fresh.Roster[0].Name != "Smith" {
		t.Error("mutation of returned match leaked into store")
	}
}

func TestMemoryStore_ListMatchesNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	older := testMatch("m1")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := testMatch("m2")

	if err := s.CreateMatch(ctx, older); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if err := s.CreateMatch(ctx, newer); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	matches, err := s.ListMatches(ctx)
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].ID != "m2" || matches[1].ID != "m1" {
		t.Errorf("expected newest first, got %s then %s", matches[0].ID, matches[1].ID)
	}
}

func TestMemoryStore_SetMatchStatus(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.CreateMatch(ctx, testMatch("m1")); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if err := s.SetMatchStatus(ctx, "m1", "completed"); err != nil {
		t.Fatalf("SetMatchStatus: %v", err)
	}

	got, _ := s.GetMatch(ctx, "m1")
	if got.Status != "completed" {
		t.Errorf("expected status completed, got %s", got.Status)
	}

	if err := s.SetMatchStatus(ctx, "nope", "completed"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_AppendAndGetDeliveries(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.CreateMatch(ctx, testMatch("m1")); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	batch1 := []model.Delivery{
		{Inning: 1, Over: 0, Ball: 1, Runs: 4},
		{Inning: 1, Over: 0, Ball: 2, Runs: 0},
	}
	batch2 := []model.Delivery{
		{Inning: 1, Over: 0, Ball: 3, Runs: 6},
	}

	if err := s.AppendDeliveries(ctx, "m1", batch1); err != nil {
		t.Fatalf("AppendDeliveries: %v", err)
	}
	if err := s.AppendDeliveries(ctx, "m1", batch2); err != nil {
		t.Fatalf("AppendDeliveries: %v", err)
	}

	got, err := s.GetDeliveries(ctx, "m1")
	if err != nil {
		t.Fatalf("GetDeliveries: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(got))
	}
	if got[2].Runs != 6 {
		t.Errorf("append order not preserved: %+v", got)
	}

	n, err := s.CountDeliveries(ctx, "m1")
	if err != nil {
		t.Fatalf("CountDeliveries: %v", err)
	}
	if n != 3 {
		t.Errorf("expected count 3, got %d", n)
	}
}

func TestMemoryStore_DeliveriesUnknownMatch(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.AppendDeliveries(ctx, "nope", []model.Delivery{{Runs: 1}}); !errors.Is(err, ErrNotFound) {
		t.Errorf("AppendDeliveries: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetDeliveries(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDeliveries: expected ErrNotFound, got %v", err)
	}
	if _, err := s.CountDeliveries(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CountDeliveries: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_Snapshot(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.CreateMatch(ctx, testMatch("m1")); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	if _, err := s.GetSnapshot(ctx, "m1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound before first PutSnapshot, got %v", err)
	}

	snap := &model.MatchSnapshot{TotalRuns: 120, OversCompleted: 18, OversLimit: 50, Version: 3}
	if err := s.PutSnapshot(ctx, "m1", snap); err != nil {
		t.Fatalf("PutSnapshot: %v", err)
	}

	got, err := s.GetSnapshot(ctx, "m1")
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if got.TotalRuns != 120 || got.Version != 3 {
		t.Errorf("unexpected snapshot: %+v", got)
	}

	// Newer version replaces the old one.
	snap.TotalRuns = 131
	snap.Version = 4
	if err := s.PutSnapshot(ctx, "m1", snap); err != nil {
		t.Fatalf("PutSnapshot: %v", err)
	}
	got, _ = s.GetSnapshot(ctx, "m1")
	if got.TotalRuns != 131 || got.Version != 4 {
		t.Errorf("snapshot not replaced: %+v", got)
	}

	if err := s.PutSnapshot(ctx, "nope", snap); !errors.Is(err, ErrNotFound) {
		t.Errorf("PutSnapshot: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ConcurrentAppends(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.CreateMatch(ctx, testMatch("m1")); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 20; j++ {
				_ = s.AppendDeliveries(ctx, "m1", []model.Delivery{{Inning: 1, Runs: 1}})
			}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	n, err := s.CountDeliveries(ctx, "m1")
	if err != nil {
		t.Fatalf("CountDeliveries: %v", err)
	}
	if n != 200 {
		t.Errorf("expected 200 deliveries, got %d", n)
	}
}
