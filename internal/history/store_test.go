package history

import (
	"context"
	"testing"
	"time"
)

func TestRecordAndQuery(t *testing.T) {
	s, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.RecordWin(ctx, "room-1", "p1", "Alice", 42*time.Second); err != nil {
		t.Fatalf("RecordWin: %v", err)
	}
	if err := s.RecordWin(ctx, "room-1", "p2", "Bob", 30*time.Second); err != nil {
		t.Fatalf("RecordWin: %v", err)
	}
	if err := s.RecordWin(ctx, "room-2", "p1", "Alice", 10*time.Second); err != nil {
		t.Fatalf("RecordWin: %v", err)
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(recent))
	}
	if recent[0].RoomID != "room-2" || recent[0].WinnerName != "Alice" {
		t.Fatalf("unexpected newest round: %+v", recent[0])
	}
	if recent[0].DurationMs != 10_000 {
		t.Fatalf("unexpected duration: %d", recent[0].DurationMs)
	}

	totals, err := s.PlayerTotals(ctx)
	if err != nil {
		t.Fatalf("PlayerTotals: %v", err)
	}
	if len(totals) != 2 || totals[0].PlayerName != "Alice" || totals[0].Wins != 2 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}
