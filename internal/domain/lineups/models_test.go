package lineups

import "testing"

func TestPositionsCoversAllNineSlots(t *testing.T) {
	got := Positions()

	if len(got) != 9 {
		t.Fatalf("expected 9 positions, got %d", len(got))
	}
	seen := make(map[Position]bool, len(got))
	for _, p := range got {
		if seen[p] {
			t.Fatalf("duplicate position %q", p)
		}
		seen[p] = true
	}
	if got[0] != Pitcher || got[8] != RightField {
		t.Fatalf("unexpected canonical order: %v", got)
	}
}

func TestParsePosition(t *testing.T) {
	p, err := ParsePosition("shortstop")
	if err != nil {
		t.Fatalf("expected shortstop to parse, got %v", err)
	}
	if p != Shortstop {
		t.Fatalf("expected %q, got %q", Shortstop, p)
	}

	if _, err := ParsePosition("designatedHitter"); err == nil {
		t.Fatal("expected error for unknown position")
	}
	if _, err := ParsePosition(""); err == nil {
		t.Fatal("expected error for empty position")
	}
}

func TestLineupPlayerID(t *testing.T) {
	l := NewLineup(7)
	if l.ID != 7 {
		t.Fatalf("expected id 7, got %d", l.ID)
	}
	if _, ok := l.PlayerID(Catcher); ok {
		t.Fatal("expected fresh lineup to have no assignments")
	}

	l.Slots[Catcher] = "12"

	id, ok := l.PlayerID(Catcher)
	if !ok || id != "12" {
		t.Fatalf("expected catcher assignment 12, got %q (ok=%v)", id, ok)
	}
}
