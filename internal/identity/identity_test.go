package identity

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIdentityOf_DeterministicAndTotal(t *testing.T) {
	for _, side := range []Side{White, Black} {
		for slot := King; slot <= Pawn8; slot++ {
			a := IdentityOf(side, slot)
			b := IdentityOf(side, slot)
			if a != b {
				t.Fatalf("%s/%s: not deterministic: %+v vs %+v", side, slot, a, b)
			}
			if a.RoleLabel == "" || a.AccentColor == "" {
				t.Fatalf("%s/%s: missing role or color: %+v", side, slot, a)
			}
		}
	}
}

func TestIdentityOf_Sentinels(t *testing.T) {
	for _, side := range []Side{White, Black} {
		id := IdentityOf(side, KnightB)
		if !id.IsEmpty() || id.DisplayName != "" {
			t.Fatalf("%s KnightB should be the empty sentinel, got %+v", side, id)
		}
		if id.RoleLabel != "Knight" {
			t.Fatalf("%s KnightB role = %q", side, id.RoleLabel)
		}
	}
	empties := 0
	for _, side := range []Side{White, Black} {
		for _, e := range Roster(side) {
			if e.Identity.IsEmpty() {
				empties++
			}
		}
	}
	if empties != 2 {
		t.Fatalf("expected exactly two sentinel slots, got %d", empties)
	}
}

func TestIdentityOf_OutOfRange(t *testing.T) {
	if got := IdentityOf(Side(7), King); got != (Identity{}) {
		t.Fatalf("invalid side: %+v", got)
	}
	if got := IdentityOf(White, Slot(42)); got != (Identity{}) {
		t.Fatalf("invalid slot: %+v", got)
	}
	if Roster(Side(-1)) != nil {
		t.Fatalf("invalid side roster should be nil")
	}
}

func TestIdentityOf_KnownEntries(t *testing.T) {
	cases := []struct {
		side Side
		slot Slot
		want Identity
	}{
		{White, King, Identity{"Jon Snow", "King (Trắng)", "#1e293b"}},
		{Black, Queen, Identity{"Petyr Baelish (Littlefinger)", "Queen", "#111827"}},
		{White, RookB, Identity{"Brienne of Tarth", "Rook", "#0f766e"}},
		{Black, KnightA, Identity{"Sandor Clegane (The Hound)", "Knight", "#6b7280"}},
		{White, Pawn4, Identity{"Davos Seaworth", "Pawn", "#166534"}},
		{Black, Pawn3, Identity{"Qyburn", "Pawn", "#7f1d1d"}},
	}
	for _, c := range cases {
		if diff := cmp.Diff(c.want, IdentityOf(c.side, c.slot)); diff != "" {
			t.Errorf("%s/%s mismatch (-want +got):\n%s", c.side, c.slot, diff)
		}
	}
}

func TestRoster_SlotOrder(t *testing.T) {
	r := Roster(Black)
	if len(r) != SlotCount {
		t.Fatalf("len = %d", len(r))
	}
	for i, e := range r {
		if e.Slot != Slot(i) {
			t.Fatalf("entry %d has slot %s", i, e.Slot)
		}
	}
}

func TestSlotHelpers(t *testing.T) {
	if PawnSlot(0) != Pawn1 || PawnSlot(7) != Pawn8 || PawnSlot(8) != Pawn1 || PawnSlot(10) != Pawn3 {
		t.Fatalf("PawnSlot wrap broken")
	}
	letters := map[Slot]string{King: "K", Queen: "Q", RookB: "R", BishopA: "B", KnightB: "N", Pawn5: "P", Slot(99): ""}
	for s, want := range letters {
		if got := s.Letter(); got != want {
			t.Errorf("%d.Letter() = %q, want %q", s, got, want)
		}
	}
	for slot := King; slot <= Pawn8; slot++ {
		back, ok := ParseSlot(slot.String())
		if !ok || back != slot {
			t.Fatalf("ParseSlot(%q) = %v,%v", slot.String(), back, ok)
		}
	}
	if _, ok := ParseSlot("Jester"); ok {
		t.Fatalf("unknown slot parsed")
	}
}

func TestSideText(t *testing.T) {
	var s Side
	if err := s.UnmarshalText([]byte("Black")); err != nil || s != Black {
		t.Fatalf("UnmarshalText: %v %v", s, err)
	}
	b, err := White.MarshalText()
	if err != nil || string(b) != "white" {
		t.Fatalf("MarshalText: %q %v", b, err)
	}
	if err := s.UnmarshalText([]byte("purple")); err == nil {
		t.Fatalf("expected error for unknown side")
	}
	if White.Opponent() != Black || Black.Name() != "Black" {
		t.Fatalf("side helpers broken")
	}
}
