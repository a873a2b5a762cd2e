package identity

import (
	"fmt"
	"strings"
)

// Side identifies a chess side.
type Side int8

const (
	White Side = iota
	Black
)

func (s Side) String() string {
	if s == Black {
		return "black"
	}
	return "white"
}

// Name returns the capitalised side name used in move history.
func (s Side) Name() string {
	if s == Black {
		return "Black"
	}
	return "White"
}

func (s Side) Opponent() Side {
	if s == Black {
		return White
	}
	return Black
}

func (s Side) valid() bool { return s == White || s == Black }

// ParseSide accepts "white"/"w" and "black"/"b" in any case.
func ParseSide(raw string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	default:
		return White, false
	}
}

func (s Side) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid side %d", s)
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	v, ok := ParseSide(string(b))
	if !ok {
		return fmt.Errorf("invalid side %q", string(b))
	}
	*s = v
	return nil
}

// Slot is one of the sixteen fixed identity slots per side.
type Slot int8

const (
	King Slot = iota
	Queen
	RookA
	RookB
	BishopA
	BishopB
	KnightA
	KnightB
	Pawn1
	Pawn2
	Pawn3
	Pawn4
	Pawn5
	Pawn6
	Pawn7
	Pawn8
)

// SlotCount is the number of role slots per side.
const SlotCount = 16

var slotNames = [SlotCount]string{
	"King", "Queen",
	"RookA", "RookB",
	"BishopA", "BishopB",
	"KnightA", "KnightB",
	"Pawn1", "Pawn2", "Pawn3", "Pawn4", "Pawn5", "Pawn6", "Pawn7", "Pawn8",
}

func (s Slot) Valid() bool { return s >= King && s <= Pawn8 }

func (s Slot) String() string {
	if !s.Valid() {
		return ""
	}
	return slotNames[s]
}

// Letter returns the piece letter of the slot's piece type (K, Q, R, B, N, P).
func (s Slot) Letter() string {
	switch {
	case s == King:
		return "K"
	case s == Queen:
		return "Q"
	case s == RookA || s == RookB:
		return "R"
	case s == BishopA || s == BishopB:
		return "B"
	case s == KnightA || s == KnightB:
		return "N"
	case s >= Pawn1 && s <= Pawn8:
		return "P"
	default:
		return ""
	}
}

// PawnSlot maps a zero-based pawn index onto Pawn1..Pawn8, wrapping around.
func PawnSlot(index int) Slot {
	if index < 0 {
		index = -index
	}
	return Pawn1 + Slot(index%8)
}

// ParseSlot is the inverse of Slot.String.
func ParseSlot(raw string) (Slot, bool) {
	v := strings.TrimSpace(raw)
	for i, name := range slotNames {
		if strings.EqualFold(name, v) {
			return Slot(i), true
		}
	}
	return King, false
}
