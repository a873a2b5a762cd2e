package presenter

import (
	"github.com/park285/westeros-chess/internal/identity"
	"github.com/park285/westeros-chess/internal/rules"
)

// ResolveSlots picks a representative role slot for every placement. It is a
// positional convention, not provenance tracking: a rook that crossed the
// board takes the identity of whichever half it now stands on.
//
//   - King, Queen: fixed slot.
//   - Rook, Bishop, Knight: slot A on files a-d, slot B on files e-h.
//   - Pawns: Pawn(n) where n counts same-colored pawns in square order
//     a1, b1, ..., h8, wrapping after eight.
//
// placements must be in square order (rules.Placements guarantees this).
func ResolveSlots(placements []rules.Placement) []identity.Slot {
	out := make([]identity.Slot, len(placements))
	var pawns [2]int
	for i, p := range placements {
		switch p.Kind {
		case rules.KindKing:
			out[i] = identity.King
		case rules.KindQueen:
			out[i] = identity.Queen
		case rules.KindRook:
			out[i] = byHalf(p.File, identity.RookA, identity.RookB)
		case rules.KindBishop:
			out[i] = byHalf(p.File, identity.BishopA, identity.BishopB)
		case rules.KindKnight:
			out[i] = byHalf(p.File, identity.KnightA, identity.KnightB)
		case rules.KindPawn:
			out[i] = identity.PawnSlot(pawns[p.Side])
			pawns[p.Side]++
		}
	}
	return out
}

// ResolveSlot resolves a single placement in the context of the full board.
func ResolveSlot(placements []rules.Placement, square string) (identity.Slot, bool) {
	slots := ResolveSlots(placements)
	for i, p := range placements {
		if p.Square == square {
			return slots[i], true
		}
	}
	return identity.King, false
}

func byHalf(file int, queenside, kingside identity.Slot) identity.Slot {
	if file < 4 {
		return queenside
	}
	return kingside
}

// representative is the slot whose identity stands for a whole piece type in
// the per-type override table.
func representative(kind rules.PieceKind) identity.Slot {
	switch kind {
	case rules.KindQueen:
		return identity.Queen
	case rules.KindRook:
		return identity.RookA
	case rules.KindBishop:
		return identity.BishopA
	case rules.KindKnight:
		return identity.KnightA
	case rules.KindPawn:
		return identity.Pawn1
	default:
		return identity.King
	}
}
