package rules

import (
	nchess "github.com/corentings/chess/v2"

	"github.com/park285/westeros-chess/internal/identity"
	"github.com/park285/westeros-chess/internal/session"
)

// PieceKind is the piece type letter used in piece codes ("K", "Q", ...).
type PieceKind string

const (
	KindKing   PieceKind = "K"
	KindQueen  PieceKind = "Q"
	KindRook   PieceKind = "R"
	KindBishop PieceKind = "B"
	KindKnight PieceKind = "N"
	KindPawn   PieceKind = "P"
)

// Kinds lists piece kinds in legend order.
var Kinds = []PieceKind{KindKing, KindQueen, KindRook, KindBishop, KindKnight, KindPawn}

// Placement is a piece standing on a square.
type Placement struct {
	Square string
	File   int // 0 = a
	Rank   int // 0 = rank 1
	Side   identity.Side
	Kind   PieceKind
}

// Code is the widget piece code, e.g. "wK" or "bP".
func (p Placement) Code() string {
	return PieceCode(p.Side, p.Kind)
}

func PieceCode(side identity.Side, kind PieceKind) string {
	if side == identity.Black {
		return "b" + string(kind)
	}
	return "w" + string(kind)
}

// Placements lists the pieces of pos in square order a1, b1, ..., h8.
func Placements(pos session.Position) ([]Placement, error) {
	game, err := newGame(pos)
	if err != nil {
		return nil, err
	}
	board := game.Position().Board()
	out := make([]Placement, 0, 32)
	for i := 0; i < 64; i++ {
		sq := nchess.Square(i)
		p := board.Piece(sq)
		if p == nchess.NoPiece {
			continue
		}
		kind, ok := kindOf(p.Type())
		if !ok {
			continue
		}
		out = append(out, Placement{
			Square: sq.String(),
			File:   i % 8,
			Rank:   i / 8,
			Side:   sideOf(p.Color()),
			Kind:   kind,
		})
	}
	return out, nil
}

// SideToMove returns whose turn it is in pos.
func SideToMove(pos session.Position) (identity.Side, error) {
	game, err := newGame(pos)
	if err != nil {
		return identity.White, err
	}
	return sideOf(game.Position().Turn()), nil
}

func kindOf(pt nchess.PieceType) (PieceKind, bool) {
	switch pt {
	case nchess.King:
		return KindKing, true
	case nchess.Queen:
		return KindQueen, true
	case nchess.Rook:
		return KindRook, true
	case nchess.Bishop:
		return KindBishop, true
	case nchess.Knight:
		return KindKnight, true
	case nchess.Pawn:
		return KindPawn, true
	default:
		return "", false
	}
}
