package session

import (
	"strings"

	"github.com/park285/westeros-chess/internal/identity"
)

// Position is a full board snapshot in FEN.
type Position string

// StartFEN is the fixed initial position of every session.
const StartFEN Position = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func (p Position) String() string { return string(p) }

// Promotion is the piece a pawn turns into on the last rank.
type Promotion string

const (
	PromoteQueen  Promotion = "q"
	PromoteRook   Promotion = "r"
	PromoteBishop Promotion = "b"
	PromoteKnight Promotion = "n"
)

// Normalize lowercases the choice and falls back to Queen when it is empty
// or unknown.
func (p Promotion) Normalize() Promotion {
	switch v := Promotion(strings.ToLower(strings.TrimSpace(string(p)))); v {
	case PromoteQueen, PromoteRook, PromoteBishop, PromoteKnight:
		return v
	default:
		return PromoteQueen
	}
}

// MoveRequest is a transient move attempt produced from a widget drop.
type MoveRequest struct {
	From      string
	To        string
	Promotion Promotion
}

// MoveRecord is one applied move. From/To are kept for last-move highlights.
type MoveRecord struct {
	Side     identity.Side `json:"side"`
	Notation string        `json:"notation"`
	From     string        `json:"from,omitempty"`
	To       string        `json:"to,omitempty"`
}

// State is a session snapshot. It is treated as a value: transitions return
// a new State and never write into an existing History backing array.
type State struct {
	Position Position     `json:"position"`
	History  []MoveRecord `json:"history"`
}

// Len is the number of applied moves.
func (s State) Len() int { return len(s.History) }

// Last returns the most recent move.
func (s State) Last() (MoveRecord, bool) {
	if len(s.History) == 0 {
		return MoveRecord{}, false
	}
	return s.History[len(s.History)-1], true
}

// NewestFirst returns a display-order copy of the history.
func (s State) NewestFirst() []MoveRecord {
	out := make([]MoveRecord, len(s.History))
	for i, rec := range s.History {
		out[len(s.History)-1-i] = rec
	}
	return out
}

// Clone returns a deep copy.
func (s State) Clone() State {
	c := State{Position: s.Position}
	if len(s.History) > 0 {
		c.History = append([]MoveRecord(nil), s.History...)
	}
	return c
}

// Equal compares position and history element-wise.
func (s State) Equal(o State) bool {
	if s.Position != o.Position || len(s.History) != len(o.History) {
		return false
	}
	for i := range s.History {
		if s.History[i] != o.History[i] {
			return false
		}
	}
	return true
}
