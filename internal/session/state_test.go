package session

import (
	"testing"

	"github.com/park285/westeros-chess/internal/identity"
)

func TestPromotionNormalize(t *testing.T) {
	cases := map[Promotion]Promotion{"": PromoteQueen, "Q": PromoteQueen, " r ": PromoteRook, "b": PromoteBishop, "n": PromoteKnight, "k": PromoteQueen}
	for in, want := range cases {
		if got := in.Normalize(); got != want {
			t.Errorf("%q.Normalize() = %q, want %q", in, got, want)
		}
	}
}

func TestStateCloneAndEqual(t *testing.T) {
	s := State{Position: StartFEN, History: []MoveRecord{{Side: identity.White, Notation: "e4"}}}
	c := s.Clone()
	if !s.Equal(c) {
		t.Fatalf("clone not equal")
	}
	c.History[0].Notation = "d4"
	if s.History[0].Notation != "e4" || s.Equal(c) {
		t.Fatalf("clone shares history")
	}
	if _, ok := (State{}).Last(); ok {
		t.Fatalf("empty state has no last move")
	}
	if got := (State{}).NewestFirst(); len(got) != 0 {
		t.Fatalf("NewestFirst on empty = %v", got)
	}
}
