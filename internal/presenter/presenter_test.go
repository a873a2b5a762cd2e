package presenter

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/park285/westeros-chess/internal/identity"
	"github.com/park285/westeros-chess/internal/msgcat"
	"github.com/park285/westeros-chess/internal/rules"
	"github.com/park285/westeros-chess/internal/session"
	"github.com/park285/westeros-chess/pkg/boarddto"
)

func newAdapter(t *testing.T, opts ...Option) *Adapter {
	t.Helper()
	ctrl, err := session.NewController(rules.NewEngine(), nil)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	a, err := New(ctrl, msgcat.MustNew(), opts...)
	if err != nil {
		t.Fatalf("presenter.New: %v", err)
	}
	return a
}

func slotsBySquare(t *testing.T, pos session.Position) map[string]identity.Slot {
	t.Helper()
	ps, err := rules.Placements(pos)
	if err != nil {
		t.Fatalf("Placements: %v", err)
	}
	slots := ResolveSlots(ps)
	out := make(map[string]identity.Slot, len(ps))
	for i, p := range ps {
		out[p.Square] = slots[i]
	}
	return out
}

func TestResolveSlots_StartPosition(t *testing.T) {
	got := slotsBySquare(t, session.StartFEN)
	want := map[string]identity.Slot{
		"a1": identity.RookA, "b1": identity.KnightA, "c1": identity.BishopA, "d1": identity.Queen,
		"e1": identity.King, "f1": identity.BishopB, "g1": identity.KnightB, "h1": identity.RookB,
		"a8": identity.RookA, "g8": identity.KnightB, "h8": identity.RookB, "e8": identity.King,
	}
	for sq, slot := range want {
		if got[sq] != slot {
			t.Errorf("%s = %s, want %s", sq, got[sq], slot)
		}
	}
	for i, f := range "abcdefgh" {
		if s := got[string(f)+"2"]; s != identity.PawnSlot(i) {
			t.Errorf("%c2 = %s, want %s", f, s, identity.PawnSlot(i))
		}
		if s := got[string(f)+"7"]; s != identity.PawnSlot(i) {
			t.Errorf("%c7 = %s, want %s", f, s, identity.PawnSlot(i))
		}
	}
}

func TestResolveSlots_Convention(t *testing.T) {
	// rook on d4 stays queenside, knight on e5 kingside, pawns counted a1..h8
	got := slotsBySquare(t, "4k3/8/8/4N3/3R4/P7/1P6/4K3 w - - 0 1")
	if got["d4"] != identity.RookA || got["e5"] != identity.KnightB {
		t.Fatalf("back-rank convention: d4=%s e5=%s", got["d4"], got["e5"])
	}
	if got["b2"] != identity.Pawn1 || got["a3"] != identity.Pawn2 {
		t.Fatalf("pawn order: b2=%s a3=%s", got["b2"], got["a3"])
	}
	if slot, ok := ResolveSlot(mustPlacements(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1"), "e8"); !ok || slot != identity.King {
		t.Fatalf("ResolveSlot e8 = %s %v", slot, ok)
	}
}

func mustPlacements(t *testing.T, pos session.Position) []rules.Placement {
	t.Helper()
	ps, err := rules.Placements(pos)
	if err != nil {
		t.Fatalf("Placements: %v", err)
	}
	return ps
}

func TestBoard_StartView(t *testing.T) {
	a := newAdapter(t)
	view, err := a.Board(a.Start())
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if view.FEN != string(session.StartFEN) || view.Turn != "white" || view.TurnText != "White to move" {
		t.Fatalf("view header = %q %q %q", view.FEN, view.Turn, view.TurnText)
	}
	if len(view.Pieces) != 32 || len(view.History) != 0 {
		t.Fatalf("pieces=%d history=%d", len(view.Pieces), len(view.History))
	}
	if view.HistoryEmpty != "No moves yet. Drag a piece to start." {
		t.Fatalf("empty text = %q", view.HistoryEmpty)
	}
	if diff := cmp.Diff(DefaultStyle(), view.Style); diff != "" {
		t.Fatalf("style (-want +got):\n%s", diff)
	}
	byCode := map[string]boarddto.Piece{}
	for _, p := range view.Pieces {
		byCode[p.Square] = p
	}
	if p := byCode["e1"]; p.Name != "Jon Snow" || p.Token.Label != "JS" || p.Slot != "King" {
		t.Fatalf("e1 = %+v", p)
	}
	if p := byCode["g8"]; p.Name != "" || p.Token.Label != "" || p.Token.Tooltip != "" || p.Token.Background != "#6b7280" {
		t.Fatalf("g8 sentinel = %+v", p)
	}
}

func TestOverrides(t *testing.T) {
	ov := newAdapter(t).Overrides()
	if len(ov) != 12 {
		t.Fatalf("len = %d", len(ov))
	}
	want := map[string]boarddto.Token{
		"wK": {Label: "JS", Background: "#1e293b", Tooltip: "Jon Snow • King (Trắng)"},
		"wR": {Label: "ES", Background: "#0f766e", Tooltip: "Eddard Stark • Rook"},
		"bN": {Label: "SC", Background: "#6b7280", Tooltip: "Sandor Clegane (The Hound) • Knight"},
		"bP": {Label: "RB", Background: "#7f1d1d", Tooltip: "Ramsay Bolton • Pawn"},
	}
	for code, tok := range want {
		if diff := cmp.Diff(tok, ov[code]); diff != "" {
			t.Errorf("%s (-want +got):\n%s", code, diff)
		}
	}
	ov["wK"] = boarddto.Token{}
	if newAdapter(t).Overrides()["wK"].Label != "JS" {
		t.Fatalf("Overrides returned shared map")
	}
}

func TestDropAndHistory(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()
	st, ok := a.Drop(ctx, a.Start(), boarddto.DropRequest{From: "e2", To: "e4"})
	if !ok {
		t.Fatalf("e2e4 rejected")
	}
	st, ok = a.Drop(ctx, st, boarddto.DropRequest{From: "e7", To: "e5"})
	if !ok {
		t.Fatalf("e7e5 rejected")
	}
	if _, ok := a.Drop(ctx, st, boarddto.DropRequest{From: "e4", To: "e5"}); ok {
		t.Fatalf("blocked pawn moved")
	}
	if diff := cmp.Diff([]string{"Black: e5", "White: e4"}, a.HistoryLines(st)); diff != "" {
		t.Fatalf("history (-want +got):\n%s", diff)
	}
	view, err := a.Board(st)
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if view.LastFrom != "e7" || view.LastTo != "e5" || view.Turn != "white" {
		t.Fatalf("view = from %q to %q turn %q", view.LastFrom, view.LastTo, view.Turn)
	}

	reset := a.Reset()
	if reset.Len() != 0 || reset.Position != a.Initial() {
		t.Fatalf("reset = %+v", reset)
	}
}

func TestBoard_MalformedPosition(t *testing.T) {
	a := newAdapter(t)
	if _, err := a.Board(session.State{Position: "xx"}); err == nil {
		t.Fatalf("expected error for malformed position")
	}
}

func TestLegend(t *testing.T) {
	l := newAdapter(t).Legend()
	if len(l.Sides) != 2 {
		t.Fatalf("sides = %d", len(l.Sides))
	}
	white := "White: Jon Snow (K), Daenerys Targaryen (Q), Eddard Stark & Brienne of Tarth (R), " +
		"Maester Aemon & Samwell Tarly (B), Arya Stark (N), Davos Seaworth/Podrick Payne/Grenn (P)"
	if l.Sides[0].Text != white {
		t.Fatalf("white legend:\n got %q\nwant %q", l.Sides[0].Text, white)
	}
	if l.Observer != "Varys, Master of the Board (observer)" {
		t.Fatalf("observer = %q", l.Observer)
	}
}

func TestNew_CustomInitial(t *testing.T) {
	pos := session.Position("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	a := newAdapter(t, WithInitial(pos))
	if a.Start().Position != pos {
		t.Fatalf("initial not applied")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for malformed initial position")
		}
	}()
	newAdapter(t, WithInitial("bogus"))
}
