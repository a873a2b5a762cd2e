// Package presenter maps session state onto what the board widget draws and
// turns widget drops back into controller calls.
package presenter

import (
	"context"
	"errors"
	"fmt"

	"github.com/park285/westeros-chess/internal/identity"
	"github.com/park285/westeros-chess/internal/msgcat"
	"github.com/park285/westeros-chess/internal/rules"
	"github.com/park285/westeros-chess/internal/session"
	"github.com/park285/westeros-chess/internal/token"
	"github.com/park285/westeros-chess/pkg/boarddto"
)

// DefaultStyle mirrors the prototype board: rounded corners, slate squares.
func DefaultStyle() boarddto.BoardStyle {
	return boarddto.BoardStyle{
		BorderRadius:      16,
		LightSquare:       "#f1f5f9",
		DarkSquare:        "#94a3b8",
		AnimationDuration: 150,
		BoardWidth:        560,
	}
}

type Option func(*Adapter)

// WithInitial replaces the starting position used by Start and Reset.
func WithInitial(pos session.Position) Option {
	return func(a *Adapter) { a.initial = pos }
}

func WithStyle(style boarddto.BoardStyle) Option {
	return func(a *Adapter) { a.style = style }
}

// Adapter is stateless apart from its configuration; every call takes and
// returns session.State values.
type Adapter struct {
	controller *session.Controller
	catalog    *msgcat.Catalog
	initial    session.Position
	style      boarddto.BoardStyle
	overrides  map[string]boarddto.Token
}

func New(controller *session.Controller, catalog *msgcat.Catalog, opts ...Option) (*Adapter, error) {
	if controller == nil {
		return nil, errors.New("presenter: controller is required")
	}
	if catalog == nil {
		return nil, errors.New("presenter: catalog is required")
	}
	a := &Adapter{
		controller: controller,
		catalog:    catalog,
		initial:    session.StartFEN,
		style:      DefaultStyle(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.initial = rules.MustPosition(a.initial)
	a.overrides = buildOverrides()
	return a, nil
}

func (a *Adapter) Initial() session.Position { return a.initial }

// Start opens a session at the fixed initial position.
func (a *Adapter) Start() session.State { return a.controller.Init(a.initial) }

// Reset returns to the initial position and clears history.
func (a *Adapter) Reset() session.State { return a.controller.Reset(a.initial) }

// Drop forwards a widget drop. The boolean tells the widget whether to keep
// the dragged piece where it was dropped.
func (a *Adapter) Drop(ctx context.Context, state session.State, req boarddto.DropRequest) (session.State, bool) {
	return a.controller.Apply(ctx, state, session.MoveRequest{
		From:      req.From,
		To:        req.To,
		Promotion: session.Promotion(req.Promotion),
	})
}

// Board builds the widget view of state. An error means the stored position
// is not valid FEN.
func (a *Adapter) Board(state session.State) (boarddto.BoardView, error) {
	placements, err := rules.Placements(state.Position)
	if err != nil {
		return boarddto.BoardView{}, fmt.Errorf("board view: %w", err)
	}
	turn, err := rules.SideToMove(state.Position)
	if err != nil {
		return boarddto.BoardView{}, fmt.Errorf("board view: %w", err)
	}

	slots := ResolveSlots(placements)
	pieces := make([]boarddto.Piece, 0, len(placements))
	for i, p := range placements {
		id := identity.IdentityOf(p.Side, slots[i])
		name := id.DisplayName
		if id.IsEmpty() {
			name = ""
		}
		pieces = append(pieces, boarddto.Piece{
			Square: p.Square,
			Code:   p.Code(),
			Slot:   slots[i].String(),
			Name:   name,
			Role:   id.RoleLabel,
			Token:  toDTOToken(token.Render(id)),
		})
	}

	view := boarddto.BoardView{
		FEN:          state.Position.String(),
		Turn:         turn.String(),
		TurnText:     a.text("board.turn", map[string]string{"Side": turn.Name()}, turn.Name()+" to move"),
		Pieces:       pieces,
		Overrides:    a.Overrides(),
		Style:        a.style,
		History:      a.History(state),
		HistoryEmpty: a.HistoryEmpty(),
	}
	if last, ok := state.Last(); ok {
		view.LastFrom, view.LastTo = last.From, last.To
	}
	return view, nil
}

// Overrides is the per-piece-code token table ("wK" ... "bP").
func (a *Adapter) Overrides() map[string]boarddto.Token {
	out := make(map[string]boarddto.Token, len(a.overrides))
	for k, v := range a.overrides {
		out[k] = v
	}
	return out
}

func buildOverrides() map[string]boarddto.Token {
	out := make(map[string]boarddto.Token, 12)
	for _, side := range []identity.Side{identity.White, identity.Black} {
		for _, kind := range rules.Kinds {
			id := identity.IdentityOf(side, representative(kind))
			out[rules.PieceCode(side, kind)] = toDTOToken(token.Render(id))
		}
	}
	return out
}

func toDTOToken(t token.Token) boarddto.Token {
	return boarddto.Token{Label: t.Label, Background: t.Background, Tooltip: t.Tooltip}
}

// text renders key and falls back when the catalog override is broken.
func (a *Adapter) text(key string, data any, fallback string) string {
	s, err := a.catalog.Render(key, data)
	if err != nil {
		return fallback
	}
	return s
}
