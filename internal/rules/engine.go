// Package rules is the chess rule collaborator backed by corentings/chess.
package rules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"

	"github.com/park285/westeros-chess/internal/identity"
	"github.com/park285/westeros-chess/internal/session"
)

var (
	ErrInvalidSquare   = errors.New("rules: invalid square")
	ErrInvalidPosition = errors.New("rules: invalid position")
)

// Engine validates moves with full standard chess legality.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

var _ session.Rules = (*Engine)(nil)

// Apply checks q against the position and, when legal, returns the
// resulting position and SAN. An illegal move is a Verdict with Legal=false
// and a nil error; errors are reserved for malformed input.
func (e *Engine) Apply(ctx context.Context, q session.Query) (session.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return session.Verdict{}, err
	}
	game, err := newGame(q.Position)
	if err != nil {
		return session.Verdict{}, err
	}
	from, err := ParseSquare(q.From)
	if err != nil {
		return session.Verdict{}, err
	}
	to, err := ParseSquare(q.To)
	if err != nil {
		return session.Verdict{}, err
	}

	pos := game.Position()
	uci := from.String() + to.String()
	if promotes(pos, from, to) {
		uci += string(q.Promotion.Normalize())
	}
	if !isValidMove(game, uci) {
		return session.Verdict{Legal: false}, nil
	}
	mv, err := nchess.UCINotation{}.Decode(pos, uci)
	if err != nil {
		return session.Verdict{Legal: false}, nil
	}
	mover := sideOf(pos.Turn())
	if err := game.Move(mv, nil); err != nil {
		return session.Verdict{Legal: false}, nil
	}

	return session.Verdict{
		Legal:    true,
		Position: session.Position(game.FEN()),
		Mover:    mover,
		Notation: nchess.AlgebraicNotation{}.Encode(pos, mv),
		Outcome:  game.Outcome().String(),
		Method:   game.Method().String(),
	}, nil
}

func isValidMove(game *nchess.Game, uci string) bool {
	moves := game.ValidMoves()
	for i := range moves {
		m := moves[i]
		if m.String() == uci {
			return true
		}
	}
	return false
}

// promotes reports whether the piece on from is a pawn arriving on its last
// rank. Other moves never carry a promotion suffix.
func promotes(pos *nchess.Position, from, to nchess.Square) bool {
	p := pos.Board().Piece(from)
	if p.Type() != nchess.Pawn {
		return false
	}
	switch p.Color() {
	case nchess.White:
		return to.Rank() == nchess.Rank8
	case nchess.Black:
		return to.Rank() == nchess.Rank1
	default:
		return false
	}
}

func newGame(pos session.Position) (*nchess.Game, error) {
	fen := strings.TrimSpace(string(pos))
	if fen == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPosition)
	}
	opt, err := nchess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	return nchess.NewGame(opt), nil
}

// Validate reports whether pos parses as FEN.
func Validate(pos session.Position) error {
	_, err := newGame(pos)
	return err
}

// MustPosition panics when fen is malformed. Use for authored constants only.
func MustPosition(fen session.Position) session.Position {
	if err := Validate(fen); err != nil {
		panic(err)
	}
	return fen
}

// ParseSquare parses algebraic coordinates such as "e4".
func ParseSquare(raw string) (nchess.Square, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return nchess.NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, raw)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	return nchess.Square(rank*8 + file), nil
}

func sideOf(c nchess.Color) identity.Side {
	if c == nchess.Black {
		return identity.Black
	}
	return identity.White
}
