package session

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/park285/westeros-chess/internal/identity"
)

// Query is what the rule collaborator is asked to validate.
type Query struct {
	Position  Position
	From      string
	To        string
	Promotion Promotion
}

// Verdict is the rule collaborator's answer. Only Legal is meaningful when
// the move is rejected.
type Verdict struct {
	Legal    bool
	Position Position
	Mover    identity.Side
	Notation string
	// Outcome/Method은 현재 UI에서 쓰지 않지만 그대로 전달한다.
	Outcome string
	Method  string
}

// Rules enforces standard chess legality and produces move notation.
type Rules interface {
	Apply(ctx context.Context, q Query) (Verdict, error)
}

var ErrNoRules = errors.New("session: rules collaborator is required")

// Controller applies moves to session states through a Rules collaborator.
// It holds no session state of its own.
type Controller struct {
	rules  Rules
	logger *zap.Logger
}

func NewController(rules Rules, logger *zap.Logger) (*Controller, error) {
	if rules == nil {
		return nil, ErrNoRules
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{rules: rules, logger: logger}, nil
}

// Init starts a session at initial with an empty history.
func (c *Controller) Init(initial Position) State {
	return State{Position: initial}
}

// Reset discards all history unconditionally.
func (c *Controller) Reset(initial Position) State {
	return c.Init(initial)
}

// Apply validates req against state. A rejected move returns state as is
// with false; it is never reported as an error. A legal move returns a new
// State with one more history record.
func (c *Controller) Apply(ctx context.Context, state State, req MoveRequest) (State, bool) {
	q := Query{
		Position:  state.Position,
		From:      req.From,
		To:        req.To,
		Promotion: req.Promotion.Normalize(),
	}
	v, err := c.rules.Apply(ctx, q)
	if err != nil {
		c.logger.Debug("move_rejected",
			zap.String("from", req.From),
			zap.String("to", req.To),
			zap.Error(err),
		)
		return state, false
	}
	if !v.Legal {
		c.logger.Debug("move_illegal", zap.String("from", req.From), zap.String("to", req.To))
		return state, false
	}

	history := make([]MoveRecord, len(state.History), len(state.History)+1)
	copy(history, state.History)
	history = append(history, MoveRecord{
		Side:     v.Mover,
		Notation: v.Notation,
		From:     squareName(req.From),
		To:       squareName(req.To),
	})
	return State{Position: v.Position, History: history}, true
}

func squareName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
