// Package board runs themed chess sessions on top of a Store: one board id
// per session, state changes only through Store.Update.
package board

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/park285/westeros-chess/internal/presenter"
	"github.com/park285/westeros-chess/internal/render"
	"github.com/park285/westeros-chess/internal/rules"
	"github.com/park285/westeros-chess/internal/session"
	"github.com/park285/westeros-chess/internal/store"
	"github.com/park285/westeros-chess/pkg/boarddto"
)

type Service struct {
	store     store.Store
	presenter *presenter.Adapter
	renderer  render.BoardRenderer
	logger    *zap.Logger
}

func NewService(st store.Store, p *presenter.Adapter, r render.BoardRenderer, logger *zap.Logger) (*Service, error) {
	if st == nil || p == nil || r == nil {
		return nil, errors.New("board: store, presenter and renderer are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, presenter: p, renderer: r, logger: logger}, nil
}

// Start opens a new session at the initial position.
func (s *Service) Start(ctx context.Context) (boarddto.BoardView, error) {
	st := s.presenter.Start()
	id, err := s.store.Create(ctx, st)
	if err != nil {
		return boarddto.BoardView{}, fmt.Errorf("create board: %w", err)
	}
	s.logger.Info("board_start", zap.String("board_id", id))
	return s.view(id, st)
}

func (s *Service) View(ctx context.Context, id string) (boarddto.BoardView, error) {
	st, err := s.store.Load(ctx, id)
	if err != nil {
		return boarddto.BoardView{}, err
	}
	return s.view(id, st)
}

// Drop applies a widget drop. An illegal move is not an error: it comes
// back as Applied=false together with the unchanged board.
func (s *Service) Drop(ctx context.Context, id string, req boarddto.DropRequest) (boarddto.DropResponse, error) {
	if _, err := rules.ParseSquare(req.From); err != nil {
		return boarddto.DropResponse{}, err
	}
	if _, err := rules.ParseSquare(req.To); err != nil {
		return boarddto.DropResponse{}, err
	}

	st, applied, err := s.store.Update(ctx, id, func(cur session.State) (session.State, bool) {
		return s.presenter.Drop(ctx, cur, req)
	})
	if err != nil {
		s.logger.Warn("board_drop_error", zap.String("board_id", id), zap.Error(err))
		return boarddto.DropResponse{}, err
	}
	s.logger.Info("board_drop",
		zap.String("board_id", id),
		zap.String("from", req.From),
		zap.String("to", req.To),
		zap.Bool("applied", applied),
		zap.Int("moves", st.Len()),
	)
	view, err := s.view(id, st)
	if err != nil {
		return boarddto.DropResponse{}, err
	}
	return boarddto.DropResponse{Applied: applied, Board: view}, nil
}

// Reset returns the board to the initial position and clears its history.
func (s *Service) Reset(ctx context.Context, id string) (boarddto.BoardView, error) {
	var discarded int
	st, _, err := s.store.Update(ctx, id, func(cur session.State) (session.State, bool) {
		discarded = cur.Len()
		return s.presenter.Reset(), true
	})
	if err != nil {
		return boarddto.BoardView{}, err
	}
	s.logger.Info("board_reset", zap.String("board_id", id), zap.Int("discarded_moves", discarded))
	return s.view(id, st)
}

// History lists moves most-recent-first.
func (s *Service) History(ctx context.Context, id string) (boarddto.HistoryResponse, error) {
	st, err := s.store.Load(ctx, id)
	if err != nil {
		return boarddto.HistoryResponse{}, err
	}
	return boarddto.HistoryResponse{
		Entries:   s.presenter.History(st),
		EmptyText: s.presenter.HistoryEmpty(),
	}, nil
}

// Image renders the board as PNG.
func (s *Service) Image(ctx context.Context, id string, opts render.Options) ([]byte, error) {
	view, err := s.View(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.RenderPNG(ctx, view, opts)
	if err != nil {
		s.logger.Error("board_render_error", zap.String("board_id", id), zap.Error(err))
		return nil, fmt.Errorf("render board: %w", err)
	}
	return data, nil
}

// End discards the session.
func (s *Service) End(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("board_end", zap.String("board_id", id))
	return nil
}

func (s *Service) Legend() boarddto.LegendResponse { return s.presenter.Legend() }

func (s *Service) view(id string, st session.State) (boarddto.BoardView, error) {
	view, err := s.presenter.Board(st)
	if err != nil {
		s.logger.Error("board_state_invalid", zap.String("board_id", id), zap.Error(err))
		return boarddto.BoardView{}, err
	}
	view.ID = id
	return view, nil
}
