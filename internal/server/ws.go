package server

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/park285/westeros-chess/pkg/boarddto"
)

// handleWS serves one board over a websocket. Each client frame gets exactly
// one reply, written before the next frame is read.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.svc.View(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionNoContextTakeover,
		OriginPatterns:  s.origins,
	})
	if err != nil {
		s.logger.Warn("ws_accept_error", zap.String("board_id", id), zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "unexpected exit")
	s.logger.Info("ws_open", zap.String("board_id", id))

	ctx := r.Context()
	for {
		var f boarddto.Frame
		if err := wsjson.Read(ctx, conn, &f); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				s.logger.Info("ws_closed", zap.String("board_id", id))
				_ = conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			s.logger.Debug("ws_read_error", zap.String("board_id", id), zap.Error(err))
			_ = conn.Close(websocket.StatusUnsupportedData, "bad frame")
			return
		}
		reply := s.handleFrame(ctx, id, f)
		if err := wsjson.Write(ctx, conn, reply); err != nil {
			s.logger.Debug("ws_write_error", zap.String("board_id", id), zap.Error(err))
			return
		}
	}
}

func (s *Server) handleFrame(ctx context.Context, id string, f boarddto.Frame) boarddto.Reply {
	if err := validateStruct(&f); err != nil {
		return s.errorReply(err)
	}
	switch f.Type {
	case boarddto.FrameDrop:
		req := boarddto.DropRequest{From: f.From, To: f.To, Promotion: f.Promotion}
		if err := validateStruct(&req); err != nil {
			return s.errorReply(err)
		}
		resp, err := s.svc.Drop(ctx, id, req)
		if err != nil {
			return s.errorReply(err)
		}
		return boarddto.Reply{Type: boarddto.FrameResult, Applied: resp.Applied, Board: &resp.Board}
	default:
		view, err := s.svc.Reset(ctx, id)
		if err != nil {
			return s.errorReply(err)
		}
		return boarddto.Reply{Type: boarddto.FrameResult, Applied: true, Board: &view}
	}
}

func (s *Server) errorReply(err error) boarddto.Reply {
	_, body := s.domainError(err)
	return boarddto.Reply{Type: boarddto.FrameError, Error: &body}
}
