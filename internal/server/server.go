// Package server exposes board sessions to the board widget over HTTP and
// websocket.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/park285/westeros-chess/internal/board"
	"github.com/park285/westeros-chess/internal/msgcat"
	"github.com/park285/westeros-chess/internal/render"
	"github.com/park285/westeros-chess/internal/rules"
	"github.com/park285/westeros-chess/internal/store"
	"github.com/park285/westeros-chess/pkg/boarddto"
)

const maxBodyBytes = 4 << 10

type Server struct {
	svc     *board.Service
	catalog *msgcat.Catalog
	logger  *zap.Logger
	origins []string
	mux     *http.ServeMux
}

type Option func(*Server)

// WithOriginPatterns allows cross-origin websocket handshakes from the
// given host patterns (nhooyr AcceptOptions.OriginPatterns).
func WithOriginPatterns(patterns ...string) Option {
	return func(s *Server) { s.origins = append(s.origins, patterns...) }
}

func New(svc *board.Service, catalog *msgcat.Catalog, logger *zap.Logger, opts ...Option) (*Server, error) {
	if svc == nil || catalog == nil {
		return nil, errors.New("server: service and catalog are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{svc: svc, catalog: catalog, logger: logger, mux: http.NewServeMux()}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("POST /boards", s.handleStart)
	s.mux.HandleFunc("GET /boards/{id}", s.handleView)
	s.mux.HandleFunc("DELETE /boards/{id}", s.handleEnd)
	s.mux.HandleFunc("POST /boards/{id}/drop", s.handleDrop)
	s.mux.HandleFunc("POST /boards/{id}/reset", s.handleReset)
	s.mux.HandleFunc("GET /boards/{id}/history", s.handleHistory)
	s.mux.HandleFunc("GET /boards/{id}/board.png", s.handleImage)
	s.mux.HandleFunc("GET /boards/{id}/ws", s.handleWS)
	s.mux.HandleFunc("GET /legend", s.handleLegend)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Start(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.View(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.End(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDrop answers 200 for both legal and illegal moves; the widget reads
// Applied to decide between commit and revert.
func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req boarddto.DropRequest
	if err := decodeBody(r, w, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := validateStruct(&req); err != nil {
		s.writeError(w, err)
		return
	}
	resp, err := s.svc.Drop(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Reset(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	hist, err := s.svc.History(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hist)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := render.Options{
		Flip:    strings.EqualFold(q.Get("orientation"), "black"),
		Caption: q.Get("caption"),
	}
	data, err := s.svc.Image(r.Context(), r.PathValue("id"), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Legend())
}

func decodeBody(r *http.Request, w http.ResponseWriter, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &requestError{msg: "invalid request body: " + err.Error()}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestError marks client mistakes that map to 400.
type requestError struct{ msg string }

func (e *requestError) Error() string { return e.msg }

// domainError maps service errors to HTTP status and the JSON error body.
func (s *Server) domainError(err error) (int, boarddto.DomainError) {
	var reqErr *requestError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, boarddto.DomainError{Code: boarddto.CodeNotFound, Message: s.text("errors.not_found", "board not found")}
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict, boarddto.DomainError{Code: boarddto.CodeConflict, Message: s.text("errors.conflict", "concurrent update"), Retryable: true}
	case errors.Is(err, rules.ErrInvalidSquare):
		return http.StatusBadRequest, boarddto.DomainError{Code: boarddto.CodeBadRequest, Message: err.Error()}
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, boarddto.DomainError{Code: boarddto.CodeBadRequest, Message: reqErr.msg}
	default:
		return http.StatusInternalServerError, boarddto.DomainError{Code: boarddto.CodeInternal, Message: s.text("errors.internal", "internal error")}
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, body := s.domainError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("http_error", zap.Int("status", status), zap.Error(err))
	} else {
		s.logger.Debug("http_client_error", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, body)
}

func (s *Server) text(key, fallback string) string {
	v, err := s.catalog.Render(key, nil)
	if err != nil {
		return fallback
	}
	return v
}
