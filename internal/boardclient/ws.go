package boardclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/park285/westeros-chess/pkg/boarddto"
)

// Stream is a websocket session on one board. Requests are serialised: each
// call writes one frame and waits for its reply.
type Stream struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// WSURL derives the websocket endpoint of a board from the REST base URL.
func WSURL(baseURL, id string) (string, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	u.Path += "/boards/" + url.PathEscape(strings.TrimSpace(id)) + "/ws"
	return u.String(), nil
}

// Dial opens the board websocket. headers may be nil.
func Dial(ctx context.Context, wsURL string, headers HeaderProvider) (*Stream, error) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	hdr := http.Header{}
	if headers != nil {
		for k, v := range headers() {
			if strings.TrimSpace(k) != "" && strings.TrimSpace(v) != "" {
				hdr.Set(k, v)
			}
		}
	}
	conn, _, err := websocket.Dial(dialCtx, wsURL, &websocket.DialOptions{
		CompressionMode: websocket.CompressionNoContextTakeover,
		HTTPHeader:      hdr,
	})
	if err != nil {
		return nil, fmt.Errorf("ws dial: %w", err)
	}
	return &Stream{conn: conn}, nil
}

func (s *Stream) Drop(ctx context.Context, from, to string) (boarddto.Reply, error) {
	return s.roundTrip(ctx, boarddto.Frame{Type: boarddto.FrameDrop, From: from, To: to})
}

func (s *Stream) Reset(ctx context.Context) (boarddto.Reply, error) {
	return s.roundTrip(ctx, boarddto.Frame{Type: boarddto.FrameReset})
}

func (s *Stream) roundTrip(ctx context.Context, f boarddto.Frame) (boarddto.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return boarddto.Reply{}, errors.New("boardclient: stream closed")
	}
	if err := wsjson.Write(ctx, s.conn, f); err != nil {
		return boarddto.Reply{}, fmt.Errorf("ws write: %w", err)
	}
	var reply boarddto.Reply
	if err := wsjson.Read(ctx, s.conn, &reply); err != nil {
		return boarddto.Reply{}, fmt.Errorf("ws read: %w", err)
	}
	return reply, nil
}

func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	defer func() { s.conn = nil }()
	return s.conn.Close(websocket.StatusNormalClosure, "close")
}
