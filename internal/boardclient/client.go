// Package boardclient talks to the board server: REST over fasthttp and the
// per-board websocket over nhooyr.
package boardclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/park285/westeros-chess/pkg/boarddto"
)

// HeaderProvider allows injecting per-request headers.
type HeaderProvider func() map[string]string

var (
	ErrNotFound = errors.New("boardclient: board not found")
	ErrConflict = errors.New("boardclient: concurrent update")
)

// APIError is a non-2xx answer from the board server.
type APIError struct {
	Status int
	Body   boarddto.DomainError
	Raw    string
}

func (e *APIError) Error() string {
	msg := e.Body.Message
	if msg == "" {
		msg = truncate(e.Raw, 512)
	}
	return fmt.Sprintf("board api error: status=%d code=%s msg=%s", e.Status, e.Body.Code, msg)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case 404:
		return ErrNotFound
	case 409:
		return ErrConflict
	default:
		return nil
	}
}

type Client struct {
	baseURL string
	http    *fasthttp.Client
	headers HeaderProvider

	defaultTimeout time.Duration
	retryMax       int
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func WithMaxConnsPerHost(n int) Option {
	return func(c *Client) { c.http.MaxConnsPerHost = n }
}

func WithHeaderProvider(h HeaderProvider) Option {
	return func(c *Client) { c.headers = h }
}

// WithRetry sets the attempt count for idempotent requests.
func WithRetry(max int) Option {
	return func(c *Client) { c.retryMax = max }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 64},
		defaultTimeout: 10 * time.Second,
		retryMax:       3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Start(ctx context.Context) (*boarddto.BoardView, error) {
	var view boarddto.BoardView
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/boards", nil, &view, false); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) View(ctx context.Context, id string) (*boarddto.BoardView, error) {
	var view boarddto.BoardView
	if err := c.doJSON(ctx, fasthttp.MethodGet, boardPath(id, ""), nil, &view, true); err != nil {
		return nil, err
	}
	return &view, nil
}

// Drop is never retried: a retried drop could apply the same move twice.
func (c *Client) Drop(ctx context.Context, id string, req boarddto.DropRequest) (*boarddto.DropResponse, error) {
	var resp boarddto.DropResponse
	if err := c.doJSON(ctx, fasthttp.MethodPost, boardPath(id, "/drop"), req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Reset(ctx context.Context, id string) (*boarddto.BoardView, error) {
	var view boarddto.BoardView
	if err := c.doJSON(ctx, fasthttp.MethodPost, boardPath(id, "/reset"), nil, &view, true); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) History(ctx context.Context, id string) (*boarddto.HistoryResponse, error) {
	var hist boarddto.HistoryResponse
	if err := c.doJSON(ctx, fasthttp.MethodGet, boardPath(id, "/history"), nil, &hist, true); err != nil {
		return nil, err
	}
	return &hist, nil
}

func (c *Client) Legend(ctx context.Context) (*boarddto.LegendResponse, error) {
	var legend boarddto.LegendResponse
	if err := c.doJSON(ctx, fasthttp.MethodGet, "/legend", nil, &legend, true); err != nil {
		return nil, err
	}
	return &legend, nil
}

// Image fetches the PNG rendering; black=true flips the board.
func (c *Client) Image(ctx context.Context, id string, black bool) ([]byte, error) {
	path := boardPath(id, "/board.png")
	if black {
		path += "?orientation=black"
	}
	return c.do(ctx, fasthttp.MethodGet, path, nil, true)
}

func (c *Client) End(ctx context.Context, id string) error {
	_, err := c.do(ctx, fasthttp.MethodDelete, boardPath(id, ""), nil, false)
	return err
}

func boardPath(id, suffix string) string {
	return "/boards/" + url.PathEscape(strings.TrimSpace(id)) + suffix
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, retry bool) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = b
	}
	body, err := c.do(ctx, method, path, payload, retry)
	if err != nil {
		return err
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, retry bool) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	if payload != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}
	if c.headers != nil {
		for k, v := range c.headers() {
			if strings.TrimSpace(k) != "" && strings.TrimSpace(v) != "" {
				req.Header.Set(k, v)
			}
		}
	}

	attempts := 1
	if retry && c.retryMax > 1 {
		attempts = c.retryMax
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := c.http.DoDeadline(req, resp, c.computeDeadline(ctx))
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			if attempt == attempts {
				return nil, lastErr
			}
			if sleepErr := sleepWithContext(ctx, backoffDuration(attempt)); sleepErr != nil {
				return nil, lastErr
			}
			continue
		}

		status := resp.StatusCode()
		if status < 200 || status >= 300 {
			apiErr := &APIError{Status: status, Raw: string(resp.Body())}
			_ = json.Unmarshal(resp.Body(), &apiErr.Body)
			if attempt == attempts || !shouldRetryStatus(status) {
				return nil, apiErr
			}
			lastErr = apiErr
			if sleepErr := sleepWithContext(ctx, backoffDuration(attempt)); sleepErr != nil {
				return nil, lastErr
			}
			continue
		}
		// resp is released on return
		return append([]byte(nil), resp.Body()...), nil
	}

	if lastErr == nil {
		lastErr = errors.New("unknown error")
	}
	return nil, lastErr
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.defaultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func backoffDuration(attempt int) time.Duration {
	attempt = max(1, min(attempt, 6))
	return time.Duration(1<<uint(attempt-1)) * 100 * time.Millisecond
}

func shouldRetryStatus(code int) bool {
	switch code {
	case 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
