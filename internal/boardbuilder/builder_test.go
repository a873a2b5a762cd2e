package boardbuilder

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/park285/westeros-chess/internal/config"
	"github.com/park285/westeros-chess/pkg/boarddto"
)

func baseConfig() *config.AppConfig {
	return &config.AppConfig{
		ListenAddr:       ":0",
		SessionTTL:       time.Hour,
		BoardImageSquare: 32,
		ShutdownTimeout:  time.Second,
	}
}

func TestNew_MemoryStore(t *testing.T) {
	deps, err := New(baseConfig(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer deps.Close()

	ts := httptest.NewServer(deps.Server.Handler())
	defer ts.Close()
	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("healthz status = %d", res.StatusCode)
	}
}

func TestNew_RedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	cfg := baseConfig()
	cfg.RedisURL = fmt.Sprintf("redis://%s/2", mr.Addr())
	deps, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer deps.Close()

	ctx := context.Background()
	view, err := deps.Service.Start(ctx)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	resp, err := deps.Service.Drop(ctx, view.ID, boarddto.DropRequest{From: "d2", To: "d4"})
	if err != nil || !resp.Applied {
		t.Fatalf("Drop: %+v %v", resp.Applied, err)
	}
	mr.Select(2)
	if keys := mr.Keys(); len(keys) != 1 {
		t.Fatalf("redis keys = %v", keys)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Fatalf("nil config accepted")
	}
	cfg := baseConfig()
	cfg.RedisURL = "http://nope"
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("bad redis url accepted")
	}
	cfg = baseConfig()
	cfg.MessagesDir = t.TempDir() + "/missing"
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("missing messages dir accepted")
	}
}
