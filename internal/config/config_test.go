package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"LISTEN_ADDR", "REDIS_URL", "SESSION_TTL", "MESSAGES_DIR", "BOARD_IMAGE_SQUARE", "ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &AppConfig{
		ListenAddr:       ":8080",
		SessionTTL:       6 * time.Hour,
		BoardImageSquare: 72,
		ShutdownTimeout:  10 * time.Second,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", " 127.0.0.1:9000 ")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("BOARD_IMAGE_SQUARE", "48")
	t.Setenv("ALLOWED_ORIGINS", "board.example, ,*.westeros.test")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:9000" || cfg.SessionTTL != 30*time.Minute || cfg.BoardImageSquare != 48 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if diff := cmp.Diff([]string{"board.example", "*.westeros.test"}, cfg.AllowedOrigins); diff != "" {
		t.Fatalf("origins (-want +got):\n%s", diff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"BOARD_IMAGE_SQUARE": "500",
		"SESSION_TTL":        "-1m",
		"SHUTDOWN_TIMEOUT":   "bogus",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			if _, err := Load(); err == nil {
				t.Fatalf("%s=%s accepted", k, v)
			}
		})
	}
}
