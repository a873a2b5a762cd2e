package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// 비어 있으면 메모리 저장소
	RedisURL   string        `env:"REDIS_URL"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"6h"`

	MessagesDir      string `env:"MESSAGES_DIR"`
	BoardImageSquare int    `env:"BOARD_IMAGE_SQUARE" envDefault:"72"`

	// websocket origin patterns, comma separated
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func Load() (*AppConfig, error) {
	cfg, err := env.ParseAs[AppConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) normalize() {
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	c.RedisURL = strings.TrimSpace(c.RedisURL)
	c.MessagesDir = strings.TrimSpace(c.MessagesDir)

	origins := c.AllowedOrigins[:0]
	for _, o := range c.AllowedOrigins {
		if s := strings.TrimSpace(o); s != "" {
			origins = append(origins, s)
		}
	}
	c.AllowedOrigins = origins
}

func (c *AppConfig) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("LISTEN_ADDR is required")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.BoardImageSquare < 24 || c.BoardImageSquare > 160 {
		return fmt.Errorf("BOARD_IMAGE_SQUARE must be within 24..160, got %d", c.BoardImageSquare)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
