package boardbuilder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/park285/westeros-chess/internal/board"
	"github.com/park285/westeros-chess/internal/config"
	"github.com/park285/westeros-chess/internal/msgcat"
	"github.com/park285/westeros-chess/internal/presenter"
	"github.com/park285/westeros-chess/internal/render"
	"github.com/park285/westeros-chess/internal/rules"
	"github.com/park285/westeros-chess/internal/server"
	"github.com/park285/westeros-chess/internal/session"
	"github.com/park285/westeros-chess/internal/store"
)

type Deps struct {
	Catalog   *msgcat.Catalog
	Presenter *presenter.Adapter
	Store     store.Store
	Service   *board.Service
	Server    *server.Server

	redis *redis.Client
}

func New(cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	controller, err := session.NewController(rules.NewEngine(), logger.Named("session"))
	if err != nil {
		return nil, err
	}
	adapter, err := presenter.New(controller, catalog)
	if err != nil {
		return nil, fmt.Errorf("init presenter: %w", err)
	}
	renderer, err := render.NewPNGRenderer(cfg.BoardImageSquare)
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	deps := &Deps{Catalog: catalog, Presenter: adapter}

	// Store (Redis optional)
	if strings.TrimSpace(cfg.RedisURL) != "" {
		opts, perr := store.ParseRedisURL(cfg.RedisURL)
		if perr != nil {
			return nil, fmt.Errorf("parse redis url: %w", perr)
		}
		rdb := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		st, err := store.NewRedisStore(rdb, cfg.SessionTTL)
		if err != nil {
			_ = rdb.Close()
			return nil, err
		}
		deps.Store, deps.redis = st, rdb
		logger.Info("store_redis", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	} else {
		deps.Store = store.NewMemoryStore(cfg.SessionTTL)
		logger.Info("store_memory", zap.Duration("ttl", cfg.SessionTTL))
	}

	deps.Service, err = board.NewService(deps.Store, adapter, renderer, logger.Named("board"))
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Server, err = server.New(deps.Service, catalog, logger.Named("http"), server.WithOriginPatterns(cfg.AllowedOrigins...))
	if err != nil {
		deps.Close()
		return nil, err
	}
	return deps, nil
}

// Close releases the Redis connection pool, if any.
func (d *Deps) Close() error {
	if d == nil || d.redis == nil {
		return nil
	}
	return d.redis.Close()
}
