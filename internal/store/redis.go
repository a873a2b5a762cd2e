package store

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/park285/westeros-chess/internal/session"
)

const keyPrefix = "westeros:board:"

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore keeps boards as JSON under westeros:board:<id>. Every write
// refreshes the TTL.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) (Store, error) {
	if rdb == nil {
		return nil, errors.New("store: redis client is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("store: ttl must be positive, got %s", ttl)
	}
	return &redisStore{rdb: rdb, ttl: ttl}, nil
}

func boardKey(id string) string { return keyPrefix + strings.TrimSpace(id) }

func (r *redisStore) Create(ctx context.Context, st session.State) (string, error) {
	raw, err := json.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("marshal state: %w", err)
	}
	id := uuid.NewString()
	ok, err := r.rdb.SetNX(ctx, boardKey(id), raw, r.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("%w: id %s already exists", ErrConflict, id)
	}
	return id, nil
}

func (r *redisStore) Load(ctx context.Context, id string) (session.State, error) {
	raw, err := r.rdb.Get(ctx, boardKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return session.State{}, ErrNotFound
	}
	if err != nil {
		return session.State{}, fmt.Errorf("redis get: %w", err)
	}
	return decodeState(raw)
}

func (r *redisStore) Update(ctx context.Context, id string, fn UpdateFunc) (session.State, bool, error) {
	key := boardKey(id)
	var (
		result  session.State
		changed bool
	)
	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("redis get: %w", err)
		}
		cur, err := decodeState(raw)
		if err != nil {
			return err
		}
		next, ok := fn(cur)
		if !ok {
			result, changed = cur, false
			return nil
		}
		newRaw, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal state: %w", err)
		}
		pipe := tx.TxPipeline()
		pipe.Set(ctx, key, newRaw, r.ttl)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
		result, changed = next, true
		return nil
	}, key)
	switch {
	case err == nil:
		return result, changed, nil
	case errors.Is(err, redis.TxFailedErr):
		return session.State{}, false, ErrConflict
	case errors.Is(err, ErrNotFound):
		return session.State{}, false, ErrNotFound
	default:
		return session.State{}, false, fmt.Errorf("redis update: %w", err)
	}
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	n, err := r.rdb.Del(ctx, boardKey(id)).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeState(raw []byte) (session.State, error) {
	var st session.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return session.State{}, fmt.Errorf("decode state: %w", err)
	}
	return st, nil
}

// ParseRedisURL accepts redis:// and rediss:// URLs; the path selects the DB.
func ParseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redis db %q: %w", p, err)
		}
		db = n
	}
	pass, _ := u.User.Password()
	opts := &redis.Options{Addr: u.Host, Username: u.User.Username(), Password: pass, DB: db}
	if u.Scheme == "rediss" {
		opts.TLSConfig = &tls.Config{ServerName: u.Hostname(), MinVersion: tls.VersionTLS12}
	}
	return opts, nil
}
