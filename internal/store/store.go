// Package store keeps the live session state of each board for the lifetime
// of that session.
package store

import (
	"context"
	"errors"

	"github.com/park285/westeros-chess/internal/session"
)

var (
	ErrNotFound = errors.New("store: board not found")
	ErrConflict = errors.New("store: concurrent update")
)

// UpdateFunc derives the next state. Returning false leaves the stored
// state untouched.
type UpdateFunc func(current session.State) (next session.State, changed bool)

// Store persists session.State values by board id.
type Store interface {
	Create(ctx context.Context, st session.State) (string, error)
	Load(ctx context.Context, id string) (session.State, error)
	// Update runs fn against the current state and stores its result when
	// fn reports a change. The returned state is what is stored afterwards.
	Update(ctx context.Context, id string, fn UpdateFunc) (session.State, bool, error)
	Delete(ctx context.Context, id string) error
}
