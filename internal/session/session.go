// Package session persists the bearer token that identifies the signed-in user.
package session

import (
	"context"
	"errors"
)

const (
	namespace = "foodhub"
	tokenKey  = "token"
)

var ErrNoToken = errors.New("no session token stored")

// Store is the single source of truth for the bearer token. Token returns
// ErrNoToken when nothing is stored.
type Store interface {
	Token(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// HasSession reports whether a token is stored. Any other read failure is
// returned so the caller can decide the start destination.
func HasSession(ctx context.Context, store Store) (bool, error) {
	token, err := store.Token(ctx)
	if errors.Is(err, ErrNoToken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return token != "", nil
}
