package store

import (
	"context"
	"errors"

	"github.com/weedbox/holdem"
)

var (
	ErrGameNotFound = errors.New("store: game not found")
)

// Store keeps the full server-side context of every table, deck included.
type Store interface {
	holdem.Persister
	LoadGame(ctx context.Context, gameID string) (*holdem.GameContext, error)
	DeleteGame(ctx context.Context, gameID string) error

	// ListGames returns ids of games that have not finished.
	ListGames(ctx context.Context) ([]string, error)
	Close()
}
