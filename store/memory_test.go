package store

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/holdem"
)

func startedGame(t *testing.T, gameID string) *holdem.GameContext {
	e, err := holdem.NewEngine(
		holdem.GameSettings{GameID: gameID, MaxPlayers: 6, SmallBlind: 1, BigBlind: 2},
		nil,
		holdem.WithSeed(3),
		holdem.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)

	result := e.AddPlayers([]holdem.PlayerSeat{
		{ID: "alice", Seat: 1, Chips: 100},
		{ID: "bob", Seat: 2, Chips: 100},
	})
	require.True(t, result.Success)

	result = e.ExecuteTransition(holdem.Phase_Preflop)
	require.True(t, result.Success)

	return e.Context()
}

func testStore(t *testing.T, s Store) {
	ctx := context.Background()
	game := startedGame(t, "g1")

	_, err := s.LoadGame(ctx, "g1")
	assert.ErrorIs(t, err, ErrGameNotFound)

	require.NoError(t, s.SaveGame(ctx, game))

	loaded, err := s.LoadGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, game.HandNumber, loaded.HandNumber)
	assert.Equal(t, game.CurrentPhase, loaded.CurrentPhase)
	assert.Equal(t, game.PlayerByID("alice").HoleCards, loaded.PlayerByID("alice").HoleCards)
	require.NotNil(t, loaded.Deck)
	assert.Equal(t, game.Deck.Cards(), loaded.Deck.Cards())

	// the stored copy is detached from the live context
	loaded.PlayerByID("alice").Chips = 1
	again, err := s.LoadGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, game.PlayerByID("alice").Chips, again.PlayerByID("alice").Chips)

	// stale serials are ignored
	stale := *game
	stale.UpdateSerial = game.UpdateSerial - 1
	stale.HandNumber = 99
	require.NoError(t, s.SaveGame(ctx, &stale))
	again, err = s.LoadGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, game.HandNumber, again.HandNumber)

	finished := startedGame(t, "g0")
	finished.CurrentPhase = holdem.Phase_Finished
	require.NoError(t, s.SaveGame(ctx, finished))
	require.NoError(t, s.SaveGame(ctx, startedGame(t, "g2")))

	ids, err := s.ListGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g2"}, ids)

	require.NoError(t, s.DeleteGame(ctx, "g1"))
	assert.ErrorIs(t, s.DeleteGame(ctx, "g1"), ErrGameNotFound)

	ids, err = s.ListGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"g2"}, ids)
}

func TestMemory(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	testStore(t, s)
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("HOLDEM_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("HOLDEM_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	s, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Migrate(ctx))
	_, err = s.pool.Exec(ctx, `DELETE FROM games WHERE game_id IN ('g0', 'g1', 'g2')`)
	require.NoError(t, err)

	testStore(t, s)
}
