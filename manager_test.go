package holdem

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/holdem/open_game_manager"
)

type countingPersister struct {
	mu    sync.Mutex
	saves map[string]int
}

func (p *countingPersister) SaveGame(_ context.Context, game *GameContext) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves[game.GameID]++
	return nil
}

// stallingPersister never finishes a save on its own.
type stallingPersister struct {
	deadlines chan bool
}

func (p *stallingPersister) SaveGame(ctx context.Context, _ *GameContext) error {
	_, ok := ctx.Deadline()
	p.deadlines <- ok
	<-ctx.Done()
	return ctx.Err()
}

func (p *countingPersister) count(gameID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves[gameID]
}

func fastOptions() *EngineOptions {
	return &EngineOptions{
		ActionTimeout:    50 * time.Millisecond,
		StreetDelay:      10 * time.Millisecond,
		RunoutDelay:      10 * time.Millisecond,
		ShowdownDelay:    10 * time.Millisecond,
		NextHandDelay:    10 * time.Millisecond,
		ReconnectTimeout: 50 * time.Millisecond,
	}
}

func newTestManager(options *EngineOptions, callbacks *TableCallbacks, persister Persister) Manager {
	opts := []ManagerOpt{
		WithEngineOptions(options),
		WithManagerLogger(zerolog.Nop()),
	}
	if callbacks != nil {
		opts = append(opts, WithCallbacks(callbacks))
	}
	if persister != nil {
		opts = append(opts, WithPersister(persister))
	}
	return NewManager(opts...)
}

func phaseOf(t *testing.T, m Manager, gameID string) Phase {
	view, err := m.GetGame(gameID, "")
	if err != nil {
		return ""
	}
	return view.CurrentPhase
}

func TestManager_CreateGame(t *testing.T) {
	persister := &countingPersister{saves: make(map[string]int)}
	m := newTestManager(fastOptions(), nil, persister)
	defer m.Reset()

	view, err := m.CreateGame(GameSettings{GameID: "g1", MaxPlayers: 6, SmallBlind: 1, BigBlind: 2})
	require.NoError(t, err)
	assert.Equal(t, "g1", view.GameID)
	assert.Equal(t, Phase_Waiting, view.CurrentPhase)
	assert.Equal(t, 1, persister.count("g1"))

	_, err = m.CreateGame(GameSettings{GameID: "g1", MaxPlayers: 6, SmallBlind: 1, BigBlind: 2})
	assert.ErrorIs(t, err, ErrManagerGameExists)

	_, err = m.CreateGame(GameSettings{MaxPlayers: 1, SmallBlind: 1, BigBlind: 2})
	assert.ErrorIs(t, err, ErrInvalidSettings)

	assert.Equal(t, []string{"g1"}, m.ListGames())

	_, err = m.GetGame("missing", "")
	assert.ErrorIs(t, err, ErrManagerGameNotFound)
}

func TestManager_TimeoutsDriveHands(t *testing.T) {
	var mu sync.Mutex
	timeouts := 0

	callbacks := NewTableCallbacks()
	callbacks.OnEvents = func(gameID string, events []*Event) {
		mu.Lock()
		defer mu.Unlock()
		for _, ev := range events {
			if ev.Type == EventType_PlayerAction && ev.Timeout {
				timeouts++
			}
		}
	}

	persister := &countingPersister{saves: make(map[string]int)}
	m := newTestManager(fastOptions(), callbacks, persister)
	defer m.Reset()

	_, err := m.CreateGame(GameSettings{GameID: "auto", MaxPlayers: 6, SmallBlind: 1, BigBlind: 2})
	require.NoError(t, err)

	resp, err := m.AddPlayers("auto", []PlayerSeat{
		{ID: "alice", Seat: 1, Chips: 100},
		{ID: "bob", Seat: 2, Chips: 100},
	})
	require.NoError(t, err)
	require.True(t, resp.Result.Success)

	// nobody acts: every hand is folded away by the action timer
	assert.Eventually(t, func() bool {
		view, err := m.GetGame("auto", "")
		return err == nil && view.HandNumber >= 3
	}, 5*time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.GreaterOrEqual(t, timeouts, 2)
	mu.Unlock()
	assert.Greater(t, persister.count("auto"), 5)

	view, err := m.GetGame("auto", "")
	require.NoError(t, err)
	var chips int64
	for _, p := range view.Players {
		chips += p.Chips + p.TotalBet
	}
	assert.Equal(t, int64(200), chips)

	require.NoError(t, m.CloseGame("auto"))
	assert.Eventually(t, func() bool {
		_, err := m.GetGame("auto", "")
		return err == ErrManagerGameNotFound
	}, time.Second, 10*time.Millisecond)
}

func TestManager_ProcessAction(t *testing.T) {
	options := fastOptions()
	options.ActionTimeout = 5 * time.Second
	m := newTestManager(options, nil, nil)
	defer m.Reset()

	_, err := m.CreateGame(GameSettings{GameID: "play", MaxPlayers: 6, SmallBlind: 1, BigBlind: 2, IsPrivate: true, HostID: "alice"})
	require.NoError(t, err)

	_, err = m.AddPlayers("play", []PlayerSeat{
		{ID: "alice", Seat: 1, Chips: 100},
		{ID: "bob", Seat: 2, Chips: 100},
	})
	require.NoError(t, err)

	resp, err := m.ProcessAdminAction("play", AdminAction{Type: AdminAction_StartGame})
	require.NoError(t, err)
	require.True(t, resp.Result.Success)

	view, err := m.GetGame("play", "alice")
	require.NoError(t, err)
	require.Equal(t, Phase_Preflop, view.CurrentPhase)

	actor := view.CurrentActorSeat
	actorID, otherID := "alice", "bob"
	if actor == 2 {
		actorID, otherID = "bob", "alice"
	}

	// acting for someone else's seat is refused
	resp, err = m.ProcessAction("play", otherID, Action{Type: ActionType_Fold, Seat: actor})
	require.NoError(t, err)
	assert.ErrorIs(t, resp.Result.Error, ErrNotYourTurn)

	// so is acting without saying who you are
	resp, err = m.ProcessAction("play", "", Action{Type: ActionType_Fold, Seat: actor})
	require.NoError(t, err)
	assert.ErrorIs(t, resp.Result.Error, ErrInvalidPlayer)

	resp, err = m.ProcessAction("play", actorID, Action{Type: ActionType_Fold, Seat: actor})
	require.NoError(t, err)
	require.True(t, resp.Result.Success)
	assert.Equal(t, actorID, resp.View.ViewerID)

	assert.Eventually(t, func() bool {
		view, err := m.GetGame("play", "")
		return err == nil && view.HandNumber == 2 && view.CurrentPhase == Phase_Preflop
	}, 2*time.Second, 10*time.Millisecond)

	_, err = m.ProcessAction("missing", actorID, Action{Type: ActionType_Fold})
	assert.ErrorIs(t, err, ErrManagerGameNotFound)
}

func TestManager_ReadyGateStartsNextHand(t *testing.T) {
	options := fastOptions()
	options.ActionTimeout = 10 * time.Second
	options.NextHandDelay = 2 * time.Second
	m := newTestManager(options, nil, nil)
	defer m.Reset()

	_, err := m.CreateGame(GameSettings{GameID: "gate", MaxPlayers: 6, SmallBlind: 1, BigBlind: 2, IsPrivate: true, HostID: "alice"})
	require.NoError(t, err)
	_, err = m.AddPlayers("gate", []PlayerSeat{
		{ID: "alice", Seat: 1, Chips: 100},
		{ID: "bot", Seat: 2, Chips: 100, IsBot: true},
	})
	require.NoError(t, err)

	resp, err := m.PlayerReady("gate", "alice")
	require.NoError(t, err)
	assert.ErrorIs(t, resp.Result.Error, open_game_manager.ErrGateClosed)

	_, err = m.ProcessAdminAction("gate", AdminAction{Type: AdminAction_StartGame})
	require.NoError(t, err)

	view, err := m.GetGame("gate", "")
	require.NoError(t, err)
	actorID := "alice"
	if view.CurrentActorSeat == 2 {
		actorID = "bot"
	}
	resp, err = m.ProcessAction("gate", actorID, Action{Type: ActionType_Fold, Seat: view.CurrentActorSeat})
	require.NoError(t, err)
	require.True(t, resp.Result.Success)

	assert.Eventually(t, func() bool {
		return phaseOf(t, m, "gate") == Phase_Complete
	}, time.Second, 5*time.Millisecond)

	// the bot is ready already; alice opens the gate well before the delay
	started := time.Now()
	resp, err = m.PlayerReady("gate", "alice")
	require.NoError(t, err)
	assert.True(t, resp.Result.Success)

	assert.Eventually(t, func() bool {
		view, err := m.GetGame("gate", "")
		return err == nil && view.HandNumber == 2
	}, time.Second, 5*time.Millisecond)
	assert.Less(t, time.Since(started), options.NextHandDelay)
}

func TestManager_RestoreGame(t *testing.T) {
	options := fastOptions()
	options.ActionTimeout = 20 * time.Millisecond
	m := newTestManager(options, nil, nil)
	defer m.Reset()

	e := headsUp(t)
	startHand(t, e, 1)
	ctx := e.Context()
	ctx.GameID = "restored"

	require.NoError(t, m.RestoreGame(ctx))
	assert.ErrorIs(t, m.RestoreGame(ctx), ErrManagerGameExists)

	// the restored action timer fires and the hand moves on
	assert.Eventually(t, func() bool {
		view, err := m.GetGame("restored", "")
		return err == nil && view.HandNumber >= 2
	}, 3*time.Second, 10*time.Millisecond)
}

func TestManager_SaveIsBounded(t *testing.T) {
	options := fastOptions()
	options.PersistTimeout = 20 * time.Millisecond
	persister := &stallingPersister{deadlines: make(chan bool, 64)}
	m := newTestManager(options, nil, persister)
	defer m.Reset()

	done := make(chan error, 1)
	go func() {
		_, err := m.CreateGame(GameSettings{GameID: "slow", MaxPlayers: 6, SmallBlind: 1, BigBlind: 2})
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("create game blocked on a stalled save")
	}
	assert.True(t, <-persister.deadlines)

	view, err := m.GetGame("slow", "")
	require.NoError(t, err)
	assert.Equal(t, Phase_Waiting, view.CurrentPhase)
}
