package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/thoas/go-funk"
	"github.com/weedbox/holdem"
)

type record struct {
	phase        holdem.Phase
	updateSerial int64
	state        []byte
}

// Memory stores contexts as JSON so callers never share pointers with it.
type Memory struct {
	mu    sync.RWMutex
	games map[string]*record
}

func NewMemory() *Memory {
	return &Memory{
		games: make(map[string]*record),
	}
}

func (m *Memory) SaveGame(_ context.Context, game *holdem.GameContext) error {
	state, err := json.Marshal(game)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// 舊的狀態不能覆蓋新的
	if r, ok := m.games[game.GameID]; ok && r.updateSerial > game.UpdateSerial {
		return nil
	}

	m.games[game.GameID] = &record{
		phase:        game.CurrentPhase,
		updateSerial: game.UpdateSerial,
		state:        state,
	}

	return nil
}

func (m *Memory) LoadGame(_ context.Context, gameID string) (*holdem.GameContext, error) {
	m.mu.RLock()
	r, ok := m.games[gameID]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrGameNotFound
	}

	var game holdem.GameContext
	if err := json.Unmarshal(r.state, &game); err != nil {
		return nil, err
	}

	return &game, nil
}

func (m *Memory) DeleteGame(_ context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.games[gameID]; !ok {
		return ErrGameNotFound
	}
	delete(m.games, gameID)

	return nil
}

func (m *Memory) ListGames(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := funk.Keys(m.games).([]string)
	active := funk.FilterString(ids, func(id string) bool {
		return m.games[id].phase != holdem.Phase_Finished
	})
	sort.Strings(active)

	return active, nil
}

func (m *Memory) Close() {}
