package holdem

import (
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrManagerGameNotFound = errors.New("manager: game not found")
	ErrManagerGameExists   = errors.New("manager: game already exists")
)

// Manager routes requests to the table actor owning each game.
type Manager interface {
	Reset()

	// Game Actions
	CreateGame(settings GameSettings, opts ...EngineOpt) (*GameView, error)
	RestoreGame(ctx *GameContext, opts ...EngineOpt) error
	CloseGame(gameID string) error
	GetGame(gameID, viewerID string) (*GameView, error)
	ListGames() []string

	// Player Table Actions
	AddPlayers(gameID string, players []PlayerSeat) (*Response, error)
	RequestSeat(gameID string, req SeatRequest) (*Response, error)
	AddSpectator(gameID, spectatorID string) (*Response, error)
	PlayerLeave(gameID, playerID string) (*Response, error)
	PlayerDisconnect(gameID, playerID string) (*Response, error)
	PlayerReconnect(gameID, playerID string) (*Response, error)
	PlayerReady(gameID, playerID string) (*Response, error)

	// Game Actions
	ProcessAction(gameID, playerID string, action Action) (*Response, error)
	ProcessAdminAction(gameID string, action AdminAction) (*Response, error)
}

type ManagerOpt func(*manager)

type manager struct {
	tables    sync.Map
	options   *EngineOptions
	callbacks *TableCallbacks
	persister Persister
	logger    zerolog.Logger
}

func WithEngineOptions(options *EngineOptions) ManagerOpt {
	return func(m *manager) {
		m.options = options
	}
}

func WithCallbacks(callbacks *TableCallbacks) ManagerOpt {
	return func(m *manager) {
		m.callbacks = callbacks
	}
}

func WithPersister(persister Persister) ManagerOpt {
	return func(m *manager) {
		m.persister = persister
	}
}

func WithManagerLogger(logger zerolog.Logger) ManagerOpt {
	return func(m *manager) {
		m.logger = logger
	}
}

func NewManager(opts ...ManagerOpt) Manager {
	m := &manager{
		options:   NewEngineOptions(),
		callbacks: NewTableCallbacks(),
		logger:    log.Logger,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *manager) Reset() {
	m.tables.Range(func(key, value interface{}) bool {
		_, _ = value.(*table).incomingRequest(RequestAction_Close, Payload{})
		m.tables.Delete(key)
		return true
	})
}

func (m *manager) CreateGame(settings GameSettings, opts ...EngineOpt) (*GameView, error) {
	engine, err := NewEngine(settings, m.options, m.engineOpts(opts)...)
	if err != nil {
		return nil, err
	}

	t, err := m.open(engine)
	if err != nil {
		return nil, err
	}

	// 建桌後先存一次
	resp, err := t.incomingRequest(RequestAction_Recover, Payload{PlayerID: settings.HostID})
	if err != nil {
		return nil, err
	}
	return resp.View, nil
}

// RestoreGame reopens a stored game and re-arms whatever timer it was
// waiting on when it was saved.
func (m *manager) RestoreGame(ctx *GameContext, opts ...EngineOpt) error {
	if ctx.CurrentPhase == Phase_Finished {
		return ErrGameNotActive
	}

	engine := RestoreEngine(ctx, m.options, m.engineOpts(opts)...)
	t, err := m.open(engine)
	if err != nil {
		return err
	}

	_, err = t.incomingRequest(RequestAction_Recover, Payload{})
	return err
}

func (m *manager) engineOpts(opts []EngineOpt) []EngineOpt {
	return append([]EngineOpt{WithLogger(m.logger)}, opts...)
}

func (m *manager) open(engine *Engine) (*table, error) {
	gameID := engine.GameID()
	if _, exists := m.tables.Load(gameID); exists {
		return nil, ErrManagerGameExists
	}

	callbacks := *m.callbacks
	onClosed := m.callbacks.OnClosed
	callbacks.OnClosed = func(gameID string) {
		m.tables.Delete(gameID)
		onClosed(gameID)
	}

	t := newTable(engine, &callbacks, m.persister, m.logger)
	if _, loaded := m.tables.LoadOrStore(gameID, t); loaded {
		t.close()
		return nil, ErrManagerGameExists
	}

	m.logger.Info().Str("game_id", gameID).Msg("game opened")
	return t, nil
}

func (m *manager) CloseGame(gameID string) error {
	_, err := m.request(gameID, RequestAction_Close, Payload{})
	return err
}

func (m *manager) GetGame(gameID, viewerID string) (*GameView, error) {
	resp, err := m.request(gameID, RequestAction_Snapshot, Payload{PlayerID: viewerID})
	if err != nil {
		return nil, err
	}
	return resp.View, nil
}

func (m *manager) ListGames() []string {
	gameIDs := make([]string, 0)
	m.tables.Range(func(key, value interface{}) bool {
		gameIDs = append(gameIDs, key.(string))
		return true
	})
	sort.Strings(gameIDs)
	return gameIDs
}

func (m *manager) AddPlayers(gameID string, players []PlayerSeat) (*Response, error) {
	return m.request(gameID, RequestAction_AddPlayers, Payload{Param: players})
}

func (m *manager) RequestSeat(gameID string, req SeatRequest) (*Response, error) {
	return m.request(gameID, RequestAction_RequestSeat, Payload{PlayerID: req.PlayerID, Param: req})
}

func (m *manager) AddSpectator(gameID, spectatorID string) (*Response, error) {
	return m.request(gameID, RequestAction_AddSpectator, Payload{PlayerID: spectatorID})
}

func (m *manager) PlayerLeave(gameID, playerID string) (*Response, error) {
	return m.request(gameID, RequestAction_PlayerLeave, Payload{PlayerID: playerID})
}

func (m *manager) PlayerDisconnect(gameID, playerID string) (*Response, error) {
	return m.request(gameID, RequestAction_PlayerDisconnect, Payload{PlayerID: playerID})
}

func (m *manager) PlayerReconnect(gameID, playerID string) (*Response, error) {
	return m.request(gameID, RequestAction_PlayerReconnect, Payload{PlayerID: playerID})
}

func (m *manager) PlayerReady(gameID, playerID string) (*Response, error) {
	return m.request(gameID, RequestAction_PlayerReady, Payload{PlayerID: playerID})
}

func (m *manager) ProcessAction(gameID, playerID string, action Action) (*Response, error) {
	return m.request(gameID, RequestAction_PlayerAction, Payload{PlayerID: playerID, Param: action})
}

func (m *manager) ProcessAdminAction(gameID string, action AdminAction) (*Response, error) {
	return m.request(gameID, RequestAction_AdminAction, Payload{PlayerID: action.PlayerID, Param: action})
}

func (m *manager) request(gameID string, action RequestAction, payload Payload) (*Response, error) {
	t, err := m.table(gameID)
	if err != nil {
		return nil, err
	}
	return t.incomingRequest(action, payload)
}

func (m *manager) table(gameID string) (*table, error) {
	t, exists := m.tables.Load(gameID)
	if !exists {
		return nil, ErrManagerGameNotFound
	}
	return t.(*table), nil
}
