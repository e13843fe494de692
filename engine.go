package holdem

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/weedbox/holdem/card"
)

var (
	ErrGamePaused          = errors.New("engine: game is paused")
	ErrGameNotPaused       = errors.New("engine: game is not paused")
	ErrGameNotActive       = errors.New("engine: game is not active")
	ErrGameAlreadyStarted  = errors.New("engine: game already started")
	ErrSeatEmpty           = errors.New("engine: seat is empty")
	ErrSeatUnavailable     = errors.New("engine: seat is not available")
	ErrNotYourTurn         = errors.New("engine: not your turn")
	ErrInvalidAmount       = errors.New("engine: invalid amount")
	ErrInsufficientChips   = errors.New("engine: insufficient chips")
	ErrIllegalCheck        = errors.New("engine: cannot check facing a bet")
	ErrIllegalCall         = errors.New("engine: illegal call")
	ErrIllegalBet          = errors.New("engine: illegal bet")
	ErrUnknownAction       = errors.New("engine: unknown action")
	ErrRevealNotAllowed    = errors.New("engine: cards can only be revealed at showdown")
	ErrInvalidRevealIndex  = errors.New("engine: invalid reveal index")
	ErrInvalidTransition   = errors.New("engine: invalid phase transition")
	ErrStaleTimer          = errors.New("engine: stale timer")
	ErrPlayerNotFound      = errors.New("engine: player not found")
	ErrPlayerAlreadySeated = errors.New("engine: player is already seated")
	ErrInvalidPlayer       = errors.New("engine: invalid player")
	ErrInvalidPlayerStatus = errors.New("engine: invalid player status")
	ErrNotEnoughPlayers    = errors.New("engine: not enough funded players")
	ErrInvalidBlinds       = errors.New("engine: invalid blinds")
	ErrInvalidSettings     = errors.New("engine: invalid game settings")
	ErrNotPrivateGame      = errors.New("engine: game is not private")
	ErrRequestNotFound     = errors.New("engine: seat request not found")
	ErrEvaluation          = errors.New("engine: hand evaluation failed")
)

const (
	MinPlayers = 2
	MaxPlayers = 10
)

// Result is what every engine entry point returns. A rejected call leaves the
// context untouched and carries a single ERROR event.
type Result struct {
	Success bool      `json:"success"`
	Events  []*Event  `json:"events"`
	Effects []*Effect `json:"effects"`
	Error   error     `json:"-"`
}

type GameSettings struct {
	GameID     string `json:"gameId"`
	MaxPlayers int    `json:"maxPlayers"`
	SmallBlind int64  `json:"smallBlind"`
	BigBlind   int64  `json:"bigBlind"`
	IsPrivate  bool   `json:"isPrivate"`
	HostID     string `json:"hostId"`
}

type EngineOpt func(*Engine)

// Engine is the reducer of a single game. It is not safe for concurrent use;
// the table actor serializes every call.
type Engine struct {
	ctx     *GameContext
	options *EngineOptions
	rng     *rand.Rand
	now     func() time.Time
	logger  zerolog.Logger
	events  []*Event
	effects []*Effect
}

func WithRand(rng *rand.Rand) EngineOpt {
	return func(e *Engine) {
		e.rng = rng
	}
}

func WithSeed(seed int64) EngineOpt {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

func WithClock(now func() time.Time) EngineOpt {
	return func(e *Engine) {
		e.now = now
	}
}

func WithLogger(logger zerolog.Logger) EngineOpt {
	return func(e *Engine) {
		e.logger = logger
	}
}

func NewEngine(settings GameSettings, options *EngineOptions, opts ...EngineOpt) (*Engine, error) {
	if settings.MaxPlayers < MinPlayers || settings.MaxPlayers > MaxPlayers {
		return nil, ErrInvalidSettings
	}
	if settings.SmallBlind <= 0 || settings.BigBlind < settings.SmallBlind {
		return nil, ErrInvalidBlinds
	}

	gameID := settings.GameID
	if gameID == "" {
		gameID = uuid.New().String()
	}

	ctx := &GameContext{
		GameID:           gameID,
		Players:          make([]*Player, 0),
		MaxPlayers:       settings.MaxPlayers,
		ButtonSeat:       UnsetValue,
		SBSeat:           UnsetValue,
		BBSeat:           UnsetValue,
		SmallBlind:       settings.SmallBlind,
		BigBlind:         settings.BigBlind,
		CommunityCards:   make([]card.Card, 0),
		Pots:             make([]*Pot, 0),
		CurrentPhase:     Phase_Waiting,
		CurrentActorSeat: UnsetValue,
		FirstActorSeat:   UnsetValue,
		MinRaise:         settings.BigBlind,
		IsPrivate:        settings.IsPrivate,
		HostID:           settings.HostID,
		PendingRequests:  make([]*SeatRequest, 0),
		Spectators:       make([]string, 0),
	}

	return RestoreEngine(ctx, options, opts...), nil
}

// RestoreEngine wraps an existing context, typically one loaded from a store.
func RestoreEngine(ctx *GameContext, options *EngineOptions, opts ...EngineOpt) *Engine {
	if options == nil {
		options = NewEngineOptions()
	}

	e := &Engine{
		ctx:     ctx,
		options: options,
		now:     time.Now,
		logger:  log.Logger,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.logger = e.logger.With().Str("game_id", ctx.GameID).Logger()

	return e
}

func (e *Engine) Context() *GameContext {
	return e.ctx
}

func (e *Engine) GameID() string {
	return e.ctx.GameID
}

func (e *Engine) begin() {
	e.events = make([]*Event, 0)
	e.effects = make([]*Effect, 0)
}

func (e *Engine) commit() Result {
	e.ctx.RefreshUpdateAt()
	e.addEffect(&Effect{Type: EffectType_PersistState})

	e.debug().
		Str("phase", string(e.ctx.CurrentPhase)).
		Int("events", len(e.events)).
		Msg("state committed")

	return Result{
		Success: true,
		Events:  e.events,
		Effects: e.effects,
	}
}

func (e *Engine) reject(playerID string, err error) Result {
	e.begin()
	e.emitErrorEvent(playerID, err)

	e.debug().
		Str("player_id", playerID).
		Err(err).
		Msg("rejected")

	return Result{
		Success: false,
		Events:  e.events,
		Effects: e.effects,
		Error:   err,
	}
}

func (e *Engine) debug() *zerolog.Event {
	return e.logger.Debug().Int("hand", e.ctx.HandNumber)
}
