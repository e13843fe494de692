package equity

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/weedbox/holdem/card"
	"github.com/weedbox/holdem/handrange"
)

var (
	ErrPlayerCount  = errors.New("equity: between 2 and 10 players required")
	ErrBoardSize    = errors.New("equity: board must have at most 5 cards")
	ErrHandSize     = errors.New("equity: hand must have exactly 2 cards")
	ErrEmptyInput   = errors.New("equity: player has neither hand nor range")
	ErrEmptyRange   = errors.New("equity: range has no live combos")
	ErrDuplicateUse = errors.New("equity: card used more than once")
)

const (
	DefaultIterations = 10000
	MinPlayers        = 2
	MaxPlayers        = 10

	// PreflopBoards is C(48,5), every board behind two known hands.
	PreflopBoards = 1712304

	maxSampleRetries = 10
)

// PlayerInput is either a fixed two-card hand or a range string.
type PlayerInput struct {
	Hand  []string `json:"hand,omitempty"`
	Range string   `json:"range,omitempty"`
}

type Result struct {
	Equities   []float64 `json:"equities"`
	Iterations int       `json:"iterations"`
}

// Calculator is not safe for concurrent use; it owns its random source.
type Calculator struct {
	rng    *rand.Rand
	table  *PreflopTable
	logger zerolog.Logger
}

type Option func(*Calculator)

func WithRand(rng *rand.Rand) Option {
	return func(c *Calculator) {
		c.rng = rng
	}
}

func WithSeed(seed int64) Option {
	return func(c *Calculator) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

func WithPreflopTable(table *PreflopTable) Option {
	return func(c *Calculator) {
		c.table = table
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Calculator) {
		c.logger = logger
	}
}

func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c
}

type player struct {
	fixed  bool
	hand   handrange.Combo
	combos []handrange.Combo
}

type spot struct {
	players []*player
	board   []card.Card
	dead    uint64
	toCome  int
}

// Calculate returns each player's share of the pot in percent. Malformed
// input never fails the call; it yields all-zero equities instead.
func (c *Calculator) Calculate(inputs []PlayerInput, board []string, iterations int) Result {
	s, err := prepare(inputs, board)
	if err != nil {
		c.logger.Debug().Err(err).Int("players", len(inputs)).Msg("equity: invalid input")
		return zeroResult(len(inputs))
	}

	if iterations <= 0 {
		iterations = DefaultIterations
	}

	var (
		wins  []float64
		count int
	)

	switch {
	case s.toCome == 5 && len(s.players) == 2 && s.allFixed():
		return c.headsUpPreflop(s)
	case s.toCome <= 1, s.toCome == 2 && s.allFixed():
		wins, count = enumerate(s)
	default:
		wins, count = c.simulate(s, iterations)
	}

	if count == 0 {
		return zeroResult(len(inputs))
	}

	equities := make([]float64, len(wins))
	for i, w := range wins {
		equities[i] = w / float64(count) * 100
	}

	return Result{
		Equities:   equities,
		Iterations: count,
	}
}

func (s *spot) allFixed() bool {
	for _, p := range s.players {
		if !p.fixed {
			return false
		}
	}
	return true
}

func prepare(inputs []PlayerInput, board []string) (*spot, error) {
	if len(inputs) < MinPlayers || len(inputs) > MaxPlayers {
		return nil, ErrPlayerCount
	}
	if len(board) > 5 {
		return nil, ErrBoardSize
	}

	boardCards, err := card.ParseMany(board)
	if err != nil {
		return nil, err
	}

	s := &spot{
		players: make([]*player, len(inputs)),
		board:   boardCards,
		dead:    card.Mask(boardCards...),
		toCome:  5 - len(boardCards),
	}

	for i, in := range inputs {
		if len(in.Hand) == 0 {
			if in.Range == "" {
				return nil, fmt.Errorf("player %d: %w", i, ErrEmptyInput)
			}
			s.players[i] = &player{}
			continue
		}

		if len(in.Hand) != 2 {
			return nil, fmt.Errorf("player %d: %w", i, ErrHandSize)
		}

		hole, err := card.ParseMany(in.Hand)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i, err)
		}

		mask := card.Mask(hole...)
		if mask&s.dead != 0 {
			return nil, fmt.Errorf("player %d: %w", i, ErrDuplicateUse)
		}
		s.dead |= mask

		s.players[i] = &player{
			fixed: true,
			hand:  handrange.Combo{hole[0], hole[1]},
		}
	}

	// ranges are filtered once every fixed card is known
	for i, in := range inputs {
		if s.players[i].fixed {
			continue
		}

		combos := handrange.Filter(handrange.Parse(in.Range), s.dead)
		if len(combos) == 0 {
			return nil, fmt.Errorf("player %d: %w", i, ErrEmptyRange)
		}
		s.players[i].combos = combos
	}

	return s, nil
}

func zeroResult(n int) Result {
	if n < 0 {
		n = 0
	}
	return Result{
		Equities:   make([]float64, n),
		Iterations: 0,
	}
}

// showdown credits each winner with an even share of one pot.
func showdown(hands []handrange.Combo, board []card.Card, wins []float64, scratch []int) {
	var seven [7]card.Card
	copy(seven[2:], board)

	best := 0
	winners := 0
	for i, h := range hands {
		seven[0], seven[1] = h[0], h[1]
		r := rank7(seven[:2+len(board)])
		scratch[i] = r

		switch {
		case r > best:
			best = r
			winners = 1
		case r == best:
			winners++
		}
	}

	share := 1 / float64(winners)
	for i := range hands {
		if scratch[i] == best {
			wins[i] += share
		}
	}
}
