package actor

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/weedbox/holdem"
	"github.com/weedbox/holdem/card"
	"github.com/weedbox/holdem/equity"
	"github.com/weedbox/timebank"
)

// RandomRange covers every starting hand.
const RandomRange = "22+,AK+,KQ+,QJ+,JT+,T9+,98+,87+,76+,65+,54+,43+,32"

const (
	DefaultIterations = 500
	DefaultThinkTime  = 500 * time.Millisecond

	betThreshold   = 60.0
	raiseThreshold = 75.0
)

// SubmitFunc sends a bot's action back into its table.
type SubmitFunc func(gameID, playerID string, action holdem.Action) error

type BotRunner interface {
	UpdateGameState(view *holdem.GameView) error
	Stop()
}

type Opt func(*botRunner)

type botRunner struct {
	mu         sync.Mutex
	calcMu     sync.Mutex
	playerID   string
	thinkTime  time.Duration
	iterations int
	lastSerial int64
	calculator *equity.Calculator
	timebank   *timebank.TimeBank
	submit     SubmitFunc
	logger     zerolog.Logger
}

func WithThinkTime(d time.Duration) Opt {
	return func(br *botRunner) {
		br.thinkTime = d
	}
}

func WithIterations(iterations int) Opt {
	return func(br *botRunner) {
		br.iterations = iterations
	}
}

func WithCalculator(calculator *equity.Calculator) Opt {
	return func(br *botRunner) {
		br.calculator = calculator
	}
}

func WithLogger(logger zerolog.Logger) Opt {
	return func(br *botRunner) {
		br.logger = logger
	}
}

func NewBotRunner(playerID string, submit SubmitFunc, opts ...Opt) BotRunner {
	br := &botRunner{
		playerID:   playerID,
		thinkTime:  DefaultThinkTime,
		iterations: DefaultIterations,
		timebank:   timebank.NewTimeBank(),
		submit:     submit,
		logger:     log.Logger,
	}

	for _, opt := range opts {
		opt(br)
	}

	if br.calculator == nil {
		br.calculator = equity.NewCalculator(equity.WithLogger(br.logger))
	}
	if br.submit == nil {
		br.submit = func(string, string, holdem.Action) error { return nil }
	}
	br.logger = br.logger.With().Str("bot", playerID).Logger()

	return br
}

/*
	UpdateGameState 收到自己視角的牌局
	  - 過期的狀態 (updateSerial 沒有前進) 忽略
	  - 輪到自己時, 思考一段時間後送出動作
	  - 呼叫端可能是牌桌本身的 goroutine, 送出動作一律另開 goroutine
*/
func (br *botRunner) UpdateGameState(view *holdem.GameView) error {
	br.mu.Lock()
	defer br.mu.Unlock()

	if view.UpdateSerial <= br.lastSerial {
		return nil
	}
	br.lastSerial = view.UpdateSerial

	if view.IsPaused || !view.CurrentPhase.IsBetting() {
		return nil
	}

	me := findPlayer(view, br.playerID)
	if me == nil || me.Seat != view.CurrentActorSeat || !me.EligibleToBet || isHidden(me.HoleCards) {
		return nil
	}

	br.timebank.Cancel()
	return br.timebank.NewTask(br.thinkTime, func(isCancelled bool) {
		if isCancelled {
			return
		}
		go br.act(view, me)
	})
}

func (br *botRunner) act(view *holdem.GameView, me *holdem.PlayerView) {
	br.calcMu.Lock()
	action := br.decide(view, me)
	br.calcMu.Unlock()

	br.logger.Debug().
		Str("game_id", view.GameID).
		Int("hand", view.HandNumber).
		Str("action", string(action.Type)).
		Int64("amount", action.Amount).
		Msg("bot acts")

	if err := br.submit(view.GameID, br.playerID, action); err != nil {
		br.logger.Warn().Err(err).Msg("failed to submit action")
	}
}

func (br *botRunner) Stop() {
	br.timebank.Cancel()
}

// decide picks an action by comparing equity against random hands with the
// price of calling.
func (br *botRunner) decide(view *holdem.GameView, me *holdem.PlayerView) holdem.Action {
	toCall := highestBet(view) - me.CurrentBet
	if toCall < 0 {
		toCall = 0
	}
	pot := potSize(view)
	eq := br.estimateEquity(view, me)

	action := holdem.Action{Seat: me.Seat}

	if toCall == 0 {
		if eq <= betThreshold {
			action.Type = holdem.ActionType_Check
			return action
		}
		return br.sizeBet(action, view, me, 0, pot)
	}

	canRaise := !me.HasActed && me.Chips > toCall
	if eq > raiseThreshold && canRaise {
		return br.sizeBet(action, view, me, toCall, pot)
	}

	potOdds := float64(toCall) / float64(pot+toCall) * 100
	if eq >= potOdds {
		action.Type = holdem.ActionType_Call
		return action
	}

	action.Type = holdem.ActionType_Fold
	return action
}

// sizeBet bets half the pot on top of the call, never less than the minimum.
func (br *botRunner) sizeBet(action holdem.Action, view *holdem.GameView, me *holdem.PlayerView, toCall int64, pot int64) holdem.Action {
	increment := view.BigBlind
	if view.LastRaiseAmount != nil && *view.LastRaiseAmount > increment {
		increment = *view.LastRaiseAmount
	}
	if half := pot / 2; half > increment {
		increment = half
	}

	amount := toCall + increment
	if amount >= me.Chips {
		action.Type = holdem.ActionType_AllIn
		return action
	}

	action.Type = holdem.ActionType_Bet
	action.Amount = amount
	return action
}

func (br *botRunner) estimateEquity(view *holdem.GameView, me *holdem.PlayerView) float64 {
	opponents := 0
	for _, p := range view.Players {
		if p.ID != me.ID && len(p.HoleCards) > 0 && !p.Folded {
			opponents++
		}
	}
	if opponents == 0 {
		return 100
	}
	if opponents > equity.MaxPlayers-1 {
		opponents = equity.MaxPlayers - 1
	}

	inputs := []equity.PlayerInput{{Hand: me.HoleCards}}
	for i := 0; i < opponents; i++ {
		inputs = append(inputs, equity.PlayerInput{Range: RandomRange})
	}

	result := br.calculator.Calculate(inputs, view.CommunityCards, br.iterations)
	if len(result.Equities) == 0 {
		return 0
	}
	return result.Equities[0]
}

func findPlayer(view *holdem.GameView, playerID string) *holdem.PlayerView {
	for _, p := range view.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func highestBet(view *holdem.GameView) int64 {
	var highest int64
	for _, p := range view.Players {
		if p.CurrentBet > highest {
			highest = p.CurrentBet
		}
	}
	return highest
}

// potSize counts collected pots plus bets still in front of the players.
func potSize(view *holdem.GameView) int64 {
	var pot int64
	for _, p := range view.Pots {
		pot += p.Amount
	}
	for _, p := range view.Players {
		pot += p.CurrentBet
	}
	return pot
}

func isHidden(cards []string) bool {
	for _, c := range cards {
		if c == card.Hidden {
			return true
		}
	}
	return false
}
