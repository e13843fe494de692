package actor

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/weedbox/holdem"
)

// Dispatcher keeps one BotRunner per bot seat and feeds each its own view of
// every state update.
type Dispatcher struct {
	mu      sync.Mutex
	runners map[string]map[string]BotRunner
	submit  SubmitFunc
	opts    []Opt
	logger  zerolog.Logger
}

func NewDispatcher(submit SubmitFunc, opts ...Opt) *Dispatcher {
	return &Dispatcher{
		runners: make(map[string]map[string]BotRunner),
		submit:  submit,
		opts:    opts,
		logger:  log.Logger,
	}
}

// Attach hooks the dispatcher into table callbacks, keeping any handlers
// already registered.
func (d *Dispatcher) Attach(callbacks *holdem.TableCallbacks) {
	onStateUpdated := callbacks.OnStateUpdated
	callbacks.OnStateUpdated = func(ctx *holdem.GameContext) {
		if onStateUpdated != nil {
			onStateUpdated(ctx)
		}
		d.OnStateUpdated(ctx)
	}

	onClosed := callbacks.OnClosed
	callbacks.OnClosed = func(gameID string) {
		if onClosed != nil {
			onClosed(gameID)
		}
		d.Release(gameID)
	}
}

// OnStateUpdated runs on the table goroutine; the projection is taken here
// so runners never touch the live context.
func (d *Dispatcher) OnStateUpdated(ctx *holdem.GameContext) {
	d.mu.Lock()
	defer d.mu.Unlock()

	bots, ok := d.runners[ctx.GameID]
	if !ok {
		bots = make(map[string]BotRunner)
		d.runners[ctx.GameID] = bots
	}

	seated := make(map[string]bool)
	for _, p := range ctx.Players {
		if !p.IsBot {
			continue
		}
		seated[p.ID] = true

		runner, ok := bots[p.ID]
		if !ok {
			runner = NewBotRunner(p.ID, d.submit, d.opts...)
			bots[p.ID] = runner
		}

		if err := runner.UpdateGameState(holdem.Project(ctx, p.ID)); err != nil {
			d.logger.Warn().Err(err).Str("game_id", ctx.GameID).Str("bot", p.ID).Msg("bot update failed")
		}
	}

	// bots that left the table
	for id, runner := range bots {
		if !seated[id] {
			runner.Stop()
			delete(bots, id)
		}
	}
}

func (d *Dispatcher) Release(gameID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, runner := range d.runners[gameID] {
		runner.Stop()
	}
	delete(d.runners, gameID)
}

func (d *Dispatcher) BotCount(gameID string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.runners[gameID])
}
