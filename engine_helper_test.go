package holdem

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/holdem/card"
)

func newTestEngine(t *testing.T, settings GameSettings, players ...PlayerSeat) *Engine {
	t.Helper()

	if settings.MaxPlayers == 0 {
		settings.MaxPlayers = 6
	}
	if settings.SmallBlind == 0 {
		settings.SmallBlind = 1
		settings.BigBlind = 2
	}

	e, err := NewEngine(settings, NewEngineOptions(), WithSeed(42), WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	if len(players) > 0 {
		result := e.AddPlayers(players)
		require.True(t, result.Success, "add players: %v", result.Error)
	}

	return e
}

func headsUp(t *testing.T) *Engine {
	return newTestEngine(t, GameSettings{},
		PlayerSeat{ID: "alice", Seat: 1, Chips: 100},
		PlayerSeat{ID: "bob", Seat: 2, Chips: 100},
	)
}

// startHand deals a hand with the button fixed so tests do not depend on the
// random first button.
func startHand(t *testing.T, e *Engine, button int) Result {
	t.Helper()

	e.ctx.ButtonSeat = button
	result := e.ExecuteTransition(Phase_Preflop)
	require.True(t, result.Success, "start hand: %v", result.Error)
	return result
}

// rigCards replaces the dealt hole cards and stacks the deck with the board.
func rigCards(t *testing.T, e *Engine, holes map[int]string, board string) {
	t.Helper()

	for seat, cards := range holes {
		p := e.ctx.PlayerBySeat(seat)
		require.NotNil(t, p, "seat %d", seat)
		p.HoleCards = mustCards(t, cards)
	}
	e.ctx.Deck = card.NewDeckFromCards(mustCards(t, board))
}

func mustCards(t *testing.T, s string) []card.Card {
	t.Helper()

	cards, err := card.ParseMany(strings.Fields(s))
	require.NoError(t, err)
	return cards
}

func act(e *Engine, actionType ActionType, seat int, amount int64) Result {
	return e.ProcessAction(Action{
		Type:   actionType,
		Seat:   seat,
		Amount: amount,
	})
}

func mustAct(t *testing.T, e *Engine, actionType ActionType, seat int, amount int64) Result {
	t.Helper()

	result := act(e, actionType, seat, amount)
	require.True(t, result.Success, "%s seat %d: %v", actionType, seat, result.Error)
	return result
}

func advance(t *testing.T, e *Engine, target Phase) Result {
	t.Helper()

	result := e.ExecuteTransition(target)
	require.True(t, result.Success, "transition to %s: %v", target, result.Error)
	return result
}

// checkDown checks every remaining street until showdown.
func checkDown(t *testing.T, e *Engine) {
	t.Helper()

	for _, street := range []Phase{Phase_Flop, Phase_Turn, Phase_River} {
		advance(t, e, street)
		for e.ctx.CurrentActorSeat != UnsetValue {
			mustAct(t, e, ActionType_Check, e.ctx.CurrentActorSeat, 0)
		}
	}
	advance(t, e, Phase_Showdown)
}

func findEffect(effects []*Effect, effectType EffectType) *Effect {
	for _, ef := range effects {
		if ef.Type == effectType {
			return ef
		}
	}
	return nil
}

func findEvents(events []*Event, eventType EventType) []*Event {
	found := make([]*Event, 0)
	for _, ev := range events {
		if ev.Type == eventType {
			found = append(found, ev)
		}
	}
	return found
}

// tableChips counts every chip owned by or committed from a player.
func tableChips(ctx *GameContext) int64 {
	var total int64
	for _, p := range ctx.Players {
		total += p.Chips + p.TotalBet
	}
	return total
}
