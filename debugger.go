package holdem

import (
	"fmt"
	"strings"

	"github.com/weedbox/holdem/card"
)

// DebugString renders the context as a compact multi-line table for logs.
func (ctx *GameContext) DebugString() string {
	boolToString := func(value bool) string {
		if value {
			return "O"
		}
		return "X"
	}

	seatString := func(seat int) string {
		if seat == UnsetValue {
			return "X"
		}
		return fmt.Sprintf("%d", seat)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "---------- [%s] hand #%d ----------\n", ctx.GameID, ctx.HandNumber)
	fmt.Fprintf(&sb, "[Phase] %s, paused: %s, runout: %s\n", ctx.CurrentPhase, boolToString(ctx.IsPaused), boolToString(ctx.IsRunout))
	fmt.Fprintf(&sb, "[Blinds] %d/%d\n", ctx.SmallBlind, ctx.BigBlind)
	fmt.Fprintf(&sb, "[Button] %s, [SB] %s, [BB] %s, [Actor] %s\n",
		seatString(ctx.ButtonSeat),
		seatString(ctx.SBSeat),
		seatString(ctx.BBSeat),
		seatString(ctx.CurrentActorSeat),
	)
	fmt.Fprintf(&sb, "[Board] %s\n", strings.Join(card.Strings(ctx.CommunityCards), " "))

	for idx, pot := range ctx.Pots {
		fmt.Fprintf(&sb, "[Pot %d] %d %v\n", idx, pot.Amount, pot.EligiblePlayers)
	}

	for _, p := range ctx.Players {
		fmt.Fprintf(&sb, "seat: %d, player: %s, status: %s, chips: %d, bet: %d/%d, cards: %s, folded: %s, allin: %s, acted: %s\n",
			p.Seat,
			p.ID,
			p.Status,
			p.Chips,
			p.CurrentBet,
			p.TotalBet,
			strings.Join(card.Strings(p.HoleCards), " "),
			boolToString(p.Folded),
			boolToString(p.AllIn),
			boolToString(p.HasActed),
		)
	}

	return sb.String()
}
