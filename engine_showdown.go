package holdem

import (
	"fmt"

	"github.com/thoas/go-funk"
	"github.com/weedbox/holdem/card"
	"github.com/weedbox/holdem/evaluator"
	"github.com/weedbox/pokerface/settlement"
)

/*
	enterShowdown 攤牌並分配底池
	  - 只評估未棄牌玩家, 每個池以 settlement.Rank 找出贏家
	  - 平分時的零頭從按鈕左手開始順時針發放
	  - 評估失敗時整個底池交給第一位仍在牌局中的玩家
*/
func (e *Engine) enterShowdown() {
	ctx := e.ctx

	e.clearActor()
	e.changePhase(Phase_Showdown)

	live := ctx.LivePlayers()
	e.collectPots(len(live) > 1)

	result := &ShowdownResult{
		Uncontested: len(live) < 2,
		Hands:       make([]*ShowdownHand, 0),
		Awards:      make([]*PotAward, 0),
	}

	var powers map[string]int
	if len(live) > 1 {
		var hands []*ShowdownHand
		var err error
		powers, hands, err = e.evaluateHands(live)
		if err != nil {
			e.logger.Error().
				Int("hand", ctx.HandNumber).
				Err(err).
				Msg("showdown evaluation failed, awarding first active player")
			powers = nil
		} else {
			result.Hands = hands
		}
	}

	for idx, pot := range ctx.Pots {
		winners := e.potWinners(pot, live, powers)
		if len(winners) == 0 {
			e.logger.Error().
				Int("hand", ctx.HandNumber).
				Int("pot", idx).
				Int64("amount", pot.Amount).
				Msg("pot has no recipient")
			continue
		}
		result.Awards = append(result.Awards, e.awardPot(idx, pot, winners))
	}

	for _, p := range ctx.Players {
		p.CurrentBet = 0
		p.TotalBet = 0
	}
	ctx.Pots = make([]*Pot, 0)
	ctx.ShowdownResults = result

	e.emitEvent(&Event{
		Type:     EventType_Showdown,
		Showdown: result,
	})

	e.scheduleTransition(Phase_Complete, e.options.ShowdownDelay)
}

func (e *Engine) evaluateHands(live []*Player) (powers map[string]int, hands []*ShowdownHand, err error) {
	defer func() {
		if r := recover(); r != nil {
			powers, hands, err = nil, nil, fmt.Errorf("%w: %v", ErrEvaluation, r)
		}
	}()

	powers = make(map[string]int, len(live))
	hands = make([]*ShowdownHand, 0, len(live))
	for _, p := range live {
		cards := make([]card.Card, 0, 7)
		cards = append(cards, p.HoleCards...)
		cards = append(cards, e.ctx.CommunityCards...)

		ev, err := evaluator.EvaluateCards(cards)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: player %s: %v", ErrEvaluation, p.ID, err)
		}

		powers[p.ID] = ev.Rank
		hands = append(hands, &ShowdownHand{
			PlayerID:   p.ID,
			Seat:       p.Seat,
			HoleCards:  append([]card.Card{}, p.HoleCards...),
			Evaluation: ev,
		})
	}

	return powers, hands, nil
}

func (e *Engine) potWinners(pot *Pot, live []*Player, powers map[string]int) []*Player {
	eligible := funk.Filter(live, func(p *Player) bool {
		return funk.ContainsString(pot.EligiblePlayers, p.ID)
	}).([]*Player)

	if len(eligible) == 0 {
		e.logger.Error().
			Int("hand", e.ctx.HandNumber).
			Strs("eligible", pot.EligiblePlayers).
			Msg("pot has no live eligible player, using all live players")
		eligible = live
	}

	if len(eligible) == 0 {
		if p := e.firstActivePlayer(); p != nil {
			return []*Player{p}
		}
		return nil
	}

	if len(eligible) == 1 {
		return eligible
	}

	if powers == nil {
		if p := e.firstActivePlayer(); p != nil {
			return []*Player{p}
		}
		return eligible[:1]
	}

	rank := settlement.NewPotRank()
	for idx, p := range eligible {
		rank.AddContributor(powers[p.ID], idx)
	}
	rank.Calculate()

	winners := make([]*Player, 0)
	for _, idx := range rank.GetWinners() {
		winners = append(winners, eligible[idx])
	}
	return winners
}

// firstActivePlayer is the fallback recipient when pot math cannot be trusted.
func (e *Engine) firstActivePlayer() *Player {
	ctx := e.ctx
	for _, filter := range []func(p *Player) bool{
		func(p *Player) bool { return p.Live() },
		func(p *Player) bool { return p.InHand() },
		func(p *Player) bool { return p.Status == PlayerStatus_Active },
	} {
		if players := ctx.clockwise(ctx.ButtonSeat, filter); len(players) > 0 {
			return players[0]
		}
	}
	return nil
}

// awardPot splits the pot evenly; odd chips go one each to winners clockwise
// from the button.
func (e *Engine) awardPot(idx int, pot *Pot, winners []*Player) *PotAward {
	ctx := e.ctx

	isWinner := make(map[string]bool, len(winners))
	for _, p := range winners {
		isWinner[p.ID] = true
	}
	ordered := ctx.clockwise(ctx.ButtonSeat, func(p *Player) bool {
		return isWinner[p.ID]
	})

	share := pot.Amount / int64(len(ordered))
	remainder := pot.Amount % int64(len(ordered))

	award := &PotAward{
		PotIndex: idx,
		Amount:   pot.Amount,
		Winners:  make([]string, 0, len(ordered)),
		Payouts:  make(map[string]int64, len(ordered)),
	}

	for i, p := range ordered {
		payout := share
		if int64(i) < remainder {
			payout++
		}
		p.Chips += payout
		award.Winners = append(award.Winners, p.ID)
		award.Payouts[p.ID] = payout
	}

	e.emitEvent(&Event{
		Type:     EventType_PotAwarded,
		PotIndex: idx,
		Amount:   pot.Amount,
		Winners:  award.Winners,
		Payouts:  award.Payouts,
	})

	e.debug().
		Int("pot", idx).
		Int64("amount", pot.Amount).
		Strs("winners", award.Winners).
		Msg("pot awarded")

	return award
}
