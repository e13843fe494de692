package holdem

import (
	"github.com/weedbox/holdem/card"
)

// ExecuteTransition moves the game into target when the current phase allows it.
func (e *Engine) ExecuteTransition(target Phase) Result {
	e.begin()

	if err := e.transition(target); err != nil {
		return e.reject("", err)
	}

	return e.commit()
}

// ExecuteScheduledTransition runs a transition requested by an earlier
// SCHEDULE_TRANSITION effect. Transitions scheduled for another hand are stale.
func (e *Engine) ExecuteScheduledTransition(target Phase, handNumber int) Result {
	if handNumber != e.ctx.HandNumber {
		e.begin()
		return e.reject("", ErrStaleTimer)
	}
	return e.ExecuteTransition(target)
}

func (e *Engine) transition(target Phase) error {
	ctx := e.ctx

	if ctx.IsPaused {
		return ErrGamePaused
	}

	from := ctx.CurrentPhase
	switch target {
	case Phase_Preflop:
		if from != Phase_Waiting && from != Phase_Complete {
			return ErrInvalidTransition
		}
		return e.enterPreflop()

	case Phase_Flop, Phase_Turn, Phase_River:
		if !from.IsBetting() || nextStreet(from) != target || ctx.CurrentActorSeat != UnsetValue {
			return ErrInvalidTransition
		}
		return e.enterStreet(target)

	case Phase_Showdown:
		if !from.IsBetting() || ctx.CurrentActorSeat != UnsetValue {
			return ErrInvalidTransition
		}
		if from != Phase_River && len(ctx.LivePlayers()) > 1 {
			return ErrInvalidTransition
		}
		e.enterShowdown()
		return nil

	case Phase_Complete:
		if from != Phase_Showdown {
			return ErrInvalidTransition
		}
		e.enterComplete()
		return nil
	}

	return ErrInvalidTransition
}

func (e *Engine) changePhase(phase Phase) {
	e.ctx.CurrentPhase = phase
	e.emitEvent(&Event{
		Type:  EventType_PhaseChanged,
		Phase: phase,
	})
}

/*
	enterPreflop 開始新的一手
	  - 有籌碼的玩家才發牌, 首手隨機決定按鈕
	  - 兩人時按鈕下小盲並先行動, 三人以上小盲在按鈕左手
	  - 盲注不足時全下
*/
func (e *Engine) enterPreflop() error {
	ctx := e.ctx

	for _, p := range ctx.Players {
		if p.Status == PlayerStatus_WaitingForNextHand {
			p.Status = PlayerStatus_Active
		}
	}

	funded := ctx.FundedPlayers()
	if len(funded) < MinPlayers {
		return ErrNotEnoughPlayers
	}

	e.applyPendingBlinds()

	ctx.HandNumber++
	for _, p := range ctx.Players {
		p.resetHand()
	}
	ctx.CommunityCards = make([]card.Card, 0)
	ctx.Pots = make([]*Pot, 0)
	ctx.ShowdownResults = nil
	ctx.IsRunout = false
	ctx.LeftThisHand = false
	ctx.LastRaiseAmount = nil
	ctx.MinRaise = ctx.BigBlind
	ctx.CurrentActorSeat = UnsetValue
	ctx.FirstActorSeat = UnsetValue
	ctx.ActionDeadline = nil

	isFunded := func(p *Player) bool {
		return p.Funded()
	}

	// button
	if ctx.ButtonSeat == UnsetValue {
		ctx.ButtonSeat = funded[e.rng.Intn(len(funded))].Seat
	} else if button := ctx.PlayerBySeat(ctx.ButtonSeat); button == nil || !button.Funded() {
		ctx.ButtonSeat = ctx.nextSeat(ctx.ButtonSeat, isFunded)
	}

	// blinds
	if len(funded) == 2 {
		ctx.SBSeat = ctx.ButtonSeat
	} else {
		ctx.SBSeat = ctx.nextSeat(ctx.ButtonSeat, isFunded)
	}
	ctx.BBSeat = ctx.nextSeat(ctx.SBSeat, isFunded)

	// deal
	deck := card.NewDeck()
	deck.Shuffle(e.rng)
	ctx.Deck = deck

	dealOrder := ctx.clockwise(ctx.ButtonSeat, isFunded)
	for round := 0; round < 2; round++ {
		for _, p := range dealOrder {
			cards, err := deck.Deal(1)
			if err != nil {
				return err
			}
			p.HoleCards = append(p.HoleCards, cards...)
		}
	}

	e.changePhase(Phase_Preflop)
	e.emitEvent(&Event{
		Type: EventType_HandStarted,
		Seat: ctx.ButtonSeat,
	})

	sb := ctx.PlayerBySeat(ctx.SBSeat)
	bb := ctx.PlayerBySeat(ctx.BBSeat)
	e.commitChips(sb, ctx.SmallBlind)
	e.commitChips(bb, ctx.BigBlind)

	e.emitEvent(&Event{
		Type: EventType_BlindsPosted,
		Blinds: &Blinds{
			SmallBlind: sb.CurrentBet,
			BigBlind:   bb.CurrentBet,
		},
	})

	e.emitEvent(&Event{
		Type:   EventType_CardsDealt,
		Phase:  Phase_Preflop,
		Amount: int64(len(dealOrder) * 2),
	})

	e.debug().
		Int("button", ctx.ButtonSeat).
		Int("sb", ctx.SBSeat).
		Int("bb", ctx.BBSeat).
		Int("players", len(dealOrder)).
		Msg("hand started")

	e.syncEligibility()
	e.evaluateGame()

	return nil
}

func (e *Engine) enterStreet(street Phase) error {
	ctx := e.ctx

	if ctx.Deck == nil {
		return ErrInvalidTransition
	}

	count := 1
	if street == Phase_Flop {
		count = 3
	}

	cards, err := ctx.Deck.Deal(count)
	if err != nil {
		return err
	}

	ctx.CommunityCards = append(ctx.CommunityCards, cards...)
	for _, p := range ctx.Players {
		p.CurrentBet = 0
		if p.CanAct() {
			p.HasActed = false
		}
	}
	ctx.LastRaiseAmount = nil
	ctx.MinRaise = ctx.BigBlind
	ctx.CurrentActorSeat = UnsetValue
	ctx.FirstActorSeat = UnsetValue

	e.changePhase(street)
	e.emitEvent(&Event{
		Type:  EventType_CardsDealt,
		Phase: street,
		Cards: cards,
	})

	e.debug().
		Str("street", string(street)).
		Strs("board", card.Strings(ctx.CommunityCards)).
		Bool("runout", ctx.IsRunout).
		Msg("street dealt")

	e.evaluateGame()
	return nil
}

/*
	enterComplete 結束本手
	  - 移除離桌 (LEFT) 與被踢 (REMOVED) 的玩家
	  - 公開桌籌碼歸零的玩家淘汰
	  - 等待下一手的玩家轉為 ACTIVE
	  - 套用待生效的盲注, 按鈕移到下一位有籌碼的玩家
*/
func (e *Engine) enterComplete() {
	ctx := e.ctx

	e.clearActor()
	e.changePhase(Phase_Complete)

	remaining := make([]*Player, 0, len(ctx.Players))
	for _, p := range ctx.Players {
		p.resetHand()

		switch p.Status {
		case PlayerStatus_Left, PlayerStatus_Removed:
			continue
		case PlayerStatus_WaitingForNextHand:
			p.Status = PlayerStatus_Active
		}

		if p.Chips == 0 && !ctx.IsPrivate {
			if p.Status == PlayerStatus_Disconnected {
				e.addEffect(&Effect{
					Type:     EffectType_CancelReconnectTimer,
					PlayerID: p.ID,
				})
			}

			p.Status = PlayerStatus_Eliminated
			e.emitEvent(&Event{
				Type:     EventType_PlayerEliminated,
				PlayerID: p.ID,
				Seat:     p.Seat,
			})
			continue
		}

		remaining = append(remaining, p)
	}
	ctx.Players = remaining
	ctx.Deck = nil

	e.applyPendingBlinds()

	if ctx.ButtonSeat != UnsetValue {
		if next := ctx.nextSeat(ctx.ButtonSeat, func(p *Player) bool { return p.Funded() }); next != UnsetValue {
			ctx.ButtonSeat = next
		}
	}

	e.emitEvent(&Event{
		Type: EventType_HandComplete,
		Seat: ctx.ButtonSeat,
	})

	e.afterHand()
}

// afterHand decides what follows a completed hand.
func (e *Engine) afterHand() {
	ctx := e.ctx
	funded := ctx.FundedPlayers()

	switch {
	case len(ctx.Players) == 0 || (!ctx.IsPrivate && len(funded) < MinPlayers):
		e.endGame()
	case len(funded) < MinPlayers:
		e.changePhase(Phase_Waiting)
	case ctx.IsPaused:
	default:
		e.scheduleTransition(Phase_Preflop, e.options.NextHandDelay)
	}
}

func (e *Engine) endGame() {
	ctx := e.ctx

	e.clearActor()
	e.changePhase(Phase_Finished)

	winners := make([]string, 0)
	for _, p := range ctx.FundedPlayers() {
		winners = append(winners, p.ID)
	}

	e.emitEvent(&Event{
		Type:    EventType_GameEnded,
		Winners: winners,
	})
	e.addEffect(&Effect{Type: EffectType_EndGame})

	e.debug().Strs("winners", winners).Msg("game ended")
}

func (e *Engine) applyPendingBlinds() {
	ctx := e.ctx
	if ctx.PendingBlinds == nil {
		return
	}

	ctx.SmallBlind = ctx.PendingBlinds.SmallBlind
	ctx.BigBlind = ctx.PendingBlinds.BigBlind
	ctx.MinRaise = ctx.BigBlind
	ctx.PendingBlinds = nil
}
