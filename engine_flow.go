package holdem

func nextStreet(phase Phase) Phase {
	switch phase {
	case Phase_Preflop:
		return Phase_Flop
	case Phase_Flop:
		return Phase_Turn
	case Phase_Turn:
		return Phase_River
	}
	return Phase_Showdown
}

/*
	evaluateGame 決定下注輪的下一步
	  1. 未棄牌玩家少於 2 人: 直接攤牌 (若有人離桌且公牌未發完則先發完)
	  2. 最多 1 人能行動且下注已平衡: 自動發牌 (runout)
	  3. 所有人都已行動且下注平衡: 收池並排程下一條街
	  4. 否則順時針輪到下一位
*/
func (e *Engine) evaluateGame() {
	ctx := e.ctx
	live := ctx.LivePlayers()

	if len(live) < 2 {
		e.clearActor()
		e.collectPots(false)

		if len(live) == 1 && ctx.LeftThisHand && len(ctx.CommunityCards) < 5 {
			ctx.IsRunout = true
			e.scheduleTransition(nextStreet(ctx.CurrentPhase), e.options.RunoutDelay)
			return
		}

		e.scheduleTransition(Phase_Showdown, e.options.StreetDelay)
		return
	}

	highest := ctx.HighestBet()
	actors := ctx.filterPlayers(func(p *Player) bool {
		return p.CanAct()
	})

	balanced := true
	for _, p := range actors {
		if p.CurrentBet != highest {
			balanced = false
			break
		}
	}

	if len(actors) <= 1 && balanced {
		e.clearActor()
		e.collectPots(true)
		ctx.IsRunout = true
		e.scheduleTransition(nextStreet(ctx.CurrentPhase), e.options.RunoutDelay)
		return
	}

	pending := func(p *Player) bool {
		return p.CanAct() && (!p.HasActed || p.CurrentBet < highest)
	}

	if len(ctx.filterPlayers(pending)) == 0 {
		e.clearActor()
		e.collectPots(true)
		e.scheduleTransition(nextStreet(ctx.CurrentPhase), e.options.StreetDelay)
		return
	}

	// the current actor keeps the turn until they act
	if current := ctx.PlayerBySeat(ctx.CurrentActorSeat); current != nil && pending(current) {
		return
	}

	from := ctx.CurrentActorSeat
	if from == UnsetValue {
		from = ctx.ButtonSeat
		if ctx.CurrentPhase == Phase_Preflop {
			from = ctx.BBSeat
		}
	}

	ctx.CurrentActorSeat = ctx.nextSeat(from, pending)
	if ctx.FirstActorSeat == UnsetValue {
		ctx.FirstActorSeat = ctx.CurrentActorSeat
	}
	e.startActionTimer()
}

func (e *Engine) clearActor() {
	if e.ctx.CurrentActorSeat != UnsetValue || e.ctx.ActionDeadline != nil {
		e.cancelActionTimer()
	}
	e.ctx.CurrentActorSeat = UnsetValue
}

// collectPots rebuilds the pots from every player's totalBet. With refund
// set, a pot only one player can win goes straight back to that player.
func (e *Engine) collectPots(refund bool) {
	ctx := e.ctx
	levels := buildPotLevels(ctx.Players)

	pots := make([]*Pot, 0, len(levels))
	for _, level := range levels {
		if !refund || len(level.pot.EligiblePlayers) != 1 {
			pots = append(pots, level.pot)
			continue
		}

		owner := ctx.PlayerByID(level.pot.EligiblePlayers[0])
		owner.Chips += level.pot.Amount

		for playerID, contribution := range level.contributions {
			contributor := ctx.PlayerByID(playerID)
			contributor.TotalBet -= contribution
			if contribution > contributor.CurrentBet {
				contribution = contributor.CurrentBet
			}
			contributor.CurrentBet -= contribution
		}

		e.emitEvent(&Event{
			Type:     EventType_PotRefunded,
			PlayerID: owner.ID,
			Seat:     owner.Seat,
			Amount:   level.pot.Amount,
		})
	}

	ctx.Pots = pots
	e.emitPotsUpdated()
}
