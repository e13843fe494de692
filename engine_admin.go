package holdem

// ProcessAdminAction applies a host command. Admin actions skip the turn and
// pause checks that player actions go through.
func (e *Engine) ProcessAdminAction(action AdminAction) Result {
	e.begin()

	if e.ctx.CurrentPhase == Phase_Finished {
		return e.reject(action.PlayerID, ErrGameNotActive)
	}

	handlers := map[AdminActionType]func(AdminAction) error{
		AdminAction_Pause:     e.adminPause,
		AdminAction_Resume:    e.adminResume,
		AdminAction_SetStack:  e.adminSetStack,
		AdminAction_SetBlinds: e.adminSetBlinds,
		AdminAction_Kick:      e.adminKick,
		AdminAction_Approve:   e.adminApprove,
		AdminAction_Reject:    e.adminReject,
		AdminAction_StartGame: e.adminStartGame,
	}

	handler, ok := handlers[action.Type]
	if !ok {
		return e.reject(action.PlayerID, ErrUnknownAction)
	}

	if err := handler(action); err != nil {
		return e.reject(action.PlayerID, err)
	}

	return e.commit()
}

func (e *Engine) adminPause(AdminAction) error {
	if e.ctx.IsPaused {
		return ErrGamePaused
	}

	e.ctx.IsPaused = true
	e.cancelActionTimer()
	e.emitEvent(&Event{Type: EventType_GamePaused})
	return nil
}

// adminResume restarts whatever the pause interrupted.
func (e *Engine) adminResume(AdminAction) error {
	ctx := e.ctx
	if !ctx.IsPaused {
		return ErrGameNotPaused
	}

	ctx.IsPaused = false
	e.emitEvent(&Event{Type: EventType_GameResumed})
	e.resumeFlow()
	return nil
}

// Recover re-issues the timers a restored context was waiting on.
func (e *Engine) Recover() Result {
	e.begin()
	if !e.ctx.IsPaused {
		e.resumeFlow()
	}
	return e.commit()
}

func (e *Engine) resumeFlow() {
	ctx := e.ctx

	switch {
	case ctx.CurrentActorSeat != UnsetValue:
		e.startActionTimer()
	case ctx.CurrentPhase.IsBetting():
		e.evaluateGame()
	case ctx.CurrentPhase == Phase_Showdown:
		e.scheduleTransition(Phase_Complete, e.options.ShowdownDelay)
	case ctx.CurrentPhase == Phase_Complete:
		e.afterHand()
	case ctx.CurrentPhase == Phase_Waiting && !ctx.IsPrivate && len(ctx.FundedPlayers()) >= MinPlayers:
		e.scheduleTransition(Phase_Preflop, e.options.NextHandDelay)
	}
}

func (e *Engine) adminSetStack(action AdminAction) error {
	p := e.ctx.PlayerByID(action.PlayerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	if action.Amount < 0 {
		return ErrInvalidAmount
	}

	p.Chips = action.Amount
	e.syncEligibility()

	e.emitEvent(&Event{
		Type:     EventType_StackSet,
		PlayerID: p.ID,
		Seat:     p.Seat,
		Amount:   p.Chips,
	})
	return nil
}

// adminSetBlinds takes effect at the next hand when one is running.
func (e *Engine) adminSetBlinds(action AdminAction) error {
	ctx := e.ctx
	if action.SmallBlind <= 0 || action.BigBlind < action.SmallBlind {
		return ErrInvalidBlinds
	}

	blinds := &Blinds{
		SmallBlind: action.SmallBlind,
		BigBlind:   action.BigBlind,
	}

	ctx.PendingBlinds = blinds
	if !ctx.CurrentPhase.InHand() {
		e.applyPendingBlinds()
	}

	e.emitEvent(&Event{
		Type:   EventType_BlindsChanged,
		Blinds: blinds,
	})
	return nil
}

func (e *Engine) adminKick(action AdminAction) error {
	p := e.ctx.PlayerByID(action.PlayerID)
	if p == nil || p.Status == PlayerStatus_Left || p.Status == PlayerStatus_Removed {
		return ErrPlayerNotFound
	}

	status := PlayerStatus_Left
	if e.ctx.IsPrivate {
		status = PlayerStatus_Removed
	}

	e.leave(p, status)
	return nil
}

func (e *Engine) adminApprove(action AdminAction) error {
	req := e.findRequest(action.RequestID, action.PlayerID)
	if req == nil {
		return ErrRequestNotFound
	}

	err := e.seatPlayers([]PlayerSeat{
		{
			ID:       req.PlayerID,
			Username: req.Username,
			Seat:     req.Seat,
			Chips:    req.Chips,
		},
	})
	if err != nil {
		return err
	}

	e.removeRequest(req)

	seated := e.ctx.PlayerByID(req.PlayerID)
	e.emitEvent(&Event{
		Type:      EventType_SeatApproved,
		PlayerID:  req.PlayerID,
		Seat:      seated.Seat,
		RequestID: req.ID,
	})
	return nil
}

func (e *Engine) adminReject(action AdminAction) error {
	req := e.findRequest(action.RequestID, action.PlayerID)
	if req == nil {
		return ErrRequestNotFound
	}

	e.removeRequest(req)

	e.emitEvent(&Event{
		Type:      EventType_SeatRejected,
		PlayerID:  req.PlayerID,
		RequestID: req.ID,
	})
	return nil
}

func (e *Engine) adminStartGame(AdminAction) error {
	ctx := e.ctx
	if ctx.CurrentPhase != Phase_Waiting {
		return ErrGameAlreadyStarted
	}
	if ctx.IsPaused {
		return ErrGamePaused
	}
	if len(ctx.FundedPlayers()) < MinPlayers {
		return ErrNotEnoughPlayers
	}

	e.emitEvent(&Event{Type: EventType_GameStarted})
	return e.enterPreflop()
}
