package holdem

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/thoas/go-funk"
)

// AddPlayers seats players directly. Players joining mid-hand wait for the
// next one. A public game with two funded players schedules its first hand.
func (e *Engine) AddPlayers(joins []PlayerSeat) Result {
	e.begin()
	ctx := e.ctx

	if ctx.CurrentPhase == Phase_Finished {
		return e.reject("", ErrGameNotActive)
	}

	if err := e.seatPlayers(joins); err != nil {
		return e.reject("", err)
	}

	if !ctx.IsPrivate && ctx.CurrentPhase == Phase_Waiting && len(ctx.FundedPlayers()) >= MinPlayers && !ctx.IsPaused {
		e.emitEvent(&Event{Type: EventType_GameStarted})
		e.scheduleTransition(Phase_Preflop, e.options.NextHandDelay)
	}

	return e.commit()
}

func (e *Engine) seatPlayers(joins []PlayerSeat) error {
	ctx := e.ctx

	if len(joins) == 0 {
		return ErrInvalidPlayer
	}

	explicit := make(map[string]int)
	random := make([]string, 0)
	for _, join := range joins {
		if join.ID == "" || join.Chips < 0 {
			return ErrInvalidPlayer
		}
		if ctx.PlayerByID(join.ID) != nil {
			return ErrPlayerAlreadySeated
		}
		if _, exist := explicit[join.ID]; exist || funk.ContainsString(random, join.ID) {
			return ErrInvalidPlayer
		}

		if join.Seat > 0 {
			explicit[join.ID] = join.Seat
		} else {
			random = append(random, join.ID)
		}
	}

	sm := ctx.seats(nil)
	if err := sm.AssignSeats(explicit); err != nil {
		return fmt.Errorf("%w: %v", ErrSeatUnavailable, err)
	}

	assigned, err := sm.RandomAssignSeats(random, e.rng.Intn)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSeatUnavailable, err)
	}
	for playerID, seat := range explicit {
		assigned[playerID] = seat
	}

	status := PlayerStatus_Active
	if ctx.CurrentPhase.InHand() {
		status = PlayerStatus_WaitingForNextHand
	}

	for _, join := range joins {
		p := &Player{
			ID:              join.ID,
			Username:        join.Username,
			Seat:            assigned[join.ID],
			Chips:           join.Chips,
			Status:          status,
			IsBot:           join.IsBot,
			RevealedIndices: []int{},
		}
		ctx.Players = append(ctx.Players, p)

		e.emitEvent(&Event{
			Type:     EventType_PlayerJoined,
			PlayerID: p.ID,
			Seat:     p.Seat,
			Amount:   p.Chips,
		})
	}

	sort.Slice(ctx.Players, func(i, j int) bool {
		return ctx.Players[i].Seat < ctx.Players[j].Seat
	})

	ctx.Spectators = funk.FilterString(ctx.Spectators, func(id string) bool {
		_, joined := assigned[id]
		return !joined
	})

	return nil
}

// RequestSeat queues a seat request for the host of a private game.
func (e *Engine) RequestSeat(req SeatRequest) Result {
	e.begin()
	ctx := e.ctx

	if !ctx.IsPrivate {
		return e.reject(req.PlayerID, ErrNotPrivateGame)
	}
	if ctx.CurrentPhase == Phase_Finished {
		return e.reject(req.PlayerID, ErrGameNotActive)
	}
	if req.PlayerID == "" || req.Chips < 0 {
		return e.reject(req.PlayerID, ErrInvalidPlayer)
	}
	if ctx.PlayerByID(req.PlayerID) != nil || e.findRequest("", req.PlayerID) != nil {
		return e.reject(req.PlayerID, ErrPlayerAlreadySeated)
	}
	if req.Seat != 0 {
		if req.Seat < 1 || req.Seat > ctx.MaxPlayers || ctx.PlayerBySeat(req.Seat) != nil {
			return e.reject(req.PlayerID, ErrSeatUnavailable)
		}
	}

	req.ID = uuid.New().String()
	req.RequestedAt = e.now()
	ctx.PendingRequests = append(ctx.PendingRequests, &req)

	e.emitEvent(&Event{
		Type:      EventType_SeatRequested,
		PlayerID:  req.PlayerID,
		Seat:      req.Seat,
		RequestID: req.ID,
		Amount:    req.Chips,
	})

	return e.commit()
}

func (e *Engine) findRequest(requestID string, playerID string) *SeatRequest {
	for _, req := range e.ctx.PendingRequests {
		if (requestID != "" && req.ID == requestID) || (requestID == "" && req.PlayerID == playerID) {
			return req
		}
	}
	return nil
}

func (e *Engine) removeRequest(target *SeatRequest) {
	e.ctx.PendingRequests = funk.Filter(e.ctx.PendingRequests, func(req *SeatRequest) bool {
		return req != target
	}).([]*SeatRequest)
}

func (e *Engine) AddSpectator(spectatorID string) Result {
	e.begin()
	ctx := e.ctx

	if spectatorID == "" {
		return e.reject("", ErrInvalidPlayer)
	}
	if ctx.PlayerByID(spectatorID) != nil {
		return e.reject(spectatorID, ErrPlayerAlreadySeated)
	}

	if !funk.ContainsString(ctx.Spectators, spectatorID) {
		ctx.Spectators = append(ctx.Spectators, spectatorID)
	}

	e.emitEvent(&Event{
		Type:     EventType_SpectatorJoined,
		PlayerID: spectatorID,
	})

	return e.commit()
}

// HandleTimeout auto-acts for the current actor: check when free, fold otherwise.
func (e *Engine) HandleTimeout(seat int, handNumber int) Result {
	e.begin()
	ctx := e.ctx

	if ctx.IsPaused {
		return e.reject("", ErrGamePaused)
	}

	if handNumber != ctx.HandNumber || !ctx.CurrentPhase.IsBetting() || ctx.CurrentActorSeat != seat {
		return e.reject("", ErrStaleTimer)
	}

	p := ctx.PlayerBySeat(seat)
	if p == nil {
		return e.reject("", ErrSeatEmpty)
	}

	actionType := ActionType_Fold
	if ctx.ToCall(p) == 0 {
		actionType = ActionType_Check
	}

	if err := e.applyAction(p, actionType, 0, true); err != nil {
		return e.reject(p.ID, err)
	}

	return e.commit()
}

func (e *Engine) HandleDisconnect(playerID string) Result {
	e.begin()

	p := e.ctx.PlayerByID(playerID)
	if p == nil {
		return e.reject(playerID, ErrPlayerNotFound)
	}

	if p.Status != PlayerStatus_Active && p.Status != PlayerStatus_WaitingForNextHand {
		return e.reject(playerID, ErrInvalidPlayerStatus)
	}

	p.Status = PlayerStatus_Disconnected
	p.IsOffline = true

	e.emitEvent(&Event{
		Type:     EventType_PlayerDisconnected,
		PlayerID: p.ID,
		Seat:     p.Seat,
	})
	e.addEffect(&Effect{
		Type:     EffectType_StartReconnectTimer,
		PlayerID: p.ID,
		Delay:    e.options.ReconnectTimeout,
	})

	return e.commit()
}

func (e *Engine) HandleReconnect(playerID string) Result {
	e.begin()

	p := e.ctx.PlayerByID(playerID)
	if p == nil {
		return e.reject(playerID, ErrPlayerNotFound)
	}

	if p.Status != PlayerStatus_Disconnected {
		return e.reject(playerID, ErrInvalidPlayerStatus)
	}

	p.Status = PlayerStatus_Active
	if e.ctx.CurrentPhase.InHand() && !p.InHand() {
		p.Status = PlayerStatus_WaitingForNextHand
	}
	p.IsOffline = false

	e.emitEvent(&Event{
		Type:     EventType_PlayerReconnected,
		PlayerID: p.ID,
		Seat:     p.Seat,
	})
	e.addEffect(&Effect{
		Type:     EffectType_CancelReconnectTimer,
		PlayerID: p.ID,
	})

	return e.commit()
}

// HandleReconnectExpired treats a player who never came back as leaving.
func (e *Engine) HandleReconnectExpired(playerID string) Result {
	e.begin()

	p := e.ctx.PlayerByID(playerID)
	if p == nil || p.Status != PlayerStatus_Disconnected {
		return e.reject(playerID, ErrStaleTimer)
	}

	e.leave(p, PlayerStatus_Left)
	return e.commit()
}

func (e *Engine) HandleLeave(playerID string) Result {
	e.begin()

	p := e.ctx.PlayerByID(playerID)
	if p == nil || p.Status == PlayerStatus_Left || p.Status == PlayerStatus_Removed {
		return e.reject(playerID, ErrPlayerNotFound)
	}

	e.leave(p, PlayerStatus_Left)
	return e.commit()
}

/*
	leave 玩家離桌
	  - 牌局中的玩家視為棄牌, 留到本手結束才移出名單
	  - 不在牌局中的玩家立即移出
	  - REMOVED 的玩家改為觀戰
*/
func (e *Engine) leave(p *Player, status PlayerStatus) {
	ctx := e.ctx

	if p.Status == PlayerStatus_Disconnected {
		e.addEffect(&Effect{
			Type:     EffectType_CancelReconnectTimer,
			PlayerID: p.ID,
		})
	}

	p.Status = status
	if status == PlayerStatus_Removed && !funk.ContainsString(ctx.Spectators, p.ID) {
		ctx.Spectators = append(ctx.Spectators, p.ID)
	}

	e.emitEvent(&Event{
		Type:     EventType_PlayerLeft,
		PlayerID: p.ID,
		Seat:     p.Seat,
		Amount:   p.Chips,
	})

	e.debug().
		Str("player_id", p.ID).
		Str("status", string(status)).
		Msg("player left")

	if !ctx.CurrentPhase.InHand() || !p.InHand() {
		ctx.Players = funk.Filter(ctx.Players, func(other *Player) bool {
			return other != p
		}).([]*Player)

		if ctx.CurrentPhase != Phase_Finished && len(ctx.Players) == 0 {
			e.endGame()
		}
		return
	}

	if ctx.CurrentPhase.IsBetting() && p.Live() {
		p.Folded = true
		ctx.LeftThisHand = true
		e.syncEligibility()
		e.evaluateGame()
	}
}
