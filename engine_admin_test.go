package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func privateGame(t *testing.T, players ...PlayerSeat) *Engine {
	return newTestEngine(t, GameSettings{IsPrivate: true, HostID: "host"}, players...)
}

func TestAdmin_PauseResume(t *testing.T) {
	e := headsUp(t)
	startHand(t, e, 1)
	ctx := e.Context()

	result := e.ProcessAdminAction(AdminAction{Type: AdminAction_Pause})
	require.True(t, result.Success)
	assert.True(t, ctx.IsPaused)
	assert.Nil(t, ctx.ActionDeadline)
	assert.NotNil(t, findEffect(result.Effects, EffectType_CancelActionTimer))
	assert.Len(t, findEvents(result.Events, EventType_GamePaused), 1)

	result = e.ProcessAdminAction(AdminAction{Type: AdminAction_Pause})
	assert.ErrorIs(t, result.Error, ErrGamePaused)

	result = e.ProcessAdminAction(AdminAction{Type: AdminAction_Resume})
	require.True(t, result.Success)
	assert.False(t, ctx.IsPaused)
	assert.NotNil(t, ctx.ActionDeadline)
	timer := findEffect(result.Effects, EffectType_StartActionTimer)
	require.NotNil(t, timer)
	assert.Equal(t, 1, timer.Seat)

	result = e.ProcessAdminAction(AdminAction{Type: AdminAction_Resume})
	assert.ErrorIs(t, result.Error, ErrGameNotPaused)

	result = e.ProcessAdminAction(AdminAction{Type: "ADMIN_SHUFFLE"})
	assert.ErrorIs(t, result.Error, ErrUnknownAction)
}

func TestAdmin_ResumeAfterShowdown(t *testing.T) {
	e := headsUp(t)
	startHand(t, e, 1)
	mustAct(t, e, ActionType_Fold, 1, 0)
	advance(t, e, Phase_Showdown)

	require.True(t, e.ProcessAdminAction(AdminAction{Type: AdminAction_Pause}).Success)
	result := e.ExecuteTransition(Phase_Complete)
	assert.ErrorIs(t, result.Error, ErrGamePaused)

	result = e.ProcessAdminAction(AdminAction{Type: AdminAction_Resume})
	require.True(t, result.Success)
	ef := findEffect(result.Effects, EffectType_ScheduleTransition)
	require.NotNil(t, ef)
	assert.Equal(t, Phase_Complete, ef.Target)
}

func TestAdmin_SetBlinds(t *testing.T) {
	e := headsUp(t)

	result := e.ProcessAdminAction(AdminAction{Type: AdminAction_SetBlinds, SmallBlind: 10, BigBlind: 5})
	assert.ErrorIs(t, result.Error, ErrInvalidBlinds)

	// no hand running: applied at once
	result = e.ProcessAdminAction(AdminAction{Type: AdminAction_SetBlinds, SmallBlind: 2, BigBlind: 4})
	require.True(t, result.Success)
	assert.Equal(t, int64(4), e.ctx.BigBlind)
	assert.Nil(t, e.ctx.PendingBlinds)

	startHand(t, e, 1)
	assert.Equal(t, int64(4), e.ctx.PlayerByID("bob").CurrentBet)

	result = e.ProcessAdminAction(AdminAction{Type: AdminAction_SetBlinds, SmallBlind: 5, BigBlind: 10})
	require.True(t, result.Success)
	assert.Len(t, findEvents(result.Events, EventType_BlindsChanged), 1)
	assert.Equal(t, int64(2), e.ctx.SmallBlind)
	require.NotNil(t, e.ctx.PendingBlinds)
	assert.Equal(t, int64(10), e.ctx.PendingBlinds.BigBlind)

	mustAct(t, e, ActionType_Fold, 1, 0)
	advance(t, e, Phase_Showdown)
	advance(t, e, Phase_Complete)

	assert.Equal(t, int64(5), e.ctx.SmallBlind)
	assert.Equal(t, int64(10), e.ctx.BigBlind)
	assert.Nil(t, e.ctx.PendingBlinds)
}

func TestAdmin_SetStack(t *testing.T) {
	e := headsUp(t)

	result := e.ProcessAdminAction(AdminAction{Type: AdminAction_SetStack, PlayerID: "alice", Amount: 500})
	require.True(t, result.Success)
	assert.Equal(t, int64(500), e.ctx.PlayerByID("alice").Chips)

	stackSet := findEvents(result.Events, EventType_StackSet)
	require.Len(t, stackSet, 1)
	assert.Equal(t, int64(500), stackSet[0].Amount)

	result = e.ProcessAdminAction(AdminAction{Type: AdminAction_SetStack, PlayerID: "alice", Amount: -1})
	assert.ErrorIs(t, result.Error, ErrInvalidAmount)

	result = e.ProcessAdminAction(AdminAction{Type: AdminAction_SetStack, PlayerID: "nobody", Amount: 1})
	assert.ErrorIs(t, result.Error, ErrPlayerNotFound)
}

func TestAdmin_SeatRequests(t *testing.T) {
	e := privateGame(t, PlayerSeat{ID: "alice", Seat: 1, Chips: 100})

	public := headsUp(t)
	result := public.RequestSeat(SeatRequest{PlayerID: "dave", Chips: 100})
	assert.ErrorIs(t, result.Error, ErrNotPrivateGame)

	result = e.RequestSeat(SeatRequest{PlayerID: "alice", Chips: 100})
	assert.ErrorIs(t, result.Error, ErrPlayerAlreadySeated)

	result = e.RequestSeat(SeatRequest{PlayerID: "dave", Seat: 1, Chips: 100})
	assert.ErrorIs(t, result.Error, ErrSeatUnavailable)

	result = e.RequestSeat(SeatRequest{PlayerID: "dave", Seat: 4, Chips: 200})
	require.True(t, result.Success)
	require.Len(t, e.ctx.PendingRequests, 1)
	requestID := e.ctx.PendingRequests[0].ID
	assert.NotEmpty(t, requestID)

	result = e.RequestSeat(SeatRequest{PlayerID: "dave", Chips: 200})
	assert.ErrorIs(t, result.Error, ErrPlayerAlreadySeated)

	result = e.RequestSeat(SeatRequest{PlayerID: "erin", Chips: 50})
	require.True(t, result.Success)
	require.Len(t, e.ctx.PendingRequests, 2)

	result = e.ProcessAdminAction(AdminAction{Type: AdminAction_Approve, RequestID: "missing"})
	assert.ErrorIs(t, result.Error, ErrRequestNotFound)

	result = e.ProcessAdminAction(AdminAction{Type: AdminAction_Approve, RequestID: requestID})
	require.True(t, result.Success)
	approved := findEvents(result.Events, EventType_SeatApproved)
	require.Len(t, approved, 1)
	assert.Equal(t, 4, approved[0].Seat)

	dave := e.ctx.PlayerByID("dave")
	require.NotNil(t, dave)
	assert.Equal(t, 4, dave.Seat)
	assert.Equal(t, int64(200), dave.Chips)

	// approving never auto-starts a private game
	assert.Nil(t, findEffect(result.Effects, EffectType_ScheduleTransition))

	result = e.ProcessAdminAction(AdminAction{Type: AdminAction_Reject, PlayerID: "erin"})
	require.True(t, result.Success)
	assert.Empty(t, e.ctx.PendingRequests)
	assert.Nil(t, e.ctx.PlayerByID("erin"))
}

func TestAdmin_StartGame(t *testing.T) {
	e := privateGame(t, PlayerSeat{ID: "alice", Seat: 1, Chips: 100})

	result := e.ProcessAdminAction(AdminAction{Type: AdminAction_StartGame})
	assert.ErrorIs(t, result.Error, ErrNotEnoughPlayers)

	result = e.AddPlayers([]PlayerSeat{{ID: "bob", Seat: 2, Chips: 100}})
	require.True(t, result.Success)
	assert.Nil(t, findEffect(result.Effects, EffectType_ScheduleTransition))

	result = e.ProcessAdminAction(AdminAction{Type: AdminAction_StartGame})
	require.True(t, result.Success)
	assert.Equal(t, Phase_Preflop, e.ctx.CurrentPhase)
	assert.Len(t, findEvents(result.Events, EventType_GameStarted), 1)
	assert.Contains(t, []int{1, 2}, e.ctx.ButtonSeat)

	result = e.ProcessAdminAction(AdminAction{Type: AdminAction_StartGame})
	assert.ErrorIs(t, result.Error, ErrGameAlreadyStarted)
}

func TestAdmin_KickPrivateBecomesSpectator(t *testing.T) {
	e := privateGame(t,
		PlayerSeat{ID: "alice", Seat: 1, Chips: 100},
		PlayerSeat{ID: "bob", Seat: 2, Chips: 100},
		PlayerSeat{ID: "carol", Seat: 3, Chips: 100},
		PlayerSeat{ID: "dave", Seat: 4, Chips: 100},
	)

	// outside a hand the player is removed at once
	result := e.ProcessAdminAction(AdminAction{Type: AdminAction_Kick, PlayerID: "dave"})
	require.True(t, result.Success)
	assert.Nil(t, e.ctx.PlayerByID("dave"))
	assert.Contains(t, e.ctx.Spectators, "dave")

	startHand(t, e, 1)
	ctx := e.Context()
	assert.Equal(t, 1, ctx.CurrentActorSeat)

	result = e.ProcessAdminAction(AdminAction{Type: AdminAction_Kick, PlayerID: "carol"})
	require.True(t, result.Success)
	carol := ctx.PlayerByID("carol")
	require.NotNil(t, carol)
	assert.Equal(t, PlayerStatus_Removed, carol.Status)
	assert.True(t, carol.Folded)
	assert.Contains(t, ctx.Spectators, "carol")

	// the player to act keeps the turn
	assert.Equal(t, 1, ctx.CurrentActorSeat)

	result = e.ProcessAdminAction(AdminAction{Type: AdminAction_Kick, PlayerID: "carol"})
	assert.ErrorIs(t, result.Error, ErrPlayerNotFound)

	mustAct(t, e, ActionType_Fold, 1, 0)
	advance(t, e, Phase_Showdown)
	advance(t, e, Phase_Complete)
	assert.Nil(t, ctx.PlayerByID("carol"))
	assert.Len(t, ctx.Players, 2)
}

func TestAddSpectator(t *testing.T) {
	e := headsUp(t)

	result := e.AddSpectator("zoe")
	require.True(t, result.Success)
	assert.Equal(t, []string{"zoe"}, e.ctx.Spectators)

	result = e.AddSpectator("alice")
	assert.ErrorIs(t, result.Error, ErrPlayerAlreadySeated)

	result = e.AddPlayers([]PlayerSeat{{ID: "zoe", Chips: 100}})
	require.True(t, result.Success)
	assert.Empty(t, e.ctx.Spectators)
}
