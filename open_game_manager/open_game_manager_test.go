package open_game_manager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(timeout int) (OpenGameManager, chan OpenGameState) {
	done := make(chan OpenGameState, 1)
	m := NewOpenGameManager(OpenGameOption{
		Timeout: timeout,
		OnOpenGameReady: func(state OpenGameState) {
			done <- state
		},
	})
	return m, done
}

func waitState(t *testing.T, done chan OpenGameState, within time.Duration) OpenGameState {
	select {
	case state := <-done:
		return state
	case <-time.After(within):
		require.FailNow(t, "gate did not open in time")
	}
	return OpenGameState{}
}

func Test_InitOpenGameManager(t *testing.T) {
	m, _ := newTestManager(1)

	assert.Equal(t, 1, m.GetState().Timeout)
	assert.Equal(t, 0, m.GetState().HandNumber)
	assert.False(t, m.IsOpen())
	assert.Equal(t, 0, len(m.GetState().Participants))
	assert.ErrorIs(t, m.Ready("alice"), ErrGateClosed)
}

func Test_AllPlayersReady(t *testing.T) {
	m, done := newTestManager(10)

	m.Setup(3, map[string]int{"alice": 1, "bob": 4, "bot": 6}, []string{"bot"})
	assert.True(t, m.IsOpen())
	assert.True(t, m.GetState().Participants["bot"].IsReady)
	assert.False(t, m.GetState().Participants["alice"].IsReady)

	assert.ErrorIs(t, m.Ready("carol"), ErrParticipantNotFound)
	assert.Nil(t, m.Ready("alice"))
	assert.Nil(t, m.Ready("bob"))

	state := waitState(t, done, 2*time.Second)
	assert.Equal(t, 3, state.HandNumber)
	for _, participant := range state.Participants {
		assert.True(t, participant.IsReady)
	}
	assert.False(t, m.IsOpen())
}

func Test_TimeoutOpensGate(t *testing.T) {
	m, done := newTestManager(1)

	m.Setup(1, map[string]int{"alice": 2, "bob": 5}, nil)

	state := waitState(t, done, 4*time.Second)
	assert.Equal(t, 1, state.HandNumber)
	assert.Len(t, state.Participants, 2)
}

func Test_InitOpenGameManagerFromState(t *testing.T) {
	_, done := newTestManager(10)
	state := OpenGameState{
		Timeout:    10,
		HandNumber: 5,
		IsOpen:     true,
		Participants: map[string]*OpenGameParticipant{
			"player 1": {ID: "player 1", Seat: 1, IsReady: true},
			"player 2": {ID: "player 2", Seat: 2, IsReady: false},
			"player 3": {ID: "player 3", Seat: 3, IsReady: true},
		},
	}

	m := NewOpenGameManagerFromState(state, OpenGameOption{
		Timeout: state.Timeout,
		OnOpenGameReady: func(s OpenGameState) {
			done <- s
		},
	})

	assert.Equal(t, state.HandNumber, m.GetState().HandNumber)
	for _, participant := range state.Participants {
		restored := m.GetState().Participants[participant.ID]
		assert.Equal(t, participant.Seat, restored.Seat)
		assert.Equal(t, participant.IsReady, restored.IsReady)
	}

	assert.Nil(t, m.Ready("player 2"))
	restored := waitState(t, done, 2*time.Second)
	assert.Equal(t, 5, restored.HandNumber)
}
