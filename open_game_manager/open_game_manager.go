package open_game_manager

import (
	"github.com/weedbox/syncsaga"
)

func NewOpenGameManager(options OpenGameOption) OpenGameManager {
	m := &openGameManager{
		onOpenGameReady: options.OnOpenGameReady,
		rg:              newReadyGroup(options.Timeout),
		state: &OpenGameState{
			Timeout:      options.Timeout,
			Participants: make(map[string]*OpenGameParticipant),
		},
	}

	if m.onOpenGameReady == nil {
		m.onOpenGameReady = func(OpenGameState) {}
	}

	return m
}

// NewOpenGameManagerFromState reopens a gate saved before a restart, keeping
// whoever was already ready.
func NewOpenGameManagerFromState(state OpenGameState, options OpenGameOption) OpenGameManager {
	m := NewOpenGameManager(options).(*openGameManager)
	if !state.IsOpen {
		return m
	}

	participants := make(map[string]int, len(state.Participants))
	ready := make([]string, 0)
	for _, participant := range state.Participants {
		participants[participant.ID] = participant.Seat
		if participant.IsReady {
			ready = append(ready, participant.ID)
		}
	}

	m.Setup(state.HandNumber, participants, ready)
	return m
}

/*
	Setup 開啟新的準備閘門
	  - participants: player_id -> seat
	  - autoReady: 直接視為已準備的玩家 (例如機器人)
	  - 全員準備或逾時後觸發 OnOpenGameReady
*/
func (m *openGameManager) Setup(handNumber int, participants map[string]int, autoReady []string) {
	m.rg.Stop()
	m.rg.OnCompleted(func(rg *syncsaga.ReadyGroup) {
		m.readyGroupOnCompleted()
	})

	m.readyGroupResetParticipants()
	m.state.HandNumber = handNumber
	m.state.IsOpen = true
	for id, seat := range participants {
		m.readyGroupAddParticipant(OpenGameParticipant{
			ID:   id,
			Seat: seat,
		})
	}

	m.rg.Start()

	for _, id := range autoReady {
		_ = m.readyGroupReady(id)
	}
}

func (m *openGameManager) Ready(participantID string) error {
	if !m.state.IsOpen {
		return ErrGateClosed
	}
	return m.readyGroupReady(participantID)
}

func (m *openGameManager) Stop() {
	m.rg.Stop()
	m.state.IsOpen = false
}

func (m *openGameManager) IsOpen() bool {
	return m.state.IsOpen
}

func (m *openGameManager) GetState() OpenGameState {
	participants := make(map[string]*OpenGameParticipant, len(m.state.Participants))
	for id, participant := range m.state.Participants {
		copied := *participant
		participants[id] = &copied
	}

	state := *m.state
	state.Participants = participants
	return state
}
