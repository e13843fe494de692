package open_game_manager

import (
	"github.com/weedbox/syncsaga"
)

func newReadyGroup(timeout int) *syncsaga.ReadyGroup {
	return syncsaga.NewReadyGroup(syncsaga.WithTimeout(timeout, func(rg *syncsaga.ReadyGroup) {
		// 逾時則未準備的玩家自動準備
		for seat, isReady := range rg.GetParticipantStates() {
			if !isReady {
				rg.Ready(seat)
			}
		}
	}))
}

func (m *openGameManager) readyGroupResetParticipants() {
	m.rg.ResetParticipants()
	m.state.Participants = map[string]*OpenGameParticipant{}
}

func (m *openGameManager) readyGroupAddParticipant(participant OpenGameParticipant) {
	m.state.Participants[participant.ID] = &OpenGameParticipant{
		ID:   participant.ID,
		Seat: participant.Seat,
	}
	m.rg.Add(int64(participant.Seat), false)
}

func (m *openGameManager) readyGroupOnCompleted() {
	if !m.state.IsOpen {
		return
	}

	for participantID := range m.state.Participants {
		m.state.Participants[participantID].IsReady = true
	}
	m.state.IsOpen = false
	m.onOpenGameReady(m.GetState())
}

func (m *openGameManager) readyGroupReady(participantID string) error {
	participant, exist := m.state.Participants[participantID]
	if !exist {
		return ErrParticipantNotFound
	}

	participant.IsReady = true
	m.rg.Ready(int64(participant.Seat))
	return nil
}
