package open_game_manager

import (
	"errors"

	"github.com/weedbox/syncsaga"
)

var (
	ErrParticipantNotFound = errors.New("open_game_manager: participant not found")
	ErrGateClosed          = errors.New("open_game_manager: gate is not open")
)

// OpenGameManager gates the start of the next hand until every seated
// player is ready or the timeout elapses.
type OpenGameManager interface {
	Setup(handNumber int, participants map[string]int, autoReady []string)
	Ready(participantID string) error
	Stop()
	IsOpen() bool
	GetState() OpenGameState
}

type openGameManager struct {
	onOpenGameReady func(state OpenGameState)
	rg              *syncsaga.ReadyGroup
	state           *OpenGameState
}

type OpenGameOption struct {
	Timeout         int // seconds
	OnOpenGameReady func(state OpenGameState)
}

type OpenGameState struct {
	Timeout      int                             `json:"timeout"`
	HandNumber   int                             `json:"handNumber"` // 上一手的編號
	IsOpen       bool                            `json:"isOpen"`
	Participants map[string]*OpenGameParticipant `json:"participants"` // key: player_id, value: participant
}

type OpenGameParticipant struct {
	ID      string `json:"id"`
	Seat    int    `json:"seat"`
	IsReady bool   `json:"isReady"`
}
