package holdem

import (
	"github.com/weedbox/holdem/card"
)

type EventType string

const (
	EventType_GameStarted        EventType = "GAME_STARTED"
	EventType_HandStarted        EventType = "HAND_STARTED"
	EventType_BlindsPosted       EventType = "BLINDS_POSTED"
	EventType_PlayerAction       EventType = "PLAYER_ACTION"
	EventType_PhaseChanged       EventType = "PHASE_CHANGED"
	EventType_CardsDealt         EventType = "CARDS_DEALT"
	EventType_PotsUpdated        EventType = "POTS_UPDATED"
	EventType_PotRefunded        EventType = "POT_REFUNDED"
	EventType_Showdown           EventType = "SHOWDOWN"
	EventType_PotAwarded         EventType = "POT_AWARDED"
	EventType_HandComplete       EventType = "HAND_COMPLETE"
	EventType_PlayerJoined       EventType = "PLAYER_JOINED"
	EventType_PlayerLeft         EventType = "PLAYER_LEFT"
	EventType_PlayerEliminated   EventType = "PLAYER_ELIMINATED"
	EventType_PlayerDisconnected EventType = "PLAYER_DISCONNECTED"
	EventType_PlayerReconnected  EventType = "PLAYER_RECONNECTED"
	EventType_CardRevealed       EventType = "CARD_REVEALED"
	EventType_GamePaused         EventType = "GAME_PAUSED"
	EventType_GameResumed        EventType = "GAME_RESUMED"
	EventType_StackSet           EventType = "STACK_SET"
	EventType_BlindsChanged      EventType = "BLINDS_CHANGED"
	EventType_SeatRequested      EventType = "SEAT_REQUESTED"
	EventType_SeatApproved       EventType = "SEAT_APPROVED"
	EventType_SeatRejected       EventType = "SEAT_REJECTED"
	EventType_SpectatorJoined    EventType = "SPECTATOR_JOINED"
	EventType_GameEnded          EventType = "GAME_ENDED"
	EventType_Error              EventType = "ERROR"
)

// Event is broadcast to everyone at the table, so it never carries hidden
// hole cards. Only the fields relevant to Type are set.
type Event struct {
	Type       EventType        `json:"type"`
	GameID     string           `json:"gameId"`
	HandNumber int              `json:"handNumber"`
	PlayerID   string           `json:"playerId,omitempty"`
	Seat       int              `json:"seat,omitempty"`
	Action     ActionType       `json:"action,omitempty"`
	Amount     int64            `json:"amount,omitempty"`
	Timeout    bool             `json:"timeout,omitempty"`
	Phase      Phase            `json:"phase,omitempty"`
	Cards      []card.Card      `json:"cards,omitempty"`
	Index      int              `json:"index,omitempty"`
	Pots       []*Pot           `json:"pots,omitempty"`
	PotIndex   int              `json:"potIndex,omitempty"`
	Winners    []string         `json:"winners,omitempty"`
	Payouts    map[string]int64 `json:"payouts,omitempty"`
	Showdown   *ShowdownResult  `json:"showdown,omitempty"`
	Blinds     *Blinds          `json:"blinds,omitempty"`
	RequestID  string           `json:"requestId,omitempty"`
	Message    string           `json:"message,omitempty"`
}

func (e *Engine) emitEvent(ev *Event) {
	ev.GameID = e.ctx.GameID
	ev.HandNumber = e.ctx.HandNumber
	e.events = append(e.events, ev)
}

func (e *Engine) emitErrorEvent(playerID string, err error) {
	e.emitEvent(&Event{
		Type:     EventType_Error,
		PlayerID: playerID,
		Message:  err.Error(),
	})
}

func (e *Engine) emitPotsUpdated() {
	e.emitEvent(&Event{
		Type: EventType_PotsUpdated,
		Pots: clonePots(e.ctx.Pots),
	})
}
