package holdem

// Action is a player command. Amount is the number of chips the action adds.
type Action struct {
	Type   ActionType `json:"type"`
	Seat   int        `json:"seat"`
	Amount int64      `json:"amount,omitempty"`
	Index  int        `json:"index,omitempty"`
}

// AdminAction is a host command. Only the fields relevant to Type are read.
type AdminAction struct {
	Type       AdminActionType `json:"type"`
	PlayerID   string          `json:"playerId,omitempty"`
	Amount     int64           `json:"amount,omitempty"`
	SmallBlind int64           `json:"smallBlind,omitempty"`
	BigBlind   int64           `json:"bigBlind,omitempty"`
	RequestID  string          `json:"requestId,omitempty"`
}

// PlayerSeat describes a player joining the table. Seat 0 picks a random empty seat.
type PlayerSeat struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Seat     int    `json:"seat,omitempty"`
	Chips    int64  `json:"chips"`
	IsBot    bool   `json:"isBot,omitempty"`
}
