package holdem

type RequestAction string

const (
	RequestAction_PlayerAction     RequestAction = "PlayerAction"
	RequestAction_AdminAction      RequestAction = "AdminAction"
	RequestAction_AddPlayers       RequestAction = "AddPlayers"
	RequestAction_RequestSeat      RequestAction = "RequestSeat"
	RequestAction_AddSpectator     RequestAction = "AddSpectator"
	RequestAction_PlayerLeave      RequestAction = "PlayerLeave"
	RequestAction_PlayerDisconnect RequestAction = "PlayerDisconnect"
	RequestAction_PlayerReconnect  RequestAction = "PlayerReconnect"
	RequestAction_PlayerReady      RequestAction = "PlayerReady"
	RequestAction_Transition       RequestAction = "Transition"
	RequestAction_ActionTimeout    RequestAction = "ActionTimeout"
	RequestAction_ReconnectExpired RequestAction = "ReconnectExpired"
	RequestAction_OpenGameReady    RequestAction = "OpenGameReady"
	RequestAction_Snapshot         RequestAction = "Snapshot"
	RequestAction_Recover          RequestAction = "Recover"
	RequestAction_Close            RequestAction = "Close"
)

type Request struct {
	Action  RequestAction
	Payload Payload
	Reply   chan *Response // nil for timer callbacks
}

type Payload struct {
	PlayerID string
	Param    interface{}
}

type Response struct {
	Result Result
	View   *GameView
}

type TransitionParam struct {
	Target     Phase
	HandNumber int
}

type ActionTimeoutParam struct {
	Seat       int
	HandNumber int
}
