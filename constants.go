package holdem

const (
	// General
	UnsetValue = -1
)

type Phase string

const (
	Phase_Waiting  Phase = "waiting"
	Phase_Preflop  Phase = "preflop"
	Phase_Flop     Phase = "flop"
	Phase_Turn     Phase = "turn"
	Phase_River    Phase = "river"
	Phase_Showdown Phase = "showdown"
	Phase_Complete Phase = "complete"
	Phase_Finished Phase = "finished"
)

// IsBetting reports whether the phase is one of the four betting streets.
func (p Phase) IsBetting() bool {
	switch p {
	case Phase_Preflop, Phase_Flop, Phase_Turn, Phase_River:
		return true
	}
	return false
}

// InHand reports whether a hand is being played or settled.
func (p Phase) InHand() bool {
	return p.IsBetting() || p == Phase_Showdown
}

type PlayerStatus string

const (
	PlayerStatus_Active             PlayerStatus = "ACTIVE"
	PlayerStatus_Disconnected       PlayerStatus = "DISCONNECTED"
	PlayerStatus_Left               PlayerStatus = "LEFT"
	PlayerStatus_Removed            PlayerStatus = "REMOVED"
	PlayerStatus_WaitingForNextHand PlayerStatus = "WAITING_FOR_NEXT_HAND"
	PlayerStatus_Eliminated         PlayerStatus = "ELIMINATED"
)

type ActionType string

const (
	ActionType_Fold   ActionType = "fold"
	ActionType_Check  ActionType = "check"
	ActionType_Call   ActionType = "call"
	ActionType_Bet    ActionType = "bet"
	ActionType_AllIn  ActionType = "allin"
	ActionType_Reveal ActionType = "reveal"
)

type AdminActionType string

const (
	AdminAction_Pause     AdminActionType = "ADMIN_PAUSE"
	AdminAction_Resume    AdminActionType = "ADMIN_RESUME"
	AdminAction_SetStack  AdminActionType = "ADMIN_SET_STACK"
	AdminAction_SetBlinds AdminActionType = "ADMIN_SET_BLINDS"
	AdminAction_Kick      AdminActionType = "ADMIN_KICK"
	AdminAction_Approve   AdminActionType = "ADMIN_APPROVE"
	AdminAction_Reject    AdminActionType = "ADMIN_REJECT"
	AdminAction_StartGame AdminActionType = "ADMIN_START_GAME"
)
