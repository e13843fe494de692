package holdem

import (
	"time"

	"github.com/thoas/go-funk"
	"github.com/weedbox/holdem/card"
	"github.com/weedbox/holdem/evaluator"
	"github.com/weedbox/holdem/seat_manager"
)

type Player struct {
	ID              string       `json:"id"`
	Username        string       `json:"username,omitempty"`
	Seat            int          `json:"seat"`
	Chips           int64        `json:"chips"`
	HoleCards       []card.Card  `json:"holeCards"`
	CurrentBet      int64        `json:"currentBet"`
	TotalBet        int64        `json:"totalBet"`
	Folded          bool         `json:"folded"`
	AllIn           bool         `json:"allIn"`
	Status          PlayerStatus `json:"status"`
	HasActed        bool         `json:"hasActed"`
	EligibleToBet   bool         `json:"eligibleToBet"`
	RevealedIndices []int        `json:"revealedIndices"`
	IsBot           bool         `json:"isBot"`
	IsOffline       bool         `json:"isOffline"`
	IsGhost         bool         `json:"isGhost"`
	MainPotOnly     bool         `json:"mainPotOnly"` // 接受只跟主池的跟注, 本手不能再行動
}

// InHand reports whether the player was dealt into the current hand.
func (p *Player) InHand() bool {
	return len(p.HoleCards) > 0
}

// Live is a dealt-in player still contesting the pot.
func (p *Player) Live() bool {
	return p.InHand() && !p.Folded
}

// CanAct is a live player with chips who may still take betting actions.
func (p *Player) CanAct() bool {
	return p.Live() && !p.AllIn && !p.MainPotOnly && p.Chips > 0
}

// Funded players are seated, not leaving, and have chips for the next hand.
func (p *Player) Funded() bool {
	switch p.Status {
	case PlayerStatus_Active, PlayerStatus_Disconnected, PlayerStatus_WaitingForNextHand:
		return p.Chips > 0
	}
	return false
}

func (p *Player) IsRevealed(idx int) bool {
	return funk.ContainsInt(p.RevealedIndices, idx)
}

func (p *Player) resetHand() {
	p.HoleCards = nil
	p.CurrentBet = 0
	p.TotalBet = 0
	p.Folded = false
	p.AllIn = false
	p.HasActed = false
	p.EligibleToBet = false
	p.RevealedIndices = []int{}
	p.MainPotOnly = false
}

type Pot struct {
	Amount          int64    `json:"amount"`
	EligiblePlayers []string `json:"eligiblePlayers"`
}

type Blinds struct {
	SmallBlind int64 `json:"smallBlind"`
	BigBlind   int64 `json:"bigBlind"`
}

// SeatRequest is a pending request to sit at a private game.
type SeatRequest struct {
	ID          string    `json:"id"`
	PlayerID    string    `json:"playerId"`
	Username    string    `json:"username,omitempty"`
	Seat        int       `json:"seat"`
	Chips       int64     `json:"chips"`
	RequestedAt time.Time `json:"requestedAt"`
}

type ShowdownHand struct {
	PlayerID   string               `json:"playerId"`
	Seat       int                  `json:"seat"`
	HoleCards  []card.Card          `json:"holeCards"`
	Evaluation evaluator.Evaluation `json:"evaluation"`
}

type PotAward struct {
	PotIndex int              `json:"potIndex"`
	Amount   int64            `json:"amount"`
	Winners  []string         `json:"winners"`
	Payouts  map[string]int64 `json:"payouts"`
}

type ShowdownResult struct {
	Uncontested bool            `json:"uncontested"`
	Hands       []*ShowdownHand `json:"hands"`
	Awards      []*PotAward     `json:"awards"`
}

type GameContext struct {
	GameID           string          `json:"gameId"`
	Players          []*Player       `json:"players"`
	MaxPlayers       int             `json:"maxPlayers"`
	ButtonSeat       int             `json:"buttonSeat"`
	SBSeat           int             `json:"sbSeat"`
	BBSeat           int             `json:"bbSeat"`
	SmallBlind       int64           `json:"smallBlind"`
	BigBlind         int64           `json:"bigBlind"`
	CommunityCards   []card.Card     `json:"communityCards"`
	Pots             []*Pot          `json:"pots"`
	CurrentPhase     Phase           `json:"currentPhase"`
	CurrentActorSeat int             `json:"currentActorSeat"`
	FirstActorSeat   int             `json:"firstActorSeat"`
	ActionDeadline   *time.Time      `json:"actionDeadline"`
	MinRaise         int64           `json:"minRaise"`
	LastRaiseAmount  *int64          `json:"lastRaiseAmount"`
	HandNumber       int             `json:"handNumber"`
	Deck             *card.Deck      `json:"deck,omitempty"`
	ShowdownResults  *ShowdownResult `json:"showdownResults"`
	IsPaused         bool            `json:"isPaused"`
	IsPrivate        bool            `json:"isPrivate"`
	HostID           string          `json:"hostId"`
	PendingRequests  []*SeatRequest  `json:"pendingRequests"`
	Spectators       []string        `json:"spectators"`
	IsRunout         bool            `json:"isRunout"`
	LeftThisHand     bool            `json:"leftThisHand"` // 本手有玩家離桌, 需要發完公牌
	PendingBlinds    *Blinds         `json:"pendingBlinds"`
	UpdateAt         int64           `json:"updateAt"`     // 更新時間 (Seconds)
	UpdateSerial     int64           `json:"updateSerial"` // 更新序列號 (數字越大越晚發生)
}

func (ctx *GameContext) PlayerBySeat(seat int) *Player {
	for _, p := range ctx.Players {
		if p.Seat == seat {
			return p
		}
	}
	return nil
}

func (ctx *GameContext) PlayerByID(playerID string) *Player {
	for _, p := range ctx.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (ctx *GameContext) filterPlayers(fn func(p *Player) bool) []*Player {
	return funk.Filter(ctx.Players, fn).([]*Player)
}

func (ctx *GameContext) LivePlayers() []*Player {
	return ctx.filterPlayers(func(p *Player) bool { return p.Live() })
}

func (ctx *GameContext) FundedPlayers() []*Player {
	return ctx.filterPlayers(func(p *Player) bool { return p.Funded() })
}

// HighestBet is the largest street bet among dealt-in players.
func (ctx *GameContext) HighestBet() int64 {
	var highest int64
	for _, p := range ctx.Players {
		if p.InHand() && p.CurrentBet > highest {
			highest = p.CurrentBet
		}
	}
	return highest
}

// ToCall is what the player must add to match the highest bet.
func (ctx *GameContext) ToCall(p *Player) int64 {
	toCall := ctx.HighestBet() - p.CurrentBet
	if toCall < 0 {
		return 0
	}
	return toCall
}

// MinRaiseIncrement is the smallest legal raise over the highest bet.
func (ctx *GameContext) MinRaiseIncrement() int64 {
	if ctx.LastRaiseAmount != nil && *ctx.LastRaiseAmount > ctx.BigBlind {
		return *ctx.LastRaiseAmount
	}
	return ctx.BigBlind
}

// seats returns a seat manager over the players accepted by filter.
func (ctx *GameContext) seats(filter func(p *Player) bool) seat_manager.SeatManager {
	occupied := make(map[int]string, len(ctx.Players))
	for _, p := range ctx.Players {
		if filter == nil || filter(p) {
			occupied[p.Seat] = p.ID
		}
	}
	return seat_manager.NewSeatManager(ctx.MaxPlayers, occupied)
}

// nextSeat walks clockwise from seat to the next player accepted by filter.
func (ctx *GameContext) nextSeat(from int, filter func(p *Player) bool) int {
	return ctx.seats(filter).NextSeat(ctx.normalizeSeat(from), nil)
}

// clockwise lists players accepted by filter starting left of seat.
func (ctx *GameContext) clockwise(from int, filter func(p *Player) bool) []*Player {
	sm := ctx.seats(filter)
	start := sm.NextSeat(ctx.normalizeSeat(from), nil)
	if start == seat_manager.UnsetSeatID {
		return []*Player{}
	}

	players := make([]*Player, 0, len(ctx.Players))
	for _, seat := range sm.SeatsFrom(start, nil) {
		players = append(players, ctx.PlayerBySeat(seat))
	}
	return players
}

// normalizeSeat maps an unset seat to the last one so walks start at seat 1.
func (ctx *GameContext) normalizeSeat(seat int) int {
	if seat < 1 || seat > ctx.MaxPlayers {
		return ctx.MaxPlayers
	}
	return seat
}

func (ctx *GameContext) RefreshUpdateAt() {
	ctx.UpdateAt = time.Now().Unix()
	ctx.UpdateSerial++
}
