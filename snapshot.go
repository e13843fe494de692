package holdem

import (
	"time"

	"github.com/weedbox/holdem/card"
	"github.com/weedbox/holdem/position"
)

type PlayerView struct {
	ID              string       `json:"id"`
	Username        string       `json:"username,omitempty"`
	Seat            int          `json:"seat"`
	Chips           int64        `json:"chips"`
	HoleCards       []string     `json:"holeCards"`
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
	MainPotOnly     bool         `json:"mainPotOnly"`
	Position        string       `json:"position,omitempty"`
}

// GameView is a GameContext as one viewer may see it: no deck, and hole
// cards hidden unless the viewer is entitled to them.
type GameView struct {
	GameID           string          `json:"gameId"`
	ViewerID         string          `json:"viewerId,omitempty"`
	Players          []*PlayerView   `json:"players"`
	MaxPlayers       int             `json:"maxPlayers"`
	ButtonSeat       int             `json:"buttonSeat"`
	SBSeat           int             `json:"sbSeat"`
	BBSeat           int             `json:"bbSeat"`
	SmallBlind       int64           `json:"smallBlind"`
	BigBlind         int64           `json:"bigBlind"`
	CommunityCards   []string        `json:"communityCards"`
	Pots             []*Pot          `json:"pots"`
	CurrentPhase     Phase           `json:"currentPhase"`
	CurrentActorSeat int             `json:"currentActorSeat"`
	FirstActorSeat   int             `json:"firstActorSeat"`
	ActionDeadline   *time.Time      `json:"actionDeadline"`
	MinRaise         int64           `json:"minRaise"`
	LastRaiseAmount  *int64          `json:"lastRaiseAmount"`
	HandNumber       int             `json:"handNumber"`
	ShowdownResults  *ShowdownResult `json:"showdownResults"`
	IsPaused         bool            `json:"isPaused"`
	IsPrivate        bool            `json:"isPrivate"`
	HostID           string          `json:"hostId"`
	PendingRequests  []*SeatRequest  `json:"pendingRequests"`
	Spectators       []string        `json:"spectators"`
	IsRunout         bool            `json:"isRunout"`
	PendingBlinds    *Blinds         `json:"pendingBlinds"`
	UpdateSerial     int64           `json:"updateSerial"`
}

/*
	Project 產生某位觀看者可見的牌局
	  - 不含牌堆
	  - 自己的手牌一律可見
	  - 他人的手牌在攤牌或自動發牌時 (未棄牌) 才可見, 或該張已亮牌
	  - 其餘以 HIDDEN 取代
*/
func Project(ctx *GameContext, viewerID string) *GameView {
	view := &GameView{
		GameID:           ctx.GameID,
		ViewerID:         viewerID,
		Players:          make([]*PlayerView, 0, len(ctx.Players)),
		MaxPlayers:       ctx.MaxPlayers,
		ButtonSeat:       ctx.ButtonSeat,
		SBSeat:           ctx.SBSeat,
		BBSeat:           ctx.BBSeat,
		SmallBlind:       ctx.SmallBlind,
		BigBlind:         ctx.BigBlind,
		CommunityCards:   card.Strings(ctx.CommunityCards),
		Pots:             clonePots(ctx.Pots),
		CurrentPhase:     ctx.CurrentPhase,
		CurrentActorSeat: ctx.CurrentActorSeat,
		FirstActorSeat:   ctx.FirstActorSeat,
		ActionDeadline:   ctx.ActionDeadline,
		MinRaise:         ctx.MinRaise,
		LastRaiseAmount:  ctx.LastRaiseAmount,
		HandNumber:       ctx.HandNumber,
		ShowdownResults:  ctx.ShowdownResults,
		IsPaused:         ctx.IsPaused,
		IsPrivate:        ctx.IsPrivate,
		HostID:           ctx.HostID,
		PendingRequests:  append([]*SeatRequest{}, ctx.PendingRequests...),
		Spectators:       append([]string{}, ctx.Spectators...),
		IsRunout:         ctx.IsRunout,
		PendingBlinds:    ctx.PendingBlinds,
		UpdateSerial:     ctx.UpdateSerial,
	}

	exposed := ctx.CurrentPhase == Phase_Showdown || ctx.IsRunout
	positions := resolvePositions(ctx)

	for _, p := range ctx.Players {
		holeCards := make([]string, 0, len(p.HoleCards))
		for idx, c := range p.HoleCards {
			visible := p.ID == viewerID || (exposed && !p.Folded) || p.IsRevealed(idx)
			if visible {
				holeCards = append(holeCards, c.String())
			} else {
				holeCards = append(holeCards, card.Hidden)
			}
		}

		view.Players = append(view.Players, &PlayerView{
			ID:              p.ID,
			Username:        p.Username,
			Seat:            p.Seat,
			Chips:           p.Chips,
			HoleCards:       holeCards,
			CurrentBet:      p.CurrentBet,
			TotalBet:        p.TotalBet,
			Folded:          p.Folded,
			AllIn:           p.AllIn,
			Status:          p.Status,
			HasActed:        p.HasActed,
			EligibleToBet:   p.EligibleToBet,
			RevealedIndices: append([]int{}, p.RevealedIndices...),
			IsBot:           p.IsBot,
			IsOffline:       p.IsOffline,
			IsGhost:         p.IsGhost,
			MainPotOnly:     p.MainPotOnly,
			Position:        positions[p.Seat],
		})
	}

	return view
}

// resolvePositions labels the seats dealt into the current hand.
func resolvePositions(ctx *GameContext) map[int]string {
	if !ctx.CurrentPhase.InHand() {
		return nil
	}

	seats := make([]int, 0, len(ctx.Players))
	for _, p := range ctx.Players {
		if len(p.HoleCards) > 0 {
			seats = append(seats, p.Seat)
		}
	}

	positions, err := position.Resolve(seats, ctx.ButtonSeat)
	if err != nil {
		return nil
	}

	return positions
}
