package holdem

import (
	"sort"

	"github.com/weedbox/holdem/card"
)

/*
	ProcessAction 處理玩家動作
	  - 暫停中、手牌已結束、空座位、非輪到的玩家一律拒絕 (reveal 不檢查輪次)
	  - 拒絕時不修改任何狀態, 只回傳 ERROR 事件
*/
func (e *Engine) ProcessAction(action Action) Result {
	e.begin()
	ctx := e.ctx

	if ctx.IsPaused {
		return e.reject("", ErrGamePaused)
	}

	if ctx.CurrentPhase == Phase_Finished || ctx.CurrentPhase == Phase_Complete {
		return e.reject("", ErrGameNotActive)
	}

	p := ctx.PlayerBySeat(action.Seat)
	if p == nil {
		return e.reject("", ErrSeatEmpty)
	}

	if action.Type == ActionType_Reveal {
		return e.reveal(p, action.Index)
	}

	if !ctx.CurrentPhase.IsBetting() || ctx.CurrentActorSeat != action.Seat || !p.CanAct() {
		return e.reject(p.ID, ErrNotYourTurn)
	}

	if action.Amount < 0 {
		return e.reject(p.ID, ErrInvalidAmount)
	}

	if err := e.applyAction(p, action.Type, action.Amount, false); err != nil {
		return e.reject(p.ID, err)
	}

	return e.commit()
}

// applyAction validates before it mutates anything, so an error leaves the
// context as it was.
func (e *Engine) applyAction(p *Player, actionType ActionType, amount int64, timeout bool) error {
	ctx := e.ctx
	highest := ctx.HighestBet()
	toCall := ctx.ToCall(p)

	var added int64
	switch actionType {
	case ActionType_Fold:
		p.Folded = true

	case ActionType_Check:
		if toCall > 0 {
			return ErrIllegalCheck
		}

	case ActionType_Call:
		if toCall == 0 {
			return ErrIllegalCall
		}

		callAmount, mainPotOnly, err := e.resolveCall(p, amount)
		if err != nil {
			return err
		}

		added = callAmount
		e.commitChips(p, added)
		p.MainPotOnly = mainPotOnly

	case ActionType_Bet:
		if amount <= 0 {
			return ErrInvalidAmount
		}
		if amount > p.Chips {
			return ErrInsufficientChips
		}

		// a short all-in does not reopen the betting to players who already acted
		if p.HasActed && toCall > 0 {
			return ErrIllegalBet
		}

		// all-in for less is always allowed
		if amount < p.Chips {
			increment := p.CurrentBet + amount - highest
			if increment <= 0 || increment < ctx.MinRaiseIncrement() {
				return ErrIllegalBet
			}
		}

		added = amount
		e.raise(p, added, highest)

	case ActionType_AllIn:
		if p.Chips == 0 {
			return ErrInsufficientChips
		}

		added = p.Chips
		if p.CurrentBet+added > highest {
			if p.HasActed && toCall > 0 {
				return ErrIllegalBet
			}
			e.raise(p, added, highest)
		} else {
			e.commitChips(p, added)
		}

	default:
		return ErrUnknownAction
	}

	p.HasActed = true
	e.syncEligibility()

	e.emitEvent(&Event{
		Type:     EventType_PlayerAction,
		PlayerID: p.ID,
		Seat:     p.Seat,
		Action:   actionType,
		Amount:   added,
		Timeout:  timeout,
	})

	e.debug().
		Str("player_id", p.ID).
		Str("action", string(actionType)).
		Int64("amount", added).
		Bool("timeout", timeout).
		Msg("player action")

	e.cancelActionTimer()
	e.evaluateGame()

	return nil
}

// resolveCall returns the chips a call adds. Besides the full call (or the
// whole stack when short) a player may call only up to the level of an
// all-in opponent, which limits them to the pots at that level.
func (e *Engine) resolveCall(p *Player, amount int64) (int64, bool, error) {
	ctx := e.ctx
	highest := ctx.HighestBet()

	full := ctx.ToCall(p)
	if full > p.Chips {
		full = p.Chips
	}

	if amount == 0 || amount == full {
		return full, false, nil
	}

	for _, opponent := range ctx.Players {
		if opponent == p || !opponent.Live() || !opponent.AllIn {
			continue
		}

		if opponent.CurrentBet <= p.CurrentBet || opponent.CurrentBet >= highest {
			continue
		}

		if opponent.CurrentBet-p.CurrentBet == amount && amount < p.Chips {
			return amount, true, nil
		}
	}

	return 0, false, ErrIllegalCall
}

// raise commits chips that lift the player above the highest bet. Only a
// full raise reopens the action and moves lastRaiseAmount.
func (e *Engine) raise(p *Player, added int64, highest int64) {
	ctx := e.ctx
	increment := p.CurrentBet + added - highest
	full := increment >= ctx.MinRaiseIncrement()

	e.commitChips(p, added)

	if !full {
		return
	}

	ctx.LastRaiseAmount = &increment
	ctx.MinRaise = ctx.MinRaiseIncrement()

	for _, other := range ctx.Players {
		if other != p && other.CanAct() {
			other.HasActed = false
		}
	}
}

func (e *Engine) commitChips(p *Player, amount int64) {
	if amount > p.Chips {
		amount = p.Chips
	}

	p.Chips -= amount
	p.CurrentBet += amount
	p.TotalBet += amount

	if p.Chips == 0 && p.InHand() {
		p.AllIn = true
	}
}

func (e *Engine) syncEligibility() {
	for _, p := range e.ctx.Players {
		p.EligibleToBet = p.CanAct()
	}
}

func (e *Engine) reveal(p *Player, idx int) Result {
	if e.ctx.CurrentPhase != Phase_Showdown {
		return e.reject(p.ID, ErrRevealNotAllowed)
	}

	if idx < 0 || idx > 1 || idx >= len(p.HoleCards) {
		return e.reject(p.ID, ErrInvalidRevealIndex)
	}

	if !p.IsRevealed(idx) {
		p.RevealedIndices = append(p.RevealedIndices, idx)
		sort.Ints(p.RevealedIndices)
	}

	e.emitEvent(&Event{
		Type:     EventType_CardRevealed,
		PlayerID: p.ID,
		Seat:     p.Seat,
		Index:    idx,
		Cards:    []card.Card{p.HoleCards[idx]},
	})

	return e.commit()
}
