package equity

import (
	"github.com/weedbox/holdem/card"
	"github.com/weedbox/holdem/handrange"
)

// simulate runs Monte Carlo trials. Each trial draws one combo per range
// player and deals the rest of the board with a partial Fisher–Yates
// shuffle. Trials whose range draws keep colliding are dropped.
func (c *Calculator) simulate(s *spot, iterations int) ([]float64, int) {
	n := len(s.players)
	wins := make([]float64, n)
	hands := make([]handrange.Combo, n)
	scratch := make([]int, n)
	base := liveCards(s.dead)
	pool := make([]card.Card, 0, len(base))

	board := make([]card.Card, 5)
	copy(board, s.board)
	first := len(s.board)

	count := 0
	for it := 0; it < iterations; it++ {
		used, ok := c.sampleHands(s, hands)
		if !ok {
			continue
		}

		pool = pool[:0]
		for _, cd := range base {
			if used&card.Mask(cd) == 0 {
				pool = append(pool, cd)
			}
		}

		for i := 0; i < s.toCome; i++ {
			j := i + c.rng.Intn(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
			board[first+i] = pool[i]
		}

		showdown(hands, board, wins, scratch)
		count++
	}

	return wins, count
}

func (c *Calculator) sampleHands(s *spot, hands []handrange.Combo) (uint64, bool) {
	used := s.dead
	for i, p := range s.players {
		if p.fixed {
			hands[i] = p.hand
			continue
		}

		placed := false
		for try := 0; try <= maxSampleRetries; try++ {
			combo := p.combos[c.rng.Intn(len(p.combos))]
			if combo.Mask()&used != 0 {
				continue
			}
			hands[i] = combo
			used |= combo.Mask()
			placed = true
			break
		}

		if !placed {
			return 0, false
		}
	}
	return used, true
}
