package equity

import (
	"github.com/weedbox/holdem/card"
	"github.com/weedbox/holdem/evaluator"
	"github.com/weedbox/holdem/handrange"
)

var rank7 = evaluator.Rank

func liveCards(dead uint64) []card.Card {
	cards := make([]card.Card, 0, 52)
	for i := 0; i < 52; i++ {
		if dead&(uint64(1)<<uint(i)) == 0 {
			cards = append(cards, card.FromIndex(i))
		}
	}
	return cards
}

// enumerate walks every combination of range combos that fit together and,
// for each, every runout of the remaining cards. Used when at most two
// board cards are missing.
func enumerate(s *spot) ([]float64, int) {
	n := len(s.players)
	wins := make([]float64, n)
	hands := make([]handrange.Combo, n)
	scratch := make([]int, n)
	deck := liveCards(s.dead)
	count := 0

	board := make([]card.Card, 5)
	copy(board, s.board)
	first := len(s.board)

	runouts := func(used uint64) {
		switch s.toCome {
		case 0:
			showdown(hands, board, wins, scratch)
			count++
		case 1:
			for _, c := range deck {
				if used&card.Mask(c) != 0 {
					continue
				}
				board[first] = c
				showdown(hands, board, wins, scratch)
				count++
			}
		case 2:
			for i, a := range deck {
				if used&card.Mask(a) != 0 {
					continue
				}
				for _, b := range deck[i+1:] {
					if used&card.Mask(b) != 0 {
						continue
					}
					board[first], board[first+1] = a, b
					showdown(hands, board, wins, scratch)
					count++
				}
			}
		}
	}

	var assign func(i int, used uint64)
	assign = func(i int, used uint64) {
		if i == n {
			runouts(used)
			return
		}

		p := s.players[i]
		if p.fixed {
			hands[i] = p.hand
			assign(i+1, used)
			return
		}

		for _, combo := range p.combos {
			m := combo.Mask()
			if m&used != 0 {
				continue
			}
			hands[i] = combo
			assign(i+1, used|m)
		}
	}

	assign(0, s.dead)
	return wins, count
}

// exactHeadsUp returns the first hand's equity in percent over all
// C(48,5) boards.
func exactHeadsUp(h1, h2 handrange.Combo) float64 {
	deck := liveCards(h1.Mask() | h2.Mask())

	var (
		a, b [7]card.Card
		wins float64
		n    int
	)
	a[0], a[1] = h1[0], h1[1]
	b[0], b[1] = h2[0], h2[1]

	for i1 := 0; i1 < len(deck); i1++ {
		a[2], b[2] = deck[i1], deck[i1]
		for i2 := i1 + 1; i2 < len(deck); i2++ {
			a[3], b[3] = deck[i2], deck[i2]
			for i3 := i2 + 1; i3 < len(deck); i3++ {
				a[4], b[4] = deck[i3], deck[i3]
				for i4 := i3 + 1; i4 < len(deck); i4++ {
					a[5], b[5] = deck[i4], deck[i4]
					for i5 := i4 + 1; i5 < len(deck); i5++ {
						a[6], b[6] = deck[i5], deck[i5]

						ra, rb := rank7(a[:]), rank7(b[:])
						switch {
						case ra > rb:
							wins++
						case ra == rb:
							wins += 0.5
						}
						n++
					}
				}
			}
		}
	}

	return wins / float64(n) * 100
}
