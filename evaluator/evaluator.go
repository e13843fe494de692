package evaluator

import (
	"errors"
	"fmt"
	"math/bits"
	"sort"

	"github.com/weedbox/holdem/card"
)

var (
	ErrInvalidCardCount = errors.New("evaluator: hand must contain 5 to 7 cards")
	ErrNoHands          = errors.New("evaluator: no hands given")
	ErrUnknownCategory  = errors.New("evaluator: unknown category")
)

const (
	MinRank = 1
	MaxRank = 7462
)

type Category int

const (
	Category_HighCard Category = iota
	Category_Pair
	Category_TwoPair
	Category_ThreeOfAKind
	Category_Straight
	Category_Flush
	Category_FullHouse
	Category_FourOfAKind
	Category_StraightFlush
	Category_RoyalFlush
)

var categoryNames = [...]string{
	"High Card",
	"Pair",
	"Two Pair",
	"Three of a Kind",
	"Straight",
	"Flush",
	"Full House",
	"Four of a Kind",
	"Straight Flush",
	"Royal Flush",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	for idx, name := range categoryNames {
		if name == string(text) {
			*c = Category(idx)
			return nil
		}
	}
	return ErrUnknownCategory
}

// Evaluation is the strength of a hand on a 1..7462 scale, higher is better.
type Evaluation struct {
	Rank     int         `json:"rank"`
	Category Category    `json:"category"`
	Cards    []card.Card `json:"cards"`
}

// Evaluate ranks 5 to 7 cards given in wire format.
func Evaluate(strs []string) (Evaluation, error) {
	cards, err := card.ParseMany(strs)
	if err != nil {
		return Evaluation{}, err
	}
	return EvaluateCards(cards)
}

func EvaluateCards(cards []card.Card) (Evaluation, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Evaluation{}, fmt.Errorf("%w: got %d", ErrInvalidCardCount, len(cards))
	}

	if mask := card.Mask(cards...); bits.OnesCount64(mask) != len(cards) {
		return Evaluation{}, card.ErrDuplicateCard
	}

	var h hand
	suit := -1
	switch len(cards) {
	case 7:
		h, suit = eval7(cards)
	case 6:
		h, suit = eval6(cards)
	default:
		h, suit = eval5(cards)
	}

	return Evaluation{
		Rank:     int(classRanks[h.key()]),
		Category: category(h),
		Cards:    pickCards(cards, h, suit),
	}, nil
}

// Rank is the allocation-free path used by simulations. Cards are assumed
// valid and distinct.
func Rank(cards []card.Card) int {
	var h hand
	switch len(cards) {
	case 7:
		h, _ = eval7(cards)
	case 6:
		h, _ = eval6(cards)
	case 5:
		h, _ = eval5(cards)
	default:
		return 0
	}
	return int(classRanks[h.key()])
}

// BestHand returns the strongest evaluation among hands and the indexes of
// every hand sharing that rank.
func BestHand(hands [][]string) (Evaluation, []int, error) {
	if len(hands) == 0 {
		return Evaluation{}, nil, ErrNoHands
	}

	var best Evaluation
	winners := make([]int, 0, 1)
	for i, cards := range hands {
		ev, err := Evaluate(cards)
		if err != nil {
			return Evaluation{}, nil, fmt.Errorf("hand %d: %w", i, err)
		}

		switch {
		case len(winners) == 0 || ev.Rank > best.Rank:
			best = ev
			winners = append(winners[:0], i)
		case ev.Rank == best.Rank:
			winners = append(winners, i)
		}
	}

	return best, winners, nil
}

// Compare orders by category first, then rank.
func Compare(a, b Evaluation) int {
	switch {
	case a.Category != b.Category:
		if a.Category > b.Category {
			return 1
		}
		return -1
	case a.Rank > b.Rank:
		return 1
	case a.Rank < b.Rank:
		return -1
	}
	return 0
}

func category(h hand) Category {
	if h.cat == catStraightFlush && h.ranks[0] == rankAce {
		return Category_RoyalFlush
	}
	return Category(h.cat)
}

// eval7 works from rank and suit masks without enumerating the 21 subsets.
func eval7(cards []card.Card) (hand, int) {
	var (
		counts     [13]int
		suitCounts [4]int
		suitMasks  [4]uint16
	)

	for _, c := range cards {
		r := c.Rank() - 2
		s := int(c.Suit())
		counts[r]++
		suitCounts[s]++
		suitMasks[s] |= 1 << uint(r)
	}

	// Seven cards cannot hold a flush together with quads or a full house.
	for s, n := range suitCounts {
		if n >= 5 {
			return flushHand(suitMasks[s]), s
		}
	}

	return fromCounts(&counts), -1
}

func eval6(cards []card.Card) (hand, int) {
	var (
		best     hand
		bestSuit = -1
		subset   [5]card.Card
	)

	for skip := 0; skip < 6; skip++ {
		n := 0
		for i, c := range cards {
			if i != skip {
				subset[n] = c
				n++
			}
		}

		h, suit := eval5(subset[:])
		if skip == 0 || h.key() > best.key() {
			best, bestSuit = h, suit
		}
	}
	return best, bestSuit
}

// eval5 sorts the cards by rank and reads the category off the groups.
func eval5(cards []card.Card) (hand, int) {
	var sorted [5]card.Card
	copy(sorted[:], cards)
	sort.Slice(sorted[:], func(i, j int) bool {
		return sorted[i].Rank() > sorted[j].Rank()
	})

	flush := true
	for _, c := range sorted[1:] {
		if c.Suit() != sorted[0].Suit() {
			flush = false
			break
		}
	}

	distinct := true
	for i := 1; i < 5; i++ {
		if sorted[i].Rank() == sorted[i-1].Rank() {
			distinct = false
			break
		}
	}

	high := -1
	if distinct {
		top := sorted[0].Rank() - 2
		switch {
		case top-(sorted[4].Rank()-2) == 4:
			high = top
		case top == rankAce && sorted[1].Rank() == card.Rank_Five:
			high = rankFive
		}
	}

	switch {
	case flush && high >= 0:
		return hand{cat: catStraightFlush, ranks: straightRanks(high)}, int(sorted[0].Suit())
	case flush:
		h := hand{cat: catFlush}
		for i, c := range sorted {
			h.ranks[i] = c.Rank() - 2
		}
		return h, int(sorted[0].Suit())
	case high >= 0:
		return hand{cat: catStraight, ranks: straightRanks(high)}, -1
	}

	var counts [13]int
	for _, c := range sorted {
		counts[c.Rank()-2]++
	}
	return fromCounts(&counts), -1
}

// pickCards reconstructs the five cards behind h, restricted to suit when
// the hand is a flush.
func pickCards(cards []card.Card, h hand, suit int) []card.Card {
	picked := make([]card.Card, 0, 5)
	var used uint64
	for _, r := range h.ranks {
		for _, c := range cards {
			bit := uint64(1) << c.Index()
			if used&bit != 0 || c.Rank()-2 != r {
				continue
			}
			if suit >= 0 && int(c.Suit()) != suit {
				continue
			}
			used |= bit
			picked = append(picked, c)
			break
		}
	}
	return picked
}
