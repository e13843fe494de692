package evaluator

import (
	"sort"
)

// Internal categories, ordered weakest to strongest. Royal flush is a
// straight flush with an ace-high window and only appears in Category.
const (
	catHighCard = iota
	catPair
	catTwoPair
	catTrips
	catStraight
	catFlush
	catFullHouse
	catQuads
	catStraightFlush
)

const (
	rankAce  = 12
	rankFive = 3
)

// Straight windows over a 13-bit rank mask (bit 0 = deuce), strongest first.
var straightMasks = [10]uint16{
	0x1F00, 0x0F80, 0x07C0, 0x03E0, 0x01F0,
	0x00F8, 0x007C, 0x003E, 0x001F,
	0x100F,
}

var straightHighs = [10]int{12, 11, 10, 9, 8, 7, 6, 5, 4, rankFive}

// hand is the category plus five ranks ordered by significance, e.g. a
// pair of nines with A-K-2 is {9,9,A,K,2}. Ordering two hands of the same
// category is a lexicographic compare of ranks.
type hand struct {
	cat   int
	ranks [5]int
}

func (h hand) key() uint32 {
	k := uint32(h.cat) << 20
	for i, r := range h.ranks {
		k |= uint32(r) << uint(16-4*i)
	}
	return k
}

// classRanks maps every reachable key to its equivalence-class rank.
var classRanks map[uint32]uint16

func init() {
	classRanks = buildClassRanks()
}

func buildClassRanks() map[uint32]uint16 {
	keys := make(map[uint32]struct{}, 7462)

	var counts [13]int
	for a := 0; a < 13; a++ {
		for b := a; b < 13; b++ {
			for c := b; c < 13; c++ {
				for d := c; d < 13; d++ {
					for e := d; e < 13; e++ {
						if a == e {
							continue
						}

						counts = [13]int{}
						counts[a]++
						counts[b]++
						counts[c]++
						counts[d]++
						counts[e]++

						h := fromCounts(&counts)
						keys[h.key()] = struct{}{}

						if a != b && b != c && c != d && d != e {
							keys[flushHand(rankMaskOf(&counts)).key()] = struct{}{}
						}
					}
				}
			}
		}
	}

	sorted := make([]uint32, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	ranks := make(map[uint32]uint16, len(sorted))
	for i, k := range sorted {
		ranks[k] = uint16(i + 1)
	}
	return ranks
}

func rankMaskOf(counts *[13]int) uint16 {
	var m uint16
	for r, n := range counts {
		if n > 0 {
			m |= 1 << uint(r)
		}
	}
	return m
}

func straightHigh(mask uint16) int {
	for i, sm := range straightMasks {
		if mask&sm == sm {
			return straightHighs[i]
		}
	}
	return -1
}

func straightRanks(high int) [5]int {
	if high == rankFive {
		return [5]int{3, 2, 1, 0, rankAce}
	}
	return [5]int{high, high - 1, high - 2, high - 3, high - 4}
}

// topRanks fills dst with the highest set bits of mask, skipping excluded ranks.
func topRanks(mask uint16, dst []int, exclude ...int) int {
	n := 0
	for r := 12; r >= 0 && n < len(dst); r-- {
		if mask&(1<<uint(r)) == 0 {
			continue
		}
		skip := false
		for _, x := range exclude {
			if x == r {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		dst[n] = r
		n++
	}
	return n
}

// flushHand builds the flush or straight flush held in a suited rank mask.
func flushHand(mask uint16) hand {
	if high := straightHigh(mask); high >= 0 {
		return hand{cat: catStraightFlush, ranks: straightRanks(high)}
	}

	h := hand{cat: catFlush}
	topRanks(mask, h.ranks[:])
	return h
}

// fromCounts classifies the best non-flush five-card hand available in a
// set of per-rank counts holding five to seven cards.
func fromCounts(counts *[13]int) hand {
	var (
		mask  uint16
		quads = -1
		trips [2]int
		pairs [3]int
		nt    int
		np    int
	)

	for r := 12; r >= 0; r-- {
		switch n := counts[r]; {
		case n == 0:
			continue
		case n == 4:
			if quads < 0 {
				quads = r
			}
		case n == 3:
			if nt < len(trips) {
				trips[nt] = r
				nt++
			}
		case n == 2:
			if np < len(pairs) {
				pairs[np] = r
				np++
			}
		}
		mask |= 1 << uint(r)
	}

	var h hand
	var kick [3]int

	switch {
	case quads >= 0:
		topRanks(mask, kick[:1], quads)
		h = hand{cat: catQuads, ranks: [5]int{quads, quads, quads, quads, kick[0]}}

	case nt > 0 && (nt > 1 || np > 0):
		pair := -1
		if nt > 1 {
			pair = trips[1]
		}
		if np > 0 && pairs[0] > pair {
			pair = pairs[0]
		}
		h = hand{cat: catFullHouse, ranks: [5]int{trips[0], trips[0], trips[0], pair, pair}}

	case straightHigh(mask) >= 0:
		h = hand{cat: catStraight, ranks: straightRanks(straightHigh(mask))}

	case nt > 0:
		topRanks(mask, kick[:2], trips[0])
		h = hand{cat: catTrips, ranks: [5]int{trips[0], trips[0], trips[0], kick[0], kick[1]}}

	case np > 1:
		topRanks(mask, kick[:1], pairs[0], pairs[1])
		h = hand{cat: catTwoPair, ranks: [5]int{pairs[0], pairs[0], pairs[1], pairs[1], kick[0]}}

	case np == 1:
		topRanks(mask, kick[:3], pairs[0])
		h = hand{cat: catPair, ranks: [5]int{pairs[0], pairs[0], kick[0], kick[1], kick[2]}}

	default:
		h = hand{cat: catHighCard}
		topRanks(mask, h.ranks[:])
	}

	return h
}
