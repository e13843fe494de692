package handrange

import (
	"strings"

	"github.com/weedbox/holdem/card"
)

// Combo is one concrete starting hand.
type Combo [2]card.Card

func (c Combo) Mask() uint64 {
	return card.Mask(c[0], c[1])
}

func (c Combo) String() string {
	return c[0].String() + c[1].String()
}

type kind int

const (
	kind_Any kind = iota
	kind_Suited
	kind_Offsuit
)

// Parse expands range notation such as "QQ+, AKs, 99-77, AQo+, AKs-A9s"
// into unique combos, in order of first appearance. Tokens that do not
// match the grammar are skipped.
func Parse(rangeString string) []Combo {
	combos := make([]Combo, 0)
	seen := make(map[uint64]struct{})

	add := func(c Combo) {
		sig := c.Mask()
		if _, ok := seen[sig]; ok {
			return
		}
		seen[sig] = struct{}{}
		combos = append(combos, c)
	}

	for _, token := range strings.Split(rangeString, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		for _, c := range parseToken(token) {
			add(c)
		}
	}

	return combos
}

func parseToken(token string) []Combo {
	if exact, ok := parseExact(token); ok {
		return []Combo{exact}
	}

	if strings.Contains(token, "-") {
		parts := strings.Split(token, "-")
		if len(parts) != 2 {
			return nil
		}
		return parseSpan(parts[0], parts[1])
	}

	plus := strings.HasSuffix(token, "+")
	h, l, k, ok := parseHand(strings.TrimSuffix(token, "+"))
	if !ok {
		return nil
	}

	if !plus {
		return expand(h, l, k)
	}

	combos := make([]Combo, 0)
	if h == l {
		for r := h; r <= card.Rank_Ace; r++ {
			combos = append(combos, pairCombos(r)...)
		}
		return combos
	}

	// Non-pair plus notation holds the top card and walks the kicker down to the deuce.
	for kicker := l; kicker >= card.Rank_Two; kicker-- {
		combos = append(combos, expand(h, kicker, k)...)
	}
	return combos
}

func parseSpan(from, to string) []Combo {
	h1, l1, k1, ok1 := parseHand(from)
	h2, l2, k2, ok2 := parseHand(to)
	if !ok1 || !ok2 || k1 != k2 {
		return nil
	}

	combos := make([]Combo, 0)

	// 99-77
	if h1 == l1 && h2 == l2 {
		lo, hi := h1, h2
		if lo > hi {
			lo, hi = hi, lo
		}
		for r := lo; r <= hi; r++ {
			combos = append(combos, pairCombos(r)...)
		}
		return combos
	}

	// AKs-A9s
	if h1 != h2 || h1 == l1 || h2 == l2 {
		return nil
	}
	lo, hi := l1, l2
	if lo > hi {
		lo, hi = hi, lo
	}
	for kicker := hi; kicker >= lo; kicker-- {
		combos = append(combos, expand(h1, kicker, k1)...)
	}
	return combos
}

// parseHand reads "AK", "AKs", "AKo" or "QQ". The higher rank comes first.
func parseHand(s string) (high, low int, k kind, ok bool) {
	if len(s) < 2 || len(s) > 3 {
		return 0, 0, 0, false
	}

	high = parseRank(s[0])
	low = parseRank(s[1])
	if high == 0 || low == 0 {
		return 0, 0, 0, false
	}
	if low > high {
		high, low = low, high
	}

	k = kind_Any
	if len(s) == 3 {
		switch s[2] {
		case 's', 'S':
			k = kind_Suited
		case 'o', 'O':
			k = kind_Offsuit
		default:
			return 0, 0, 0, false
		}
		if high == low {
			return 0, 0, 0, false
		}
	}

	return high, low, k, true
}

func parseExact(s string) (Combo, bool) {
	if len(s) != 4 {
		return Combo{}, false
	}

	a, err := card.Parse(s[:2])
	if err != nil {
		return Combo{}, false
	}
	b, err := card.Parse(s[2:])
	if err != nil || a == b {
		return Combo{}, false
	}

	if b.Rank() > a.Rank() {
		a, b = b, a
	}
	return Combo{a, b}, true
}

func parseRank(ch byte) int {
	idx := strings.IndexByte(card.RankChars, upper(ch))
	if idx < 0 {
		return 0
	}
	return idx + 2
}

func upper(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - 'a' + 'A'
	}
	return ch
}

func expand(high, low int, k kind) []Combo {
	if high == low {
		return pairCombos(high)
	}

	combos := make([]Combo, 0, 16)
	for s1 := card.Suit_Hearts; s1 <= card.Suit_Spades; s1++ {
		for s2 := card.Suit_Hearts; s2 <= card.Suit_Spades; s2++ {
			if k == kind_Suited && s1 != s2 {
				continue
			}
			if k == kind_Offsuit && s1 == s2 {
				continue
			}
			a, _ := card.New(high, s1)
			b, _ := card.New(low, s2)
			combos = append(combos, Combo{a, b})
		}
	}
	return combos
}

func pairCombos(rank int) []Combo {
	combos := make([]Combo, 0, 6)
	for s1 := card.Suit_Hearts; s1 <= card.Suit_Spades; s1++ {
		for s2 := s1 + 1; s2 <= card.Suit_Spades; s2++ {
			a, _ := card.New(rank, s1)
			b, _ := card.New(rank, s2)
			combos = append(combos, Combo{a, b})
		}
	}
	return combos
}

// Filter drops combos that use any card in dead.
func Filter(combos []Combo, dead uint64) []Combo {
	live := make([]Combo, 0, len(combos))
	for _, c := range combos {
		if c.Mask()&dead == 0 {
			live = append(live, c)
		}
	}
	return live
}
