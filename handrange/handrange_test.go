package handrange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weedbox/holdem/card"
)

func TestParseCounts(t *testing.T) {
	testCases := []struct {
		rng   string
		count int
	}{
		{"AA", 6},
		{"QQ+", 18},
		{"AKs", 4},
		{"AKo", 12},
		{"AK", 16},
		{"99-77", 18},
		{"77-99", 18},
		{"AKs-A9s", 20},
		{"AQs+", 44},
		{"KTo+", 108},
		{"AhKd", 1},
		{"QQ+, AKs", 22},
		{" AA , KK ", 12},
		{"22+", 78},
	}

	for _, tc := range testCases {
		assert.Len(t, Parse(tc.rng), tc.count, tc.rng)
	}
}

func TestParseDeduplicates(t *testing.T) {
	assert.Len(t, Parse("AA, AA, QQ+"), 18)
	assert.Len(t, Parse("AKs, AK"), 16)
	assert.Len(t, Parse("AhKh, AKs, KhAh"), 4)
	assert.Len(t, Parse("KAs"), 4)
}

func TestParseSkipsMalformedTokens(t *testing.T) {
	assert.Len(t, Parse("AA, XYZ, K, AAs, 99-AKs, AKs-A9o, 1h2h, AhAh"), 6)
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("garbage"))
}

func TestParseComboShapes(t *testing.T) {
	for _, c := range Parse("AKs") {
		assert.Equal(t, c[0].Suit(), c[1].Suit())
		assert.Equal(t, card.Rank_Ace, c[0].Rank())
		assert.Equal(t, card.Rank_King, c[1].Rank())
	}

	for _, c := range Parse("AKo") {
		assert.NotEqual(t, c[0].Suit(), c[1].Suit())
	}

	for _, c := range Parse("QQ+") {
		assert.Equal(t, c[0].Rank(), c[1].Rank())
		assert.GreaterOrEqual(t, c[0].Rank(), card.Rank_Queen)
	}

	kickers := make(map[int]bool)
	for _, c := range Parse("AKs-A9s") {
		kickers[c[1].Rank()] = true
	}
	assert.Equal(t, map[int]bool{9: true, 10: true, 11: true, 12: true, 13: true}, kickers)
}

func TestFilter(t *testing.T) {
	combos := Parse("AA")
	dead := card.Mask(card.MustParse("Ah"))
	live := Filter(combos, dead)
	assert.Len(t, live, 3)
	for _, c := range live {
		assert.Zero(t, c.Mask()&dead)
	}
}
