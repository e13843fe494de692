package classifier

import (
	"math/bits"

	"github.com/weedbox/holdem/card"
)

type Draw string

const (
	Draw_None      Draw = ""
	Draw_FlushDraw Draw = "Flush Draw"
	Draw_OESD      Draw = "OESD"
	Draw_Gutshot   Draw = "Gutshot"
)

// DetectDraw reports the strongest draw in cards: flush draw, then
// open-ended straight draw, then gutshot.
func DetectDraw(cards []card.Card) Draw {
	var suitCounts [4]int
	for _, c := range cards {
		suitCounts[c.Suit()]++
	}
	for _, n := range suitCounts {
		if n == 4 {
			return Draw_FlushDraw
		}
	}

	mask := straightMask(cards)

	// a made straight is not a draw
	for s := 0; s <= 9; s++ {
		if window := uint16(0x1F) << uint(s); mask&window == window {
			return Draw_None
		}
	}

	// four in a row with a live card on both ends
	for s := 1; s <= 9; s++ {
		if window := uint16(0x0F) << uint(s); mask&window == window {
			return Draw_OESD
		}
	}

	// A234, JQKA and every inside gap leave exactly one rank missing from a five-rank window
	for s := 0; s <= 9; s++ {
		window := uint16(0x1F) << uint(s)
		if bits.OnesCount16(mask&window) == 4 {
			return Draw_Gutshot
		}
	}

	return Draw_None
}

// straightMask sets bit 0 for a low ace and bits 1..13 for deuce..ace.
func straightMask(cards []card.Card) uint16 {
	var mask uint16
	for _, c := range cards {
		mask |= 1 << uint(c.Rank()-1)
		if c.Rank() == card.Rank_Ace {
			mask |= 1
		}
	}
	return mask
}
