package classifier

import (
	"sort"

	"github.com/weedbox/holdem/card"
)

type PairCategory string

const (
	PairCategory_None           PairCategory = ""
	PairCategory_Overpair       PairCategory = "Overpair"
	PairCategory_PocketPairGap1 PairCategory = "Pocket Pair Gap 1"
	PairCategory_PocketPairGap2 PairCategory = "Pocket Pair Gap 2"
	PairCategory_PocketPairGap3 PairCategory = "Pocket Pair Gap 3"
	PairCategory_PocketPairGap4 PairCategory = "Pocket Pair Gap 4"
	PairCategory_Underpair      PairCategory = "Underpair"
	PairCategory_TopPair        PairCategory = "Top Pair"
	PairCategory_MiddlePair     PairCategory = "Middle Pair"
	PairCategory_BottomPair     PairCategory = "Bottom Pair"
	PairCategory_BoardPair      PairCategory = "Board Pair"
)

var pocketGaps = []PairCategory{
	PairCategory_PocketPairGap1,
	PairCategory_PocketPairGap2,
	PairCategory_PocketPairGap3,
	PairCategory_PocketPairGap4,
}

/*
	CategorizePair 判斷一對的種類
	  - hole + board 必須剛好組成一對
	  - 口袋對子: 以比該對子大的公牌點數個數決定 Gap 等級
*/
func CategorizePair(hole, board []card.Card) PairCategory {
	if len(hole) != 2 {
		return PairCategory_None
	}

	counts := make(map[int]int)
	for _, c := range hole {
		counts[c.Rank()]++
	}
	for _, c := range board {
		counts[c.Rank()]++
	}

	pairRank := 0
	for r, n := range counts {
		if n != 2 {
			continue
		}
		if pairRank != 0 {
			// more than one pair
			return PairCategory_None
		}
		pairRank = r
	}
	if pairRank == 0 {
		return PairCategory_None
	}

	boardRanks := distinctRanks(board)

	if hole[0].Rank() == pairRank && hole[1].Rank() == pairRank {
		above := 0
		for _, r := range boardRanks {
			if r > pairRank {
				above++
			}
		}

		switch {
		case above == 0:
			return PairCategory_Overpair
		case above == len(boardRanks):
			return PairCategory_Underpair
		}
		return pocketGaps[above-1]
	}

	if hole[0].Rank() != pairRank && hole[1].Rank() != pairRank {
		return PairCategory_BoardPair
	}

	for idx, r := range boardRanks {
		if r != pairRank {
			continue
		}
		switch {
		case idx == 0:
			return PairCategory_TopPair
		case idx == len(boardRanks)-1:
			return PairCategory_BottomPair
		}
		return PairCategory_MiddlePair
	}

	return PairCategory_None
}

// distinctRanks returns board ranks high to low without repeats.
func distinctRanks(cards []card.Card) []int {
	seen := make(map[int]bool)
	ranks := make([]int, 0, len(cards))
	for _, c := range cards {
		if seen[c.Rank()] {
			continue
		}
		seen[c.Rank()] = true
		ranks = append(ranks, c.Rank())
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
	return ranks
}
