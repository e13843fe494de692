package holdem

import (
	"sort"
)

type potLevel struct {
	pot           *Pot
	contributions map[string]int64
}

/*
	CalculateSidePots 依 totalBet 切分主池與邊池
	  - 以所有下注者 (含已棄牌) 的 totalBet 做遞增的層級
	  - 每層由 totalBet 達到該層的未棄牌玩家共享
	  - 相鄰且可贏玩家相同的層級合併
	Example:
		- Given: totalBet 100 / 300 / 500, 無人棄牌
		- Output: 300 (3 人), 400 (2 人), 200 (1 人)
*/
func CalculateSidePots(players []*Player) []*Pot {
	levels := buildPotLevels(players)

	pots := make([]*Pot, 0, len(levels))
	for _, level := range levels {
		pots = append(pots, level.pot)
	}
	return pots
}

func buildPotLevels(players []*Player) []*potLevel {
	amounts := make([]int64, 0, len(players))
	seen := make(map[int64]bool)
	for _, p := range players {
		if p.TotalBet > 0 && !seen[p.TotalBet] {
			seen[p.TotalBet] = true
			amounts = append(amounts, p.TotalBet)
		}
	}
	sort.Slice(amounts, func(i, j int) bool {
		return amounts[i] < amounts[j]
	})

	levels := make([]*potLevel, 0, len(amounts))
	var prev int64
	for _, amount := range amounts {
		level := &potLevel{
			pot: &Pot{
				EligiblePlayers: make([]string, 0),
			},
			contributions: make(map[string]int64),
		}

		for _, p := range players {
			contribution := min64(p.TotalBet, amount) - min64(p.TotalBet, prev)
			if contribution > 0 {
				level.contributions[p.ID] = contribution
				level.pot.Amount += contribution
			}

			if !p.Folded && p.TotalBet >= amount {
				level.pot.EligiblePlayers = append(level.pot.EligiblePlayers, p.ID)
			}
		}
		prev = amount

		if n := len(levels); n > 0 && sameMembers(levels[n-1].pot.EligiblePlayers, level.pot.EligiblePlayers) {
			levels[n-1].merge(level)
			continue
		}
		levels = append(levels, level)
	}

	return levels
}

func (l *potLevel) merge(other *potLevel) {
	l.pot.Amount += other.pot.Amount
	for playerID, contribution := range other.contributions {
		l.contributions[playerID] += contribution
	}
}

func sameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func clonePots(pots []*Pot) []*Pot {
	cloned := make([]*Pot, 0, len(pots))
	for _, pot := range pots {
		cloned = append(cloned, &Pot{
			Amount:          pot.Amount,
			EligiblePlayers: append([]string{}, pot.EligiblePlayers...),
		})
	}
	return cloned
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
