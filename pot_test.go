package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func potPlayer(id string, totalBet int64, folded bool) *Player {
	return &Player{
		ID:       id,
		TotalBet: totalBet,
		Folded:   folded,
	}
}

func TestCalculateSidePots(t *testing.T) {
	pots := CalculateSidePots([]*Player{
		potPlayer("a", 100, false),
		potPlayer("b", 300, false),
		potPlayer("c", 500, false),
	})

	assert.Equal(t, []*Pot{
		{Amount: 300, EligiblePlayers: []string{"a", "b", "c"}},
		{Amount: 400, EligiblePlayers: []string{"b", "c"}},
		{Amount: 200, EligiblePlayers: []string{"c"}},
	}, pots)
}

func TestCalculateSidePots_UnorderedLevels(t *testing.T) {
	pots := CalculateSidePots([]*Player{
		potPlayer("a", 300, false),
		potPlayer("b", 400, false),
		potPlayer("c", 200, false),
	})

	assert.Equal(t, []*Pot{
		{Amount: 600, EligiblePlayers: []string{"a", "b", "c"}},
		{Amount: 200, EligiblePlayers: []string{"a", "b"}},
		{Amount: 100, EligiblePlayers: []string{"b"}},
	}, pots)
}

func TestCalculateSidePots_FoldedChipsStayInPot(t *testing.T) {
	pots := CalculateSidePots([]*Player{
		potPlayer("a", 100, true),
		potPlayer("b", 300, false),
		potPlayer("c", 300, false),
	})

	// levels with the same contenders merge
	assert.Equal(t, []*Pot{
		{Amount: 700, EligiblePlayers: []string{"b", "c"}},
	}, pots)
}

func TestCalculateSidePots_NoBets(t *testing.T) {
	pots := CalculateSidePots([]*Player{
		potPlayer("a", 0, false),
		potPlayer("b", 0, false),
	})
	assert.Empty(t, pots)
}

func TestCalculateSidePots_ConservesChips(t *testing.T) {
	players := []*Player{
		potPlayer("a", 50, false),
		potPlayer("b", 275, true),
		potPlayer("c", 1000, false),
		potPlayer("d", 275, false),
		potPlayer("e", 10, true),
	}

	var committed int64
	for _, p := range players {
		committed += p.TotalBet
	}

	var pooled int64
	for _, pot := range CalculateSidePots(players) {
		pooled += pot.Amount
		assert.NotContains(t, pot.EligiblePlayers, "b")
		assert.NotContains(t, pot.EligiblePlayers, "e")
	}
	assert.Equal(t, committed, pooled)
}
