package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveHeadsUp(t *testing.T) {
	positions, err := Resolve([]int{3, 7}, 7)
	assert.Nil(t, err)
	assert.Equal(t, map[int]string{7: Position_SB, 3: Position_BB}, positions)
}

func TestResolveRing(t *testing.T) {
	positions, err := Resolve([]int{1, 2, 4, 6, 8, 9}, 4)
	assert.Nil(t, err)
	assert.Equal(t, map[int]string{
		4: Position_BTN,
		6: Position_SB,
		8: Position_BB,
		9: Position_UTG,
		1: Position_UTG1,
		2: Position_CO,
	}, positions)

	positions, err = Resolve([]int{1, 2, 3}, 3)
	assert.Nil(t, err)
	assert.Equal(t, map[int]string{3: Position_BTN, 1: Position_SB, 2: Position_BB}, positions)
}

func TestResolveFullRing(t *testing.T) {
	seats := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	positions, err := Resolve(seats, 1)
	assert.Nil(t, err)
	assert.Equal(t, Position_BTN, positions[1])
	assert.Equal(t, Position_LJ, positions[9])
	assert.Equal(t, Position_CO, positions[10])
	for _, label := range positions {
		assert.NotEqual(t, Position_HJ, label)
	}

	positions, err = Resolve(seats[:9], 5)
	assert.Nil(t, err)
	assert.Equal(t, Position_CO, positions[4])
	assert.Equal(t, Position_UTG, positions[8])
}

func TestResolveErrors(t *testing.T) {
	_, err := Resolve([]int{1}, 1)
	assert.ErrorIs(t, err, ErrNotEnoughSeats)

	_, err = Resolve([]int{1, 1}, 1)
	assert.ErrorIs(t, err, ErrNotEnoughSeats)

	_, err = Resolve([]int{1, 2, 3}, 5)
	assert.ErrorIs(t, err, ErrButtonNotActive)

	_, err = Resolve([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, 1)
	assert.ErrorIs(t, err, ErrTooManySeats)
}

func TestRotateIntArray(t *testing.T) {
	assert.Equal(t, []int{2, 3, 4, 0, 1}, rotateIntArray([]int{0, 1, 2, 3, 4}, 2))
	assert.Equal(t, []int{0, 1}, rotateIntArray([]int{0, 1}, 0))
}
