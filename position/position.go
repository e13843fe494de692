package position

import (
	"errors"
	"sort"
)

var (
	ErrNotEnoughSeats  = errors.New("position: at least 2 active seats required")
	ErrTooManySeats    = errors.New("position: at most 10 active seats supported")
	ErrButtonNotActive = errors.New("position: button seat is not active")
)

const (
	Position_BTN  = "BTN"
	Position_SB   = "SB"
	Position_BB   = "BB"
	Position_UTG  = "UTG"
	Position_UTG1 = "UTG+1"
	Position_UTG2 = "UTG+2"
	Position_MP   = "MP"
	Position_MP1  = "MP+1"
	Position_LJ   = "LJ"
	Position_HJ   = "HJ"
	Position_CO   = "CO"
)

var ringOrder = []string{
	Position_BTN,
	Position_SB,
	Position_BB,
	Position_UTG,
	Position_UTG1,
	Position_UTG2,
	Position_MP,
	Position_MP1,
	Position_LJ,
	Position_HJ,
}

/*
	Resolve 依照按鈕位置計算每個座位的位置名稱
	  - @param activeSeats 本手參與的座位
	  - @param buttonSeat 按鈕所在座位
	  - @return seat -> position label
*/
func Resolve(activeSeats []int, buttonSeat int) (map[int]string, error) {
	seats := uniqueSorted(activeSeats)
	if len(seats) < 2 {
		return nil, ErrNotEnoughSeats
	}
	if len(seats) > len(ringOrder) {
		return nil, ErrTooManySeats
	}

	buttonIdx := -1
	for idx, seat := range seats {
		if seat == buttonSeat {
			buttonIdx = idx
			break
		}
	}
	if buttonIdx == -1 {
		return nil, ErrButtonNotActive
	}

	ordered := rotateIntArray(seats, buttonIdx)
	labels := newPositions(len(ordered))

	positions := make(map[int]string, len(ordered))
	for idx, seat := range ordered {
		positions[seat] = labels[idx]
	}
	return positions, nil
}

// newPositions lists labels clockwise from the button.
func newPositions(playerCount int) []string {
	if playerCount == 2 {
		return []string{Position_SB, Position_BB}
	}

	labels := append([]string{}, ringOrder[:playerCount]...)
	if playerCount >= 4 {
		// the seat before the button is always the cutoff
		labels[playerCount-1] = Position_CO
	}
	return labels
}

/*
	rotateIntArray 以 startIndex 當作第一個元素做 Rotations
	Example:
		- Given: []int{0, 1, 2, 3, 4}, startIndex = 2
		- Output: []int{2, 3, 4, 0, 1}
*/
func rotateIntArray(source []int, startIndex int) []int {
	rotated := make([]int, 0, len(source))
	rotated = append(rotated, source[startIndex:]...)
	return append(rotated, source[:startIndex]...)
}

func uniqueSorted(seats []int) []int {
	seen := make(map[int]bool, len(seats))
	unique := make([]int, 0, len(seats))
	for _, seat := range seats {
		if seen[seat] {
			continue
		}
		seen[seat] = true
		unique = append(unique, seat)
	}
	sort.Ints(unique)
	return unique
}
