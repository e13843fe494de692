package seat_manager

import (
	"errors"
)

var (
	ErrNotEnoughSeats     = errors.New("seat manager: no enough seats")
	ErrPlayerIsAlreadyIn  = errors.New("seat manager: player is already seated")
	ErrUnavailableSeat    = errors.New("seat manager: seat is not available")
	ErrDuplicatePlayers   = errors.New("seat manager: duplicate players detected")
	ErrDuplicateSeats     = errors.New("seat manager: duplicate seats detected")
	ErrSeatAlreadyIsTaken = errors.New("seat manager: seat is already taken")
)

const (
	UnsetSeatID = -1
)

// SeatManager answers seat questions over a snapshot of occupancy. Seats
// are numbered 1..maxSeats and walked clockwise in increasing order.
type SeatManager interface {
	MaxSeats() int
	Seats() []int
	PlayerAt(seatID int) (string, bool)
	EmptySeats() []int
	AssignSeats(playerSeatIDs map[string]int) error
	RandomAssignSeats(playerIDs []string, intn func(n int) int) (map[string]int, error)
	NextSeat(from int, filter func(seatID int) bool) int
	SeatsFrom(start int, filter func(seatID int) bool) []int
}

// NewSeatManager takes occupied seats keyed by seat id with the player id as value.
func NewSeatManager(maxSeats int, occupied map[int]string) SeatManager {
	seats := make(map[int]string, len(occupied))
	for seatID, playerID := range occupied {
		seats[seatID] = playerID
	}

	return &seatManager{
		maxSeats: maxSeats,
		seats:    seats,
	}
}
