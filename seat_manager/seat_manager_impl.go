package seat_manager

import (
	"sort"
)

type seatManager struct {
	maxSeats int
	seats    map[int]string // key: seat_id (1..maxSeats), value: player_id
}

func (sm *seatManager) MaxSeats() int {
	return sm.maxSeats
}

func (sm *seatManager) Seats() []int {
	seatIDs := make([]int, 0, len(sm.seats))
	for seatID := range sm.seats {
		seatIDs = append(seatIDs, seatID)
	}
	sort.Ints(seatIDs)
	return seatIDs
}

func (sm *seatManager) PlayerAt(seatID int) (string, bool) {
	playerID, ok := sm.seats[seatID]
	return playerID, ok
}

func (sm *seatManager) EmptySeats() []int {
	empty := make([]int, 0, sm.maxSeats)
	for seatID := 1; seatID <= sm.maxSeats; seatID++ {
		if _, taken := sm.seats[seatID]; !taken {
			empty = append(empty, seatID)
		}
	}
	return empty
}

func (sm *seatManager) AssignSeats(playerSeatIDs map[string]int) error {
	if len(sm.EmptySeats()) < len(playerSeatIDs) {
		return ErrNotEnoughSeats
	}

	seated := make(map[string]bool, len(sm.seats))
	for _, playerID := range sm.seats {
		seated[playerID] = true
	}

	// check duplicate players & seats
	requested := make(map[int]bool)
	for playerID, seatID := range playerSeatIDs {
		if seated[playerID] {
			return ErrPlayerIsAlreadyIn
		}
		if seatID < 1 || seatID > sm.maxSeats {
			return ErrUnavailableSeat
		}
		if _, taken := sm.seats[seatID]; taken {
			return ErrSeatAlreadyIsTaken
		}
		if requested[seatID] {
			return ErrDuplicateSeats
		}
		requested[seatID] = true
	}

	for playerID, seatID := range playerSeatIDs {
		sm.seats[seatID] = playerID
	}
	return nil
}

func (sm *seatManager) RandomAssignSeats(playerIDs []string, intn func(n int) int) (map[string]int, error) {
	empty := sm.EmptySeats()
	if len(empty) < len(playerIDs) {
		return nil, ErrNotEnoughSeats
	}

	unique := make(map[string]bool, len(playerIDs))
	for _, playerID := range playerIDs {
		if unique[playerID] {
			return nil, ErrDuplicatePlayers
		}
		unique[playerID] = true
	}

	assigned := make(map[string]int, len(playerIDs))
	for _, playerID := range playerIDs {
		idx := intn(len(empty))
		assigned[playerID] = empty[idx]
		empty = append(empty[:idx], empty[idx+1:]...)
	}

	if err := sm.AssignSeats(assigned); err != nil {
		return nil, err
	}
	return assigned, nil
}

// NextSeat walks clockwise from the seat after from and returns the first
// occupied seat accepted by filter, or UnsetSeatID.
func (sm *seatManager) NextSeat(from int, filter func(seatID int) bool) int {
	for step := 1; step <= sm.maxSeats; step++ {
		seatID := (from-1+step)%sm.maxSeats + 1
		if _, taken := sm.seats[seatID]; !taken {
			continue
		}
		if filter == nil || filter(seatID) {
			return seatID
		}
	}
	return UnsetSeatID
}

// SeatsFrom lists occupied seats clockwise starting at start itself.
func (sm *seatManager) SeatsFrom(start int, filter func(seatID int) bool) []int {
	seatIDs := make([]int, 0, len(sm.seats))
	for step := 0; step < sm.maxSeats; step++ {
		seatID := (start-1+step)%sm.maxSeats + 1
		if _, taken := sm.seats[seatID]; !taken {
			continue
		}
		if filter == nil || filter(seatID) {
			seatIDs = append(seatIDs, seatID)
		}
	}
	return seatIDs
}
