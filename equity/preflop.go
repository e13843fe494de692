package equity

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/weedbox/holdem/card"
	"github.com/weedbox/holdem/handrange"
	"golang.org/x/sync/errgroup"
)

var (
	ErrTableSize = errors.New("equity: preflop table has wrong size")
)

const (
	// HandCount is the number of distinct two-card starting hands.
	HandCount = 1326

	// TableSize is the upper triangle of HandCount x HandCount, diagonal included.
	TableSize = HandCount * (HandCount + 1) / 2
)

var handsByID [HandCount]handrange.Combo

func init() {
	for hi := 1; hi < 52; hi++ {
		for lo := 0; lo < hi; lo++ {
			a, b := card.FromIndex(hi), card.FromIndex(lo)
			handsByID[HandID(a, b)] = handrange.Combo{a, b}
		}
	}
}

// HandID maps two distinct cards to a dense id in [0, 1326).
func HandID(a, b card.Card) int {
	hi, lo := a.Index(), b.Index()
	if lo > hi {
		hi, lo = lo, hi
	}
	return hi*(hi-1)/2 + lo
}

func HandByID(id int) handrange.Combo {
	return handsByID[id]
}

func triangleIndex(i, j int) int {
	return i*HandCount - i*(i-1)/2 + (j - i)
}

// PreflopTable holds heads-up all-in equities for every pair of fixed
// hands. Each cell is the lower-id hand's equity in percent times 100.
// Zero marks a cell that was not generated or whose hands share a card.
type PreflopTable struct {
	cells []uint16
}

func NewPreflopTable() *PreflopTable {
	return &PreflopTable{
		cells: make([]uint16, TableSize),
	}
}

func LoadPreflopTable(r io.Reader) (*PreflopTable, error) {
	t := NewPreflopTable()
	if err := binary.Read(r, binary.LittleEndian, t.cells); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableSize, err)
	}
	return t, nil
}

func (t *PreflopTable) Save(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, t.cells)
}

// Lookup returns h1's equity against h2 in percent.
func (t *PreflopTable) Lookup(h1, h2 handrange.Combo) (float64, bool) {
	if h1.Mask()&h2.Mask() != 0 {
		return 0, false
	}

	i, j := HandID(h1[0], h1[1]), HandID(h2[0], h2[1])
	flipped := false
	if i > j {
		i, j = j, i
		flipped = true
	}

	v := t.cells[triangleIndex(i, j)]
	if v == 0 {
		return 0, false
	}

	eq := float64(v) / 100
	if flipped {
		eq = 100 - eq
	}
	return eq, true
}

func (t *PreflopTable) Set(h1, h2 handrange.Combo, equity float64) {
	i, j := HandID(h1[0], h1[1]), HandID(h2[0], h2[1])
	if i > j {
		i, j = j, i
		equity = 100 - equity
	}
	t.cells[triangleIndex(i, j)] = uint16(math.Round(equity * 100))
}

func (c *Calculator) headsUpPreflop(s *spot) Result {
	h1, h2 := s.players[0].hand, s.players[1].hand

	eq, ok := 0.0, false
	if c.table != nil {
		eq, ok = c.table.Lookup(h1, h2)
	}
	if !ok {
		eq = exactHeadsUp(h1, h2)
	}

	return Result{
		Equities:   []float64{eq, 100 - eq},
		Iterations: PreflopBoards,
	}
}

// GeneratePreflopTable fills every cell by exact enumeration. Matchups that
// differ only by a suit relabelling share one computation.
func GeneratePreflopTable(ctx context.Context, workers int, logger zerolog.Logger) (*PreflopTable, error) {
	classes := matchupClasses()
	table := NewPreflopTable()

	logger.Info().Int("classes", len(classes)).Int("workers", workers).Msg("generating preflop table")

	var done int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, members := range classes {
		members := members
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rep := members[0]
			eq := exactHeadsUp(handsByID[rep[0]], handsByID[rep[1]])
			v := uint16(math.Round(eq * 100))
			for _, m := range members {
				table.cells[triangleIndex(m[0], m[1])] = v
			}

			if n := atomic.AddInt64(&done, 1); n%1000 == 0 {
				logger.Info().Int64("done", n).Int("total", len(classes)).Msg("preflop table progress")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return table, nil
}

var suitPerms = permutations([]card.Suit{card.Suit_Hearts, card.Suit_Diamonds, card.Suit_Clubs, card.Suit_Spades})

// matchupClasses groups ordered (i<j) disjoint hand-id pairs by their
// canonical form under the 24 suit permutations.
func matchupClasses() map[uint32][][2]int {
	classes := make(map[uint32][][2]int)
	for i := 0; i < HandCount; i++ {
		for j := i + 1; j < HandCount; j++ {
			h1, h2 := handsByID[i], handsByID[j]
			if h1.Mask()&h2.Mask() != 0 {
				continue
			}
			key := canonicalMatchup(h1, h2)
			classes[key] = append(classes[key], [2]int{i, j})
		}
	}
	return classes
}

func canonicalMatchup(h1, h2 handrange.Combo) uint32 {
	best := uint32(math.MaxUint32)
	for _, perm := range suitPerms {
		a := HandID(relabel(h1[0], perm), relabel(h1[1], perm))
		b := HandID(relabel(h2[0], perm), relabel(h2[1], perm))
		if key := uint32(a)<<16 | uint32(b); key < best {
			best = key
		}
	}
	return best
}

func relabel(c card.Card, perm []card.Suit) card.Card {
	out, _ := card.New(c.Rank(), perm[c.Suit()])
	return out
}

func permutations(items []card.Suit) [][]card.Suit {
	if len(items) <= 1 {
		return [][]card.Suit{append([]card.Suit{}, items...)}
	}

	perms := make([][]card.Suit, 0)
	for i := range items {
		rest := make([]card.Suit, 0, len(items)-1)
		rest = append(rest, items[:i]...)
		rest = append(rest, items[i+1:]...)
		for _, p := range permutations(rest) {
			perms = append(perms, append([]card.Suit{items[i]}, p...))
		}
	}
	return perms
}
