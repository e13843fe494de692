package card

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCard   = errors.New("card: invalid card")
	ErrDuplicateCard = errors.New("card: duplicate card")
)

// Hidden replaces hole cards a viewer is not allowed to see.
const Hidden = "HIDDEN"

const (
	RankChars = "23456789TJQKA"
	SuitChars = "hdcs"
)

type Suit uint8

const (
	Suit_Hearts Suit = iota
	Suit_Diamonds
	Suit_Clubs
	Suit_Spades
)

const (
	Rank_Two   = 2
	Rank_Five  = 5
	Rank_Ten   = 10
	Rank_Jack  = 11
	Rank_Queen = 12
	Rank_King  = 13
	Rank_Ace   = 14
)

// Card packs rank and suit into a dense index: (rank-2)*4 + suit.
type Card uint8

func New(rank int, suit Suit) (Card, error) {
	if rank < Rank_Two || rank > Rank_Ace || suit > Suit_Spades {
		return 0, fmt.Errorf("%w: rank=%d suit=%d", ErrInvalidCard, rank, suit)
	}
	return Card((rank-2)*4 + int(suit)), nil
}

func FromIndex(idx int) Card {
	return Card(idx)
}

func Parse(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	r := strings.IndexByte(RankChars, s[0])
	if r < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	su := strings.IndexByte(SuitChars, s[1])
	if su < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	return Card(r*4 + su), nil
}

func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseMany parses every string and rejects repeated cards.
func ParseMany(strs []string) ([]Card, error) {
	cards := make([]Card, 0, len(strs))
	var seen uint64
	for _, s := range strs {
		c, err := Parse(s)
		if err != nil {
			return nil, err
		}

		bit := uint64(1) << c.Index()
		if seen&bit != 0 {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, s)
		}
		seen |= bit

		cards = append(cards, c)
	}
	return cards, nil
}

func (c Card) Rank() int {
	return int(c)/4 + 2
}

func (c Card) Suit() Suit {
	return Suit(c % 4)
}

func (c Card) Index() int {
	return int(c)
}

func (c Card) String() string {
	if int(c) >= 52 {
		return "??"
	}
	return string([]byte{RankChars[c.Rank()-2], SuitChars[c.Suit()]})
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func Strings(cards []Card) []string {
	strs := make([]string, len(cards))
	for i, c := range cards {
		strs[i] = c.String()
	}
	return strs
}

// Mask returns a bitset with one bit per card index.
func Mask(cards ...Card) uint64 {
	var m uint64
	for _, c := range cards {
		m |= uint64(1) << c.Index()
	}
	return m
}
