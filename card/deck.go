package card

import (
	"encoding/json"
	"errors"
	"math/rand"
)

var (
	ErrNotEnoughCards = errors.New("deck: not enough cards")
)

type Deck struct {
	cards []Card
}

func NewDeck() *Deck {
	cards := make([]Card, 52)
	for i := range cards {
		cards[i] = Card(i)
	}
	return &Deck{cards: cards}
}

func NewDeckFromCards(cards []Card) *Deck {
	return &Deck{cards: append([]Card{}, cards...)}
}

// Shuffle runs Fisher–Yates with the given source.
func (d *Deck) Shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes n cards from the front of the deck.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, ErrNotEnoughCards
	}

	dealt := append([]Card{}, d.cards[:n]...)
	d.cards = d.cards[n:]
	return dealt, nil
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}

func (d *Deck) Cards() []Card {
	return append([]Card{}, d.cards...)
}

func (d *Deck) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.cards)
}

func (d *Deck) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &d.cards)
}
