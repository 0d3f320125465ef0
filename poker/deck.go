package poker

import (
	"math/rand"
)

// Deck is the stub left after known cards have been removed, dealt in a
// shuffled order drawn from its own RNG.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// NewDeckWithout creates a shuffled deck holding every card not in used.
func NewDeckWithout(rng *rand.Rand, used Hand) *Deck {
	d := &Deck{rng: rng, cards: make([]Card, 0, 52-used.CountCards())}
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			if c := NewCard(rank, suit); !used.HasCard(c) {
				d.cards = append(d.cards, c)
			}
		}
	}
	d.Shuffle()
	return d
}

// Shuffle restores all cards and shuffles them using Fisher-Yates.
func (d *Deck) Shuffle() {
	d.next = 0
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal deals n cards from the deck, or nil when too few remain.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards
}

// Len returns the number of undealt cards.
func (d *Deck) Len() int {
	return len(d.cards) - d.next
}
