package equity

import (
	ph "github.com/paulhankin/poker"

	"github.com/lox/handstats/poker"
)

var describeSuits = map[uint8]ph.Suit{
	poker.Clubs:    ph.Club,
	poker.Diamonds: ph.Diamond,
	poker.Hearts:   ph.Heart,
	poker.Spades:   ph.Spade,
}

// describe renders a five card high hand as text, falling back to the
// category name.
func describe(five []poker.Card, t poker.HandType) string {
	if len(five) != 5 {
		return t.String()
	}
	cards := make([]ph.Card, 0, 5)
	for _, c := range five {
		rank := ph.Rank(c.Rank() + 2)
		if c.Rank() == poker.Ace {
			rank = ph.Ace
		}
		card, err := ph.MakeCard(describeSuits[c.Suit()], rank)
		if err != nil {
			return t.String()
		}
		cards = append(cards, card)
	}
	desc, err := ph.Describe(cards)
	if err != nil {
		return t.String()
	}
	return desc
}
