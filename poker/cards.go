package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single playing card stored as one bit of a 52-bit set.
// Bit index is suit*13 + rank.
type Card uint64

// Hand is an unordered set of cards.
type Hand uint64

// Ranks, deuce through ace.
const (
	Two uint8 = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suits.
const (
	Clubs uint8 = iota
	Diamonds
	Hearts
	Spades
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// NewCard builds a card from a rank (Two..Ace) and suit (Clubs..Spades).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint(suit)*13 + uint(rank))
}

func (c Card) index() int {
	return bits.TrailingZeros64(uint64(c))
}

// Rank returns the rank, 0 (deuce) through 12 (ace).
func (c Card) Rank() uint8 {
	return uint8(c.index() % 13)
}

// Suit returns the suit, 0 (clubs) through 3 (spades).
func (c Card) Suit() uint8 {
	return uint8(c.index() / 13)
}

func (c Card) String() string {
	if c == 0 || bits.OnesCount64(uint64(c)) != 1 || c.index() >= 52 {
		return "??"
	}
	return string([]byte{rankChars[c.Rank()], suitChars[c.Suit()]})
}

// ParseCard parses a two character token such as "As" or "Tc".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card %q: want rank and suit", s)
	}
	rank := strings.IndexByte(rankChars, upper(s[0]))
	if rank < 0 {
		return 0, fmt.Errorf("invalid card %q: unknown rank %q", s, s[0])
	}
	suit := strings.IndexByte(suitChars, lower(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("invalid card %q: unknown suit %q", s, s[1])
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// ParseCards parses a list of card tokens.
func ParseCards(tokens []string) ([]Card, error) {
	cards := make([]Card, 0, len(tokens))
	for _, tok := range tokens {
		c, err := ParseCard(tok)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// NewHand builds a hand from cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard reports whether the card is in the hand.
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns the 13-bit rank mask for one suit.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16(uint64(h)>>(uint(suit)*13)) & 0x1FFF
}

// Cards lists the hand's cards in bit order.
func (h Hand) Cards() []Card {
	out := make([]Card, 0, h.CountCards())
	for v := uint64(h); v != 0; v &= v - 1 {
		out = append(out, Card(v&-v))
	}
	return out
}

// Placeholder is the token used for an unknown or undealt card.
const Placeholder = "0x"

// encoded suit order: hearts, diamonds, clubs, spades.
var encodeSuitOrder = [4]uint8{Hearts, Diamonds, Clubs, Spades}

// EncodeCard maps a card token to the persisted 1..52 card id
// (2h..Ah = 1..13, then diamonds, clubs, spades). Placeholders and
// unparseable tokens encode as 0.
func EncodeCard(token string) int {
	c, err := ParseCard(token)
	if err != nil {
		return 0
	}
	for i, s := range encodeSuitOrder {
		if s == c.Suit() {
			return i*13 + int(c.Rank()) + 1
		}
	}
	return 0
}

// DecodeCard is the inverse of EncodeCard.
func DecodeCard(id int) string {
	if id < 1 || id > 52 {
		return Placeholder
	}
	suit := encodeSuitOrder[(id-1)/13]
	return NewCard(uint8((id-1)%13), suit).String()
}

// IsKnown reports whether a token names a real card.
func IsKnown(token string) bool {
	_, err := ParseCard(token)
	return err == nil
}
