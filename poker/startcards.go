package poker

// NoStartCards is the grid value for games without a two card start.
const NoStartCards = 170

// StartCards returns the 13x13 starting hand grid index (1..169) of two hole
// cards: 13*x + y + 1 where x and y are rank ordinals. Pairs sit on the
// diagonal, suited hands put the higher rank in x, offsuit hands put it in y.
// Unknown cards give 0.
func StartCards(card1, card2 string) int {
	c1, err1 := ParseCard(card1)
	c2, err2 := ParseCard(card2)
	if err1 != nil || err2 != nil {
		return 0
	}
	hi, lo := int(c1.Rank()), int(c2.Rank())
	if lo > hi {
		hi, lo = lo, hi
	}
	switch {
	case hi == lo:
		return 13*hi + hi + 1
	case c1.Suit() == c2.Suit():
		return 13*hi + lo + 1
	default:
		return 13*lo + hi + 1
	}
}

// StartCardsLabel renders a grid index back to its shorthand, e.g. "AKs".
func StartCardsLabel(idx int) string {
	if idx < 1 || idx > 169 {
		return ""
	}
	x, y := (idx-1)/13, (idx-1)%13
	switch {
	case x == y:
		return string([]byte{rankChars[x], rankChars[y]})
	case x > y:
		return string([]byte{rankChars[x], rankChars[y], 's'})
	default:
		return string([]byte{rankChars[y], rankChars[x], 'o'})
	}
}
