package poker

import "math"

// LowRank orders ace-to-five low hands. Lower values are better.
// Straights and flushes do not count against a low.
type LowRank uint32

// NoLow is returned when no qualifying low exists.
const NoLow = LowRank(math.MaxUint32)

// lowValue maps a rank to its ace-to-five value, ace low.
func lowValue(rank uint8) uint32 {
	if rank == Ace {
		return 1
	}
	return uint32(rank) + 2
}

// rankFive scores exactly five cards as an ace-to-five low.
// The top nibble is the pairing class, the rest are the card values
// ordered by multiplicity and then by value, highest first.
func rankFive(cards [5]Card) (LowRank, uint32) {
	var counts [14]uint8
	for _, c := range cards {
		counts[lowValue(c.Rank())]++
	}
	var class uint32
	pairs := 0
	for _, n := range counts {
		switch n {
		case 2:
			pairs++
		case 3:
			class = 3
		case 4:
			class = 5
		}
	}
	switch {
	case class == 3 && pairs == 1:
		class = 4
	case class == 0:
		class = uint32(pairs)
	}

	v := class
	for mult := uint8(4); mult >= 1; mult-- {
		for r := 13; r >= 1; r-- {
			if counts[r] == mult {
				for i := uint8(0); i < mult; i++ {
					v = v<<4 | uint32(r)
				}
			}
		}
	}
	high := uint32(0)
	for r := 13; r >= 1; r-- {
		if counts[r] > 0 {
			high = uint32(r)
			break
		}
	}
	return LowRank(v), high
}

// EvaluateLow returns the best ace-to-five low among all five card subsets.
func EvaluateLow(h Hand) LowRank {
	best := NoLow
	eachFive(h.Cards(), func(five [5]Card) {
		if r, _ := rankFive(five); r < best {
			best = r
		}
	})
	return best
}

// EvaluateLow8 returns the best unpaired eight-or-better low, or NoLow.
func EvaluateLow8(h Hand) LowRank {
	best := NoLow
	eachFive(h.Cards(), func(five [5]Card) {
		if r, high := rankFive(five); r>>20 == 0 && high <= 8 && r < best {
			best = r
		}
	})
	return best
}

// eachFive calls fn with every five card combination of cards.
func eachFive(cards []Card, fn func([5]Card)) {
	n := len(cards)
	if n < 5 {
		return
	}
	var five [5]Card
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						five = [5]Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						fn(five)
					}
				}
			}
		}
	}
}
