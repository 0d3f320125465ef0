package poker

import (
	"math/bits"
)

// HandRank represents the strength of a high hand. Lower values are stronger.
type HandRank uint16

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// distinct hands per category
const (
	straightFlushCount = 10
	fourOfAKindCount   = 13 * 12
	fullHouseCount     = 13 * 12
	flushCount         = 1277
	straightCount      = 10
	threeOfAKindCount  = 13 * 66
	twoPairCount       = 78 * 11
	onePairCount       = 13 * 220
	highCardCount      = 1277
)

const (
	baseStraightFlush = 0
	baseFourOfAKind   = baseStraightFlush + straightFlushCount
	baseFullHouse     = baseFourOfAKind + fourOfAKindCount
	baseFlush         = baseFullHouse + fullHouseCount
	baseStraight      = baseFlush + flushCount
	baseThreeOfAKind  = baseStraight + straightCount
	baseTwoPair       = baseThreeOfAKind + threeOfAKindCount
	baseOnePair       = baseTwoPair + twoPairCount
	baseHighCard      = baseOnePair + onePairCount

	// WorstRank is one past the weakest high card.
	WorstRank = HandRank(baseHighCard + highCardCount)
)

var typeBases = [...]struct {
	limit HandRank
	typ   HandType
}{
	{baseFourOfAKind, StraightFlush},
	{baseFullHouse, FourOfAKind},
	{baseFlush, FullHouse},
	{baseStraight, Flush},
	{baseThreeOfAKind, Straight},
	{baseTwoPair, ThreeOfAKind},
	{baseOnePair, TwoPair},
	{baseHighCard, Pair},
}

// Type returns the category of the hand.
func (hr HandRank) Type() HandType {
	for _, b := range typeBases {
		if hr < b.limit {
			return b.typ
		}
	}
	return HighCard
}

var handTypeNames = [...]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
}

func (t HandType) String() string {
	if int(t) < len(handTypeNames) {
		return handTypeNames[t]
	}
	return "Unknown"
}

// String returns a human-readable hand description.
func (hr HandRank) String() string {
	return hr.Type().String()
}

// Evaluate returns the best five card high hand contained in h.
// Hands with fewer than five cards rank as WorstRank.
func Evaluate(h Hand) HandRank {
	if h.CountCards() < 5 {
		return WorstRank
	}
	var suits [4]uint16
	var ranks uint16
	for s := uint8(0); s < 4; s++ {
		suits[s] = h.GetSuitMask(s)
		ranks |= suits[s]
	}
	return rankFromMasks(suits, ranks)
}

// Evaluate7Cards evaluates the best 5-card hand from exactly 7 cards.
func Evaluate7Cards(hand Hand) HandRank {
	if hand.CountCards() != 7 {
		return 0
	}
	return Evaluate(hand)
}

func rankFromMasks(suits [4]uint16, ranks uint16) HandRank {
	best := WorstRank
	for _, sm := range suits {
		if bits.OnesCount16(sm) < 5 {
			continue
		}
		if high, ok := straightHigh(sm); ok {
			return HandRank(baseStraightFlush + straightFlushCount - 1 - straightIndex(high))
		}
		idx := fiveRankIndex(topRanks(sm, 5))
		if r := HandRank(baseFlush + flushCount - 1 - idx); r < best {
			best = r
		}
	}
	if best != WorstRank {
		return best
	}

	s0, s1, s2, s3 := suits[0], suits[1], suits[2], suits[3]
	quads := s0 & s1 & s2 & s3
	trips := ((s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)) &^ quads
	pairs := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ (trips | quads)

	if q := topRank(quads); q >= 0 {
		kick := topRank(ranks &^ (1 << q))
		idx := uint16(q)*12 + uint16(ordinal(uint8(kick), uint8(q)))
		return HandRank(baseFourOfAKind + fourOfAKindCount - 1 - idx)
	}

	if t := topRank(trips); t >= 0 {
		if p := topRank((pairs | trips) &^ (1 << t)); p >= 0 {
			idx := uint16(t)*12 + uint16(ordinal(uint8(p), uint8(t)))
			return HandRank(baseFullHouse + fullHouseCount - 1 - idx)
		}
	}

	if high, ok := straightHigh(ranks); ok {
		return HandRank(baseStraight + straightCount - 1 - straightIndex(high))
	}

	if t := topRank(trips); t >= 0 {
		kicks := topRanks(ranks&^(1<<t), 2)
		idx := uint16(t)*66 + colex(ordinals(kicks, uint8(t)))
		return HandRank(baseThreeOfAKind + threeOfAKindCount - 1 - idx)
	}

	if hi := topRank(pairs); hi >= 0 {
		rest := pairs &^ (1 << hi)
		if lo := topRank(rest); lo >= 0 {
			kick := topRank(ranks &^ (1<<hi | 1<<lo))
			idx := colex([]uint8{uint8(hi), uint8(lo)})*11 + uint16(ordinal(uint8(kick), uint8(hi), uint8(lo)))
			return HandRank(baseTwoPair + twoPairCount - 1 - idx)
		}
		kicks := topRanks(ranks&^(1<<hi), 3)
		idx := uint16(hi)*220 + colex(ordinals(kicks, uint8(hi)))
		return HandRank(baseOnePair + onePairCount - 1 - idx)
	}

	idx := fiveRankIndex(topRanks(ranks, 5))
	return HandRank(baseHighCard + highCardCount - 1 - idx)
}

func topRank(mask uint16) int {
	if mask == 0 {
		return -1
	}
	return bits.Len16(mask) - 1
}

// topRanks returns up to n ranks from mask, highest first.
func topRanks(mask uint16, n int) []uint8 {
	out := make([]uint8, 0, n)
	for mask != 0 && len(out) < n {
		r := uint8(bits.Len16(mask) - 1)
		out = append(out, r)
		mask &^= 1 << r
	}
	return out
}

// ordinal is the position of rank among the 13 ranks once excluded ones are removed.
func ordinal(rank uint8, excluded ...uint8) uint8 {
	o := rank
	for _, ex := range excluded {
		if ex < rank {
			o--
		}
	}
	return o
}

func ordinals(ranks []uint8, excluded ...uint8) []uint8 {
	out := make([]uint8, len(ranks))
	for i, r := range ranks {
		out[i] = ordinal(r, excluded...)
	}
	return out
}

var binomial = func() [13][6]uint16 {
	var c [13][6]uint16
	for n := 0; n < 13; n++ {
		c[n][0] = 1
		for k := 1; k < 6 && k <= n; k++ {
			c[n][k] = c[n-1][k-1] + c[n-1][k]
		}
	}
	return c
}()

// colex ranks a set of distinct values in colexicographic order, which
// matches kicker order: the set with the larger top card ranks higher.
// The input must be sorted highest first.
func colex(desc []uint8) uint16 {
	var idx uint16
	k := len(desc)
	for i, v := range desc {
		idx += binomial[v][k-i]
	}
	return idx
}

// straightColex holds the colex index of every five-rank straight.
var straightColex = func() [10]uint16 {
	var out [10]uint16
	out[0] = colex([]uint8{Ace, Five, Four, Three, Two})
	for high := Six; high <= Ace; high++ {
		out[high-Five] = colex([]uint8{high, high - 1, high - 2, high - 3, high - 4})
	}
	return out
}()

// fiveRankIndex ranks five distinct non-straight ranks 0..1276.
func fiveRankIndex(desc []uint8) uint16 {
	for len(desc) < 5 {
		desc = append(desc, 0)
	}
	idx := colex(desc)
	var skip uint16
	for _, s := range straightColex {
		if s < idx {
			skip++
		}
	}
	return idx - skip
}

// straightHigh returns the top rank of the best straight in mask.
func straightHigh(mask uint16) (uint8, bool) {
	mask &= 0x1FFF
	if run := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4); run != 0 {
		return uint8(bits.Len16(run)-1) + 4, true
	}
	const wheel = 1<<Ace | 1<<Two | 1<<Three | 1<<Four | 1<<Five
	if mask&wheel == wheel {
		return Five, true
	}
	return 0, false
}

// straightIndex is 0 for the wheel up to 9 for broadway.
func straightIndex(high uint8) uint16 {
	return uint16(high - Five)
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie
func CompareHands(a, b HandRank) int {
	switch {
	case a < b:
		return 1
	case a > b:
		return -1
	}
	return 0
}
