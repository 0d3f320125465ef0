package derive

// Rank is a best-hand result.
type Rank struct {
	// Category is one of Nothing, NoPair, OnePair, TwoPair, Trips,
	// Straight, Flush, FlHouse, Quads or StFlush.
	Category string
	// Cards are the five cards making the hand, most significant first.
	Cards       []string
	Description string
}

// Evaluator is the hand-equity capability used for pot awards, best-hand
// samples and all-in EV. Implementations must be deterministic for a given
// input.
//
// Pockets and cards contain the player's cards plus, for games other than
// Omaha, the board. Omaha boards are passed separately so the two-card rule
// can be applied.
type Evaluator interface {
	// BestHand returns a value (higher is better) and the rank of the best
	// hand for one side.
	BestHand(side Side, cards, board []string) (int, Rank, error)
	// Winners returns the indices of the winning pockets per side. Sides
	// with no qualifying hand are omitted.
	Winners(game string, pockets [][]string, board []string) (map[Side][]int, error)
	// ForwardEquity returns each pocket's share of the pot, 0..1, over the
	// unseen cards. Iterations of zero means exhaustive enumeration.
	ForwardEquity(game string, iterations int, pockets [][]string, dead, board []string) ([]float64, error)
}
