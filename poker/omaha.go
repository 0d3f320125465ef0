package poker

// EvaluateOmaha returns the best high hand using exactly two hole cards
// and three board cards.
func EvaluateOmaha(hole, board []Card) HandRank {
	best := WorstRank
	eachOmaha(hole, board, func(h Hand) {
		if r := Evaluate(h); r < best {
			best = r
		}
	})
	return best
}

// EvaluateOmahaLow8 returns the best eight-or-better low using exactly two
// hole cards and three board cards.
func EvaluateOmahaLow8(hole, board []Card) LowRank {
	best := NoLow
	eachOmaha(hole, board, func(h Hand) {
		if r := EvaluateLow8(h); r < best {
			best = r
		}
	})
	return best
}

func eachOmaha(hole, board []Card, fn func(Hand)) {
	if len(hole) < 2 || len(board) < 3 {
		return
	}
	for i := 0; i < len(hole)-1; i++ {
		for j := i + 1; j < len(hole); j++ {
			two := NewHand(hole[i], hole[j])
			for a := 0; a < len(board)-2; a++ {
				for b := a + 1; b < len(board)-1; b++ {
					for c := b + 1; c < len(board); c++ {
						fn(two | NewHand(board[a], board[b], board[c]))
					}
				}
			}
		}
	}
}
