package derive

import (
	"github.com/lox/handstats/internal/hand"
	"github.com/lox/handstats/poker"
)

// resolvable checks that the hand carries the cards the evaluator stages
// need. Players who showed nothing are fine; partial holdings and short
// boards are not.
func (d *derivation) resolvable() bool {
	h := d.h
	if d.cat.EvalGame == "" {
		return true
	}
	need := d.cat.holes[len(d.cat.holes)-1].hi
	showdown := 0
	for _, name := range d.order {
		if !d.players[name].SawShowdown {
			continue
		}
		showdown++
		if cards := h.HoleCards[name]; len(cards) > 0 && len(cards) < need {
			d.fail("%s has %d hole cards, %s needs %d", name, len(cards), d.cat.Name, need)
			return false
		}
	}
	if d.cat.Base == hand.Hold && showdown > 1 {
		for i, board := range d.boardsList() {
			if len(board) < 5 {
				d.fail("board %d has %d cards at showdown", i+1, len(board))
				return false
			}
		}
	}
	return true
}

// boardsList returns the full board of every run-out. Games without a
// community board get a single empty board.
func (d *derivation) boardsList() [][]string {
	h := d.h
	var community []string
	var boards [][]string
	if d.cat.Base == hand.Hold {
		for _, s := range h.CommunityStreets {
			community = append(community, h.Board[string(s)]...)
		}
		for i := 1; i <= h.RunItTimes; i++ {
			board := append([]string(nil), community...)
			for _, s := range h.CommunityStreets {
				board = append(board, h.Board[runStreet(s, i)]...)
			}
			boards = append(boards, board)
		}
	}
	if len(boards) == 0 {
		boards = [][]string{community}
	}
	return boards
}

// window returns cards[r.lo:r.hi], clamped to what is there, with unknown
// cards replaced by the placeholder.
func window(cards []string, r cardRange) []string {
	lo, hi := min(r.lo, len(cards)), min(r.hi, len(cards))
	return known(cards[lo:hi])
}

func known(cards []string) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		if poker.IsKnown(c) {
			out[i] = c
		} else {
			out[i] = poker.Placeholder
		}
	}
	return out
}

func hasPlaceholder(cards []string) bool {
	for _, c := range cards {
		if c == poker.Placeholder {
			return true
		}
	}
	return false
}
