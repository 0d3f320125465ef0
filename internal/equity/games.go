package equity

import (
	"errors"
	"fmt"

	"github.com/lox/handstats/internal/derive"
	"github.com/lox/handstats/poker"
)

// ErrUnknownGame is returned for an evaluator game name with no rules.
var ErrUnknownGame = errors.New("unknown evaluator game")

type game struct {
	omaha bool
	// board games deal community cards and can be run forward
	board bool
	sides []derive.Side
}

var games = map[string]game{
	"holdem":  {board: true, sides: []derive.Side{derive.SideHi}},
	"omaha":   {board: true, omaha: true, sides: []derive.Side{derive.SideHi}},
	"omaha5":  {board: true, omaha: true, sides: []derive.Side{derive.SideHi}},
	"omaha8":  {board: true, omaha: true, sides: []derive.Side{derive.SideHi, derive.SideLow}},
	"omaha58": {board: true, omaha: true, sides: []derive.Side{derive.SideHi, derive.SideLow}},
	"7stud":   {sides: []derive.Side{derive.SideHi}},
	"7stud8":  {sides: []derive.Side{derive.SideHi, derive.SideLow}},
	"razz":    {sides: []derive.Side{derive.SideRazz}},
	"5draw":   {sides: []derive.Side{derive.SideHi}},
}

func lookupGame(name string) (game, error) {
	g, ok := games[name]
	if !ok {
		return game{}, fmt.Errorf("%w: %q", ErrUnknownGame, name)
	}
	return g, nil
}

// lowCeiling is above every five card low value.
const lowCeiling = 1 << 24

// score returns a value where higher is better, and false when the holding
// does not qualify for the side. Omaha holdings pass the board separately.
func score(side derive.Side, hole, board []poker.Card) (int, bool) {
	omaha := len(board) > 0
	switch side {
	case derive.SideHi:
		var r poker.HandRank
		if omaha {
			r = poker.EvaluateOmaha(hole, board)
		} else {
			r = poker.Evaluate(poker.NewHand(hole...))
		}
		if r >= poker.WorstRank {
			return 0, false
		}
		return int(poker.WorstRank - r), true
	case derive.SideLow:
		var r poker.LowRank
		if omaha {
			r = poker.EvaluateOmahaLow8(hole, board)
		} else {
			r = poker.EvaluateLow8(poker.NewHand(hole...))
		}
		if r == poker.NoLow {
			return 0, false
		}
		return lowCeiling - int(r), true
	case derive.SideRazz:
		r := poker.EvaluateLow(poker.NewHand(hole...))
		if r == poker.NoLow {
			return 0, false
		}
		return lowCeiling - int(r), true
	}
	return 0, false
}

// reported maps razz onto the low side of the pot.
func reported(side derive.Side) derive.Side {
	if side == derive.SideRazz {
		return derive.SideLow
	}
	return side
}

// shares splits one unit of pot between the pockets for a single run-out:
// each qualifying side takes an equal part, split evenly among its best
// hands.
func shares(g game, pockets [][]poker.Card, board []poker.Card, out []float64) {
	var omahaBoard []poker.Card
	if g.omaha {
		omahaBoard = board
	}
	type sideResult struct{ winners []int }
	results := make([]sideResult, 0, len(g.sides))
	for _, side := range g.sides {
		best := -1
		var winners []int
		for i, pocket := range pockets {
			cards := pocket
			if !g.omaha {
				cards = append(append(make([]poker.Card, 0, len(pocket)+len(board)), pocket...), board...)
			}
			v, ok := score(side, cards, omahaBoard)
			if !ok {
				continue
			}
			switch {
			case v > best:
				best, winners = v, []int{i}
			case v == best:
				winners = append(winners, i)
			}
		}
		if len(winners) > 0 {
			results = append(results, sideResult{winners})
		}
	}
	for _, r := range results {
		part := 1 / float64(len(results)) / float64(len(r.winners))
		for _, w := range r.winners {
			out[w] += part
		}
	}
}
