// Package equity is the built-in hand evaluator: best hands, showdown
// winners and forward equity over unseen cards.
package equity

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/handstats/internal/derive"
	"github.com/lox/handstats/poker"
	"github.com/patrickmn/go-cache"
)

// Evaluator implements derive.Evaluator. Results are deterministic for a
// given seed and input.
type Evaluator struct {
	logger  *log.Logger
	workers int
	seed    int64
	cache   *cache.Cache
}

var _ derive.Evaluator = (*Evaluator)(nil)

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Evaluator) { e.logger = logger }
}

// WithSeed sets the base seed mixed into every simulation.
func WithSeed(seed int64) Option {
	return func(e *Evaluator) { e.seed = seed }
}

// WithWorkers sets the number of simulation goroutines.
func WithWorkers(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithCacheTTL sets how long forward-equity results are memoized. Zero
// disables the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(e *Evaluator) {
		if ttl <= 0 {
			e.cache = nil
			return
		}
		e.cache = cache.New(ttl, 2*ttl)
	}
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		logger:  log.New(io.Discard),
		workers: min(runtime.NumCPU(), 8),
		cache:   cache.New(10*time.Minute, 20*time.Minute),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var categoryNames = map[poker.HandType]string{
	poker.HighCard:      "NoPair",
	poker.Pair:          "OnePair",
	poker.TwoPair:       "TwoPair",
	poker.ThreeOfAKind:  "Trips",
	poker.Straight:      "Straight",
	poker.Flush:         "Flush",
	poker.FullHouse:     "FlHouse",
	poker.FourOfAKind:   "Quads",
	poker.StraightFlush: "StFlush",
}

// BestHand returns the best hand for one side. A non-empty board applies
// the Omaha two-plus-three rule.
func (e *Evaluator) BestHand(side derive.Side, cards, board []string) (int, derive.Rank, error) {
	hole, err := poker.ParseCards(cards)
	if err != nil {
		return 0, derive.Rank{}, err
	}
	bcards, err := poker.ParseCards(board)
	if err != nil {
		return 0, derive.Rank{}, err
	}

	value, ok := score(side, hole, bcards)
	if !ok {
		return 0, derive.Rank{Category: "Nothing"}, nil
	}
	five := bestFive(side, hole, bcards, value)
	rank := derive.Rank{Cards: cardStrings(five)}

	switch side {
	case derive.SideHi:
		t := poker.Evaluate(poker.NewHand(five...)).Type()
		rank.Category = categoryNames[t]
		rank.Description = describe(five, t)
	default:
		rank.Category = lowCategory(five)
		rank.Description = fmt.Sprintf("%s low", lowName(five))
	}
	return value, rank, nil
}

// Winners returns the winning pocket indices per side. Sides with no
// qualifying hand are left out.
func (e *Evaluator) Winners(name string, pockets [][]string, board []string) (map[derive.Side][]int, error) {
	g, err := lookupGame(name)
	if err != nil {
		return nil, err
	}
	parsed, bcards, err := parseAll(pockets, board)
	if err != nil {
		return nil, err
	}
	var omahaBoard []poker.Card
	if g.omaha {
		omahaBoard = bcards
	}

	win := make(map[derive.Side][]int)
	for _, side := range g.sides {
		best := -1
		var winners []int
		for i, pocket := range parsed {
			v, ok := score(side, pocket, omahaBoard)
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
			win[reported(side)] = winners
		}
	}
	e.logger.Debug("Winners evaluated", "game", name, "pockets", len(pockets), "sides", len(win))
	return win, nil
}

func parseAll(pockets [][]string, board []string) ([][]poker.Card, []poker.Card, error) {
	parsed := make([][]poker.Card, len(pockets))
	for i, p := range pockets {
		cards, err := poker.ParseCards(p)
		if err != nil {
			return nil, nil, fmt.Errorf("pocket %d: %w", i, err)
		}
		parsed[i] = cards
	}
	bcards, err := poker.ParseCards(board)
	if err != nil {
		return nil, nil, fmt.Errorf("board: %w", err)
	}
	return parsed, bcards, nil
}

// bestFive finds the five cards that make a hand worth value.
func bestFive(side derive.Side, hole, board []poker.Card, value int) []poker.Card {
	var found []poker.Card
	try := func(five []poker.Card) bool {
		if v, ok := score(side, five, nil); ok && v == value {
			found = append([]poker.Card(nil), five...)
			return true
		}
		return false
	}
	if len(board) > 0 {
		eachOmahaFive(hole, board, try)
	} else {
		eachFive(hole, try)
	}
	return found
}

func eachFive(cards []poker.Card, fn func([]poker.Card) bool) {
	n := len(cards)
	five := make([]poker.Card, 5)
	var rec func(start, depth int) bool
	rec = func(start, depth int) bool {
		if depth == 5 {
			return fn(five)
		}
		for i := start; i <= n-(5-depth); i++ {
			five[depth] = cards[i]
			if rec(i+1, depth+1) {
				return true
			}
		}
		return false
	}
	rec(0, 0)
}

func eachOmahaFive(hole, board []poker.Card, fn func([]poker.Card) bool) {
	for i := 0; i < len(hole); i++ {
		for j := i + 1; j < len(hole); j++ {
			for a := 0; a < len(board); a++ {
				for b := a + 1; b < len(board); b++ {
					for c := b + 1; c < len(board); c++ {
						if fn([]poker.Card{hole[i], hole[j], board[a], board[b], board[c]}) {
							return
						}
					}
				}
			}
		}
	}
}

func cardStrings(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// lowCategory names a five card low by its pairing.
func lowCategory(five []poker.Card) string {
	counts := make(map[uint8]int)
	for _, c := range five {
		counts[c.Rank()]++
	}
	pairs, trips, quads := 0, 0, 0
	for _, n := range counts {
		switch n {
		case 2:
			pairs++
		case 3:
			trips++
		case 4:
			quads++
		}
	}
	switch {
	case quads > 0:
		return "Quads"
	case trips > 0 && pairs > 0:
		return "FlHouse"
	case trips > 0:
		return "Trips"
	case pairs == 2:
		return "TwoPair"
	case pairs == 1:
		return "OnePair"
	}
	return "NoPair"
}

// lowName is the highest card of a low, e.g. "8" for an eight low.
func lowName(five []poker.Card) string {
	high := uint8(0)
	for _, c := range five {
		r := c.Rank()
		if r == poker.Ace {
			continue
		}
		if r+1 > high {
			high = r + 1
		}
	}
	if high == 0 {
		return "A"
	}
	return string("23456789TJQK"[high-1])
}
