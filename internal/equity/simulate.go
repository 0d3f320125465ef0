package equity

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/lox/handstats/poker"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoBoardGame = errors.New("forward equity needs a community card game")
	ErrDeadCard    = errors.New("card appears twice")
)

// ForwardEquity returns each pocket's share of the pot over the unseen
// board cards. Two or fewer cards to come, or zero iterations, enumerate
// every run-out; otherwise the board is sampled.
func (e *Evaluator) ForwardEquity(name string, iterations int, pockets [][]string, dead, board []string) ([]float64, error) {
	g, err := lookupGame(name)
	if err != nil {
		return nil, err
	}
	if !g.board {
		return nil, fmt.Errorf("%w: %s", ErrNoBoardGame, name)
	}

	key := cacheKey(name, iterations, pockets, dead, board)
	if e.cache != nil {
		if v, ok := e.cache.Get(key); ok {
			return append([]float64(nil), v.([]float64)...), nil
		}
	}

	parsed, bcards, err := parseAll(pockets, board)
	if err != nil {
		return nil, err
	}
	deadCards, err := poker.ParseCards(dead)
	if err != nil {
		return nil, fmt.Errorf("dead: %w", err)
	}
	var used poker.Hand
	for _, group := range append(append(parsed, bcards), deadCards) {
		for _, c := range group {
			if used.HasCard(c) {
				return nil, fmt.Errorf("%w: %s", ErrDeadCard, c)
			}
			used.AddCard(c)
		}
	}

	need := 5 - len(bcards)
	stub := remaining(used)
	if need < 0 || need > len(stub) {
		return nil, fmt.Errorf("board has %d cards", len(bcards))
	}

	var eq []float64
	if need <= 2 || iterations <= 0 {
		eq = exhaustive(g, parsed, bcards, stub, need)
	} else {
		eq, err = e.sample(g, parsed, bcards, used, need, iterations, e.seed^int64(hashKey(key)))
		if err != nil {
			return nil, err
		}
	}

	if e.cache != nil {
		e.cache.Set(key, append([]float64(nil), eq...), cache.DefaultExpiration)
	}
	e.logger.Debug("Forward equity", "game", name, "pockets", len(pockets), "to_come", need, "iterations", iterations)
	return eq, nil
}

func remaining(used poker.Hand) []poker.Card {
	var out []poker.Card
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			if c := poker.NewCard(rank, suit); !used.HasCard(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// exhaustive enumerates every completion of the board.
func exhaustive(g game, pockets [][]poker.Card, board, stub []poker.Card, need int) []float64 {
	eq := make([]float64, len(pockets))
	full := make([]poker.Card, len(board), 5)
	copy(full, board)
	outcomes := 0

	var rec func(start int)
	rec = func(start int) {
		if len(full) == 5 {
			shares(g, pockets, full, eq)
			outcomes++
			return
		}
		for i := start; i < len(stub); i++ {
			full = append(full, stub[i])
			rec(i + 1)
			full = full[:len(full)-1]
		}
	}
	rec(0)
	for i := range eq {
		eq[i] /= float64(outcomes)
	}
	return eq
}

// sample runs a Monte Carlo simulation split across workers. Each worker
// has its own generator derived from seed, and partial sums are combined
// in worker order so the result does not depend on scheduling.
func (e *Evaluator) sample(g game, pockets [][]poker.Card, board []poker.Card, used poker.Hand, need, iterations int, seed int64) ([]float64, error) {
	workers := max(1, min(e.workers, iterations))
	partials := make([][]float64, workers)
	per, extra := iterations/workers, iterations%workers

	grp, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		n := per
		if w < extra {
			n++
		}
		partials[w] = make([]float64, len(pockets))
		out := partials[w]
		rng := rand.New(rand.NewSource(seed + int64(w)))
		grp.Go(func() error {
			deck := poker.NewDeckWithout(rng, used)
			full := make([]poker.Card, 0, 5)
			for i := 0; i < n; i++ {
				if i%256 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				deck.Shuffle()
				full = append(full[:0], board...)
				full = append(full, deck.Deal(need)...)
				shares(g, pockets, full, out)
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	eq := make([]float64, len(pockets))
	for _, part := range partials {
		for i, v := range part {
			eq[i] += v
		}
	}
	for i := range eq {
		eq[i] /= float64(iterations)
	}
	return eq, nil
}

func cacheKey(name string, iterations int, pockets [][]string, dead, board []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d", name, iterations)
	for _, p := range pockets {
		b.WriteString("|" + strings.Join(p, ""))
	}
	b.WriteString("|d:" + strings.Join(dead, ""))
	b.WriteString("|b:" + strings.Join(board, ""))
	return b.String()
}

func hashKey(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}
