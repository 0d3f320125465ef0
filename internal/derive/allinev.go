package derive

import (
	"math"

	"github.com/lox/handstats/internal/hand"
	"github.com/shopspring/decimal"
)

var (
	perMille = decimal.NewFromInt(1000)
	ten      = decimal.NewFromInt(10)
)

// allInEV replaces allInEV with the pot equity each player held when the
// money went in, less what they committed. Equity is accumulated only on
// the earliest street that was all-in.
func (d *derivation) allInEV(boards map[hand.Street]*streetBoards, holes map[string][]string) {
	h := d.h
	eq := make(map[string]decimal.Decimal)
	committed := make(map[string]decimal.Decimal)
	var start hand.Street
	var everyone []string

	for potIdx, pot := range h.Pot.Pots {
		amount := pot.Amount
		if potIdx == 0 {
			amount = amount.Add(h.Pot.CommonTotal()).Add(h.Pot.STP)
		}

		for _, street := range h.AllStreets[1:] {
			b, ok := boards[street]
			if !ok {
				continue
			}
			id := d.cat.Streets[street]
			for n, board := range b.boards {
				var valid []string
				for _, name := range pot.Players {
					s := d.players[name]
					hole := holes[name]
					if (s.SawShowdown || s.WentAllIn) && len(hole) > 0 && !hasPlaceholder(hole) {
						valid = append(valid, name)
					}
				}
				var dead []string
				if potIdx == 0 {
					everyone = valid
				} else {
					for _, name := range everyone {
						if !contains(valid, name) {
							dead = append(dead, holes[name]...)
						}
					}
				}
				if len(valid) == 0 || len(pot.Players) != len(valid) || !b.allIn {
					continue
				}
				if start == "" {
					start = street
				}

				equities := d.equities(valid, holes, dead, board, id)
				for i, name := range valid {
					if street == start {
						rake := decimal.Zero
						if !h.CashedOut && h.TotalPot.IsPositive() {
							rake = h.Rake.Mul(amount).Div(h.TotalPot)
						}
						share := amount.Sub(rake).Mul(equities[i]).Div(ten).Div(decimal.NewFromInt(int64(len(b.boards))))
						eq[name] = eq[name].Add(share)
						committed[name] = h.Pot.Committed[name].Add(h.Pot.Common[name]).Mul(decimal.NewFromInt(100))
					}
					if len(valid) == len(h.Pot.Contenders) {
						d.setStoveEquity(name, id, boardID(n, len(b.boards)), equities[i])
					}
				}
			}
		}
	}

	for _, name := range d.order {
		if c, ok := committed[name]; ok && !c.IsZero() {
			d.players[name].AllInEV = eq[name].Sub(c).Round(0).IntPart()
		}
	}
}

// equities returns per-mille equities summing to exactly 1000, the
// rounding remainder spread evenly.
func (d *derivation) equities(valid []string, holes map[string][]string, dead, board []string, street int) []decimal.Decimal {
	raw := []float64{1}
	if len(valid) > 1 {
		pockets := make([][]string, len(valid))
		for i, name := range valid {
			pockets[i] = holes[name]
		}
		var err error
		raw, err = d.eval.ForwardEquity(d.cat.EvalGame, d.iterations[street], pockets, dead, board)
		if err != nil || len(raw) != len(valid) {
			d.logger.Error("Forward equity failed", "street", street, "err", err)
			zero := make([]decimal.Decimal, len(valid))
			for i := range zero {
				zero[i] = decimal.Zero
			}
			return zero
		}
	}

	out := make([]decimal.Decimal, len(raw))
	sum := int64(0)
	for i, f := range raw {
		v := int64(math.Round(f * 1000))
		out[i] = decimal.NewFromInt(v)
		sum += v
	}
	remainder := perMille.Sub(decimal.NewFromInt(sum)).Div(decimal.NewFromInt(int64(len(out))))
	for i := range out {
		out[i] = out[i].Add(remainder)
	}
	return out
}

func (d *derivation) setStoveEquity(name string, street, board int, equity decimal.Decimal) {
	v := int(equity.Round(0).IntPart())
	for i := range d.stove {
		r := &d.stove[i]
		if r.Player == name && r.Street == street && r.BoardID == board {
			r.Equity = v
		}
	}
}
