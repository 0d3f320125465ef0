package hand

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SidePot is one pot slice and the players still contesting it.
type SidePot struct {
	Amount  decimal.Decimal
	Players []string
}

// Pot is the money structure of a finished hand.
type Pot struct {
	Contenders []string
	Committed  map[string]decimal.Decimal
	Common     map[string]decimal.Decimal // antes and dead money
	Returned   map[string]decimal.Decimal // uncalled bets
	Pots       []SidePot                  // main pot first
	STP        decimal.Decimal            // carried in from before the hand
	// StreetTotals is the pot size at the end of each street.
	StreetTotals map[Street]decimal.Decimal
}

// CommittedTotal returns the sum of committed money.
func (p Pot) CommittedTotal() decimal.Decimal { return SumMap(p.Committed) }

// CommonTotal returns the sum of common money.
func (p Pot) CommonTotal() decimal.Decimal { return SumMap(p.Common) }

func isCommonMoney(k ActionKind) bool {
	return k == Ante || k == SecondSB
}

// BuildPot derives the pot structure from a hand's actions. It is used
// when a hand source only provides actions; parsers that know the pot
// fill Hand.Pot directly.
func BuildPot(h *Hand, stp decimal.Decimal) Pot {
	p := Pot{
		Committed:    make(map[string]decimal.Decimal, len(h.Players)),
		Common:       make(map[string]decimal.Decimal, len(h.Players)),
		Returned:     make(map[string]decimal.Decimal),
		STP:          stp,
		StreetTotals: make(map[Street]decimal.Decimal),
	}
	for _, pl := range h.Players {
		p.Committed[pl.Name] = decimal.Zero
		p.Common[pl.Name] = decimal.Zero
	}

	folded := make(map[string]bool)
	acted := make(map[string]bool)
	for _, street := range h.ActionStreets {
		for _, a := range h.Actions[street] {
			acted[a.Player] = true
			switch {
			case a.Kind == Folds:
				folded[a.Player] = true
			case isCommonMoney(a.Kind):
				p.Common[a.Player] = p.Common[a.Player].Add(a.Amount)
			case a.Kind == Raises || a.Kind == Completes:
				p.Committed[a.Player] = p.Committed[a.Player].Add(a.Amount).Add(a.Called)
			case a.Kind == Discards || a.Kind == StandsPat || a.Kind == Checks:
			default:
				p.Committed[a.Player] = p.Committed[a.Player].Add(a.Amount)
			}
		}
		p.StreetTotals[street] = p.CommittedTotal().Add(p.CommonTotal()).Add(stp)
	}

	// the largest commitment is only live up to the second largest
	var top, second decimal.Decimal
	topPlayer := ""
	for _, pl := range h.Players {
		c := p.Committed[pl.Name]
		switch {
		case c.GreaterThan(top):
			second, top, topPlayer = top, c, pl.Name
		case c.GreaterThan(second):
			second = c
		}
	}
	if topPlayer != "" && top.GreaterThan(second) {
		excess := top.Sub(second)
		p.Returned[topPlayer] = excess
		p.Committed[topPlayer] = second
	}

	for _, pl := range h.Players {
		if acted[pl.Name] && !folded[pl.Name] && !h.Sitout[pl.Name] {
			p.Contenders = append(p.Contenders, pl.Name)
		}
	}
	p.Pots = SplitPots(h.Players, p.Committed, p.Contenders)
	return p
}

// SplitPots layers committed money into a main pot and side pots. Each
// level is capped by the smallest commitment among live contenders; folded
// money contributes to the levels it reaches but wins nothing.
func SplitPots(players []Player, committed map[string]decimal.Decimal, contenders []string) []SidePot {
	live := make(map[string]bool, len(contenders))
	for _, c := range contenders {
		live[c] = true
	}

	type commit struct {
		name   string
		amount decimal.Decimal
		order  int
	}
	var all []commit
	for i, pl := range players {
		if c := committed[pl.Name]; c.IsPositive() {
			all = append(all, commit{pl.Name, c, i})
		}
	}

	var pots []SidePot
	for len(all) > 0 {
		sort.SliceStable(all, func(i, j int) bool {
			if !all[i].amount.Equal(all[j].amount) {
				return all[i].amount.LessThan(all[j].amount)
			}
			return all[i].order < all[j].order
		})

		level := decimal.Zero
		for _, c := range all {
			if live[c.name] {
				level = c.amount
				break
			}
		}
		if level.IsZero() {
			// only folded money remains; it belongs to the last pot
			rest := decimal.Zero
			for _, c := range all {
				rest = rest.Add(c.amount)
			}
			if len(pots) > 0 {
				pots[len(pots)-1].Amount = pots[len(pots)-1].Amount.Add(rest)
			}
			break
		}

		pot := SidePot{Amount: decimal.Zero}
		var next []commit
		for _, c := range all {
			pot.Amount = pot.Amount.Add(decimal.Min(c.amount, level))
			if live[c.name] {
				pot.Players = append(pot.Players, c.name)
			}
			if left := c.amount.Sub(level); left.IsPositive() {
				next = append(next, commit{c.name, left, c.order})
			}
		}
		sort.SliceStable(pot.Players, func(i, j int) bool {
			return seatOrder(players, pot.Players[i]) < seatOrder(players, pot.Players[j])
		})
		pots = append(pots, pot)
		all = next
	}
	return pots
}

func seatOrder(players []Player, name string) int {
	for i, p := range players {
		if p.Name == name {
			return i
		}
	}
	return len(players)
}
