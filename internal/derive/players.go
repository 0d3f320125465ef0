package derive

import (
	"github.com/lox/handstats/internal/hand"
	"github.com/lox/handstats/poker"
	"github.com/shopspring/decimal"
)

// assemblePlayers runs the per-player calculators in dependency order:
// money before showdown splits, positions before steals.
func (d *derivation) assemblePlayers() {
	d.playerBasics()
	for i := range d.h.ActionStreets[1:] {
		if i >= 5 {
			break
		}
		d.streetAggression(i)
	}
	d.winnings()
	d.contributions()
	d.continuationBets()
	d.holeCards()
	d.positions()
	d.effectiveStacks()
	d.checkCallRaise()
	d.betLevels()
	d.steals()
	d.calledRaises()
	d.vpip()
}

func (d *derivation) playerBasics() {
	h := d.h
	for _, p := range h.Players {
		s := d.players[p.Name]
		s.SeatNo = p.Seat
		s.StartCash = hand.Cents(p.Stack)
		if p.Bounty != nil {
			start := hand.Cents(*p.Bounty)
			end := start
			s.StartBounty, s.EndBounty = &start, &end
		}
		if b, ok := h.EndBounty[p.Name]; ok {
			end := hand.Cents(b)
			s.EndBounty = &end
		}
		s.Sitout = h.Sitout[p.Name]
		s.Showed = h.Shown[p.Name]
	}
}

// streetAggression fills aggression, call, bet and raise counts for betting
// round i (ActionStreets[i+1]).
func (d *derivation) streetAggression(i int) {
	actions := d.streetActions(i + 1)
	aggressors := make(map[string]bool)
	others := make(map[string]bool)
	for _, a := range actions {
		if len(aggressors) > 0 {
			others[a.Player] = true
		}
		if a.Kind.Aggressive() {
			aggressors[a.Player] = true
		}
	}
	for name := range aggressors {
		d.players[name].Aggr[i] = true
	}
	if i > 0 && len(aggressors) > 0 {
		for name := range others {
			d.players[name].OtherRaised[i] = true
		}
	}

	for _, a := range actions {
		s := d.players[a.Player]
		switch a.Kind {
		case hand.Calls:
			s.Calls[i]++
		case hand.Bets:
			s.Bets[i]++
		case hand.Raises, hand.Completes:
			s.Raises[i]++
		case hand.Folds:
			if i > 0 && s.OtherRaised[i] {
				s.FoldToOtherRaised[i] = true
			}
		}
	}
}

// winnings records what each collectee took and a naive rake share. The
// pot resolver replaces the rake when it runs.
func (d *derivation) winnings() {
	h := d.h
	n := len(h.Collectees)
	if n == 0 {
		return
	}
	rake := hand.Cents(h.Rake)
	evenSplit := h.TotalPot.Div(decimal.NewFromInt(int64(n)))
	unraked := false
	for _, c := range h.Collectees {
		if c.Amount.Equal(evenSplit) {
			unraked = true
			break
		}
	}

	for i, c := range h.Collectees {
		s := d.players[c.Player]
		s.Winnings += hand.Cents(c.Amount)
		switch {
		case unraked:
			s.Rake = hand.Cents(evenSplit.Sub(c.Amount))
		default:
			share := rake / int64(n)
			if i == 0 {
				share += rake - share*int64(n)
			}
			s.Rake = share
		}
		for street := 1; street <= 4; street++ {
			if s.Seen[street] {
				s.WonWhenSeen[street] = true
			}
		}
		if s.SawShowdown {
			s.WonAtSD = true
		}
	}
}

// contributions fills committed money, profit and the rake attribution
// variants.
func (d *derivation) contributions() {
	h := d.h
	rake := hand.Cents(h.Rake)
	totalPot := hand.Cents(h.TotalPot)
	var contributed []string
	for _, name := range d.order {
		s := d.players[name]
		s.Committed = hand.Cents(h.Pot.Committed[name])
		s.Common = hand.Cents(h.Pot.Common[name])
		paid := s.Committed + s.Common
		s.TotalProfit = s.Winnings - paid
		s.AllInEV = s.TotalProfit
		s.RakeDealt = rake / int64(len(d.order))
		if rake > 0 && totalPot > 0 {
			s.RakeWeighted = rake * paid / totalPot
		}
		if paid > 0 {
			contributed = append(contributed, name)
		}
	}
	for _, name := range contributed {
		d.players[name].RakeContributed = rake / int64(len(contributed))
	}
}

// holeCards encodes hole cards and splits profit into showdown and
// non-showdown winnings.
func (d *derivation) holeCards() {
	for _, name := range d.order {
		s := d.players[name]
		if s.SawShowdown {
			s.ShowdownWinnings = s.TotalProfit
		} else {
			s.NonShowdownWinnings = s.TotalProfit
		}
		cards := d.h.JoinHoleCards(name)
		for i := range s.Cards {
			card := poker.Placeholder
			if i < len(cards) {
				card = cards[i]
			}
			s.Cards[i] = poker.EncodeCard(card)
		}
		if d.h.GameType.Category == "holdem" {
			if len(cards) >= 2 {
				s.StartCards = poker.StartCards(cards[0], cards[1])
			} else {
				s.StartCards = 0
			}
		}
	}
}

// vpip marks players who voluntarily put money in on the first betting
// round.
func (d *derivation) vpip() {
	voluntary := actorSet(d.streetActions(1), only(hand.Calls, hand.Raises, hand.Bets, hand.Completes))
	for name := range voluntary {
		d.players[name].Street0VPI = true
	}
	d.rec.PlayersVPI = len(voluntary)
}
