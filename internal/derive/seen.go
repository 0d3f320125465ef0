package derive

import "github.com/lox/handstats/internal/hand"

// playersAtStreets tracks who is still in the hand at the start of each
// post-flop street and at showdown. It also sets the first-to-act and
// in-position flags for streets 1..4.
func (d *derivation) playersAtStreets() {
	h := d.h
	live := actorSet(d.streetActions(1), nil)

	// players all-in from the blinds never act but are still live
	if pots := h.Pot.Pots; len(pots) > 0 && len(pots[0].Players) > 1 {
		for _, name := range pots[0].Players {
			live[name] = true
		}
		for name, amount := range h.Pot.Common {
			if amount.IsPositive() {
				live[name] = true
			}
		}
	}

	for i, street := range h.ActionStreets {
		n := i - 1
		var actors []string
		if n >= 1 && n <= 4 {
			d.rec.PlayersAtStreet[n] = len(live)
			for name := range live {
				if p, ok := d.players[name]; ok {
					p.Seen[n] = true
				}
			}
			actors = firstActors(h.Actions[street], except(hand.Discards, hand.StandsPat))
			if len(actors) > 0 {
				d.players[actors[0]].FirstToAct[n] = true
				d.players[actors[len(actors)-1]].InPosition[n] = true
			}
		}

		for name := range actorSet(h.Actions[street], only(hand.Folds)) {
			delete(live, name)
		}

		if len(live) == 1 {
			var last string
			for name := range live {
				last = name
			}
			if n >= 1 && n <= 4 && len(actors) > 0 && !contains(actors, last) {
				// everyone folded before the survivor acted
				d.players[actors[len(actors)-1]].InPosition[n] = false
				if p, ok := d.players[last]; ok {
					p.InPosition[n] = true
				}
			}
			return
		}
	}

	d.rec.PlayersAtShowdown = len(live)
	for name := range live {
		if p, ok := d.players[name]; ok {
			p.SawShowdown = true
		}
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
