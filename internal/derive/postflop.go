package derive

import "github.com/lox/handstats/internal/hand"

// continuationBets fills c-bet chances for streets 1..4 and the fold-to-c-bet
// responses of the next two players.
func (d *derivation) continuationBets() {
	for i := 1; i <= 4; i++ {
		prev := d.streetActions(i)
		cur := d.streetActions(i + 1)
		if len(cur) == 0 {
			continue
		}

		aggressor := ""
		for _, a := range prev {
			if a.Kind.Aggressive() {
				aggressor = a.Player
			}
		}
		if aggressor == "" {
			continue
		}

		first := -1
		for j, a := range cur {
			if a.Player == aggressor {
				first = j
				break
			}
		}
		if first < 0 || !noAggressionBefore(cur, first) {
			continue
		}

		s := d.players[aggressor]
		s.CBChance[i] = true
		s.CBDone[i] = cur[first].Kind.Aggressive()
		if !s.CBDone[i] {
			continue
		}

		responders := make(map[string]bool)
		for _, a := range cur[first+1:] {
			if len(responders) == 2 {
				break
			}
			if a.Player == aggressor || responders[a.Player] {
				continue
			}
			responders[a.Player] = true
			r := d.players[a.Player]
			r.FoldToCBChance[i] = true
			r.FoldToCBDone[i] = a.Kind == hand.Folds
			// a raise ends the c-bet's responses
			if a.Kind.Aggressive() {
				break
			}
		}
	}
}

func noAggressionBefore(actions []hand.Action, idx int) bool {
	for _, a := range actions[:idx] {
		if a.Kind.Aggressive() {
			return false
		}
	}
	return true
}

// checkCallRaise marks players who checked and then faced a bet on streets
// 1..4, and whether they called or raised it.
func (d *derivation) checkCallRaise() {
	for i := 1; i <= 4; i++ {
		actions := d.streetActions(i + 1)
		checkers := make(map[string]bool)
		opened := false
		decided := make(map[string]bool)
		for _, a := range actions {
			if !opened {
				if betOrRaise(a.Kind) {
					opened = true
				} else if a.Kind == hand.Checks {
					checkers[a.Player] = true
				}
				continue
			}
			if !checkers[a.Player] || decided[a.Player] {
				continue
			}
			decided[a.Player] = true
			s := d.players[a.Player]
			s.CheckCallRaiseChance[i] = true
			s.CheckCallDone[i] = a.Kind == hand.Calls
			s.CheckRaiseDone[i] = a.Kind == hand.Raises
		}
	}
}

// effectiveStacks sets each player's effective stack at their first action
// on the first hole street: the smaller of their own stack and the largest
// stack among the other players still in, or their own stack when nobody
// else is.
func (d *derivation) effectiveStacks() {
	h := d.h
	voluntary := false
	for _, street := range h.ActionStreets {
		if street != hand.BlindsAntes && len(h.Actions[street]) > 0 {
			voluntary = true
			break
		}
	}
	if !voluntary {
		return
	}

	stacks := make(map[string]int64)
	for _, name := range d.order {
		s := d.players[name]
		if s.StartCash > 0 && !s.Sitout {
			stacks[name] = s.StartCash
		}
	}

	done := make(map[string]bool)
	for _, a := range h.Actions[h.HoleStreets[0]] {
		own, tracked := stacks[a.Player]
		if tracked && !done[a.Player] {
			done[a.Player] = true
			var largest int64
			for name, stack := range stacks {
				if name != a.Player && stack > largest {
					largest = stack
				}
			}
			if largest == 0 {
				largest = own
			}
			d.players[a.Player].EffStack = min(own, largest)
		}
		if a.Kind == hand.Folds && tracked {
			stacks[a.Player] = 0
		}
	}
}
