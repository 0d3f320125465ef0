package derive

import "github.com/lox/handstats/internal/hand"

// stealScan is the state of a single pass over the first betting round
// looking for blind steals.
type stealScan struct {
	d         *derivation
	positions []Position
	stud      bool

	attempt bool
	raised  bool
	stealer string
}

func (sc *stealScan) inStealPosition(p Position) bool {
	for _, want := range sc.positions {
		if p == want {
			return true
		}
	}
	return false
}

// step applies one action and reports whether the scan should continue.
func (sc *stealScan) step(a hand.Action) bool {
	s := sc.d.players[a.Player]
	if s.Sitout {
		return true
	}
	fold := a.Kind == hand.Folds

	switch s.Position {
	case PositionBigBlind:
		if sc.attempt {
			s.FoldBBToStealChance = true
			s.RaiseToStealChance = true
			s.FoldedBBToSteal = fold
			s.RaiseToStealDone = a.Kind == hand.Raises
			if sc.stealer != "" {
				sc.d.players[sc.stealer].StealSuccess = fold
			}
		}
		return false
	case PositionSmallBlind:
		s.RaiseToStealChance = sc.attempt
		s.FoldSBToStealChance = sc.attempt
		s.FoldedSBToSteal = sc.attempt && fold
		s.RaiseToStealDone = sc.attempt && a.Kind == hand.Raises
		if sc.attempt && sc.stealer != "" {
			// stud has no big blind to respond, so the bring-in decides
			sc.d.players[sc.stealer].StealSuccess = fold && sc.stud
		}
	}

	if sc.attempt && !fold {
		return false
	}

	steal := sc.inStealPosition(s.Position)
	if !sc.attempt && !sc.raised && a.Kind != hand.BringIn {
		s.RaiseFirstInChance = true
		if steal {
			s.StealChance = true
		}
		if a.Kind.Aggressive() {
			s.RaisedFirstIn = true
			sc.raised = true
			if steal {
				s.StealDone = true
				sc.attempt = true
				sc.stealer = a.Player
			}
		}
		if a.Kind == hand.Calls {
			return false
		}
	}

	if !steal && !fold && a.Kind != hand.BringIn {
		return false
	}
	return true
}

// steals fills raise-first-in, steal and fold-to-steal statistics. Steals
// are open raises from the cutoff, button or small blind (the two seats
// before the button blind, or stud's last three positions).
func (d *derivation) steals() {
	sc := &stealScan{d: d, stud: d.h.GameType.Base == hand.Stud}
	switch {
	case sc.stud:
		sc.positions = []Position{2, 1, 0}
	case len(firstActors(d.streetActions(0), only(hand.ButtonBlind))) > 0:
		sc.positions = []Position{3, 2, 1}
	default:
		sc.positions = []Position{1, 0, PositionSmallBlind}
	}
	for _, a := range d.streetActions(1) {
		if !sc.step(a) {
			return
		}
	}
}

// calledRaises counts, per player, chances to call a raise on the first
// betting round and how often they did.
func (d *derivation) calledRaises() {
	waiting := true
	for _, a := range d.streetActions(1) {
		if waiting {
			if a.Kind == hand.Raises || a.Kind == hand.Completes {
				waiting = false
			}
			continue
		}
		s := d.players[a.Player]
		s.Street0CalledRaiseChance++
		if a.Kind == hand.Calls {
			s.Street0CalledRaiseDone++
			waiting = true
		}
	}
}
