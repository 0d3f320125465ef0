package derive

import "github.com/lox/handstats/internal/hand"

// kindFilter selects actions by kind. A nil filter keeps everything.
type kindFilter func(hand.ActionKind) bool

func only(kinds ...hand.ActionKind) kindFilter {
	return func(k hand.ActionKind) bool {
		for _, want := range kinds {
			if k == want {
				return true
			}
		}
		return false
	}
}

func except(kinds ...hand.ActionKind) kindFilter {
	keep := only(kinds...)
	return func(k hand.ActionKind) bool { return !keep(k) }
}

// actorSet returns the distinct players with a matching action.
func actorSet(actions []hand.Action, keep kindFilter) map[string]bool {
	set := make(map[string]bool)
	for _, a := range actions {
		if keep == nil || keep(a.Kind) {
			set[a.Player] = true
		}
	}
	return set
}

// firstActors returns matching players in order of their first matching
// action.
func firstActors(actions []hand.Action, keep kindFilter) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range actions {
		if keep != nil && !keep(a.Kind) {
			continue
		}
		if seen[a.Player] {
			continue
		}
		seen[a.Player] = true
		out = append(out, a.Player)
	}
	return out
}

// betOrRaise is the narrower aggression test used post-flop, where
// completes cannot occur.
func betOrRaise(k hand.ActionKind) bool { return k == hand.Bets || k == hand.Raises }
