package derive

import "github.com/lox/handstats/internal/hand"

// Preflop bet levels. Blinds count as the first bet in flop games; in stud
// the bring-in does not.
const (
	levelUnopened = iota
	levelOneBet
	levelTwoBet
	levelThreeBet
	levelFourBet
)

// betLevels walks the first betting round and fills the 2-bet, 3-bet,
// 4-bet, cold 4-bet, squeeze and fold-to chances. A Done flag is only set
// alongside its Chance.
func (d *derivation) betLevels() {
	level := levelOneBet
	if d.h.GameType.Base == hand.Stud {
		level = levelUnopened
	}

	var firstAggressor string
	squeeze, raiseChance := false, true
	actionCount := make(map[string]int)

	live := make(map[string]bool)
	for _, a := range d.streetActions(0) {
		if !a.AllIn {
			live[a.Player] = true
		}
	}
	for name := range actorSet(d.streetActions(1), nil) {
		live[name] = true
	}

	for _, a := range d.streetActions(1) {
		s := d.players[a.Player]
		aggr := a.Kind.Aggressive()
		actionCount[a.Player]++

		if len(live) == 1 && actionCount[a.Player] == 1 {
			raiseChance = false
			s.Street0AggrChance = false
		}
		allIn := a.AllIn && a.Kind != hand.Discards
		if a.Kind == hand.Folds || allIn || s.Sitout {
			delete(live, a.Player)
			if s.Sitout {
				continue
			}
		}

		switch level {
		case levelUnopened:
			if aggr {
				if firstAggressor == "" {
					firstAggressor = a.Player
				}
				level++
			}

		case levelOneBet:
			s.TwoBetChance = raiseChance
			if aggr {
				if firstAggressor == "" {
					firstAggressor = a.Player
				}
				s.TwoBetDone = raiseChance
				level++
			}

		case levelTwoBet:
			s.ThreeBetChance = raiseChance
			s.SqueezeChance = squeeze
			if a.Player == firstAggressor {
				s.FoldToTwoBetChance = true
				if a.Kind == hand.Folds {
					s.FoldToTwoBetDone = true
				}
			}
			// only a flat call arms the squeeze
			if !squeeze && a.Kind == hand.Calls {
				squeeze = true
				continue
			}
			if aggr {
				s.ThreeBetDone = raiseChance
				s.SqueezeDone = squeeze
				level++
			}

		case levelThreeBet:
			if a.Player == firstAggressor {
				s.FourBetChance = raiseChance
				s.FoldToThreeBetChance = true
				if aggr {
					s.FourBetDone = raiseChance
					level++
				} else if a.Kind == hand.Folds {
					s.FoldToThreeBetDone = true
					d.logger.Debug("Bet levels done", "folded", a.Player, "level", level)
					return
				}
			} else {
				s.ColdFourBetChance = raiseChance
				if aggr {
					s.ColdFourBetDone = raiseChance
					level++
				}
			}

		case levelFourBet:
			if a.Player != firstAggressor {
				s.FoldToFourBetChance = true
				if a.Kind == hand.Folds {
					s.FoldToFourBetDone = true
				}
			}
		}
	}
}
