package derive

import "github.com/lox/handstats/internal/hand"

// positions labels each player relative to the button. The blinds are
// labelled first so a big blind missing from the action list still gets
// its position.
func (d *derivation) positions() {
	h := d.h
	order := firstActors(h.Actions[h.HoleStreets[0]], nil)
	stud := h.GameType.Base == hand.Stud

	var buttonBlind, bigBlind, smallBlind, straddle string
	if stud {
		if first := d.streetActions(1); len(first) > 0 {
			smallBlind = first[0].Player // bring-in
		}
	} else {
		for _, a := range d.streetActions(0) {
			switch {
			case a.Kind == hand.ButtonBlind && buttonBlind == "":
				buttonBlind = a.Player
			case a.Kind == hand.BigBlind && bigBlind == "":
				bigBlind = a.Player
			case a.Kind == hand.SmallBlind && smallBlind == "":
				smallBlind = a.Player
			case a.Kind == hand.Straddle && straddle == "":
				straddle = a.Player
			}
		}
	}

	if buttonBlind != "" {
		d.players[buttonBlind].InPosition[0] = true
		if !contains(order, buttonBlind) {
			order = append(order, buttonBlind)
		}
	}
	if bigBlind != "" {
		d.players[bigBlind].Position = PositionBigBlind
		d.players[bigBlind].InPosition[0] = true
		order = remove(order, bigBlind)
	}
	if smallBlind != "" {
		d.players[smallBlind].Position = PositionSmallBlind
		d.players[smallBlind].FirstToAct[0] = true
		order = remove(order, smallBlind)
	}
	// a straddle rotates the last seat to the front
	if straddle != "" && contains(order, straddle) {
		last := order[len(order)-1]
		order = append([]string{last}, order[:len(order)-1]...)
	}

	for i := 0; i < len(order); i++ {
		name := order[len(order)-1-i]
		d.players[name].Position = Position(i)
		d.rec.MaxPosition = i
		if i == 0 && stud {
			d.players[name].InPosition[0] = true
		}
	}
	d.logger.Debug("Positions assigned", "max", d.rec.MaxPosition, "ordered", len(order))
}

func remove(names []string, name string) []string {
	out := names[:0:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
