package derive

import "github.com/lox/handstats/internal/hand"

// assembleActions flattens every action street, blinds included, into the
// numbered action log. Blinds and antes are street -1.
func (d *derivation) assembleActions() {
	actionNo := 1
	for i, street := range d.h.ActionStreets {
		streetActionNo := 1
		for _, a := range d.h.Actions[street] {
			id, ok := a.Kind.ID()
			if !ok {
				d.logger.Warn("Unknown action kind", "kind", a.Kind, "player", a.Player, "street", street)
			}
			rec := ActionRecord{
				ActionNo:       actionNo,
				StreetActionNo: streetActionNo,
				Street:         i - 1,
				ActionID:       id,
				Player:         a.Player,
			}
			if a.Kind == hand.Discards {
				rec.NumDiscarded = a.Discarded
				rec.CardsDiscarded = a.Cards
			} else {
				rec.Amount = hand.Cents(a.Amount)
			}
			if a.Kind == hand.Raises || a.Kind == hand.Completes {
				rec.RaiseTo = hand.Cents(a.RaiseTo)
				rec.AmountCalled = hand.Cents(a.Called)
			}

			s := d.players[a.Player]
			if a.AllIn && a.Kind != hand.Discards {
				rec.AllIn = true
				s.WentAllIn = true
				if i-1 >= 0 && i-1 < len(s.AllIn) {
					s.AllIn[i-1] = true
				}
			}
			if a.Kind == hand.Discards && i-1 >= 0 && i-1 < len(s.Discards) {
				s.Discards[i-1] = a.Discarded
			}

			d.actions = append(d.actions, rec)
			actionNo++
			streetActionNo++
		}
	}
}
