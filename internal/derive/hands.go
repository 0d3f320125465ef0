package derive

import (
	"strconv"

	"github.com/lox/handstats/internal/hand"
	"github.com/lox/handstats/poker"
)

// assembleHand fills the hand-level record.
func (d *derivation) assembleHand() {
	h := d.h
	d.rec = HandRecord{
		SiteHandNo:  h.HandID,
		TableName:   h.TableName,
		TourneyID:   h.TourneyID,
		StartTime:   h.StartTime,
		Seats:       len(h.Players),
		MaxPosition: -1,
		TotalPot:    hand.Cents(h.TotalPot),
		Rake:        hand.Cents(h.Rake),
		BombPot:     hand.Cents(h.BombPot),
	}
	if hero, ok := h.Player(h.Hero); ok && h.Hero != "" {
		d.rec.HeroSeat = hero.Seat
	} else {
		d.logger.Debug("No hero in hand")
	}

	var board []string
	for _, street := range h.CommunityStreets {
		board = append(board, h.Board[string(street)]...)
	}
	d.rec.BoardCards = encodeFive(padRight(board))

	for i := 0; i < h.RunItTimes; i++ {
		id := i + 1
		var cards []string
		for _, street := range h.CommunityStreets {
			run, ok := h.Board[runStreet(street, id)]
			if !ok {
				d.logger.Debug("Run board street missing", "run", id, "street", street)
			}
			cards = append(cards, run...)
		}
		var five [5]int
		if h.GameType.Split {
			five = encodeFive(padRight(cards))
		} else {
			d.rec.RunItTwice = true
			padded := append(placeholders(5), cards...)
			five = encodeFive(padded[len(padded)-5:])
		}
		d.rec.Boards = append(d.rec.Boards, Board{ID: id, Cards: five})
	}

	k := 0
	for _, street := range h.AllStreets {
		if street == hand.BlindsAntes {
			continue
		}
		if k < len(d.rec.StreetPots) {
			d.rec.StreetPots[k] = hand.Cents(h.Pot.StreetTotals[street])
		}
		k++
	}
	d.rec.FinalPot = hand.Cents(h.Pot.CommittedTotal().Add(h.Pot.CommonTotal()))

	d.playersAtStreets()
	d.streetRaises()
}

// streetRaises counts bets, raises and completes on each betting round.
func (d *derivation) streetRaises() {
	for n := range d.rec.StreetRaises {
		for _, a := range d.streetActions(n + 1) {
			if a.Kind.Aggressive() {
				d.rec.StreetRaises[n]++
			}
		}
	}
}

// runStreet names a street of the n-th run-out, e.g. FLOP2.
func runStreet(s hand.Street, n int) string {
	return string(s) + strconv.Itoa(n)
}

func placeholders(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = poker.Placeholder
	}
	return out
}

func padRight(cards []string) []string {
	return append(append([]string(nil), cards...), placeholders(5)...)
}

func encodeFive(cards []string) [5]int {
	var out [5]int
	for i := 0; i < 5 && i < len(cards); i++ {
		out[i] = poker.EncodeCard(cards[i])
	}
	return out
}
