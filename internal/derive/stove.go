package derive

import (
	"strings"

	"github.com/lox/handstats/internal/hand"
)

// streetBoards is the board (or run-out boards) visible on one street.
type streetBoards struct {
	boards [][]string
	allIn  bool
}

// streetBoardMap builds the boards per street. A hold'em street with no
// action after a showdown was reached marks it and the street before as
// all-in.
func (d *derivation) streetBoardMap() map[hand.Street]*streetBoards {
	h := d.h
	streets := h.AllStreets[1:]
	out := make(map[hand.Street]*streetBoards, len(streets))

	if d.cat.Base != hand.Hold {
		for _, s := range streets {
			if _, ok := d.cat.Streets[s]; ok {
				out[s] = &streetBoards{boards: [][]string{nil}}
			}
		}
		return out
	}

	showdown := false
	for _, name := range d.order {
		showdown = showdown || d.players[name].SawShowdown
	}

	var main []string
	for idx, s := range streets {
		var board []string
		for _, prev := range streets[:idx+1] {
			board = append(board, h.Board[string(prev)]...)
		}
		out[s] = &streetBoards{boards: [][]string{board}}
		main = append(main, h.Board[string(s)]...)
		if len(h.Actions[s]) == 0 && showdown {
			if idx > 0 {
				out[streets[idx-1]].allIn = true
			}
			out[s].allIn = true
		}
	}

	// run-outs regroup by how many board cards they reach
	runs := make([][][]string, 3)
	for i := 1; i <= h.RunItTimes; i++ {
		var run []string
		for _, s := range h.CommunityStreets {
			cards, ok := h.Board[runStreet(s, i)]
			if !ok {
				continue
			}
			run = append(run, cards...)
			full := append(append([]string(nil), main...), run...)
			if k := len(full) - 3; k >= 0 && k < len(runs) {
				runs[k] = append(runs[k], full)
			}
		}
	}
	for k, boards := range runs {
		if len(boards) > 0 && k+1 < len(streets) {
			out[streets[k+1]].boards = boards
		}
	}
	return out
}

// assembleStove records a best-hand sample for every player, street and
// board the player's cards can be evaluated on, then resolves all-in EV
// for hold'em games.
func (d *derivation) assembleStove() {
	h := d.h
	cat := d.cat
	boards := d.streetBoardMap()
	hold := cat.Base == hand.Hold
	sides := stoveSides[cat.HiLo]
	holes := make(map[string][]string, len(d.order))

	for _, name := range d.order {
		s := d.players[name]
		if cat.EvalGame == "" {
			rec := StoveRecord{Player: name, HiLo: sides[0].label, RankID: 1}
			if s.SawShowdown || s.Showed {
				if str, ok := h.ShowdownStrings[name]; ok {
					s.HandString = &str
				}
				rec.Street = cat.Streets[cat.Last]
			}
			d.stove = append(d.stove, rec)
			continue
		}

		hcs := h.JoinHoleCards(name)
		holes[name] = window(hcs, cat.holeRange(-1))
		for _, street := range h.AllStreets[1:] {
			b, ok := boards[street]
			if !ok {
				continue
			}
			id := cat.Streets[street]
			seen := id == 0 || (id < len(s.Seen) && s.Seen[id])
			if !((name == h.Hero && seen) || (s.Showed && seen) || s.SawShowdown) {
				continue
			}
			for n, board := range b.boards {
				d.stoveSample(name, hcs, id, boardID(n, len(b.boards)), board, hold, sides)
			}
		}
	}

	if hold && cat.EvalGame != "" {
		d.allInEV(boards, holes)
	}
}

func (d *derivation) stoveSample(name string, hcs []string, street, boardID int, board []string, hold bool, sides []sideKey) {
	cards := window(hcs, d.cat.holeRange(street))
	var bcards []string
	if d.cat.Omaha() {
		bcards = known(board)
	} else {
		cards = append(cards, known(board)...)
	}

	complete := !hasPlaceholder(cards) && !hasPlaceholder(bcards)
	if !complete || !((hold && len(board) >= 3) || (!hold && len(cards) >= 5)) {
		d.stove = append(d.stove, StoveRecord{Player: name, Street: street, BoardID: boardID, HiLo: "n", RankID: 1})
		return
	}
	for _, side := range sides {
		rec := StoveRecord{Player: name, Street: street, BoardID: boardID, HiLo: side.label, RankID: 1}
		value, rank, err := d.eval.BestHand(side.side, cards, bcards)
		if err != nil {
			d.logger.Error("Best hand evaluation failed", "player", name, "street", street, "err", err)
			rec.HiLo = "n"
			d.stove = append(d.stove, rec)
			continue
		}
		rec.RankID = RankID(rank.Category)
		rec.Value = value
		rec.Description = rank.Description
		if rank.Category != "Nothing" {
			var b strings.Builder
			for _, c := range rank.Cards {
				if len(c) > 0 {
					b.WriteByte(c[0])
				}
			}
			rec.Cards = b.String()
		}
		d.stove = append(d.stove, rec)
	}
}

// boardID is 0 for a single board and 1..n for run-outs.
func boardID(n, boards int) int {
	if boards > 1 {
		return n + 1
	}
	return 0
}
