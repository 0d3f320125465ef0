package derive

import (
	"sort"

	"github.com/lox/handstats/internal/hand"
	"github.com/shopspring/decimal"
)

var (
	cent    = decimal.New(1, -2)
	hundred = decimal.NewFromInt(100)
)

// award is one player's share of one pot slice.
type award struct {
	potID   int
	boardID int
	hiLo    Side
	amount  decimal.Decimal
	peers   []string
	// mod marks a share that took an odd cent.
	mod bool
}

// assemblePots re-awards side pots, split pots and run-outs slice by slice
// and attributes rake to each slice.
func (d *derivation) assemblePots() {
	h := d.h
	if d.cat.EvalGame == "" {
		return
	}

	showdown := false
	for _, name := range d.order {
		s := d.players[name]
		if s.SawShowdown {
			showdown = true
			if s.Position == PositionAnteAllIn && s.Winnings > 0 {
				d.logger.Debug("Skipping pot awards for ante all-in winner", "player", name)
				return
			}
		}
	}
	if len(h.Pot.Pots) <= 1 && !(showdown && (d.cat.HiLo == hiAndLow || h.RunItTimes >= 2)) {
		return
	}

	factor := d.moneyFactor()
	if !h.CashedOut {
		for _, name := range d.order {
			d.players[name].Rake = 0
		}
		d.rec.Rake = 0
	}

	ordered := append([]string(nil), d.order...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return d.players[ordered[i]].Position.awardOrder() > d.players[ordered[j]].Position.awardOrder()
	})

	awards := make(map[string][]award)
	totals := make(map[string]decimal.Decimal)
	boards := d.boardsList()
	sides := potSides[d.cat.HiLo]

	for potIdx, pot := range h.Pot.Pots {
		amount := pot.Amount
		if potIdx == 0 {
			amount = amount.Add(h.Pot.CommonTotal()).Add(h.Pot.STP)
		}
		bid := 0
		for _, board := range boards {
			if h.RunItTimes >= 2 {
				bid++
			}
			potBoard := truncTo(amount.Div(decimal.NewFromInt(int64(len(boards)))), factor)
			if bid <= 1 {
				potBoard = potBoard.Add(amount.Sub(potBoard.Mul(decimal.NewFromInt(int64(len(boards))))))
			}

			holders, winners := d.potWinners(pot.Players, board, sides)
			for _, side := range sides {
				idx := winners[side]
				if len(idx) == 0 {
					continue
				}
				potHiLo := truncTo(potBoard.Div(decimal.NewFromInt(int64(len(winners)))), factor)
				if len(winners) == 1 || side == SideHi {
					potHiLo = potHiLo.Add(potBoard.Sub(potHiLo.Mul(decimal.NewFromInt(int64(len(winners))))))
				}
				potSplit := truncTo(potHiLo.Div(decimal.NewFromInt(int64(len(idx)))), factor)
				modSplit := potHiLo.Sub(potSplit.Mul(decimal.NewFromInt(int64(len(idx)))))

				var names []string
				if len(holders) == 0 {
					names = []string{d.fallbackCollector(pot.Players)}
				} else {
					for _, w := range idx {
						if w >= 0 && w < len(holders) {
							names = append(names, holders[w])
						}
					}
				}
				unit := cent.Mul(hundred.Div(decimal.NewFromInt(factor)))
				for _, name := range ordered {
					if !contains(names, name) {
						continue
					}
					share := potSplit
					if modSplit.IsPositive() {
						share = share.Add(unit)
						modSplit = modSplit.Sub(unit)
					}
					totals[name] = totals[name].Add(share)
					awards[name] = append(awards[name], award{
						potID:   potIdx,
						boardID: bid,
						hiLo:    side,
						amount:  share,
						peers:   remove(names, name),
						mod:     share.GreaterThan(potSplit),
					})
				}
			}
		}
	}

	d.reconcileRake(awards, totals)
}

// fallbackCollector picks who takes a pot when nobody's cards are known:
// the first contender who collected anything, else the first contender.
func (d *derivation) fallbackCollector(contenders []string) string {
	for _, name := range contenders {
		for _, c := range d.h.Collectees {
			if c.Player == name {
				return name
			}
		}
	}
	return contenders[0]
}

// potWinners evaluates the known hands in a pot and returns the players
// holding them with the winning indices per side.
func (d *derivation) potWinners(contenders []string, board []string, sides []Side) ([]string, map[Side][]int) {
	cat := d.cat
	var holders []string
	var pockets [][]string
	var bcards []string
	if cat.Omaha() {
		bcards = known(board)
	}
	for _, name := range contenders {
		holes := window(d.h.JoinHoleCards(name), cat.holeRange(-1))
		if len(holes) == 0 {
			continue
		}
		if !cat.Omaha() && cat.Base == hand.Hold {
			holes = append(holes, known(board)...)
		}
		if hasPlaceholder(holes) || hasPlaceholder(bcards) {
			continue
		}
		pockets = append(pockets, holes)
		holders = append(holders, name)
	}

	fallback := map[Side][]int{sides[0]: {0}}
	if len(pockets) < 2 {
		return holders, fallback
	}
	win, err := d.eval.Winners(cat.EvalGame, pockets, bcards)
	if err != nil {
		d.logger.Error("Winner evaluation failed", "err", err)
		return holders, fallback
	}
	return holders, win
}

// reconcileRake turns each player's awards and actual collection into
// per-slice pot records.
func (d *derivation) reconcileRake(awards map[string][]award, totals map[string]decimal.Decimal) {
	h := d.h
	for _, name := range d.order {
		info := awards[name]
		collected, ok := h.Collected(name)
		if !ok || collected.IsZero() || len(info) == 0 {
			continue
		}
		total := totals[name]
		remainingAward, remainingCollected := total, collected

		for i, item := range info {
			var share, got, rake decimal.Decimal
			var peers []decimal.Decimal
			for _, peer := range item.peers {
				if c, ok := h.Collected(peer); ok && len(awards[peer]) == 1 {
					peers = append(peers, c)
				}
			}
			switch {
			case len(info) == 1:
				share, got = item.amount, collected
				rake = share.Sub(got)
			case i == len(info)-1:
				share, got = remainingAward, remainingCollected
				rake = share.Sub(got)
			case len(peers) > 0 && !item.mod:
				share = item.amount
				got = decimal.Min(share, peers...)
				rake = share.Sub(got)
			default:
				share = item.amount
				if !total.IsZero() {
					rake = total.Sub(collected).Mul(share).Div(total)
					if d.rakeRoundDown {
						rake = rake.RoundDown(2)
					} else {
						rake = rake.RoundBank(2)
					}
				}
				got = share.Sub(rake)
			}
			remainingAward = remainingAward.Sub(share)
			remainingCollected = remainingCollected.Sub(got)

			rec := PotRecord{
				PotID:     item.potID,
				BoardID:   item.boardID,
				HiLo:      string(item.hiLo)[:1],
				Player:    name,
				Pot:       truncCents(item.amount),
				Collected: truncCents(got),
				Rake:      truncCents(rake),
			}
			d.pots = append(d.pots, rec)
			if !h.CashedOut {
				d.players[name].Rake += rec.Rake
				d.rec.Rake += rec.Rake
			}
		}
	}
	d.logger.Debug("Pots awarded", "slices", len(d.pots), "rake", d.rec.Rake)
}

// moneyFactor is 1 when every pot is in whole units of a tournament or
// play-money currency, 100 otherwise.
func (d *derivation) moneyFactor() int64 {
	g := d.h.GameType
	if g.Type != "tour" && !(g.Type == "ring" && g.Currency == "play") {
		return 100
	}
	for _, pot := range d.h.Pot.Pots {
		if !pot.Amount.Equal(pot.Amount.Truncate(0)) {
			return 100
		}
	}
	return 1
}

// truncTo truncates v to 1/factor units.
func truncTo(v decimal.Decimal, factor int64) decimal.Decimal {
	f := decimal.NewFromInt(factor)
	return v.Mul(f).Truncate(0).Div(f)
}

func truncCents(v decimal.Decimal) int64 {
	return v.Mul(hundred).Truncate(0).IntPart()
}
