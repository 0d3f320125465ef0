package handfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lox/handstats/internal/hand"
)

var kindNames = map[string]hand.ActionKind{
	"ante":         hand.Ante,
	"small-blind":  hand.SmallBlind,
	"secondsb":     hand.SecondSB,
	"big-blind":    hand.BigBlind,
	"both":         hand.BothBlinds,
	"calls":        hand.Calls,
	"raises":       hand.Raises,
	"bets":         hand.Bets,
	"stands-pat":   hand.StandsPat,
	"folds":        hand.Folds,
	"checks":       hand.Checks,
	"discards":     hand.Discards,
	"bringin":      hand.BringIn,
	"completes":    hand.Completes,
	"straddle":     hand.Straddle,
	"button-blind": hand.ButtonBlind,
	"cashout":      hand.CashOut,
}

var errBadAction = errors.New("malformed action line")

// lineParser tracks per-street contributions so that raise lines only need
// the increment and the total.
type lineParser struct {
	bySeat map[int]string
	names  map[string]bool
	street map[string]decimal.Decimal
}

func newLineParser(bySeat map[int]string) *lineParser {
	p := &lineParser{
		bySeat: bySeat,
		names:  make(map[string]bool, len(bySeat)),
		street: make(map[string]decimal.Decimal),
	}
	for _, n := range bySeat {
		p.names[n] = true
	}
	return p
}

func (p *lineParser) newStreet() {
	p.street = make(map[string]decimal.Decimal)
}

func (p *lineParser) player(tok string) (string, error) {
	if p.names[tok] {
		return tok, nil
	}
	if len(tok) > 1 && tok[0] == 'p' {
		if seat, err := strconv.Atoi(tok[1:]); err == nil {
			if name, ok := p.bySeat[seat]; ok {
				return name, nil
			}
		}
	}
	return "", fmt.Errorf("%w: unknown player %q", errBadAction, tok)
}

func (p *lineParser) parse(line string) (hand.Action, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return hand.Action{}, fmt.Errorf("%w: %q", errBadAction, line)
	}
	if fields[len(fields)-1] == "allin" {
		fields = fields[:len(fields)-1]
		a, err := p.parse(strings.Join(fields, " "))
		a.AllIn = true
		return a, err
	}

	name, err := p.player(fields[0])
	if err != nil {
		return hand.Action{}, err
	}
	kind, ok := kindNames[fields[1]]
	if !ok {
		return hand.Action{}, fmt.Errorf("%w: unknown action %q", errBadAction, fields[1])
	}
	a := hand.Action{Player: name, Kind: kind}
	args := fields[2:]

	switch kind {
	case hand.Folds, hand.Checks, hand.StandsPat:
		if len(args) != 0 {
			return a, fmt.Errorf("%w: %s takes no amount", errBadAction, fields[1])
		}
	case hand.Raises, hand.Completes:
		// raises <by> to <to>
		if len(args) != 3 || args[1] != "to" {
			return a, fmt.Errorf("%w: want %q", errBadAction, fields[1]+" <by> to <total>")
		}
		by, err := decimal.NewFromString(args[0])
		if err != nil {
			return a, fmt.Errorf("%w: %v", errBadAction, err)
		}
		to, err := decimal.NewFromString(args[2])
		if err != nil {
			return a, fmt.Errorf("%w: %v", errBadAction, err)
		}
		called := to.Sub(by).Sub(p.street[name])
		if called.IsNegative() {
			called = decimal.Zero
		}
		a.Amount, a.RaiseTo, a.Called = by, to, called
		p.street[name] = to
	case hand.Discards:
		if len(args) == 0 {
			return a, fmt.Errorf("%w: discards needs a count", errBadAction)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return a, fmt.Errorf("%w: %v", errBadAction, err)
		}
		a.Discarded = n
		for _, c := range args[1:] {
			c = strings.Trim(c, "[],")
			if c != "" {
				a.Cards = append(a.Cards, NormalizeCard(c))
			}
		}
	default:
		if len(args) != 1 {
			return a, fmt.Errorf("%w: %s takes one amount", errBadAction, fields[1])
		}
		amt, err := decimal.NewFromString(args[0])
		if err != nil {
			return a, fmt.Errorf("%w: %v", errBadAction, err)
		}
		a.Amount = amt
		if kind != hand.Ante && kind != hand.SecondSB {
			p.street[name] = p.street[name].Add(amt)
		}
	}
	return a, nil
}
