package hand

import (
	"github.com/shopspring/decimal"
)

// ActionKind names what a player did.
type ActionKind string

const (
	Ante        ActionKind = "ante"
	SmallBlind  ActionKind = "small blind"
	SecondSB    ActionKind = "secondsb"
	BigBlind    ActionKind = "big blind"
	BothBlinds  ActionKind = "both"
	Calls       ActionKind = "calls"
	Raises      ActionKind = "raises"
	Bets        ActionKind = "bets"
	StandsPat   ActionKind = "stands pat"
	Folds       ActionKind = "folds"
	Checks      ActionKind = "checks"
	Discards    ActionKind = "discards"
	BringIn     ActionKind = "bringin"
	Completes   ActionKind = "completes"
	Straddle    ActionKind = "straddle"
	ButtonBlind ActionKind = "button blind"
	CashOut     ActionKind = "cashout"
	AllIn       ActionKind = "allin"
)

var actionIDs = map[ActionKind]int{
	Ante:        1,
	SmallBlind:  2,
	SecondSB:    3,
	BigBlind:    4,
	BothBlinds:  5,
	Calls:       6,
	Raises:      7,
	Bets:        8,
	StandsPat:   9,
	Folds:       10,
	Checks:      11,
	Discards:    12,
	BringIn:     13,
	Completes:   14,
	Straddle:    15,
	ButtonBlind: 16,
	CashOut:     17,
	AllIn:       18,
}

// ID returns the persisted action id, or false for an unknown kind.
func (k ActionKind) ID() (int, bool) {
	id, ok := actionIDs[k]
	return id, ok
}

// Aggressive reports whether the kind opens or raises the betting.
func (k ActionKind) Aggressive() bool {
	return k == Bets || k == Raises || k == Completes
}

// Action is one entry in a street's ordered action list.
type Action struct {
	Player string
	Kind   ActionKind

	// Amount is the chips put in by this action; for raises it is the
	// raise increment.
	Amount decimal.Decimal
	// RaiseTo and Called apply to raises and completes.
	RaiseTo decimal.Decimal
	Called  decimal.Decimal

	// Discarded and Cards apply to discards.
	Discarded int
	Cards     []string

	AllIn bool
}
