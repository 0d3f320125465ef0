package handfile

import (
	"time"

	"github.com/shopspring/decimal"
)

// File is one hand in TOML form.
//
// Actions are written per street as short lines that reference players by
// seat, in the style of PHH:
//
//	p1 small-blind 0.50
//	p3 raises 2.00 to 3.00
//	p2 calls 1.50 allin
//	p4 discards 2 [Kd 7c]
type File struct {
	ID         string    `toml:"hand"`
	Table      string    `toml:"table,omitempty"`
	Site       string    `toml:"site,omitempty"`
	Tourney    string    `toml:"tourney,omitempty"`
	StartTime  time.Time `toml:"start_time"`
	Type       string    `toml:"type,omitempty"`
	Base       string    `toml:"base,omitempty"`
	Category   string    `toml:"category"`
	Limit      string    `toml:"limit,omitempty"`
	Currency   string    `toml:"currency,omitempty"`
	Split      bool      `toml:"split,omitempty"`
	Draws      int       `toml:"draws,omitempty"`
	Hero       string    `toml:"hero,omitempty"`
	RunItTimes int       `toml:"run_it_times,omitempty"`
	CashedOut  bool      `toml:"cashed_out,omitempty"`

	Rake     decimal.Decimal  `toml:"rake"`
	TotalPot *decimal.Decimal `toml:"total_pot,omitempty"`
	STP      decimal.Decimal  `toml:"stp"`
	BombPot  decimal.Decimal  `toml:"bomb_pot"`

	Players []Seat              `toml:"players"`
	Board   map[string][]string `toml:"board"`
	Actions map[string][]string `toml:"actions"`
	Collect []Collect           `toml:"collect"`
	Sitout  []string            `toml:"sitout,omitempty"`
	Shown   []string            `toml:"shown,omitempty"`
}

// Seat is a player line.
type Seat struct {
	Seat      int              `toml:"seat"`
	Name      string           `toml:"name"`
	Stack     decimal.Decimal  `toml:"stack"`
	Bounty    *decimal.Decimal `toml:"bounty,omitempty"`
	EndBounty *decimal.Decimal `toml:"end_bounty,omitempty"`
	Cards     []string         `toml:"cards,omitempty"`
	Showdown  string           `toml:"showdown,omitempty"`
}

// Collect is a pot collection.
type Collect struct {
	Player string          `toml:"player"`
	Amount decimal.Decimal `toml:"amount"`
}
