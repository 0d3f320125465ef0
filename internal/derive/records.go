package derive

import (
	"encoding/json"
	"fmt"
	"time"
)

// Board is one run-out of a multi-board hand.
type Board struct {
	ID    int    `json:"boardId"`
	Cards [5]int `json:"cards"`
}

// HandRecord is the hand-level aggregate. Money is in cents, cards use the
// persisted 1..52 encoding with 0 for a missing card.
type HandRecord struct {
	SiteHandNo string
	TableName  string
	TourneyID  string
	StartTime  time.Time
	// ImportTime is left for the caller to stamp.
	ImportTime time.Time

	Seats       int
	HeroSeat    int
	MaxPosition int

	BoardCards [5]int
	StreetPots [5]int64
	FinalPot   int64
	BombPot    int64
	TotalPot   int64
	Rake       int64

	PlayersVPI        int
	PlayersAtStreet   [5]int // 1..4
	PlayersAtShowdown int
	StreetRaises      [5]int

	Boards     []Board
	RunItTwice bool
	// Texture is reserved and never computed.
	Texture *string
}

// Columns flattens the record into the persisted column names.
func (r *HandRecord) Columns() map[string]any {
	c := map[string]any{
		"siteHandNo":        r.SiteHandNo,
		"tableName":         r.TableName,
		"tourneyId":         r.TourneyID,
		"startTime":         r.StartTime,
		"importTime":        r.ImportTime,
		"seats":             r.Seats,
		"heroSeat":          r.HeroSeat,
		"maxPosition":       r.MaxPosition,
		"finalPot":          r.FinalPot,
		"bombPot":           r.BombPot,
		"totalPot":          r.TotalPot,
		"rake":              r.Rake,
		"playersVpi":        r.PlayersVPI,
		"playersAtShowdown": r.PlayersAtShowdown,
		"boards":            r.Boards,
		"runItTwice":        r.RunItTwice,
		"texture":           r.Texture,
	}
	for i, card := range r.BoardCards {
		c[fmt.Sprintf("boardcard%d", i+1)] = card
	}
	for i := 0; i < 5; i++ {
		c[fmt.Sprintf("street%dPot", i)] = r.StreetPots[i]
		c[fmt.Sprintf("street%dRaises", i)] = r.StreetRaises[i]
	}
	for i := 1; i < 5; i++ {
		c[fmt.Sprintf("playersAtStreet%d", i)] = r.PlayersAtStreet[i]
	}
	return c
}

// MarshalJSON encodes the flattened columns.
func (r HandRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Columns())
}

// ActionRecord is one entry of the flattened action log.
type ActionRecord struct {
	ActionNo       int      `json:"actionNo"`
	StreetActionNo int      `json:"streetActionNo"`
	Street         int      `json:"street"`
	ActionID       int      `json:"actionId"`
	Player         string   `json:"player"`
	Amount         int64    `json:"amount"`
	RaiseTo        int64    `json:"raiseTo"`
	AmountCalled   int64    `json:"amountCalled"`
	NumDiscarded   int      `json:"numDiscarded"`
	CardsDiscarded []string `json:"cardsDiscarded"`
	AllIn          bool     `json:"allIn"`
}

// PotRecord is one player's share of one pot slice. A slice is keyed by
// (PotID, BoardID, HiLo).
type PotRecord struct {
	PotID     int    `json:"potId"`
	BoardID   int    `json:"boardId"`
	HiLo      string `json:"hiLo"`
	Player    string `json:"player"`
	Pot       int64  `json:"pot"`
	Collected int64  `json:"collected"`
	Rake      int64  `json:"rake"`
}

// StoveRecord is a best-hand sample for one player on one street and board.
type StoveRecord struct {
	Player      string `json:"player"`
	Street      int    `json:"street"`
	BoardID     int    `json:"boardId"`
	HiLo        string `json:"hiLo"`
	RankID      int    `json:"rankId"`
	Value       int    `json:"value"`
	Cards       string `json:"cards,omitempty"`
	Description string `json:"description,omitempty"`
	// Equity is in tenths of a percent, filled in by all-in EV.
	Equity int `json:"ev"`
}

// Result is everything derived from one hand.
type Result struct {
	Hand    HandRecord     `json:"hand"`
	Players []PlayerStats  `json:"players"`
	Actions []ActionRecord `json:"actions"`
	Pots    []PotRecord    `json:"pots,omitempty"`
	Stove   []StoveRecord  `json:"stove,omitempty"`
}

// Player returns the stats for a player by name.
func (r *Result) Player(name string) (*PlayerStats, bool) {
	for i := range r.Players {
		if r.Players[i].Name == name {
			return &r.Players[i], true
		}
	}
	return nil, false
}
