// Package hand defines the parsed hand that the derivation engine consumes.
// A Hand is produced by a site parser (or the TOML hand-file decoder) and is
// treated as immutable by everything downstream.
package hand

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// GameType describes the game being played.
type GameType struct {
	Type      string // "ring" or "tour"
	Base      Base
	Category  string // e.g. "holdem", "omahahilo", "razz"
	LimitType string // "nl", "pl", "fl"
	Currency  string // "USD", "play", "T$", ...
	Split     bool
}

// Player is a seated player at the start of the hand.
type Player struct {
	Seat   int
	Name   string
	Stack  decimal.Decimal
	Bounty *decimal.Decimal
}

// Collectee is one player's final collection from the pot.
type Collectee struct {
	Player string
	Amount decimal.Decimal
}

// Hand is a fully parsed hand.
type Hand struct {
	HandID    string
	TableName string
	SiteName  string
	TourneyID string
	StartTime time.Time
	// Source is where the hand was read from, for error reports.
	Source string

	GameType GameType
	Players  []Player
	Hero     string

	ActionStreets    []Street
	HoleStreets      []Street
	CommunityStreets []Street
	AllStreets       []Street

	Actions map[Street][]Action
	// Board maps a street name to its cards. Run-it-multiple boards use
	// numbered keys such as "FLOP1" and "TURN2".
	Board map[string][]string
	// HoleCards holds each player's cards joined across hole streets.
	HoleCards map[string][]string

	Pot        Pot
	Collectees []Collectee
	Rake       decimal.Decimal
	TotalPot   decimal.Decimal

	Sitout map[string]bool
	Shown  map[string]bool

	RunItTimes int
	CashedOut  bool
	BombPot    decimal.Decimal

	EndBounty       map[string]decimal.Decimal
	ShowdownStrings map[string]string
}

// Player returns the seated player with the given name.
func (h *Hand) Player(name string) (Player, bool) {
	for _, p := range h.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

// Collected returns the amount a player collected.
func (h *Hand) Collected(name string) (decimal.Decimal, bool) {
	for _, c := range h.Collectees {
		if c.Player == name {
			return c.Amount, true
		}
	}
	return decimal.Zero, false
}

// JoinHoleCards returns a player's hole cards in dealing order.
func (h *Hand) JoinHoleCards(name string) []string {
	cards := h.HoleCards[name]
	out := make([]string, len(cards))
	copy(out, cards)
	return out
}

// StreetActions returns the actions of an action street by its index in
// ActionStreets, or nil when the hand has no such street.
func (h *Hand) StreetActions(idx int) []Action {
	if idx < 0 || idx >= len(h.ActionStreets) {
		return nil
	}
	return h.Actions[h.ActionStreets[idx]]
}

var (
	ErrNoPlayers     = errors.New("hand has no players")
	ErrDuplicateSeat = errors.New("duplicate seat")
	ErrDuplicateName = errors.New("duplicate player name")
	ErrUnknownActor  = errors.New("action by unknown player")
	ErrNoStreets     = errors.New("hand has no action streets")
)

// Validate checks the structural contract the derivation engine relies on.
func (h *Hand) Validate() error {
	if len(h.Players) == 0 {
		return ErrNoPlayers
	}
	if len(h.ActionStreets) < 2 {
		return ErrNoStreets
	}
	seats := make(map[int]string, len(h.Players))
	names := make(map[string]bool, len(h.Players))
	for _, p := range h.Players {
		if other, ok := seats[p.Seat]; ok {
			return fmt.Errorf("%w: seat %d held by %q and %q", ErrDuplicateSeat, p.Seat, other, p.Name)
		}
		seats[p.Seat] = p.Name
		if names[p.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, p.Name)
		}
		names[p.Name] = true
	}
	for _, street := range h.ActionStreets {
		for _, a := range h.Actions[street] {
			if !names[a.Player] {
				return fmt.Errorf("%w: %q on %s", ErrUnknownActor, a.Player, street)
			}
		}
	}
	for _, c := range h.Collectees {
		if !names[c.Player] {
			return fmt.Errorf("%w: %q collected", ErrUnknownActor, c.Player)
		}
	}
	return nil
}
