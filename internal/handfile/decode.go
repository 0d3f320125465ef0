// Package handfile reads hands written in a small TOML format. It is the
// input path for the CLI and the batch runner; site parsers that produce
// hand.Hand directly do not need it.
package handfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/lox/handstats/internal/hand"
)

// DecodeFile reads one hand file from disk.
func DecodeFile(path string) (*hand.Hand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	h, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	h.Source = path
	return h, nil
}

// Decode parses a TOML hand file and converts it into a hand.Hand.
func Decode(r io.Reader) (*hand.Hand, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys: %v", undecoded)
	}
	return f.ToHand()
}

// ToHand converts the file form into a hand.Hand. The pot structure is
// rebuilt from the actions.
func (f *File) ToHand() (*hand.Hand, error) {
	if f.ID == "" {
		return nil, fmt.Errorf("missing hand id")
	}
	base := hand.Base(strings.ToLower(f.Base))
	if base == "" {
		base = hand.Hold
	}
	layout := hand.DefaultLayout(base, f.Draws)

	h := &hand.Hand{
		HandID:    f.ID,
		TableName: f.Table,
		SiteName:  f.Site,
		TourneyID: f.Tourney,
		StartTime: f.StartTime,
		GameType: hand.GameType{
			Type:      defaultString(f.Type, "ring"),
			Base:      base,
			Category:  f.Category,
			LimitType: defaultString(f.Limit, "nl"),
			Currency:  defaultString(f.Currency, "USD"),
			Split:     f.Split,
		},
		Hero:             f.Hero,
		ActionStreets:    layout.Action,
		HoleStreets:      layout.Hole,
		CommunityStreets: layout.Community,
		AllStreets:       layout.All,
		Actions:          make(map[hand.Street][]hand.Action, len(layout.Action)),
		Board:            make(map[string][]string, len(f.Board)),
		HoleCards:        make(map[string][]string, len(f.Players)),
		Rake:             f.Rake,
		Sitout:           toSet(f.Sitout),
		Shown:            toSet(f.Shown),
		RunItTimes:       f.RunItTimes,
		CashedOut:        f.CashedOut,
		BombPot:          f.BombPot,
		EndBounty:        make(map[string]decimal.Decimal),
		ShowdownStrings:  make(map[string]string),
	}

	bySeat := make(map[int]string, len(f.Players))
	for _, s := range f.Players {
		h.Players = append(h.Players, hand.Player{
			Seat:   s.Seat,
			Name:   s.Name,
			Stack:  s.Stack,
			Bounty: s.Bounty,
		})
		bySeat[s.Seat] = s.Name
		if len(s.Cards) > 0 {
			h.HoleCards[s.Name] = NormalizeCards(s.Cards)
		}
		if s.EndBounty != nil {
			h.EndBounty[s.Name] = *s.EndBounty
		}
		if s.Showdown != "" {
			h.ShowdownStrings[s.Name] = s.Showdown
		}
	}
	sort.SliceStable(h.Players, func(i, j int) bool { return h.Players[i].Seat < h.Players[j].Seat })

	for street, cards := range f.Board {
		h.Board[strings.ToUpper(street)] = NormalizeCards(cards)
	}

	known := make(map[hand.Street]bool, len(layout.Action))
	for _, s := range layout.Action {
		known[s] = true
	}
	for name := range f.Actions {
		if !known[hand.Street(strings.ToUpper(name))] {
			return nil, fmt.Errorf("actions on unknown street %q for %s games", name, base)
		}
	}

	p := newLineParser(bySeat)
	for i, street := range layout.Action {
		// blinds carry into the first betting round
		if i > 1 {
			p.newStreet()
		}
		lines := f.Actions[string(street)]
		if lines == nil {
			lines = f.Actions[strings.ToLower(string(street))]
		}
		actions := make([]hand.Action, 0, len(lines))
		for n, line := range lines {
			a, err := p.parse(line)
			if err != nil {
				return nil, fmt.Errorf("%s action %d: %w", street, n+1, err)
			}
			actions = append(actions, a)
		}
		h.Actions[street] = actions
	}

	for _, c := range f.Collect {
		h.Collectees = append(h.Collectees, hand.Collectee{Player: c.Player, Amount: c.Amount})
	}

	if err := h.Validate(); err != nil {
		return nil, err
	}

	h.Pot = hand.BuildPot(h, f.STP)
	if f.TotalPot != nil {
		h.TotalPot = *f.TotalPot
	} else {
		h.TotalPot = h.Pot.CommittedTotal().Add(h.Pot.CommonTotal()).Add(f.STP)
	}
	return h, nil
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
