package derive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/handstats/internal/hand"
)

// ErrUnknownCategory is returned for a game category with no table entry.
var ErrUnknownCategory = errors.New("unknown game category")

// Side is the half of the pot a hand is evaluated for.
type Side string

const (
	SideHi  Side = "hi"
	SideLow Side = "low"
	// SideRazz is ace-to-five low with no qualifier. Winners reports it
	// under SideLow.
	SideRazz Side = "razz"
)

// HiLo modes of the category table.
const (
	hiOnly   = "h"
	lowOnly  = "l"
	hiAndLow = "s"
	razzLow  = "r"
)

type sideKey struct {
	label string // stove label, "h" or "l"
	side  Side
}

var stoveSides = map[string][]sideKey{
	hiOnly:   {{"h", SideHi}},
	lowOnly:  {{"l", SideLow}},
	hiAndLow: {{"h", SideHi}, {"l", SideLow}},
	razzLow:  {{"l", SideRazz}},
}

var potSides = map[string][]Side{
	hiOnly:   {SideHi},
	lowOnly:  {SideLow},
	razzLow:  {SideLow},
	hiAndLow: {SideHi, SideLow},
}

type cardRange struct{ lo, hi int }

// Category describes how a game is dealt and evaluated.
type Category struct {
	Name string
	Base hand.Base
	// EvalGame names the evaluator game; empty when none exists.
	EvalGame string
	HiLo     string
	Streets  map[hand.Street]int
	Last     hand.Street
	// holes gives the hole-card window per street id. Hold'em-family games
	// only ever use the last entry.
	holes []cardRange
}

// Omaha reports whether board cards are passed to the evaluator separately.
func (c Category) Omaha() bool { return strings.Contains(c.EvalGame, "omaha") }

func (c Category) holeRange(streetID int) cardRange {
	if c.Base == hand.Hold || streetID < 0 || streetID >= len(c.holes) {
		return c.holes[len(c.holes)-1]
	}
	return c.holes[streetID]
}

var (
	holdStreets = map[hand.Street]int{hand.Preflop: 0, hand.Flop: 1, hand.Turn: 2, hand.River: 3}
	studStreets = map[hand.Street]int{hand.Third: 0, hand.Fourth: 1, hand.Fifth: 2, hand.Sixth: 3, hand.Seventh: 4}
	oneDraw     = map[hand.Street]int{hand.Deal: 0, hand.DrawOne: 1}
	threeDraw   = map[hand.Street]int{hand.Deal: 0, hand.DrawOne: 1, hand.DrawTwo: 2, hand.DrawThree: 3}

	studHoles      = []cardRange{{0, 3}, {0, 4}, {0, 5}, {0, 6}, {0, 7}}
	oneDrawHoles   = []cardRange{{0, 5}, {5, 10}}
	threeDrawHoles = []cardRange{{0, 5}, {5, 10}, {10, 15}, {15, 20}}
)

var categories = map[string]Category{
	"holdem":    {Base: hand.Hold, EvalGame: "holdem", HiLo: hiOnly, Streets: holdStreets, Last: hand.River, holes: []cardRange{{0, 2}}},
	"omahahi":   {Base: hand.Hold, EvalGame: "omaha", HiLo: hiOnly, Streets: holdStreets, Last: hand.River, holes: []cardRange{{0, 4}}},
	"omahahilo": {Base: hand.Hold, EvalGame: "omaha8", HiLo: hiAndLow, Streets: holdStreets, Last: hand.River, holes: []cardRange{{0, 4}}},
	"5_omahahi": {Base: hand.Hold, EvalGame: "omaha5", HiLo: hiOnly, Streets: holdStreets, Last: hand.River, holes: []cardRange{{0, 5}}},
	"5_omaha8":  {Base: hand.Hold, EvalGame: "omaha58", HiLo: hiAndLow, Streets: holdStreets, Last: hand.River, holes: []cardRange{{0, 5}}},
	"studhi":    {Base: hand.Stud, EvalGame: "7stud", HiLo: hiOnly, Streets: studStreets, Last: hand.Seventh, holes: studHoles},
	"studhilo":  {Base: hand.Stud, EvalGame: "7stud8", HiLo: hiAndLow, Streets: studStreets, Last: hand.Seventh, holes: studHoles},
	"razz":      {Base: hand.Stud, EvalGame: "razz", HiLo: razzLow, Streets: studStreets, Last: hand.Seventh, holes: studHoles},
	"fivedraw":  {Base: hand.Draw, EvalGame: "5draw", HiLo: hiOnly, Streets: oneDraw, Last: hand.DrawOne, holes: oneDrawHoles},
	"27_1draw":  {Base: hand.Draw, HiLo: lowOnly, Streets: oneDraw, Last: hand.DrawOne, holes: oneDrawHoles},
	"27_3draw":  {Base: hand.Draw, HiLo: lowOnly, Streets: threeDraw, Last: hand.DrawThree, holes: threeDrawHoles},
	"badugi":    {Base: hand.Draw, HiLo: lowOnly, Streets: threeDraw, Last: hand.DrawThree, holes: threeDrawHoles},
}

// LookupCategory returns the table entry for a game category.
func LookupCategory(name string) (Category, error) {
	c, ok := categories[name]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	c.Name = name
	return c, nil
}

// Rank ids persisted for each hand category.
var rankIDs = map[string]int{
	"Nothing":  1,
	"NoPair":   2,
	"OnePair":  3,
	"TwoPair":  4,
	"Trips":    5,
	"Straight": 6,
	"Flush":    7,
	"FlHouse":  8,
	"Quads":    9,
	"StFlush":  10,
}

// RankID returns the persisted id for a rank category, 1 when unknown.
func RankID(category string) int {
	if id, ok := rankIDs[category]; ok {
		return id
	}
	return 1
}

// DefaultIterations is the forward-equity sample count per street id; zero
// means exhaustive enumeration.
var DefaultIterations = map[int]int{0: 2000, 1: 5000, 2: 10000, 3: 0}
