package derive

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lox/handstats/poker"
)

// Position is a player's place relative to the button. Zero is the button
// and numbers grow away from it; the blinds use sentinels.
type Position int

const (
	PositionSmallBlind Position = -1
	PositionBigBlind   Position = -2
	// PositionAnteAllIn is the default for players who never acted on the
	// first betting round, usually because an ante put them all in.
	PositionAnteAllIn Position = 9
)

func (p Position) String() string {
	switch p {
	case PositionSmallBlind:
		return "S"
	case PositionBigBlind:
		return "B"
	}
	return strconv.Itoa(int(p))
}

// MarshalJSON writes blinds as "S"/"B" and everything else as a number.
func (p Position) MarshalJSON() ([]byte, error) {
	if p < 0 {
		return json.Marshal(p.String())
	}
	return json.Marshal(int(p))
}

// awardOrder ranks positions for odd-chip distribution; higher goes first.
// The blinds sort above every numbered seat.
func (p Position) awardOrder() int {
	switch p {
	case PositionSmallBlind:
		return 'S'
	case PositionBigBlind:
		return 'B'
	}
	return int(p)
}

// PlayerStats holds everything derived for one player in one hand. Money is
// in cents. Per-street arrays are indexed by street number, 0 being the
// first betting round; slots a statistic does not define stay zero.
type PlayerStats struct {
	Name        string
	SeatNo      int
	StartCash   int64
	StartBounty *int64
	EndBounty   *int64
	Sitout      bool
	Showed      bool

	Common              int64
	Committed           int64
	Winnings            int64
	Rake                int64
	RakeDealt           int64
	RakeContributed     int64
	RakeWeighted        int64
	TotalProfit         int64
	AllInEV             int64
	ShowdownWinnings    int64
	NonShowdownWinnings int64

	SawShowdown bool
	WonAtSD     bool
	StartCards  int
	Cards       [20]int
	HandString  *string

	Position Position
	EffStack int64

	Street0VPIChance  bool
	Street0VPI        bool
	Street0AggrChance bool

	Street0CalledRaiseChance int
	Street0CalledRaiseDone   int

	TwoBetChance         bool
	TwoBetDone           bool
	ThreeBetChance       bool
	ThreeBetDone         bool
	FourBetChance        bool
	FourBetDone          bool
	ColdFourBetChance    bool
	ColdFourBetDone      bool
	FoldToTwoBetChance   bool
	FoldToTwoBetDone     bool
	FoldToThreeBetChance bool
	FoldToThreeBetDone   bool
	FoldToFourBetChance  bool
	FoldToFourBetDone    bool
	SqueezeChance        bool
	SqueezeDone          bool

	StealChance         bool
	StealDone           bool
	StealSuccess        bool
	RaiseToStealChance  bool
	RaiseToStealDone    bool
	RaiseFirstInChance  bool
	RaisedFirstIn       bool
	FoldBBToStealChance bool
	FoldSBToStealChance bool
	FoldedSBToSteal     bool
	FoldedBBToSteal     bool

	Calls      [5]int
	Bets       [5]int
	Raises     [5]int
	Aggr       [5]bool
	InPosition [5]bool
	FirstToAct [5]bool
	AllIn      [5]bool
	Seen       [5]bool // 1..4
	Discards   [5]int  // 1..3

	CBChance             [5]bool // 1..4
	CBDone               [5]bool
	CheckCallRaiseChance [5]bool
	CheckCallDone        [5]bool
	CheckRaiseDone       [5]bool
	OtherRaised          [5]bool // 0..4, street 0 never set
	FoldToOtherRaised    [5]bool
	FoldToCBChance       [5]bool
	FoldToCBDone         [5]bool
	WonWhenSeen          [5]bool

	WentAllIn bool
}

// newPlayerStats returns the blank per-player record. Callers copy the
// value; it holds only arrays and scalars, so copies share nothing.
func newPlayerStats() PlayerStats {
	return PlayerStats{
		StartCards:        poker.NoStartCards,
		Position:          PositionAnteAllIn,
		Street0VPIChance:  true,
		Street0AggrChance: true,
	}
}

var statsTemplate = newPlayerStats()

// Columns flattens the record into the persisted column names.
func (s *PlayerStats) Columns() map[string]any {
	c := map[string]any{
		"playerName":          s.Name,
		"seatNo":              s.SeatNo,
		"startCash":           s.StartCash,
		"startBounty":         s.StartBounty,
		"endBounty":           s.EndBounty,
		"sitout":              s.Sitout,
		"showed":              s.Showed,
		"common":              s.Common,
		"committed":           s.Committed,
		"winnings":            s.Winnings,
		"rake":                s.Rake,
		"rakeDealt":           s.RakeDealt,
		"rakeContributed":     s.RakeContributed,
		"rakeWeighted":        s.RakeWeighted,
		"totalProfit":         s.TotalProfit,
		"allInEV":             s.AllInEV,
		"showdownWinnings":    s.ShowdownWinnings,
		"nonShowdownWinnings": s.NonShowdownWinnings,
		"sawShowdown":         s.SawShowdown,
		"wonAtSD":             s.WonAtSD,
		"startCards":          s.StartCards,
		"handString":          s.HandString,
		"position":            s.Position,
		"effStack":            s.EffStack,

		"street0VPIChance":         s.Street0VPIChance,
		"street0VPI":               s.Street0VPI,
		"street0AggrChance":        s.Street0AggrChance,
		"street0CalledRaiseChance": s.Street0CalledRaiseChance,
		"street0CalledRaiseDone":   s.Street0CalledRaiseDone,

		"street0_2BChance":       s.TwoBetChance,
		"street0_2BDone":         s.TwoBetDone,
		"street0_3BChance":       s.ThreeBetChance,
		"street0_3BDone":         s.ThreeBetDone,
		"street0_4BChance":       s.FourBetChance,
		"street0_4BDone":         s.FourBetDone,
		"street0_C4BChance":      s.ColdFourBetChance,
		"street0_C4BDone":        s.ColdFourBetDone,
		"street0_FoldTo2BChance": s.FoldToTwoBetChance,
		"street0_FoldTo2BDone":   s.FoldToTwoBetDone,
		"street0_FoldTo3BChance": s.FoldToThreeBetChance,
		"street0_FoldTo3BDone":   s.FoldToThreeBetDone,
		"street0_FoldTo4BChance": s.FoldToFourBetChance,
		"street0_FoldTo4BDone":   s.FoldToFourBetDone,
		"street0_SqueezeChance":  s.SqueezeChance,
		"street0_SqueezeDone":    s.SqueezeDone,

		"stealChance":         s.StealChance,
		"stealDone":           s.StealDone,
		"success_Steal":       s.StealSuccess,
		"raiseToStealChance":  s.RaiseToStealChance,
		"raiseToStealDone":    s.RaiseToStealDone,
		"raiseFirstInChance":  s.RaiseFirstInChance,
		"raisedFirstIn":       s.RaisedFirstIn,
		"foldBbToStealChance": s.FoldBBToStealChance,
		"foldSbToStealChance": s.FoldSBToStealChance,
		"foldedSbToSteal":     s.FoldedSBToSteal,
		"foldedBbToSteal":     s.FoldedBBToSteal,

		"wentAllIn": s.WentAllIn,
	}
	for i, card := range s.Cards {
		c[fmt.Sprintf("card%d", i+1)] = card
	}
	for i := 0; i < 5; i++ {
		c[fmt.Sprintf("street%dCalls", i)] = s.Calls[i]
		c[fmt.Sprintf("street%dBets", i)] = s.Bets[i]
		c[fmt.Sprintf("street%dRaises", i)] = s.Raises[i]
		c[fmt.Sprintf("street%dAggr", i)] = s.Aggr[i]
		c[fmt.Sprintf("street%dInPosition", i)] = s.InPosition[i]
		c[fmt.Sprintf("street%dFirstToAct", i)] = s.FirstToAct[i]
		c[fmt.Sprintf("street%dAllIn", i)] = s.AllIn[i]
		c[fmt.Sprintf("otherRaisedStreet%d", i)] = s.OtherRaised[i]
		c[fmt.Sprintf("foldToOtherRaisedStreet%d", i)] = s.FoldToOtherRaised[i]
	}
	for i := 1; i < 5; i++ {
		c[fmt.Sprintf("street%dSeen", i)] = s.Seen[i]
		c[fmt.Sprintf("street%dCBChance", i)] = s.CBChance[i]
		c[fmt.Sprintf("street%dCBDone", i)] = s.CBDone[i]
		c[fmt.Sprintf("street%dCheckCallRaiseChance", i)] = s.CheckCallRaiseChance[i]
		c[fmt.Sprintf("street%dCheckCallDone", i)] = s.CheckCallDone[i]
		c[fmt.Sprintf("street%dCheckRaiseDone", i)] = s.CheckRaiseDone[i]
		c[fmt.Sprintf("foldToStreet%dCBChance", i)] = s.FoldToCBChance[i]
		c[fmt.Sprintf("foldToStreet%dCBDone", i)] = s.FoldToCBDone[i]
		c[fmt.Sprintf("wonWhenSeenStreet%d", i)] = s.WonWhenSeen[i]
	}
	for i := 1; i < 4; i++ {
		c[fmt.Sprintf("street%dDiscards", i)] = s.Discards[i]
	}
	return c
}

// MarshalJSON encodes the flattened columns.
func (s PlayerStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Columns())
}
