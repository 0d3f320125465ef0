package derive

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lox/handstats/internal/hand"
	"github.com/lox/handstats/poker"
)

// sidePotHand: a is all in for 1.00 and b, c and d for 3.01, giving a
// 4.00 main pot and a 6.03 side pot.
func sidePotHand(opts ...testHandOption) *hand.Hand {
	base := []testHandOption{
		withPlayers("a", "b", "c", "d"),
		withStack("a", "1.00"), withStack("b", "3.01"), withStack("c", "3.01"), withStack("d", "3.01"),
		withActions(hand.Preflop,
			allIn(bet("a", "1.00")),
			allIn(raise("b", "1.00", "2.01", "3.01")),
			allIn(call("c", "3.01")),
			allIn(call("d", "3.01")),
		),
		withBoard("2c 7d 9h Jc Qs"),
		withHole("a", "As Ad"),
		withHole("b", "Ks Kd"),
		withHole("c", "Kh Kc"),
		withHole("d", "3s 4s"),
	}
	return newTestHand(append(base, opts...)...)
}

// byPocketCount answers Winners by how many pockets are in the pot.
func byPocketCount(win map[int]map[Side][]int) winnersFunc {
	return func(pockets [][]string, _ []string) map[Side][]int {
		return win[len(pockets)]
	}
}

func TestSidePotOddCentGoesByPosition(t *testing.T) {
	m := newMockEvaluator().winners(byPocketCount(map[int]map[Side][]int{
		4: {SideHi: {1, 2}},
		3: {SideHi: {0, 1}},
	}))
	h := sidePotHand(withCollect("b", "5.02"), withCollect("c", "5.01"))
	require.Len(t, h.Pot.Pots, 2)

	res, err := testEngine(WithEvaluator(m)).Derive(h)
	require.NoError(t, err)

	assert.Equal(t, []PotRecord{
		{PotID: 0, BoardID: 0, HiLo: "h", Player: "b", Pot: 200, Collected: 200},
		{PotID: 1, BoardID: 0, HiLo: "h", Player: "b", Pot: 302, Collected: 302},
		{PotID: 0, BoardID: 0, HiLo: "h", Player: "c", Pot: 200, Collected: 200},
		{PotID: 1, BoardID: 0, HiLo: "h", Player: "c", Pot: 301, Collected: 301},
	}, res.Pots)
	assert.Equal(t, int64(0), res.Hand.Rake)

	slices := map[int]int64{}
	for _, p := range res.Pots {
		slices[p.PotID] += p.Pot
	}
	assert.Equal(t, map[int]int64{0: 400, 1: 603}, slices)
	m.AssertCalled(t, "Winners", "holdem", mock.Anything, mock.Anything)
}

func TestRakeSplitsProportionally(t *testing.T) {
	win := byPocketCount(map[int]map[Side][]int{
		4: {SideHi: {1}},
		3: {SideHi: {0}},
	})

	tests := []struct {
		name      string
		roundDown bool
		want      []PotRecord
	}{
		{
			name:      "floor",
			roundDown: true,
			want: []PotRecord{
				{PotID: 0, HiLo: "h", Player: "b", Pot: 400, Collected: 389, Rake: 11},
				{PotID: 1, HiLo: "h", Player: "b", Pot: 603, Collected: 584, Rake: 19},
			},
		},
		{
			name:      "banker's rounding",
			roundDown: false,
			want: []PotRecord{
				{PotID: 0, HiLo: "h", Player: "b", Pot: 400, Collected: 388, Rake: 12},
				{PotID: 1, HiLo: "h", Player: "b", Pot: 603, Collected: 585, Rake: 18},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEngine(WithEvaluator(newMockEvaluator().winners(win)), WithRakeRoundDown(tt.roundDown))
			res, err := e.Derive(sidePotHand(withRake("0.30"), withCollect("b", "9.73")))
			require.NoError(t, err)

			assert.Equal(t, tt.want, res.Pots)
			assert.Equal(t, int64(30), res.Hand.Rake)
			assert.Equal(t, int64(30), player(res, "b").Rake)
			assert.Equal(t, int64(-30), sumProfit(res))
		})
	}
}

func TestRakeFollowsSplitPeer(t *testing.T) {
	m := newMockEvaluator().winners(byPocketCount(map[int]map[Side][]int{
		4: {SideHi: {1, 2}},
		3: {SideHi: {0}},
	}))
	h := sidePotHand(withRake("0.30"), withCollect("b", "7.79"), withCollect("c", "1.94"))

	res, err := testEngine(WithEvaluator(m)).Derive(h)
	require.NoError(t, err)

	assert.Equal(t, []PotRecord{
		{PotID: 0, HiLo: "h", Player: "b", Pot: 200, Collected: 194, Rake: 6},
		{PotID: 1, HiLo: "h", Player: "b", Pot: 603, Collected: 585, Rake: 18},
		{PotID: 0, HiLo: "h", Player: "c", Pot: 200, Collected: 194, Rake: 6},
	}, res.Pots)
	assert.Equal(t, int64(30), res.Hand.Rake)
	assert.Equal(t, int64(24), player(res, "b").Rake)
	assert.Equal(t, int64(6), player(res, "c").Rake)
}

func hiLoHand(opts ...testHandOption) *hand.Hand {
	base := []testHandOption{
		withGame("omahahilo", hand.Hold),
		withActions(hand.BlindsAntes, hand.Action{Player: "a", Kind: hand.Ante, Amount: dec("0.01")}),
		withActions(hand.Preflop, bet("a", "5.00"), call("b", "5.00")),
		withActions(hand.Flop, check("a"), check("b")),
		withActions(hand.Turn, check("a"), check("b")),
		withActions(hand.River, check("a"), check("b")),
		withBoard("3h 4h 8c Ks Qd"),
		withHole("a", "Kd Kc 9s 9d"),
		withHole("b", "As 2s Td Jc"),
	}
	return newTestHand(append(base, opts...)...)
}

func TestHiLoOddCentGoesHigh(t *testing.T) {
	m := newMockEvaluator().winners(func([][]string, []string) map[Side][]int {
		return map[Side][]int{SideHi: {0}, SideLow: {1}}
	})
	res, err := testEngine(WithEvaluator(m)).Derive(hiLoHand(withCollect("a", "5.01"), withCollect("b", "5.00")))
	require.NoError(t, err)

	assert.Equal(t, []PotRecord{
		{PotID: 0, HiLo: "h", Player: "a", Pot: 501, Collected: 501},
		{PotID: 0, HiLo: "l", Player: "b", Pot: 500, Collected: 500},
	}, res.Pots)

	// omaha boards go to the evaluator separately
	m.AssertCalled(t, "Winners", "omaha8", [][]string{
		{"Kd", "Kc", "9s", "9d"},
		{"As", "2s", "Td", "Jc"},
	}, []string{"3h", "4h", "8c", "Ks", "Qd"})
	m.AssertCalled(t, "BestHand", SideLow, mock.Anything, mock.Anything)
}

func TestHiLoWithoutLowScoops(t *testing.T) {
	m := newMockEvaluator().winners(func([][]string, []string) map[Side][]int {
		return map[Side][]int{SideHi: {0}}
	})
	res, err := testEngine(WithEvaluator(m)).Derive(hiLoHand(withCollect("a", "10.01")))
	require.NoError(t, err)

	assert.Equal(t, []PotRecord{
		{PotID: 0, HiLo: "h", Player: "a", Pot: 1001, Collected: 1001},
	}, res.Pots)
}

func runTwiceHand() *hand.Hand {
	return newTestHand(
		withStack("a", "5.01"), withStack("b", "5.00"),
		withActions(hand.BlindsAntes, hand.Action{Player: "a", Kind: hand.Ante, Amount: dec("0.01")}),
		withActions(hand.Preflop, allIn(bet("a", "5.00")), allIn(call("b", "5.00"))),
		withRunItTimes(2),
		withBoardStreet("FLOP", "Ah Kd 2c"),
		withBoardStreet("TURN1", "5s"),
		withBoardStreet("RIVER1", "9d"),
		withBoardStreet("TURN2", "Jc"),
		withBoardStreet("RIVER2", "3h"),
		withHole("a", "5c 5d"),
		withHole("b", "Jh Js"),
		withCollect("a", "5.01"),
		withCollect("b", "5.00"),
	)
}

func TestRunItTwice(t *testing.T) {
	m := newMockEvaluator().winners(func(pockets [][]string, _ []string) map[Side][]int {
		// pockets carry the board for hold'em; the first run has the 5s
		if contains(pockets[0], "5s") {
			return map[Side][]int{SideHi: {0}}
		}
		return map[Side][]int{SideHi: {1}}
	})
	res, err := testEngine(WithEvaluator(m)).Derive(runTwiceHand())
	require.NoError(t, err)

	assert.True(t, res.Hand.RunItTwice)
	require.Len(t, res.Hand.Boards, 2)
	assert.Equal(t, Board{ID: 1, Cards: [5]int{0, 0, 0, poker.EncodeCard("5s"), poker.EncodeCard("9d")}}, res.Hand.Boards[0])
	assert.Equal(t, 2, res.Hand.Boards[1].ID)
	assert.Equal(t, poker.EncodeCard("Ah"), res.Hand.BoardCards[0])
	assert.Zero(t, res.Hand.BoardCards[3])

	assert.Equal(t, []PotRecord{
		{PotID: 0, BoardID: 1, HiLo: "h", Player: "a", Pot: 501, Collected: 501},
		{PotID: 0, BoardID: 2, HiLo: "h", Player: "b", Pot: 500, Collected: 500},
	}, res.Pots)

	var riverBoards []int
	for _, s := range res.Stove {
		if s.Player == "a" && s.Street == 3 {
			riverBoards = append(riverBoards, s.BoardID)
		}
	}
	assert.Equal(t, []int{1, 2}, riverBoards)
}

func TestAllInEV(t *testing.T) {
	m := &mockEvaluator{}
	m.On("BestHand", mock.Anything, mock.Anything, mock.Anything).Return(0, Rank{Category: "Nothing"}, nil).Maybe()
	m.On("ForwardEquity", "holdem", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(equityFunc(func(_ [][]string, board []string) []float64 {
			if len(board) == 0 {
				return []float64{0.8184, 0.1816}
			}
			return []float64{1, 0}
		}), nil)

	h := newTestHand(
		withStack("a", "10"), withStack("b", "10"),
		withActions(hand.Preflop, allIn(bet("a", "10.00")), allIn(call("b", "10.00"))),
		withBoard("2c 7d 9h Jc Qs"),
		withHole("a", "As Ad"),
		withHole("b", "Ks Kd"),
		withCollect("a", "20.00"),
	)
	res, err := testEngine(WithEvaluator(m), WithIterations(map[int]int{0: 50})).Derive(h)
	require.NoError(t, err)

	a, b := player(res, "a"), player(res, "b")
	assert.Equal(t, int64(636), a.AllInEV)
	assert.Equal(t, int64(-636), b.AllInEV)
	assert.Equal(t, int64(1000), a.TotalProfit)

	for _, s := range res.Stove {
		if s.Street == 0 && s.Player == "a" {
			assert.Equal(t, 818, s.Equity)
		}
	}
	m.AssertCalled(t, "ForwardEquity", "holdem", 50, mock.Anything, mock.Anything, mock.Anything)
	m.AssertCalled(t, "ForwardEquity", "holdem", DefaultIterations[1], mock.Anything, mock.Anything, mock.Anything)
}

func TestEquitiesSumToAThousand(t *testing.T) {
	cat, err := LookupCategory("holdem")
	require.NoError(t, err)
	d := &derivation{
		Engine: testEngine(WithEvaluator(newMockEvaluator())),
		logger: log.New(io.Discard),
		cat:    cat,
	}
	holes := map[string][]string{"a": {"As", "Ad"}, "b": {"Ks", "Kd"}, "c": {"Qs", "Qd"}}

	eq := d.equities([]string{"a", "b", "c"}, holes, nil, nil, 0)
	require.Len(t, eq, 3)
	sum := decimal.Sum(eq[0], eq[1:]...)
	assert.InDelta(t, 1000, sum.InexactFloat64(), 1e-9)
	assert.True(t, eq[0].Equal(eq[2]))

	eq = d.equities([]string{"a"}, holes, nil, nil, 0)
	assert.True(t, eq[0].Equal(decimal.NewFromInt(1000)))
}

func TestEvaluatorFailuresFallBack(t *testing.T) {
	m := &mockEvaluator{}
	boom := assert.AnError
	m.On("BestHand", mock.Anything, mock.Anything, mock.Anything).Return(0, Rank{}, boom)
	m.On("Winners", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)
	m.On("ForwardEquity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)

	e, buf := bufferedEngine(WithEvaluator(m))
	res, err := e.Derive(sidePotHand(withCollect("a", "4.00"), withCollect("b", "6.03")))
	require.NoError(t, err)

	for _, s := range res.Stove {
		assert.Equal(t, "n", s.HiLo)
		assert.Equal(t, 1, s.RankID)
	}
	// without winners the first contender of each pot takes it
	assert.Equal(t, []PotRecord{
		{PotID: 0, HiLo: "h", Player: "a", Pot: 400, Collected: 400},
		{PotID: 1, HiLo: "h", Player: "b", Pot: 603, Collected: 603},
	}, res.Pots)
	assert.Equal(t, int64(-100), player(res, "a").AllInEV)

	logs := buf.String()
	assert.Contains(t, logs, "Best hand evaluation failed")
	assert.Contains(t, logs, "Winner evaluation failed")
	assert.Contains(t, logs, "Forward equity failed")
}

func TestUnknownCardsAwardTheCollector(t *testing.T) {
	m := newMockEvaluator()
	h := sidePotHand(withCollect("c", "10.03"))
	h.HoleCards = make(map[string][]string)

	res, err := testEngine(WithEvaluator(m)).Derive(h)
	require.NoError(t, err)

	// a and b contest the pots ahead of c but collected nothing
	assert.Equal(t, []PotRecord{
		{PotID: 0, HiLo: "h", Player: "c", Pot: 400, Collected: 400},
		{PotID: 1, HiLo: "h", Player: "c", Pot: 603, Collected: 603},
	}, res.Pots)
	for _, p := range res.Pots {
		assert.GreaterOrEqual(t, p.Rake, int64(0))
	}
	assert.Equal(t, int64(0), res.Hand.Rake)
	assert.Equal(t, int64(0), player(res, "a").Rake)
	m.AssertNotCalled(t, "Winners", mock.Anything, mock.Anything, mock.Anything)
}

func TestNonEvaluatedGameRecordsShowdownStrings(t *testing.T) {
	h := newTestHand(
		withGame("badugi", hand.Draw),
		withBlinds("a", "b"),
		withActions(hand.Deal, call("a", "0.50"), check("b")),
		withCollect("a", "2.00"),
	)
	h.ShowdownStrings = map[string]string{"a": "a 4-3-2-A badugi"}

	m := &mockEvaluator{}
	res, err := testEngine(WithEvaluator(m)).Derive(h)
	require.NoError(t, err)

	require.Len(t, res.Stove, 2)
	for _, s := range res.Stove {
		assert.Equal(t, 3, s.Street)
		assert.Equal(t, "l", s.HiLo)
		assert.Equal(t, 1, s.RankID)
	}
	require.NotNil(t, player(res, "a").HandString)
	assert.Equal(t, "a 4-3-2-A badugi", *player(res, "a").HandString)
	assert.Nil(t, player(res, "b").HandString)
	assert.Empty(t, res.Pots)
	m.AssertNotCalled(t, "Winners", mock.Anything, mock.Anything, mock.Anything)
}
