package derive

import (
	"bytes"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/lox/handstats/internal/hand"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// testHandOption configures a hand built by newTestHand.
type testHandOption func(*testHandBuilder)

type testHandBuilder struct {
	h      *hand.Hand
	potSet bool
}

// withPlayers seats players in order from seat 1, each with 100.00.
func withPlayers(names ...string) testHandOption {
	return func(b *testHandBuilder) {
		b.h.Players = nil
		for i, name := range names {
			b.h.Players = append(b.h.Players, hand.Player{Seat: i + 1, Name: name, Stack: dec("100")})
		}
	}
}

func withStack(name, amount string) testHandOption {
	return func(b *testHandBuilder) {
		for i := range b.h.Players {
			if b.h.Players[i].Name == name {
				b.h.Players[i].Stack = dec(amount)
			}
		}
	}
}

// withGame switches category and the matching default street layout.
func withGame(category string, base hand.Base) testHandOption {
	return func(b *testHandBuilder) {
		b.h.GameType.Category = category
		b.h.GameType.Base = base
		b.h.GameType.Split = strings.Contains(category, "hilo") || strings.Contains(category, "8")
		withLayout(hand.DefaultLayout(base, 0))(b)
	}
}

func withLayout(l hand.Layout) testHandOption {
	return func(b *testHandBuilder) {
		b.h.ActionStreets = l.Action
		b.h.HoleStreets = l.Hole
		b.h.CommunityStreets = l.Community
		b.h.AllStreets = l.All
	}
}

func withBlinds(sb, bb string) testHandOption {
	return func(b *testHandBuilder) {
		b.h.Actions[hand.BlindsAntes] = append(b.h.Actions[hand.BlindsAntes],
			hand.Action{Player: sb, Kind: hand.SmallBlind, Amount: dec("0.50")},
			hand.Action{Player: bb, Kind: hand.BigBlind, Amount: dec("1.00")},
		)
	}
}

func withActions(street hand.Street, actions ...hand.Action) testHandOption {
	return func(b *testHandBuilder) {
		b.h.Actions[street] = append(b.h.Actions[street], actions...)
	}
}

func withHole(name string, cards string) testHandOption {
	return func(b *testHandBuilder) { b.h.HoleCards[name] = strings.Fields(cards) }
}

// withBoard deals flop, turn and river from a five card string.
func withBoard(cards string) testHandOption {
	return func(b *testHandBuilder) {
		c := strings.Fields(cards)
		b.h.Board["FLOP"] = c[:3]
		if len(c) > 3 {
			b.h.Board["TURN"] = c[3:4]
		}
		if len(c) > 4 {
			b.h.Board["RIVER"] = c[4:5]
		}
	}
}

func withBoardStreet(key string, cards string) testHandOption {
	return func(b *testHandBuilder) { b.h.Board[key] = strings.Fields(cards) }
}

func withCollect(name, amount string) testHandOption {
	return func(b *testHandBuilder) {
		b.h.Collectees = append(b.h.Collectees, hand.Collectee{Player: name, Amount: dec(amount)})
	}
}

func withRake(amount string) testHandOption {
	return func(b *testHandBuilder) { b.h.Rake = dec(amount) }
}

func withHero(name string) testHandOption {
	return func(b *testHandBuilder) { b.h.Hero = name }
}

func withSitout(name string) testHandOption {
	return func(b *testHandBuilder) { b.h.Sitout[name] = true }
}

func withRunItTimes(n int) testHandOption {
	return func(b *testHandBuilder) { b.h.RunItTimes = n }
}

func withPot(p hand.Pot) testHandOption {
	return func(b *testHandBuilder) {
		b.h.Pot = p
		b.potSet = true
	}
}

// newTestHand builds a hold'em ring hand. The pot is derived from the
// actions unless withPot is given, and the total pot from the pot.
func newTestHand(opts ...testHandOption) *hand.Hand {
	b := &testHandBuilder{h: &hand.Hand{
		HandID:    "T-1",
		TableName: "Test",
		SiteName:  "test",
		Actions:   make(map[hand.Street][]hand.Action),
		Board:     make(map[string][]string),
		HoleCards: make(map[string][]string),
		Sitout:    make(map[string]bool),
		Shown:     make(map[string]bool),
		GameType:  hand.GameType{Type: "ring", LimitType: "nl", Currency: "USD"},
	}}
	withPlayers("a", "b")(b)
	withGame("holdem", hand.Hold)(b)

	for _, opt := range opts {
		opt(b)
	}
	if !b.potSet {
		b.h.Pot = hand.BuildPot(b.h, decimal.Zero)
	}
	if b.h.TotalPot.IsZero() {
		b.h.TotalPot = b.h.Pot.CommittedTotal().Add(b.h.Pot.CommonTotal()).Add(b.h.Pot.STP)
	}
	return b.h
}

func fold(p string) hand.Action  { return hand.Action{Player: p, Kind: hand.Folds} }
func check(p string) hand.Action { return hand.Action{Player: p, Kind: hand.Checks} }

func call(p, amount string) hand.Action {
	return hand.Action{Player: p, Kind: hand.Calls, Amount: dec(amount)}
}

func bet(p, amount string) hand.Action {
	return hand.Action{Player: p, Kind: hand.Bets, Amount: dec(amount)}
}

// raise calls `called`, then raises `by` to a total of `to`.
func raise(p, called, by, to string) hand.Action {
	return hand.Action{Player: p, Kind: hand.Raises, Called: dec(called), Amount: dec(by), RaiseTo: dec(to)}
}

func allIn(a hand.Action) hand.Action {
	a.AllIn = true
	return a
}

func testEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithLogger(log.New(io.Discard))}, opts...)...)
}

// bufferedEngine logs into a buffer for assertions on warnings.
func bufferedEngine(opts ...Option) (*Engine, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	return NewEngine(append([]Option{WithLogger(logger)}, opts...)...), &buf
}

// mockEvaluator is a testify mock of Evaluator. Return values may be given
// as functions of the call arguments.
type mockEvaluator struct {
	mock.Mock
}

type (
	winnersFunc func(pockets [][]string, board []string) map[Side][]int
	equityFunc  func(pockets [][]string, board []string) []float64
)

func (m *mockEvaluator) BestHand(side Side, cards, board []string) (int, Rank, error) {
	args := m.Called(side, cards, board)
	return args.Int(0), args.Get(1).(Rank), args.Error(2)
}

func (m *mockEvaluator) Winners(game string, pockets [][]string, board []string) (map[Side][]int, error) {
	args := m.Called(game, pockets, board)
	if fn, ok := args.Get(0).(winnersFunc); ok {
		return fn(pockets, board), args.Error(1)
	}
	win, _ := args.Get(0).(map[Side][]int)
	return win, args.Error(1)
}

func (m *mockEvaluator) ForwardEquity(game string, iterations int, pockets [][]string, dead, board []string) ([]float64, error) {
	args := m.Called(game, iterations, pockets, dead, board)
	if fn, ok := args.Get(0).(equityFunc); ok {
		return fn(pockets, board), args.Error(1)
	}
	eq, _ := args.Get(0).([]float64)
	return eq, args.Error(1)
}

// evenEquity splits every run-out evenly.
var evenEquity = equityFunc(func(pockets [][]string, _ []string) []float64 {
	eq := make([]float64, len(pockets))
	for i := range eq {
		eq[i] = 1 / float64(len(pockets))
	}
	return eq
})

// newMockEvaluator answers every best-hand query with a pair and every
// equity query evenly; tests add Winners expectations.
func newMockEvaluator() *mockEvaluator {
	m := &mockEvaluator{}
	m.On("BestHand", mock.Anything, mock.Anything, mock.Anything).
		Return(100, Rank{Category: "OnePair", Cards: []string{"As", "Ad", "Kc", "Qh", "9s"}, Description: "a pair of aces"}, nil).
		Maybe()
	m.On("ForwardEquity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(evenEquity, nil).
		Maybe()
	return m
}

func (m *mockEvaluator) winners(fn winnersFunc) *mockEvaluator {
	m.On("Winners", mock.Anything, mock.Anything, mock.Anything).Return(fn, nil)
	return m
}

// sumProfit adds every player's total profit.
func sumProfit(r *Result) int64 {
	var total int64
	for _, p := range r.Players {
		total += p.TotalProfit
	}
	return total
}

func player(r *Result, name string) *PlayerStats {
	p, ok := r.Player(name)
	if !ok {
		panic("no player " + name)
	}
	return p
}
