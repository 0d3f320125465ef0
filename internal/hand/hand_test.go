package hand

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCents(t *testing.T) {
	assert.Equal(t, int64(300), Cents(d("3.00")))
	assert.Equal(t, int64(1), Cents(d("0.005")))
	assert.Equal(t, int64(-250), Cents(d("-2.5")))
	assert.Equal(t, "1.23", FromCents(123).StringFixed(2))
}

func TestActionKindIDs(t *testing.T) {
	id, ok := Raises.ID()
	require.True(t, ok)
	assert.Equal(t, 7, id)

	id, ok = AllIn.ID()
	require.True(t, ok)
	assert.Equal(t, 18, id)

	_, ok = ActionKind("mucks").ID()
	assert.False(t, ok)

	assert.True(t, Completes.Aggressive())
	assert.False(t, Calls.Aggressive())
}

func TestValidate(t *testing.T) {
	layout := DefaultLayout(Hold, 0)
	base := func() *Hand {
		return &Hand{
			HandID:        "1",
			Players:       []Player{{Seat: 1, Name: "a"}, {Seat: 2, Name: "b"}},
			ActionStreets: layout.Action,
			Actions: map[Street][]Action{
				Preflop: {{Player: "a", Kind: Folds}},
			},
		}
	}

	require.NoError(t, base().Validate())

	h := base()
	h.Players[1].Seat = 1
	assert.ErrorIs(t, h.Validate(), ErrDuplicateSeat)

	h = base()
	h.Players[1].Name = "a"
	assert.ErrorIs(t, h.Validate(), ErrDuplicateName)

	h = base()
	h.Actions[Flop] = []Action{{Player: "ghost", Kind: Checks}}
	assert.ErrorIs(t, h.Validate(), ErrUnknownActor)

	h = base()
	h.Players = nil
	assert.ErrorIs(t, h.Validate(), ErrNoPlayers)
}

func TestDefaultLayout(t *testing.T) {
	stud := DefaultLayout(Stud, 0)
	assert.Equal(t, []Street{BlindsAntes, Third, Fourth, Fifth, Sixth, Seventh}, stud.Action)
	assert.Empty(t, stud.Community)

	single := DefaultLayout(Draw, 1)
	assert.Equal(t, []Street{BlindsAntes, Deal, DrawOne}, single.Action)

	hold := DefaultLayout(Hold, 0)
	assert.Equal(t, []Street{Flop, Turn, River}, hold.Community)
}

func TestBuildPotReturnsUncalledBet(t *testing.T) {
	h := &Hand{
		Players: []Player{
			{Seat: 1, Name: "sb", Stack: d("100")},
			{Seat: 2, Name: "bb", Stack: d("100")},
			{Seat: 3, Name: "btn", Stack: d("100")},
		},
		ActionStreets: DefaultLayout(Hold, 0).Action,
		Actions: map[Street][]Action{
			BlindsAntes: {
				{Player: "sb", Kind: SmallBlind, Amount: d("0.50")},
				{Player: "bb", Kind: BigBlind, Amount: d("1.00")},
			},
			Preflop: {
				{Player: "btn", Kind: Raises, Amount: d("2.00"), RaiseTo: d("3.00"), Called: d("1.00")},
				{Player: "sb", Kind: Folds},
				{Player: "bb", Kind: Calls, Amount: d("2.00")},
			},
			Flop: {
				{Player: "bb", Kind: Checks},
				{Player: "btn", Kind: Bets, Amount: d("4.00")},
				{Player: "bb", Kind: Folds},
			},
		},
	}

	pot := BuildPot(h, decimal.Zero)
	assert.True(t, pot.Returned["btn"].Equal(d("4.00")))
	assert.True(t, pot.Committed["btn"].Equal(d("3.00")))
	assert.Equal(t, []string{"btn"}, pot.Contenders)
	require.Len(t, pot.Pots, 1)
	assert.True(t, pot.Pots[0].Amount.Equal(d("6.50")), pot.Pots[0].Amount.String())
	assert.True(t, pot.StreetTotals[Preflop].Equal(d("6.50")))
	assert.True(t, pot.StreetTotals[Flop].Equal(d("10.50")))
}

func TestSplitPotsLayersAllIns(t *testing.T) {
	players := []Player{{Seat: 1, Name: "a"}, {Seat: 2, Name: "b"}, {Seat: 3, Name: "c"}, {Seat: 4, Name: "f"}}
	committed := map[string]decimal.Decimal{
		"a": d("10"),
		"b": d("30"),
		"c": d("30"),
		"f": d("5"),
	}

	pots := SplitPots(players, committed, []string{"a", "b", "c"})
	require.Len(t, pots, 2)
	assert.True(t, pots[0].Amount.Equal(d("35")), pots[0].Amount.String())
	assert.Equal(t, []string{"a", "b", "c"}, pots[0].Players)
	assert.True(t, pots[1].Amount.Equal(d("40")), pots[1].Amount.String())
	assert.Equal(t, []string{"b", "c"}, pots[1].Players)
}
