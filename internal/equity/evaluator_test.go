package equity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handstats/internal/derive"
)

func cards(s string) []string {
	return strings.Fields(s)
}

func TestBestHandHigh(t *testing.T) {
	e := New()

	tests := []struct {
		name     string
		cards    string
		board    string
		category string
	}{
		{"flush beats the pair on board", "Ah Kh 2h 7h 9h 9c 3d", "", "Flush"},
		{"full house", "As Ad Ac Kd Ks 2c 3c", "", "FlHouse"},
		{"wheel straight", "As 2d 3c 4h 5s Kd Qc", "", "Straight"},
		{"omaha uses exactly two", "Ah Kh Qd Jd", "2h 3c 4s 9c 5d", "NoPair"},
		{"omaha straight", "Qd Jd 2c 2s", "Ah Kh Th 4c 5c", "Straight"},
		{"too few cards", "As Ks", "", "Nothing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rank, err := e.BestHand(derive.SideHi, cards(tt.cards), cards(tt.board))
			require.NoError(t, err)
			assert.Equal(t, tt.category, rank.Category)
		})
	}
}

func TestBestHandCardsAndDescription(t *testing.T) {
	e := New()
	value, rank, err := e.BestHand(derive.SideHi, cards("Ah Ad Kc Qs 2d 7h 9c"), nil)
	require.NoError(t, err)
	assert.Positive(t, value)
	assert.Equal(t, "OnePair", rank.Category)
	assert.Len(t, rank.Cards, 5)
	assert.Contains(t, rank.Cards, "Ah")
	assert.Contains(t, rank.Cards, "Ad")
	assert.NotEmpty(t, rank.Description)
}

func TestBestHandLow(t *testing.T) {
	e := New()

	_, rank, err := e.BestHand(derive.SideLow, cards("As 2d 3c 4h 8s Kd Kc"), nil)
	require.NoError(t, err)
	assert.Equal(t, "NoPair", rank.Category)

	_, rank, err = e.BestHand(derive.SideLow, cards("9s Td Jc Qh Ks 9d 2c"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Nothing", rank.Category, "no eight-or-better low")

	_, rank, err = e.BestHand(derive.SideRazz, cards("9s Td Jc Qh Ks 9d 2c"), nil)
	require.NoError(t, err)
	assert.NotEqual(t, "Nothing", rank.Category, "razz always has a low")
}

func TestBestHandRejectsBadCards(t *testing.T) {
	_, _, err := New().BestHand(derive.SideHi, cards("Xx Ad"), nil)
	assert.Error(t, err)
}

func TestWinners(t *testing.T) {
	e := New()

	t.Run("single winner", func(t *testing.T) {
		win, err := e.Winners("holdem", [][]string{
			cards("As Ad 2c 7d 9h Jc Qs"),
			cards("Ks Kd 2c 7d 9h Jc Qs"),
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, map[derive.Side][]int{derive.SideHi: {0}}, win)
	})

	t.Run("board plays", func(t *testing.T) {
		win, err := e.Winners("holdem", [][]string{
			cards("2s 3d Ah Kh Qh Jh Th"),
			cards("4s 5d Ah Kh Qh Jh Th"),
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, win[derive.SideHi])
	})

	t.Run("hi lo without a low", func(t *testing.T) {
		win, err := e.Winners("omaha8", [][]string{
			cards("As Ks Qd Jd"),
			cards("9h 9c Td Tc"),
		}, cards("Ah Kh Th 9s 9d"))
		require.NoError(t, err)
		assert.Contains(t, win, derive.SideHi)
		assert.NotContains(t, win, derive.SideLow)
	})

	t.Run("hi lo scoop split", func(t *testing.T) {
		win, err := e.Winners("omaha8", [][]string{
			cards("As 2s Kd Kc"),
			cards("9h 9c Td Tc"),
		}, cards("3h 4h 8c Ks Qd"))
		require.NoError(t, err)
		assert.Equal(t, []int{0}, win[derive.SideLow])
	})

	t.Run("razz reports the low side", func(t *testing.T) {
		win, err := e.Winners("razz", [][]string{
			cards("As 2d 3c 4h 5s Kd Kc"),
			cards("6s 7d 8c 9h Ts Jd Qc"),
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0}, win[derive.SideLow])
	})

	t.Run("unknown game", func(t *testing.T) {
		_, err := e.Winners("pineapple", nil, nil)
		assert.ErrorIs(t, err, ErrUnknownGame)
	})
}

func TestForwardEquityRiverIsExact(t *testing.T) {
	e := New()
	eq, err := e.ForwardEquity("holdem", 0, [][]string{cards("As Ad"), cards("Ks Kd")}, nil, cards("2c 7d 9h Jc Qs"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, eq)
}

func TestForwardEquityTurnEnumerates(t *testing.T) {
	e := New()
	// kings need one of the two remaining kings on the river
	eq, err := e.ForwardEquity("holdem", 5000, [][]string{cards("As Ad"), cards("Ks Kd")}, nil, cards("2c 7d 9h Jc"))
	require.NoError(t, err)
	assert.InDelta(t, 2.0/44.0, eq[1], 1e-9)
	assert.InDelta(t, 1.0, eq[0]+eq[1], 1e-9)
}

func TestForwardEquityDeadCards(t *testing.T) {
	e := New()
	eq, err := e.ForwardEquity("holdem", 0,
		[][]string{cards("As Ad"), cards("Ks Kd")},
		cards("Kc Kh"),
		cards("2c 7d 9h Jc"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, eq[0])
}

func TestForwardEquityIsDeterministic(t *testing.T) {
	pockets := [][]string{cards("Ah Kh"), cards("Qs Qd")}
	a, err := New(WithSeed(7), WithWorkers(4)).ForwardEquity("holdem", 2000, pockets, nil, nil)
	require.NoError(t, err)
	b, err := New(WithSeed(7), WithWorkers(4), WithCacheTTL(0)).ForwardEquity("holdem", 2000, pockets, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.InDelta(t, 1.0, a[0]+a[1], 1e-9)
	assert.InDelta(t, 0.46, a[0], 0.05)
}

func TestForwardEquityCaches(t *testing.T) {
	e := New(WithCacheTTL(time.Minute))
	pockets := [][]string{cards("As Ad"), cards("Ks Kd")}
	board := cards("2c 7d 9h")
	first, err := e.ForwardEquity("holdem", 0, pockets, nil, board)
	require.NoError(t, err)

	first[0] = -1
	second, err := e.ForwardEquity("holdem", 0, pockets, nil, board)
	require.NoError(t, err)
	assert.NotEqual(t, -1.0, second[0], "cached slices are copied")
	assert.Equal(t, 1, e.cache.ItemCount())
}

func TestForwardEquityErrors(t *testing.T) {
	e := New()

	_, err := e.ForwardEquity("7stud", 100, [][]string{cards("As Ad Ac")}, nil, nil)
	assert.ErrorIs(t, err, ErrNoBoardGame)

	_, err = e.ForwardEquity("holdem", 100, [][]string{cards("As Ad"), cards("As Kd")}, nil, nil)
	assert.ErrorIs(t, err, ErrDeadCard)
}
