package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
)

// Renderer draws summaries as terminal tables.
type Renderer struct {
	title    lipgloss.Style
	header   lipgloss.Style
	cell     lipgloss.Style
	positive lipgloss.Style
	negative lipgloss.Style
	border   lipgloss.Style
}

// NewRenderer creates a Renderer for w. Without color the output is plain
// ASCII, which is what tests and pipes want.
func NewRenderer(w io.Writer, color bool) *Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		header: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true).
			Padding(0, 1),
		cell: r.NewStyle().Padding(0, 1),
		positive: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Padding(0, 1),
		negative: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Padding(0, 1),
		border: r.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}

var columns = []string{
	"Player", "Hands", "Net", "$/hand", "EV adj", "VPIP", "PFR", "3Bet", "F3B", "Steal", "CBet", "FCB", "XR", "WTSD", "W$SD",
}

// moneyColumns are colored by sign.
var moneyColumns = map[int]bool{2: true, 3: true, 4: true}

// Render writes the summary table to w.
func (rd *Renderer) Render(w io.Writer, s *Summary) error {
	players := s.Players()
	rows := make([][]string, 0, len(players))
	signs := make([][]int64, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{
			p.Name,
			fmt.Sprintf("%d", p.Hands),
			cents(p.Net),
			cents(int64(p.Mean())),
			cents(p.AllInEV),
			pct(p.VPIP),
			pct(p.PFR),
			pct(p.ThreeBet),
			pct(p.FoldTo3Bet),
			pct(p.Steal),
			pct(p.CBet),
			pct(p.FoldToCBet),
			pct(p.CheckRaise),
			pct(p.WTSD),
			pct(p.WonAtSD),
		})
		signs = append(signs, []int64{0, 0, p.Net, int64(p.Mean()), p.AllInEV})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(rd.border).
		Headers(columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return rd.header
			}
			if moneyColumns[col] && row >= 0 && row < len(signs) {
				switch v := signs[row][col]; {
				case v > 0:
					return rd.positive
				case v < 0:
					return rd.negative
				}
			}
			return rd.cell
		})

	heading := rd.title.Render(fmt.Sprintf("%d hands, %s in pots, %s rake", s.Hands, cents(s.Pot), cents(s.Rake)))
	_, err := fmt.Fprintf(w, "%s\n%s\n", heading, t.Render())
	return err
}

func cents(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func pct(r Ratio) string {
	if r.Chances == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f", r.Pct())
}
