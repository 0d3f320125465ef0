package main

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/handstats/internal/derive"
	"github.com/lox/handstats/internal/equity"
	"github.com/lox/handstats/internal/handfile"
	"github.com/lox/handstats/poker"
)

// EquityCmd runs pockets forward over the remaining board.
type EquityCmd struct {
	Hands      []string `arg:"" help:"Pockets such as 'AcKd' or 'As Ah 2d 3d'" required:"true"`
	Board      string   `short:"b" help:"Community cards dealt so far (e.g. 'Td7s8h')"`
	Dead       string   `short:"d" help:"Cards known to be out of the deck"`
	Game       string   `short:"g" default:"holdem" enum:"holdem,omaha,omaha5,omaha8,omaha58" help:"Game rules (${enum})"`
	Iterations int      `short:"i" default:"10000" help:"Board samples; 0 enumerates every run-out"`
	Seed       *int64   `help:"Random seed (overrides config)"`
}

func (c *EquityCmd) Run(app *App) error {
	pockets := make([][]string, len(c.Hands))
	for i, h := range c.Hands {
		cards, err := splitCards(h)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		pockets[i] = cards
	}
	board, err := splitCards(c.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if len(board) > 5 {
		return fmt.Errorf("board cannot have more than 5 cards")
	}
	dead, err := splitCards(c.Dead)
	if err != nil {
		return fmt.Errorf("dead: %w", err)
	}

	eval := app.eval
	if c.Seed != nil {
		opts := append(app.cfg.Engine.EvaluatorOptions(app.logger.WithPrefix("equity")), equity.WithSeed(*c.Seed))
		eval = equity.New(opts...)
	}

	started := time.Now()
	eq, err := eval.ForwardEquity(c.Game, c.Iterations, pockets, dead, board)
	if err != nil {
		return err
	}
	took := time.Since(started)

	r := lipgloss.NewRenderer(app.out)
	if !app.color {
		r.SetColorProfile(termenv.Ascii)
	}
	header := r.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	handStyle := r.NewStyle().Bold(true).Width(16).Foreground(lipgloss.Color("14"))
	winStyle := r.NewStyle().Foreground(lipgloss.Color("10"))
	categoryStyle := r.NewStyle().Foreground(lipgloss.Color("12"))

	boardLabel := "preflop"
	if len(board) > 0 {
		boardLabel = strings.Join(board, " ")
	}
	fmt.Fprintln(app.out, header.Render(fmt.Sprintf("%s on %s", c.Game, boardLabel)))

	omaha := strings.HasPrefix(c.Game, "omaha")
	for i, pocket := range pockets {
		line := fmt.Sprintf("%s%s", handStyle.Render(strings.Join(pocket, " ")), winStyle.Render(fmt.Sprintf("%6.2f%%", 100*eq[i])))
		if len(board) >= 3 {
			if desc := bestHand(eval, omaha, pocket, board); desc != "" {
				line += "  " + categoryStyle.Render(desc)
			}
		}
		fmt.Fprintln(app.out, line)
	}
	app.logger.Debug("Equity calculated", "game", c.Game, "iterations", c.Iterations, "took", took)
	return nil
}

// bestHand describes the current high hand. Hold'em pools hole and board
// cards; Omaha keeps them apart for the two-plus-three rule.
func bestHand(eval *equity.Evaluator, omaha bool, pocket, board []string) string {
	cards, community := append(append([]string(nil), pocket...), board...), []string(nil)
	if omaha {
		cards, community = pocket, board
	}
	_, rank, err := eval.BestHand(derive.SideHi, cards, community)
	if err != nil {
		return ""
	}
	return rank.Description
}

// splitCards accepts cards run together ("AsKd"), separated by spaces or
// commas, and loose notation such as "10h" or "ah".
func splitCards(s string) ([]string, error) {
	var tokens []string
	for _, field := range strings.FieldsFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == ',' }) {
		for len(field) > 0 {
			n := 2
			if strings.HasPrefix(field, "10") {
				n = 3
			}
			if len(field) < n {
				return nil, fmt.Errorf("incomplete card %q", field)
			}
			tokens = append(tokens, field[:n])
			field = field[n:]
		}
	}

	cards := handfile.NormalizeCards(tokens)
	for i, c := range cards {
		if c == poker.Placeholder {
			return nil, fmt.Errorf("invalid card %q", tokens[i])
		}
	}
	return cards, nil
}
