package handfile

import (
	"strings"

	"github.com/lox/handstats/poker"
)

var rankAliases = map[string]string{
	"10": "T",
}

// NormalizeCard converts loose notation (10h, ah) to canonical tokens (Th,
// Ah). Unknown or hidden cards ("??", "xx", "") become the placeholder.
func NormalizeCard(card string) string {
	card = strings.TrimSpace(card)
	if len(card) < 2 {
		return poker.Placeholder
	}
	rank := strings.ToUpper(card[:len(card)-1])
	if alias, ok := rankAliases[rank]; ok {
		rank = alias
	}
	norm := rank + strings.ToLower(card[len(card)-1:])
	if !poker.IsKnown(norm) {
		return poker.Placeholder
	}
	return norm
}

// NormalizeCards normalizes a slice of card strings.
func NormalizeCards(cards []string) []string {
	if len(cards) == 0 {
		return nil
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = NormalizeCard(c)
	}
	return out
}
