package ui

import (
	"fmt"
	"strings"

	"github.com/vctt94/pokerenv/pkg/poker"
)

// formatCard creates a visual representation of a playing card
func formatCard(card poker.Card) string {
	style := CardStyle
	if isRedSuit(card.GetSuit()) {
		style = RedCardStyle
	}
	return style.Render(card.String())
}

// isRedSuit determines if a suit should be displayed in red
func isRedSuit(suit string) bool {
	return suit == string(poker.Hearts) || suit == string(poker.Diamonds)
}

// formatCards renders cards separated by spaces, or a placeholder for none.
func formatCards(cards []poker.Card) string {
	if len(cards) == 0 {
		return BlurredStyle.Render("-")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = formatCard(c)
	}
	return strings.Join(parts, " ")
}

// renderPlayersCompact creates a one line per player summary of the table
// as seen from obs.
func renderPlayersCompact(obs poker.Observation) string {
	var b strings.Builder
	for i, name := range obs.Names {
		marker := "  "
		if i == obs.Dealer {
			marker = "D "
		}
		info := fmt.Sprintf("%s%-10s stack %5d  bet %5d", marker, name, obs.Stacks[i], obs.Bets[i])

		style := BlurredStyle
		switch {
		case obs.Folded[i]:
			style = FoldedPlayerStyle
			info += "  folded"
		case obs.AllIn[i]:
			info += "  all-in"
		}
		if i == obs.Seat {
			style = CurrentPlayerStyle
			info += "  <- you"
		}
		b.WriteString(style.Render(info))
		b.WriteString("\n")
	}
	return b.String()
}
