package pipeline

import (
	"fmt"
	"strings"

	"stamina-backend/internal/models"
)

const titleWords = 6

// Assemble wraps a validated card list into a deck value. Identifiers and
// timestamps are left for the persistence layer to fill in.
func Assemble(sourceText, vibe, origin string, cards []models.Card) models.Deck {
	return models.Deck{
		Title:       deriveTitle(sourceText, cards),
		Description: fmt.Sprintf("Generated from text with %s vibe", vibe),
		Cards:       cards,
		CardCount:   len(cards),
		Origin:      origin,
		Vibe:        vibe,
	}
}

// deriveTitle takes the first few words of the source, falling back to
// the first card's hook, then a generic label.
func deriveTitle(sourceText string, cards []models.Card) string {
	words := strings.Fields(sourceText)
	if len(words) > 0 {
		n := titleWords
		if len(words) < n {
			n = len(words)
		}
		title := strings.Join(words[:n], " ")
		if len(words) > titleWords {
			title += "..."
		}
		return title
	}

	if len(cards) > 0 && cards[0].Hook != "" {
		return cards[0].Hook
	}

	return "Generated Deck"
}
