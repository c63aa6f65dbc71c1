package models

// badgeDef pairs a catalog entry with its unlock condition.
type badgeDef struct {
	id          string
	name        string
	description string
	unlocked    func(st *UserStamina, deckCount int) bool
}

var badgeCatalog = []badgeDef{
	{"first-deck", "Liftoff", "Generate your first deck",
		func(_ *UserStamina, decks int) bool { return decks >= 1 }},
	{"cards-50", "Warmed Up", "Complete 50 cards",
		func(st *UserStamina, _ int) bool { return st != nil && st.TotalCardsCompleted >= 50 }},
	{"cards-250", "Card Shark", "Complete 250 cards",
		func(st *UserStamina, _ int) bool { return st != nil && st.TotalCardsCompleted >= 250 }},
	{"streak-5", "On Fire", "Keep a 5-day streak",
		func(st *UserStamina, _ int) bool { return st != nil && st.LongestStreak >= 5 }},
	{"streak-30", "Iron Will", "Keep a 30-day streak",
		func(st *UserStamina, _ int) bool { return st != nil && st.LongestStreak >= 30 }},
	{"words-1000", "Word Collector", "Learn 1,000 words",
		func(st *UserStamina, _ int) bool { return st != nil && st.TotalWordsLearned >= 1000 }},
	{"words-10000", "Lexicon", "Learn 10,000 words",
		func(st *UserStamina, _ int) bool { return st != nil && st.TotalWordsLearned >= 10000 }},
}

// BadgesFor evaluates the fixed badge catalog against a stamina record
// and the user's deck count. A nil stamina means no activity yet.
func BadgesFor(st *UserStamina, deckCount int) []Badge {
	badges := make([]Badge, 0, len(badgeCatalog))
	for _, def := range badgeCatalog {
		badges = append(badges, Badge{
			ID:          def.id,
			Name:        def.name,
			Description: def.description,
			Unlocked:    def.unlocked(st, deckCount),
		})
	}
	return badges
}
