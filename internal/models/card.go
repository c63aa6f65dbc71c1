package models

import "fmt"

// Difficulty levels, ordered. "auto" is a request mode, never a stored value.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
	DifficultyAuto         = "auto"
)

// DifficultyRank maps a difficulty to its position in the
// beginner < intermediate < advanced ordering. Unknown values rank as -1.
func DifficultyRank(d string) int {
	switch d {
	case DifficultyBeginner:
		return 0
	case DifficultyIntermediate:
		return 1
	case DifficultyAdvanced:
		return 2
	}
	return -1
}

// ValidDifficulty reports whether d is a storable difficulty level.
func ValidDifficulty(d string) bool {
	return DifficultyRank(d) >= 0
}

// Card is one unit of a study deck. Two variants share the struct,
// discriminated by IsQuiz: concept cards carry Hook/Meat/Simplified,
// the quiz card carries QuizQuestion/QuizOptions/QuizAnswer.
type Card struct {
	ID         string `json:"id"`
	Hook       string `json:"hook"`
	Meat       string `json:"meat"`
	Simplified string `json:"simplified,omitempty"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`

	IsQuiz       bool     `json:"isQuiz"`
	QuizQuestion string   `json:"quizQuestion,omitempty"`
	QuizOptions  []string `json:"quizOptions,omitempty"`
	QuizAnswer   int      `json:"quizAnswer,omitempty"`
}

// Validate checks the variant-specific field rules for a single card.
func (c Card) Validate() error {
	if !ValidDifficulty(c.Difficulty) {
		return fmt.Errorf("invalid difficulty %q", c.Difficulty)
	}
	if c.IsQuiz {
		if c.QuizQuestion == "" {
			return fmt.Errorf("quiz card has no question")
		}
		if len(c.QuizOptions) < 2 {
			return fmt.Errorf("quiz card has %d options, need at least 2", len(c.QuizOptions))
		}
		if c.QuizAnswer < 0 || c.QuizAnswer >= len(c.QuizOptions) {
			return fmt.Errorf("quiz answer index %d out of range for %d options", c.QuizAnswer, len(c.QuizOptions))
		}
		return nil
	}
	if c.Hook == "" && c.Meat == "" {
		return fmt.Errorf("concept card has neither hook nor meat")
	}
	return nil
}

// ValidateDeckCards enforces the deck-level invariant: at least one card,
// exactly one quiz card, and the quiz card is the last element.
func ValidateDeckCards(cards []Card) error {
	if len(cards) == 0 {
		return fmt.Errorf("deck has no cards")
	}
	for i, c := range cards {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("card %d: %w", i, err)
		}
		if c.IsQuiz && i != len(cards)-1 {
			return fmt.Errorf("quiz card at position %d, must be last", i)
		}
	}
	if !cards[len(cards)-1].IsQuiz {
		return fmt.Errorf("last card is not a quiz card")
	}
	return nil
}
