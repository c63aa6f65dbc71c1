package models

import (
	"time"

	"github.com/google/uuid"
)

// UserStamina is the aggregate study-progress record for one user.
type UserStamina struct {
	UserID              uuid.UUID  `json:"user_id"`
	TotalCardsCompleted int        `json:"total_cards_completed"`
	TotalWordsLearned   int        `json:"total_words_learned"`
	CurrentStreak       int        `json:"current_streak"`
	LongestStreak       int        `json:"longest_streak"`
	LastActivityDate    *time.Time `json:"last_activity_date"`
	TotalTimeSpentMin   int        `json:"total_time_spent_minutes"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Card completion actions.
const (
	ActionLearned = "learned"
	ActionSkipped = "skipped"
)

type CardCompletion struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	DeckID      uuid.UUID `json:"deck_id"`
	CardID      string    `json:"card_id"`
	Action      string    `json:"action"`
	CompletedAt time.Time `json:"completed_at"`
}

type RecordCompletionRequest struct {
	DeckID uuid.UUID `json:"deck_id"`
	CardID string    `json:"card_id"`
	Action string    `json:"action"`
}

type FinishSessionRequest struct {
	DeckID       uuid.UUID `json:"deck_id"`
	CardsLearned int       `json:"cards_learned"`
	WordsLearned int       `json:"words_learned"`
	MinutesSpent int       `json:"minutes_spent"`
}

// Badge is one entry of the fixed achievement catalog, evaluated
// against a user's stamina record.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}
