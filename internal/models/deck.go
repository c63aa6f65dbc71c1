package models

import (
	"time"

	"github.com/google/uuid"
)

// Vibe selectors. Each maps to a distinct instructional tone in the prompt.
const (
	VibeKid     = "kid"
	VibeStudent = "student"
	VibePro     = "pro"
)

// ValidVibe reports whether v is a known vibe selector.
func ValidVibe(v string) bool {
	return v == VibeKid || v == VibeStudent || v == VibePro
}

// Source origins for deck text.
const (
	OriginPasted = "pasted"
	OriginURL    = "url"
	OriginFile   = "file"
)

type Deck struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Cards       []Card    `json:"cards"`
	CardCount   int       `json:"card_count"`
	Origin      string    `json:"origin"`
	Vibe        string    `json:"vibe"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type GenerateDeckRequest struct {
	Text       string `json:"text"`
	URL        string `json:"url"`
	Vibe       string `json:"vibe"`
	Difficulty string `json:"difficulty"` // beginner|intermediate|advanced|auto
}

type UpdateDeckTitleRequest struct {
	Title string `json:"title"`
}
