package pipeline

import (
	"testing"

	"stamina-backend/internal/models"
)

func sampleCards() []models.Card {
	return []models.Card{
		{ID: "card-1", Hook: "Big Idea", Meat: "explanation", Simplified: "simple", Category: "Topic", Difficulty: models.DifficultyBeginner},
		{ID: "card-2", Hook: "Quick Check", Meat: "Test what stuck", IsQuiz: true, QuizQuestion: "Q?", QuizOptions: []string{"a", "b"}, QuizAnswer: 0, Category: "Quiz", Difficulty: models.DifficultyBeginner},
	}
}

func TestAssemble(t *testing.T) {
	deck := Assemble("Photosynthesis converts light energy into chemical energy for plants", models.VibeKid, models.OriginPasted, sampleCards())

	if deck.Title != "Photosynthesis converts light energy into chemical..." {
		t.Errorf("Unexpected title %q", deck.Title)
	}
	if deck.Description != "Generated from text with kid vibe" {
		t.Errorf("Unexpected description %q", deck.Description)
	}
	if deck.CardCount != 2 {
		t.Errorf("Expected card count 2, got %d", deck.CardCount)
	}
	if deck.Origin != models.OriginPasted {
		t.Errorf("Expected origin pasted, got %q", deck.Origin)
	}
	if deck.Vibe != models.VibeKid {
		t.Errorf("Expected vibe kid, got %q", deck.Vibe)
	}
}

func TestDeriveTitleShortSource(t *testing.T) {
	deck := Assemble("Just four words here", models.VibeStudent, models.OriginURL, sampleCards())

	if deck.Title != "Just four words here" {
		t.Errorf("Short source should be used whole, got %q", deck.Title)
	}
}

func TestDeriveTitleFallbacks(t *testing.T) {
	deck := Assemble("", models.VibeStudent, models.OriginPasted, sampleCards())
	if deck.Title != "Big Idea" {
		t.Errorf("Expected first card hook as title, got %q", deck.Title)
	}

	deck = Assemble("", models.VibeStudent, models.OriginPasted, nil)
	if deck.Title != "Generated Deck" {
		t.Errorf("Expected generic title, got %q", deck.Title)
	}
}
