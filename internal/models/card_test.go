package models

import (
	"strings"
	"testing"
)

func conceptCard(id string) Card {
	return Card{ID: id, Hook: "Hook", Meat: "Meat", Category: "Topic", Difficulty: DifficultyBeginner}
}

func quizCard() Card {
	return Card{
		ID: "quiz", Hook: "Quick Check", Meat: "Test what stuck",
		Category: "Quiz", Difficulty: DifficultyBeginner,
		IsQuiz: true, QuizQuestion: "Q?", QuizOptions: []string{"a", "b", "c", "d"}, QuizAnswer: 1,
	}
}

func TestCardValidate(t *testing.T) {
	tests := []struct {
		name    string
		card    Card
		wantErr string
	}{
		{name: "valid concept", card: conceptCard("c1")},
		{name: "valid quiz", card: quizCard()},
		{name: "bad difficulty", card: Card{Hook: "h", Difficulty: "expert"}, wantErr: "invalid difficulty"},
		{name: "auto not storable", card: Card{Hook: "h", Difficulty: DifficultyAuto}, wantErr: "invalid difficulty"},
		{name: "empty concept", card: Card{Difficulty: DifficultyBeginner}, wantErr: "neither hook nor meat"},
		{name: "quiz without question", card: func() Card { c := quizCard(); c.QuizQuestion = ""; return c }(), wantErr: "no question"},
		{name: "quiz one option", card: func() Card { c := quizCard(); c.QuizOptions = []string{"a"}; return c }(), wantErr: "need at least 2"},
		{name: "quiz answer too high", card: func() Card { c := quizCard(); c.QuizAnswer = 4; return c }(), wantErr: "out of range"},
		{name: "quiz answer negative", card: func() Card { c := quizCard(); c.QuizAnswer = -1; return c }(), wantErr: "out of range"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.card.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected valid card, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateDeckCards(t *testing.T) {
	tests := []struct {
		name    string
		cards   []Card
		wantErr string
	}{
		{name: "valid deck", cards: []Card{conceptCard("c1"), conceptCard("c2"), quizCard()}},
		{name: "empty deck", cards: nil, wantErr: "no cards"},
		{name: "no quiz", cards: []Card{conceptCard("c1"), conceptCard("c2")}, wantErr: "not a quiz card"},
		{name: "quiz not last", cards: []Card{quizCard(), conceptCard("c1")}, wantErr: "must be last"},
		{name: "two quizzes", cards: []Card{conceptCard("c1"), quizCard(), quizCard()}, wantErr: "must be last"},
		{name: "invalid member", cards: []Card{{Difficulty: "bogus"}, quizCard()}, wantErr: "card 0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDeckCards(tc.cards)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected valid deck, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestBadgesFor(t *testing.T) {
	badges := BadgesFor(nil, 0)
	for _, b := range badges {
		if b.Unlocked {
			t.Errorf("Badge %q unlocked with no activity", b.ID)
		}
	}

	st := &UserStamina{TotalCardsCompleted: 60, TotalWordsLearned: 1500, LongestStreak: 6}
	unlocked := map[string]bool{}
	for _, b := range BadgesFor(st, 2) {
		unlocked[b.ID] = b.Unlocked
	}

	for _, id := range []string{"first-deck", "cards-50", "streak-5", "words-1000"} {
		if !unlocked[id] {
			t.Errorf("Expected badge %q unlocked", id)
		}
	}
	for _, id := range []string{"cards-250", "streak-30", "words-10000"} {
		if unlocked[id] {
			t.Errorf("Expected badge %q locked", id)
		}
	}
}
