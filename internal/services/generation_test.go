package services

import (
	"strings"
	"testing"

	"stamina-backend/internal/models"
)

const wrappedJSON = `{"cards": [
	{"id": "card-1", "hook": "Hook", "meat": "Meat", "simplified": "s", "category": "Topic", "difficulty": "beginner", "isQuiz": false},
	{"id": "card-2", "hook": "Quick Check", "meat": "Test what stuck", "quizQuestion": "Q?", "quizOptions": ["a", "b", "c", "d"], "quizAnswer": 2, "category": "Quiz", "difficulty": "beginner", "isQuiz": true}
]}`

func TestDecodeCardsWrapped(t *testing.T) {
	cards, shape := decodeCards(wrappedJSON)

	if shape != shapeWrappedCards {
		t.Fatalf("Expected wrapped shape, got %v", shape)
	}
	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}
	if !cards[1].IsQuiz || cards[1].QuizAnswer != 2 {
		t.Errorf("Quiz card decoded wrong: %+v", cards[1])
	}
}

func TestDecodeCardsBareArray(t *testing.T) {
	raw := `[{"id": "card-1", "hook": "Hook", "meat": "Meat", "difficulty": "beginner"}]`

	cards, shape := decodeCards(raw)
	if shape != shapeBareArray {
		t.Fatalf("Expected bare-array shape, got %v", shape)
	}
	if len(cards) != 1 || cards[0].Hook != "Hook" {
		t.Errorf("Unexpected cards: %+v", cards)
	}
}

func TestDecodeCardsUnrecognized(t *testing.T) {
	inputs := []string{
		"",
		"I could not generate cards, sorry.",
		`{"decks": []}`,
		`{"cards": "not an array"}`,
	}

	for _, raw := range inputs {
		if _, shape := decodeCards(raw); shape != shapeUnrecognized {
			t.Errorf("Expected unrecognized shape for %q, got %v", raw, shape)
		}
	}
}

func TestSanitizeCardsMovesQuizLast(t *testing.T) {
	cards := []models.Card{
		{Hook: "Quiz first", IsQuiz: true, QuizQuestion: "Q?", QuizOptions: []string{"a", "b"}, QuizAnswer: 0, Difficulty: "beginner"},
		{Hook: "Concept", Meat: "m", Difficulty: "beginner"},
	}

	out, err := sanitizeCards(cards, models.DifficultyBeginner)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(out))
	}
	if !out[len(out)-1].IsQuiz {
		t.Errorf("Quiz card should be last, got %+v", out)
	}
}

func TestSanitizeCardsDropsBrokenQuiz(t *testing.T) {
	cards := []models.Card{
		{Hook: "Concept", Meat: "m", Difficulty: "beginner"},
		// Answer index out of range
		{IsQuiz: true, QuizQuestion: "Q?", QuizOptions: []string{"a", "b"}, QuizAnswer: 5, Difficulty: "beginner"},
		{IsQuiz: true, QuizQuestion: "Q2?", QuizOptions: []string{"a", "b", "c"}, QuizAnswer: 1, Difficulty: "beginner"},
	}

	out, err := sanitizeCards(cards, models.DifficultyBeginner)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	last := out[len(out)-1]
	if last.QuizQuestion != "Q2?" {
		t.Errorf("Expected second quiz to survive, got %+v", last)
	}
}

func TestSanitizeCardsKeepsFirstValidQuiz(t *testing.T) {
	cards := []models.Card{
		{Hook: "Concept", Meat: "m", Difficulty: "beginner"},
		{IsQuiz: true, QuizQuestion: "First?", QuizOptions: []string{"a", "b"}, QuizAnswer: 0, Difficulty: "beginner"},
		{IsQuiz: true, QuizQuestion: "Second?", QuizOptions: []string{"a", "b"}, QuizAnswer: 1, Difficulty: "beginner"},
	}

	out, err := sanitizeCards(cards, models.DifficultyBeginner)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Expected duplicate quiz dropped, got %d cards", len(out))
	}
	if out[1].QuizQuestion != "First?" {
		t.Errorf("Expected first valid quiz kept, got %+v", out[1])
	}
}

func TestSanitizeCardsFailures(t *testing.T) {
	quiz := models.Card{IsQuiz: true, QuizQuestion: "Q?", QuizOptions: []string{"a", "b"}, QuizAnswer: 0, Difficulty: "beginner"}
	concept := models.Card{Hook: "h", Meat: "m", Difficulty: "beginner"}

	if _, err := sanitizeCards([]models.Card{quiz}, models.DifficultyBeginner); err == nil {
		t.Errorf("Expected error for quiz-only response")
	}
	if _, err := sanitizeCards([]models.Card{concept}, models.DifficultyBeginner); err == nil {
		t.Errorf("Expected error for response without a quiz")
	}
	if _, err := sanitizeCards(nil, models.DifficultyBeginner); err == nil {
		t.Errorf("Expected error for empty response")
	}
}

func TestSanitizeCardsRepairs(t *testing.T) {
	cards := []models.Card{
		{Hook: "  padded  ", Meat: "m", Difficulty: "impossible"},
		{IsQuiz: true, QuizQuestion: "Q?", QuizOptions: []string{"a", "b"}, QuizAnswer: 0, Difficulty: "beginner"},
	}

	out, err := sanitizeCards(cards, models.DifficultyIntermediate)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if out[0].Hook != "padded" {
		t.Errorf("Expected trimmed hook, got %q", out[0].Hook)
	}
	if out[0].Difficulty != models.DifficultyIntermediate {
		t.Errorf("Expected difficulty fallback to target, got %q", out[0].Difficulty)
	}
	if out[0].Category != "General" {
		t.Errorf("Expected default category, got %q", out[0].Category)
	}
	for i, c := range out {
		if c.ID == "" {
			t.Errorf("Card %d missing assigned ID", i)
		}
	}
}

func TestFenceStripping(t *testing.T) {
	// Mirrors the cleanup GenerateCards applies before decoding.
	raw := "```json\n" + wrappedJSON + "\n```"
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	if _, shape := decodeCards(raw); shape != shapeWrappedCards {
		t.Errorf("Fenced payload should decode after stripping, got shape %v", shape)
	}
}
