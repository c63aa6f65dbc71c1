package pipeline

import (
	"strings"
	"testing"

	"stamina-backend/internal/models"
)

func TestAnalyzeCounts(t *testing.T) {
	text := "The cat sat. The dog ran! Did the bird fly?"
	a := Analyze(text, DefaultConfig())

	if a.WordCount != 10 {
		t.Errorf("Expected 10 words, got %d", a.WordCount)
	}
	if a.SentenceCount != 3 {
		t.Errorf("Expected 3 sentences, got %d", a.SentenceCount)
	}
}

func TestAnalyzeFloorsAtOne(t *testing.T) {
	a := Analyze("", DefaultConfig())

	if a.WordCount != 1 {
		t.Errorf("Expected word count floor of 1, got %d", a.WordCount)
	}
	if a.SentenceCount != 1 {
		t.Errorf("Expected sentence count floor of 1, got %d", a.SentenceCount)
	}
}

func TestDifficultyForScore(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		score float64
		want  string
	}{
		{0, models.DifficultyBeginner},
		{11.9, models.DifficultyBeginner},
		{12, models.DifficultyIntermediate},
		{17.9, models.DifficultyIntermediate},
		{18, models.DifficultyAdvanced},
		{40, models.DifficultyAdvanced},
	}

	for _, tc := range tests {
		if got := difficultyForScore(tc.score, cfg); got != tc.want {
			t.Errorf("difficultyForScore(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestAnalyzeComplexityScore(t *testing.T) {
	// 5 one-letter words in one sentence: avg sentence length 5, avg
	// word length 1, score 5*0.6 + 1*2 = 5.
	a := Analyze("a b c d e.", DefaultConfig())

	if a.ComplexityScore < 4.99 || a.ComplexityScore > 5.01 {
		t.Errorf("Expected score ~5, got %v", a.ComplexityScore)
	}
	if a.InferredDifficulty != models.DifficultyBeginner {
		t.Errorf("Expected beginner, got %q", a.InferredDifficulty)
	}
}

func TestCardTarget(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		words    int
		sections int
		want     int
	}{
		{"short text floors at min", 100, 1, 6},
		{"480 words 3 sections", 480, 3, 6},
		{"length scales target", 1200, 1, 10},
		{"sections boost sparse text", 300, 9, 9},
		{"section boost capped", 600, 20, 12},
		{"long text caps at max", 10000, 4, 24},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cardTarget(tc.words, tc.sections, cfg); got != tc.want {
				t.Errorf("cardTarget(%d, %d) = %d, want %d", tc.words, tc.sections, got, tc.want)
			}
		})
	}
}

func TestAnalyzeSectionHints(t *testing.T) {
	long := strings.Repeat("alpha ", 20)
	text := "First section short.\n\n" + long + "\n\nThird one here."

	a := Analyze(text, DefaultConfig())

	if len(a.Sections) != 3 {
		t.Fatalf("Expected 3 section hints, got %d", len(a.Sections))
	}

	if a.Sections[0].Label != "Section 1" {
		t.Errorf("Expected label 'Section 1', got %q", a.Sections[0].Label)
	}
	if a.Sections[0].Preview != "First section short." {
		t.Errorf("Short section should keep full text, got %q", a.Sections[0].Preview)
	}

	if !strings.HasSuffix(a.Sections[1].Preview, "...") {
		t.Errorf("Long section preview should end with ellipsis, got %q", a.Sections[1].Preview)
	}
	if n := len(strings.Fields(strings.TrimSuffix(a.Sections[1].Preview, "..."))); n != 12 {
		t.Errorf("Expected 12-word preview, got %d words", n)
	}
}

func TestAnalyzeCoverageExample(t *testing.T) {
	// 480 words spread over 3 paragraphs should land at the minimum of 6
	// cards: length asks for 4, sections ask for 3, floor wins.
	para := strings.TrimSpace(strings.Repeat("word ", 160))
	text := para + ".\n\n" + para + ".\n\n" + para + "."

	a := Analyze(text, DefaultConfig())

	if a.WordCount != 480 {
		t.Fatalf("Expected 480 words, got %d", a.WordCount)
	}
	if len(a.Sections) != 3 {
		t.Fatalf("Expected 3 sections, got %d", len(a.Sections))
	}
	if a.CardTarget != 6 {
		t.Errorf("Expected card target 6, got %d", a.CardTarget)
	}
}
