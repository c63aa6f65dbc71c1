package pipeline

import (
	"fmt"
	"strings"

	"stamina-backend/internal/models"
)

// PromptSpec is the composed instruction set for one generation call.
// Instruction carries the rules and output schema, Source carries the
// text plus coverage hints; they map to the provider's system and user
// turns respectively.
type PromptSpec struct {
	Instruction      string
	Source           string
	CardCount        int
	TargetDifficulty string
}

// Compose builds the structured prompt for the generation provider.
// The last card is always the quiz card; all preceding cards are
// concept cards.
func Compose(sourceText, vibe string, cardTarget int, targetDifficulty string, hints []SectionHint) PromptSpec {
	var b strings.Builder

	// Layer 1 — Role
	b.WriteString("You are an expert at turning dense text into swipeable study cards for short attention spans.\n\n")
	b.WriteString("CRITICAL: Return ONLY a valid JSON object. No preamble, no markdown, no backticks.\n\n")

	// Layer 2 — Count and structure
	conceptCount := cardTarget - 1
	b.WriteString(fmt.Sprintf("Generate exactly %d cards: %d concept cards followed by exactly 1 quiz card as the final card.\n\n", cardTarget, conceptCount))

	// Layer 3 — Content selection priority
	b.WriteString("Content priority, in order:\n")
	b.WriteString("1. Key terms and definitions\n")
	b.WriteString("2. Causal and relational statements (X leads to Y, A depends on B)\n")
	b.WriteString("3. The overall takeaway\n")
	b.WriteString("Exclude anecdotes and repeated examples.\n\n")

	// Layer 4 — Vibe
	switch vibe {
	case models.VibeKid:
		b.WriteString("Tone: simple, playful, metaphor-rich. Explain like the reader is a curious kid. Short sentences, fun comparisons.\n\n")
	case models.VibePro:
		b.WriteString("Tone: advanced, analytical, implementation-oriented. Assume a professional reader who wants precision and nuance.\n\n")
	default:
		b.WriteString("Tone: balanced conceptual explanation for a motivated student. Clear, informative, with relevant context and connections.\n\n")
	}

	// Layer 5 — Difficulty
	b.WriteString(fmt.Sprintf("Difficulty: use %q as the center of gravity, but assign each card its own difficulty from beginner, intermediate, or advanced based on the actual complexity of its concept.\n\n", targetDifficulty))

	// Layer 6 — Output schema. Cards are wrapped in a "cards" object,
	// not returned as a bare array.
	b.WriteString(`Return a single JSON object: {"cards": [...]}.

Concept card schema:
{"id": "string", "hook": "short attention-grabbing headline", "meat": "core explanation", "simplified": "one-line restatement in plain words", "category": "topic label", "difficulty": "beginner"|"intermediate"|"advanced", "isQuiz": false}

Quiz card schema (final card only):
{"id": "string", "hook": "Quick Check", "meat": "Test what stuck", "quizQuestion": "string", "quizOptions": ["string", "string", "string", "string"], "quizAnswer": 0, "category": "Quiz", "difficulty": "beginner"|"intermediate"|"advanced", "isQuiz": true}

quizAnswer is the zero-based index of the correct option.
`)

	// User turn — the source plus coverage hints.
	var src strings.Builder
	src.WriteString("---SOURCE TEXT---\n")
	src.WriteString(sourceText)
	src.WriteString("\n---END SOURCE---\n")

	if len(hints) > 0 {
		src.WriteString("\nCoverage targets — every section below must be represented. If there are more sections than concept card slots, merge adjacent sections into one card instead of dropping any:\n")
		for _, h := range hints {
			src.WriteString(fmt.Sprintf("- %s: %s\n", h.Label, h.Preview))
		}
	}

	return PromptSpec{
		Instruction:      b.String(),
		Source:           src.String(),
		CardCount:        cardTarget,
		TargetDifficulty: targetDifficulty,
	}
}
