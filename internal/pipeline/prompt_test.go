package pipeline

import (
	"strings"
	"testing"

	"stamina-backend/internal/models"
)

func TestComposeCardCount(t *testing.T) {
	spec := Compose("source", models.VibeStudent, 8, models.DifficultyIntermediate, nil)

	if spec.CardCount != 8 {
		t.Errorf("Expected card count 8, got %d", spec.CardCount)
	}
	if !strings.Contains(spec.Instruction, "Generate exactly 8 cards: 7 concept cards followed by exactly 1 quiz card") {
		t.Errorf("Instruction missing count directive:\n%s", spec.Instruction)
	}
}

func TestComposeVibeDirectives(t *testing.T) {
	tests := []struct {
		vibe string
		want string
	}{
		{models.VibeKid, "curious kid"},
		{models.VibeStudent, "motivated student"},
		{models.VibePro, "professional reader"},
	}

	for _, tc := range tests {
		t.Run(tc.vibe, func(t *testing.T) {
			spec := Compose("source", tc.vibe, 6, models.DifficultyBeginner, nil)
			if !strings.Contains(spec.Instruction, tc.want) {
				t.Errorf("Vibe %q instruction missing %q", tc.vibe, tc.want)
			}
		})
	}
}

func TestComposeDifficultyCenter(t *testing.T) {
	spec := Compose("source", models.VibePro, 6, models.DifficultyAdvanced, nil)

	if spec.TargetDifficulty != models.DifficultyAdvanced {
		t.Errorf("Expected target difficulty advanced, got %q", spec.TargetDifficulty)
	}
	if !strings.Contains(spec.Instruction, `"advanced" as the center of gravity`) {
		t.Errorf("Instruction missing difficulty directive:\n%s", spec.Instruction)
	}
}

func TestComposeSourceAndHints(t *testing.T) {
	hints := []SectionHint{
		{Label: "Section 1", Preview: "Photosynthesis basics..."},
		{Label: "Section 2", Preview: "The Calvin cycle..."},
	}

	spec := Compose("the source body", models.VibeStudent, 6, models.DifficultyBeginner, hints)

	if !strings.Contains(spec.Source, "the source body") {
		t.Errorf("Source text missing from user turn")
	}
	if !strings.Contains(spec.Source, "Section 2: The Calvin cycle...") {
		t.Errorf("Hints missing from user turn:\n%s", spec.Source)
	}
	if !strings.Contains(spec.Source, "merge adjacent sections") {
		t.Errorf("Merge instruction missing from user turn")
	}
}

func TestComposeNoHints(t *testing.T) {
	spec := Compose("body", models.VibeStudent, 6, models.DifficultyBeginner, nil)

	if strings.Contains(spec.Source, "Coverage targets") {
		t.Errorf("Coverage block should be omitted without hints")
	}
}

func TestComposeSchemaWrapsCards(t *testing.T) {
	spec := Compose("body", models.VibeStudent, 6, models.DifficultyBeginner, nil)

	if !strings.Contains(spec.Instruction, `{"cards": [...]}`) {
		t.Errorf("Instruction missing wrapped-cards schema")
	}
	if !strings.Contains(spec.Instruction, "zero-based index") {
		t.Errorf("Instruction missing quiz answer index rule")
	}
}
