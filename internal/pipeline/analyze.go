package pipeline

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"stamina-backend/internal/models"
)

var (
	wordPattern     = regexp.MustCompile(`[\w']+`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
	sectionPattern  = regexp.MustCompile(`\n\s*\n`)
)

// SectionHint is a short summary of one paragraph-delimited section,
// used only to bias generation coverage. Never persisted.
type SectionHint struct {
	Label   string `json:"label"`
	Preview string `json:"preview"`
}

// Analysis is the analyzer's read of the source text: raw counts, the
// complexity heuristic, and the two derived targets the rest of the
// pipeline consumes.
type Analysis struct {
	WordCount          int
	SentenceCount      int
	AvgWordLength      float64
	AvgSentenceLength  float64
	ComplexityScore    float64
	InferredDifficulty string
	Sections           []SectionHint
	CardTarget         int
}

// Analyze computes word and sentence statistics, a complexity score used
// to infer a difficulty level, paragraph-based section hints, and the
// coverage-aware card-count target.
func Analyze(text string, cfg Config) Analysis {
	words := wordPattern.FindAllString(text, -1)

	wordCount := len(words)
	if wordCount < 1 {
		wordCount = 1
	}

	totalWordChars := 0
	for _, w := range words {
		totalWordChars += len([]rune(w))
	}

	sentenceCount := 0
	for _, frag := range sentencePattern.Split(text, -1) {
		if strings.TrimSpace(frag) != "" {
			sentenceCount++
		}
	}
	if sentenceCount < 1 {
		sentenceCount = 1
	}

	avgWordLength := float64(totalWordChars) / float64(wordCount)
	avgSentenceLength := float64(wordCount) / float64(sentenceCount)
	score := avgSentenceLength*0.6 + avgWordLength*2

	sections := splitSections(text, cfg.HintWords)

	return Analysis{
		WordCount:          wordCount,
		SentenceCount:      sentenceCount,
		AvgWordLength:      avgWordLength,
		AvgSentenceLength:  avgSentenceLength,
		ComplexityScore:    score,
		InferredDifficulty: difficultyForScore(score, cfg),
		Sections:           sections,
		CardTarget:         cardTarget(wordCount, len(sections), cfg),
	}
}

func difficultyForScore(score float64, cfg Config) string {
	switch {
	case score < cfg.BeginnerMax:
		return models.DifficultyBeginner
	case score < cfg.IntermediateMax:
		return models.DifficultyIntermediate
	default:
		return models.DifficultyAdvanced
	}
}

// cardTarget applies the coverage-aware Goldilocks rule: scale with
// content length, guarantee at least one card per detected section up to
// the cap, and keep the result inside [MinCards, MaxCards].
func cardTarget(wordCount, sectionCount int, cfg Config) int {
	base := int(math.Ceil(float64(wordCount) / float64(cfg.WordsPerCard)))

	boost := sectionCount
	if boost > cfg.SectionCap {
		boost = cfg.SectionCap
	}

	target := base
	if boost > target {
		target = boost
	}
	if target < cfg.MinCards {
		target = cfg.MinCards
	}
	if target > cfg.MaxCards {
		target = cfg.MaxCards
	}
	return target
}

func splitSections(text string, hintWords int) []SectionHint {
	var hints []SectionHint
	for _, seg := range sectionPattern.Split(text, -1) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		words := strings.Fields(seg)
		preview := seg
		if len(words) > hintWords {
			preview = strings.Join(words[:hintWords], " ") + "..."
		}

		hints = append(hints, SectionHint{
			Label:   fmt.Sprintf("Section %d", len(hints)+1),
			Preview: preview,
		})
	}
	return hints
}
