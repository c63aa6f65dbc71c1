package pipeline

// Config holds the tunable constants of the deck-generation pipeline.
// The complexity thresholds are heuristic cut points, not a validated
// readability formula; keep them overridable rather than inlined.
type Config struct {
	// MaxSourceChars bounds normalized source text; the prefix is kept.
	MaxSourceChars int

	// Card-count sizing ("Goldilocks" rule, coverage-aware).
	WordsPerCard int // one card per this many words before boosts
	MinCards     int
	MaxCards     int
	SectionCap   int // at most this many sections count toward the boost

	// Section hints take the first HintWords words of each section.
	HintWords int

	// Complexity score boundaries: score < BeginnerMax is beginner,
	// score < IntermediateMax is intermediate, anything above is advanced.
	BeginnerMax     float64
	IntermediateMax float64
}

// DefaultConfig returns the production constants.
func DefaultConfig() Config {
	return Config{
		MaxSourceChars:  120000,
		WordsPerCard:    120,
		MinCards:        6,
		MaxCards:        24,
		SectionCap:      12,
		HintWords:       12,
		BeginnerMax:     12,
		IntermediateMax: 18,
	}
}

// Pipeline stages, published as job status updates while an attempt runs.
const (
	StageNormalizing = "normalizing"
	StageAnalyzing   = "analyzing"
	StageComposing   = "composing"
	StageGenerating  = "generating"
	StageValidating  = "validating"
	StageAssembled   = "assembled"
)
