package analysis

import (
	"errors"
	"fmt"
	"math"
)

// Limits bounds list sizes used by the matchers and the recommendation generator.
type Limits struct {
	// TopTerms is how many of the most frequent terms of each text are compared.
	TopTerms int
	// MissingCap limits the reported missing keywords.
	MissingCap int
	// ScoreDenominator caps the candidate count used as the keyword score denominator.
	ScoreDenominator int
	// MaxRecommendations truncates the recommendation list.
	MaxRecommendations int
}

// DefaultLimits returns the limits the scoring thresholds were tuned for.
func DefaultLimits() Limits {
	return Limits{
		TopTerms:           40,
		MissingCap:         20,
		ScoreDenominator:   30,
		MaxRecommendations: 12,
	}
}

// Validate reports limits that would make the analysis meaningless.
func (l Limits) Validate() error {
	if l.TopTerms <= 0 {
		return fmt.Errorf("top terms must be positive, got %d", l.TopTerms)
	}
	if l.MissingCap < 0 {
		return fmt.Errorf("missing cap must not be negative, got %d", l.MissingCap)
	}
	if l.ScoreDenominator <= 0 {
		return fmt.Errorf("score denominator must be positive, got %d", l.ScoreDenominator)
	}
	if l.MaxRecommendations <= 0 {
		return fmt.Errorf("max recommendations must be positive, got %d", l.MaxRecommendations)
	}
	return nil
}

// CategoryWeight is the share of a category in the overall score.
// Default, when set, is used as the category score when the category could not be computed.
type CategoryWeight struct {
	Weight  float64
	Default *int
}

// Weights maps each category to its weight.
type Weights map[Category]CategoryWeight

const weightSumTolerance = 0.001

// KeywordsDefaultScore is the neutral keywords score used without a job description.
const KeywordsDefaultScore = 50

// DefaultWeights returns the standard weight table.
func DefaultWeights() Weights {
	return Weights{
		CategoryFormatting:  {Weight: 0.25},
		CategoryKeywords:    {Weight: 0.25, Default: intPtr(KeywordsDefaultScore)},
		CategoryContent:     {Weight: 0.20},
		CategoryStructure:   {Weight: 0.20},
		CategoryReadability: {Weight: 0.10},
	}
}

// Validate checks that every weight belongs to a known category, is not
// negative and that the weights add up to 1.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return errors.New("weights are empty")
	}

	known := make(map[Category]struct{}, len(Categories))
	for _, c := range Categories {
		known[c] = struct{}{}
	}

	sum := 0.0
	for category, cw := range w {
		if _, ok := known[category]; !ok {
			return fmt.Errorf("unknown category %q", category)
		}
		if cw.Weight < 0 {
			return fmt.Errorf("weight of %s must not be negative, got %v", category, cw.Weight)
		}
		if cw.Default != nil && (*cw.Default < 0 || *cw.Default > 100) {
			return fmt.Errorf("default score of %s must be within 0..100, got %d", category, *cw.Default)
		}
		sum += cw.Weight
	}

	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1, got %.3f", sum)
	}
	return nil
}

// Resolve returns a copy of scores where categories that are missing but have a
// default in the table are filled in.
func (w Weights) Resolve(scores map[Category]int) map[Category]int {
	resolved := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		if score, ok := scores[c]; ok {
			resolved[c] = clampScore(score)
			continue
		}
		if cw, ok := w[c]; ok && cw.Default != nil {
			resolved[c] = clampScore(*cw.Default)
		}
	}
	return resolved
}

// Aggregate combines category scores into the overall score. Categories are
// summed in a fixed order so the result is reproducible; a category without a
// score or default contributes nothing.
func (w Weights) Aggregate(scores map[Category]int) int {
	resolved := w.Resolve(scores)

	total := 0.0
	for _, c := range Categories {
		cw, ok := w[c]
		if !ok {
			continue
		}
		total += float64(resolved[c]) * cw.Weight
	}
	return clampScore(int(math.Round(total)))
}

// Config holds everything the Analyzer needs.
type Config struct {
	Weights    Weights
	Limits     Limits
	Vocabulary []string
	Matcher    TermMatcher
}

// DefaultConfig returns the standard scoring configuration.
func DefaultConfig() Config {
	return Config{
		Weights:    DefaultWeights(),
		Limits:     DefaultLimits(),
		Vocabulary: TechnicalTerms(),
		Matcher:    SubstringMatcher{},
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if err := c.Limits.Validate(); err != nil {
		return fmt.Errorf("limits: %w", err)
	}
	if len(c.Vocabulary) == 0 {
		return errors.New("skills vocabulary is empty")
	}
	if c.Matcher == nil {
		return errors.New("term matcher is required")
	}
	return nil
}

func intPtr(v int) *int {
	return &v
}

func clampScore(score int) int {
	return max(0, min(100, score))
}
