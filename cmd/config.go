package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/spigell/ats-checker/internal/analysis"
	"github.com/spigell/ats-checker/internal/report"
)

const (
	matcherSubstring = "substring"
	matcherWord      = "word"

	providerGemini = "gemini"
)

func setDefaults(v *viper.Viper) {
	defaults := analysis.DefaultConfig()

	for category, w := range defaults.Weights {
		v.SetDefault("scoring.weights."+string(category), w.Weight)
	}
	v.SetDefault("scoring.keywords-default", analysis.KeywordsDefaultScore)
	v.SetDefault("scoring.matcher", matcherSubstring)
	v.SetDefault("scoring.extra-skills", []string{})

	v.SetDefault("limits.top-terms", defaults.Limits.TopTerms)
	v.SetDefault("limits.missing-cap", defaults.Limits.MissingCap)
	v.SetDefault("limits.score-denominator", defaults.Limits.ScoreDenominator)
	v.SetDefault("limits.max-recommendations", defaults.Limits.MaxRecommendations)

	v.SetDefault("report.format", report.FormatText)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", providerGemini)
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.instructions", "")
	v.SetDefault("ai.gemini.api-key", "")
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.model", "gemini-2.5-pro")
	v.SetDefault("ai.gemini.max-retries", 3)
	v.SetDefault("ai.gemini.max-log-length", 200)
}

// analysisConfig converts the file configuration into a validated engine configuration.
func (c *Config) analysisConfig() (analysis.Config, error) {
	cfg := analysis.DefaultConfig()

	if s := c.Scoring; s != nil {
		if len(s.Weights) > 0 {
			cfg.Weights = make(analysis.Weights, len(s.Weights))
			for name, weight := range s.Weights {
				cfg.Weights[analysis.Category(strings.ToLower(name))] = analysis.CategoryWeight{Weight: weight}
			}
		}
		if kw, ok := cfg.Weights[analysis.CategoryKeywords]; ok {
			def := s.KeywordsDefault
			kw.Default = &def
			cfg.Weights[analysis.CategoryKeywords] = kw
		}

		matcher, err := parseMatcher(s.Matcher)
		if err != nil {
			return cfg, err
		}
		cfg.Matcher = matcher

		known := make(map[string]struct{}, len(cfg.Vocabulary)+len(s.ExtraSkills))
		for _, skill := range cfg.Vocabulary {
			known[skill] = struct{}{}
		}
		for _, skill := range s.ExtraSkills {
			skill = strings.ToLower(strings.TrimSpace(skill))
			if skill == "" {
				continue
			}
			if _, ok := known[skill]; ok {
				continue
			}
			known[skill] = struct{}{}
			cfg.Vocabulary = append(cfg.Vocabulary, skill)
		}
	}

	if l := c.Limits; l != nil {
		cfg.Limits = analysis.Limits{
			TopTerms:           l.TopTerms,
			MissingCap:         l.MissingCap,
			ScoreDenominator:   l.ScoreDenominator,
			MaxRecommendations: l.MaxRecommendations,
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid scoring configuration: %w", err)
	}

	return cfg, nil
}

func parseMatcher(name string) (analysis.TermMatcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", matcherSubstring:
		return analysis.SubstringMatcher{}, nil
	case matcherWord:
		return analysis.WordMatcher{}, nil
	default:
		return nil, fmt.Errorf("unknown matcher %q (expected %s or %s)", name, matcherSubstring, matcherWord)
	}
}
