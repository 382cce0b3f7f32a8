package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spigell/ats-checker/internal/textutil"
)

const (
	maxDecorativeGlyphs = 5
	minNonEmptyLines    = 15
	minTextLength       = 300
	maxTextLength       = 3000
)

var (
	pipeRunPattern      = regexp.MustCompile(`\|{2,}`)
	headerFooterPattern = regexp.MustCompile(`(?i)\b(header|footer)\b`)
	decorativeGlyphs    = "★☆♦◆●◇■□▪▫"
)

// breakerRule is a single check of the ATS-breaker detector.
type breakerRule struct {
	finding Breaker
	matches func(text string) bool
}

// breakerRules are evaluated in order and independently of each other.
var breakerRules = []breakerRule{
	{
		finding: Breaker{
			Kind:        BreakerTablesColumns,
			Severity:    SeverityHigh,
			Description: "Tables and columns break ATS parsing. Use simple lists instead.",
		},
		matches: func(text string) bool {
			return strings.Contains(text, "\t") || pipeRunPattern.MatchString(text)
		},
	},
	{
		finding: Breaker{
			Kind:        BreakerSpecialCharacters,
			Severity:    SeverityMedium,
			Description: "Unusual bullets may not parse. Use standard bullets (•, -, *).",
		},
		matches: func(text string) bool {
			return countDecorativeGlyphs(text) > maxDecorativeGlyphs
		},
	},
	{
		finding: Breaker{
			Kind:        BreakerPoorStructure,
			Severity:    SeverityHigh,
			Description: "Resume lacks proper formatting with line breaks.",
		},
		matches: func(text string) bool {
			return len(textutil.NonEmptyLines(text)) < minNonEmptyLines
		},
	},
	{
		finding: Breaker{
			Kind:        BreakerHeadersFooters,
			Severity:    SeverityHigh,
			Description: "Headers and footers are invisible to ATS systems.",
		},
		matches: headerFooterPattern.MatchString,
	},
	{
		finding: Breaker{
			Kind:        BreakerTooShort,
			Severity:    SeverityHigh,
			Description: "Resume is too brief. Aim for 400-800 words.",
		},
		matches: func(text string) bool {
			return utf8.RuneCountInString(text) < minTextLength
		},
	},
	{
		finding: Breaker{
			Kind:        BreakerTooLong,
			Severity:    SeverityMedium,
			Description: "Resume exceeds 2 pages. Consider condensing.",
		},
		matches: func(text string) bool {
			return utf8.RuneCountInString(text) > maxTextLength
		},
	},
}

// DetectBreakers returns every ATS-breaking element found in the text, in rule order.
func DetectBreakers(text string) []Breaker {
	breakers := make([]Breaker, 0, len(breakerRules))
	for _, rule := range breakerRules {
		if rule.matches(text) {
			breakers = append(breakers, rule.finding)
		}
	}
	return breakers
}

func countDecorativeGlyphs(text string) int {
	count := 0
	for _, r := range text {
		if strings.ContainsRune(decorativeGlyphs, r) {
			count++
		}
	}
	return count
}
