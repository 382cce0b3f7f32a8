package analysis

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/spigell/ats-checker/internal/textutil"
)

const (
	highSeverityPenalty   = 25
	mediumSeverityPenalty = 15
)

var actionVerbs = []string{
	"managed", "led", "developed", "created", "implemented", "improved",
	"increased", "decreased", "launched", "designed", "built", "established", "achieved",
	"delivered", "coordinated", "executed", "optimized", "streamlined", "spearheaded",
}

// ScoreFormatting subtracts a fixed penalty per breaker severity.
func ScoreFormatting(breakers []Breaker) int {
	score := 100
	score -= CountBySeverity(breakers, SeverityHigh) * highSeverityPenalty
	score -= CountBySeverity(breakers, SeverityMedium) * mediumSeverityPenalty
	return max(0, score)
}

// ScoreContent rewards action verbs, a reasonable length and quantified bullets.
func ScoreContent(text string, achievements AchievementStats) int {
	score := 40

	switch verbs := countActionVerbs(text); {
	case verbs >= 5:
		score += 25
	case verbs >= 3:
		score += 15
	case verbs >= 1:
		score += 5
	}

	switch length := utf8.RuneCountInString(text); {
	case length > 500 && length < 2500:
		score += 20
	case length >= 300:
		score += 10
	}

	switch p := achievements.Percentage; {
	case p > 60:
		score += 15
	case p > 40:
		score += 10
	case p > 20:
		score += 5
	}

	return min(100, score)
}

// countActionVerbs returns how many distinct action verbs occur in the text.
func countActionVerbs(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			count++
		}
	}
	return count
}

// ScoreStructure rates the presence of the required sections, with a bonus for a summary.
func ScoreStructure(s Sections) int {
	required := []bool{s.Contact, s.Experience, s.Education, s.Skills}
	present := 0
	for _, ok := range required {
		if ok {
			present++
		}
	}

	score := int(math.Round(float64(present) / float64(len(required)) * 100))
	if s.Summary {
		score = min(100, score+10)
	}
	return score
}

// ScoreReadability penalizes long sentences and documents that are too short or too long.
// Only the steepest band applies per threshold group.
func ScoreReadability(text string) int {
	words := len(textutil.Words(text))
	sentences := len(textutil.Sentences(text))

	avgWords := 0.0
	if sentences > 0 {
		avgWords = float64(words) / float64(sentences)
	}

	score := 100

	switch {
	case avgWords > 30:
		score -= 25
	case avgWords > 25:
		score -= 15
	}

	switch {
	case words < 300:
		score -= 40
	case words < 400:
		score -= 20
	}

	switch {
	case words > 1200:
		score -= 20
	case words > 1000:
		score -= 10
	}

	return max(0, score)
}
