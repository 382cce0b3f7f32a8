package analysis

import (
	"math"

	"github.com/spigell/ats-checker/internal/textutil"
)

// MatchKeywords compares the most frequent terms of the job description with the
// most frequent terms of the résumé.
func MatchKeywords(resume, job string, limits Limits) KeywordMatch {
	candidates := textutil.Frequencies(textutil.Tokens(job)).Top(limits.TopTerms)
	resumeTop := textutil.Frequencies(textutil.Tokens(resume)).Top(limits.TopTerms)

	present := make(map[string]struct{}, len(resumeTop))
	for _, term := range resumeTop {
		present[term.Word] = struct{}{}
	}

	denominator := min(len(candidates), limits.ScoreDenominator)

	result := KeywordMatch{
		Matched:       make([]string, 0),
		Missing:       make([]string, 0),
		TotalJobTerms: len(candidates),
	}

	for _, term := range candidates {
		if _, ok := present[term.Word]; ok {
			if len(result.Matched) < denominator {
				result.Matched = append(result.Matched, term.Word)
			}
			continue
		}
		if len(result.Missing) < limits.MissingCap {
			result.Missing = append(result.Missing, term.Word)
		}
	}

	if denominator > 0 {
		result.Score = clampScore(int(math.Round(float64(len(result.Matched)) / float64(denominator) * 100)))
	}

	return result
}
