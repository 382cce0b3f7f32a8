package analysis

import (
	"fmt"
	"strings"
)

const (
	lowOverallScore           = 60
	lowAchievementPercentage  = 40
	fairAchievementPercentage = 60
	missingKeywordsThreshold  = 5
	listedMissingKeywords     = 8
	listedMissingSkills       = 5
)

// recommendationRule inspects a finished analysis and returns zero or more items.
type recommendationRule func(r *Result) []Recommendation

// recommendationRules run in order; their order is the output order.
var recommendationRules = []recommendationRule{
	overallScoreRule,
	highBreakerRule,
	contactRule,
	sectionRule,
	achievementRule,
	missingKeywordsRule,
	missingSkillsRule,
}

// Recommend builds the prioritized recommendation list for the result. Items are
// kept in generation order and truncated to limit.
func Recommend(r *Result, limit int) []Recommendation {
	recs := make([]Recommendation, 0, limit)
	for _, rule := range recommendationRules {
		recs = append(recs, rule(r)...)
	}

	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			Priority: PrioritySuccess,
			Text:     "Excellent! Your resume is ATS-optimized. Keep refining for perfection.",
		})
	}

	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

func high(text string) Recommendation {
	return Recommendation{Priority: PriorityHigh, Text: text}
}

func medium(text string) Recommendation {
	return Recommendation{Priority: PriorityMedium, Text: text}
}

func overallScoreRule(r *Result) []Recommendation {
	if r.Overall >= lowOverallScore {
		return nil
	}
	return []Recommendation{high("Overall ATS score needs improvement. Focus on high-priority items below.")}
}

func highBreakerRule(r *Result) []Recommendation {
	var recs []Recommendation
	for _, b := range r.Breakers {
		if b.Severity != SeverityHigh {
			continue
		}
		recs = append(recs, high(fmt.Sprintf("%s: %s", b.Kind, b.Description)))
	}
	return recs
}

func contactRule(r *Result) []Recommendation {
	var recs []Recommendation
	if !r.Contact.HasEmail {
		recs = append(recs, high("Add your email address to contact information"))
	}
	if !r.Contact.HasPhone {
		recs = append(recs, high("Add your phone number to contact information"))
	}
	if !r.Contact.HasLinkedIn {
		recs = append(recs, medium("Include your LinkedIn profile URL"))
	}
	return recs
}

func sectionRule(r *Result) []Recommendation {
	var recs []Recommendation
	if !r.Sections.Experience {
		recs = append(recs, high("Add a Work Experience section"))
	}
	if !r.Sections.Education {
		recs = append(recs, high("Add an Education section"))
	}
	if !r.Sections.Skills {
		recs = append(recs, high("Add a Skills section"))
	}
	if !r.Sections.Summary {
		recs = append(recs, medium("Consider adding a professional summary"))
	}
	return recs
}

func achievementRule(r *Result) []Recommendation {
	p := r.Achievements.Percentage
	switch {
	case p < lowAchievementPercentage:
		return []Recommendation{high(fmt.Sprintf("Only %d%% of bullets have numbers. Add quantifiable achievements (%%, $, #).", p))}
	case p < fairAchievementPercentage:
		return []Recommendation{medium(fmt.Sprintf("%d%% of bullets quantified. Aim for 70%%+ with metrics.", p))}
	}
	return nil
}

func missingKeywordsRule(r *Result) []Recommendation {
	missing := r.Keywords.Missing
	if !r.HasJobDescription || len(missing) <= missingKeywordsThreshold {
		return nil
	}
	return []Recommendation{high("Missing critical keywords: " + strings.Join(firstN(missing, listedMissingKeywords), ", "))}
}

func missingSkillsRule(r *Result) []Recommendation {
	missing := r.SkillsGap.Missing
	if !r.HasJobDescription || len(missing) == 0 {
		return nil
	}
	return []Recommendation{high("Add these required skills to your resume: " + strings.Join(firstN(missing, listedMissingSkills), ", "))}
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
