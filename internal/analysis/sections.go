package analysis

import "strings"

// Section keywords are triggers, not layout detection: "experience" mentioned
// anywhere counts as an experience section.
var (
	experienceKeywords = []string{"experience", "work history", "employment"}
	educationKeywords  = []string{"education", "degree", "university", "college"}
	skillsKeywords     = []string{"skills", "technical", "competencies", "proficiencies"}
	summaryKeywords    = []string{"summary", "objective", "profile", "about"}
)

// DetectSections reports which résumé sections are present.
func DetectSections(text string) Sections {
	lower := strings.ToLower(text)
	return Sections{
		Contact:    hasReachableContact(text),
		Summary:    containsAny(lower, summaryKeywords),
		Experience: containsAny(lower, experienceKeywords),
		Education:  containsAny(lower, educationKeywords),
		Skills:     containsAny(lower, skillsKeywords),
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
