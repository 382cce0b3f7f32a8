package analysis

import (
	"math"
	"slices"
	"strings"
)

// VocabularyVersion identifies the TechnicalTerms list. Bump it whenever the list changes.
const VocabularyVersion = "2025.1"

var technicalTerms = []string{
	"python", "java", "javascript", "typescript", "react", "angular", "vue", "node", "express",
	"sql", "mysql", "postgresql", "mongodb", "redis", "aws", "azure", "gcp", "cloud",
	"docker", "kubernetes", "jenkins", "ci/cd", "devops", "agile", "scrum", "kanban",
	"git", "github", "api", "rest", "graphql", "microservices", "html", "css", "sass",
	"excel", "powerpoint", "word", "salesforce", "tableau", "power bi", "analytics",
	"machine learning", "ai", "data science", "tensorflow", "pytorch", "pandas", "numpy",
	"leadership", "management", "communication", "project management", "budget",
	"c++", "c#", "ruby", "php", "swift", "kotlin", "go", "rust", "scala",
}

// TechnicalTerms returns a copy of the skills vocabulary.
func TechnicalTerms() []string {
	return slices.Clone(technicalTerms)
}

// TermMatcher decides whether a vocabulary term occurs in a text.
// Both arguments are lowercased by the caller.
type TermMatcher interface {
	Contains(text, term string) bool
}

// SubstringMatcher matches a term anywhere in the text. It is the default and
// knowingly produces false positives such as "go" inside "google" or "ai" inside "maintain".
type SubstringMatcher struct{}

func (SubstringMatcher) Contains(text, term string) bool {
	return strings.Contains(text, term)
}

// WordMatcher only matches a term that is not surrounded by letters or digits.
type WordMatcher struct{}

func (WordMatcher) Contains(text, term string) bool {
	if term == "" {
		return false
	}
	offset := 0
	for {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(term)
		if !isAlnumBefore(text, start) && !isAlnumAt(text, end) {
			return true
		}
		offset = start + 1
	}
}

func isAlnumBefore(text string, i int) bool {
	return i > 0 && isASCIIAlnum(text[i-1])
}

func isAlnumAt(text string, i int) bool {
	return i < len(text) && isASCIIAlnum(text[i])
}

func isASCIIAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// AnalyzeSkillsGap finds vocabulary skills the job description mentions and
// checks which of them the résumé mentions too. Each skill is counted once.
func AnalyzeSkillsGap(resume, job string, vocabulary []string, matcher TermMatcher) SkillsGap {
	if matcher == nil {
		matcher = SubstringMatcher{}
	}

	resumeLower := strings.ToLower(resume)
	jobLower := strings.ToLower(job)

	gap := SkillsGap{
		Matched: make([]string, 0),
		Missing: make([]string, 0),
	}

	seen := make(map[string]struct{}, len(vocabulary))
	required := 0
	for _, skill := range vocabulary {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}

		if !matcher.Contains(jobLower, skill) {
			continue
		}
		required++
		if matcher.Contains(resumeLower, skill) {
			gap.Matched = append(gap.Matched, skill)
		} else {
			gap.Missing = append(gap.Missing, skill)
		}
	}

	gap.Score = 100
	if required > 0 {
		gap.Score = int(math.Round(float64(len(gap.Matched)) / float64(required) * 100))
	}

	return gap
}
