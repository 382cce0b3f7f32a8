package analysis

// Severity describes how badly an ATS-breaking element hurts parsing.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// Priority orders recommendations for the reader.
type Priority string

const (
	PriorityHigh    Priority = "high"
	PriorityMedium  Priority = "medium"
	PrioritySuccess Priority = "success"
)

// Category names a scored aspect of the résumé.
type Category string

const (
	CategoryFormatting  Category = "formatting"
	CategoryKeywords    Category = "keywords"
	CategoryContent     Category = "content"
	CategoryStructure   Category = "structure"
	CategoryReadability Category = "readability"
)

// Categories lists every category in reporting order.
var Categories = []Category{
	CategoryFormatting,
	CategoryKeywords,
	CategoryContent,
	CategoryStructure,
	CategoryReadability,
}

// BreakerKind is the kind of an ATS-breaking element.
type BreakerKind string

const (
	BreakerTablesColumns     BreakerKind = "Tables/Columns"
	BreakerSpecialCharacters BreakerKind = "Special Characters"
	BreakerPoorStructure     BreakerKind = "Poor Structure"
	BreakerHeadersFooters    BreakerKind = "Headers/Footers"
	BreakerTooShort          BreakerKind = "Too Short"
	BreakerTooLong           BreakerKind = "Too Long"
)

// Breaker is a formatting element that is likely to break ATS parsing.
type Breaker struct {
	Kind        BreakerKind `json:"kind"`
	Severity    Severity    `json:"severity"`
	Description string      `json:"description"`
}

// ContactInfo reports which contact details were found.
type ContactInfo struct {
	HasEmail    bool `json:"has_email"`
	HasPhone    bool `json:"has_phone"`
	HasLinkedIn bool `json:"has_linkedin"`
	HasLocation bool `json:"has_location"`
}

// Sections reports which logical résumé sections were detected.
type Sections struct {
	Contact    bool `json:"contact"`
	Summary    bool `json:"summary"`
	Experience bool `json:"experience"`
	Education  bool `json:"education"`
	Skills     bool `json:"skills"`
}

// KeywordMatch compares the most frequent job description terms with the résumé.
type KeywordMatch struct {
	Score         int      `json:"score"`
	Matched       []string `json:"matched"`
	Missing       []string `json:"missing"`
	TotalJobTerms int      `json:"total_job_terms"`
}

// SkillsGap compares vocabulary skills required by the job with the résumé.
type SkillsGap struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Score   int      `json:"score"`
}

// AchievementStats counts bullet points with and without numbers.
type AchievementStats struct {
	TotalBullets   int `json:"total_bullets"`
	WithMetrics    int `json:"with_metrics"`
	WithoutMetrics int `json:"without_metrics"`
	Percentage     int `json:"percentage"`
}

// Recommendation is a single action item.
type Recommendation struct {
	Priority Priority `json:"priority"`
	Text     string   `json:"text"`
}

// Result is the outcome of a single analysis. It is built from scratch on
// every call to Analyze and must not be modified afterwards.
type Result struct {
	Overall           int              `json:"overall_score"`
	Categories        map[Category]int `json:"categories"`
	Breakers          []Breaker        `json:"ats_breaking_elements"`
	Sections          Sections         `json:"sections"`
	Contact           ContactInfo      `json:"contact_info"`
	Keywords          KeywordMatch     `json:"keywords"`
	SkillsGap         SkillsGap        `json:"skills_gap"`
	Achievements      AchievementStats `json:"achievements"`
	Recommendations   []Recommendation `json:"recommendations"`
	HasJobDescription bool             `json:"has_job_description"`
}

// Category returns the score of the given category, or 0 when it is absent.
func (r Result) Category(c Category) int {
	return r.Categories[c]
}

// CountBySeverity returns how many breakers have the given severity.
func CountBySeverity(breakers []Breaker, severity Severity) int {
	count := 0
	for _, b := range breakers {
		if b.Severity == severity {
			count++
		}
	}
	return count
}
