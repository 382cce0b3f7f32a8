// Package report renders analysis results for people and machines.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spigell/ats-checker/internal/ai"
	"github.com/spigell/ats-checker/internal/analysis"
)

const (
	FormatText = "text"
	FormatJSON = "json"

	listedMatchedKeywords = 20
	goodMetricsPercentage = 50
)

var (
	frame = strings.Repeat("═", 51)
	rule  = strings.Repeat("━", 50)
)

// Meta holds everything the report shows besides the analysis itself.
type Meta struct {
	GeneratedAt time.Time
	Review      *ai.Review
}

// ValidateFormat reports whether Write supports the format. An empty format means text.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, "":
		return nil
	default:
		return fmt.Errorf("unknown report format %q (expected %s or %s)", format, FormatText, FormatJSON)
	}
}

// Write renders the result in the given format.
func Write(w io.Writer, format string, res analysis.Result, meta Meta) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	if format == FormatJSON {
		return WriteJSON(w, res, meta)
	}
	return WriteText(w, res, meta)
}

// FileName returns the default file name for a saved report.
func FileName(format string, at time.Time) string {
	ext := "txt"
	if format == FormatJSON {
		ext = "json"
	}
	return fmt.Sprintf("ats-report-%s.%s", at.Format(time.DateOnly), ext)
}

// WriteText renders the fixed-layout plain text report.
func WriteText(w io.Writer, res analysis.Result, meta Meta) error {
	b := bufio.NewWriter(w)

	fmt.Fprintf(b, "%s\n           ATS-CHECKER - ATS ANALYSIS REPORT\n%s\n", frame, frame)
	fmt.Fprintf(b, "Generated: %s\n\n", meta.GeneratedAt.Format(time.DateTime))

	fmt.Fprintf(b, "%s\nOVERALL ATS SCORE: %d/100\n%s\n%s\n\n", rule, res.Overall, verdict(res.Overall), rule)

	b.WriteString("CATEGORY BREAKDOWN:\n")
	for i, c := range analysis.Categories {
		branch := "├─"
		if i == len(analysis.Categories)-1 {
			branch = "└─"
		}
		score, ok := res.Categories[c]
		if !ok {
			// No weight default and nothing to compute it from.
			fmt.Fprintf(b, "%s %-15sn/a\n", branch, title(string(c))+":")
			continue
		}
		fmt.Fprintf(b, "%s %-15s%d/100\n", branch, title(string(c))+":", score)
	}

	if res.HasJobDescription {
		writeJobMatch(b, res)
	}
	writeBreakers(b, res.Breakers)
	writeAchievements(b, res.Achievements)
	writeRecommendations(b, res.Recommendations)
	writeSections(b, res.Sections)
	writeContact(b, res.Contact)
	if meta.Review != nil {
		writeReview(b, meta.Review)
	}

	fmt.Fprintf(b, "\n%s\n           End of ATS-CHECKER Report\n%s\n", frame, frame)

	return b.Flush()
}

type jsonReport struct {
	GeneratedAt time.Time `json:"generated_at"`
	analysis.Result
	Review *ai.Review `json:"ai_review,omitempty"`
}

// WriteJSON renders the result as indented JSON.
func WriteJSON(w io.Writer, res analysis.Result, meta Meta) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{GeneratedAt: meta.GeneratedAt, Result: res, Review: meta.Review})
}

func verdict(score int) string {
	switch {
	case score >= 80:
		return "✓ EXCELLENT"
	case score >= 60:
		return "⚠ GOOD"
	default:
		return "✗ NEEDS WORK"
	}
}

func heading(b *bufio.Writer, title string) {
	fmt.Fprintf(b, "\n%s\n%s\n%s\n", rule, title, rule)
}

func writeJobMatch(b *bufio.Writer, res analysis.Result) {
	kw := res.Keywords
	heading(b, "JOB MATCH ANALYSIS")
	fmt.Fprintf(b, "Match Score: %d%%\n", kw.Score)
	fmt.Fprintf(b, "Keywords Matched: %d/%d\n\n", len(kw.Matched), kw.TotalJobTerms)

	matched := kw.Matched
	if len(matched) > listedMatchedKeywords {
		matched = matched[:listedMatchedKeywords]
	}
	fmt.Fprintf(b, "✓ MATCHED KEYWORDS:\n%s\n\n", strings.Join(matched, ", "))
	fmt.Fprintf(b, "✗ MISSING KEYWORDS:\n%s\n\n", strings.Join(kw.Missing, ", "))

	b.WriteString("SKILLS GAP ANALYSIS:\n")
	fmt.Fprintf(b, "✓ Skills Present: %s\n", joinOr(res.SkillsGap.Matched, "None detected"))
	fmt.Fprintf(b, "✗ Skills Missing: %s\n", joinOr(res.SkillsGap.Missing, "None"))
}

func writeBreakers(b *bufio.Writer, breakers []analysis.Breaker) {
	heading(b, fmt.Sprintf("ATS-BREAKING ELEMENTS (%d)", len(breakers)))
	if len(breakers) == 0 {
		b.WriteString("✓ No ATS-breaking elements detected!\n")
		return
	}
	for _, br := range breakers {
		fmt.Fprintf(b, "⚠ %s [%s]\n   %s\n", upper(string(br.Kind)), br.Severity, br.Description)
	}
}

func writeAchievements(b *bufio.Writer, a analysis.AchievementStats) {
	heading(b, "QUANTIFIABLE ACHIEVEMENTS")
	fmt.Fprintf(b, "Total Bullet Points:     %d\n", a.TotalBullets)
	fmt.Fprintf(b, "With Metrics:            %d (%d%%)\n", a.WithMetrics, a.Percentage)
	fmt.Fprintf(b, "Without Metrics:         %d\n\n", a.WithoutMetrics)
	if a.Percentage < goodMetricsPercentage {
		b.WriteString("⚠ Add more quantifiable results (percentages, dollar amounts, numbers)\n")
	} else {
		b.WriteString("✓ Good use of metrics!\n")
	}
}

func writeRecommendations(b *bufio.Writer, recs []analysis.Recommendation) {
	heading(b, "TOP RECOMMENDATIONS")
	for i, r := range recs {
		fmt.Fprintf(b, "%d. [%s] %s\n", i+1, upper(string(r.Priority)), r.Text)
	}
}

func writeSections(b *bufio.Writer, s analysis.Sections) {
	heading(b, "RESUME SECTION CHECKLIST")
	checks := []struct {
		name    string
		present bool
	}{
		{"contact", s.Contact},
		{"summary", s.Summary},
		{"experience", s.Experience},
		{"education", s.Education},
		{"skills", s.Skills},
	}
	for _, c := range checks {
		fmt.Fprintf(b, "%s %s\n", mark(c.present), title(c.name))
	}
}

func writeContact(b *bufio.Writer, c analysis.ContactInfo) {
	heading(b, "CONTACT INFORMATION")
	fmt.Fprintf(b, "%s Email\n", mark(c.HasEmail))
	fmt.Fprintf(b, "%s Phone\n", mark(c.HasPhone))
	fmt.Fprintf(b, "%s LinkedIn\n", mark(c.HasLinkedIn))
	fmt.Fprintf(b, "%s Location\n", mark(c.HasLocation))
}

func writeReview(b *bufio.Writer, r *ai.Review) {
	heading(b, "AI REVIEW")
	fmt.Fprintf(b, "Score: %.0f/100\n", r.Score)
	if r.Summary != "" {
		fmt.Fprintf(b, "\n%s\n", r.Summary)
	}
	if len(r.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range r.Suggestions {
			fmt.Fprintf(b, "- %s\n", s)
		}
	}
}

// Casers keep state and must not be shared between goroutines.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

func upper(s string) string {
	return cases.Upper(language.English).String(s)
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
