package analysis

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/spigell/ats-checker/internal/textutil"
)

const bulletGlyphs = "•-*●"

// AnalyzeAchievements counts bullet lines and how many of them contain a number.
func AnalyzeAchievements(text string) AchievementStats {
	var stats AchievementStats
	for _, line := range textutil.NonEmptyLines(text) {
		if !isBullet(line) {
			continue
		}
		stats.TotalBullets++
		if containsDigit(line) {
			stats.WithMetrics++
		} else {
			stats.WithoutMetrics++
		}
	}

	if stats.TotalBullets > 0 {
		stats.Percentage = int(math.Round(float64(stats.WithMetrics) / float64(stats.TotalBullets) * 100))
	}

	return stats
}

func isBullet(line string) bool {
	r, size := utf8.DecodeRuneInString(line)
	return size > 0 && strings.ContainsRune(bulletGlyphs, r)
}

func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
