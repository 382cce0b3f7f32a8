package textutil

import (
	"iter"
	"regexp"
	"slices"
	"strings"
)

// minTokenLength is the shortest token kept by Tokens. Shorter tokens are noise.
const minTokenLength = 4

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "have": {}, "this": {}, "that": {},
	"will": {}, "been": {}, "your": {}, "their": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "who": {}, "whom": {}, "whose": {}, "why": {}, "would": {},
}

var sentenceSeparator = regexp.MustCompile(`[.!?]+`)

// IsStopWord reports whether the word is filtered out by Tokens.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// Tokens lazily yields lowercased word tokens of text. Anything that is not an
// ASCII word character becomes a separator; short tokens and stop words are skipped.
func Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, field := range strings.Fields(normalize(text)) {
			if len(field) < minTokenLength || IsStopWord(field) {
				continue
			}
			if !yield(field) {
				return
			}
		}
	}
}

// Tokenize collects Tokens into a slice.
func Tokenize(text string) []string {
	return slices.Collect(Tokens(text))
}

func normalize(text string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if isWordRune(r) || isSpace(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(' ')
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// NonEmptyLines splits text on line breaks and returns the trimmed, non-empty lines.
func NonEmptyLines(text string) []string {
	lines := make([]string, 0)
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Sentences splits text on runs of '.', '!' and '?' and drops blank pieces.
func Sentences(text string) []string {
	sentences := make([]string, 0)
	for _, part := range sentenceSeparator.Split(text, -1) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		sentences = append(sentences, part)
	}
	return sentences
}

// Words returns the whitespace separated fields of text.
func Words(text string) []string {
	return strings.Fields(text)
}

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
