package textutil

import (
	"iter"
	"slices"
)

// Term is a token with the number of times it occurs.
type Term struct {
	Word  string
	Count int
}

// FrequencyTable counts tokens and remembers the order they were first seen in.
type FrequencyTable struct {
	counts map[string]int
	order  []string
}

// Frequencies builds a FrequencyTable from a token sequence.
func Frequencies(tokens iter.Seq[string]) *FrequencyTable {
	table := &FrequencyTable{counts: make(map[string]int)}
	for token := range tokens {
		if _, seen := table.counts[token]; !seen {
			table.order = append(table.order, token)
		}
		table.counts[token]++
	}
	return table
}

// Count returns how often word occurred.
func (t *FrequencyTable) Count(word string) int {
	return t.counts[word]
}

// Len returns the number of distinct tokens.
func (t *FrequencyTable) Len() int {
	return len(t.order)
}

// Rank returns all terms by descending count. Ties keep first-seen order.
func (t *FrequencyTable) Rank() []Term {
	terms := make([]Term, 0, len(t.order))
	for _, word := range t.order {
		terms = append(terms, Term{Word: word, Count: t.counts[word]})
	}
	slices.SortStableFunc(terms, func(a, b Term) int {
		return b.Count - a.Count
	})
	return terms
}

// Top returns at most n of the highest ranked terms.
func (t *FrequencyTable) Top(n int) []Term {
	ranked := t.Rank()
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TermWords returns the words of the given terms, preserving order.
func TermWords(terms []Term) []string {
	words := make([]string, 0, len(terms))
	for _, term := range terms {
		words = append(words, term.Word)
	}
	return words
}
