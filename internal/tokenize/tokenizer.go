// Package tokenize turns free text into normalized index terms.
package tokenize

import (
	"iter"
	"slices"
	"strings"
	"unicode"
)

// stopTerms is fixed at init and never mutated.
var stopTerms = func() map[string]struct{} {
	words := []string{
		"the", "a", "an", "and", "or", "but", "if", "then", "else",
		"when", "what", "how", "why", "to", "of", "in", "on", "for",
		"with", "at", "by", "from", "as", "is", "are", "was", "were",
		"be", "been", "being", "this", "that", "these", "those", "it",
		"its", "we", "you", "your",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

// Tokenize lazily yields the terms of text in input order.
// Text is lowercased, every rune other than a-z, 0-9 and whitespace becomes
// a space, then the result is split on whitespace. Terms of one byte and
// stop terms are dropped. Duplicates are kept.
func Tokenize(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		normalized := strings.Map(normalizeRune, strings.ToLower(text))
		for tok := range strings.FieldsSeq(normalized) {
			if len(tok) <= 1 || IsStopTerm(tok) {
				continue
			}
			if !yield(tok) {
				return
			}
		}
	}
}

// Terms collects Tokenize(text).
func Terms(text string) []string {
	return slices.Collect(Tokenize(text))
}

// Frequencies counts how often each term occurs in text.
func Frequencies(text string) map[string]int {
	tf := make(map[string]int)
	for t := range Tokenize(text) {
		tf[t]++
	}
	return tf
}

// IsStopTerm reports whether term is in the stop set.
func IsStopTerm(term string) bool {
	_, ok := stopTerms[term]
	return ok
}

func normalizeRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return r
	case unicode.IsSpace(r):
		return r
	default:
		return ' '
	}
}
