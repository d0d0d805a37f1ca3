package topics

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// wordPattern matches topic words of at least four characters.
var wordPattern = regexp.MustCompile(`\b\w{4,}\b`)

// Fold lowers text using Unicode case folding, so synonym and keyword lookups
// behave the same regardless of input casing.
func Fold(text string) string {
	return cases.Fold().String(text)
}

// Normalize maps a raw topic phrase to its canonical label. Unknown phrases
// come back trimmed but otherwise unchanged.
func Normalize(raw string) string {
	folded := strings.TrimSpace(Fold(raw))
	if canonical, ok := synonyms[folded]; ok {
		return canonical
	}
	return strings.TrimSpace(raw)
}

// CanonicalKey returns the folded canonical form of a topic. This is the key
// all downstream aggregation groups mentions under.
func CanonicalKey(raw string) string {
	return Fold(Normalize(raw))
}

// BaseWords tokenizes a topic into its set of words with four or more
// characters, without expansion.
func BaseWords(topic string) map[string]struct{} {
	folded := Fold(topic)
	base := wordPattern.FindAllString(folded, -1)
	words := make(map[string]struct{}, len(base))
	for _, word := range base {
		words[word] = struct{}{}
	}
	return words
}

// Words tokenizes a topic into its set of words with four or more characters,
// expanded one level through the topic-expansion table.
func Words(topic string) map[string]struct{} {
	folded := Fold(topic)
	base := wordPattern.FindAllString(folded, -1)
	words := make(map[string]struct{}, len(base))
	for _, word := range base {
		words[word] = struct{}{}
	}
	// Expand from the base tokens only so expanded terms are never themselves
	// expanded.
	for _, word := range base {
		for _, related := range expansions[word] {
			words[related] = struct{}{}
		}
	}
	return words
}
