package match

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"sciwatch/internal/catalog"
	"sciwatch/internal/topics"
)

// Breakdown holds the per-component relevance scores for one (topic, document)
// pair. Total is the sum of the four numeric components; the curated-set bonus
// and the flat oracle score are applied by the Selector and Escalator on top.
type Breakdown struct {
	Keyword     float64
	Title       float64
	Description float64
	Recency     float64
	Oracle      bool
}

// Total returns the summed component score.
func (b Breakdown) Total() float64 {
	return b.Keyword + b.Title + b.Description + b.Recency
}

// Score computes the relevance breakdown of one catalog document against a
// topic. topicFolded is the case-folded topic string and words its expanded
// word-set, both produced by the topics package.
func Score(doc catalog.Document, topicFolded string, words map[string]struct{}, now time.Time) Breakdown {
	var b Breakdown

	keywords := doc.Keywords
	if len(keywords) == 0 {
		keywords = DeriveTitleKeywords(doc.Title)
	}

	for _, keyword := range keywords {
		folded := topics.Fold(keyword)
		switch {
		case strings.Contains(topicFolded, folded):
			// Longer keywords are more specific, so stronger evidence.
			switch {
			case len(keyword) >= 12:
				b.Keyword += 6
			case len(keyword) >= 8:
				b.Keyword += 4
			default:
				b.Keyword += 2
			}
		case contains(words, folded):
			b.Keyword += 3
		case sharesSubstring(folded, words):
			b.Keyword += 1
		}
	}

	titleFolded := topics.Fold(doc.Title)
	for word := range words {
		if containsWord(titleFolded, word) {
			b.Title += 1.5
		}
	}

	if doc.Description != "" {
		descFolded := topics.Fold(doc.Description)
		for word := range words {
			if len(word) >= 5 && containsWord(descFolded, word) {
				b.Description += 0.5
			}
		}
	}

	if doc.Year > 0 {
		switch age := now.Year() - doc.Year; {
		case age <= 2:
			b.Recency = 3
		case age <= 5:
			b.Recency = 2
		case age <= 10:
			b.Recency = 1
		}
	}

	return b
}

func contains(words map[string]struct{}, word string) bool {
	_, ok := words[word]
	return ok
}

// sharesSubstring reports whether any topic word of five or more characters is
// contained in the keyword.
func sharesSubstring(keyword string, words map[string]struct{}) bool {
	for word := range words {
		if len(word) >= 5 && strings.Contains(keyword, word) {
			return true
		}
	}
	return false
}

// containsWord reports whether word occurs in text bounded by non-word
// characters on both sides.
func containsWord(text, word string) bool {
	if word == "" {
		return false
	}
	for start := 0; start <= len(text)-len(word); {
		idx := strings.Index(text[start:], word)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(word)

		boundedLeft := idx == 0
		if !boundedLeft {
			prev, _ := utf8.DecodeLastRuneInString(text[:idx])
			boundedLeft = !isWordRune(prev)
		}
		boundedRight := end == len(text)
		if !boundedRight {
			next, _ := utf8.DecodeRuneInString(text[end:])
			boundedRight = !isWordRune(next)
		}
		if boundedLeft && boundedRight {
			return true
		}
		start = idx + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
