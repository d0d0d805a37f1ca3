package match

import (
	"regexp"
	"slices"
	"strings"

	"sciwatch/internal/topics"
)

// titleWordPattern matches alphabetic runs of three or more characters when
// deriving keywords from a title.
var titleWordPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// titleStopWords are filler words ignored when deriving keywords from a
// publication title.
var titleStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "toward": {}, "towards": {},
	"into": {}, "about": {}, "through": {}, "during": {}, "before": {},
	"after": {}, "above": {}, "below": {}, "between": {}, "under": {},
	"over": {}, "out": {}, "off": {}, "up": {}, "down": {}, "new": {},
	"future": {}, "state": {}, "states": {}, "united": {}, "national": {},
	"report": {}, "reports": {}, "study": {}, "studies": {}, "research": {},
	"review": {}, "summary": {}, "framework": {}, "approach": {},
	"proceedings": {}, "workshop": {}, "needs": {}, "issues": {},
	"challenges": {}, "opportunities": {}, "21st": {}, "century": {},
	"update": {}, "agenda": {}, "action": {}, "building": {},
	"developing": {}, "assessment": {}, "evaluation": {},
	"implications": {}, "strategies": {}, "pathways": {}, "perspectives": {},
}

// domainPhrases are known multi-word domain terms recognized as keywords when
// they appear verbatim in a title.
var domainPhrases = []string{
	"artificial intelligence", "machine learning", "climate change",
	"gene therapy", "cancer research", "stem cells", "public health",
	"mental health", "nuclear energy", "quantum computing",
	"infectious disease", "drug discovery", "precision medicine",
	"renewable energy", "carbon emissions", "biodiversity loss",
	"food security", "water quality", "air pollution", "opioid crisis",
	"vaccine safety", "gene editing", "ocean science", "space exploration",
	"arctic research", "wildfire", "pandemic", "antibiotic resistance",
	"global health", "health equity", "brain science", "neuroscience",
	"alzheimer", "dementia", "diabetes", "obesity", "aging population",
}

// DeriveTitleKeywords extracts keywords from a publication title for documents
// that carry no pre-assigned keywords. Stop words and tokens shorter than four
// characters are discarded; known multi-word domain phrases found in the title
// are appended.
func DeriveTitleKeywords(title string) []string {
	folded := topics.Fold(title)

	var keywords []string
	for _, word := range titleWordPattern.FindAllString(folded, -1) {
		if len(word) < 4 {
			continue
		}
		if _, stop := titleStopWords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
	}
	for _, phrase := range domainPhrases {
		if strings.Contains(folded, phrase) && !slices.Contains(keywords, phrase) {
			keywords = append(keywords, phrase)
		}
	}
	return keywords
}
