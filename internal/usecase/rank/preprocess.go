package rank

import (
	"strings"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
)

// stopwords is a small hand-picked set of common English function words.
// Not exhaustive; filtering happens before stemming.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "for": {}, "from": {}, "has": {}, "he": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"that": {}, "the": {}, "to": {}, "was": {}, "were": {}, "will": {},
	"with": {},
}

// Preprocess normalizes raw text into an ordered token sequence: lowercase,
// replace everything that is not alphanumeric or whitespace with a space
// (collapsing punctuation-joined words into separate tokens), split on
// whitespace, drop stopwords, Porter-stem the survivors. Duplicates are
// retained; term frequency matters downstream. Empty input yields an empty
// sequence.
func Preprocess(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, text)

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if _, ok := stopwords[tok]; ok {
			continue
		}
		tokens = append(tokens, porterstemmer.StemString(tok))
	}
	return tokens
}
