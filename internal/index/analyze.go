package index

import (
	"strings"
	"unicode"
)

// stopwords is the fixed small English set of §4.8.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "of": {}, "in": {},
	"to": {}, "for": {}, "on": {}, "with": {}, "is": {}, "it": {},
	"this": {}, "that": {}, "by": {}, "be": {}, "as": {}, "at": {},
	"from": {},
}

// Analyze tokenizes text per §4.8: lowercase, split on non-alphanumeric
// runs, drop stopwords. Shared by document indexing and query-term
// tokenization so both sides of a match agree on what a "token" is.
func Analyze(text string) []string {
	lower := strings.ToLower(text)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !isAlphanumeric(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stop := stopwords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}

// isAlphanumeric uses Unicode letter/digit classes rather than an
// ASCII-only range, per §4.8's "simple Unicode splitting."
func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
