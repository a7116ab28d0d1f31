package facts

import "strings"

// ConflictDetector decides whether two fact texts contradict each other.
// The default is a coarse negation/word-overlap heuristic; swap in a more
// rigorous implementation without touching the ledger.
type ConflictDetector interface {
	Conflicts(a, b string) bool
}

// negationTerms flip the sense of a statement.
var negationTerms = map[string]bool{
	"not":     true,
	"never":   true,
	"no":      true,
	"denied":  true,
	"refused": true,
	"failed":  true,
}

// minSharedWords is how many content words two facts must share before a
// negation mismatch counts as a conflict.
const minSharedWords = 3

// NegationDetector flags a conflict when exactly one of the two texts
// contains a negation term and they share at least three content words
// longer than four characters. Heuristic only; it is advisory and never
// raised as an error.
type NegationDetector struct{}

func NewNegationDetector() NegationDetector {
	return NegationDetector{}
}

func (NegationDetector) Conflicts(a, b string) bool {
	wordsA := tokenize(a)
	wordsB := tokenize(b)

	if hasNegation(wordsA) == hasNegation(wordsB) {
		return false
	}

	shared := 0
	seenB := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		if len(w) > 4 {
			seenB[w] = true
		}
	}
	counted := make(map[string]bool)
	for _, w := range wordsA {
		if len(w) > 4 && seenB[w] && !counted[w] {
			counted[w] = true
			shared++
			if shared >= minSharedWords {
				return true
			}
		}
	}
	return false
}

func hasNegation(words []string) bool {
	for _, w := range words {
		if negationTerms[w] {
			return true
		}
	}
	return false
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}
