package claims

import (
	"strings"

	"exhibit/internal/document"
)

// Matcher decides whether a linked source satisfies a source requirement.
// The default is a coarse textual heuristic; swap in a more rigorous
// implementation (embedding-based, curated synonym sets) without touching
// the analyzer or the engine.
type Matcher interface {
	Matches(requirement SourceRequirement, source document.LinkedSource) bool
}

// TokenMatcher matches on normalized lowercase tokens: a source satisfies a
// requirement when any content token of the requirement description appears
// as a substring of the source's type or name. Heuristic only.
type TokenMatcher struct{}

func NewTokenMatcher() TokenMatcher {
	return TokenMatcher{}
}

func (TokenMatcher) Matches(requirement SourceRequirement, source document.LinkedSource) bool {
	sourceText := normalize(source.SourceType + " " + source.Name)
	if sourceText == "" {
		return false
	}

	description := normalize(requirement.SourceDescription)
	if description != "" && strings.Contains(sourceText, description) {
		return true
	}

	for _, token := range strings.Fields(description) {
		if len(token) < 4 {
			continue
		}
		if strings.Contains(sourceText, token) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
