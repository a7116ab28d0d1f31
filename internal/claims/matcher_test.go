package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"exhibit/internal/document"
)

func TestTokenMatcher(t *testing.T) {
	matcher := NewTokenMatcher()

	tests := []struct {
		name        string
		description string
		source      document.LinkedSource
		want        bool
	}{
		{
			name:        "whole description appears in source name",
			description: "executed contract",
			source:      document.LinkedSource{SourceType: "agreement", Name: "Executed Contract 2024-11"},
			want:        true,
		},
		{
			name:        "single token matches source type",
			description: "executed contract",
			source:      document.LinkedSource{SourceType: "contract", Name: "MSA"},
			want:        true,
		},
		{
			name:        "case insensitive",
			description: "INVOICE records",
			source:      document.LinkedSource{SourceType: "billing", Name: "invoice batch"},
			want:        true,
		},
		{
			name:        "short tokens are ignored",
			description: "log of eta",
			source:      document.LinkedSource{SourceType: "meta", Name: "catalog"},
			want:        false,
		},
		{
			name:        "unrelated source does not match",
			description: "executed contract",
			source:      document.LinkedSource{SourceType: "photo", Name: "site inspection"},
			want:        false,
		},
		{
			name:        "empty source never matches",
			description: "anything",
			source:      document.LinkedSource{},
			want:        false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matcher.Matches(SourceRequirement{SourceDescription: tt.description}, tt.source)
			assert.Equal(t, tt.want, got)
		})
	}
}
