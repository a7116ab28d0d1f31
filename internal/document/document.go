// Package document models the read-only view this core holds over documents
// and their linked source entities. Documents are owned and populated by the
// ingestion pipeline; the gatekeeper only reads them.
package document

import (
	"encoding/json"
	"time"
)

// Document is the metadata surface the admissibility checks evaluate.
type Document struct {
	ID            string
	Filename      string
	Metadata      Metadata
	LinkedSources []LinkedSource
}

// LinkedSource is a source entity associated with a document by ingestion.
type LinkedSource struct {
	SourceType string
	Name       string
}

// Metadata is the structured view over a document's free-form metadata.
// Known fields are typed; keys this core does not understand are preserved
// verbatim in Extra so round-trips never drop information.
type Metadata struct {
	IsScreenshot     bool
	IsConverted      bool
	IsSummary        bool
	ContentHash      string
	OriginalFilename string
	SourceID         string
	SourceURL        string
	SourceType       string
	RetrievedAt      *time.Time

	// Extra holds unrecognized keys for forward compatibility.
	Extra map[string]any
}

// metadataKeys are the JSON keys lifted into typed fields.
const (
	keyIsScreenshot     = "is_screenshot"
	keyIsConverted      = "is_converted"
	keyIsSummary        = "is_summary"
	keyContentHash      = "content_hash"
	keyOriginalFilename = "original_filename"
	keySourceID         = "source_id"
	keySourceURL        = "source_url"
	keySourceType       = "source_type"
	keyRetrievedAt      = "retrieved_at"
)

// UnmarshalJSON lifts known keys into typed fields and keeps the remainder
// in Extra.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = Metadata{}
	for key, value := range raw {
		switch key {
		case keyIsScreenshot:
			m.IsScreenshot, _ = value.(bool)
		case keyIsConverted:
			m.IsConverted, _ = value.(bool)
		case keyIsSummary:
			m.IsSummary, _ = value.(bool)
		case keyContentHash:
			m.ContentHash, _ = value.(string)
		case keyOriginalFilename:
			m.OriginalFilename, _ = value.(string)
		case keySourceID:
			m.SourceID, _ = value.(string)
		case keySourceURL:
			m.SourceURL, _ = value.(string)
		case keySourceType:
			m.SourceType, _ = value.(string)
		case keyRetrievedAt:
			if s, ok := value.(string); ok {
				if t, err := time.Parse(time.RFC3339, s); err == nil {
					m.RetrievedAt = &t
				}
			}
		default:
			if m.Extra == nil {
				m.Extra = map[string]any{}
			}
			m.Extra[key] = value
		}
	}
	return nil
}

// MarshalJSON merges typed fields back with the overflow map. Typed fields
// win on key collision.
func (m Metadata) MarshalJSON() ([]byte, error) {
	raw := make(map[string]any, len(m.Extra)+9)
	for key, value := range m.Extra {
		raw[key] = value
	}
	if m.IsScreenshot {
		raw[keyIsScreenshot] = true
	}
	if m.IsConverted {
		raw[keyIsConverted] = true
	}
	if m.IsSummary {
		raw[keyIsSummary] = true
	}
	if m.ContentHash != "" {
		raw[keyContentHash] = m.ContentHash
	}
	if m.OriginalFilename != "" {
		raw[keyOriginalFilename] = m.OriginalFilename
	}
	if m.SourceID != "" {
		raw[keySourceID] = m.SourceID
	}
	if m.SourceURL != "" {
		raw[keySourceURL] = m.SourceURL
	}
	if m.SourceType != "" {
		raw[keySourceType] = m.SourceType
	}
	if m.RetrievedAt != nil {
		raw[keyRetrievedAt] = m.RetrievedAt.Format(time.RFC3339)
	}
	return json.Marshal(raw)
}

// HasProvenance reports whether any provenance marker is present.
func (m Metadata) HasProvenance() bool {
	return m.SourceID != "" || m.SourceURL != "" || m.RetrievedAt != nil
}
