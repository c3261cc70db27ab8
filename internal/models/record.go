// ABOUTME: VectorRecord and SearchResult types shared by the Endee client and engine
// ABOUTME: Record ids are deterministic so re-ingestion overwrites instead of duplicating
package models

// VectorRecord is an embedded chunk ready for insertion. The ID is
// derived deterministically from the source document and chunk index,
// which makes re-ingestion an idempotent overwrite at the record level.
type VectorRecord struct {
	ID       string    `json:"id"`
	Vector   []float32 `json:"vector"`
	Metadata Metadata  `json:"metadata,omitempty"`
}

// SearchResult is a single hit from a similarity search, ordered by
// descending score within its result set. The optional vector is only
// populated by vector-by-id lookups.
type SearchResult struct {
	ID       string    `json:"id"`
	Score    float64   `json:"score"`
	Metadata Metadata  `json:"metadata,omitempty"`
	Vector   []float32 `json:"vector,omitempty"`
}

// Text returns the chunk text carried in the result metadata.
func (r SearchResult) Text() string {
	return r.Metadata.GetString("text", "")
}

// SourceName returns the originating document name, or "Unknown" when
// the record carries no source attribution.
func (r SearchResult) SourceName() string {
	return r.Metadata.GetString("source", "Unknown")
}
