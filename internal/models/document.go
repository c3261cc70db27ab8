// ABOUTME: Document and Chunk types for the ingestion pipeline
// ABOUTME: Documents are immutable inputs, chunks are their derived embedding units
package models

// Document is an immutable input text with its source metadata.
// Re-ingesting a document replaces its previous chunk set; the document
// itself is never mutated.
type Document struct {
	ID       string   `json:"id"`
	Path     string   `json:"path"`
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// Chunk is a bounded, overlap-aware segment of a document. Start and End
// are rune offsets into the parent text before whitespace trimming, so
// consecutive chunks cover the source with the configured overlap and a
// span can never begin or end inside a multibyte character. CharCount
// counts runes, not bytes.
type Chunk struct {
	DocumentID string `json:"document_id"`
	Index      int    `json:"chunk_index"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Text       string `json:"text"`
	CharCount  int    `json:"char_count"`
}
