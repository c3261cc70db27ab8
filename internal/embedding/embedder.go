// ABOUTME: Embedder interface consumed by the ingestion pipeline and RAG engine
// ABOUTME: Implementations map text to fixed-dimension vectors, deterministically per model
package embedding

import (
	"context"
	"errors"
)

// ErrEmbeddingFailed wraps any terminal failure of the embedding model.
// Callers must treat it as fatal for the current query or document; a
// zero vector is never substituted.
var ErrEmbeddingFailed = errors.New("embedding failed")

// Embedder converts text into fixed-length vectors. EmbedBatch returns
// one vector per input, in input order. Dimension is constant for the
// lifetime of the process.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}
