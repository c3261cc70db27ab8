// ABOUTME: OpenAI embedding client with bounded retry
// ABOUTME: Uses text-embedding-3-small by default, dimension fixed per model
package embedding

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Neha-Erigidindla/endee-rag-project/internal/util"
)

// Config holds configuration for the OpenAI embedder
type Config struct {
	APIKey     string
	Model      string
	Dimension  int
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// OpenAIEmbedder generates embeddings through the OpenAI API. The
// client is safe for concurrent use; construct one per process and
// share it.
type OpenAIEmbedder struct {
	client  *openai.Client
	model   openai.EmbeddingModel
	dim     int
	timeout time.Duration
	retry   util.RetryPolicy
}

// NewOpenAIEmbedder creates an embedder from config. The dimension must
// match the model's output size; it is what every index created for
// this embedder will be validated against.
func NewOpenAIEmbedder(cfg Config) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = string(openai.SmallEmbedding3)
	}
	if cfg.Dimension <= 0 {
		cfg.Dimension = 1536
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	retry := util.RetryPolicy{MaxAttempts: cfg.MaxRetries + 1, BaseDelay: cfg.RetryDelay}
	if cfg.MaxRetries <= 0 {
		retry = util.DefaultRetryPolicy()
	}
	if retry.BaseDelay <= 0 {
		retry.BaseDelay = 2 * time.Second
	}

	return &OpenAIEmbedder{
		client:  openai.NewClient(cfg.APIKey),
		model:   openai.EmbeddingModel(cfg.Model),
		dim:     cfg.Dimension,
		timeout: cfg.Timeout,
		retry:   retry,
	}, nil
}

// Dimension returns the embedding dimension
func (e *OpenAIEmbedder) Dimension() int {
	return e.dim
}

// EmbedQuery generates a single embedding vector
func (e *OpenAIEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates one embedding per input text, in input order.
// API failures are retried with backoff; after the budget is spent the
// error is surfaced wrapped in ErrEmbeddingFailed.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var vectors [][]float32
	err := e.retry.Do(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		resp, err := e.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: e.model,
		})
		if err != nil {
			return util.Transient(err)
		}
		if len(resp.Data) != len(texts) {
			return util.Transient(fmt.Errorf("got %d embeddings for %d inputs", len(resp.Data), len(texts)))
		}

		out := make([][]float32, len(resp.Data))
		for i, d := range resp.Data {
			if len(d.Embedding) != e.dim {
				return fmt.Errorf("model returned %d-dimensional vector, expected %d", len(d.Embedding), e.dim)
			}
			out[i] = d.Embedding
		}
		vectors = out
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	return vectors, nil
}
