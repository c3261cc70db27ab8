// ABOUTME: Retrieval engine turning a query into ranked sources and assembled context
// ABOUTME: Stateless per query; embed, search, assemble, then optional generation
package rag

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/Neha-Erigidindla/endee-rag-project/internal/models"
)

// ErrRetrievalFailed wraps search-service errors that survive the
// client's own retry budget. Embedding failures keep their own
// identity (embedding.ErrEmbeddingFailed) so callers can tell the two
// stages apart.
var ErrRetrievalFailed = errors.New("retrieval failed")

// NoContextAnswer is returned when the index yields nothing relevant.
// It is a successful outcome, distinct from any failure.
const NoContextAnswer = "I couldn't find any relevant information in the knowledge base."

// Searcher is the slice of the vector index client the engine needs.
type Searcher interface {
	Search(ctx context.Context, indexName string, vector []float32, topK int, filters models.Metadata) ([]models.SearchResult, error)
	GetVector(ctx context.Context, indexName, id string) (*models.VectorRecord, error)
}

// Embedder matches embedding.Embedder for the single-query case.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Generator produces an answer from assembled context. Implementations
// are external collaborators; the engine succeeds without one.
type Generator interface {
	Generate(ctx context.Context, query, contextText string) (string, error)
}

// Source attributes one retrieved chunk for citation.
type Source struct {
	ID     string  `json:"id"`
	Score  float64 `json:"score"`
	Source string  `json:"source"`
}

// Response is the terminal result of a query: the answer, the context
// the answer was built from, and ranked sources. When generation is
// disabled or fails, the answer is extractive and the response is
// still a success.
type Response struct {
	Answer      string   `json:"answer"`
	Sources     []Source `json:"sources"`
	Query       string   `json:"query"`
	ContextUsed string   `json:"context_used"`
}

// Options configures an Engine.
type Options struct {
	IndexName     string
	TopK          int
	ContextBudget int
}

// Engine orchestrates retrieval. It keeps no per-query state, so one
// shared instance serves concurrent queries.
type Engine struct {
	embedder  Embedder
	store     Searcher
	generator Generator
	indexName string
	topK      int
	budget    int
}

// NewEngine builds an engine around a shared embedder and index client.
// generator may be nil, in which case answers are extractive.
func NewEngine(embedder Embedder, store Searcher, generator Generator, opts Options) *Engine {
	topK := opts.TopK
	if topK <= 0 {
		topK = 5
	}
	budget := opts.ContextBudget
	if budget <= 0 {
		budget = 4000
	}
	return &Engine{
		embedder:  embedder,
		store:     store,
		generator: generator,
		indexName: opts.IndexName,
		topK:      topK,
		budget:    budget,
	}
}

// Retrieve embeds the query and returns the topK most similar chunks.
// An embedding failure is surfaced as-is and no search is attempted; a
// search failure is wrapped in ErrRetrievalFailed. Zero results is not
// an error.
func (e *Engine) Retrieve(ctx context.Context, query string, topK int, filters models.Metadata) ([]models.SearchResult, error) {
	if topK <= 0 {
		topK = e.topK
	}

	vector, err := e.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := e.store.Search(ctx, e.indexName, vector, topK, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}
	return results, nil
}

// Query runs the full pipeline: retrieve, assemble context under the
// budget, then answer. Results keep the index's descending-score order;
// equal scores stay in the order the index returned them.
func (e *Engine) Query(ctx context.Context, query string) (*Response, error) {
	qid := uuid.New().String()[:8]

	results, err := e.Retrieve(ctx, query, 0, nil)
	if err != nil {
		return nil, err
	}
	log.Printf("[query %s] retrieved %d results", qid, len(results))

	if len(results) == 0 {
		return &Response{Answer: NoContextAnswer, Sources: []Source{}, Query: query}, nil
	}

	contextText, sources := e.assembleContext(results)
	answer := e.generate(ctx, qid, query, contextText)

	return &Response{
		Answer:      answer,
		Sources:     sources,
		Query:       query,
		ContextUsed: contextText,
	}, nil
}

// BatchQuery processes queries independently; one failure does not
// abort the rest. The returned slice is in input order with failed
// queries carrying the error message as their answer.
func (e *Engine) BatchQuery(ctx context.Context, queries []string) []*Response {
	responses := make([]*Response, 0, len(queries))
	for _, q := range queries {
		resp, err := e.Query(ctx, q)
		if err != nil {
			log.Printf("batch query %q failed: %v", q, err)
			resp = &Response{
				Answer:  fmt.Sprintf("Error processing query: %v", err),
				Sources: []Source{},
				Query:   q,
			}
		}
		responses = append(responses, resp)
	}
	return responses
}

// SimilarDocuments finds records similar to a stored record, excluding
// the record itself. A missing id yields an empty result.
func (e *Engine) SimilarDocuments(ctx context.Context, recordID string, topK int) ([]models.SearchResult, error) {
	if topK <= 0 {
		topK = e.topK
	}

	record, err := e.store.GetVector(ctx, e.indexName, recordID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}
	if record == nil {
		return nil, nil
	}

	// Over-fetch by one so the seed record can be dropped.
	results, err := e.store.Search(ctx, e.indexName, record.Vector, topK+1, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}

	similar := make([]models.SearchResult, 0, topK)
	for _, r := range results {
		if r.ID == recordID {
			continue
		}
		similar = append(similar, r)
		if len(similar) == topK {
			break
		}
	}
	return similar, nil
}

// HybridSearch retrieves semantically at twice the requested depth and
// filters the hits by a case-insensitive keyword match on chunk text.
func (e *Engine) HybridSearch(ctx context.Context, query, keyword string, topK int) ([]models.SearchResult, error) {
	if topK <= 0 {
		topK = e.topK
	}

	results, err := e.Retrieve(ctx, query, topK*2, nil)
	if err != nil {
		return nil, err
	}
	if keyword == "" {
		if len(results) > topK {
			results = results[:topK]
		}
		return results, nil
	}

	needle := strings.ToLower(keyword)
	filtered := make([]models.SearchResult, 0, topK)
	for _, r := range results {
		if strings.Contains(strings.ToLower(r.Text()), needle) {
			filtered = append(filtered, r)
			if len(filtered) == topK {
				break
			}
		}
	}
	return filtered, nil
}

// assembleContext concatenates chunk texts in rank order until the
// character budget is reached. A chunk that would overflow the budget
// is dropped whole and the next one is tried, so higher-ranked chunks
// always survive intact.
func (e *Engine) assembleContext(results []models.SearchResult) (string, []Source) {
	var b strings.Builder
	sources := make([]Source, 0, len(results))

	docNum := 0
	for _, r := range results {
		sources = append(sources, Source{ID: r.ID, Score: r.Score, Source: r.SourceName()})

		block := fmt.Sprintf("[Document %d] (Source: %s, Relevance: %.3f)\n%s\n",
			docNum+1, r.SourceName(), r.Score, r.Text())
		sep := ""
		if docNum > 0 {
			sep = "\n---\n"
		}
		if b.Len()+len(sep)+len(block) > e.budget {
			continue
		}
		b.WriteString(sep)
		b.WriteString(block)
		docNum++
	}

	return b.String(), sources
}

// generate asks the configured generator for an answer, falling back
// to extraction when generation is unavailable or fails. Retrieval has
// already succeeded at this point, so generation failures never fail
// the query.
func (e *Engine) generate(ctx context.Context, qid, query, contextText string) string {
	if contextText == "" {
		return NoContextAnswer
	}
	if e.generator != nil {
		answer, err := e.generator.Generate(ctx, query, contextText)
		if err == nil {
			return answer
		}
		log.Printf("[query %s] generation failed, falling back to extraction: %v", qid, err)
	}
	return extractiveAnswer(contextText)
}

// extractiveAnswer builds an answer from the highest-ranked context
// lines when no language model is available.
func extractiveAnswer(contextText string) string {
	var content []string
	for _, line := range strings.Split(contextText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "---" || strings.HasPrefix(line, "[Document") {
			continue
		}
		content = append(content, line)
		if len(content) == 5 {
			break
		}
	}
	if len(content) == 0 {
		return "I couldn't find relevant information to answer your question."
	}

	answer := strings.Join(content, " ")
	if runes := []rune(answer); len(runes) > 500 {
		answer = string(runes[:500]) + "..."
	}
	return answer
}
