// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Consolidates config loading and client construction used by every command
package commands

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/Neha-Erigidindla/endee-rag-project/internal/config"
	"github.com/Neha-Erigidindla/endee-rag-project/internal/embedding"
	"github.com/Neha-Erigidindla/endee-rag-project/internal/endee"
	"github.com/Neha-Erigidindla/endee-rag-project/internal/ingest"
	"github.com/Neha-Erigidindla/endee-rag-project/internal/rag"
)

// loadConfig loads .env and environment configuration for a command
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newEndeeClient builds the vector index client from configuration
func newEndeeClient(cfg *config.Config) *endee.Client {
	return endee.NewClient(endee.Config{
		BaseURL:      cfg.EndeeURL,
		AuthToken:    cfg.AuthToken,
		Timeout:      cfg.Timeout,
		Dimension:    cfg.VectorDimension,
		MaxBatchSize: cfg.MaxBatchSize,
		MaxRetries:   cfg.MaxRetries,
		RetryDelay:   cfg.RetryDelay,
	})
}

// newEmbedder builds the OpenAI embedder from configuration
func newEmbedder(cfg *config.Config) (*embedding.OpenAIEmbedder, error) {
	return embedding.NewOpenAIEmbedder(embedding.Config{
		APIKey:     cfg.OpenAIKey,
		Model:      cfg.EmbeddingModel,
		Dimension:  cfg.VectorDimension,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
}

// newEngine builds the retrieval engine, with generation when enabled
func newEngine(cfg *config.Config, embedder *embedding.OpenAIEmbedder, store *endee.Client) (*rag.Engine, error) {
	var generator rag.Generator
	if cfg.UseLLM {
		g, err := rag.NewOpenAIGenerator(cfg.OpenAIKey, cfg.ChatModel)
		if err != nil {
			return nil, fmt.Errorf("initializing generator: %w", err)
		}
		generator = g
	}
	return rag.NewEngine(embedder, store, generator, rag.Options{
		IndexName:     cfg.IndexName,
		TopK:          cfg.TopK,
		ContextBudget: cfg.ContextBudget,
	}), nil
}

// newPipeline builds the ingestion pipeline from configuration
func newPipeline(cfg *config.Config, embedder *embedding.OpenAIEmbedder, store *endee.Client) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(embedder, store, ingest.Options{
		IndexName:    cfg.IndexName,
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	})
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
