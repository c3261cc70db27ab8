// ABOUTME: Centralized configuration for the Endee RAG pipeline
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Metric names accepted by Endee for index creation.
const (
	MetricCosine    = "cosine"
	MetricEuclidean = "euclidean"
	MetricDot       = "dot"
)

// Config holds all configuration for the RAG system
type Config struct {
	// Endee settings
	EndeeURL     string
	AuthToken    string
	IndexName    string
	IndexType    string
	Metric       string
	Timeout      time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
	MaxBatchSize int

	// Chunking settings
	ChunkSize    int
	ChunkOverlap int

	// Embedding settings
	OpenAIKey       string
	EmbeddingModel  string
	VectorDimension int

	// Retrieval settings
	TopK          int
	ContextBudget int
	UseLLM        bool
	ChatModel     string

	// Ingestion settings
	DocumentsDir string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		EndeeURL:        getEnv("ENDEE_URL", "http://localhost:8080"),
		AuthToken:       os.Getenv("ENDEE_AUTH_TOKEN"),
		IndexName:       getEnv("INDEX_NAME", "documents"),
		IndexType:       getEnv("INDEX_TYPE", "hnsw"),
		Metric:          getEnv("DISTANCE_METRIC", MetricCosine),
		Timeout:         getEnvDuration("ENDEE_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("ENDEE_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("ENDEE_RETRY_DELAY", 2*time.Second),
		MaxBatchSize:    getEnvInt("MAX_BATCH_SIZE", 100),
		ChunkSize:       getEnvInt("CHUNK_SIZE", 512),
		ChunkOverlap:    getEnvInt("CHUNK_OVERLAP", 50),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		VectorDimension: getEnvInt("VECTOR_DIMENSION", 1536),
		TopK:            getEnvInt("TOP_K", 5),
		ContextBudget:   getEnvInt("CONTEXT_BUDGET", 4000),
		UseLLM:          getEnvBool("USE_LLM", false),
		ChatModel:       getEnv("CHAT_MODEL", "gpt-4o-mini"),
		DocumentsDir:    getEnv("DOCUMENTS_DIR", "./data/documents"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d with CHUNK_SIZE %d", c.ChunkOverlap, c.ChunkSize)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("TOP_K must be positive, got %d", c.TopK)
	}
	if c.ContextBudget <= 0 {
		return fmt.Errorf("CONTEXT_BUDGET must be positive, got %d", c.ContextBudget)
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("MAX_BATCH_SIZE must be positive, got %d", c.MaxBatchSize)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("ENDEE_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	switch c.Metric {
	case MetricCosine, MetricEuclidean, MetricDot:
	default:
		return fmt.Errorf("DISTANCE_METRIC must be cosine, euclidean or dot, got %q", c.Metric)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
