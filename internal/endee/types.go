// ABOUTME: Wire types and error taxonomy for the Endee vector database API
// ABOUTME: JSON shapes mirror the /api/v1/index endpoints
package endee

import (
	"errors"
	"fmt"

	"github.com/Neha-Erigidindla/endee-rag-project/internal/models"
)

// Lifecycle and validation errors surfaced by the client. Transient
// network and 5xx failures are absorbed by the retry policy and only
// surface once the budget is spent.
var (
	ErrIndexNotFound      = errors.New("index not found")
	ErrIndexAlreadyExists = errors.New("index already exists")
	ErrInvalidDimension   = errors.New("invalid dimension")
	ErrDimensionMismatch  = errors.New("dimension mismatch")
)

// IndexStats describes an index as reported by the stats endpoint.
type IndexStats struct {
	VectorCount int    `json:"vector_count"`
	Dimension   int    `json:"dimension"`
	Metric      string `json:"metric"`
}

// InsertReport aggregates the outcome of a batched insert. RejectedIDs
// collects records refused locally (dimension mismatch) and records in
// batches the service rejected or that failed terminally.
type InsertReport struct {
	Accepted    int      `json:"accepted"`
	RejectedIDs []string `json:"rejected_ids,omitempty"`
}

// DeleteReport aggregates the outcome of a delete-by-ids call.
type DeleteReport struct {
	Deleted    int      `json:"deleted"`
	MissingIDs []string `json:"missing_ids,omitempty"`
}

type createIndexRequest struct {
	IndexName  string `json:"index_name"`
	VectorDim  int    `json:"vector_dim"`
	MetricType string `json:"metric_type"`
	IndexType  string `json:"index_type"`
}

type listIndicesResponse struct {
	Indices []string `json:"indices"`
}

type insertRequest struct {
	Vectors  [][]float32       `json:"vectors"`
	IDs      []string          `json:"ids"`
	Metadata []models.Metadata `json:"metadata,omitempty"`
}

type insertResponse struct {
	Accepted int      `json:"accepted"`
	Rejected []string `json:"rejected"`
}

type searchRequest struct {
	Vector  []float32       `json:"vector"`
	TopK    int             `json:"top_k"`
	Filters models.Metadata `json:"filters,omitempty"`
}

type searchResponse struct {
	Results []models.SearchResult `json:"results"`
}

type deleteVectorsRequest struct {
	IDs []string `json:"ids"`
}

type deleteVectorsResponse struct {
	Deleted    int      `json:"deleted"`
	MissingIDs []string `json:"missing_ids"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// apiError is a terminal, non-retryable service response.
type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("endee returned status %d", e.status)
	}
	return fmt.Sprintf("endee returned status %d: %s", e.status, e.body)
}
