// ABOUTME: HTTP client for the Endee vector database
// ABOUTME: Index lifecycle, batched insert, top-K search, deletion and stats with bounded retry
package endee

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Neha-Erigidindla/endee-rag-project/internal/models"
	"github.com/Neha-Erigidindla/endee-rag-project/internal/util"
)

// DefaultMaxBatchSize bounds a single insert request; larger batches
// are split into multiple network calls transparently.
const DefaultMaxBatchSize = 100

// Config holds connection settings for the Endee client
type Config struct {
	BaseURL   string
	AuthToken string
	Timeout   time.Duration

	// Dimension, when positive, is enforced locally on every insert
	// and search so mismatched vectors never reach the wire.
	Dimension int

	MaxBatchSize int
	MaxRetries   int
	RetryDelay   time.Duration
}

// Client talks to an Endee server. It holds no per-request state and is
// safe for concurrent use; construct one per process and share it.
type Client struct {
	baseURL   string
	authToken string
	http      *http.Client
	dim       int
	maxBatch  int
	retry     util.RetryPolicy
}

// NewClient creates an Endee client from config
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxBatch := cfg.MaxBatchSize
	if maxBatch <= 0 {
		maxBatch = DefaultMaxBatchSize
	}
	retry := util.RetryPolicy{MaxAttempts: cfg.MaxRetries + 1, BaseDelay: cfg.RetryDelay}
	if cfg.MaxRetries <= 0 {
		retry = util.DefaultRetryPolicy()
	}
	if retry.BaseDelay <= 0 {
		retry.BaseDelay = 2 * time.Second
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		authToken: cfg.AuthToken,
		http:      &http.Client{Timeout: timeout},
		dim:       cfg.Dimension,
		maxBatch:  maxBatch,
		retry:     retry,
	}
}

// Health reports whether the Endee server answers its health endpoint.
func (c *Client) Health(ctx context.Context) bool {
	var resp healthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return false
	}
	return resp.Status == "healthy"
}

// CreateIndex creates a named index with a fixed dimension and metric.
// Fails with ErrIndexAlreadyExists when the name is taken and
// ErrInvalidDimension for non-positive dimensions, before any network
// call in the latter case.
func (c *Client) CreateIndex(ctx context.Context, name string, dimension int, metric, indexType string) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDimension, dimension)
	}
	req := createIndexRequest{
		IndexName:  name,
		VectorDim:  dimension,
		MetricType: metric,
		IndexType:  indexType,
	}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/index/create", req, nil)
}

// ListIndices returns the names of all indices on the server.
func (c *Client) ListIndices(ctx context.Context) ([]string, error) {
	var resp listIndicesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/index/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Indices, nil
}

// DeleteIndex removes an index and all its records. Fails with
// ErrIndexNotFound when the index does not exist.
func (c *Client) DeleteIndex(ctx context.Context, name string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/v1/index/"+url.PathEscape(name), nil, nil)
}

// InsertBatch inserts records, splitting them into requests of at most
// the configured batch size. Records whose vector length disagrees with
// the configured dimension are rejected individually; a batch that
// fails terminally rejects only its own records. Re-inserting an id
// overwrites the stored record, so re-ingestion is idempotent.
func (c *Client) InsertBatch(ctx context.Context, indexName string, records []models.VectorRecord) (*InsertReport, error) {
	report := &InsertReport{}

	valid := make([]models.VectorRecord, 0, len(records))
	for _, r := range records {
		if c.dim > 0 && len(r.Vector) != c.dim {
			log.Printf("rejecting record %s: %v (got %d, index expects %d)", r.ID, ErrDimensionMismatch, len(r.Vector), c.dim)
			report.RejectedIDs = append(report.RejectedIDs, r.ID)
			continue
		}
		valid = append(valid, r)
	}

	for start := 0; start < len(valid); start += c.maxBatch {
		end := start + c.maxBatch
		if end > len(valid) {
			end = len(valid)
		}
		batch := valid[start:end]

		resp, err := c.insertOne(ctx, indexName, batch)
		if err != nil {
			// A missing index or a dead context fails every remaining
			// batch the same way; stop instead of burning retries.
			if errors.Is(err, ErrIndexNotFound) || ctx.Err() != nil {
				return report, err
			}
			log.Printf("insert batch of %d into %q failed: %v", len(batch), indexName, err)
			for _, r := range batch {
				report.RejectedIDs = append(report.RejectedIDs, r.ID)
			}
			continue
		}

		accepted := resp.Accepted
		if accepted == 0 && len(resp.Rejected) == 0 {
			// Servers that return an empty body accepted the whole batch.
			accepted = len(batch)
		}
		report.Accepted += accepted
		report.RejectedIDs = append(report.RejectedIDs, resp.Rejected...)
	}

	return report, nil
}

func (c *Client) insertOne(ctx context.Context, indexName string, batch []models.VectorRecord) (*insertResponse, error) {
	req := insertRequest{
		Vectors:  make([][]float32, len(batch)),
		IDs:      make([]string, len(batch)),
		Metadata: make([]models.Metadata, len(batch)),
	}
	for i, r := range batch {
		req.Vectors[i] = r.Vector
		req.IDs[i] = r.ID
		req.Metadata[i] = r.Metadata
	}

	var resp insertResponse
	path := "/api/v1/index/" + url.PathEscape(indexName) + "/insert"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Search returns up to topK results ordered by descending similarity.
// An empty index yields an empty result set, not an error. The query
// vector must match the configured dimension.
func (c *Client) Search(ctx context.Context, indexName string, vector []float32, topK int, filters models.Metadata) ([]models.SearchResult, error) {
	if c.dim > 0 && len(vector) != c.dim {
		return nil, fmt.Errorf("%w: query vector has %d dimensions, index expects %d", ErrInvalidDimension, len(vector), c.dim)
	}
	if topK <= 0 {
		topK = 5
	}

	req := searchRequest{Vector: vector, TopK: topK, Filters: filters}
	var resp searchResponse
	path := "/api/v1/index/" + url.PathEscape(indexName) + "/search"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}

	results := resp.Results
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// GetVector fetches a single record by id. Returns nil without error
// when the record does not exist.
func (c *Client) GetVector(ctx context.Context, indexName, id string) (*models.VectorRecord, error) {
	var record models.VectorRecord
	path := "/api/v1/index/" + url.PathEscape(indexName) + "/vector/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &record); err != nil {
		if errors.Is(err, ErrIndexNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// DeleteVectors removes records by id and reports which ids were
// missing.
func (c *Client) DeleteVectors(ctx context.Context, indexName string, ids []string) (*DeleteReport, error) {
	req := deleteVectorsRequest{IDs: ids}
	var resp deleteVectorsResponse
	path := "/api/v1/index/" + url.PathEscape(indexName) + "/delete"
	if err := c.doJSON(ctx, http.MethodDelete, path, req, &resp); err != nil {
		return nil, err
	}
	return &DeleteReport{Deleted: resp.Deleted, MissingIDs: resp.MissingIDs}, nil
}

// Stats returns the record count, dimension and metric of an index.
func (c *Client) Stats(ctx context.Context, indexName string) (*IndexStats, error) {
	var stats IndexStats
	path := "/api/v1/index/" + url.PathEscape(indexName) + "/stats"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// doJSON performs one API call with the shared retry policy. Network
// errors and 5xx responses are retried; 4xx responses surface
// immediately, mapped onto the error taxonomy.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		payload = data
	}

	return c.retry.Do(ctx, func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return fmt.Errorf("building request: %w", err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.authToken != "" {
			req.Header.Set("Authorization", c.authToken)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return util.Transient(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return classifyStatus(resp)
		}

		if out == nil {
			return nil
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return util.Transient(fmt.Errorf("reading response: %w", err))
		}
		if len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil
	})
}

func classifyStatus(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(data))

	switch {
	case resp.StatusCode >= 500:
		return util.Transient(&apiError{status: resp.StatusCode, body: msg})
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrIndexNotFound, msg)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrIndexAlreadyExists, msg)
	default:
		return &apiError{status: resp.StatusCode, body: msg}
	}
}
