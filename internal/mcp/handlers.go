// ABOUTME: MCP tool handler implementations for the retrieval server
// ABOUTME: Bridges tool calls to the RAG engine, ingestion pipeline and index client
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Neha-Erigidindla/endee-rag-project/internal/endee"
	"github.com/Neha-Erigidindla/endee-rag-project/internal/ingest"
	"github.com/Neha-Erigidindla/endee-rag-project/internal/models"
	"github.com/Neha-Erigidindla/endee-rag-project/internal/rag"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine    *rag.Engine
	pipeline  *ingest.Pipeline
	store     *endee.Client
	indexName string
}

// RagQuery handles the rag_query tool
func (h *Handlers) RagQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	resp, err := h.engine.Query(ctx, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}

	sources := make([]map[string]interface{}, 0, len(resp.Sources))
	for _, s := range resp.Sources {
		sources = append(sources, map[string]interface{}{
			"id":     s.ID,
			"source": s.Source,
			"score":  s.Score,
		})
	}

	response := map[string]interface{}{
		"answer":  resp.Answer,
		"sources": sources,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// RagSearch handles the rag_search tool
func (h *Handlers) RagSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	topK := request.GetInt("top_k", 5)
	keyword := request.GetString("keyword", "")

	var results []models.SearchResult
	if keyword != "" {
		results, err = h.engine.HybridSearch(ctx, query, keyword, topK)
	} else {
		results, err = h.engine.Retrieve(ctx, query, topK, nil)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	matches := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		matches = append(matches, map[string]interface{}{
			"id":     r.ID,
			"source": r.SourceName(),
			"score":  r.Score,
			"text":   r.Text(),
		})
	}

	response := map[string]interface{}{
		"results": matches,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// IngestDocument handles the ingest_document tool
func (h *Handlers) IngestDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required and must be a string"), nil
	}

	report, err := h.pipeline.IngestFile(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"path":     report.Path,
		"chunks":   report.Chunks,
		"accepted": report.Accepted,
		"rejected": report.RejectedIDs,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// IndexStats handles the index_stats tool
func (h *Handlers) IndexStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.store.Stats(ctx, h.indexName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get index stats: %v", err)), nil
	}

	response := map[string]interface{}{
		"index":        h.indexName,
		"vector_count": stats.VectorCount,
		"dimension":    stats.Dimension,
		"metric":       stats.Metric,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
