// ABOUTME: MCP tool definitions and registration for the retrieval server
// ABOUTME: Defines JSON schemas for the query, search, ingest and stats tools
package mcp

import (
	"github.com/Neha-Erigidindla/endee-rag-project/internal/endee"
	"github.com/Neha-Erigidindla/endee-rag-project/internal/ingest"
	"github.com/Neha-Erigidindla/endee-rag-project/internal/rag"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engine *rag.Engine, pipeline *ingest.Pipeline, store *endee.Client, indexName string) *Handlers {
	handlers := &Handlers{
		engine:    engine,
		pipeline:  pipeline,
		store:     store,
		indexName: indexName,
	}

	// 1. rag_query - Answer a question from the indexed documents
	server.AddTool(mcp.Tool{
		Name:        "rag_query",
		Description: "Answer a question using retrieval-augmented generation over the indexed documents. Returns the answer with source attributions.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer from the indexed documents",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.RagQuery)

	// 2. rag_search - Raw semantic search without answer generation
	server.AddTool(mcp.Tool{
		Name:        "rag_search",
		Description: "Semantic search over the indexed documents. Returns the matching chunks with similarity scores, without generating an answer.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
				"keyword": map[string]interface{}{
					"type":        "string",
					"description": "Optional keyword the returned chunks must contain",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.RagSearch)

	// 3. ingest_document - Chunk, embed and index a document from disk
	server.AddTool(mcp.Tool{
		Name:        "ingest_document",
		Description: "Chunk, embed and index a text or markdown document from the local filesystem.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to a .txt or .md file to ingest",
				},
			},
			Required: []string{"path"},
		},
	}, handlers.IngestDocument)

	// 4. index_stats - Vector count and configuration of the index
	server.AddTool(mcp.Tool{
		Name:        "index_stats",
		Description: "Get vector count, dimension and distance metric of the active index.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.IndexStats)

	return handlers
}
