// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to query and ingest via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Neha-Erigidindla/endee-rag-project/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Endee RAG as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to query, search and ingest documents via
stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  endee-rag mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "endee-rag": {
  #       "command": "endee-rag",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("initializing embedder: %w", err)
	}
	store := newEndeeClient(cfg)

	engine, err := newEngine(cfg, embedder, store)
	if err != nil {
		return err
	}
	pipeline, err := newPipeline(cfg, embedder, store)
	if err != nil {
		return fmt.Errorf("initializing pipeline: %w", err)
	}

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Endee RAG",
		versionInfo.Version,
	)

	mcp.RegisterTools(server, engine, pipeline, store, cfg.IndexName)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Endee RAG MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, exiting")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
