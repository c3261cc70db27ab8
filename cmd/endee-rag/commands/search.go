// ABOUTME: Search command for raw semantic retrieval without answer generation
// ABOUTME: Supports keyword-filtered hybrid search and similar-document lookup
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Neha-Erigidindla/endee-rag-project/internal/models"
)

var (
	searchLimit   int
	searchKeyword string
	searchSimilar string
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the indexed documents",
		Long: `Search the index and print the matching chunks with scores.

With --keyword, results are additionally filtered to chunks that
contain the keyword. With --similar-to, the query is replaced by an
already-indexed record and its nearest neighbours are returned.

Examples:
  endee-rag search "connection pooling"
  endee-rag search --limit 10 --keyword goroutine "concurrency"
  endee-rag search --similar-to notes_chunk2_a1b2c3d4
  endee-rag search --format json "retry policy"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")
	cmd.Flags().StringVar(&searchKeyword, "keyword", "", "Keyword the returned chunks must contain")
	cmd.Flags().StringVar(&searchSimilar, "similar-to", "", "Find chunks similar to this record id")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}
	if searchSimilar == "" && len(args) == 0 {
		return fmt.Errorf("no query given; pass one as an argument or use --similar-to")
	}

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

	ctx := cmd.Context()

	var results []models.SearchResult
	switch {
	case searchSimilar != "":
		results, err = engine.SimilarDocuments(ctx, searchSimilar, searchLimit)
	case searchKeyword != "":
		results, err = engine.HybridSearch(ctx, args[0], searchKeyword, searchLimit)
	default:
		results, err = engine.Retrieve(ctx, args[0], searchLimit, nil)
	}
	if err != nil {
		return fmt.Errorf("searching index: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No matches found\n")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tSOURCE\tID\tPREVIEW\n")
	fmt.Fprintf(w, "-----\t------\t--\t-------\n")
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
			r.Score,
			truncate(r.SourceName(), 20),
			truncate(r.ID, 30),
			truncate(r.Text(), 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}
	return nil
}
