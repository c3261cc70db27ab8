// ABOUTME: Stats command displaying index size and configuration
// ABOUTME: Reads vector count, dimension and metric from the server
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [index]",
		Short: "Show index statistics",
		Long: `Show vector count, dimension and distance metric for an index.
Defaults to the configured index when no name is given.

Examples:
  endee-rag stats
  endee-rag stats other-index --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name := cfg.IndexName
	if len(args) > 0 {
		name = args[0]
	}

	store := newEndeeClient(cfg)
	stats, err := store.Stats(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("reading stats for %q: %w", name, err)
	}

	if outputFormat == "json" {
		payload := map[string]any{
			"index":        name,
			"vector_count": stats.VectorCount,
			"dimension":    stats.Dimension,
			"metric":       stats.Metric,
		}
		jsonData, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Index:     %s\n", name)
	fmt.Fprintf(cmd.OutOrStdout(), "Vectors:   %d\n", stats.VectorCount)
	fmt.Fprintf(cmd.OutOrStdout(), "Dimension: %d\n", stats.Dimension)
	fmt.Fprintf(cmd.OutOrStdout(), "Metric:    %s\n", stats.Metric)
	return nil
}
