// ABOUTME: Setup command verifying connectivity and creating the index
// ABOUTME: Safe to run repeatedly; an existing index is left untouched
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Neha-Erigidindla/endee-rag-project/internal/endee"
)

// NewSetupCmd creates the setup command
func NewSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Verify connectivity and create the index",
		Long: `Verify the Endee server is reachable and create the configured
index if it does not exist yet.

Examples:
  endee-rag setup
  ENDEE_URL=http://endee:8080 endee-rag setup`,
		RunE: runSetup,
	}

	return cmd
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := newEndeeClient(cfg)
	ctx := cmd.Context()

	if !store.Health(ctx) {
		return fmt.Errorf("endee server at %s is not reachable", cfg.EndeeURL)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Endee server at %s is healthy\n", cfg.EndeeURL)
	}

	err = store.CreateIndex(ctx, cfg.IndexName, cfg.VectorDimension, cfg.Metric, cfg.IndexType)
	switch {
	case err == nil:
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Created index %q (dimension %d, metric %s)\n",
				cfg.IndexName, cfg.VectorDimension, cfg.Metric)
		}
	case errors.Is(err, endee.ErrIndexAlreadyExists):
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Index %q already exists\n", cfg.IndexName)
		}
	default:
		return fmt.Errorf("creating index: %w", err)
	}

	stats, err := store.Stats(ctx, cfg.IndexName)
	if err != nil {
		return fmt.Errorf("reading index stats: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Index %q holds %d vector(s)\n", cfg.IndexName, stats.VectorCount)
	}

	return nil
}
