// ABOUTME: Indices command for listing and deleting Endee indices
// ABOUTME: Deletion requires --force since it drops every vector in the index
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	deleteForce bool
)

// NewIndicesCmd creates the indices command group
func NewIndicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indices",
		Short: "Manage Endee indices",
		Long: `List and delete indices on the Endee server.

Examples:
  endee-rag indices list
  endee-rag indices delete old-documents --force`,
	}

	cmd.AddCommand(newIndicesListCmd())
	cmd.AddCommand(newIndicesDeleteCmd())

	return cmd
}

func newIndicesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all indices",
		RunE:  runIndicesList,
	}
}

func newIndicesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an index and all its vectors",
		Args:  cobra.ExactArgs(1),
		RunE:  runIndicesDelete,
	}
	cmd.Flags().BoolVar(&deleteForce, "force", false, "Confirm deletion")
	return cmd
}

func runIndicesList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := newEndeeClient(cfg)
	names, err := store.ListIndices(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing indices: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(names, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if len(names) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No indices found\n")
		}
		return nil
	}
	for _, name := range names {
		marker := " "
		if name == cfg.IndexName {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
	}
	return nil
}

func runIndicesDelete(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !deleteForce {
		return fmt.Errorf("deleting %q drops all its vectors; re-run with --force to confirm", name)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := newEndeeClient(cfg)
	if err := store.DeleteIndex(cmd.Context(), name); err != nil {
		return fmt.Errorf("deleting index: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted index %q\n", name)
	}
	return nil
}
