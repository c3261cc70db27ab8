// ABOUTME: Ingest command to chunk, embed and index documents
// ABOUTME: Accepts a single file or a directory tree of text and markdown
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Neha-Erigidindla/endee-rag-project/internal/ingest"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [path]",
		Short: "Chunk, embed and index documents",
		Long: `Ingest a document or a directory of documents into the index.

Text (.txt) and markdown (.md) files are split into overlapping
chunks, embedded, and inserted. Re-ingesting the same file overwrites
its records instead of duplicating them.

Examples:
  endee-rag ingest notes.txt
  endee-rag ingest ./docs
  endee-rag ingest            # uses DOCUMENTS_DIR from the environment`,
		Args: cobra.MaximumNArgs(1),
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.DocumentsDir
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no path given and DOCUMENTS_DIR is not set")
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", path, err)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("initializing embedder: %w", err)
	}
	store := newEndeeClient(cfg)

	pipeline, err := newPipeline(cfg, embedder, store)
	if err != nil {
		return fmt.Errorf("initializing pipeline: %w", err)
	}

	ctx := cmd.Context()

	if !info.IsDir() {
		fileReport, err := pipeline.IngestFile(ctx, path)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}
		return printIngestReport(cmd, []fileRow{fileRowFrom(*fileReport)}, nil)
	}

	report, err := pipeline.IngestDirectory(ctx, path)
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", path, err)
	}

	rows := make([]fileRow, 0, len(report.Files))
	for _, f := range report.Files {
		rows = append(rows, fileRowFrom(f))
	}
	return printIngestReport(cmd, rows, report.Failed)
}

type fileRow struct {
	Path     string   `json:"path"`
	Chunks   int      `json:"chunks"`
	Accepted int      `json:"accepted"`
	Rejected []string `json:"rejected,omitempty"`
}

func fileRowFrom(f ingest.FileReport) fileRow {
	return fileRow{
		Path:     f.Path,
		Chunks:   f.Chunks,
		Accepted: f.Accepted,
		Rejected: f.RejectedIDs,
	}
}

func printIngestReport(cmd *cobra.Command, rows []fileRow, failed []string) error {
	if outputFormat == "json" {
		payload := map[string]any{"files": rows}
		if len(failed) > 0 {
			payload["failed"] = failed
		}
		jsonData, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "FILE\tCHUNKS\tACCEPTED\tREJECTED\n")
	fmt.Fprintf(w, "----\t------\t--------\t--------\n")
	total := 0
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", truncate(r.Path, 50), r.Chunks, r.Accepted, len(r.Rejected))
		total += r.Accepted
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nIndexed %d chunk(s) from %d file(s)\n", total, len(rows))
		for _, path := range failed {
			fmt.Fprintf(cmd.OutOrStdout(), "Failed: %s\n", path)
		}
	}
	return nil
}
