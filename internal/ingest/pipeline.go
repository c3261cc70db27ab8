// ABOUTME: Ingestion pipeline wiring chunker, embedder and Endee insert together
// ABOUTME: Deterministic record ids make re-ingestion an idempotent overwrite
package ingest

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/Neha-Erigidindla/endee-rag-project/internal/chunker"
	"github.com/Neha-Erigidindla/endee-rag-project/internal/embedding"
	"github.com/Neha-Erigidindla/endee-rag-project/internal/endee"
	"github.com/Neha-Erigidindla/endee-rag-project/internal/models"
)

// Inserter is the slice of the Endee client the pipeline needs.
type Inserter interface {
	InsertBatch(ctx context.Context, indexName string, records []models.VectorRecord) (*endee.InsertReport, error)
}

// FileReport describes the outcome of ingesting one document.
type FileReport struct {
	Path        string   `json:"path"`
	Chunks      int      `json:"chunks"`
	Accepted    int      `json:"accepted"`
	RejectedIDs []string `json:"rejected_ids,omitempty"`
}

// Report aggregates a directory ingestion. Failed lists documents that
// could not be processed at all; their failure never blocks the rest.
type Report struct {
	Files         []FileReport `json:"files"`
	Failed        []string     `json:"failed,omitempty"`
	TotalChunks   int          `json:"total_chunks"`
	TotalAccepted int          `json:"total_accepted"`
}

// Options configures a Pipeline.
type Options struct {
	IndexName    string
	ChunkSize    int
	ChunkOverlap int
}

// Pipeline turns documents into embedded records in the index. A single
// document is treated as a unit: an embedding failure aborts it before
// any insert, and partial insert outcomes are reported per file.
type Pipeline struct {
	splitter  *chunker.Splitter
	embedder  embedding.Embedder
	store     Inserter
	indexName string
}

// NewPipeline validates the chunking config and builds a pipeline.
func NewPipeline(embedder embedding.Embedder, store Inserter, opts Options) (*Pipeline, error) {
	splitter, err := chunker.New(opts.ChunkSize, opts.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		splitter:  splitter,
		embedder:  embedder,
		store:     store,
		indexName: opts.IndexName,
	}, nil
}

// RecordID derives the deterministic id for a chunk: document stem,
// chunk index, and a short hash of the chunk text. Re-ingesting an
// unchanged document reproduces the same ids, so inserts overwrite
// instead of duplicating.
func RecordID(sourcePath string, index int, text string) string {
	sum := md5.Sum([]byte(text))
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return fmt.Sprintf("%s_chunk%d_%s", stem, index, hex.EncodeToString(sum[:])[:8])
}

// IngestFile loads, chunks, embeds and inserts one document.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (*FileReport, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}

	chunks, err := p.splitter.Split(doc)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return &FileReport{Path: path}, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %s: %w", path, err)
	}

	ingestedAt := time.Now().UTC().Format(time.RFC3339)
	records := make([]models.VectorRecord, len(chunks))
	for i, c := range chunks {
		records[i] = models.VectorRecord{
			ID:     RecordID(path, c.Index, c.Text),
			Vector: vectors[i],
			Metadata: models.Metadata{
				"source":       doc.ID,
				"source_path":  path,
				"chunk_index":  c.Index,
				"total_chunks": len(chunks),
				"text":         c.Text,
				"char_count":   c.CharCount,
				"ingested_at":  ingestedAt,
			},
		}
	}

	report, err := p.store.InsertBatch(ctx, p.indexName, records)
	if err != nil {
		return nil, fmt.Errorf("inserting %s: %w", path, err)
	}

	return &FileReport{
		Path:        path,
		Chunks:      len(chunks),
		Accepted:    report.Accepted,
		RejectedIDs: report.RejectedIDs,
	}, nil
}

// IngestDirectory processes every supported document under dir. A
// document that fails is recorded and skipped; the rest proceed.
func (p *Pipeline) IngestDirectory(ctx context.Context, dir string) (*Report, error) {
	paths, err := DiscoverDocuments(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no supported documents found in %s", dir)
	}

	report := &Report{}
	for _, path := range paths {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		fileReport, err := p.IngestFile(ctx, path)
		if err != nil {
			log.Printf("failed to ingest %s: %v", path, err)
			report.Failed = append(report.Failed, path)
			continue
		}
		report.Files = append(report.Files, *fileReport)
		report.TotalChunks += fileReport.Chunks
		report.TotalAccepted += fileReport.Accepted
	}
	return report, nil
}
