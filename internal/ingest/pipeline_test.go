// ABOUTME: Tests for the ingestion pipeline and document loading
// ABOUTME: Verifies deterministic ids, metadata shape, and per-file failure isolation

package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Neha-Erigidindla/endee-rag-project/internal/embedding"
	"github.com/Neha-Erigidindla/endee-rag-project/internal/endee"
	"github.com/Neha-Erigidindla/endee-rag-project/internal/models"
)

type stubEmbedder struct {
	dim    int
	err    error
	failOn string
	sent   [][]string
}

func (s *stubEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.failOn != "" {
		for _, t := range texts {
			if strings.Contains(t, s.failOn) {
				return nil, fmt.Errorf("%w: refusing %q", embedding.ErrEmbeddingFailed, s.failOn)
			}
		}
	}
	s.sent = append(s.sent, texts)
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, s.dim)
		out[i][0] = float32(len(texts[i]))
	}
	return out, nil
}

func (s *stubEmbedder) Dimension() int { return s.dim }

type stubInserter struct {
	records []models.VectorRecord
	err     error
}

func (s *stubInserter) InsertBatch(ctx context.Context, indexName string, records []models.VectorRecord) (*endee.InsertReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.records = append(s.records, records...)
	return &endee.InsertReport{Accepted: len(records)}, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func newPipeline(t *testing.T, emb *stubEmbedder, store *stubInserter) *Pipeline {
	t.Helper()
	p, err := NewPipeline(emb, store, Options{IndexName: "docs", ChunkSize: 64, ChunkOverlap: 8})
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	return p
}

func TestLoadDocument_UnsupportedType(t *testing.T) {
	_, err := LoadDocument("report.pdf")
	if err == nil {
		t.Fatal("expected error for unsupported file type")
	}
}

func TestDiscoverDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "b")
	writeFile(t, dir, "a.md", "a")
	writeFile(t, dir, "skip.pdf", "binary")
	sub := filepath.Join(dir, "nested")
	os.Mkdir(sub, 0o755)
	writeFile(t, sub, "c.txt", "c")

	paths, err := DiscoverDocuments(dir)
	if err != nil {
		t.Fatalf("DiscoverDocuments() error = %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("got %d paths %v, want 3", len(paths), paths)
	}
	for _, p := range paths {
		if filepath.Ext(p) == ".pdf" {
			t.Errorf("unsupported file discovered: %s", p)
		}
	}
}

func TestIngestFile_MetadataAndIDs(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "First sentence here. Second sentence follows. Third one closes it out completely now.")

	emb := &stubEmbedder{dim: 4}
	store := &stubInserter{}
	p := newPipeline(t, emb, store)

	report, err := p.IngestFile(context.Background(), path)
	if err != nil {
		t.Fatalf("IngestFile() error = %v", err)
	}

	if report.Chunks == 0 || report.Accepted != report.Chunks {
		t.Fatalf("report = %+v", report)
	}
	if len(store.records) != report.Chunks {
		t.Fatalf("inserted %d records, want %d", len(store.records), report.Chunks)
	}

	for i, r := range store.records {
		if r.Metadata.GetString("source", "") != "notes.txt" {
			t.Errorf("record %d source = %v", i, r.Metadata["source"])
		}
		if r.Metadata.GetInt("chunk_index", -1) != i {
			t.Errorf("record %d chunk_index = %v", i, r.Metadata["chunk_index"])
		}
		if r.Metadata.GetInt("total_chunks", -1) != report.Chunks {
			t.Errorf("record %d total_chunks = %v", i, r.Metadata["total_chunks"])
		}
		text := r.Metadata.GetString("text", "")
		if text == "" {
			t.Errorf("record %d has no text metadata", i)
		}
		if r.Metadata.GetInt("char_count", -1) != len(text) {
			t.Errorf("record %d char_count = %v for %d chars", i, r.Metadata["char_count"], len(text))
		}
		if r.Metadata.GetString("ingested_at", "") == "" {
			t.Errorf("record %d missing ingested_at", i)
		}
	}
}

func TestIngestFile_IdempotentIDs(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "stable.txt", "Alpha sentence one. Beta sentence two. Gamma sentence three rounds out the text.")

	first := &stubInserter{}
	p1 := newPipeline(t, &stubEmbedder{dim: 4}, first)
	if _, err := p1.IngestFile(context.Background(), path); err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	second := &stubInserter{}
	p2 := newPipeline(t, &stubEmbedder{dim: 4}, second)
	if _, err := p2.IngestFile(context.Background(), path); err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	if len(first.records) != len(second.records) {
		t.Fatalf("record counts differ: %d vs %d", len(first.records), len(second.records))
	}
	for i := range first.records {
		if first.records[i].ID != second.records[i].ID {
			t.Errorf("record %d id changed across re-ingestion: %s vs %s",
				i, first.records[i].ID, second.records[i].ID)
		}
	}
}

func TestRecordID_Shape(t *testing.T) {
	id := RecordID("/data/docs/guide.txt", 3, "some chunk text")
	if want := "guide_chunk3_"; len(id) != len(want)+8 || id[:len(want)] != want {
		t.Errorf("RecordID = %q, want %q followed by 8 hash chars", id, want)
	}
	if id != RecordID("/data/docs/guide.txt", 3, "some chunk text") {
		t.Error("RecordID is not deterministic")
	}
	if id == RecordID("/data/docs/guide.txt", 3, "different text") {
		t.Error("RecordID ignores chunk text")
	}
}

func TestIngestFile_EmbeddingFailureAbortsDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doomed.txt", "Some content that will not get embedded.")

	emb := &stubEmbedder{dim: 4, err: fmt.Errorf("%w: model down", embedding.ErrEmbeddingFailed)}
	store := &stubInserter{}
	p := newPipeline(t, emb, store)

	_, err := p.IngestFile(context.Background(), path)
	if !errors.Is(err, embedding.ErrEmbeddingFailed) {
		t.Fatalf("error = %v, want ErrEmbeddingFailed", err)
	}
	if len(store.records) != 0 {
		t.Errorf("%d records inserted after embedding failure, want 0", len(store.records))
	}
}

func TestIngestDirectory_IsolatesFailingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.txt", "POISON content the embedder rejects.")
	writeFile(t, dir, "good.txt", "Perfectly fine content for the index.")

	emb := &stubEmbedder{dim: 4, failOn: "POISON"}
	store := &stubInserter{}
	p := newPipeline(t, emb, store)

	report, err := p.IngestDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("IngestDirectory() error = %v", err)
	}

	if len(report.Failed) != 1 {
		t.Errorf("Failed = %v, want one entry", report.Failed)
	}
	if len(report.Files) != 1 {
		t.Errorf("Files = %v, want one entry", report.Files)
	}
	if report.TotalAccepted == 0 {
		t.Error("good file produced no accepted records")
	}
}

func TestIngestDirectory_EmptyDir(t *testing.T) {
	p := newPipeline(t, &stubEmbedder{dim: 4}, &stubInserter{})
	if _, err := p.IngestDirectory(context.Background(), t.TempDir()); err == nil {
		t.Error("expected error for directory without documents")
	}
}
