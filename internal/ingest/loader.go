// ABOUTME: Document loading and discovery for ingestion
// ABOUTME: Plain-text and markdown files; extraction of binary formats is out of scope
package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Neha-Erigidindla/endee-rag-project/internal/models"
)

var supportedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// LoadDocument reads a single document from disk. The document id is
// the file's base name, which keeps record ids stable across
// re-ingestion from the same location.
func LoadDocument(path string) (models.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return models.Document{}, fmt.Errorf("unsupported file type %q", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}

	return models.Document{
		ID:   filepath.Base(path),
		Path: path,
		Text: string(data),
		Metadata: models.Metadata{
			"source":      filepath.Base(path),
			"source_path": path,
		},
	}, nil
}

// DiscoverDocuments walks a directory tree and returns the paths of
// all supported documents, sorted for deterministic ingestion order.
func DiscoverDocuments(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
