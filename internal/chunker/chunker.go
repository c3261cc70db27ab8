// ABOUTME: Splits document text into overlapping, sentence-boundary-aware chunks
// ABOUTME: The unit of embedding and retrieval for the whole pipeline
package chunker

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Neha-Erigidindla/endee-rag-project/internal/models"
)

// ErrInvalidConfig is returned for chunk sizes or overlaps that would
// stall or never terminate the cursor loop.
var ErrInvalidConfig = errors.New("invalid chunker configuration")

// sentenceDelimiters in priority order. When two delimiters end at the
// same offset the earlier entry wins; otherwise the one nearest the
// window end wins.
var sentenceDelimiters = []string{". ", ".\n", "! ", "? "}

// Splitter cuts text into chunks of at most chunkSize characters, with
// the configured overlap carried between consecutive chunks.
type Splitter struct {
	chunkSize int
	overlap   int
}

// New validates the chunking parameters. Overlap must stay strictly
// below the chunk size or the cursor could never advance.
func New(chunkSize, overlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must be non-negative, got %d", ErrInvalidConfig, overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", ErrInvalidConfig, overlap, chunkSize)
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}, nil
}

// Split chunks a document's text. Empty input yields no chunks and no
// error. Offsets and sizes are in runes, so a cut can never land inside
// a multibyte character. Every offset of the source text is covered by
// at least one chunk span; whitespace-only windows are skipped but
// still advance the cursor.
func (s *Splitter) Split(doc models.Document) ([]models.Chunk, error) {
	var chunks []models.Chunk
	runes := []rune(doc.Text)
	textLen := len(runes)

	cursor := 0
	index := 0
	for cursor < textLen {
		end := cursor + s.chunkSize
		final := end >= textLen
		if final {
			end = textLen
		}

		// Prefer ending at a sentence boundary, but never shrink the
		// chunk below half the target size just to respect one.
		if !final {
			if cut, ok := boundaryCut(string(runes[cursor:end]), s.chunkSize); ok {
				end = cursor + cut
			}
		}

		text := strings.TrimSpace(string(runes[cursor:end]))
		if text != "" {
			chunks = append(chunks, models.Chunk{
				DocumentID: doc.ID,
				Index:      index,
				Start:      cursor,
				End:        end,
				Text:       text,
				CharCount:  utf8.RuneCountInString(text),
			})
			index++
		}

		if final {
			break
		}

		// Advance from the end of the emitted chunk minus the overlap,
		// with forced forward progress so short boundary cuts cannot
		// loop forever.
		next := end - s.overlap
		if next <= cursor {
			next = cursor + 1
		}
		cursor = next
	}

	return chunks, nil
}

// boundaryCut scans the window backward for the sentence delimiter
// nearest the end and returns the cut as a rune offset. A boundary is
// only accepted past half the target chunk size; the cut keeps the
// terminal punctuation and drops the trailing space or newline.
func boundaryCut(window string, chunkSize int) (int, bool) {
	best := -1
	for _, delim := range sentenceDelimiters {
		if pos := strings.LastIndex(window, delim); pos > best {
			best = pos
		}
	}
	if best < 0 {
		return 0, false
	}
	cut := utf8.RuneCountInString(window[:best])
	if cut > chunkSize/2 {
		return cut + 1, true
	}
	return 0, false
}
