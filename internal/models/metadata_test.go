// ABOUTME: Tests for the scalar-only Metadata map
// ABOUTME: Verifies typed accessors, validation, and decode-time enforcement

package models

import (
	"encoding/json"
	"testing"
)

func TestMetadata_GetString(t *testing.T) {
	m := Metadata{"source": "notes.txt", "count": 3}

	if got := m.GetString("source", "fallback"); got != "notes.txt" {
		t.Errorf("GetString(source) = %q", got)
	}
	if got := m.GetString("missing", "fallback"); got != "fallback" {
		t.Errorf("GetString(missing) = %q", got)
	}
	if got := m.GetString("count", "fallback"); got != "fallback" {
		t.Errorf("GetString on non-string = %q, want fallback", got)
	}
}

func TestMetadata_GetInt(t *testing.T) {
	m := Metadata{
		"int":     7,
		"int64":   int64(8),
		"float64": float64(9),
		"text":    "nope",
	}

	tests := []struct {
		key  string
		want int
	}{
		{"int", 7},
		{"int64", 8},
		{"float64", 9},
		{"text", -1},
		{"missing", -1},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := m.GetInt(tt.key, -1); got != tt.want {
				t.Errorf("GetInt(%q) = %d, want %d", tt.key, got, tt.want)
			}
		})
	}
}

func TestMetadata_Validate(t *testing.T) {
	valid := Metadata{"s": "x", "b": true, "i": 1, "f": 1.5}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v for scalar values", err)
	}

	tests := []struct {
		name  string
		value any
	}{
		{"nested map", map[string]any{"a": 1}},
		{"array", []any{1, 2}},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Metadata{"bad": tt.value}
			if err := m.Validate(); err == nil {
				t.Errorf("Validate() accepted %T", tt.value)
			}
		})
	}
}

func TestMetadata_UnmarshalRejectsNested(t *testing.T) {
	var m Metadata
	if err := json.Unmarshal([]byte(`{"ok":"yes","bad":{"nested":1}}`), &m); err == nil {
		t.Error("expected decode error for nested object")
	}

	var good Metadata
	if err := json.Unmarshal([]byte(`{"source":"a.txt","chunk_index":2}`), &good); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if good.GetInt("chunk_index", -1) != 2 {
		t.Errorf("chunk_index = %v", good["chunk_index"])
	}
}

func TestSearchResult_Helpers(t *testing.T) {
	r := SearchResult{Metadata: Metadata{"text": "chunk body", "source": "guide.md"}}
	if r.Text() != "chunk body" {
		t.Errorf("Text() = %q", r.Text())
	}
	if r.SourceName() != "guide.md" {
		t.Errorf("SourceName() = %q", r.SourceName())
	}

	bare := SearchResult{}
	if bare.SourceName() != "Unknown" {
		t.Errorf("SourceName() on bare result = %q, want Unknown", bare.SourceName())
	}
	if bare.Text() != "" {
		t.Errorf("Text() on bare result = %q", bare.Text())
	}
}
