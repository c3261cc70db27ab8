// ABOUTME: Metadata is a typed string-to-scalar map attached to vector records
// ABOUTME: Restricts values to string/int/float/bool for wire round-trip fidelity
package models

import (
	"encoding/json"
	"fmt"
)

// Metadata maps string keys to scalar values. Only string, integer,
// float and bool values survive a wire round trip; nested objects and
// arrays are rejected at decode time.
type Metadata map[string]any

// GetString returns the string value for key, or fallback when the key
// is absent or holds a non-string.
func (m Metadata) GetString(key, fallback string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return fallback
}

// GetInt returns the integer value for key, accepting the float64 form
// that encoding/json produces for JSON numbers.
func (m Metadata) GetInt(key string, fallback int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

// Validate rejects non-scalar values.
func (m Metadata) Validate() error {
	for k, v := range m {
		switch v.(type) {
		case string, bool, int, int64, float64, float32:
		default:
			return fmt.Errorf("metadata key %q: unsupported value type %T", k, v)
		}
	}
	return nil
}

// UnmarshalJSON decodes a JSON object and enforces the scalar-only rule.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Metadata(raw)
	if err := out.Validate(); err != nil {
		return err
	}
	*m = out
	return nil
}
