// ABOUTME: Tests for ingest command structure
// ABOUTME: Verifies command configuration and missing-path handling

package commands

import (
	"testing"
)

func TestNewIngestCmd(t *testing.T) {
	cmd := NewIngestCmd()

	if cmd.Use != "ingest [path]" {
		t.Errorf("Use = %q, want %q", cmd.Use, "ingest [path]")
	}

	if cmd.RunE == nil {
		t.Error("RunE should be set")
	}
}

func TestIngestCmd_RejectsExtraArgs(t *testing.T) {
	cmd := NewIngestCmd()
	cmd.SetArgs([]string{"a.txt", "b.txt"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for extra arguments")
	}
}
