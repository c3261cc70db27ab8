// ABOUTME: Tests for the query command structure and question collection
// ABOUTME: Verifies flag handling and the --file batch input path

package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewQueryCmd(t *testing.T) {
	cmd := NewQueryCmd()

	if cmd.Use != "query [question]" {
		t.Errorf("Use = %q, want %q", cmd.Use, "query [question]")
	}

	if cmd.Flags().Lookup("file") == nil {
		t.Error("--file flag not found")
	}
}

func TestCollectQuestions_FromArgs(t *testing.T) {
	queryFile = ""
	questions, err := collectQuestions([]string{"what is endee?"})
	if err != nil {
		t.Fatalf("collectQuestions() error = %v", err)
	}
	if len(questions) != 1 || questions[0] != "what is endee?" {
		t.Errorf("questions = %v", questions)
	}
}

func TestCollectQuestions_NoInput(t *testing.T) {
	queryFile = ""
	if _, err := collectQuestions(nil); err == nil {
		t.Error("expected error with no question")
	}
}

func TestCollectQuestions_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.txt")
	content := "first question\n\n  second question  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	queryFile = path
	defer func() { queryFile = "" }()

	questions, err := collectQuestions(nil)
	if err != nil {
		t.Fatalf("collectQuestions() error = %v", err)
	}
	want := []string{"first question", "second question"}
	if len(questions) != len(want) {
		t.Fatalf("questions = %v, want %v", questions, want)
	}
	for i := range want {
		if questions[i] != want[i] {
			t.Errorf("questions[%d] = %q, want %q", i, questions[i], want[i])
		}
	}
}

func TestCollectQuestions_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	queryFile = path
	defer func() { queryFile = "" }()

	if _, err := collectQuestions(nil); err == nil {
		t.Error("expected error for file without questions")
	}
}
