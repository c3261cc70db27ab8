// ABOUTME: Query command answering questions from the indexed documents
// ABOUTME: Single questions on the command line, batches from a file
package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Neha-Erigidindla/endee-rag-project/internal/rag"
)

var (
	queryFile string
)

// NewQueryCmd creates the query command
func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [question]",
		Short: "Answer a question from the indexed documents",
		Long: `Answer a question using retrieval-augmented generation.

The question is embedded, the most similar chunks are retrieved, and
an answer is produced from them with source attributions. With
USE_LLM=false the answer is extractive instead of generated.

Examples:
  endee-rag query "How does the chunker handle overlap?"
  endee-rag query --file questions.txt
  endee-rag query --format json "What is Endee?"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringVar(&queryFile, "file", "", "Read one question per line from file")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	questions, err := collectQuestions(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("initializing embedder: %w", err)
	}
	store := newEndeeClient(cfg)

	engine, err := newEngine(cfg, embedder, store)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	if len(questions) == 1 {
		resp, err := engine.Query(ctx, questions[0])
		if err != nil {
			return fmt.Errorf("answering query: %w", err)
		}
		return printResponses(cmd, []*rag.Response{resp})
	}

	return printResponses(cmd, engine.BatchQuery(ctx, questions))
}

// collectQuestions resolves the question list from args or --file
func collectQuestions(args []string) ([]string, error) {
	if queryFile == "" {
		if len(args) == 0 {
			return nil, fmt.Errorf("no question given; pass one as an argument or use --file")
		}
		return []string{args[0]}, nil
	}

	f, err := os.Open(queryFile)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", queryFile, err)
	}
	defer f.Close()

	var questions []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			questions = append(questions, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", queryFile, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%s contains no questions", queryFile)
	}
	return questions, nil
}

func printResponses(cmd *cobra.Command, responses []*rag.Response) error {
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(responses, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	for i, resp := range responses {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if len(responses) > 1 {
			fmt.Fprintf(cmd.OutOrStdout(), "Q: %s\n", resp.Query)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", resp.Answer)

		if !quiet && len(resp.Sources) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\nSources:\n")
			for _, s := range resp.Sources {
				fmt.Fprintf(cmd.OutOrStdout(), "  %.3f  %s (%s)\n", s.Score, s.Source, truncate(s.ID, 40))
			}
		}
	}
	return nil
}
