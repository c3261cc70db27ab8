// ABOUTME: Root command for the Endee RAG CLI with global flags
// ABOUTME: Wires subcommands and shared verbose/quiet/format handling
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
███████╗███╗   ██╗██████╗ ███████╗███████╗    ██████╗  █████╗  ██████╗
██╔════╝████╗  ██║██╔══██╗██╔════╝██╔════╝    ██╔══██╗██╔══██╗██╔════╝
█████╗  ██╔██╗ ██║██║  ██║█████╗  █████╗      ██████╔╝███████║██║  ███╗
██╔══╝  ██║╚██╗██║██║  ██║██╔══╝  ██╔══╝      ██╔══██╗██╔══██║██║   ██║
███████╗██║ ╚████║██████╔╝███████╗███████╗    ██║  ██║██║  ██║╚██████╔╝
╚══════╝╚═╝  ╚═══╝╚═════╝ ╚══════╝╚══════╝    ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝
`

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "endee-rag",
		Short: "Retrieval-augmented generation over an Endee vector index",
		Long: banner + `
Endee RAG chunks documents, embeds them with OpenAI, and indexes the
vectors in an Endee vector database. Queries are answered from the
most relevant chunks, with source attributions.

Start with 'endee-rag setup' to verify connectivity and create the
index, then 'endee-rag ingest' to load documents.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, table, json)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewSetupCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewQueryCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewIndicesCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
