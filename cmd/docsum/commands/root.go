// ABOUTME: Root command and global flags for the docsum CLI
// ABOUTME: Wires all subcommands and shared verbosity controls
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	configPath string
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docsum",
		Short: "Summarize long documents with embeddings and clustering",
		Long: `docsum reduces a long document to a short summary.

The document is split into overlapping chunks, each chunk is embedded as a
vector, the vectors are clustered to find a small set of representative
passages, each representative is summarized by a language model, and the
per-chunk summaries are joined in document order.

Requires OPENAI_API_KEY (environment or .env file).`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewSummarizeCmd())
	cmd.AddCommand(NewPromptCmd())
	cmd.AddCommand(NewCacheCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}
