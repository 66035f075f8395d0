// ABOUTME: CLI command that prints the built-in summarization prompt
// ABOUTME: Useful as a starting point for a custom --prompt-file
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"docsum/internal/llm"
)

// NewPromptCmd creates the prompt command.
func NewPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Print the default chunk summarization prompt",
		Long: `Print the default instruction applied to every chunk.

Save it to a file, edit it, and pass it back with
  docsum summarize --prompt-file my-prompt.txt`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), llm.DefaultPrompt)
		},
	}
}
