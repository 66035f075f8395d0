// ABOUTME: CLI command that summarizes a document file or stdin
// ABOUTME: Reads plain text, runs the pipeline, prints or saves the summary
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docsum/internal/config"
	"docsum/internal/core"
	"docsum/internal/llm"
	"docsum/internal/storage"
	"docsum/internal/storage/sqlite"
)

var (
	summarizePrompt     string
	summarizePromptFile string
	summarizeOutput     string
	summarizeNoCache    bool
	summarizeWorkers    int
	summarizeChunkSize  int
	summarizeOverlap    int
)

// NewSummarizeCmd creates the summarize command.
func NewSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Summarize a plain-text document",
		Long: `Summarize a plain-text document.

Reads the given file, or stdin when no file is provided. The input must be
decoded text; converting PDF/DOCX/RTF to text is out of scope.

Examples:
  docsum summarize report.txt
  docsum summarize --prompt "List the action items." notes.txt
  cat book.txt | docsum summarize --output summary.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSummarize,
	}

	cmd.Flags().StringVar(&summarizePrompt, "prompt", "", "Instruction applied to every chunk")
	cmd.Flags().StringVar(&summarizePromptFile, "prompt-file", "", "Read the instruction from a file")
	cmd.Flags().StringVarP(&summarizeOutput, "output", "o", "", "Write the summary to a file instead of stdout")
	cmd.Flags().BoolVar(&summarizeNoCache, "no-cache", false, "Skip the embedding cache")
	cmd.Flags().IntVar(&summarizeWorkers, "workers", 0, "Concurrent summarization calls (default from config)")
	cmd.Flags().IntVar(&summarizeChunkSize, "chunk-size", 0, "Target chunk size in characters (default from config)")
	cmd.Flags().IntVar(&summarizeOverlap, "overlap", 0, "Chunk overlap in characters (default from config)")

	return cmd
}

func runSummarize(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applySummarizeFlags(cfg)

	text, err := readDocument(args)
	if err != nil {
		return err
	}

	prompt, err := resolvePrompt()
	if err != nil {
		return err
	}

	client, err := llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return err
	}

	var embedder core.Embedder = client
	if cfg.CacheEnabled {
		path := cfg.CachePath
		if path == "" {
			path = sqlite.DefaultCachePath()
		}
		db, err := sqlite.Open(path)
		if err != nil {
			if verbose {
				fmt.Fprintf(os.Stderr, "Warning: embedding cache unavailable: %v\n", err)
			}
		} else {
			defer func() { _ = db.Close() }()
			embedder = storage.NewCachedEmbedder(client, sqlite.NewEmbeddingCache(db), client.EmbeddingModel())
		}
	}

	pipeline, err := core.NewPipeline(embedder, client, prompt, core.Options{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
		MaxClusters:  cfg.MaxClusters,
		MaxWorkers:   cfg.MaxWorkers,
	})
	if err != nil {
		return err
	}

	var progress core.ProgressFunc
	if !quiet {
		progress = func(percent int) {
			fmt.Fprintf(os.Stderr, "\rSummarizing... %3d%%", percent)
		}
	}

	result, err := pipeline.GenerateSummary(cmd.Context(), text, progress)
	if err != nil {
		if !quiet {
			fmt.Fprintln(os.Stderr)
		}
		return err
	}

	// The pipeline reports up to 90; completion is reported on delivery.
	if !quiet {
		fmt.Fprintf(os.Stderr, "\rSummarizing... 100%%\n")
	}

	if result.NoContent {
		fmt.Fprintln(os.Stderr, "No content produced: every chunk summary came back empty.")
		return nil
	}

	if len(result.Failures) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d of %d selected chunks failed to summarize; the summary is partial.\n",
			len(result.Failures), len(result.Representatives))
		if verbose {
			for _, f := range result.Failures {
				fmt.Fprintf(os.Stderr, "  chunk %d: %v\n", f.Index, f.Err)
			}
		}
	}

	if summarizeOutput != "" {
		if err := os.WriteFile(summarizeOutput, []byte(result.Summary+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, "Summary written to %s\n", summarizeOutput)
		}
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Summary)
	return nil
}

// applySummarizeFlags lets command flags override the loaded configuration.
func applySummarizeFlags(cfg *config.Config) {
	if summarizeWorkers > 0 {
		cfg.MaxWorkers = summarizeWorkers
	}
	if summarizeChunkSize > 0 {
		cfg.ChunkSize = summarizeChunkSize
	}
	if summarizeOverlap > 0 {
		cfg.ChunkOverlap = summarizeOverlap
	}
	if summarizeNoCache {
		cfg.CacheEnabled = false
	}
}

// readDocument reads the document text from the file argument or stdin.
func readDocument(args []string) (string, error) {
	var data []byte
	var err error
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading document: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
	}
	return string(data), nil
}

// resolvePrompt picks the instruction text: --prompt wins, then
// --prompt-file, then the built-in default.
func resolvePrompt() (string, error) {
	if summarizePrompt != "" && summarizePromptFile != "" {
		return "", fmt.Errorf("--prompt and --prompt-file are mutually exclusive")
	}
	if summarizePrompt != "" {
		return summarizePrompt, nil
	}
	if summarizePromptFile != "" {
		data, err := os.ReadFile(summarizePromptFile)
		if err != nil {
			return "", fmt.Errorf("reading prompt file: %w", err)
		}
		prompt := strings.TrimSpace(string(data))
		if prompt == "" {
			return "", fmt.Errorf("prompt file %s is empty", summarizePromptFile)
		}
		return prompt, nil
	}
	return llm.DefaultPrompt, nil
}
