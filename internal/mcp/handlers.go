// ABOUTME: MCP tool handler implementations for the docsum server
// ABOUTME: Builds a pipeline per call; tool errors never crash the server
package mcp

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"

	"docsum/internal/config"
	"docsum/internal/core"
	"docsum/internal/llm"
	"docsum/internal/storage"
	"docsum/internal/storage/sqlite"
)

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	cfg *config.Config
}

// SummarizeDocument handles the summarize_document tool.
func (h *Handlers) SummarizeDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}
	prompt := request.GetString("prompt", llm.DefaultPrompt)

	pipeline, closer, err := buildPipeline(h.cfg, prompt)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if closer != nil {
		defer closer()
	}

	result, err := pipeline.GenerateSummary(ctx, text, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summarization failed: %v", err)), nil
	}

	if result.NoContent {
		return mcp.NewToolResultText("No content produced: every chunk summary came back empty."), nil
	}

	response := result.Summary
	if len(result.Failures) > 0 {
		response += fmt.Sprintf("\n\n(Note: %d of %d selected chunks failed to summarize; the summary above is partial.)",
			len(result.Failures), len(result.Representatives))
	}
	return mcp.NewToolResultText(response), nil
}

// GetDefaultPrompt handles the get_default_prompt tool.
func (h *Handlers) GetDefaultPrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(llm.DefaultPrompt), nil
}

// buildPipeline assembles the pipeline from configuration. The returned
// closer releases the embedding cache database when one was opened.
func buildPipeline(cfg *config.Config, prompt string) (*core.Pipeline, func(), error) {
	client, err := llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, nil, err
	}

	var embedder core.Embedder = client
	var closer func()
	if cfg.CacheEnabled {
		path := cfg.CachePath
		if path == "" {
			path = sqlite.DefaultCachePath()
		}
		db, err := sqlite.Open(path)
		if err != nil {
			// The cache is an optimization; fall back to direct embedding.
			log.Printf("[MCP] embedding cache unavailable, continuing without it: %v", err)
		} else {
			embedder = storage.NewCachedEmbedder(client, sqlite.NewEmbeddingCache(db), client.EmbeddingModel())
			closer = func() { _ = db.Close() }
		}
	}

	pipeline, err := core.NewPipeline(embedder, client, prompt, core.Options{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
		MaxClusters:  cfg.MaxClusters,
		MaxWorkers:   cfg.MaxWorkers,
	})
	if err != nil {
		if closer != nil {
			closer()
		}
		return nil, nil, err
	}
	return pipeline, closer, nil
}
