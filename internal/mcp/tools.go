// ABOUTME: MCP tool definitions and registration for the docsum server
// ABOUTME: Exposes document summarization and the default prompt over stdio
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"docsum/internal/config"
)

// RegisterTools registers all MCP tools with the server.
func RegisterTools(server *mcpserver.MCPServer, cfg *config.Config) *Handlers {
	handlers := &Handlers{cfg: cfg}

	// 1. summarize_document - run the full summarization pipeline on text
	server.AddTool(mcp.Tool{
		Name: "summarize_document",
		Description: "Summarize a long document. The text is chunked, embedded, clustered " +
			"to find representative passages, and each representative is summarized; the " +
			"result is the per-chunk summaries joined in document order.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Plain text of the document to summarize",
				},
				"prompt": map[string]interface{}{
					"type":        "string",
					"description": "Optional instruction applied to every chunk (default: concise key-point summary)",
				},
			},
			Required: []string{"text"},
		},
	}, handlers.SummarizeDocument)

	// 2. get_default_prompt - inspect the instruction used when none is given
	server.AddTool(mcp.Tool{
		Name:        "get_default_prompt",
		Description: "Return the default summarization instruction applied to each chunk.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetDefaultPrompt)

	return handlers
}
