// ABOUTME: Tests for prompt construction
// ABOUTME: Verifies verbatim fencing and default-instruction fallback

package llm

import (
	"strings"
	"testing"
)

func TestBuildPrompt_ChunkEmbeddedVerbatim(t *testing.T) {
	chunk := "Some chunk text.\nWith a second line."
	instruction := "Summarize briefly."

	prompt := BuildPrompt(chunk, instruction)

	if !strings.HasPrefix(prompt, "```"+chunk+"```") {
		t.Errorf("prompt does not fence the chunk verbatim: %q", prompt)
	}
	if !strings.HasSuffix(prompt, instruction) {
		t.Errorf("prompt does not end with the instruction: %q", prompt)
	}
}

func TestBuildPrompt_DefaultInstruction(t *testing.T) {
	prompt := BuildPrompt("chunk", "")
	if !strings.Contains(prompt, DefaultPrompt) {
		t.Errorf("prompt missing default instruction: %q", prompt)
	}
}

func TestNewClientWithConfig_RequiresKey(t *testing.T) {
	if _, err := NewClientWithConfig(&ClientConfig{}); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestNewClientWithConfig_Defaults(t *testing.T) {
	c, err := NewClientWithConfig(&ClientConfig{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewClientWithConfig() error = %v", err)
	}
	if c.chatModel != DefaultChatModel {
		t.Errorf("chatModel = %q, want %q", c.chatModel, DefaultChatModel)
	}
	if c.EmbeddingModel() != DefaultEmbeddingModel {
		t.Errorf("embeddingModel = %q, want %q", c.EmbeddingModel(), DefaultEmbeddingModel)
	}
	if c.timeout <= 0 {
		t.Errorf("timeout = %v, want positive default", c.timeout)
	}
}
