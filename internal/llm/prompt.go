// ABOUTME: Prompt construction for chunk summarization
// ABOUTME: The chunk is embedded verbatim in a fence, instruction follows
package llm

// DefaultPrompt is the instruction used when the caller supplies none.
const DefaultPrompt = "Summarize the text concisely and directly without prefatory phrases. " +
	"Focus on presenting its key points and main ideas, ensuring that essential " +
	"details are accurately conveyed in a straightforward manner."

// BuildPrompt wraps chunk text in a code fence and appends the instruction.
// The chunk is embedded verbatim; no other transformation is applied.
func BuildPrompt(chunkText, instruction string) string {
	if instruction == "" {
		instruction = DefaultPrompt
	}
	return "```" + chunkText + "```\n" + instruction
}
