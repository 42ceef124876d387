package llm

import (
	"fmt"
	"strings"

	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
)

// NoContextAnswer is returned without a model round trip when retrieval
// comes back empty - answering from nothing is how hallucinations start.
const NoContextAnswer = "I couldn't find any relevant information in the notebook for that question."

const answerTemplate = `Answer the user's question using ONLY the context below. If the context does not contain the answer, say you don't know.

Context:
%s

User Question: %s`

// BuildPrompt numbers every retrieved chunk with its ordinal and source and
// substitutes the block into the fixed instruction template.
func BuildPrompt(question string, matches []notebook.ScoredChunk) string {
	var b strings.Builder
	for i, m := range matches {
		if i > 0 {
			b.WriteString("\n\n")
		}
		source := m.Source()
		if source == "" {
			source = "unknown"
		}
		fmt.Fprintf(&b, "[%d] (source: %s)\n%s", i+1, source, m.Content)
	}
	return fmt.Sprintf(answerTemplate, b.String(), question)
}

// MatchContents flattens scored chunks for providers that take plain text.
func MatchContents(matches []notebook.ScoredChunk) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Content)
	}
	return out
}
