package chunker

import (
	"strings"

	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
)

// Separators ordered from "best" to "worst" for semantic meaning.
// The hard character cut is the implicit last resort.
var separators = []string{"\n\n", "\n", " "}

// Split cuts text into overlapping windows of at most maxSize characters.
// Every window is an exact substring of text and every non-first window
// starts exactly overlap characters before the previous one ends, so
// stripping the overlap prefix of each non-first window and concatenating
// reproduces text byte for byte.
func Split(text string, maxSize, overlap int) []string {
	if maxSize < 1 {
		return []string{text}
	}
	if overlap < 0 {
		overlap = 0
	}
	// overlap must leave room for the window to advance
	if overlap >= maxSize {
		overlap = maxSize - 1
	}

	// If text is already small enough, just return it
	if len(text) <= maxSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for {
		end := start + maxSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			return chunks
		}

		cut := end //hard cut if no separator qualifies
		window := text[start:end]
		for _, sep := range separators {
			idx := strings.LastIndex(window, sep)
			if idx <= 0 {
				continue
			}
			candidate := start + idx + len(sep)
			// a cut inside the overlap region would stall the window
			if candidate-start > overlap {
				cut = candidate
				break
			}
		}

		chunks = append(chunks, text[start:cut])
		start = cut - overlap
	}
}

// ChunkDocuments splits each document in input order. Chunk metadata is a
// shallow copy of the parent document's map plus nothing - positional
// fields are stamped by the enricher.
func ChunkDocuments(docs []notebook.Document, maxSize, overlap int) []notebook.Chunk {
	var chunks []notebook.Chunk
	for _, doc := range docs {
		for _, piece := range Split(doc.Content, maxSize, overlap) {
			meta := make(map[string]any, len(doc.Metadata))
			for k, v := range doc.Metadata {
				meta[k] = v
			}
			chunks = append(chunks, notebook.Chunk{Content: piece, Metadata: meta})
		}
	}
	return chunks
}
