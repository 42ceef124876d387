package enrich

import (
	"time"

	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
)

// Enrich stamps positional and provenance fields onto every chunk of one
// ingestion batch. Pure: input order is output order, inherited metadata is
// merged into, never replaced.
func Enrich(chunks []notebook.Chunk, now time.Time) []notebook.Chunk {
	total := len(chunks)
	out := make([]notebook.Chunk, 0, total)
	for i, c := range chunks {
		meta := make(map[string]any, len(c.Metadata)+4)
		for k, v := range c.Metadata {
			meta[k] = v
		}
		meta[notebook.MetaChunkIndex] = i
		meta[notebook.MetaTotalChunks] = total
		meta[notebook.MetaChunkSize] = len(c.Content)
		meta[notebook.MetaIngestedAt] = now.Unix()

		out = append(out, notebook.Chunk{Content: c.Content, Metadata: meta})
	}
	return out
}
