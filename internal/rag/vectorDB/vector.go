package vectorDB

import (
	"context"

	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
)

type DataProcessor interface {
	Search(ctx context.Context, queryVector []float32, k int) ([]notebook.ScoredChunk, error)
	GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error)
	SaveToCache(ctx context.Context, id string, vector []float32, answer string) error

	// EnsureCollection is idempotent - an existing collection is not an error
	EnsureCollection(ctx context.Context, collectionName string) error
	// UpsertBatch returns how many chunks were actually written so partial
	// completion can be reported truthfully
	UpsertBatch(ctx context.Context, collectionName string, chunks []notebook.Chunk, vectors [][]float32) (int, error)
}
