package embedding

import "context"

// Embedder is the single embedding transform shared by ingestion and
// retrieval. Wiring one instance into the service is what keeps the two
// paths in the same vector space.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error)
}
