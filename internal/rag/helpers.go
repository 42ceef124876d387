package rag

import (
	"context"
	"strings"
	"time"

	"github.com/akolanti/NotebookAPI/internal/config"
	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
	"github.com/akolanti/NotebookAPI/internal/domain/ragerror"
	"github.com/akolanti/NotebookAPI/internal/metrics"
	"github.com/akolanti/NotebookAPI/internal/rag/llm"
)

func (s *service) executeEnsureCollectionStep(ctx context.Context) error {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("ensure_collection", time.Since(start)) }()

	return s.vectorDB.EnsureCollection(ctx, config.Collection())
}

// executeBatchUpsertStep embeds and writes chunks in fixed-size batches.
// The returned count is how many chunks actually made it into the store,
// whatever happens afterwards.
func (s *service) executeBatchUpsertStep(ctx context.Context, chunks []notebook.Chunk) (int, error) {
	stored := 0
	for i := 0; i < len(chunks); i += config.EmbeddingBatchLen {
		end := i + config.EmbeddingBatchLen
		if end > len(chunks) {
			end = len(chunks)
		}
		currentBatch := chunks[i:end]

		texts := make([]string, len(currentBatch))
		for j, c := range currentBatch {
			texts[j] = c.Content
		}

		vectors, err := s.batchEmbed(ctx, texts)
		if err != nil {
			return stored, ragerror.Stage("embed", ragerror.ErrEmbedding, err)
		}
		if len(vectors) != len(currentBatch) {
			return stored, ragerror.Stage("embed", ragerror.ErrEmbedding, nil)
		}

		count, err := s.upsert(ctx, currentBatch, vectors)
		stored += count
		if err != nil {
			return stored, ragerror.Stage("store", ragerror.ErrStore, err)
		}
	}
	return stored, nil
}

func (s *service) batchEmbed(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.BatchEmbedding(ctx, texts)
}

func (s *service) upsert(ctx context.Context, chunks []notebook.Chunk, vectors [][]float32) (int, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_upsert", time.Since(start)) }()

	return s.vectorDB.UpsertBatch(ctx, config.Collection(), chunks, vectors)
}

func (s *service) executeEmbeddingStep(ctx context.Context, question string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, question)
}

func (s *service) executeCacheCheckStep(ctx context.Context, queryVector []float32) (string, bool) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	ans, found, _ := s.vectorDB.GetCachedAnswer(ctx, queryVector)
	return ans, found
}

func (s *service) executeVectorSearchStep(ctx context.Context, queryVector []float32, k int) ([]notebook.ScoredChunk, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.vectorDB.Search(ctx, queryVector, k)
}

func (s *service) executeLLMStep(ctx context.Context, question string, matches []notebook.ScoredChunk) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(ctx, llm.BuildPrompt(question, matches))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func averageSize(chunks []notebook.Chunk) int {
	if len(chunks) == 0 {
		return 0
	}
	total := 0
	for _, c := range chunks {
		total += len(c.Content)
	}
	return total / len(chunks)
}

func uniqueSources(matches []notebook.ScoredChunk) []string {
	seen := make(map[string]bool, len(matches))
	var sources []string
	for _, m := range matches {
		src := m.Source()
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true
		sources = append(sources, src)
	}
	return sources
}
