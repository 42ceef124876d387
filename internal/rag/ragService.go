package rag

import (
	"context"
	"time"

	"github.com/akolanti/NotebookAPI/internal/adapter/utils"
	"github.com/akolanti/NotebookAPI/internal/config"
	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
	"github.com/akolanti/NotebookAPI/internal/domain/ragerror"
	"github.com/akolanti/NotebookAPI/internal/metrics"
	"github.com/akolanti/NotebookAPI/internal/rag/chunker"
	"github.com/akolanti/NotebookAPI/internal/rag/embedding"
	"github.com/akolanti/NotebookAPI/internal/rag/enrich"
	"github.com/akolanti/NotebookAPI/internal/rag/llm"
	"github.com/akolanti/NotebookAPI/internal/rag/loader"
	"github.com/akolanti/NotebookAPI/internal/rag/vectorDB"
	"github.com/akolanti/NotebookAPI/pkg/logger_i"
)

// Service is the public contract of both pipelines. Handlers and the MCP
// surface only ever see this interface - the vector store, embedder and
// model provider stay private to the implementation.
type Service interface {
	Ingest(ctx context.Context, input notebook.RawInput) (notebook.IngestStats, error)
	Query(ctx context.Context, question string, k int) (notebook.QueryResult, error)
}

type service struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	logger      *logger_i.Logger
}

// NewService constructor. Wiring exactly one embedder instance into both
// pipelines is what guarantees ingestion and retrieval share an embedding
// space - there is no runtime check that could catch a mismatch.
func NewService(vector vectorDB.DataProcessor, llmP llm.Provider, em embedding.Embedder) Service {
	return &service{
		vectorDB:    vector,
		llmProvider: llmP,
		embedder:    em,
		logger:      logger_i.NewLogger("RAG Service"),
	}
}

// Ingest runs load -> chunk -> enrich -> embed -> store. The returned stats
// are truthful even on failure: ChunksStored reflects what actually landed
// in the collection before the pipeline aborted.
func (s *service) Ingest(ctx context.Context, input notebook.RawInput) (notebook.IngestStats, error) {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	processContext, cancel := context.WithTimeout(ctx, config.PipelineTimeout)
	defer cancel()

	var stats notebook.IngestStats

	docs, err := loader.Load(processContext, input)
	if err != nil {
		inMethodLogger.Error("LOAD_FAILURE", "error", err)
		return stats, err
	}
	stats.OriginalDocuments = len(docs)

	chunks := enrich.Enrich(chunker.ChunkDocuments(docs, config.ChunkMaxSize, config.ChunkOverlap), time.Now())
	stats.ChunksCreated = len(chunks)
	stats.AverageChunkSize = averageSize(chunks)
	inMethodLogger.Debug("document prepared", "documents", len(docs), "chunks", len(chunks))

	if err := s.executeEnsureCollectionStep(processContext); err != nil {
		inMethodLogger.Error("STORE_UNAVAILABLE", "error", err)
		return stats, ragerror.Stage("store", ragerror.ErrStoreUnavailable, err)
	}

	stored, err := s.executeBatchUpsertStep(processContext, chunks)
	stats.ChunksStored = stored
	if err != nil {
		inMethodLogger.Error("UPSERT_FAILURE", "stored", stored, "of", len(chunks), "error", err)
		return stats, err
	}

	return stats, nil
}

// Query embeds the question with the same transform used at ingestion,
// retrieves the top-k chunks and composes an answer.
func (s *service) Query(ctx context.Context, question string, k int) (notebook.QueryResult, error) {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	if isBlank(question) {
		return notebook.QueryResult{}, ragerror.Stage("query", ragerror.ErrValidation, nil)
	}
	if k <= 0 {
		k = config.RetrievalTopK
	}

	processContext, cancel := context.WithTimeout(ctx, config.PipelineTimeout)
	defer cancel()

	queryVector, err := s.executeEmbeddingStep(processContext, question)
	if err != nil {
		inMethodLogger.Error("EMBEDDING_FAILURE", "error", err)
		return notebook.QueryResult{}, ragerror.Stage("embed", ragerror.ErrEmbedding, err)
	}

	if cachedAnswer, found := s.executeCacheCheckStep(processContext, queryVector); found {
		return notebook.QueryResult{Answer: cachedAnswer}, nil
	}

	matches, err := s.executeVectorSearchStep(processContext, queryVector, k)
	if err != nil {
		inMethodLogger.Error("VECTOR_DB_FAILURE", "error", err)
		return notebook.QueryResult{}, ragerror.Stage("search", ragerror.ErrStoreUnavailable, err)
	}

	// empty retrieval is a valid outcome - answer without a model call
	if len(matches) == 0 {
		inMethodLogger.Debug("no matches for question")
		return notebook.QueryResult{Answer: llm.NoContextAnswer}, nil
	}

	answer, err := s.executeLLMStep(processContext, question, matches)
	if err != nil {
		inMethodLogger.Error("LLM_GENERATION_FAILURE", "error", err)
		return notebook.QueryResult{}, ragerror.Stage("generate", ragerror.ErrGeneration, err)
	}

	//background cache save - failures are logged, never surfaced
	go func() {
		if err := s.vectorDB.SaveToCache(context.WithoutCancel(ctx), utils.GetNewUUID(), queryVector, answer); err != nil {
			s.logger.Error("Failed to save to answer cache")
		}
	}()

	return notebook.QueryResult{
		Answer:  answer,
		Matches: len(matches),
		Sources: uniqueSources(matches),
	}, nil
}
