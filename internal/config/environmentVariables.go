package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//ingestion and retrieval must share one embedding space - fixed here, never per record
	EmbeddingOutputDimensionality int32 = 1536
	CollectionName                      = "notebook-collection"
	AnswerCacheCollection               = "notebook-answer-cache"
	CacheSimilarityCutoff               = 0.97

	//chunking defaults
	ChunkMaxSize      = 1000
	ChunkOverlap      = 200
	RetrievalTopK     = 5
	EmbeddingBatchLen = 100

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 60 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//one request owns the whole pipeline, so this bounds fetch+embed+store+generate
	PipelineTimeout    = 30 * time.Second
	PageFetchTimeout   = 15 * time.Second
	PageExtractTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//vectorDB
	QdrantHost             = "127.0.0.1"
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false //set for https
	QdrantPoolSize         = 1     //2-5 is preferred for prod according to documentation
	QdrantKeepAliveTimeout = 30 * time.Second

	//llm + embeddings
	ProviderGoogle       = "google"
	ProviderOpenAI       = "openai"
	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIModelName      = "gpt-4o-mini"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	ModelTemperature float32 = 0.7
	ModelContext             = "You are a notebook assistant. Answer using only the supplied context. If the context does not contain the answer, say you don't know."

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DB we can use
	RedisIngestStore = 0

	RedisIngestStoreTTL = 24 * time.Hour
)

//env overrides - same pattern as QDRANT_HOST/REDIS_ADDR in the client constructors

func ModelProvider() string {
	if p := os.Getenv("MODEL_PROVIDER"); p != "" {
		return p
	}
	return ProviderGoogle
}

func GoogleAPIKey() string {
	return os.Getenv("GOOGLE_API_KEY")
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func Collection() string {
	if c := os.Getenv("COLLECTION_NAME"); c != "" {
		return c
	}
	return CollectionName
}
