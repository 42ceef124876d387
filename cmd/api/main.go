// @title           Notebook RAG API
// @version         1.0
// @description     Document ingestion and retrieval-augmented question answering over a single notebook collection.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email   ank.github@gmail.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/NotebookAPI/internal/config"
	"github.com/akolanti/NotebookAPI/internal/data/store"
	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
	"github.com/akolanti/NotebookAPI/internal/handlers"
	"github.com/akolanti/NotebookAPI/internal/rag"
	"github.com/akolanti/NotebookAPI/internal/rag/embedding"
	"github.com/akolanti/NotebookAPI/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/NotebookAPI/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/NotebookAPI/internal/rag/llm"
	"github.com/akolanti/NotebookAPI/internal/rag/llm/gemini"
	"github.com/akolanti/NotebookAPI/internal/rag/llm/openaiLLM"
	"github.com/akolanti/NotebookAPI/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/NotebookAPI/internal/server"
	"github.com/akolanti/NotebookAPI/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init ingest record store, fall back to in-memory when redis is offline
	redisRecords := store.GetRedisIngestStore(serviceContext)
	var recordStore notebook.IngestRecordStore = redisRecords
	if redisRecords == nil {
		logger.Error("Redis record store is offline")
		recordStore = store.InitInMemoryIngestStore()
	}

	vectorDB := qdrantDB.GetQdrantClient(serviceContext)
	embeddingService, llmProvider := initModelProvider(serviceContext)

	if vectorDB == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDB != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	ragService := rag.NewService(vectorDB, llmProvider, embeddingService)

	handlers.InitHandlers(ragService, recordStore)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, ragService)

	<-stopExecution
	logger.Info("Server stopped")
}

func initModelProvider(ctx context.Context) (embedding.Embedder, llm.Provider) {
	if config.ModelProvider() == config.ProviderOpenAI {
		return openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, config.OpenAIAPIKey()),
			openaiLLM.GetOpenAIClient(config.OpenAIModelName, config.OpenAIAPIKey())
	}
	return googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GoogleAPIKey()),
		gemini.GetGeminiClient(ctx, config.GeminiModelName, config.GoogleAPIKey())
}
