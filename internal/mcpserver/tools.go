package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akolanti/NotebookAPI/internal/config"
	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
)

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Query string `json:"query" jsonschema:"the question to answer from the ingested documents"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of chunks to retrieve (default 5)"`
}

// QueryOutput is the output schema for the query tool.
type QueryOutput struct {
	Answer  string   `json:"answer"`
	Matches int      `json:"matches"`
	Sources []string `json:"sources,omitempty"`
}

// IngestTextInput is the input schema for the ingest_text tool.
type IngestTextInput struct {
	Text string `json:"text" jsonschema:"raw text to chunk, embed and store"`
}

// IngestTextOutput is the output schema for the ingest_text tool.
type IngestTextOutput struct {
	ChunksCreated int `json:"chunks_created"`
	ChunksStored  int `json:"chunks_stored"`
}

func (s *notebookServer) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "query",
		Description: "Answer a question using the ingested documents",
	}, s.handleQuery)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ingest_text",
		Description: "Ingest raw text into the vector store",
	}, s.handleIngestText)
}

func (s *notebookServer) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	topK := input.TopK
	if topK <= 0 {
		topK = config.RetrievalTopK
	}

	result, err := s.rag.Query(ctx, input.Query, topK)
	if err != nil {
		s.logger.Error("query tool failed", "error", err)
		return nil, QueryOutput{}, err
	}

	return nil, QueryOutput{
		Answer:  result.Answer,
		Matches: result.Matches,
		Sources: result.Sources,
	}, nil
}

func (s *notebookServer) handleIngestText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestTextInput,
) (*mcp.CallToolResult, IngestTextOutput, error) {
	raw := notebook.RawInput{Text: input.Text}
	if err := raw.Validate(); err != nil {
		return nil, IngestTextOutput{}, err
	}

	stats, err := s.rag.Ingest(ctx, raw)
	if err != nil {
		s.logger.Error("ingest_text tool failed", "error", err)
		return nil, IngestTextOutput{}, err
	}

	return nil, IngestTextOutput{
		ChunksCreated: stats.ChunksCreated,
		ChunksStored:  stats.ChunksStored,
	}, nil
}
