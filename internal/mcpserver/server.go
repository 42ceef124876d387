package mcpserver

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akolanti/NotebookAPI/internal/rag"
	"github.com/akolanti/NotebookAPI/pkg/logger_i"
)

// Version is the MCP server version.
const Version = "1.0.0"

type notebookServer struct {
	rag    rag.Service
	logger *logger_i.Logger
}

func newServer(service rag.Service) *mcp.Server {
	impl := &mcp.Implementation{
		Name:    "notebook",
		Version: Version,
	}

	s := mcp.NewServer(impl, nil)
	ns := &notebookServer{
		rag:    service,
		logger: logger_i.NewLogger("MCP"),
	}
	ns.registerTools(s)

	return s
}

// Handler exposes the notebook over the streamable HTTP transport so MCP
// clients share the exact same pipelines as the REST surface.
func Handler(service rag.Service) http.Handler {
	s := newServer(service)
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s
	}, nil)
}
