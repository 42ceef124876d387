package api

import (
	"time"

	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
)

// requests---------------------

// IngestRequest carries exactly one populated variant. The handler rejects
// anything else with 400 before the pipeline runs.
type IngestRequest struct {
	URL         string `json:"url,omitempty"`
	Text        string `json:"text,omitempty"`
	FileContent string `json:"fileContent,omitempty" example:"data:application/pdf;base64,JVBERi0..."`
	FileType    string `json:"fileType,omitempty" enums:"pdf,csv,txt"`
}

type QueryRequest struct {
	Query string `json:"query" validate:"required"`
	TopK  int    `json:"topK,omitempty"`
}

// responses--------------------

type IngestResponse struct {
	Success bool                 `json:"success"`
	Id      string               `json:"id,omitempty"`
	Stats   notebook.IngestStats `json:"stats"`
}

type QueryResponse struct {
	Answer  string   `json:"answer"`
	Matches int      `json:"matches"`
	Sources []string `json:"sources,omitempty"`
}

type IngestRecordResponse struct {
	Id        string               `json:"id"`
	Source    string               `json:"source"`
	Status    string               `json:"status"`
	Error     string               `json:"error,omitempty"`
	Stats     notebook.IngestStats `json:"stats"`
	StartTime time.Time            `json:"start_time"`
	EndTime   time.Time            `json:"end_time,omitempty"`
}

type ErrorResponse struct {
	Success   bool      `json:"success" example:"false"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}
