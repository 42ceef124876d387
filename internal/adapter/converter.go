package adapter

import (
	"time"

	"github.com/akolanti/NotebookAPI/internal/api"
	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
)

func ToIngestResponse(record notebook.IngestRecord) api.IngestResponse {
	return api.IngestResponse{
		Success: record.Status == notebook.IngestStatusComplete,
		Id:      record.Id,
		Stats:   record.Stats,
	}
}

func ToQueryResponse(result notebook.QueryResult) api.QueryResponse {
	return api.QueryResponse{
		Answer:  result.Answer,
		Matches: result.Matches,
		Sources: result.Sources,
	}
}

func ToIngestRecordResponse(record notebook.IngestRecord) api.IngestRecordResponse {
	return api.IngestRecordResponse{
		Id:        record.Id,
		Source:    record.Source,
		Status:    string(record.Status),
		Error:     record.Error,
		Stats:     record.Stats,
		StartTime: record.CreatedTime,
		EndTime:   record.EndTime,
	}
}

func ToRawInput(req api.IngestRequest) notebook.RawInput {
	return notebook.RawInput{
		URL:         req.URL,
		Text:        req.Text,
		FileContent: req.FileContent,
		FileType:    notebook.FileType(req.FileType),
	}
}

func BadRequest(message string) api.ErrorResponse {
	return api.ErrorResponse{
		Success:   false,
		Error:     message,
		Timestamp: time.Now(),
	}
}
