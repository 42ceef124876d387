package notebook

import (
	"strings"
	"time"

	"github.com/akolanti/NotebookAPI/internal/domain/ragerror"
)

type FileType string

const (
	FilePDF FileType = "pdf"
	FileCSV FileType = "csv"
	FileTXT FileType = "txt"
)

// metadata keys shared by the loader, enricher and vector payloads
const (
	MetaSource      = "source"
	MetaChunkIndex  = "chunk_index"
	MetaTotalChunks = "total_chunks"
	MetaChunkSize   = "chunk_size"
	MetaIngestedAt  = "ingested_at"
	MetaPageNum     = "page_num"
	MetaRowNum      = "row_num"

	SourceDirectInput = "direct_input"
)

// RawInput is the tagged union accepted by /ingest.
// Exactly one variant must be populated - Validate enforces it before any
// network call happens.
type RawInput struct {
	URL         string
	Text        string
	FileContent string //base64, possibly with a data-url prefix
	FileType    FileType
}

func (in RawInput) Validate() error {
	populated := 0
	if strings.TrimSpace(in.URL) != "" {
		populated++
	}
	if strings.TrimSpace(in.Text) != "" {
		populated++
	}
	if in.FileContent != "" {
		populated++
	}
	if populated != 1 {
		return ragerror.Stage("input", ragerror.ErrValidation, nil)
	}
	if in.FileContent != "" && in.FileType == "" {
		return ragerror.Stage("input", ragerror.ErrValidation, nil)
	}
	return nil
}

// Document is one normalized text unit produced by the loader.
type Document struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

// Chunk is a bounded substring of a Document. Its metadata is a shallow
// copy of the parent's - the maps are never shared after creation.
type Chunk struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

func (c Chunk) Source() string {
	if s, ok := c.Metadata[MetaSource].(string); ok {
		return s
	}
	return ""
}

// ScoredChunk is one retrieval hit, ranked by descending similarity.
type ScoredChunk struct {
	Chunk
	Score float32 `json:"score"`
}

type IngestStats struct {
	OriginalDocuments int `json:"originalDocuments"`
	ChunksCreated     int `json:"chunksCreated"`
	ChunksStored      int `json:"chunksStored"`
	AverageChunkSize  int `json:"averageChunkSize"`
}

type IngestStatus string

const (
	IngestStatusComplete IngestStatus = "COMPLETE"
	IngestStatusError    IngestStatus = "Error"
)

// IngestRecord is the audit trail for one ingestion call.
type IngestRecord struct {
	Id          string       `json:"id"`
	TraceId     string       `json:"trace_id"`
	Source      string       `json:"source"`
	Status      IngestStatus `json:"status"`
	Error       string       `json:"error,omitempty"`
	Stats       IngestStats  `json:"stats"`
	CreatedTime time.Time    `json:"created_time"`
	EndTime     time.Time    `json:"end_time,omitempty"`
}

type QueryResult struct {
	Answer  string   `json:"answer"`
	Matches int      `json:"matches"`
	Sources []string `json:"sources,omitempty"`
}
