package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/akolanti/NotebookAPI/internal/adapter"
	"github.com/akolanti/NotebookAPI/internal/adapter/utils"
	"github.com/akolanti/NotebookAPI/internal/api"
	"github.com/akolanti/NotebookAPI/internal/config"
	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
	"github.com/akolanti/NotebookAPI/internal/metrics"
	"github.com/akolanti/NotebookAPI/internal/rag"
	"github.com/akolanti/NotebookAPI/pkg/logger_i"
)

var (
	ragService  rag.Service
	recordStore notebook.IngestRecordStore
	once        sync.Once
	logRH       *logger_i.Logger
)

func InitHandlers(service rag.Service, records notebook.IngestRecordStore) {
	once.Do(func() {
		ragService = service
		recordStore = records
		logRH = logger_i.NewLogger("RequestHandler")
		logRH.Info("Handlers initialized")
	})
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// IngestHandler godoc
// @Summary      Ingest a document
// @Description  Accepts exactly one of url, text or fileContent+fileType; chunks, embeds and stores the content in the notebook collection.
// @Tags         Ingestion
// @Accept       json
// @Produce      json
// @Param        request  body      api.IngestRequest  true  "One populated input variant"
// @Success      200      {object}  api.IngestResponse
// @Failure      400      {object}  api.ErrorResponse  "Missing or ambiguous input variant"
// @Failure      500      {object}  api.ErrorResponse  "Pipeline failure, stats reflect what was stored"
// @Router       /ingest [post]
func IngestHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}

	start := time.Now()
	defer func() { metrics.CapturePipelineMetrics("ingest", time.Since(start)) }()

	var requestData api.IngestRequest
	defer closeBody(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		logRH.Warn("Bad Ingest Request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return
	}

	input := adapter.ToRawInput(requestData)
	if err := input.Validate(); err != nil {
		logRH.Warn("Malformed input union", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "exactly one of url, text or fileContent must be set")
		return
	}

	record := notebook.IngestRecord{
		Id:          utils.GetNewUUID(),
		TraceId:     traceFrom(r),
		Source:      describeSource(requestData),
		CreatedTime: start,
	}

	stats, err := ragService.Ingest(r.Context(), input)
	record.Stats = stats
	record.EndTime = time.Now()

	metrics.AddChunksCreated(stats.ChunksCreated)
	metrics.AddChunksStored(stats.ChunksStored)

	if err != nil {
		record.Status = notebook.IngestStatusError
		record.Error = err.Error()
		saveRecord(r, record)
		WriteErrorResponse(w, errorStatus(err), err.Error())
		return
	}

	record.Status = notebook.IngestStatusComplete
	saveRecord(r, record)
	writeJsonResponse(w, http.StatusOK, adapter.ToIngestResponse(record))
}

// QueryHandler godoc
// @Summary      Ask the notebook a question
// @Description  Embeds the question, retrieves the most similar chunks and composes an answer constrained to that context.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest  true  "Question"
// @Success      200      {object}  api.QueryResponse
// @Failure      400      {object}  api.ErrorResponse  "Blank query"
// @Failure      500      {object}  api.ErrorResponse
// @Router       /query [post]
func QueryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}

	start := time.Now()
	defer func() { metrics.CapturePipelineMetrics("query", time.Since(start)) }()

	var requestData api.QueryRequest
	defer closeBody(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		logRH.Warn("Bad Query Request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return
	}
	if strings.TrimSpace(requestData.Query) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "query must not be blank")
		return
	}

	result, err := ragService.Query(r.Context(), requestData.Query, requestData.TopK)
	if err != nil {
		WriteErrorResponse(w, errorStatus(err), err.Error())
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToQueryResponse(result))
}

// GetIngestRecordHandler godoc
// @Summary      Get one ingestion record
// @Description  Returns the audit record of a previous ingestion by id.
// @Tags         Ingestion
// @Produce      json
// @Param        id   path      string  true  "Ingest record ID"
// @Success      200  {object}  api.IngestRecordResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /ingests/{id} [get]
func GetIngestRecordHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	id := utils.GetChiURLParam(r, "id")
	record, found := recordStore.GetRecord(r.Context(), id)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, "ingest record not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToIngestRecordResponse(record))
}

func saveRecord(r *http.Request, record notebook.IngestRecord) {
	if err := recordStore.SaveRecord(r.Context(), record); err != nil {
		logRH.Error("Failed to save ingest record", "record Id", record.Id, "error", err)
	}
}

func describeSource(req api.IngestRequest) string {
	switch {
	case strings.TrimSpace(req.URL) != "":
		return strings.TrimSpace(req.URL)
	case strings.TrimSpace(req.Text) != "":
		return notebook.SourceDirectInput
	default:
		return "file:" + req.FileType
	}
}

func traceFrom(r *http.Request) string {
	if trace, ok := r.Context().Value(config.TRACE_ID_KEY).(string); ok {
		return trace
	}
	return ""
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		logRH.Error("Couldn't close the request body reader", "error", err)
	}
}
