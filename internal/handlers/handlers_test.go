package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/akolanti/NotebookAPI/internal/api"
	"github.com/akolanti/NotebookAPI/internal/data/store"
	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
	"github.com/akolanti/NotebookAPI/internal/domain/ragerror"
	"github.com/akolanti/NotebookAPI/internal/handlers"
	"github.com/akolanti/NotebookAPI/pkg/logger_i"
)

// stubService lets each test swap pipeline behavior without re-wiring the
// package-level handler state.
type stubService struct {
	onIngest func(ctx context.Context, input notebook.RawInput) (notebook.IngestStats, error)
	onQuery  func(ctx context.Context, question string, k int) (notebook.QueryResult, error)
}

func (s *stubService) Ingest(ctx context.Context, input notebook.RawInput) (notebook.IngestStats, error) {
	if s.onIngest != nil {
		return s.onIngest(ctx, input)
	}
	return notebook.IngestStats{OriginalDocuments: 1, ChunksCreated: 2, ChunksStored: 2, AverageChunkSize: 10}, nil
}

func (s *stubService) Query(ctx context.Context, question string, k int) (notebook.QueryResult, error) {
	if s.onQuery != nil {
		return s.onQuery(ctx, question, k)
	}
	return notebook.QueryResult{Answer: "stub answer", Matches: 1, Sources: []string{"doc.pdf"}}, nil
}

// captureStore remembers the last saved record so tests can assert on the
// audit trail without reaching into the store internals.
type captureStore struct {
	*store.InMemoryIngestStore
	last notebook.IngestRecord
}

func (s *captureStore) SaveRecord(ctx context.Context, record notebook.IngestRecord) error {
	s.last = record
	return s.InMemoryIngestStore.SaveRecord(ctx, record)
}

var (
	service = &stubService{}
	records = &captureStore{InMemoryIngestStore: store.InitInMemoryIngestStore()}
)

func newRouter() *chi.Mux {
	logger_i.Init()
	handlers.InitHandlers(service, records)

	r := chi.NewRouter()
	r.Post("/ingest", handlers.IngestHandler)
	r.Post("/query", handlers.QueryHandler)
	r.Get("/ingests/{id}", handlers.GetIngestRecordHandler)
	return r
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestIngestHandler_Scenarios(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name         string
		body         string
		onIngest     func(ctx context.Context, input notebook.RawInput) (notebook.IngestStats, error)
		expectedCode int
	}{
		{
			name:         "Success",
			body:         `{"text":"some direct input"}`,
			expectedCode: http.StatusOK,
		},
		{
			name:         "Malformed_JSON",
			body:         `{"text":`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Empty_Union",
			body:         `{}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Two_Variants_Set",
			body:         `{"text":"a","url":"https://example.com"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "File_Without_Type",
			body:         `{"fileContent":"aGVsbG8="}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Pipeline_Failure",
			body: `{"text":"some direct input"}`,
			onIngest: func(ctx context.Context, input notebook.RawInput) (notebook.IngestStats, error) {
				return notebook.IngestStats{OriginalDocuments: 1}, ragerror.Stage("store", ragerror.ErrStore, errors.New("disk full"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service.onIngest = tt.onIngest
			defer func() { service.onIngest = nil }()

			rec := doRequest(t, r, http.MethodPost, "/ingest", tt.body)
			if rec.Code != tt.expectedCode {
				t.Fatalf("status got %d, want %d, body %s", rec.Code, tt.expectedCode, rec.Body.String())
			}

			if tt.expectedCode == http.StatusOK {
				var resp api.IngestResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("invalid response body: %v", err)
				}
				if !resp.Success || resp.Id == "" {
					t.Errorf("response got %+v, want success with an id", resp)
				}
				if resp.Stats.ChunksStored != 2 {
					t.Errorf("ChunksStored got %d, want 2", resp.Stats.ChunksStored)
				}
			}
		})
	}
}

func TestIngestHandler_RecordIsRetrievable(t *testing.T) {
	r := newRouter()
	service.onIngest = nil

	rec := doRequest(t, r, http.MethodPost, "/ingest", `{"url":"https://example.com/page"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("ingest status got %d, body %s", rec.Code, rec.Body.String())
	}

	var resp api.IngestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	recordRec := doRequest(t, r, http.MethodGet, "/ingests/"+resp.Id, "")
	if recordRec.Code != http.StatusOK {
		t.Fatalf("record status got %d, body %s", recordRec.Code, recordRec.Body.String())
	}

	var record api.IngestRecordResponse
	if err := json.Unmarshal(recordRec.Body.Bytes(), &record); err != nil {
		t.Fatalf("invalid record body: %v", err)
	}
	if record.Source != "https://example.com/page" {
		t.Errorf("Source got %q, want the ingested url", record.Source)
	}
	if record.Status != string(notebook.IngestStatusComplete) {
		t.Errorf("Status got %q, want %q", record.Status, notebook.IngestStatusComplete)
	}
}

func TestIngestHandler_FailedRunIsRecorded(t *testing.T) {
	r := newRouter()
	service.onIngest = func(ctx context.Context, input notebook.RawInput) (notebook.IngestStats, error) {
		return notebook.IngestStats{OriginalDocuments: 1, ChunksCreated: 4, ChunksStored: 1},
			ragerror.Stage("store", ragerror.ErrStore, errors.New("disk full"))
	}
	defer func() { service.onIngest = nil }()

	rec := doRequest(t, r, http.MethodPost, "/ingest", `{"text":"doomed"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status got %d, want 500", rec.Code)
	}

	// the audit record still lands, with the partial stats
	record := records.last
	if record.Status != notebook.IngestStatusError {
		t.Errorf("Status got %q, want %q", record.Status, notebook.IngestStatusError)
	}
	if record.Stats.ChunksStored != 1 {
		t.Errorf("ChunksStored got %d, want the partial count 1", record.Stats.ChunksStored)
	}
	if record.Error == "" {
		t.Error("record error message is empty")
	}
}

func TestQueryHandler_Scenarios(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name           string
		body           string
		onQuery        func(ctx context.Context, question string, k int) (notebook.QueryResult, error)
		expectedCode   int
		expectedAnswer string
	}{
		{
			name:           "Success",
			body:           `{"query":"what is in the notebook?"}`,
			expectedCode:   http.StatusOK,
			expectedAnswer: "stub answer",
		},
		{
			name:         "Blank_Query",
			body:         `{"query":"   "}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Malformed_JSON",
			body:         `{"query":`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Generation_Failure",
			body: `{"query":"question"}`,
			onQuery: func(ctx context.Context, question string, k int) (notebook.QueryResult, error) {
				return notebook.QueryResult{}, ragerror.Stage("generate", ragerror.ErrGeneration, errors.New("provider down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service.onQuery = tt.onQuery
			defer func() { service.onQuery = nil }()

			rec := doRequest(t, r, http.MethodPost, "/query", tt.body)
			if rec.Code != tt.expectedCode {
				t.Fatalf("status got %d, want %d, body %s", rec.Code, tt.expectedCode, rec.Body.String())
			}

			if tt.expectedAnswer != "" {
				var resp api.QueryResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("invalid response body: %v", err)
				}
				if resp.Answer != tt.expectedAnswer {
					t.Errorf("Answer got %q, want %q", resp.Answer, tt.expectedAnswer)
				}
			}
		})
	}
}

func TestGetIngestRecordHandler_NotFound(t *testing.T) {
	r := newRouter()

	rec := doRequest(t, r, http.MethodGet, "/ingests/no-such-id", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status got %d, want 404", rec.Code)
	}
}
