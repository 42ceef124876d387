package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/akolanti/NotebookAPI/internal/adapter"
	"github.com/akolanti/NotebookAPI/internal/domain/ragerror"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(message))
}

func errorStatus(err error) int {
	if ragerror.IsClientError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.Warn("context error", "error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true
	}
}
