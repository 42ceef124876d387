package ragerror

import (
	"errors"
	"fmt"
)

// Sentinels for every pipeline failure class. Handlers match with
// errors.Is to pick the HTTP status; everything except ErrValidation maps
// to 500.
var (
	ErrValidation       = errors.New("invalid input")
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrInvalidFormat    = errors.New("invalid file format")
	ErrNoContent        = errors.New("no content extracted")
	ErrFetch            = errors.New("page fetch failed")
	ErrParse            = errors.New("content parse failed")
	ErrEmbedding        = errors.New("embedding call failed")
	ErrStore            = errors.New("vector store write failed")
	ErrStoreUnavailable = errors.New("vector store unavailable")
	ErrGeneration       = errors.New("answer generation failed")
)

// Stage wraps a sentinel with the pipeline stage that failed so the
// response can name it. cause may be nil.
func Stage(stage string, sentinel error, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", stage, sentinel)
	}
	return fmt.Errorf("%s: %w: %v", stage, sentinel, cause)
}

func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation)
}
