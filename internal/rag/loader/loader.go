package loader

import (
	"context"
	"strings"

	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
	"github.com/akolanti/NotebookAPI/internal/domain/ragerror"
	"github.com/akolanti/NotebookAPI/pkg/logger_i"
)

var logger = logger_i.NewLogger("Loader")

// Load turns one RawInput into normalized documents. Dispatch happens after
// Validate so a malformed union never reaches the network or the disk.
func Load(ctx context.Context, input notebook.RawInput) ([]notebook.Document, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		docs []notebook.Document
		err  error
	)
	switch {
	case strings.TrimSpace(input.URL) != "":
		docs, err = loadURL(ctx, strings.TrimSpace(input.URL))
	case strings.TrimSpace(input.Text) != "":
		docs, err = loadText(input.Text)
	default:
		docs, err = loadFile(ctx, input.FileContent, input.FileType)
	}
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return nil, ragerror.Stage("load", ragerror.ErrNoContent, nil)
	}
	return docs, nil
}

func loadText(text string) ([]notebook.Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ragerror.Stage("load", ragerror.ErrValidation, nil)
	}
	return []notebook.Document{
		{
			Content:  text,
			Metadata: map[string]any{notebook.MetaSource: notebook.SourceDirectInput},
		},
	}, nil
}
