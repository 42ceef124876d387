package loader

import (
	"context"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"

	"github.com/akolanti/NotebookAPI/internal/config"
	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
	"github.com/akolanti/NotebookAPI/internal/domain/ragerror"
)

func extractPDF(ctx context.Context, path string) ([]notebook.Document, error) {
	f, err := pdf.Open(path)
	if err != nil {
		logger.Error("failed opening of pdf file", "error", err)
		return nil, ragerror.Stage("parse", ragerror.ErrInvalidFormat, err)
	}

	var docs []notebook.Document
	numPages := f.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(ctx, page)
		if err != nil {
			// keep going - a single mangled page should not sink the document
			logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}

		docs = append(docs, notebook.Document{
			Content: content,
			Metadata: map[string]any{
				notebook.MetaSource:  "file:pdf",
				notebook.MetaPageNum: i,
			},
		})
	}
	return docs, nil
}

func extractTxt(path string) ([]notebook.Document, error) {
	text, err := cat.File(path)
	if err != nil {
		logger.Error("Error extracting content from text file", "error", err)
		return nil, ragerror.Stage("parse", ragerror.ErrParse, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	return []notebook.Document{
		{
			Content:  text,
			Metadata: map[string]any{notebook.MetaSource: "file:txt"},
		},
	}, nil
}

// protectExtract guards against the pdf library hanging on malformed
// content streams.
func protectExtract(ctx context.Context, page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(config.PageExtractTimeout):
		logger.Error("pageExtract", "timeout", config.PageExtractTimeout)
		return "", ragerror.Stage("parse", ragerror.ErrParse, nil)
	}
}
