package loader

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/akolanti/NotebookAPI/internal/customHttpClient"
	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
	"github.com/akolanti/NotebookAPI/internal/domain/ragerror"
)

// loadURL fetches a page and keeps only paragraph-level text. Each non-empty
// <p> element becomes its own document so provenance stays per block.
func loadURL(ctx context.Context, pageURL string) ([]notebook.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, ragerror.Stage("fetch", ragerror.ErrValidation, err)
	}

	resp, err := customHttpClient.GetPooledClient().Do(req)
	if err != nil {
		logger.Error("page fetch failed", "url", pageURL, "error", err)
		return nil, ragerror.Stage("fetch", ragerror.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error("page fetch returned bad status", "url", pageURL, "status", resp.StatusCode)
		return nil, ragerror.Stage("fetch", ragerror.ErrFetch, fmt.Errorf("status %d", resp.StatusCode))
	}

	parsed, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, ragerror.Stage("parse", ragerror.ErrParse, err)
	}

	var docs []notebook.Document
	parsed.Find("p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		docs = append(docs, notebook.Document{
			Content:  text,
			Metadata: map[string]any{notebook.MetaSource: pageURL},
		})
	})

	logger.Debug("page extracted", "url", pageURL, "paragraphs", len(docs))
	return docs, nil
}
