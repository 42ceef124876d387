package loader

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
	"github.com/akolanti/NotebookAPI/internal/domain/ragerror"
)

func TestLoad_RejectsMalformedUnion(t *testing.T) {
	tests := []struct {
		name  string
		input notebook.RawInput
	}{
		{"nothing populated", notebook.RawInput{}},
		{"two variants", notebook.RawInput{Text: "hello", URL: "http://example.com"}},
		{"file without type", notebook.RawInput{FileContent: base64.StdEncoding.EncodeToString([]byte("x"))}},
		{"blank text only", notebook.RawInput{Text: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.input)
			if !errors.Is(err, ragerror.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestLoad_TextVariant(t *testing.T) {
	docs, err := Load(context.Background(), notebook.RawInput{Text: "A. B. C."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].Content != "A. B. C." {
		t.Errorf("content = %q", docs[0].Content)
	}
	if docs[0].Metadata[notebook.MetaSource] != notebook.SourceDirectInput {
		t.Errorf("source = %v", docs[0].Metadata[notebook.MetaSource])
	}
}

func TestDecodeTransport_StripsDataURLAndWhitespace(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString([]byte("notebook content"))
	wrapped := "data:text/plain;base64," + raw[:8] + "\n  " + raw[8:]

	data, err := decodeTransport(wrapped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "notebook content" {
		t.Errorf("decoded = %q", data)
	}
}

func TestDecodeTransport_RejectsGarbage(t *testing.T) {
	if _, err := decodeTransport("not$$base64!!"); err == nil {
		t.Error("expected decode error")
	}
	if _, err := decodeTransport(""); err == nil {
		t.Error("expected error on empty content")
	}
}

func TestLoad_TxtFileVariant(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("plain text body\nwith two lines"))

	docs, err := Load(context.Background(), notebook.RawInput{FileContent: encoded, FileType: notebook.FileTXT})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].Metadata[notebook.MetaSource] != "file:txt" {
		t.Errorf("source = %v", docs[0].Metadata[notebook.MetaSource])
	}
}

func TestLoad_TxtFileLeavesNoTempFiles(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("cleanup check"))

	if _, err := Load(context.Background(), notebook.RawInput{FileContent: encoded, FileType: notebook.FileTXT}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	leftovers, err := filepath.Glob(filepath.Join(os.TempDir(), "notebook-ingest-*"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestLoad_CSVVariantOneDocumentPerRow(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("name,role\nada,engineer\ngrace,admiral\n"))

	docs, err := Load(context.Background(), notebook.RawInput{FileContent: encoded, FileType: notebook.FileCSV})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 row documents, got %d", len(docs))
	}
	if docs[1].Content != "ada, engineer" {
		t.Errorf("row content = %q", docs[1].Content)
	}
	if docs[2].Metadata[notebook.MetaRowNum] != 3 {
		t.Errorf("row_num = %v", docs[2].Metadata[notebook.MetaRowNum])
	}
}

func TestLoad_PDFSignatureRejected(t *testing.T) {
	junk := make([]byte, 4096)
	for i := range junk {
		junk[i] = byte('a' + i%20)
	}
	encoded := base64.StdEncoding.EncodeToString(junk)

	_, err := Load(context.Background(), notebook.RawInput{FileContent: encoded, FileType: notebook.FilePDF})
	if !errors.Is(err, ragerror.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestLoad_PDFTooShortRejected(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4"))

	_, err := Load(context.Background(), notebook.RawInput{FileContent: encoded, FileType: notebook.FilePDF})
	if !errors.Is(err, ragerror.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestLoad_UnsupportedTypeRejected(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("whatever"))

	_, err := Load(context.Background(), notebook.RawInput{FileContent: encoded, FileType: "exe"})
	if !errors.Is(err, ragerror.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestLoad_URLVariantExtractsParagraphs(t *testing.T) {
	page := `<html><head><title>t</title></head><body>
		<h1>heading is ignored</h1>
		<p>first paragraph</p>
		<p>   </p>
		<p>second paragraph</p>
	</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	docs, err := Load(context.Background(), notebook.RawInput{URL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 paragraph documents, got %d", len(docs))
	}
	if docs[0].Content != "first paragraph" || docs[1].Content != "second paragraph" {
		t.Errorf("paragraphs = %q / %q", docs[0].Content, docs[1].Content)
	}
	if docs[0].Metadata[notebook.MetaSource] != srv.URL {
		t.Errorf("source = %v", docs[0].Metadata[notebook.MetaSource])
	}
}

func TestLoad_URLVariantNoParagraphsIsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><div>no paragraph markup</div></body></html>"))
	}))
	defer srv.Close()

	_, err := Load(context.Background(), notebook.RawInput{URL: srv.URL})
	if !errors.Is(err, ragerror.ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
}

func TestLoad_URLVariantFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), notebook.RawInput{URL: srv.URL})
	if !errors.Is(err, ragerror.ErrFetch) {
		t.Errorf("expected ErrFetch, got %v", err)
	}
}
