package loader

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
	"github.com/akolanti/NotebookAPI/internal/domain/ragerror"
)

const pdfSignature = "%PDF-"
const minPDFBytes = 100

// loadFile decodes the base64 transport buffer and dispatches on the
// declared type. The pdf and txt decoders work off a scoped temp file which
// is removed on every exit path - success, decode failure and downstream
// failure alike.
func loadFile(ctx context.Context, encoded string, fileType notebook.FileType) ([]notebook.Document, error) {
	data, err := decodeTransport(encoded)
	if err != nil {
		return nil, ragerror.Stage("decode", ragerror.ErrValidation, err)
	}

	switch fileType {
	case notebook.FilePDF:
		if len(data) < minPDFBytes || !bytes.HasPrefix(data, []byte(pdfSignature)) {
			return nil, ragerror.Stage("decode", ragerror.ErrInvalidFormat, fmt.Errorf("missing %s signature", pdfSignature))
		}
		return withTempFile(data, "pdf", func(path string) ([]notebook.Document, error) {
			return extractPDF(ctx, path)
		})

	case notebook.FileCSV:
		return loadCSV(data)

	case notebook.FileTXT:
		return withTempFile(data, "txt", extractTxt)

	default:
		return nil, ragerror.Stage("decode", ragerror.ErrUnsupportedType, fmt.Errorf("declared type %q", fileType))
	}
}

// decodeTransport strips an optional data-url prefix and all whitespace
// before decoding - browsers and curl both mangle long base64 bodies.
func decodeTransport(encoded string) ([]byte, error) {
	if strings.HasPrefix(encoded, "data:") {
		idx := strings.Index(encoded, ",")
		if idx < 0 {
			return nil, fmt.Errorf("data url without payload")
		}
		encoded = encoded[idx+1:]
	}
	encoded = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, encoded)

	if encoded == "" {
		return nil, fmt.Errorf("empty file content")
	}
	return base64.StdEncoding.DecodeString(encoded)
}

func withTempFile(data []byte, ext string, extract func(path string) ([]notebook.Document, error)) ([]notebook.Document, error) {
	tmp, err := os.CreateTemp("", "notebook-ingest-*."+ext)
	if err != nil {
		return nil, ragerror.Stage("decode", ragerror.ErrParse, err)
	}
	path := tmp.Name()
	defer func() {
		if err := os.Remove(path); err != nil {
			logger.Error("failed removing temp file", "path", path, "error", err)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, ragerror.Stage("decode", ragerror.ErrParse, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, ragerror.Stage("decode", ragerror.ErrParse, err)
	}

	return extract(path)
}

func loadCSV(data []byte) ([]notebook.Document, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 //ragged rows are content, not an error

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, ragerror.Stage("parse", ragerror.ErrParse, err)
	}

	var docs []notebook.Document
	for i, row := range rows {
		content := strings.TrimSpace(strings.Join(row, ", "))
		if content == "" {
			continue
		}
		docs = append(docs, notebook.Document{
			Content: content,
			Metadata: map[string]any{
				notebook.MetaSource: "file:csv",
				notebook.MetaRowNum: i + 1,
			},
		})
	}
	return docs, nil
}
