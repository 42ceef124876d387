package chunker

import (
	"strings"
	"testing"

	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
)

func reassemble(chunks []string, overlap int) string {
	var b strings.Builder
	for i, c := range chunks {
		if i == 0 {
			b.WriteString(c)
			continue
		}
		b.WriteString(c[overlap:])
	}
	return b.String()
}

func TestSplit_ShortTextIsSingleChunk(t *testing.T) {
	text := "A. B. C."
	chunks := Split(text, 1000, 200)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("chunk = %q, want the whole text", chunks[0])
	}
}

func TestSplit_EveryChunkWithinBound(t *testing.T) {
	text := strings.Repeat("some words separated by spaces. ", 200)
	maxSize := 100
	overlap := 20

	chunks := Split(text, maxSize, overlap)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > maxSize {
			t.Errorf("chunk %d has length %d > %d", i, len(c), maxSize)
		}
	}
}

func TestSplit_ReassemblyRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		maxSize int
		overlap int
	}{
		{"paragraphs", strings.Repeat("first paragraph of the notebook.\n\nsecond paragraph with more text.\n", 40), 120, 30},
		{"newlines", strings.Repeat("line one\nline two\nline three\n", 60), 90, 25},
		{"spaces only", strings.Repeat("word ", 500), 80, 15},
		{"no separator at all", strings.Repeat("x", 2500), 100, 20},
		{"zero overlap", strings.Repeat("abc def ghi ", 100), 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(tt.text, tt.maxSize, tt.overlap)
			if got := reassemble(chunks, tt.overlap); got != tt.text {
				t.Errorf("round trip broken: got %d bytes, want %d", len(got), len(tt.text))
			}
			for i, c := range chunks {
				if len(c) > tt.maxSize {
					t.Errorf("chunk %d exceeds max size: %d", i, len(c))
				}
			}
		})
	}
}

func TestSplit_OverlapIsPreviousTail(t *testing.T) {
	text := strings.Repeat("overlapping windows keep boundary context alive. ", 60)
	overlap := 25

	chunks := Split(text, 150, overlap)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		tail := chunks[i-1][len(chunks[i-1])-overlap:]
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("chunk %d does not start with the tail of chunk %d", i, i-1)
		}
	}
}

func TestSplit_PrefersParagraphBoundaries(t *testing.T) {
	text := "first block of text that ends here.\n\nsecond block continues with more content after the break."
	chunks := Split(text, 60, 10)

	if len(chunks) < 2 {
		t.Fatalf("expected a split, got %d chunks", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "\n\n") {
		t.Errorf("first chunk should end on the paragraph break, got %q", chunks[0])
	}
}

func TestChunkDocuments_MetadataIsCopied(t *testing.T) {
	docs := []notebook.Document{
		{Content: "short doc", Metadata: map[string]any{notebook.MetaSource: "direct_input"}},
	}

	chunks := ChunkDocuments(docs, 1000, 200)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	chunks[0].Metadata["mutated"] = true
	if _, leaked := docs[0].Metadata["mutated"]; leaked {
		t.Error("chunk metadata shares the parent document's map")
	}
	if chunks[0].Source() != "direct_input" {
		t.Errorf("source not inherited: %q", chunks[0].Source())
	}
}

func TestChunkDocuments_PreservesDocumentOrder(t *testing.T) {
	docs := []notebook.Document{
		{Content: "doc a", Metadata: map[string]any{notebook.MetaPageNum: 1}},
		{Content: "doc b", Metadata: map[string]any{notebook.MetaPageNum: 2}},
	}

	chunks := ChunkDocuments(docs, 1000, 200)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Content != "doc a" || chunks[1].Content != "doc b" {
		t.Error("chunk order does not follow document order")
	}
}
