package enrich

import (
	"testing"
	"time"

	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
)

func TestEnrich_PositionalFields(t *testing.T) {
	now := time.Unix(1700000000, 0)
	chunks := []notebook.Chunk{
		{Content: "alpha", Metadata: map[string]any{notebook.MetaSource: "direct_input"}},
		{Content: "beta and gamma", Metadata: map[string]any{notebook.MetaSource: "direct_input"}},
		{Content: "d", Metadata: map[string]any{notebook.MetaSource: "direct_input"}},
	}

	got := Enrich(chunks, now)

	if len(got) != len(chunks) {
		t.Fatalf("length changed: got %d, want %d", len(got), len(chunks))
	}
	for i, c := range got {
		if c.Metadata[notebook.MetaChunkIndex] != i {
			t.Errorf("chunk %d: chunk_index = %v", i, c.Metadata[notebook.MetaChunkIndex])
		}
		if c.Metadata[notebook.MetaTotalChunks] != len(chunks) {
			t.Errorf("chunk %d: total_chunks = %v", i, c.Metadata[notebook.MetaTotalChunks])
		}
		if c.Metadata[notebook.MetaChunkSize] != len(c.Content) {
			t.Errorf("chunk %d: chunk_size = %v, want %d", i, c.Metadata[notebook.MetaChunkSize], len(c.Content))
		}
		if c.Metadata[notebook.MetaIngestedAt] != now.Unix() {
			t.Errorf("chunk %d: ingested_at = %v", i, c.Metadata[notebook.MetaIngestedAt])
		}
		if c.Metadata[notebook.MetaSource] != "direct_input" {
			t.Errorf("chunk %d lost inherited metadata", i)
		}
	}
}

func TestEnrich_DoesNotMutateInput(t *testing.T) {
	chunks := []notebook.Chunk{
		{Content: "alpha", Metadata: map[string]any{notebook.MetaSource: "direct_input"}},
	}

	Enrich(chunks, time.Now())

	if _, stamped := chunks[0].Metadata[notebook.MetaChunkIndex]; stamped {
		t.Error("enrich mutated the input chunk's metadata map")
	}
}

func TestEnrich_EmptyBatch(t *testing.T) {
	if got := Enrich(nil, time.Now()); len(got) != 0 {
		t.Errorf("expected empty output, got %d chunks", len(got))
	}
}
