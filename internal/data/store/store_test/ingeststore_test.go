package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/akolanti/NotebookAPI/internal/data/redisStore"
	"github.com/akolanti/NotebookAPI/internal/data/store"
	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
)

func newTestStore(t *testing.T) *store.RedisIngestStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestIngestStore(redisStore.NewTestStore(client))
}

func sampleRecord(id string) notebook.IngestRecord {
	return notebook.IngestRecord{
		Id:          id,
		Source:      "direct_input",
		Status:      notebook.IngestStatusComplete,
		Stats:       notebook.IngestStats{OriginalDocuments: 1, ChunksCreated: 3, ChunksStored: 3, AverageChunkSize: 512},
		CreatedTime: time.Now().UTC().Truncate(time.Second),
	}
}

func TestRedisIngestStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	record := sampleRecord("rec-1")

	if err := s.SaveRecord(ctx, record); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}

	got, found := s.GetRecord(ctx, "rec-1")
	if !found {
		t.Fatal("record not found after save")
	}
	if got.Stats.ChunksStored != 3 || got.Status != notebook.IngestStatusComplete {
		t.Errorf("record round trip mismatch: %+v", got)
	}
}

func TestRedisIngestStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	if _, found := s.GetRecord(context.Background(), "nope"); found {
		t.Error("expected miss for unknown record id")
	}
}

func TestRedisIngestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	record := sampleRecord("rec-2")

	if err := s.SaveRecord(ctx, record); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}
	s.DeleteRecord(ctx, "rec-2")

	if _, found := s.GetRecord(ctx, "rec-2"); found {
		t.Error("record still present after delete")
	}
}

func TestInMemoryIngestStore_RoundTrip(t *testing.T) {
	s := store.InitInMemoryIngestStore()
	ctx := context.Background()

	if err := s.SaveRecord(ctx, sampleRecord("mem-1")); err != nil {
		t.Fatalf("SaveRecord failed: %v", err)
	}
	if _, found := s.GetRecord(ctx, "mem-1"); !found {
		t.Error("record not found in memory store")
	}
	s.DeleteRecord(ctx, "mem-1")
	if _, found := s.GetRecord(ctx, "mem-1"); found {
		t.Error("record still present after delete")
	}
}
