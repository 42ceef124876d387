package store

import (
	"context"
	"sync"

	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
	"github.com/akolanti/NotebookAPI/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem IngestStore")

type InMemoryIngestStore struct {
	recordMutex *sync.RWMutex
	recordMap   map[string]notebook.IngestRecord
}

func InitInMemoryIngestStore() *InMemoryIngestStore {
	return &InMemoryIngestStore{
		recordMutex: new(sync.RWMutex),
		recordMap:   make(map[string]notebook.IngestRecord),
	}
}

func (store *InMemoryIngestStore) SaveRecord(ctx context.Context, record notebook.IngestRecord) error {
	store.recordMutex.Lock()
	defer store.recordMutex.Unlock()
	store.recordMap[record.Id] = record
	inMemLogger.Debug("Saved ingest record", "record Id", record.Id)
	return nil
}

func (store *InMemoryIngestStore) GetRecord(ctx context.Context, id string) (notebook.IngestRecord, bool) {
	store.recordMutex.RLock()
	defer store.recordMutex.RUnlock()
	result, found := store.recordMap[id]
	return result, found
}

func (store *InMemoryIngestStore) DeleteRecord(ctx context.Context, id string) {
	store.recordMutex.Lock()
	defer store.recordMutex.Unlock()
	delete(store.recordMap, id)
}
