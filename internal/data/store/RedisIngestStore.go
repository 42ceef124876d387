package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/NotebookAPI/internal/config"
	"github.com/akolanti/NotebookAPI/internal/data/redisStore"
	"github.com/akolanti/NotebookAPI/internal/domain/notebook"
	"github.com/akolanti/NotebookAPI/pkg/logger_i"
)

type RedisIngestStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisIngestStore returns nil when redis is offline - the caller falls
// back to the in-memory store.
func GetRedisIngestStore(ctx context.Context) *RedisIngestStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisIngestStore)
	if inner == nil {
		return nil
	}
	return &RedisIngestStore{
		store:  inner,
		logger: logger_i.NewLogger("IngestStore"),
	}
}

func (s *RedisIngestStore) SaveRecord(ctx context.Context, record notebook.IngestRecord) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "record Id", record.Id)
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, record.Id, data, config.RedisIngestStoreTTL)
	if err == nil {
		log.Debug("Saved ingest record to Redis")
	}
	return err
}

func (s *RedisIngestStore) GetRecord(ctx context.Context, id string) (notebook.IngestRecord, bool) {
	var record notebook.IngestRecord
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "record Id", id)

	val, err := s.store.Get(ctx, id)
	if s.store.IsNil(err) {
		return record, false
	} else if err != nil {
		log.Error("Error reading ingest record", "error", err)
		return record, false
	}

	if err = json.Unmarshal([]byte(val), &record); err != nil {
		return record, false
	}
	return record, true
}

func (s *RedisIngestStore) DeleteRecord(ctx context.Context, id string) {
	if err := s.store.Del(ctx, id); err != nil {
		s.logger.Error("Error deleting ingest record from Redis", "record Id", id)
		return
	}
	s.logger.Debug("Ingest record deleted from Redis", "record Id", id)
}

// TestIngestStore builds a store over an injected redis wrapper - test use.
func TestIngestStore(store *redisStore.Store) *RedisIngestStore {
	return &RedisIngestStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
