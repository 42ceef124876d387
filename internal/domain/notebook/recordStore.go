package notebook

import "context"

type IngestRecordStore interface {
	SaveRecord(ctx context.Context, record IngestRecord) error
	GetRecord(ctx context.Context, id string) (IngestRecord, bool)
	DeleteRecord(ctx context.Context, id string)
}
