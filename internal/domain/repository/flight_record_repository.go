package repository

import (
	"context"

	"skyscraper-service/internal/domain/entity"
)

// FlightRecordRepository defines the interface for flight record persistence.
// UpsertBatch is idempotent per identity key and returns the number of records
// written before the first failure; records already written stay written.
type FlightRecordRepository interface {
	FindByKey(ctx context.Context, key entity.FlightKey) (*entity.FlightRecord, error)
	UpsertBatch(ctx context.Context, records []*entity.FlightRecord) (int, error)
}
