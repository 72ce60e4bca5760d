package repository

import (
	"context"

	"skyscraper-service/internal/domain/entity"
)

// FlightExportRepository appends an airport's batch to a dated export file,
// one JSON object per line. No deduplication against prior dates.
type FlightExportRepository interface {
	ExportBatch(ctx context.Context, airport string, records []*entity.FlightRecord) (int, error)
}
