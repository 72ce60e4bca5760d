package repository

import (
	"context"

	"skyscraper-service/internal/domain/entity"
)

// AirportRepository defines the interface for reference airport lookups.
// GetByIATACode returns (nil, nil) when the code is unknown; absence is a
// valid outcome, the caller falls back to API-supplied fields.
type AirportRepository interface {
	GetByIATACode(ctx context.Context, code string) (*entity.Airport, error)
	SearchByPrefix(ctx context.Context, prefix string, limit int) ([]*entity.Airport, error)
}
