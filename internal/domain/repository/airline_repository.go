package repository

import (
	"context"

	"skyscraper-service/internal/domain/entity"
)

// AirlineRepository defines the interface for airline reference data.
// List returns airlines in a stable order so canonicalization is reproducible.
type AirlineRepository interface {
	List(ctx context.Context) ([]*entity.Airline, error)
}
