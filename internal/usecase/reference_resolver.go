package usecase

import (
	"context"
	"strings"
	"sync"

	"skyscraper-service/internal/domain/entity"
	"skyscraper-service/internal/domain/repository"
	"skyscraper-service/pkg/logger"
)

// ReferenceResolver resolves raw API strings against the reference store:
// airport identity/timezone by IATA code and canonical airline names.
type ReferenceResolver struct {
	airportRepo repository.AirportRepository
	airlineRepo repository.AirlineRepository
	logger      logger.Logger

	mu       sync.Mutex
	airlines []*entity.Airline
	loaded   bool
}

// NewReferenceResolver creates a new reference resolver
func NewReferenceResolver(
	airportRepo repository.AirportRepository,
	airlineRepo repository.AirlineRepository,
	logger logger.Logger,
) *ReferenceResolver {
	return &ReferenceResolver{
		airportRepo: airportRepo,
		airlineRepo: airlineRepo,
		logger:      logger,
	}
}

// LookupAirport returns the reference airport for a raw IATA code, or nil when
// the code is unknown or blank.
func (r *ReferenceResolver) LookupAirport(ctx context.Context, code string) (*entity.Airport, error) {
	if code == "" {
		return nil, nil
	}
	return r.airportRepo.GetByIATACode(ctx, code)
}

// ReloadAirlines refreshes the cached airline list from the reference store.
// Called once at the start of each ingestion run.
func (r *ReferenceResolver) ReloadAirlines(ctx context.Context) error {
	airlines, err := r.airlineRepo.List(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.airlines = airlines
	r.loaded = true
	r.mu.Unlock()

	r.logger.Debug("Airline reference list reloaded", "count", len(airlines))
	return nil
}

// CanonicalizeAirline maps a raw airline name onto the first known airline
// whose name appears inside it. Cargo carriers are never canonicalized, and
// an unmatched name passes through unchanged.
func (r *ReferenceResolver) CanonicalizeAirline(ctx context.Context, rawName string) string {
	if rawName == "" {
		return rawName
	}

	lowered := strings.ToLower(rawName)
	if strings.Contains(lowered, "cargo") {
		return rawName
	}

	r.mu.Lock()
	if !r.loaded {
		r.mu.Unlock()
		if err := r.ReloadAirlines(ctx); err != nil {
			r.logger.Error("Failed to load airline reference list", "error", err)
			return rawName
		}
		r.mu.Lock()
	}
	airlines := r.airlines
	r.mu.Unlock()

	for _, airline := range airlines {
		if airline.Name == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(airline.Name)) {
			return airline.Name
		}
	}
	return rawName
}
