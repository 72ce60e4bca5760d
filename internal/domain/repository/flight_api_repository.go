package repository

import (
	"context"
	"errors"

	"skyscraper-service/internal/domain/entity"
)

// ErrAuthFailure means the credential was rejected by the flight API (401/403).
// The caller removes the credential and retries the same offset with the next one.
var ErrAuthFailure = errors.New("flight api: credential rejected")

// ErrTransient means a network or server-side failure. The caller abandons the
// airport for this invocation; the offset is preserved for the next run.
var ErrTransient = errors.New("flight api: transient failure")

// FlightAPIRepository fetches one page of raw flight items from the external
// flight API. A page shorter than the configured page size is a successful
// end-of-data signal, not an error.
type FlightAPIRepository interface {
	FetchPage(ctx context.Context, airport, accessKey string, offset int) ([]entity.RawFlight, error)
}
