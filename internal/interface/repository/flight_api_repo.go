package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"skyscraper-service/internal/domain/entity"
	"skyscraper-service/internal/domain/repository"
	"skyscraper-service/pkg/logger"
)

// HTTPFlightAPIRepository fetches flight pages from the external flight API
type HTTPFlightAPIRepository struct {
	logger   logger.Logger
	baseURL  string
	pageSize int
	client   *http.Client
}

// NewHTTPFlightAPIRepository creates a new flight API repository
func NewHTTPFlightAPIRepository(baseURL string, pageSize int, timeout time.Duration, log logger.Logger) repository.FlightAPIRepository {
	return &HTTPFlightAPIRepository{
		logger:   log,
		baseURL:  baseURL,
		pageSize: pageSize,
		client:   &http.Client{Timeout: timeout},
	}
}

type flightsResponse struct {
	Pagination struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
		Count  int `json:"count"`
		Total  int `json:"total"`
	} `json:"pagination"`
	Data []entity.RawFlight `json:"data"`
}

// FetchPage requests one page of departures for an airport at the given
// offset. 401/403 map to ErrAuthFailure; network errors, timeouts and any
// other non-200 status map to ErrTransient.
func (r *HTTPFlightAPIRepository) FetchPage(ctx context.Context, airport, accessKey string, offset int) ([]entity.RawFlight, error) {
	params := url.Values{}
	params.Set("access_key", accessKey)
	params.Set("dep_iata", airport)
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(r.pageSize))

	reqURL := fmt.Sprintf("%s/v1/flights?%s", r.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", repository.ErrTransient, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", repository.ErrAuthFailure, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", repository.ErrTransient, resp.StatusCode)
	}

	var payload flightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", repository.ErrTransient, err)
	}

	r.logger.Debug("Fetched flight page",
		"airport", airport,
		"offset", offset,
		"items", len(payload.Data),
		"total", payload.Pagination.Total)

	return payload.Data, nil
}
