package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"skyscraper-service/internal/domain/repository"
	"skyscraper-service/internal/infrastructure/filestore"
	"skyscraper-service/pkg/logger"
)

const airportSearchLimit = 25

// airportsHandler serves reference airport search (GET ?prefix=) and manages
// the configured airport list (POST/DELETE ?code=).
func airportsHandler(airportRepo repository.AirportRepository, airportList *filestore.ListStore, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			prefix := r.URL.Query().Get("prefix")
			airports, err := airportRepo.SearchByPrefix(r.Context(), prefix, airportSearchLimit)
			if err != nil {
				log.Error("Airport search failed", "prefix", prefix, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(airports)

		case http.MethodPost:
			code, ok := airportCodeParam(r)
			if !ok {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if err := airportList.Add(code); err != nil {
				log.Error("Failed to add airport", "code", code, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			log.Info("Airport added", "code", code)
			w.WriteHeader(http.StatusCreated)

		case http.MethodDelete:
			code, ok := airportCodeParam(r)
			if !ok {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if err := airportList.Remove(code); err != nil {
				log.Error("Failed to remove airport", "code", code, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			log.Info("Airport removed", "code", code)
			w.WriteHeader(http.StatusNoContent)

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

// airportCodeParam extracts the code query parameter, normalized uppercase.
// Only 3-letter IATA codes are accepted.
func airportCodeParam(r *http.Request) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("code")))
	if len(code) != 3 {
		return "", false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return "", false
		}
	}
	return code, true
}
