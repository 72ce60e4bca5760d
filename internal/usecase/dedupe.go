package usecase

import (
	"skyscraper-service/internal/domain/entity"
)

// DedupeRecords collapses a batch to one record per identity key, keeping the
// last record encountered for each key. Output order is unspecified.
func DedupeRecords(records []*entity.FlightRecord) []*entity.FlightRecord {
	unique := make(map[entity.FlightKey]*entity.FlightRecord, len(records))
	for _, record := range records {
		unique[record.Key()] = record
	}

	deduped := make([]*entity.FlightRecord, 0, len(unique))
	for _, record := range unique {
		deduped = append(deduped, record)
	}
	return deduped
}
