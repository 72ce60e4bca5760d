package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"skyscraper-service/internal/domain/entity"
	"skyscraper-service/internal/domain/repository"
)

// JSONLExportRepository appends flight records to a per-(airport, UTC date)
// file, one JSON object per line.
type JSONLExportRepository struct {
	dir string
}

// NewJSONLExportRepository creates a new export repository writing into dir
func NewJSONLExportRepository(dir string) repository.FlightExportRepository {
	return &JSONLExportRepository{dir: dir}
}

// ExportBatch appends all records for the airport to today's export file.
// Partial failure is not rolled back.
func (r *JSONLExportRepository) ExportBatch(ctx context.Context, airport string, records []*entity.FlightRecord) (int, error) {
	filename := fmt.Sprintf("%s_%s.json", airport, time.Now().UTC().Format("2006-01-02"))
	path := filepath.Join(r.dir, filename)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("failed to open export file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	written := 0
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := enc.Encode(record); err != nil {
			return written, fmt.Errorf("failed to write export record: %w", err)
		}
		written++
	}
	return written, nil
}
