package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"skyscraper-service/internal/domain/entity"
	"skyscraper-service/internal/domain/repository"
	"skyscraper-service/internal/infrastructure/credential"
	"skyscraper-service/internal/infrastructure/filestore"
	"skyscraper-service/pkg/logger"
	"skyscraper-service/pkg/metrics"
)

// IngestOrchestrator drives one full paginated retrieval per airport:
// credential rotation on auth failure with the offset preserved, end-of-data
// on a short page, then dedupe, persist and completion logging.
type IngestOrchestrator struct {
	pool          *credential.Pool
	flightAPI     repository.FlightAPIRepository
	resolver      *ReferenceResolver
	builder       *RecordBuilder
	flightRepo    repository.FlightRecordRepository
	exportRepo    repository.FlightExportRepository
	airports      *filestore.ListStore
	completionLog *filestore.CompletionLog
	metrics       *metrics.Metrics
	logger        logger.Logger
	pageSize      int
	mode          entity.PersistMode

	// Serializes scheduled and manual invocations
	runMu sync.Mutex
}

// NewIngestOrchestrator creates a new ingestion orchestrator
func NewIngestOrchestrator(
	pool *credential.Pool,
	flightAPI repository.FlightAPIRepository,
	resolver *ReferenceResolver,
	builder *RecordBuilder,
	flightRepo repository.FlightRecordRepository,
	exportRepo repository.FlightExportRepository,
	airports *filestore.ListStore,
	completionLog *filestore.CompletionLog,
	m *metrics.Metrics,
	logger logger.Logger,
	pageSize int,
	mode entity.PersistMode,
) *IngestOrchestrator {
	return &IngestOrchestrator{
		pool:          pool,
		flightAPI:     flightAPI,
		resolver:      resolver,
		builder:       builder,
		flightRepo:    flightRepo,
		exportRepo:    exportRepo,
		airports:      airports,
		completionLog: completionLog,
		metrics:       m,
		logger:        logger,
		pageSize:      pageSize,
		mode:          mode,
	}
}

// RunAll ingests every configured airport sequentially. Concurrent calls
// (scheduler vs. manual trigger) are serialized; no invocation overlaps.
func (o *IngestOrchestrator) RunAll(ctx context.Context) []entity.IngestResult {
	o.runMu.Lock()
	defer o.runMu.Unlock()

	started := time.Now()
	o.logger.Info("Starting ingestion run", "mode", o.mode)

	if err := o.resolver.ReloadAirlines(ctx); err != nil {
		o.logger.Error("Failed to reload airline reference list", "error", err)
		o.metrics.ErrorsCount.WithLabelValues("reload_airlines").Inc()
	}

	codes, err := o.airports.Load()
	if err != nil {
		o.logger.Error("Failed to load airport list", "error", err)
		o.metrics.ErrorsCount.WithLabelValues("load_airports").Inc()
		return nil
	}

	results := make([]entity.IngestResult, 0, len(codes))
	for _, code := range codes {
		airport := strings.ToUpper(code)
		result := o.ingestAirport(ctx, airport)
		results = append(results, result)
		o.logger.Info("Airport ingestion finished",
			"airport", airport,
			"status", result.Status,
			"count", result.Count,
			"finalOffset", result.FinalOffset)
	}

	o.metrics.RunDuration.Observe(time.Since(started).Seconds())
	o.logger.Info("Ingestion run finished", "airports", len(results), "elapsed", time.Since(started).String())
	return results
}

// ingestAirport runs the per-airport state machine. The offset never resets
// across a key rotation; a rotation retries the same page with the next key.
func (o *IngestOrchestrator) ingestAirport(ctx context.Context, airport string) entity.IngestResult {
	offset := 0
	var collected []*entity.FlightRecord

	for {
		key, err := o.pool.Current()
		if errors.Is(err, credential.ErrPoolExhausted) {
			// Pick up keys an operator may have added since the last load
			if err := o.pool.Reload(); err != nil {
				o.logger.Error("Failed to reload credential pool", "error", err)
			}
			if key, err = o.pool.Current(); err != nil {
				o.logger.Warn("Credential pool exhausted, skipping airport", "airport", airport, "offset", offset)
				o.metrics.ErrorsCount.WithLabelValues("pool_exhausted").Inc()
				return entity.IngestResult{Airport: airport, Mode: o.mode, FinalOffset: offset, Status: entity.IngestSkipped}
			}
		}

		items, err := o.flightAPI.FetchPage(ctx, airport, key, offset)
		if err != nil {
			if errors.Is(err, repository.ErrAuthFailure) {
				o.logger.Warn("Credential rejected, rotating", "airport", airport, "offset", offset)
				o.metrics.CredentialsRemoved.Inc()
				if err := o.pool.Remove(key); err != nil {
					o.logger.Error("Failed to remove credential", "error", err)
				}
				o.pool.Advance()
				continue
			}
			o.logger.Error("Transient API failure, abandoning airport",
				"airport", airport, "offset", offset, "error", err)
			o.metrics.ErrorsCount.WithLabelValues("fetch_page").Inc()
			return entity.IngestResult{Airport: airport, Mode: o.mode, FinalOffset: offset, Status: entity.IngestAbandoned}
		}

		o.metrics.PagesFetched.Inc()
		for _, raw := range items {
			if record := o.builder.Build(ctx, raw); record != nil {
				collected = append(collected, record)
				o.metrics.RecordsBuilt.Inc()
			}
		}

		// A short page is the end of this airport's result set
		if len(items) < o.pageSize {
			break
		}
		offset += o.pageSize
	}

	records := DedupeRecords(collected)
	count := o.persist(ctx, airport, records)

	if err := o.completionLog.Append(airport, time.Now(), count, o.mode); err != nil {
		o.logger.Error("Failed to append completion log", "airport", airport, "error", err)
	}

	return entity.IngestResult{Airport: airport, Count: count, Mode: o.mode, FinalOffset: offset, Status: entity.IngestCompleted}
}

func (o *IngestOrchestrator) persist(ctx context.Context, airport string, records []*entity.FlightRecord) int {
	if len(records) == 0 {
		o.logger.Info("No valid flight records to persist", "airport", airport)
		return 0
	}

	var written int
	var err error
	switch o.mode {
	case entity.ModeExport:
		written, err = o.exportRepo.ExportBatch(ctx, airport, records)
	default:
		written, err = o.flightRepo.UpsertBatch(ctx, records)
	}
	if err != nil {
		o.logger.Error("Failed to persist flight records",
			"airport", airport, "mode", o.mode, "written", written, "error", err)
		o.metrics.ErrorsCount.WithLabelValues("persist").Inc()
	}
	o.metrics.RecordsPersisted.WithLabelValues(string(o.mode)).Add(float64(written))
	return written
}
