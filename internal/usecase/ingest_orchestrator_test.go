package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skyscraper-service/internal/domain/entity"
	"skyscraper-service/internal/domain/repository"
	"skyscraper-service/internal/infrastructure/credential"
	"skyscraper-service/internal/infrastructure/filestore"
	"skyscraper-service/pkg/logger"
	"skyscraper-service/pkg/metrics"
)

// Prometheus collectors register globally, so all orchestrator tests share one set
var testMetrics = metrics.NewMetrics("skyscraper_test")

type apiCall struct {
	airport string
	key     string
	offset  int
}

type pageResponse struct {
	items []entity.RawFlight
	err   error
}

type fakeFlightAPI struct {
	t         *testing.T
	responses []pageResponse
	calls     []apiCall
}

func (f *fakeFlightAPI) FetchPage(ctx context.Context, airport, accessKey string, offset int) ([]entity.RawFlight, error) {
	f.calls = append(f.calls, apiCall{airport: airport, key: accessKey, offset: offset})
	if len(f.responses) == 0 {
		f.t.Fatalf("unexpected FetchPage call: airport=%s key=%s offset=%d", airport, accessKey, offset)
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp.items, resp.err
}

type fakeFlightStore struct {
	records     map[entity.FlightKey]*entity.FlightRecord
	upsertCalls int
}

func newFakeFlightStore() *fakeFlightStore {
	return &fakeFlightStore{records: make(map[entity.FlightKey]*entity.FlightRecord)}
}

func (s *fakeFlightStore) FindByKey(ctx context.Context, key entity.FlightKey) (*entity.FlightRecord, error) {
	return s.records[key], nil
}

func (s *fakeFlightStore) UpsertBatch(ctx context.Context, records []*entity.FlightRecord) (int, error) {
	s.upsertCalls++
	for _, record := range records {
		s.records[record.Key()] = record
	}
	return len(records), nil
}

type fakeExporter struct {
	batches [][]*entity.FlightRecord
}

func (e *fakeExporter) ExportBatch(ctx context.Context, airport string, records []*entity.FlightRecord) (int, error) {
	e.batches = append(e.batches, records)
	return len(records), nil
}

type harness struct {
	orchestrator *IngestOrchestrator
	api          *fakeFlightAPI
	store        *fakeFlightStore
	exporter     *fakeExporter
	pool         *credential.Pool
	keyFile      string
	logFile      string
}

func newHarness(t *testing.T, keys []string, responses []pageResponse, mode entity.PersistMode, pageSize int) *harness {
	t.Helper()
	dir := t.TempDir()

	keyFile := filepath.Join(dir, "api_keys.txt")
	keyStore := filestore.NewListStore(keyFile)
	if err := keyStore.Save(keys); err != nil {
		t.Fatalf("seeding keys: %v", err)
	}
	pool, err := credential.NewPool(keyStore, logger.NewNop())
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}

	airportList := filestore.NewListStore(filepath.Join(dir, "airports.txt"))
	if err := airportList.Save([]string{"JFK"}); err != nil {
		t.Fatalf("seeding airports: %v", err)
	}

	logFile := filepath.Join(dir, "completed_scrapes.txt")
	api := &fakeFlightAPI{t: t, responses: responses}
	store := newFakeFlightStore()
	exporter := &fakeExporter{}

	resolver := NewReferenceResolver(&fakeAirportRepo{}, &fakeAirlineRepo{}, logger.NewNop())
	builder := NewRecordBuilder(resolver, logger.NewNop())
	orchestrator := NewIngestOrchestrator(
		pool, api, resolver, builder, store, exporter,
		airportList, filestore.NewCompletionLog(logFile),
		testMetrics, logger.NewNop(), pageSize, mode,
	)

	return &harness{
		orchestrator: orchestrator,
		api:          api,
		store:        store,
		exporter:     exporter,
		pool:         pool,
		keyFile:      keyFile,
		logFile:      logFile,
	}
}

// pageItem returns a complete raw item; n differentiates identity keys
func pageItem(n int) entity.RawFlight {
	return entity.RawFlight{
		Departure: entity.RawFlightPoint{
			Airport:   "John F Kennedy Intl",
			IATA:      "JFK",
			Scheduled: fmt.Sprintf("2025-03-10T%02d:00:00+00:00", n%24),
		},
		Arrival: entity.RawFlightPoint{
			Airport:   "Los Angeles Intl",
			IATA:      "LAX",
			Scheduled: fmt.Sprintf("2025-03-10T%02d:30:00+00:00", (n+3)%24),
		},
		Airline: entity.RawAirline{Name: "Delta Air Lines"},
		Flight:  entity.RawFlightIdent{Number: fmt.Sprintf("%d", 100+n)},
	}
}

func TestOffsetPreservedAcrossKeyRotation(t *testing.T) {
	responses := []pageResponse{
		{items: []entity.RawFlight{pageItem(1), pageItem(2)}}, // full page at offset 0
		{err: repository.ErrAuthFailure},                      // key-a dies at offset 2
		{items: []entity.RawFlight{pageItem(3)}},              // key-b retries offset 2, short page
	}
	h := newHarness(t, []string{"key-a", "key-b"}, responses, entity.ModeUpsert, 2)

	results := h.orchestrator.RunAll(context.Background())
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	result := results[0]
	if result.Status != entity.IngestCompleted {
		t.Errorf("Status = %s, want completed", result.Status)
	}
	if result.Count != 3 {
		t.Errorf("Count = %d, want 3", result.Count)
	}

	wantCalls := []apiCall{
		{airport: "JFK", key: "key-a", offset: 0},
		{airport: "JFK", key: "key-a", offset: 2},
		{airport: "JFK", key: "key-b", offset: 2},
	}
	if len(h.api.calls) != len(wantCalls) {
		t.Fatalf("api calls = %+v, want %+v", h.api.calls, wantCalls)
	}
	for i, want := range wantCalls {
		if h.api.calls[i] != want {
			t.Errorf("call %d = %+v, want %+v", i, h.api.calls[i], want)
		}
	}

	// The failing key was removed and the removal persisted
	data, err := os.ReadFile(h.keyFile)
	if err != nil {
		t.Fatalf("reading key file: %v", err)
	}
	if string(data) != "key-b\n" {
		t.Errorf("key file = %q, want only key-b", string(data))
	}
}

func TestShortPageEndsPaginationWithoutExtraFetch(t *testing.T) {
	responses := []pageResponse{
		{items: []entity.RawFlight{pageItem(1)}}, // one item, page size two
	}
	h := newHarness(t, []string{"key-a"}, responses, entity.ModeUpsert, 2)

	results := h.orchestrator.RunAll(context.Background())
	if got := len(h.api.calls); got != 1 {
		t.Errorf("FetchPage called %d times, want 1", got)
	}
	if results[0].Status != entity.IngestCompleted {
		t.Errorf("Status = %s, want completed", results[0].Status)
	}
}

func TestTransientFailureAbandonsAirportPreservingOffset(t *testing.T) {
	responses := []pageResponse{
		{items: []entity.RawFlight{pageItem(1), pageItem(2)}},
		{err: repository.ErrTransient},
	}
	h := newHarness(t, []string{"key-a"}, responses, entity.ModeUpsert, 2)

	results := h.orchestrator.RunAll(context.Background())
	result := results[0]
	if result.Status != entity.IngestAbandoned {
		t.Errorf("Status = %s, want abandoned", result.Status)
	}
	if result.FinalOffset != 2 {
		t.Errorf("FinalOffset = %d, want 2", result.FinalOffset)
	}
	if h.store.upsertCalls != 0 {
		t.Errorf("upsert called %d times on abandoned airport, want 0", h.store.upsertCalls)
	}
	// No completion line for an abandoned airport
	if _, err := os.Stat(h.logFile); !os.IsNotExist(err) {
		t.Errorf("completion log written for abandoned airport")
	}
}

func TestPoolExhaustedSkipsAirport(t *testing.T) {
	h := newHarness(t, nil, nil, entity.ModeUpsert, 2)

	results := h.orchestrator.RunAll(context.Background())
	if results[0].Status != entity.IngestSkipped {
		t.Errorf("Status = %s, want skipped", results[0].Status)
	}
	if len(h.api.calls) != 0 {
		t.Errorf("FetchPage called %d times with empty pool, want 0", len(h.api.calls))
	}
}

func TestDedupeKeepsLastRecordForKey(t *testing.T) {
	first := pageItem(1)
	second := pageItem(1)
	second.Flight.Number = "999"
	responses := []pageResponse{
		{items: []entity.RawFlight{first, second}},
	}
	h := newHarness(t, []string{"key-a"}, responses, entity.ModeUpsert, 3)

	results := h.orchestrator.RunAll(context.Background())
	if results[0].Count != 1 {
		t.Fatalf("Count = %d, want 1 after dedup", results[0].Count)
	}
	if len(h.store.records) != 1 {
		t.Fatalf("store has %d records, want 1", len(h.store.records))
	}
	for _, record := range h.store.records {
		if record.FlightNumber != "999" {
			t.Errorf("FlightNumber = %q, want the later record's 999", record.FlightNumber)
		}
	}
}

func TestRepeatedRunsAreIdempotentInUpsertMode(t *testing.T) {
	h := newHarness(t, []string{"key-a"}, []pageResponse{
		{items: []entity.RawFlight{pageItem(1)}},
	}, entity.ModeUpsert, 2)
	h.orchestrator.RunAll(context.Background())

	// Same page again on a second invocation
	h.api.responses = []pageResponse{
		{items: []entity.RawFlight{pageItem(1)}},
	}
	h.orchestrator.RunAll(context.Background())

	if len(h.store.records) != 1 {
		t.Errorf("store has %d records after two identical runs, want 1", len(h.store.records))
	}
}

func TestExportModeRoutesToExporter(t *testing.T) {
	h := newHarness(t, []string{"key-a"}, []pageResponse{
		{items: []entity.RawFlight{pageItem(1), pageItem(2)}},
	}, entity.ModeExport, 3)

	results := h.orchestrator.RunAll(context.Background())
	if results[0].Mode != entity.ModeExport {
		t.Errorf("Mode = %s, want Export", results[0].Mode)
	}
	if h.store.upsertCalls != 0 {
		t.Errorf("upsert called in export mode")
	}
	if len(h.exporter.batches) != 1 || len(h.exporter.batches[0]) != 2 {
		t.Errorf("exporter batches = %d, want one batch of 2", len(h.exporter.batches))
	}
}

func TestCompletionLogLineWritten(t *testing.T) {
	h := newHarness(t, []string{"key-a"}, []pageResponse{
		{items: []entity.RawFlight{pageItem(1)}},
	}, entity.ModeUpsert, 2)

	h.orchestrator.RunAll(context.Background())

	data, err := os.ReadFile(h.logFile)
	if err != nil {
		t.Fatalf("reading completion log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	if !strings.HasPrefix(line, "JFK | ") || !strings.HasSuffix(line, "1 flights [Upsert]") {
		t.Errorf("completion line = %q, want JFK ... 1 flights [Upsert]", line)
	}
}

func TestDedupeRecordsLastWins(t *testing.T) {
	a := &entity.FlightRecord{
		DepartureAirport: entity.AirportInfo{IATACode: "JFK"},
		ArrivalAirport:   entity.AirportInfo{IATACode: "LAX"},
		DepartureTime:    "2025-03-10T10:00:00Z",
		DayOfWeek:        "Monday",
		FlightNumber:     "100",
	}
	b := &entity.FlightRecord{
		DepartureAirport: entity.AirportInfo{IATACode: "JFK"},
		ArrivalAirport:   entity.AirportInfo{IATACode: "LAX"},
		DepartureTime:    "2025-03-10T10:00:00Z",
		DayOfWeek:        "Monday",
		FlightNumber:     "200",
	}
	deduped := DedupeRecords([]*entity.FlightRecord{a, b})
	if len(deduped) != 1 {
		t.Fatalf("len(deduped) = %d, want 1", len(deduped))
	}
	if deduped[0].FlightNumber != "200" {
		t.Errorf("kept FlightNumber = %q, want later 200", deduped[0].FlightNumber)
	}
}
