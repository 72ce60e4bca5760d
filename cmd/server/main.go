package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skyscraper-service/internal/domain/entity"
	"skyscraper-service/internal/infrastructure/config"
	"skyscraper-service/internal/infrastructure/credential"
	"skyscraper-service/internal/infrastructure/filestore"
	"skyscraper-service/internal/infrastructure/persistence"
	repo "skyscraper-service/internal/interface/repository"
	"skyscraper-service/internal/usecase"
	"skyscraper-service/pkg/logger"
	"skyscraper-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting SkyScraper Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	mode := entity.PersistMode(cfg.PersistMode)
	if mode != entity.ModeUpsert && mode != entity.ModeExport {
		log.Fatal("Invalid persist mode", "mode", cfg.PersistMode)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection for the flights collection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Reference store (airports, airlines)
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	airportRepository := repo.NewGormAirportRepository(gormDB)
	airlineRepository := repo.NewGormAirlineRepository(gormDB)
	flightRecordRepo := repo.NewMongoFlightRecordRepository(db)
	exportRepo := repo.NewJSONLExportRepository(cfg.ExportDir)
	flightAPIRepo := repo.NewHTTPFlightAPIRepository(cfg.FlightAPIBaseURL, cfg.PageSize, cfg.FetchTimeout, log)

	// Operator-editable files
	keyStore := filestore.NewListStore(cfg.APIKeysFile)
	airportList := filestore.NewListStore(cfg.AirportsFile)
	completionLog := filestore.NewCompletionLog(cfg.CompletionLogFile)

	pool, err := credential.NewPool(keyStore, log)
	if err != nil {
		log.Fatal("Failed to load credential pool", "error", err)
	}

	m := metrics.NewMetrics("skyscraper")

	resolver := usecase.NewReferenceResolver(airportRepository, airlineRepository, log)
	builder := usecase.NewRecordBuilder(resolver, log)
	orchestrator := usecase.NewIngestOrchestrator(
		pool, flightAPIRepo, resolver, builder,
		flightRecordRepo, exportRepo,
		airportList, completionLog,
		m, log, cfg.PageSize, mode,
	)

	scheduler, err := usecase.NewScheduler(cfg.ScheduleTimes, orchestrator, log)
	if err != nil {
		log.Fatal("Failed to parse schedule", "error", err)
	}

	// Start the schedule loop in a goroutine
	go scheduler.Run(ctx)

	// Set up HTTP server for metrics and the manual trigger
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	mux.HandleFunc("/ingest/run", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		// Manual invocation; serialized against the scheduler by the run mutex
		go orchestrator.RunAll(ctx)
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("Ingestion run started"))
	})
	mux.HandleFunc("/airports", airportsHandler(airportRepository, airportList, log))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop the scheduler

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("SkyScraper Service stopped")
}
