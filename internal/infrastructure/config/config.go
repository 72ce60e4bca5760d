// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB (flights collection)
	MongoURI string
	MongoDB  string

	// PostgreSQL (reference airports and airlines)
	PostgresURI string

	// Flight API
	FlightAPIBaseURL string
	PageSize         int
	FetchTimeout     time.Duration

	// Ingestion
	PersistMode   string
	ScheduleTimes string
	ExportDir     string

	// Operator-editable files
	APIKeysFile       string
	AirportsFile      string
	CompletionLogFile string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "flightmap"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		FlightAPIBaseURL: getEnv("FLIGHT_API_BASE_URL", "http://api.aviationstack.com"),
		PageSize:         getEnvAsInt("FLIGHT_API_PAGE_SIZE", 100),
		FetchTimeout:     time.Duration(getEnvAsInt("FLIGHT_API_TIMEOUT", 30)) * time.Second,

		PersistMode:   getEnv("PERSIST_MODE", "Upsert"),
		ScheduleTimes: getEnv("SCHEDULE_TIMES", "02:00,06:00,10:00,14:00,18:00,22:00"),
		ExportDir:     getEnv("EXPORT_DIR", "."),

		APIKeysFile:       getEnv("API_KEYS_FILE", "api_keys.txt"),
		AirportsFile:      getEnv("AIRPORTS_FILE", "airports.txt"),
		CompletionLogFile: getEnv("COMPLETION_LOG_FILE", "completed_scrapes.txt"),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
