package filestore

import (
	"fmt"
	"os"
	"sync"
	"time"

	"skyscraper-service/internal/domain/entity"
)

// CompletionLog is the append-only log of finished ingestion runs. Appends are
// mutex-serialized so scheduled and manual invocations never interleave lines.
type CompletionLog struct {
	mu   sync.Mutex
	path string
}

// NewCompletionLog creates a completion log backed by the given file path
func NewCompletionLog(path string) *CompletionLog {
	return &CompletionLog{path: path}
}

// Append writes one completion line: AIRPORT | timestamp | N flights [Mode]
func (l *CompletionLog) Append(airport string, ts time.Time, count int, mode entity.PersistMode) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open completion log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s | %s | %d flights [%s]\n",
		airport, ts.Format("2006-01-02 15:04:05"), count, mode)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append completion log: %w", err)
	}
	return nil
}
