// internal/domain/entity/ingest.go
package entity

// PersistMode selects how an airport's batch is persisted
type PersistMode string

const (
	ModeUpsert PersistMode = "Upsert"
	ModeExport PersistMode = "Export"
)

// IngestStatus is the terminal state of one airport's ingestion
type IngestStatus string

const (
	// IngestCompleted means pagination reached end-of-data and the batch was persisted
	IngestCompleted IngestStatus = "completed"
	// IngestAbandoned means a transient API failure stopped the airport mid-run;
	// FinalOffset holds the offset to resume from on the next invocation
	IngestAbandoned IngestStatus = "abandoned"
	// IngestSkipped means the credential pool was exhausted before the airport finished
	IngestSkipped IngestStatus = "skipped"
)

// IngestResult summarizes one airport's ingestion outcome
type IngestResult struct {
	Airport     string
	Count       int
	Mode        PersistMode
	FinalOffset int
	Status      IngestStatus
}
