package storage

import (
	"encoding/json"

	"github.com/TimHopkin/wellsched/internal/models"
)

type Provider interface {
	// Lifecycle
	Load() error
	Close() error

	// Scheduling results
	SaveScheduleResult(models.ScheduleResult) error
	LastScheduleResult() (models.ScheduleResult, error)

	// Resolution audit trail. Entries are heterogeneous (resolution runs
	// and batch deletions share one bounded log).
	AppendResolution(entry any) error
	ResolutionHistory() ([]json.RawMessage, error)

	// Utils
	DataDir() string
}
