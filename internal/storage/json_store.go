package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TimHopkin/wellsched/internal/constants"
	"github.com/TimHopkin/wellsched/internal/models"
)

type Store struct {
	Version            int                    `json:"version"`
	LastScheduleResult *models.ScheduleResult `json:"last_schedule_result,omitempty"`
	ResolutionHistory  []json.RawMessage      `json:"resolution_history"`
}

type JSONStore struct {
	dataDir string
	path    string
	store   *Store
}

func NewJSONStore(dataDir string) *JSONStore {
	return &JSONStore{
		dataDir: dataDir,
		path:    filepath.Join(dataDir, constants.AppName+".json"),
	}
}

// Load reads the store file, initializing an empty store (and the data
// directory) on first use.
func (s *JSONStore) Load() error {
	if err := os.MkdirAll(s.dataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.store = &Store{Version: 1}
			return s.save()
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) SaveScheduleResult(result models.ScheduleResult) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.LastScheduleResult = &result
	return s.save()
}

func (s *JSONStore) LastScheduleResult() (models.ScheduleResult, error) {
	if s.store == nil {
		return models.ScheduleResult{}, fmt.Errorf("storage not loaded")
	}
	if s.store.LastScheduleResult == nil {
		return models.ScheduleResult{}, fmt.Errorf("no schedule result recorded")
	}
	return *s.store.LastScheduleResult, nil
}

// AppendResolution adds an audit entry, retaining only the most recent
// entries so the log stays bounded.
func (s *JSONStore) AppendResolution(entry any) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to serialize resolution entry: %w", err)
	}

	s.store.ResolutionHistory = append(s.store.ResolutionHistory, data)
	if len(s.store.ResolutionHistory) > constants.MaxAuditEntries {
		s.store.ResolutionHistory = s.store.ResolutionHistory[len(s.store.ResolutionHistory)-constants.MaxAuditEntries:]
	}

	return s.save()
}

func (s *JSONStore) ResolutionHistory() ([]json.RawMessage, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.store.ResolutionHistory, nil
}

func (s *JSONStore) DataDir() string {
	return s.dataDir
}
