package services

import (
	"errors"
	"sort"
	"sync"
	"time"

	"crime-analytics-api/models"

	"github.com/google/uuid"
)

// ErrNoData means no dataset has been uploaded in this process lifetime.
var ErrNoData = errors.New("no data uploaded yet")

// Dataset is an immutable snapshot of the active working set. Records must
// not be mutated after Replace; handlers compute over one snapshot for the
// whole request, so an upload racing with a read never mixes datasets.
type Dataset struct {
	Records    []models.Incident
	Version    string
	Filename   string
	Areas      []string
	Crimes     []string
	Severities []string
	UploadedAt time.Time
}

// DatasetStore holds the single active dataset behind a readers-writer lock.
// Uploads replace it wholesale; there is no incremental append.
type DatasetStore struct {
	mu      sync.RWMutex
	current *Dataset
}

func NewDatasetStore() *DatasetStore {
	return &DatasetStore{}
}

// Replace swaps in a freshly loaded dataset and returns it. The version UUID
// tags cache keys and logs so stale cached responses die with the old upload.
func (s *DatasetStore) Replace(filename string, records []models.Incident) *Dataset {
	ds := &Dataset{
		Records:    records,
		Version:    uuid.NewString(),
		Filename:   filename,
		Areas:      distinctSorted(records, func(r models.Incident) string { return r.Area }),
		Crimes:     distinctSorted(records, func(r models.Incident) string { return r.Description }),
		Severities: distinctSorted(records, func(r models.Incident) string { return r.Severity }),
		UploadedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()
	return ds
}

// Snapshot returns the active dataset, or ErrNoData before the first upload.
func (s *DatasetStore) Snapshot() (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoData
	}
	return s.current, nil
}

func distinctSorted(records []models.Incident, field func(models.Incident) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, rec := range records {
		v := field(rec)
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}
