package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-ats/internal/types"
)

// MemoryStore keeps records in process memory. Used for tests and the default local mode.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]types.AnalysisRecord
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uuid.UUID]types.AnalysisRecord),
		now:     time.Now,
	}
}

// WithClock replaces the timestamp source. Used by tests.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

// Append stores a copy of record.
func (s *MemoryStore) Append(ctx context.Context, record types.AnalysisRecord) (types.AnalysisRecord, error) {
	if err := ctx.Err(); err != nil {
		return types.AnalysisRecord{}, &PersistenceError{Op: "append", Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = uuid.New()
	record.AnalyzedAt = s.now().UTC()
	record.AnalysisResult = record.AnalysisResult.Clone()
	s.records[record.ID] = record
	return copyRecord(record), nil
}

// ListByUser returns the user's records, newest first.
func (s *MemoryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]types.AnalysisRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PersistenceError{Op: "list", Cause: err}
	}

	s.mu.RLock()
	out := make([]types.AnalysisRecord, 0)
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, copyRecord(r))
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AnalyzedAt.Equal(out[j].AnalyzedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].AnalyzedAt.After(out[j].AnalyzedAt)
	})
	return out, nil
}

// Delete removes a record owned by userID.
func (s *MemoryStore) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "delete", Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[recordID]
	if !ok || r.UserID != userID {
		return &NotFoundError{ID: recordID}
	}
	delete(s.records, recordID)
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

func copyRecord(r types.AnalysisRecord) types.AnalysisRecord {
	r.AnalysisResult = r.AnalysisResult.Clone()
	if r.JobTitle != nil {
		v := *r.JobTitle
		r.JobTitle = &v
	}
	if r.Company != nil {
		v := *r.Company
		r.Company = &v
	}
	return r
}
