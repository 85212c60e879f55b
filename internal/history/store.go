// Package history defines the analysis history store and an in-memory implementation.
package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-ats/internal/types"
)

// Store persists AnalysisRecords. Implementations assign ID and AnalyzedAt on Append
// and must be safe for concurrent use.
type Store interface {
	// Append stores record and returns its new id. record.ID and record.AnalyzedAt are ignored.
	Append(ctx context.Context, record types.AnalysisRecord) (types.AnalysisRecord, error)
	// ListByUser returns the user's records, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]types.AnalysisRecord, error)
	// Delete removes a record owned by userID. It returns *NotFoundError when the record
	// does not exist or belongs to another user.
	Delete(ctx context.Context, userID, recordID uuid.UUID) error
	Close() error
}

// NotFoundError is returned when a record does not exist for the caller
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("analysis %s not found", e.ID)
}

// PersistenceError wraps a failed store operation
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("history %s failed: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
