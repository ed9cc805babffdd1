// Package storage provides the persistence layer for the simulation.
// It implements the repository pattern so the domain stays pure.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/PatrikSjolin/hollowheart/internal/events"
)

// ErrNoSnapshot is returned when no snapshot has been saved for a character.
var ErrNoSnapshot = errors.New("storage: no snapshot")

// SnapshotRecord is one stored character snapshot.
type SnapshotRecord struct {
	Name        string    `json:"name" db:"name"`
	Data        []byte    `json:"snapshot" db:"snapshot"`
	Depth       int       `json:"depth" db:"depth"`
	RecordDepth int       `json:"record_depth" db:"record_depth"`
	SavedAt     time.Time `json:"saved_at" db:"saved_at"`
}

// SnapshotRepository stores the latest snapshot per character.
type SnapshotRepository interface {
	// Upsert replaces the stored snapshot.
	Upsert(ctx context.Context, rec SnapshotRecord) error

	// Get returns the stored snapshot or ErrNoSnapshot.
	Get(ctx context.Context, name string) (*SnapshotRecord, error)

	// Delete forgets a character.
	Delete(ctx context.Context, name string) error
}

// LogRepository is the durable narration ledger.
type LogRepository interface {
	// Append adds a line to the character's log.
	Append(ctx context.Context, name string, line events.LogLine) error

	// Recent returns up to limit newest lines, oldest first.
	Recent(ctx context.Context, name string, limit int) ([]events.LogLine, error)

	// LastSeq returns the highest stored sequence number, or 0.
	LastSeq(ctx context.Context, name string) (int64, error)
}
