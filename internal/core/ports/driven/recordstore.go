package driven

import (
	"context"

	"github.com/custodia-labs/projector/internal/core/domain"
)

// RecordReader is the read side of the data-access collaborator.
// Computed fields and relationship resolvers receive only this view.
type RecordReader interface {
	// Get retrieves a record by type and ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, typ, id string) (*domain.Record, error)

	// List returns records matching the query, ordered by ID.
	List(ctx context.Context, q domain.Query) ([]domain.Record, error)

	// Count returns the number of records matching the query,
	// ignoring Offset and Limit.
	Count(ctx context.Context, q domain.Query) (int, error)
}

// RecordStore persists records.
// Backed by SQLite, or by memory for tests.
type RecordStore interface {
	RecordReader

	// Save stores or replaces a record and its refs.
	Save(ctx context.Context, rec *domain.Record) error

	// Delete removes a record and its refs.
	Delete(ctx context.Context, typ, id string) error
}
