package driving

import (
	"context"

	"github.com/custodia-labs/projector/internal/core/domain"
)

// RecordService writes records through the parser into the record store.
type RecordService interface {
	// Put parses a JSON:API resource document and stores the record.
	Put(ctx context.Context, body []byte) (*domain.Record, error)

	// Delete removes a record.
	Delete(ctx context.Context, typeName, id string) error
}
