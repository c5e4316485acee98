package driving

import (
	"context"

	"github.com/custodia-labs/projector/internal/core/domain"
)

// ProjectionRequest selects what to project.
type ProjectionRequest struct {
	// Type is the resource type, declared or in the configured type format.
	Type string

	// ID selects a single resource. Empty projects a page of the collection.
	ID string

	// Include is the caller's include parameter.
	Include domain.InclusionRequest

	// Page selects the collection page. Ignored when ID is set.
	Page domain.Page
}

// ProjectionService produces JSON:API documents from stored records.
type ProjectionService interface {
	// Project loads the requested records and projects them.
	// A *domain.IncludeError is returned together with a usable document;
	// any other error comes with a nil document.
	Project(ctx context.Context, req ProjectionRequest) (*domain.Document, error)
}
