// Package tui provides an interactive terminal explorer for projected documents.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/projector/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Projection builds the documents shown in the explorer.
	Projection driving.ProjectionService

	// Schema lists the registered resource types.
	Schema driving.SchemaService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Projection == nil {
		return ErrMissingProjectionService
	}
	if p.Schema == nil {
		return ErrMissingSchemaService
	}
	return nil
}
