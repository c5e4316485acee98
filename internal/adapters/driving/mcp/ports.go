package mcp

import (
	"github.com/custodia-labs/projector/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Projection builds JSON:API documents.
	Projection driving.ProjectionService

	// Schema describes the registered resource types.
	Schema driving.SchemaService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Projection == nil {
		return ErrMissingProjectionService
	}
	if p.Schema == nil {
		return ErrMissingSchemaService
	}
	return nil
}
