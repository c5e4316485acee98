// Package mcp provides an MCP (Model Context Protocol) server adapter for the projector.
// It lets AI assistants project resources and inspect the registered schema.
package mcp

import "errors"

var (
	// ErrMissingProjectionService is returned when the projection service is not provided.
	ErrMissingProjectionService = errors.New("mcp: projection service is required")

	// ErrMissingSchemaService is returned when the schema service is not provided.
	ErrMissingSchemaService = errors.New("mcp: schema service is required")
)
