package tui

import "errors"

// ErrMissingProjectionService is returned when the projection service is not provided.
var ErrMissingProjectionService = errors.New("tui: projection service is required")

// ErrMissingSchemaService is returned when the schema service is not provided.
var ErrMissingSchemaService = errors.New("tui: schema service is required")
