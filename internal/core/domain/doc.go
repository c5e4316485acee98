// Package domain defines the core entities of the projection engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: A stored instance of a resource type, read by the engine
//   - Ref: A typed reference from one record to another
//   - InclusionRequest / IncludeTree: The caller's "include" parameter
//   - Document: The projected JSON:API document
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
