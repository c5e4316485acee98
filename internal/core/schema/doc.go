// Package schema declares resource types and the immutable registry the
// projection engine reads them from.
//
// A ResourceType lists attributes, computed fields, relationships and,
// for polymorphic bases, a discriminator table mapping stored values to
// concrete subtypes. Registries are built once at start up with
// NewRegistry and are safe for concurrent readers afterwards. Nothing in
// the projection path mutates a registered type; request-scoped decisions
// such as include-gated visibility live in the services package.
package schema
