// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RecordStore: Reads (and for seeding, writes) records. This is the
//     data-access collaborator of the projection engine. Retries and
//     caching belong behind this interface, never in the engine.
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - ConfigWatcher: Change notification for a ConfigStore. Without it,
//     long-running servers keep the settings they started with.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
