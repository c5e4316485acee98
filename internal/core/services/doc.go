// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The projection engine itself (Projector) is a pure function of the
// records it is given, the inclusion request, and the immutable schema
// registry. The only I/O it performs is synchronous reads through the
// driven.RecordReader for computed fields, resolver relationships,
// polymorphic references, and included resources.
package services
