// Package ports defines the interfaces the snapshot assembler consumes.
//
// Adapters under pkg/adapters implement these interfaces; the
// application layer depends only on this package, which keeps the
// pipeline testable with in-memory fakes.
package ports
