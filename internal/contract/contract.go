// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/perfgate/perfgate/schema"
)

// BaselineStore defines the persistence boundary for baseline records.
// The engine treats records as opaque values keyed by benchmark
// identifier plus an optional date tag; it never assumes a particular
// file format or directory layout. Store failures propagate unchanged
// so a silent baseline-read failure can never mask a regression.
type BaselineStore interface {
	// Load resolves the "latest" record for a benchmark.
	// Returns (nil, nil) when no baseline exists yet.
	Load(ctx context.Context, benchmarkID string) (*schema.BaselineRecord, error)

	// LoadAt resolves the newest record whose creation time matches the
	// given RFC3339 tag prefix (e.g. "2026-08-29" for a daily lookup).
	LoadAt(ctx context.Context, benchmarkID, tag string) (*schema.BaselineRecord, error)

	// List returns the dated history for a benchmark, newest first.
	// An empty benchmark ID lists every record in the store.
	List(ctx context.Context, benchmarkID string) ([]schema.BaselineRecord, error)

	// Save appends a new dated record and atomically moves the "latest"
	// pointer to it. Historical records are never mutated.
	Save(ctx context.Context, record schema.BaselineRecord) error

	// Clear removes the history for a benchmark, or everything when the
	// benchmark ID is empty. Maintenance operation, not part of analysis.
	Clear(ctx context.Context, benchmarkID string) error

	// Status returns status information about the store.
	Status(ctx context.Context) (schema.StoreStatus, error)

	// Close releases the underlying connection.
	Close() error
}

// SampleSource defines the input boundary to the benchmark harness.
// Implementations read raw ordered measurements; all statistical
// derivation happens inside the engine.
type SampleSource interface {
	Load(ctx context.Context) (*schema.SampleSet, error)
}
