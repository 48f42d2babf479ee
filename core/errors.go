package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the statistical engine's failure taxonomy.
// Callers match with errors.Is; the wrapped messages carry the
// benchmark identifier, operation and offending parameter so the caller
// can act without re-deriving intermediate statistics.
var (
	// ErrInvalidParameter marks malformed planning or statistical inputs.
	// Caller error: surfaced immediately, never retried.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientSamples marks a sample count below the statistical
	// minimum for the requested operation.
	ErrInsufficientSamples = errors.New("insufficient samples")

	// ErrDegenerateVariance marks the zero-variance edge case in effect
	// size computation. The result carries a sentinel instead of crashing.
	ErrDegenerateVariance = errors.New("degenerate variance")
)

// SampleCountError reports how many samples the operation required
// versus how many it got, so the caller can re-run with more data.
type SampleCountError struct {
	BenchmarkID string
	Op          string
	Required    int
	Got         int
}

func (e *SampleCountError) Error() string {
	if e.BenchmarkID == "" {
		return fmt.Sprintf("%s: requires at least %d samples, got %d", e.Op, e.Required, e.Got)
	}
	return fmt.Sprintf("%s: benchmark %q requires at least %d samples, got %d", e.Op, e.BenchmarkID, e.Required, e.Got)
}

// Unwrap makes errors.Is(err, ErrInsufficientSamples) work.
func (e *SampleCountError) Unwrap() error {
	return ErrInsufficientSamples
}

// invalidParam builds an ErrInvalidParameter with operation and
// parameter context.
func invalidParam(op, param string, value any, reason string) error {
	return fmt.Errorf("%w: %s: %s=%v (%s)", ErrInvalidParameter, op, param, value, reason)
}
