// Package schema has the data model shared by all parts of perfgate.
package schema

import "math"

// Sample is a single scalar measurement tagged with its ordinal index
// in the run. Immutable once recorded.
type Sample struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// SampleSet is an ordered sequence of samples for one benchmark run.
// All samples share the same unit and benchmark identifier. The set is
// owned by the harness; the engine only reads it.
type SampleSet struct {
	BenchmarkID string     `json:"benchmark_id"` // Identifier from the harness (e.g. "render/table/80x24")
	Unit        MetricUnit `json:"unit"`         // duration-ms or rate-per-sec
	Samples     []Sample   `json:"samples"`      // Ordered measurements, non-empty
	WarmupCount int        `json:"warmup_count"` // Leading samples the harness already discarded (provenance only)
}

// Len returns the number of samples in the set.
func (s *SampleSet) Len() int {
	return len(s.Samples)
}

// Values returns the sample values as a fresh float64 slice.
func (s *SampleSet) Values() []float64 {
	out := make([]float64, len(s.Samples))
	for i, sm := range s.Samples {
		out[i] = sm.Value
	}
	return out
}

// SummaryStatistics holds derived descriptive statistics for a sample
// sequence. Always derived via core.Summarize, never hand-constructed;
// StdDev uses the n-1 denominator and is NaN when N < 2, never silently
// zero.
type SummaryStatistics struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	N      int     `json:"n"`
}

// HasStdDev reports whether the standard deviation is defined (N >= 2).
func (s SummaryStatistics) HasStdDev() bool {
	return s.N >= 2 && !math.IsNaN(s.StdDev)
}

// ConfidenceInterval is a two-sided interval around a point estimate.
// Invariant: Lower <= point estimate <= Upper and Level in (0,1).
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"`
}

// Overlaps reports whether two intervals share any point.
func (ci ConfidenceInterval) Overlaps(other ConfidenceInterval) bool {
	return ci.Lower <= other.Upper && other.Lower <= ci.Upper
}

// Width returns the width of the interval.
func (ci ConfidenceInterval) Width() float64 {
	return ci.Upper - ci.Lower
}

// EffectSize is a standardized difference between two means in pooled
// standard deviation units, with its qualitative bucket.
type EffectSize struct {
	CohensD float64      `json:"cohens_d"`
	Bucket  EffectBucket `json:"bucket"`
}

// PlannedSampleSize is the result of power-based sample size planning.
// MinimumN is the statistical floor; RecommendedN layers the safety
// margin on top.
type PlannedSampleSize struct {
	MinimumN     int     `json:"minimum_n"`
	RecommendedN int     `json:"recommended_n"`
	SafetyMargin float64 `json:"safety_margin"`
	Power        float64 `json:"power"`
	Alpha        float64 `json:"alpha"`
}
