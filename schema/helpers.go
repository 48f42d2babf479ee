package schema

import "math"

// BucketForD maps a Cohen's d value to its qualitative bucket using the
// fixed thresholds. Infinite d (degenerate variance with distinct
// means) lands in the Large bucket.
func BucketForD(d float64) EffectBucket {
	abs := math.Abs(d)
	switch {
	case abs >= LargeEffectThreshold:
		return LargeEffect
	case abs >= MediumEffectThreshold:
		return MediumEffect
	case abs >= SmallEffectThreshold:
		return SmallEffect
	default:
		return NegligibleEffect
	}
}

// WorseIsIncrease reports whether a mean increase is a slowdown for the
// given unit. Latency-type metrics regress upward, throughput-type
// metrics regress downward.
func WorseIsIncrease(unit MetricUnit) bool {
	return unit != RatePerSec
}

// CriteriaStrings converts a criteria slice to plain strings for
// CSV and table rendering.
func CriteriaStrings(criteria []Criterion) []string {
	out := make([]string, len(criteria))
	for i, c := range criteria {
		out[i] = string(c)
	}
	return out
}
