package core

import (
	"fmt"
	"math"

	"github.com/perfgate/perfgate/schema"
)

// CompareEffect computes Cohen's d for two summary statistics using the
// pooled variance formula and assigns the qualitative bucket.
//
// Degenerate cases: with zero pooled variance and equal means the
// effect is exactly zero; with zero pooled variance and distinct means
// the returned effect carries a signed infinite d in the Large bucket
// alongside ErrDegenerateVariance, so callers can still use the
// sentinel.
func CompareEffect(a, b schema.SummaryStatistics) (schema.EffectSize, error) {
	const op = "effect-size"
	if a.N < 1 || b.N < 1 {
		return schema.EffectSize{}, invalidParam(op, "n", fmt.Sprintf("%d,%d", a.N, b.N), "summary statistics must have n >= 1")
	}
	if a.N+b.N <= 2 {
		return schema.EffectSize{}, &SampleCountError{
			Op:       op,
			Required: 3,
			Got:      a.N + b.N,
		}
	}

	pooledVar := (varianceContribution(a) + varianceContribution(b)) / float64(a.N+b.N-2)
	pooledSD := math.Sqrt(pooledVar)
	diff := a.Mean - b.Mean

	if pooledSD == 0 {
		if diff == 0 {
			return schema.EffectSize{CohensD: 0, Bucket: schema.NegligibleEffect}, nil
		}
		sentinel := schema.EffectSize{
			CohensD: math.Inf(sign(diff)),
			Bucket:  schema.LargeEffect,
		}
		return sentinel, fmt.Errorf("%w: %s: means differ by %v with zero pooled stddev", ErrDegenerateVariance, op, diff)
	}

	d := diff / pooledSD
	return schema.EffectSize{CohensD: d, Bucket: schema.BucketForD(d)}, nil
}

// varianceContribution returns (n-1)*s^2, treating the undefined
// single-sample stddev as contributing nothing to the pool.
func varianceContribution(s schema.SummaryStatistics) float64 {
	if s.N < 2 || math.IsNaN(s.StdDev) {
		return 0
	}
	return float64(s.N-1) * s.StdDev * s.StdDev
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
