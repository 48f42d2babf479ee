// Package core has the statistical engine for estimation, planning and
// regression detection.
package core

import (
	"math"

	"github.com/perfgate/perfgate/schema"
	"gonum.org/v1/gonum/stat"
)

// Summarize derives descriptive statistics from a sample set. The
// standard deviation uses the n-1 denominator and is NaN for a single
// sample, never silently zero.
func Summarize(set *schema.SampleSet) (schema.SummaryStatistics, error) {
	n := set.Len()
	if n < 1 {
		return schema.SummaryStatistics{}, &SampleCountError{
			BenchmarkID: set.BenchmarkID,
			Op:          "summarize",
			Required:    1,
			Got:         0,
		}
	}

	values := set.Values()
	stats := schema.SummaryStatistics{
		Mean: stat.Mean(values, nil),
		N:    n,
	}
	if n >= 2 {
		stats.StdDev = stat.StdDev(values, nil)
	} else {
		stats.StdDev = math.NaN()
	}
	return stats, nil
}
