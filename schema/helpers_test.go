package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestWorseIsIncrease checks metric direction per unit.
func TestWorseIsIncrease(t *testing.T) {
	assert.True(t, WorseIsIncrease(DurationMS))
	assert.False(t, WorseIsIncrease(RatePerSec))
}

// TestOverlaps checks interval overlap including touching endpoints.
func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b ConfidenceInterval
		want bool
	}{
		{
			name: "disjoint",
			a:    ConfidenceInterval{Lower: 1, Upper: 2},
			b:    ConfidenceInterval{Lower: 3, Upper: 4},
			want: false,
		},
		{
			name: "touching endpoints overlap",
			a:    ConfidenceInterval{Lower: 1, Upper: 2},
			b:    ConfidenceInterval{Lower: 2, Upper: 3},
			want: true,
		},
		{
			name: "nested",
			a:    ConfidenceInterval{Lower: 1, Upper: 10},
			b:    ConfidenceInterval{Lower: 4, Upper: 5},
			want: true,
		},
		{
			name: "partial",
			a:    ConfidenceInterval{Lower: 1, Upper: 5},
			b:    ConfidenceInterval{Lower: 4, Upper: 8},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

// TestHasStdDev checks the single-sample NaN rule.
func TestHasStdDev(t *testing.T) {
	assert.True(t, SummaryStatistics{Mean: 1, StdDev: 0.5, N: 2}.HasStdDev())
	assert.False(t, SummaryStatistics{Mean: 1, StdDev: math.NaN(), N: 1}.HasStdDev())
	assert.False(t, SummaryStatistics{Mean: 1, StdDev: math.NaN(), N: 5}.HasStdDev())
}

// TestSampleSetValues checks that Values copies in order.
func TestSampleSetValues(t *testing.T) {
	set := SampleSet{
		BenchmarkID: "bench",
		Unit:        DurationMS,
		Samples: []Sample{
			{Index: 0, Value: 3},
			{Index: 1, Value: 1},
			{Index: 2, Value: 2},
		},
	}
	values := set.Values()
	assert.Equal(t, []float64{3, 1, 2}, values)

	// Mutating the copy must not touch the set.
	values[0] = 99
	assert.Equal(t, 3.0, set.Samples[0].Value)
}

// TestCriteriaStrings converts criteria for rendering.
func TestCriteriaStrings(t *testing.T) {
	got := CriteriaStrings([]Criterion{MeanShiftCriterion, LargeEffectCriterion})
	assert.Equal(t, []string{"mean-shift", "large-effect"}, got)
	assert.Empty(t, CriteriaStrings(nil))
}
