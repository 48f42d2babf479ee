package core

import (
	"testing"

	"github.com/perfgate/perfgate/schema"
	"github.com/stretchr/testify/assert"
)

// detectorBaseline builds a healthy latency baseline for detector tests.
func detectorBaseline() schema.BaselineRecord {
	return schema.BaselineRecord{
		BenchmarkID: "bench",
		Unit:        schema.DurationMS,
		Stats:       schema.SummaryStatistics{Mean: 100, StdDev: 5, N: 50},
		Interval:    schema.ConfidenceInterval{Lower: 98.5, Upper: 101.5, Level: 0.95},
		Resamples:   10_000,
	}
}

// run builds a current run with the given mean, spread and interval.
func run(mean, stddev float64, n int, lower, upper float64, unit schema.MetricUnit) CurrentRun {
	return CurrentRun{
		Stats:    schema.SummaryStatistics{Mean: mean, StdDev: stddev, N: n},
		Interval: schema.ConfidenceInterval{Lower: lower, Upper: upper, Level: 0.95},
		Unit:     unit,
	}
}

// TestDetectRegressionVerdicts exercises the full decision rule across
// the classification scenarios.
func TestDetectRegressionVerdicts(t *testing.T) {
	tests := []struct {
		name         string
		cur          CurrentRun
		baseline     schema.BaselineRecord
		policy       DetectionPolicy
		want         schema.Classification
		wantWeak     bool
		wantCriteria []schema.Criterion
	}{
		{
			name:     "unchanged run",
			cur:      run(100.5, 5, 50, 99.1, 101.9, schema.DurationMS),
			baseline: detectorBaseline(),
			want:     schema.Unchanged,
		},
		{
			name: "clear latency regression",
			// 30ms shift = 6 baseline sigmas, disjoint interval, huge d.
			cur:          run(130, 5, 50, 128.6, 131.4, schema.DurationMS),
			baseline:     detectorBaseline(),
			want:         schema.Regressed,
			wantCriteria: []schema.Criterion{schema.MeanShiftCriterion, schema.CiNonOverlapCriterion, schema.LargeEffectCriterion},
		},
		{
			name:         "clear latency improvement",
			cur:          run(70, 5, 50, 68.6, 71.4, schema.DurationMS),
			baseline:     detectorBaseline(),
			want:         schema.Improved,
			wantCriteria: []schema.Criterion{schema.MeanShiftCriterion, schema.CiNonOverlapCriterion, schema.LargeEffectCriterion},
		},
		{
			name: "throughput drop is a regression",
			cur:  run(70, 5, 50, 68.6, 71.4, schema.RatePerSec),
			baseline: schema.BaselineRecord{
				BenchmarkID: "bench",
				Unit:        schema.RatePerSec,
				Stats:       schema.SummaryStatistics{Mean: 100, StdDev: 5, N: 50},
				Interval:    schema.ConfidenceInterval{Lower: 98.5, Upper: 101.5, Level: 0.95},
			},
			want:         schema.Regressed,
			wantCriteria: []schema.Criterion{schema.MeanShiftCriterion, schema.CiNonOverlapCriterion, schema.LargeEffectCriterion},
		},
		{
			name: "throughput gain is an improvement",
			cur:  run(130, 5, 50, 128.6, 131.4, schema.RatePerSec),
			baseline: schema.BaselineRecord{
				BenchmarkID: "bench",
				Unit:        schema.RatePerSec,
				Stats:       schema.SummaryStatistics{Mean: 100, StdDev: 5, N: 50},
				Interval:    schema.ConfidenceInterval{Lower: 98.5, Upper: 101.5, Level: 0.95},
			},
			want:         schema.Improved,
			wantCriteria: []schema.Criterion{schema.MeanShiftCriterion, schema.CiNonOverlapCriterion, schema.LargeEffectCriterion},
		},
		{
			name: "mean shift without corroboration is a weak signal",
			// 11ms shift clears 2 sigma, but the noisy current run keeps
			// the intervals overlapping and d below the threshold.
			cur:          run(111, 40, 50, 97, 125, schema.DurationMS),
			baseline:     detectorBaseline(),
			want:         schema.Unchanged,
			wantWeak:     true,
			wantCriteria: []schema.Criterion{schema.MeanShiftCriterion},
		},
		{
			name: "corroboration without mean shift stays unchanged",
			// Tight current run: intervals disjoint and d large, but the
			// 8ms shift sits below the loosened 2-sigma gate on a noisy
			// baseline.
			cur: run(108, 1, 50, 107.7, 108.3, schema.DurationMS),
			baseline: schema.BaselineRecord{
				BenchmarkID: "bench",
				Unit:        schema.DurationMS,
				Stats:       schema.SummaryStatistics{Mean: 100, StdDev: 6, N: 50},
				Interval:    schema.ConfidenceInterval{Lower: 98.3, Upper: 101.7, Level: 0.95},
			},
			want:         schema.Unchanged,
			wantCriteria: []schema.Criterion{schema.CiNonOverlapCriterion, schema.LargeEffectCriterion},
		},
		{
			name: "strict corroboration demands all three criteria",
			// Disjoint intervals and a big shift, but d of ~0.42 stays
			// under the effect threshold, so corroboration count 2 fails.
			cur:      run(130, 100, 50, 102.3, 157.7, schema.DurationMS),
			baseline: detectorBaseline(),
			policy:   DetectionPolicy{CorroborationCount: 2},
			want:     schema.Unchanged,
			wantWeak: true,
		},
		{
			name: "undersized run refuses a verdict",
			cur:  run(130, 5, 10, 126.9, 133.1, schema.DurationMS),
			baseline: func() schema.BaselineRecord {
				b := detectorBaseline()
				b.PlannedMinimumN = 30
				return b
			}(),
			want: schema.InsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := DetectRegression(tt.cur, tt.baseline, tt.policy)
			assert.Equal(t, tt.want, verdict.Classification)
			assert.Equal(t, tt.wantWeak, verdict.WeakSignal)
			if tt.wantCriteria != nil {
				assert.Equal(t, tt.wantCriteria, verdict.Criteria)
			}
		})
	}
}

// TestDetectRegressionReportsCriteriaOnInsufficientData checks that
// held criteria stay visible even when the verdict refuses to decide.
func TestDetectRegressionReportsCriteriaOnInsufficientData(t *testing.T) {
	baseline := detectorBaseline()
	baseline.PlannedMinimumN = 30

	cur := run(130, 5, 10, 126.9, 133.1, schema.DurationMS)
	verdict := DetectRegression(cur, baseline, DetectionPolicy{})

	assert.Equal(t, schema.InsufficientData, verdict.Classification)
	assert.True(t, verdict.HasCriterion(schema.MeanShiftCriterion))
	assert.True(t, verdict.HasCriterion(schema.CiNonOverlapCriterion))
}

// TestDetectRegressionDirectionSymmetry checks that the same shift
// flips classification with the metric direction.
func TestDetectRegressionDirectionSymmetry(t *testing.T) {
	baseline := detectorBaseline()
	curUp := run(130, 5, 50, 128.6, 131.4, schema.DurationMS)

	latency := DetectRegression(curUp, baseline, DetectionPolicy{})
	assert.Equal(t, schema.Regressed, latency.Classification)

	baseline.Unit = schema.RatePerSec
	curUp.Unit = schema.RatePerSec
	throughput := DetectRegression(curUp, baseline, DetectionPolicy{})
	assert.Equal(t, schema.Improved, throughput.Classification)
}

// TestDetectRegressionDegenerateBaseline checks graceful behavior when
// the baseline has zero variance.
func TestDetectRegressionDegenerateBaseline(t *testing.T) {
	baseline := detectorBaseline()
	baseline.Stats.StdDev = 0
	baseline.Interval = schema.ConfidenceInterval{Lower: 100, Upper: 100, Level: 0.95}

	// Any nonzero shift over a zero stddev is an infinite sigma shift.
	cur := run(105, 0.5, 50, 104.9, 105.1, schema.DurationMS)
	verdict := DetectRegression(cur, baseline, DetectionPolicy{})
	assert.Equal(t, schema.Regressed, verdict.Classification)
	assert.True(t, verdict.HasCriterion(schema.MeanShiftCriterion))
	assert.True(t, verdict.HasCriterion(schema.LargeEffectCriterion))
}
