package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/perfgate/perfgate/internal/baseline"
	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// writeSamplesFile writes a harness JSON file with the given values.
func writeSamplesFile(t *testing.T, values []float64) string {
	t.Helper()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%g", v)
	}
	content := fmt.Sprintf(`{"benchmark_id":"bench","unit":"duration-ms","samples":[%s]}`,
		strings.Join(parts, ","))
	path := filepath.Join(t.TempDir(), "samples.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// flatSamples builds n values spread tightly around a center.
func flatSamples(n int, center float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = center + float64(i%5)*0.1
	}
	return values
}

// testConfig returns a validated config pointing at a samples file.
func testConfig(samplesPath string) *contract.Config {
	return &contract.Config{
		SamplesPath:        samplesPath,
		Seed:               schema.DefaultSeed,
		Resamples:          2000,
		Confidence:         0.95,
		Workers:            4,
		MeanShiftSigma:     DefaultMeanShiftSigma,
		EffectThreshold:    DefaultEffectThreshold,
		CorroborationCount: DefaultCorroborationCount,
		Precision:          contract.DefaultPrecision,
		Output:             schema.JSONOut,
	}
}

// TestGetAnalysisReport checks the single-run pipeline end to end.
func TestGetAnalysisReport(t *testing.T) {
	ctx := context.Background()
	path := writeSamplesFile(t, flatSamples(40, 100))
	cfg := testConfig(path)
	cfg.CommitHash = "abc123"

	report, err := GetAnalysisReport(ctx, cfg, NewSampleSource(cfg))
	require.NoError(t, err)

	assert.Equal(t, "bench", report.BenchmarkID)
	assert.Equal(t, schema.DurationMS, report.Unit)
	assert.Equal(t, 40, report.Stats.N)
	assert.InDelta(t, 100.2, report.Stats.Mean, 0.01)
	assert.LessOrEqual(t, report.Interval.Lower, report.Stats.Mean)
	assert.GreaterOrEqual(t, report.Interval.Upper, report.Stats.Mean)
	assert.Equal(t, 2000, report.Resamples)
	assert.Equal(t, schema.DefaultSeed, report.Context.Seed)
	assert.Equal(t, "abc123", report.Context.CommitHash)
	assert.Empty(t, report.TargetViolation)
}

// TestGetAnalysisReportDeterministic checks that two runs of the same
// config produce the same statistics and interval.
func TestGetAnalysisReportDeterministic(t *testing.T) {
	ctx := context.Background()
	path := writeSamplesFile(t, flatSamples(40, 100))
	cfg := testConfig(path)

	first, err := GetAnalysisReport(ctx, cfg, NewSampleSource(cfg))
	require.NoError(t, err)
	second, err := GetAnalysisReport(ctx, cfg, NewSampleSource(cfg))
	require.NoError(t, err)

	assert.Equal(t, first.Stats, second.Stats)
	assert.Equal(t, first.Interval, second.Interval)
}

// TestTargetViolation checks direction-aware target checks.
func TestTargetViolation(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		unit   schema.MetricUnit
		mean   float64
		want   string
	}{
		{"no target", 0, schema.DurationMS, 500, ""},
		{"latency under ceiling", 250, schema.DurationMS, 200, ""},
		{"latency over ceiling", 250, schema.DurationMS, 300, "exceeds target"},
		{"throughput above floor", 1000, schema.RatePerSec, 1500, ""},
		{"throughput below floor", 1000, schema.RatePerSec, 800, "below target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := targetViolation(tt.target, tt.unit, tt.mean)
			if tt.want == "" {
				assert.Empty(t, got)
			} else {
				assert.Contains(t, got, tt.want)
			}
		})
	}
}

// TestGetComparisonReport checks the detection pipeline against a
// mocked store.
func TestGetComparisonReport(t *testing.T) {
	ctx := context.Background()
	path := writeSamplesFile(t, flatSamples(40, 130))
	cfg := testConfig(path)

	baselineRecord := &schema.BaselineRecord{
		BenchmarkID: "bench",
		Unit:        schema.DurationMS,
		Stats:       schema.SummaryStatistics{Mean: 100, StdDev: 5, N: 50},
		Interval:    schema.ConfidenceInterval{Lower: 98.5, Upper: 101.5, Level: 0.95},
		Resamples:   10_000,
		CreatedAt:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	store := &baseline.MockBaselineStore{}
	store.On("Load", mock.Anything, "bench").Return(baselineRecord, nil)

	report, err := GetComparisonReport(ctx, cfg, NewSampleSource(cfg), store)
	require.NoError(t, err)
	store.AssertExpectations(t)

	assert.Equal(t, schema.Regressed, report.Verdict.Classification)
	assert.True(t, report.Verdict.HasCriterion(schema.MeanShiftCriterion))
	assert.InDelta(t, 6.04, report.MeanShiftSigmas, 0.1)
	assert.Positive(t, report.Effect.CohensD)
	assert.Equal(t, *baselineRecord, report.Baseline)
}

// TestGetComparisonReportTag checks that a configured tag switches to
// the dated lookup.
func TestGetComparisonReportTag(t *testing.T) {
	ctx := context.Background()
	path := writeSamplesFile(t, flatSamples(40, 100))
	cfg := testConfig(path)
	cfg.BaselineTag = "2026-08"

	baselineRecord := &schema.BaselineRecord{
		BenchmarkID: "bench",
		Unit:        schema.DurationMS,
		Stats:       schema.SummaryStatistics{Mean: 100, StdDev: 5, N: 50},
		Interval:    schema.ConfidenceInterval{Lower: 98.5, Upper: 101.5, Level: 0.95},
	}

	store := &baseline.MockBaselineStore{}
	store.On("LoadAt", mock.Anything, "bench", "2026-08").Return(baselineRecord, nil)

	report, err := GetComparisonReport(ctx, cfg, NewSampleSource(cfg), store)
	require.NoError(t, err)
	store.AssertExpectations(t)
	assert.Equal(t, schema.Unchanged, report.Verdict.Classification)
}

// TestGetComparisonReportNoBaseline checks the missing-baseline error.
func TestGetComparisonReportNoBaseline(t *testing.T) {
	ctx := context.Background()
	path := writeSamplesFile(t, flatSamples(40, 100))
	cfg := testConfig(path)

	store := &baseline.MockBaselineStore{}
	store.On("Load", mock.Anything, "bench").Return(nil, nil)

	_, err := GetComparisonReport(ctx, cfg, NewSampleSource(cfg), store)
	assert.ErrorContains(t, err, "no baseline found")
	assert.ErrorContains(t, err, "baseline promote")
}

// TestExecutePromote checks that promotion saves a record derived from
// the samples and applies the planned minimum fallback.
func TestExecutePromote(t *testing.T) {
	ctx := context.Background()
	path := writeSamplesFile(t, flatSamples(40, 100))
	cfg := testConfig(path)

	var saved schema.BaselineRecord
	store := &baseline.MockBaselineStore{}
	store.On("Save", mock.Anything, mock.MatchedBy(func(r schema.BaselineRecord) bool {
		saved = r
		return r.BenchmarkID == "bench"
	})).Return(nil)

	require.NoError(t, ExecutePromote(ctx, cfg, store))
	store.AssertExpectations(t)

	assert.Equal(t, schema.DurationMS, saved.Unit)
	assert.Equal(t, 40, saved.Stats.N)
	assert.Equal(t, contract.DefaultPlannedMinimum, saved.PlannedMinimumN)
	assert.False(t, saved.CreatedAt.IsZero())
}
