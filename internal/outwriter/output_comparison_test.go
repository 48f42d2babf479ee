package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testComparisonReport builds a regressed latency comparison.
func testComparisonReport() *schema.ComparisonReport {
	return &schema.ComparisonReport{
		Current: schema.AnalysisReport{
			BenchmarkID: "api-p99",
			Unit:        schema.DurationMS,
			Stats:       schema.SummaryStatistics{Mean: 130, StdDev: 5, N: 50},
			Interval:    schema.ConfidenceInterval{Lower: 128.6, Upper: 131.4, Level: 0.95},
			Resamples:   10_000,
		},
		Baseline: schema.BaselineRecord{
			BenchmarkID: "api-p99",
			Unit:        schema.DurationMS,
			Stats:       schema.SummaryStatistics{Mean: 100, StdDev: 5, N: 50},
			Interval:    schema.ConfidenceInterval{Lower: 98.5, Upper: 101.5, Level: 0.95},
			Context:     schema.ReproducibilityContext{CommitHash: "base123"},
			CreatedAt:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		Effect:          schema.EffectSize{CohensD: 6, Bucket: schema.LargeEffect},
		MeanShiftSigmas: 6,
		Verdict: schema.RegressionVerdict{
			Classification: schema.Regressed,
			Criteria: []schema.Criterion{
				schema.MeanShiftCriterion,
				schema.CiNonOverlapCriterion,
				schema.LargeEffectCriterion,
			},
		},
	}
}

// TestWriteComparisonTable checks the side-by-side table and verdict.
func TestWriteComparisonTable(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	cfg := &contract.Config{Precision: 2, Width: 120}

	var buf bytes.Buffer
	require.NoError(t, writeComparisonTable(&buf, testComparisonReport(), cfg, fmtFloat))

	out := buf.String()
	assert.Contains(t, out, "Mean (duration-ms)")
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, "130.00")
	assert.Contains(t, out, "+30.00 ▲") // worse direction marker
	assert.Contains(t, out, "Verdict: REGRESSED")
	assert.Contains(t, out, "Criteria held: mean-shift, ci-non-overlap, large-effect")
	assert.Contains(t, out, "Effect size: d=6.00 (Large) | Mean shift: 6.00σ")
	assert.Contains(t, out, "Baseline from: 2026-08-01T00:00:00Z (commit base123)")
}

// TestWriteComparisonTableImprovedDirection checks the marker for a
// favorable throughput shift.
func TestWriteComparisonTableImprovedDirection(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	cfg := &contract.Config{Precision: 2, Width: 120}

	report := testComparisonReport()
	report.Current.Unit = schema.RatePerSec
	report.Baseline.Unit = schema.RatePerSec
	report.Verdict.Classification = schema.Improved

	var buf bytes.Buffer
	require.NoError(t, writeComparisonTable(&buf, report, cfg, fmtFloat))

	out := buf.String()
	assert.Contains(t, out, "+30.00 ▼") // higher throughput is better
	assert.Contains(t, out, "Verdict: IMPROVED")
}

// TestWriteComparisonTableWeakSignal checks the weak signal line.
func TestWriteComparisonTableWeakSignal(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	cfg := &contract.Config{Precision: 2, Width: 120}

	report := testComparisonReport()
	report.Verdict.Classification = schema.Unchanged
	report.Verdict.WeakSignal = true
	report.Verdict.Criteria = []schema.Criterion{schema.MeanShiftCriterion}

	var buf bytes.Buffer
	require.NoError(t, writeComparisonTable(&buf, report, cfg, fmtFloat))
	assert.Contains(t, buf.String(), "Weak signal: mean shift without corroboration")
}

// TestWriteCSVComparison checks the CSV row against the header.
func TestWriteCSVComparison(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	require.NoError(t, writeCSVComparison(&buf, testComparisonReport(), fmtFloat))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Len(t, records[1], len(records[0]))

	row := records[1]
	assert.Equal(t, "api-p99", row[0])
	assert.Equal(t, "100.00", row[2])
	assert.Equal(t, "130.00", row[3])
	assert.Equal(t, "30.00", row[4])
	assert.Equal(t, "regressed", row[8])
	assert.Equal(t, "mean-shift|ci-non-overlap|large-effect", row[9])
	assert.Equal(t, "false", row[10])
}
