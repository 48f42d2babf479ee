// Package parquet provides data structures and functions for exporting
// perfgate reports and baseline history to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/perfgate/perfgate/schema"
)

// AnalysisRow is the flat Parquet representation of a single-run
// analysis report.
type AnalysisRow struct {
	BenchmarkID string `parquet:"benchmark_id,snappy"`
	Unit        string `parquet:"unit,snappy"`

	Mean float64 `parquet:"mean,snappy"`
	// StdDev is nil for single-sample runs where it is undefined
	StdDev *float64 `parquet:"stddev,optional,snappy"`
	N      int32    `parquet:"n,snappy"`

	CiLower float64 `parquet:"ci_lower,snappy"`
	CiUpper float64 `parquet:"ci_upper,snappy"`
	CiLevel float64 `parquet:"ci_level,snappy"`

	Resamples   int32 `parquet:"resamples,snappy"`
	WarmupCount int32 `parquet:"warmup_count,snappy"`

	Seed           int64     `parquet:"seed,snappy"`
	CommitHash     *string   `parquet:"commit_hash,optional,snappy"`
	HardwareTag    *string   `parquet:"hardware_tag,optional,snappy"`
	EnvFingerprint string    `parquet:"env_fingerprint,snappy"`
	Timestamp      time.Time `parquet:"timestamp,snappy"`

	TargetViolation *string `parquet:"target_violation,optional,snappy"`
}

// ComparisonRow is the flat Parquet representation of a regression
// detection verdict.
type ComparisonRow struct {
	BenchmarkID string `parquet:"benchmark_id,snappy"`
	Unit        string `parquet:"unit,snappy"`

	CurrentMean  float64 `parquet:"current_mean,snappy"`
	BaselineMean float64 `parquet:"baseline_mean,snappy"`
	Delta        float64 `parquet:"delta,snappy"`

	CohensD         float64 `parquet:"cohens_d,snappy"`
	EffectBucket    string  `parquet:"effect_bucket,snappy"`
	MeanShiftSigmas float64 `parquet:"mean_shift_sigmas,snappy"`

	Classification string `parquet:"classification,snappy"`
	// Criteria holds the held criteria joined with "|"
	Criteria   string `parquet:"criteria,snappy"`
	WeakSignal bool   `parquet:"weak_signal,snappy"`

	Seed      int64     `parquet:"seed,snappy"`
	Timestamp time.Time `parquet:"timestamp,snappy"`
}

// BaselineRow is the flat Parquet representation of a stored baseline
// record. This struct maps to the perfgate_baseline_records table.
type BaselineRow struct {
	BenchmarkID string `parquet:"benchmark_id,snappy"`
	Unit        string `parquet:"unit,snappy"`

	Mean   float64  `parquet:"mean,snappy"`
	StdDev *float64 `parquet:"stddev,optional,snappy"`
	N      int32    `parquet:"n,snappy"`

	CiLower float64 `parquet:"ci_lower,snappy"`
	CiUpper float64 `parquet:"ci_upper,snappy"`
	CiLevel float64 `parquet:"ci_level,snappy"`

	Resamples       int32 `parquet:"resamples,snappy"`
	PlannedMinimumN int32 `parquet:"planned_minimum_n,snappy"`

	Seed           int64     `parquet:"seed,snappy"`
	CommitHash     *string   `parquet:"commit_hash,optional,snappy"`
	HardwareTag    *string   `parquet:"hardware_tag,optional,snappy"`
	EnvFingerprint string    `parquet:"env_fingerprint,snappy"`
	ContextTime    time.Time `parquet:"context_time,snappy"`
	CreatedAt      time.Time `parquet:"created_at,snappy"`
}

// WriteAnalysisParquet writes analysis rows to a Parquet file.
func WriteAnalysisParquet(data []AnalysisRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteComparisonParquet writes comparison rows to a Parquet file.
func WriteComparisonParquet(data []ComparisonRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteBaselinesParquet writes baseline rows to a Parquet file.
func WriteBaselinesParquet(data []BaselineRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes records to a Parquet file using struct schema
// inference from the row type's tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertAnalysisReport converts a schema.AnalysisReport to an
// AnalysisRow for Parquet export.
func ConvertAnalysisReport(report *schema.AnalysisReport) AnalysisRow {
	return AnalysisRow{
		BenchmarkID:     report.BenchmarkID,
		Unit:            string(report.Unit),
		Mean:            report.Stats.Mean,
		StdDev:          optionalFloat(report.Stats.StdDev),
		N:               int32(report.Stats.N),
		CiLower:         report.Interval.Lower,
		CiUpper:         report.Interval.Upper,
		CiLevel:         report.Interval.Level,
		Resamples:       int32(report.Resamples),
		WarmupCount:     int32(report.WarmupCount),
		Seed:            int64(report.Context.Seed),
		CommitHash:      optionalString(report.Context.CommitHash),
		HardwareTag:     optionalString(report.Context.HardwareTag),
		EnvFingerprint:  report.Context.EnvFingerprint,
		Timestamp:       report.Context.Timestamp,
		TargetViolation: optionalString(report.TargetViolation),
	}
}

// ConvertComparisonReport converts a schema.ComparisonReport to a
// ComparisonRow for Parquet export.
func ConvertComparisonReport(report *schema.ComparisonReport) ComparisonRow {
	criteria := make([]string, len(report.Verdict.Criteria))
	for i, criterion := range report.Verdict.Criteria {
		criteria[i] = string(criterion)
	}
	return ComparisonRow{
		BenchmarkID:     report.Current.BenchmarkID,
		Unit:            string(report.Current.Unit),
		CurrentMean:     report.Current.Stats.Mean,
		BaselineMean:    report.Baseline.Stats.Mean,
		Delta:           report.Current.Stats.Mean - report.Baseline.Stats.Mean,
		CohensD:         report.Effect.CohensD,
		EffectBucket:    string(report.Effect.Bucket),
		MeanShiftSigmas: report.MeanShiftSigmas,
		Classification:  string(report.Verdict.Classification),
		Criteria:        strings.Join(criteria, "|"),
		WeakSignal:      report.Verdict.WeakSignal,
		Seed:            int64(report.Current.Context.Seed),
		Timestamp:       report.Current.Context.Timestamp,
	}
}

// ConvertBaselineRecords converts schema.BaselineRecord values to
// BaselineRow values for Parquet export.
func ConvertBaselineRecords(records []schema.BaselineRecord) []BaselineRow {
	result := make([]BaselineRow, len(records))
	for i, record := range records {
		result[i] = BaselineRow{
			BenchmarkID:     record.BenchmarkID,
			Unit:            string(record.Unit),
			Mean:            record.Stats.Mean,
			StdDev:          optionalFloat(record.Stats.StdDev),
			N:               int32(record.Stats.N),
			CiLower:         record.Interval.Lower,
			CiUpper:         record.Interval.Upper,
			CiLevel:         record.Interval.Level,
			Resamples:       int32(record.Resamples),
			PlannedMinimumN: int32(record.PlannedMinimumN),
			Seed:            int64(record.Context.Seed),
			CommitHash:      optionalString(record.Context.CommitHash),
			HardwareTag:     optionalString(record.Context.HardwareTag),
			EnvFingerprint:  record.Context.EnvFingerprint,
			ContextTime:     record.Context.Timestamp,
			CreatedAt:       record.CreatedAt,
		}
	}
	return result
}

// optionalString maps "" to nil for nullable Parquet columns.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// optionalFloat maps NaN to nil for nullable Parquet columns.
func optionalFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
