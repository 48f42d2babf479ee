// Package ingest reads raw harness sample files. It is the external
// input boundary only: no statistics are derived here.
package ingest

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
)

// FileSource loads a sample set from a JSON or CSV file emitted by the
// benchmark harness. Overrides and trims come from explicit
// configuration, never from the process environment.
type FileSource struct {
	Path        string
	BenchmarkID string           // Overrides the identifier in the file (required for CSV without one)
	Unit        schema.MetricUnit // Overrides the unit in the file
	WarmupCount int              // Leading samples to trim
	SampleLimit int              // Keep only the first N samples after trimming (0 = all)
}

var _ contract.SampleSource = &FileSource{} // Compile-time check

// sampleFile is the JSON wire format produced by the harness.
type sampleFile struct {
	BenchmarkID string    `json:"benchmark_id"`
	Unit        string    `json:"unit"`
	Samples     []float64 `json:"samples"`
}

// Load reads, validates and trims the sample file.
func (f *FileSource) Load(_ context.Context) (*schema.SampleSet, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open samples file %s: %w", f.Path, err)
	}
	defer func() { _ = file.Close() }()

	var id string
	var unit schema.MetricUnit
	var values []float64

	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".json":
		id, unit, values, err = readJSON(file)
	case ".csv":
		values, err = readCSV(file)
	default:
		return nil, fmt.Errorf("unsupported samples file extension %q (expected .json or .csv)", filepath.Ext(f.Path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse samples file %s: %w", f.Path, err)
	}

	// Apply explicit overrides; fall back to the file name when a CSV
	// carries no identifier of its own.
	if f.BenchmarkID != "" {
		id = f.BenchmarkID
	}
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(f.Path), filepath.Ext(f.Path))
	}
	if f.Unit != "" {
		unit = f.Unit
	}
	if unit == "" {
		unit = schema.DurationMS
	}
	if _, ok := schema.ValidMetricUnits[unit]; !ok {
		return nil, fmt.Errorf("samples file %s: invalid unit %q", f.Path, unit)
	}

	if f.WarmupCount >= len(values) {
		return nil, fmt.Errorf("samples file %s: warmup trim of %d leaves no samples (file has %d)", f.Path, f.WarmupCount, len(values))
	}
	values = values[f.WarmupCount:]
	if f.SampleLimit > 0 && f.SampleLimit < len(values) {
		values = values[:f.SampleLimit]
	}

	set := &schema.SampleSet{
		BenchmarkID: id,
		Unit:        unit,
		Samples:     make([]schema.Sample, len(values)),
		WarmupCount: f.WarmupCount,
	}
	for i, v := range values {
		set.Samples[i] = schema.Sample{Index: i, Value: v}
	}
	return set, nil
}

// readJSON parses the harness JSON format.
func readJSON(r io.Reader) (string, schema.MetricUnit, []float64, error) {
	var parsed sampleFile
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&parsed); err != nil {
		return "", "", nil, err
	}
	if len(parsed.Samples) == 0 {
		return "", "", nil, fmt.Errorf("no samples present")
	}
	return parsed.BenchmarkID, schema.MetricUnit(parsed.Unit), parsed.Samples, nil
}

// readCSV parses a single-column CSV of values with an optional
// "value" header row.
func readCSV(r io.Reader) ([]float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 1

	var values []float64
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		field := strings.TrimSpace(record[0])
		if row == 0 && strings.EqualFold(field, "value") {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no samples present")
	}
	return values, nil
}
