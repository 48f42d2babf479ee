package schema

import "time"

// BaselineRecord is a persisted snapshot of a benchmark's trusted
// statistics. Records are immutable once written: a later promotion
// appends a new dated record and moves the store's "latest" pointer,
// it never mutates history.
type BaselineRecord struct {
	BenchmarkID     string                 `json:"benchmark_id"`
	Unit            MetricUnit             `json:"unit"`
	Stats           SummaryStatistics      `json:"stats"`
	Interval        ConfidenceInterval     `json:"interval"`
	Resamples       int                    `json:"resamples"`         // Bootstrap iterations used to derive Interval
	PlannedMinimumN int                    `json:"planned_minimum_n"` // Sample floor below which comparisons refuse a verdict
	Context         ReproducibilityContext `json:"context"`
	CreatedAt       time.Time              `json:"created_at"`
}

// StoreStatus has status information about a baseline store.
type StoreStatus struct {
	Backend        string    `json:"backend"`
	Connected      bool      `json:"connected"`
	RecordCount    int64     `json:"record_count"`
	BenchmarkCount int64     `json:"benchmark_count"`
	NewestRecord   time.Time `json:"newest_record,omitzero"`
	OldestRecord   time.Time `json:"oldest_record,omitzero"`
}
