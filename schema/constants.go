package schema

// Custom string types for type safety.
type (
	// MetricUnit represents the unit of a sample set.
	MetricUnit string

	// Classification represents the final verdict of a comparison.
	Classification string

	// Criterion represents one detection criterion of the decision rule.
	Criterion string

	// EffectBucket represents the qualitative magnitude of an effect size.
	EffectBucket string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for baselines.
	DatabaseBackend string
)

// All metric units supported.
const (
	DurationMS MetricUnit = "duration-ms"  // Latency-type: larger means slower
	RatePerSec MetricUnit = "rate-per-sec" // Throughput-type: larger means faster
)

// All classifications supported.
const (
	Improved         Classification = "improved"
	Regressed        Classification = "regressed"
	Unchanged        Classification = "unchanged"
	InsufficientData Classification = "insufficient-data"
)

// All detection criteria.
const (
	MeanShiftCriterion    Criterion = "mean-shift"
	CiNonOverlapCriterion Criterion = "ci-non-overlap"
	LargeEffectCriterion  Criterion = "large-effect"
)

// All effect size buckets.
const (
	NegligibleEffect EffectBucket = "negligible"
	SmallEffect      EffectBucket = "small"
	MediumEffect     EffectBucket = "medium"
	LargeEffect      EffectBucket = "large"
)

// Fixed Cohen's d bucket thresholds.
const (
	SmallEffectThreshold  = 0.2
	MediumEffectThreshold = 0.5
	LargeEffectThreshold  = 0.8
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All baseline backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidMetricUnits lists all valid metric units.
var ValidMetricUnits = map[MetricUnit]struct{}{
	DurationMS: {},
	RatePerSec: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidBaselineBackends lists all valid baseline backends.
var ValidBaselineBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
