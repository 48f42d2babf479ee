package contract

import (
	"fmt"
	"strings"

	"github.com/perfgate/perfgate/schema"
)

// Default values for configuration.
const (
	DefaultPrecision      = 4
	MaxPrecision          = 9
	DefaultPlannedMinimum = 30
)

// Config holds the validated runtime configuration. Seed, overrides and
// provenance fields all arrive here explicitly; the engine never reads
// the process environment itself.
type Config struct {
	SamplesPath string // Path to the harness sample file (positional arg)
	BenchmarkID string // Benchmark identifier override (default: from sample file)
	Unit        schema.MetricUnit

	Seed        uint64 // Deterministic RNG seed
	Resamples   int    // Bootstrap iterations
	Confidence  float64
	Workers     int
	WarmupCount int     // Leading samples to trim at ingest
	SampleLimit int     // Sample-size override: keep only the first N samples (0 = all)
	MaxMean     float64 // Absolute performance target for the mean (0 = disabled)

	CommitHash  string
	HardwareTag string

	// Detection policy knobs.
	MeanShiftSigma     float64
	EffectThreshold    float64
	CorroborationCount int
	Strict             bool // CI gating: nonzero exit on regressed or ambiguous verdicts

	// Planning inputs.
	EffectTarget float64
	RelStdDev    float64
	Power        float64
	Alpha        float64
	SafetyMargin float64

	// Promotion inputs.
	PlannedMinimumN int

	// Baseline store.
	StoreBackend schema.DatabaseBackend
	StoreConnect string // Please use env var as this is plaintext
	BaselineTag  string // Optional date tag for historical lookups

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)
}

// Clone returns a copy of the config. All fields are value types, so a
// shallow copy is a full copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw values resolved by Viper from defaults,
// config file, environment and flags. Validation and parsing happen in
// ProcessAndValidate.
type ConfigRawInput struct {
	SamplesPathStr string
	BenchmarkID    string  `mapstructure:"benchmark"`
	Unit           string  `mapstructure:"unit"`
	Seed           uint64  `mapstructure:"seed"`
	Resamples      int     `mapstructure:"resamples"`
	Confidence     float64 `mapstructure:"confidence"`
	Workers        int     `mapstructure:"workers"`
	WarmupCount    int     `mapstructure:"warmup"`
	SampleLimit    int     `mapstructure:"sample-limit"`
	MaxMean        float64 `mapstructure:"max-mean"`

	CommitHash  string `mapstructure:"commit"`
	HardwareTag string `mapstructure:"hardware-tag"`

	MeanShiftSigma     float64 `mapstructure:"shift-sigma"`
	EffectThreshold    float64 `mapstructure:"effect-threshold"`
	CorroborationCount int     `mapstructure:"corroboration"`
	Strict             bool    `mapstructure:"strict"`

	EffectTarget float64 `mapstructure:"effect-target"`
	RelStdDev    float64 `mapstructure:"rel-stddev"`
	Power        float64 `mapstructure:"power"`
	Alpha        float64 `mapstructure:"alpha"`
	SafetyMargin float64 `mapstructure:"margin"`

	PlannedMinimumN int `mapstructure:"planned-min"`

	StoreBackend string `mapstructure:"baseline-backend"`
	StoreConnect string `mapstructure:"baseline-db-connect"`
	BaselineTag  string `mapstructure:"tag"`

	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Color      string `mapstructure:"color"`
	Width      int    `mapstructure:"width"`
}

// ProcessAndValidate performs all parsing and validation on the raw
// inputs and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Sample input surface ---
	cfg.SamplesPath = input.SamplesPathStr
	cfg.BenchmarkID = input.BenchmarkID

	unit := schema.MetricUnit(strings.ToLower(input.Unit))
	if unit != "" {
		if _, ok := schema.ValidMetricUnits[unit]; !ok {
			return fmt.Errorf("invalid unit %q. must be %s or %s", input.Unit, schema.DurationMS, schema.RatePerSec)
		}
	}
	cfg.Unit = unit

	if input.WarmupCount < 0 {
		return fmt.Errorf("warmup cannot be negative (received %d)", input.WarmupCount)
	}
	cfg.WarmupCount = input.WarmupCount

	if input.SampleLimit < 0 {
		return fmt.Errorf("sample-limit cannot be negative (received %d)", input.SampleLimit)
	}
	cfg.SampleLimit = input.SampleLimit

	if input.MaxMean < 0 {
		return fmt.Errorf("max-mean cannot be negative (received %v)", input.MaxMean)
	}
	cfg.MaxMean = input.MaxMean

	// --- 2. Estimation parameters ---
	// Range checks on confidence and resamples live in the engine, which
	// reports them with full operation context.
	cfg.Seed = input.Seed
	cfg.Resamples = input.Resamples
	cfg.Confidence = input.Confidence

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Provenance ---
	cfg.CommitHash = input.CommitHash
	cfg.HardwareTag = input.HardwareTag

	// --- 4. Detection policy ---
	if input.MeanShiftSigma < 0 {
		return fmt.Errorf("shift-sigma cannot be negative (received %v)", input.MeanShiftSigma)
	}
	cfg.MeanShiftSigma = input.MeanShiftSigma

	if input.EffectThreshold < 0 {
		return fmt.Errorf("effect-threshold cannot be negative (received %v)", input.EffectThreshold)
	}
	cfg.EffectThreshold = input.EffectThreshold

	if input.CorroborationCount < 1 || input.CorroborationCount > 2 {
		return fmt.Errorf("corroboration must be 1 or 2 (received %d)", input.CorroborationCount)
	}
	cfg.CorroborationCount = input.CorroborationCount
	cfg.Strict = input.Strict

	// --- 5. Planning inputs (validated by the planner itself) ---
	cfg.EffectTarget = input.EffectTarget
	cfg.RelStdDev = input.RelStdDev
	cfg.Power = input.Power
	cfg.Alpha = input.Alpha
	cfg.SafetyMargin = input.SafetyMargin

	// --- 6. Promotion ---
	if input.PlannedMinimumN < 0 {
		return fmt.Errorf("planned-min cannot be negative (received %d)", input.PlannedMinimumN)
	}
	cfg.PlannedMinimumN = input.PlannedMinimumN

	// --- 7. Baseline store ---
	backend := schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidBaselineBackends[backend]; !ok {
		return fmt.Errorf("invalid baseline backend %q. must be sqlite, mysql, postgresql, or none", input.StoreBackend)
	}
	cfg.StoreBackend = backend
	cfg.StoreConnect = input.StoreConnect
	cfg.BaselineTag = input.BaselineTag

	// --- 8. Output surface ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	output := schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output format %q. must be text, csv, json, or parquet", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	useColors, err := parseColorOption(input.Color)
	if err != nil {
		return err
	}
	cfg.UseColors = useColors

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	return nil
}

// parseColorOption interprets the color flag values accepted by the CLI.
func parseColorOption(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "yes", "true", "1", "on":
		return true, nil
	case "no", "false", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid color option %q. must be yes/no/true/false/1/0", value)
	}
}
