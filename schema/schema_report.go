package schema

// RegressionVerdict classifies a comparison between a current run and a
// stored baseline. Criteria always lists every criterion that held,
// regardless of the final classification, so reports stay transparent
// about which signals fired.
type RegressionVerdict struct {
	Classification Classification `json:"classification"`
	Criteria       []Criterion    `json:"criteria"`
	// WeakSignal marks a mean shift that no other criterion corroborated.
	// The classification stays Unchanged but the flag keeps the ambiguity
	// visible instead of hiding it.
	WeakSignal bool `json:"weak_signal,omitempty"`
}

// HasCriterion reports whether the given criterion held.
func (v RegressionVerdict) HasCriterion(c Criterion) bool {
	for _, held := range v.Criteria {
		if held == c {
			return true
		}
	}
	return false
}

// AnalysisReport is the output of a single-run estimation: derived
// statistics, the bootstrap interval and full provenance.
type AnalysisReport struct {
	BenchmarkID string                 `json:"benchmark_id"`
	Unit        MetricUnit             `json:"unit"`
	Stats       SummaryStatistics      `json:"stats"`
	Interval    ConfidenceInterval     `json:"interval"`
	Resamples   int                    `json:"resamples"`
	WarmupCount int                    `json:"warmup_count,omitempty"`
	Context     ReproducibilityContext `json:"context"`
	// TargetViolation describes a breached absolute performance target,
	// when one was configured. Reported alongside the statistical result,
	// never merged into it.
	TargetViolation string `json:"target_violation,omitempty"`
}

// ComparisonReport is the output of a regression detection run: the
// current analysis, the baseline it was compared against, the effect
// size, the mean shift in baseline standard deviations, and the verdict.
type ComparisonReport struct {
	Current         AnalysisReport    `json:"current"`
	Baseline        BaselineRecord    `json:"baseline"`
	Effect          EffectSize        `json:"effect_size"`
	MeanShiftSigmas float64           `json:"mean_shift_sigmas"`
	Verdict         RegressionVerdict `json:"verdict"`
}
