package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/internal/ingest"
	"github.com/perfgate/perfgate/internal/outwriter"
	"github.com/perfgate/perfgate/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// NewSampleSource builds the harness input source from configuration.
func NewSampleSource(cfg *contract.Config) contract.SampleSource {
	return &ingest.FileSource{
		Path:        cfg.SamplesPath,
		BenchmarkID: cfg.BenchmarkID,
		Unit:        cfg.Unit,
		WarmupCount: cfg.WarmupCount,
		SampleLimit: cfg.SampleLimit,
	}
}

// GetAnalysisReport runs the single-run estimation pipeline: ingest,
// summary statistics, bootstrap interval and provenance. Shared by the
// analyze and promote commands and by the MCP tools.
func GetAnalysisReport(ctx context.Context, cfg *contract.Config, source contract.SampleSource) (*schema.AnalysisReport, error) {
	set, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	stats, interval, err := BootstrapEstimate(ctx, set, BootstrapOptions{
		Confidence: cfg.Confidence,
		Resamples:  cfg.Resamples,
		Seed:       cfg.Seed,
		Workers:    cfg.Workers,
	})
	if err != nil {
		return nil, err
	}

	report := &schema.AnalysisReport{
		BenchmarkID: set.BenchmarkID,
		Unit:        set.Unit,
		Stats:       stats,
		Interval:    interval,
		Resamples:   cfg.Resamples,
		WarmupCount: set.WarmupCount,
		Context:     schema.NewReproducibilityContext(cfg.Seed, cfg.CommitHash, cfg.HardwareTag),
	}
	report.TargetViolation = targetViolation(cfg.MaxMean, set.Unit, stats.Mean)
	return report, nil
}

// targetViolation describes a breached absolute target for the mean, or
// returns "" when no target is set or the target holds. For duration
// metrics the target is a ceiling; for throughput metrics it is a floor.
func targetViolation(target float64, unit schema.MetricUnit, mean float64) string {
	if target <= 0 {
		return ""
	}
	if schema.WorseIsIncrease(unit) {
		if mean > target {
			return fmt.Sprintf("mean %g exceeds target %g %s", mean, target, unit)
		}
		return ""
	}
	if mean < target {
		return fmt.Sprintf("mean %g below target %g %s", mean, target, unit)
	}
	return ""
}

// GetComparisonReport runs the full detection pipeline: analyze the
// current samples, resolve the baseline, and apply the decision rule.
func GetComparisonReport(ctx context.Context, cfg *contract.Config, source contract.SampleSource, store contract.BaselineStore) (*schema.ComparisonReport, error) {
	current, err := GetAnalysisReport(ctx, cfg, source)
	if err != nil {
		return nil, err
	}

	baseline, err := resolveBaseline(ctx, cfg, store, current.BenchmarkID)
	if err != nil {
		return nil, err
	}

	// A degenerate variance still yields a usable signed effect size.
	effect, err := CompareEffect(current.Stats, baseline.Stats)
	if err != nil && !errors.Is(err, ErrDegenerateVariance) {
		return nil, err
	}

	verdict := DetectRegression(
		CurrentRun{Stats: current.Stats, Interval: current.Interval, Unit: current.Unit},
		*baseline,
		DetectionPolicy{
			MeanShiftSigma:     cfg.MeanShiftSigma,
			EffectThreshold:    cfg.EffectThreshold,
			CorroborationCount: cfg.CorroborationCount,
		},
	)

	return &schema.ComparisonReport{
		Current:         *current,
		Baseline:        *baseline,
		Effect:          effect,
		MeanShiftSigmas: shiftSigmas(current.Stats, baseline.Stats),
		Verdict:         verdict,
	}, nil
}

// resolveBaseline loads the latest record, or a dated one when a tag
// was configured. A missing baseline is an error at this level: the
// detect command needs something to compare against.
func resolveBaseline(ctx context.Context, cfg *contract.Config, store contract.BaselineStore, benchmarkID string) (*schema.BaselineRecord, error) {
	var baseline *schema.BaselineRecord
	var err error
	if cfg.BaselineTag != "" {
		baseline, err = store.LoadAt(ctx, benchmarkID, cfg.BaselineTag)
	} else {
		baseline, err = store.Load(ctx, benchmarkID)
	}
	if err != nil {
		return nil, err
	}
	if baseline == nil {
		if cfg.BaselineTag != "" {
			return nil, fmt.Errorf("no baseline found for benchmark %q at tag %q. Promote one first with 'perfgate baseline promote'", benchmarkID, cfg.BaselineTag)
		}
		return nil, fmt.Errorf("no baseline found for benchmark %q. Promote one first with 'perfgate baseline promote'", benchmarkID)
	}
	return baseline, nil
}

// shiftSigmas reports the absolute mean shift in baseline standard
// deviations, mirroring the mean shift criterion's input.
func shiftSigmas(cur, baseline schema.SummaryStatistics) float64 {
	return math.Abs(cur.Mean-baseline.Mean) / baseline.StdDev
}

// ExecuteAnalyze runs the estimation pipeline and prints the report.
// It serves as the main entry point for the 'analyze' command.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config) error {
	report, err := GetAnalysisReport(ctx, cfg, NewSampleSource(cfg))
	if err != nil {
		return err
	}
	return outwriter.PrintAnalysisReport(report, cfg)
}

// ExecuteDetect runs the detection pipeline, prints the comparison and
// returns the report so the command layer can map the verdict to an
// exit code.
func ExecuteDetect(ctx context.Context, cfg *contract.Config, store contract.BaselineStore) (*schema.ComparisonReport, error) {
	report, err := GetComparisonReport(ctx, cfg, NewSampleSource(cfg), store)
	if err != nil {
		return nil, err
	}
	if err := outwriter.PrintComparisonReport(report, cfg); err != nil {
		return nil, err
	}
	return report, nil
}

// ExecutePlan computes the sample size recommendation and prints it.
// It serves as the main entry point for the 'plan' command.
func ExecutePlan(_ context.Context, cfg *contract.Config) error {
	plan, err := PlanSampleSize(PlanParams{
		EffectSizeTarget: cfg.EffectTarget,
		RelativeStdDev:   cfg.RelStdDev,
		Power:            cfg.Power,
		Alpha:            cfg.Alpha,
		SafetyMargin:     cfg.SafetyMargin,
	})
	if err != nil {
		return err
	}
	return outwriter.PrintPlanResult(plan, cfg)
}

// ExecutePromote analyzes the current samples and appends the result as
// a new baseline record, moving the "latest" pointer to it.
func ExecutePromote(ctx context.Context, cfg *contract.Config, store contract.BaselineStore) error {
	report, err := GetAnalysisReport(ctx, cfg, NewSampleSource(cfg))
	if err != nil {
		return err
	}

	plannedMinimum := cfg.PlannedMinimumN
	if plannedMinimum == 0 {
		plannedMinimum = contract.DefaultPlannedMinimum
	}

	record := schema.BaselineRecord{
		BenchmarkID:     report.BenchmarkID,
		Unit:            report.Unit,
		Stats:           report.Stats,
		Interval:        report.Interval,
		Resamples:       report.Resamples,
		PlannedMinimumN: plannedMinimum,
		Context:         report.Context,
		CreatedAt:       time.Now().UTC(),
	}
	if err := store.Save(ctx, record); err != nil {
		return err
	}

	fmt.Printf("Promoted baseline for %s (mean %g %s, n=%d)\n",
		record.BenchmarkID, record.Stats.Mean, record.Unit, record.Stats.N)
	return nil
}

// ExecuteBaselineList prints the stored history for a benchmark, or for
// every benchmark when none is configured.
func ExecuteBaselineList(ctx context.Context, cfg *contract.Config, store contract.BaselineStore) error {
	records, err := store.List(ctx, cfg.BenchmarkID)
	if err != nil {
		return err
	}
	return outwriter.PrintBaselineList(records, cfg)
}

// ExecuteBaselineClear removes stored history for a benchmark, or
// everything when none is configured.
func ExecuteBaselineClear(ctx context.Context, cfg *contract.Config, store contract.BaselineStore) error {
	if err := store.Clear(ctx, cfg.BenchmarkID); err != nil {
		return err
	}
	if cfg.BenchmarkID == "" {
		fmt.Println("Cleared all baseline records")
	} else {
		fmt.Printf("Cleared baseline records for %s\n", cfg.BenchmarkID)
	}
	return nil
}

// ExecuteMetrics prints definitions of the reported statistics and
// detection criteria. It serves as the main entry point for the
// 'metrics' command.
func ExecuteMetrics(_ context.Context, cfg *contract.Config) error {
	return outwriter.PrintMetricsDefinitions(cfg)
}
