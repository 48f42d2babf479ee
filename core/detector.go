package core

import (
	"errors"
	"math"

	"github.com/perfgate/perfgate/schema"
)

// Detection defaults.
const (
	DefaultMeanShiftSigma     = 2.0
	DefaultEffectThreshold    = 0.5
	DefaultCorroborationCount = 1
)

// DetectionPolicy tunes the multi-criterion decision rule. The default
// combination rule is "mean shift plus at least one corroborating
// criterion"; raising CorroborationCount to 2 requires all three
// criteria to agree.
type DetectionPolicy struct {
	MeanShiftSigma     float64 // Mean shift threshold in baseline standard deviations (default 2.0)
	EffectThreshold    float64 // |Cohen's d| above which the effect criterion holds (default 0.5)
	CorroborationCount int     // Criteria besides mean shift required for a verdict (default 1)
}

// withDefaults fills unset optional fields.
func (p DetectionPolicy) withDefaults() DetectionPolicy {
	if p.MeanShiftSigma == 0 {
		p.MeanShiftSigma = DefaultMeanShiftSigma
	}
	if p.EffectThreshold == 0 {
		p.EffectThreshold = DefaultEffectThreshold
	}
	if p.CorroborationCount == 0 {
		p.CorroborationCount = DefaultCorroborationCount
	}
	return p
}

// CurrentRun pairs a run's summary statistics with its bootstrap
// interval and metric unit for comparison against a baseline.
type CurrentRun struct {
	Stats    schema.SummaryStatistics
	Interval schema.ConfidenceInterval
	Unit     schema.MetricUnit
}

// DetectRegression applies the multi-criterion decision rule to a
// current run and a stored baseline.
//
// All three criteria are evaluated independently and every criterion
// that held is reported, whatever the final classification. The verdict
// is Regressed when the mean shift criterion holds, enough other
// criteria corroborate it, and the shift direction is a slowdown for
// the metric unit; the symmetric favorable case is Improved. A mean
// shift with no corroboration stays Unchanged but is flagged as a weak
// signal. A current run smaller than the baseline's planned minimum is
// classified InsufficientData outright: the detector refuses a
// confident verdict instead of silently reporting Unchanged.
func DetectRegression(cur CurrentRun, baseline schema.BaselineRecord, pol DetectionPolicy) schema.RegressionVerdict {
	pol = pol.withDefaults()

	// NaN or zero baseline stddev degrades gracefully here: NaN
	// comparisons are false, a zero divisor gives an infinite shift.
	shiftSigmas := math.Abs(cur.Stats.Mean-baseline.Stats.Mean) / baseline.Stats.StdDev
	meanShift := shiftSigmas > pol.MeanShiftSigma

	ciNonOverlap := !cur.Interval.Overlaps(baseline.Interval)

	largeEffect := false
	effect, err := CompareEffect(cur.Stats, baseline.Stats)
	if err == nil || errors.Is(err, ErrDegenerateVariance) {
		largeEffect = math.Abs(effect.CohensD) > pol.EffectThreshold
	}

	var held []schema.Criterion
	if meanShift {
		held = append(held, schema.MeanShiftCriterion)
	}
	if ciNonOverlap {
		held = append(held, schema.CiNonOverlapCriterion)
	}
	if largeEffect {
		held = append(held, schema.LargeEffectCriterion)
	}

	verdict := schema.RegressionVerdict{Criteria: held}

	if baseline.PlannedMinimumN > 0 && cur.Stats.N < baseline.PlannedMinimumN {
		verdict.Classification = schema.InsufficientData
		return verdict
	}

	corroborating := 0
	if ciNonOverlap {
		corroborating++
	}
	if largeEffect {
		corroborating++
	}

	switch {
	case meanShift && corroborating >= pol.CorroborationCount:
		delta := cur.Stats.Mean - baseline.Stats.Mean
		worse := (delta > 0) == schema.WorseIsIncrease(cur.Unit)
		if worse {
			verdict.Classification = schema.Regressed
		} else {
			verdict.Classification = schema.Improved
		}
	case meanShift:
		verdict.Classification = schema.Unchanged
		verdict.WeakSignal = true
	default:
		verdict.Classification = schema.Unchanged
	}
	return verdict
}
