package core

import (
	"math"

	"github.com/perfgate/perfgate/schema"
	"gonum.org/v1/gonum/stat/distuv"
)

// Planning defaults.
const (
	DefaultPower        = 0.80
	DefaultAlpha        = 0.05
	DefaultSafetyMargin = 1.6
)

// PlanParams are the inputs to sample size planning. EffectSizeTarget
// and RelativeStdDev are both relative to the metric mean, so only
// their ratio matters.
type PlanParams struct {
	EffectSizeTarget float64 // Smallest relative change worth detecting, e.g. 0.05 for 5%
	RelativeStdDev   float64 // Coefficient of variation of the measurement, e.g. 0.10 for 10%
	Power            float64 // Probability of detecting a true effect (default 0.80)
	Alpha            float64 // Two-sided significance level (default 0.05)
	SafetyMargin     float64 // Multiplier layered on the statistical minimum (default 1.6)
}

// withDefaults fills unset optional fields.
func (p PlanParams) withDefaults() PlanParams {
	if p.Power == 0 {
		p.Power = DefaultPower
	}
	if p.Alpha == 0 {
		p.Alpha = DefaultAlpha
	}
	if p.SafetyMargin == 0 {
		p.SafetyMargin = DefaultSafetyMargin
	}
	return p
}

// PlanSampleSize computes the minimum sample count for a two-sample
// comparison using the normal approximation power formula:
//
//	n = 2 * (z_{1-alpha/2} + z_{power})^2 * (sigma/delta)^2
//
// rounded up, plus a recommended count with the safety margin applied.
// Pure and deterministic: identical inputs give identical plans.
func PlanSampleSize(p PlanParams) (schema.PlannedSampleSize, error) {
	p = p.withDefaults()

	const op = "plan"
	if p.EffectSizeTarget <= 0 {
		return schema.PlannedSampleSize{}, invalidParam(op, "effect_size_target", p.EffectSizeTarget, "must be > 0")
	}
	if p.RelativeStdDev < 0 {
		return schema.PlannedSampleSize{}, invalidParam(op, "relative_stddev", p.RelativeStdDev, "must be >= 0")
	}
	if p.Power <= 0 || p.Power >= 1 {
		return schema.PlannedSampleSize{}, invalidParam(op, "power", p.Power, "must be in (0,1)")
	}
	if p.Alpha <= 0 || p.Alpha >= 1 {
		return schema.PlannedSampleSize{}, invalidParam(op, "alpha", p.Alpha, "must be in (0,1)")
	}
	if p.SafetyMargin < 1 {
		return schema.PlannedSampleSize{}, invalidParam(op, "safety_margin", p.SafetyMargin, "must be >= 1")
	}

	zAlpha := distuv.UnitNormal.Quantile(1 - p.Alpha/2)
	zPower := distuv.UnitNormal.Quantile(p.Power)
	ratio := p.RelativeStdDev / p.EffectSizeTarget
	raw := 2 * (zAlpha + zPower) * (zAlpha + zPower) * ratio * ratio

	// A zero-variance measurement still needs at least two samples to
	// define a standard deviation.
	minimum := int(math.Ceil(raw))
	if minimum < 2 {
		minimum = 2
	}
	recommended := int(math.Ceil(float64(minimum) * p.SafetyMargin))

	return schema.PlannedSampleSize{
		MinimumN:     minimum,
		RecommendedN: recommended,
		SafetyMargin: p.SafetyMargin,
		Power:        p.Power,
		Alpha:        p.Alpha,
	}, nil
}
