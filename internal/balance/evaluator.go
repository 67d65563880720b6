package balance

import "math"

// Evaluator computes derived combat multipliers from a Build using an
// injected Config. Every method is a pure function of its arguments and the
// table; the struct holds no mutable state, so one Evaluator may be shared
// by any number of callers.
type Evaluator struct {
	cfg Config
}

// NewEvaluator wraps cfg. The tables inside cfg are referenced, not copied;
// the caller must treat them as frozen after this point.
func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Config returns the table the evaluator runs on.
func (e *Evaluator) Config() Config { return e.cfg }

// DiminishedMultiplier returns the effective multiplier for `stacks` stacks
// of an upgrade with per-stack base multiplier `base`.
//   - No diminish entry, or stacks <= threshold: plain compounding base^stacks.
//   - Past threshold, each extra stack contributes a reduced increment
//     (base-1)*scalingFactor instead of (base-1).
//
// The result is strictly increasing in stacks, with strictly shrinking
// marginal gain once stacks exceed the threshold.
func (e *Evaluator) DiminishedMultiplier(id UpgradeID, stacks int, base float64) float64 {
	if stacks <= 0 {
		return 1
	}
	d, ok := e.cfg.Diminish[id]
	if !ok || stacks <= d.Threshold {
		return math.Pow(base, float64(stacks))
	}
	full := math.Pow(base, float64(d.Threshold))
	scaled := 1 + (base-1)*d.ScalingFactor
	return full * math.Pow(scaled, float64(stacks-d.Threshold))
}

// CanStack reports whether one more stack of id may be added on top of
// current. True when no cap is configured; reaching the cap blocks further
// adds (cap 6 means the 6th stack is the last).
func (e *Evaluator) CanStack(id UpgradeID, current int) bool {
	limit, ok := e.cfg.Caps[id]
	if !ok {
		return true
	}
	return current < limit
}

// MaxDamageMultiplier folds the damage-axis stackables and any active
// legendary damage terms into one multiplier. An empty build yields 1.
func (e *Evaluator) MaxDamageMultiplier(b Build) float64 {
	return e.axisMultiplier(b, AxisDamage)
}

// MaxDPSMultiplier is the fire-rate aggregate, tracked independently of
// damage because some upgrades trade one axis for the other.
func (e *Evaluator) MaxDPSMultiplier(b Build) float64 {
	return e.axisMultiplier(b, AxisFireRate)
}

func (e *Evaluator) axisMultiplier(b Build, axis Axis) float64 {
	total := 1.0
	for id, s := range e.cfg.Stackables {
		if s.Axis != axis {
			continue
		}
		n := b.Stacks(id)
		if n <= 0 {
			continue
		}
		total *= e.DiminishedMultiplier(id, n, s.Base)
	}
	for id, l := range e.cfg.Legendaries {
		if b.Stacks(id) <= 0 {
			continue
		}
		// Legendaries are binary-active: a flat term, never compounded.
		switch axis {
		case AxisDamage:
			if l.DamageMultiplier > 0 {
				total *= l.DamageMultiplier
			}
		case AxisFireRate:
			if l.FireRateMultiplier > 0 {
				total *= l.FireRateMultiplier
			}
		}
	}
	return total
}

// MaxDefenseMultiplier returns the build's damage-reduction fraction.
// Defensive stackables compound through their own diminishing curves; the
// combined reduction is then hard-clamped to MaxDamageReduction so no build
// can close on invulnerability. An empty build yields 0.
func (e *Evaluator) MaxDefenseMultiplier(b Build) float64 {
	total := 1.0
	for id, s := range e.cfg.Stackables {
		if s.Axis != AxisDefense {
			continue
		}
		n := b.Stacks(id)
		if n <= 0 {
			continue
		}
		total *= e.DiminishedMultiplier(id, n, s.Base)
	}
	reduction := total - 1
	if reduction < 0 {
		reduction = 0
	}
	if reduction > e.cfg.MaxDamageReduction {
		reduction = e.cfg.MaxDamageReduction
	}
	return reduction
}
