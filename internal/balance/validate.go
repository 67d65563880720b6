package balance

import "fmt"

// Metrics is a recomputed-on-demand snapshot of the three aggregates.
type Metrics struct {
	MaxDamage       float64 `json:"max_damage"`
	MaxDPS          float64 `json:"max_dps"`
	DamageReduction float64 `json:"damage_reduction"`
}

// ValidationResult reports whether a build stays inside the global balance
// ceilings, with one human-readable reason per breach.
type ValidationResult struct {
	Valid   bool     `json:"valid"`
	Reasons []string `json:"reasons,omitempty"`
	Metrics Metrics  `json:"metrics"`
}

// ValidateCombination is the fast form: true iff the build's damage and
// fire-rate aggregates both stay at or under the global ceilings. The two
// thresholds are independent of which upgrades produced the multipliers.
func (e *Evaluator) ValidateCombination(b Build) bool {
	return e.MaxDamageMultiplier(b) <= e.cfg.MaxDamage &&
		e.MaxDPSMultiplier(b) <= e.cfg.MaxDPS
}

// ValidateCombinationDetailed recomputes damage, DPS and defense and
// collects a reason string for each breached ceiling. Defense is reported
// but never invalidates on its own; it is already clamped at the source.
func (e *Evaluator) ValidateCombinationDetailed(b Build) ValidationResult {
	m := Metrics{
		MaxDamage:       e.MaxDamageMultiplier(b),
		MaxDPS:          e.MaxDPSMultiplier(b),
		DamageReduction: e.MaxDefenseMultiplier(b),
	}
	var reasons []string
	if m.MaxDamage > e.cfg.MaxDamage {
		reasons = append(reasons, fmt.Sprintf("damage multiplier %.2fx exceeds %.1fx cap", m.MaxDamage, e.cfg.MaxDamage))
	}
	if m.MaxDPS > e.cfg.MaxDPS {
		reasons = append(reasons, fmt.Sprintf("fire rate multiplier %.2fx exceeds %.1fx cap", m.MaxDPS, e.cfg.MaxDPS))
	}
	return ValidationResult{Valid: len(reasons) == 0, Reasons: reasons, Metrics: m}
}

// CanSafelyAddUpgrade reports whether adding `add` more stacks of id keeps
// the build legal. The stacking cap is checked first; a cap breach returns false
// without evaluating any multiplier. Otherwise a hypothetical build is
// validated against the global ceilings. The input build is never mutated;
// callers apply the add themselves only after a true verdict.
func (e *Evaluator) CanSafelyAddUpgrade(b Build, id UpgradeID, add int) bool {
	if add <= 0 {
		return e.ValidateCombination(b)
	}
	if limit, ok := e.cfg.Caps[id]; ok && b.Stacks(id)+add > limit {
		return false
	}
	return e.ValidateCombination(b.With(id, add))
}

// Status labels used by PowerSummary. "Near limit" starts at 90% of either
// offensive ceiling.
const (
	StatusBalanced    = "Balanced"
	StatusNearLimit   = "Near limit"
	StatusOverpowered = "Overpowered"
)

// PowerSummary formats a one-line diagnostic report of the three aggregates
// plus an overall status label. For dev tooling, not gameplay logic.
func (e *Evaluator) PowerSummary(b Build) string {
	m := Metrics{
		MaxDamage:       e.MaxDamageMultiplier(b),
		MaxDPS:          e.MaxDPSMultiplier(b),
		DamageReduction: e.MaxDefenseMultiplier(b),
	}
	status := StatusBalanced
	switch {
	case m.MaxDamage > e.cfg.MaxDamage || m.MaxDPS > e.cfg.MaxDPS:
		status = StatusOverpowered
	case m.MaxDamage > 0.9*e.cfg.MaxDamage || m.MaxDPS > 0.9*e.cfg.MaxDPS:
		status = StatusNearLimit
	}
	return fmt.Sprintf("damage %.2fx/%.1fx, fire rate %.2fx/%.1fx, damage reduction %.0f%% - %s",
		m.MaxDamage, e.cfg.MaxDamage, m.MaxDPS, e.cfg.MaxDPS, m.DamageReduction*100, status)
}
