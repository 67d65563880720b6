// resolve.go
package config

import (
	"github.com/starblitz/balance-backend/internal/balance"
)

// Overrides carries per-request tuning knobs layered on top of the files,
// e.g. a tighter ceiling while probing a candidate nerf.
type Overrides struct {
	MaxDamage *float64
	MaxDPS    *float64
}

// Resolve loads and merges the table files for mode/profile, validates the
// result, and normalizes it into a balance.Config. The shipped defaults are
// the base layer: the files only need to state what differs.
func (l *Loader) Resolve(mode, profile string, o Overrides) (RawConfig, balance.Config, error) {
	raw, err := l.LoadMerged(mode, profile)
	if err != nil {
		return RawConfig{}, balance.Config{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return RawConfig{}, balance.Config{}, err
	}

	cfg := balance.Default().Clone()

	if raw.Thresholds != nil {
		if raw.Thresholds.MaxDamage != nil {
			cfg.MaxDamage = *raw.Thresholds.MaxDamage
		}
		if raw.Thresholds.MaxDPS != nil {
			cfg.MaxDPS = *raw.Thresholds.MaxDPS
		}
		if raw.Thresholds.MaxDamageReduction != nil {
			cfg.MaxDamageReduction = *raw.Thresholds.MaxDamageReduction
		}
	}

	for id, u := range raw.Upgrades {
		uid := balance.UpgradeID(id)
		entry := cfg.Stackables[uid]
		if u.Base != nil {
			entry.Base = *u.Base
		}
		if u.Axis != "" {
			entry.Axis = balance.Axis(u.Axis)
		}
		if entry.Base > 1 && entry.Axis != "" {
			cfg.Stackables[uid] = entry
		}
		if u.Diminish != nil {
			d := cfg.Diminish[uid]
			if u.Diminish.Threshold != nil {
				d.Threshold = *u.Diminish.Threshold
			}
			if u.Diminish.ScalingFactor != nil {
				d.ScalingFactor = *u.Diminish.ScalingFactor
			}
			cfg.Diminish[uid] = d
		}
		if u.Cap != nil {
			cfg.Caps[uid] = *u.Cap
		}
	}

	for id, leg := range raw.Legendaries {
		uid := balance.UpgradeID(id)
		entry := cfg.Legendaries[uid]
		if leg.DamageMultiplier != nil {
			entry.DamageMultiplier = *leg.DamageMultiplier
		}
		if leg.FireRateMultiplier != nil {
			entry.FireRateMultiplier = *leg.FireRateMultiplier
		}
		if leg.CritChanceBonus != nil {
			entry.CritChanceBonus = *leg.CritChanceBonus
		}
		cfg.Legendaries[uid] = entry
	}

	for id, s := range raw.Synergies {
		if s.PowerReduction != nil {
			cfg.Synergies[balance.SynergyID(id)] = balance.SynergyEntry{PowerReduction: *s.PowerReduction}
		}
	}

	// query overrides last
	if o.MaxDamage != nil && *o.MaxDamage > 0 {
		cfg.MaxDamage = *o.MaxDamage
	}
	if o.MaxDPS != nil && *o.MaxDPS > 0 {
		cfg.MaxDPS = *o.MaxDPS
	}

	return raw, cfg, nil
}
