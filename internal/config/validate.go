package config

import (
	"fmt"
	"strings"
)

// ValidateRaw checks semantic constraints of a RawConfig before it is
// resolved into a live balance table.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	if cfg.Thresholds != nil {
		if cfg.Thresholds.MaxDamage != nil && *cfg.Thresholds.MaxDamage <= 0 {
			errs = append(errs, "thresholds.max_damage must be > 0")
		}
		if cfg.Thresholds.MaxDPS != nil && *cfg.Thresholds.MaxDPS <= 0 {
			errs = append(errs, "thresholds.max_dps must be > 0")
		}
		if cfg.Thresholds.MaxDamageReduction != nil {
			v := *cfg.Thresholds.MaxDamageReduction
			if v <= 0 || v > 1 {
				errs = append(errs, "thresholds.max_damage_reduction must be in (0,1]")
			}
		}
	}

	for id, u := range cfg.Upgrades {
		if u.Base != nil && *u.Base <= 1 {
			errs = append(errs, fmt.Sprintf("upgrades.%s.base must be > 1", id))
		}
		switch u.Axis {
		case "", "damage", "fire_rate", "defense":
		default:
			errs = append(errs, fmt.Sprintf("upgrades.%s.axis must be one of: damage, fire_rate, defense", id))
		}
		if u.Diminish != nil {
			if u.Diminish.Threshold != nil && *u.Diminish.Threshold < 0 {
				errs = append(errs, fmt.Sprintf("upgrades.%s.diminish.threshold must be >= 0", id))
			}
			if u.Diminish.ScalingFactor != nil {
				v := *u.Diminish.ScalingFactor
				if v <= 0 || v >= 1 {
					errs = append(errs, fmt.Sprintf("upgrades.%s.diminish.scaling_factor must be in (0,1)", id))
				}
			}
		}
		if u.Cap != nil {
			if *u.Cap < 1 {
				errs = append(errs, fmt.Sprintf("upgrades.%s.cap must be >= 1", id))
			}
			// Caps exist to bound upgrades that already exceed normal
			// scaling, so a cap below the diminish threshold is a mistake.
			if u.Diminish != nil && u.Diminish.Threshold != nil && *u.Cap < *u.Diminish.Threshold {
				errs = append(errs, fmt.Sprintf("upgrades.%s.cap must be >= diminish.threshold", id))
			}
		}
	}

	for id, l := range cfg.Legendaries {
		if l.DamageMultiplier != nil && *l.DamageMultiplier <= 0 {
			errs = append(errs, fmt.Sprintf("legendaries.%s.damage_multiplier must be > 0", id))
		}
		if l.FireRateMultiplier != nil && *l.FireRateMultiplier <= 0 {
			errs = append(errs, fmt.Sprintf("legendaries.%s.fire_rate_multiplier must be > 0", id))
		}
		if l.CritChanceBonus != nil {
			v := *l.CritChanceBonus
			if v < 0 || v >= 1 {
				errs = append(errs, fmt.Sprintf("legendaries.%s.crit_chance_bonus must be in [0,1)", id))
			}
		}
	}

	for id, s := range cfg.Synergies {
		if s.PowerReduction != nil {
			v := *s.PowerReduction
			if v <= 0 || v >= 1 {
				errs = append(errs, fmt.Sprintf("synergies.%s.power_reduction must be in (0,1)", id))
			}
		}
	}

	if cfg.Player != nil {
		if cfg.Player.Hull != nil && *cfg.Player.Hull <= 0 {
			errs = append(errs, "player.hull must be > 0")
		}
		if cfg.Player.FireInterval != nil && *cfg.Player.FireInterval <= 0 {
			errs = append(errs, "player.fire_interval must be > 0")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
