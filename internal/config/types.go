// types.go
package config

// RawConfig mirrors the yaml balance-table schema. Every field is optional;
// the resolver overlays what is present onto the shipped defaults.
type RawConfig struct {
	Version     string                  `yaml:"version"`
	Thresholds  *ThresholdCfg           `yaml:"thresholds,omitempty"`
	Upgrades    map[string]UpgradeCfg   `yaml:"upgrades,omitempty"`
	Legendaries map[string]LegendaryCfg `yaml:"legendaries,omitempty"`
	Synergies   map[string]SynergyCfg   `yaml:"synergies,omitempty"`
	Player      *PlayerCfg              `yaml:"player,omitempty"`
	Notes       string                  `yaml:"notes,omitempty"`
}

// ThresholdCfg carries the global balance ceilings.
type ThresholdCfg struct {
	MaxDamage          *float64 `yaml:"max_damage,omitempty"`
	MaxDPS             *float64 `yaml:"max_dps,omitempty"`
	MaxDamageReduction *float64 `yaml:"max_damage_reduction,omitempty"`
}

// UpgradeCfg configures one stackable upgrade.
type UpgradeCfg struct {
	Base     *float64     `yaml:"base,omitempty"`
	Axis     string       `yaml:"axis,omitempty"` // damage | fire_rate | defense
	Diminish *DiminishCfg `yaml:"diminish,omitempty"`
	Cap      *int         `yaml:"cap,omitempty"`
}

// DiminishCfg configures an upgrade's diminishing-returns curve.
type DiminishCfg struct {
	Threshold     *int     `yaml:"threshold,omitempty"`
	ScalingFactor *float64 `yaml:"scaling_factor,omitempty"`
}

// LegendaryCfg configures one binary-active legendary adjustment.
type LegendaryCfg struct {
	DamageMultiplier   *float64 `yaml:"damage_multiplier,omitempty"`
	FireRateMultiplier *float64 `yaml:"fire_rate_multiplier,omitempty"`
	CritChanceBonus    *float64 `yaml:"crit_chance_bonus,omitempty"`
}

// SynergyCfg configures one synergy dampening factor.
type SynergyCfg struct {
	PowerReduction *float64 `yaml:"power_reduction,omitempty"`
}

// PlayerCfg carries the player base stats used to seed a run.
type PlayerCfg struct {
	Hull         *float64 `yaml:"hull,omitempty"`
	Shield       *float64 `yaml:"shield,omitempty"`
	Speed        *float64 `yaml:"speed,omitempty"`
	BaseDamage   *float64 `yaml:"base_damage,omitempty"`
	FireInterval *float64 `yaml:"fire_interval,omitempty"`
}
