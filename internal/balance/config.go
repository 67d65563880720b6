package balance

// Axis tells which aggregate a stackable upgrade contributes to.
type Axis string

const (
	AxisDamage   Axis = "damage"
	AxisFireRate Axis = "fire_rate"
	AxisDefense  Axis = "defense"
)

// StackableEntry describes a repeatable upgrade: its per-stack multiplier
// (> 1) and the aggregate it feeds.
type StackableEntry struct {
	Base float64
	Axis Axis
}

// DiminishEntry bounds an upgrade's scaling: stacks past Threshold only
// contribute (Base-1)*ScalingFactor per stack. ScalingFactor is in (0,1).
type DiminishEntry struct {
	Threshold     int
	ScalingFactor float64
}

// LegendaryEntry is the fixed adjustment of a binary-active legendary.
// Zero fields mean "no adjustment on that axis".
type LegendaryEntry struct {
	DamageMultiplier   float64 `json:"damage_multiplier,omitempty"`
	FireRateMultiplier float64 `json:"fire_rate_multiplier,omitempty"`
	CritChanceBonus    float64 `json:"crit_chance_bonus,omitempty"`
}

// SynergyEntry dampens a combination bonus by PowerReduction in (0,1).
type SynergyEntry struct {
	PowerReduction float64
}

// Config is the full balance table an Evaluator runs on. It is built once
// (from Default or the config loader) and must not be mutated afterwards;
// use Clone when a caller needs a private copy.
type Config struct {
	MaxDamage          float64 // global ceiling on the damage aggregate
	MaxDPS             float64 // global ceiling on the fire-rate aggregate
	MaxDamageReduction float64 // hard clamp on the defense aggregate

	Stackables  map[UpgradeID]StackableEntry
	Diminish    map[UpgradeID]DiminishEntry
	Caps        map[UpgradeID]int
	Legendaries map[UpgradeID]LegendaryEntry
	Synergies   map[SynergyID]SynergyEntry
}

// Clone produces a defensive copy so callers can overlay changes without
// touching the shared table.
func (c Config) Clone() Config {
	out := c
	out.Stackables = make(map[UpgradeID]StackableEntry, len(c.Stackables))
	for k, v := range c.Stackables {
		out.Stackables[k] = v
	}
	out.Diminish = make(map[UpgradeID]DiminishEntry, len(c.Diminish))
	for k, v := range c.Diminish {
		out.Diminish[k] = v
	}
	out.Caps = make(map[UpgradeID]int, len(c.Caps))
	for k, v := range c.Caps {
		out.Caps[k] = v
	}
	out.Legendaries = make(map[UpgradeID]LegendaryEntry, len(c.Legendaries))
	for k, v := range c.Legendaries {
		out.Legendaries[k] = v
	}
	out.Synergies = make(map[SynergyID]SynergyEntry, len(c.Synergies))
	for k, v := range c.Synergies {
		out.Synergies[k] = v
	}
	return out
}

// Default returns the shipped balance table. The config loader starts from
// this and overlays whatever the yaml files provide.
func Default() Config {
	return Config{
		MaxDamage:          8.0,
		MaxDPS:             20.0,
		MaxDamageReduction: 0.5,

		Stackables: map[UpgradeID]StackableEntry{
			PowerShot:       {Base: 1.25, Axis: AxisDamage},
			HeavyBarrel:     {Base: 1.40, Axis: AxisDamage},
			PiercingRounds:  {Base: 1.15, Axis: AxisDamage},
			CritScope:       {Base: 1.10, Axis: AxisDamage},
			RapidFire:       {Base: 1.30, Axis: AxisFireRate},
			Overdrive:       {Base: 1.15, Axis: AxisFireRate},
			HairTrigger:     {Base: 1.10, Axis: AxisFireRate},
			Plating:         {Base: 1.06, Axis: AxisDefense},
			Stabilizers:     {Base: 1.04, Axis: AxisDefense},
			ShieldGenerator: {Base: 1.05, Axis: AxisDefense},
		},

		Diminish: map[UpgradeID]DiminishEntry{
			PowerShot:       {Threshold: 3, ScalingFactor: 0.5},
			HeavyBarrel:     {Threshold: 2, ScalingFactor: 0.4},
			PiercingRounds:  {Threshold: 4, ScalingFactor: 0.6},
			CritScope:       {Threshold: 4, ScalingFactor: 0.6},
			RapidFire:       {Threshold: 3, ScalingFactor: 0.5},
			Overdrive:       {Threshold: 3, ScalingFactor: 0.5},
			HairTrigger:     {Threshold: 4, ScalingFactor: 0.6},
			Plating:         {Threshold: 3, ScalingFactor: 0.5},
			Stabilizers:     {Threshold: 3, ScalingFactor: 0.5},
			ShieldGenerator: {Threshold: 3, ScalingFactor: 0.5},
		},

		// Every cap is >= the diminish threshold for the same id: caps bound
		// upgrades that already scale past normal returns.
		Caps: map[UpgradeID]int{
			PowerShot:       6,
			HeavyBarrel:     3,
			PiercingRounds:  6,
			CritScope:       6,
			RapidFire:       6,
			Overdrive:       5,
			HairTrigger:     6,
			Plating:         8,
			Stabilizers:     8,
			ShieldGenerator: 6,
			GlassCannon:     1,
			BulletHell:      1,
		},

		Legendaries: map[UpgradeID]LegendaryEntry{
			GlassCannon: {DamageMultiplier: 2.5, CritChanceBonus: 0.08},
			BulletHell:  {DamageMultiplier: 0.7, FireRateMultiplier: 3.0},
		},

		Synergies: map[SynergyID]SynergyEntry{
			SynergyRailgun:   {PowerReduction: 0.3},
			SynergyVampire:   {PowerReduction: 0.25},
			SynergyShockwave: {PowerReduction: 0.2},
		},
	}
}
