// Package settings holds the mutable per-run configuration: player base
// stats, the per-upgrade effect records, the active synergy set and the
// current build. One Repository belongs to exactly one run at a time; the
// package does no locking of its own.
package settings

import (
	"sort"

	"github.com/starblitz/balance-backend/internal/balance"
)

// PlayerStats are the base stats a run starts from. Plain data except for
// DamageReduction, which carries an invariant (see SetDamageReduction).
type PlayerStats struct {
	Hull            float64 `json:"hull"`
	Shield          float64 `json:"shield"`
	Speed           float64 `json:"speed"`
	BaseDamage      float64 `json:"base_damage"`
	FireInterval    float64 `json:"fire_interval"` // seconds between shots
	DamageReduction float64 `json:"damage_reduction"`
}

// EffectRecord is the declared effect of one upgrade pickup. The combat
// systems read these each frame; the balance evaluator never does.
type EffectRecord struct {
	Name            string  `json:"name"`
	DamagePercent   float64 `json:"damage_percent,omitempty"`
	FireRatePercent float64 `json:"fire_rate_percent,omitempty"`
	SpeedPercent    float64 `json:"speed_percent,omitempty"`
	DefensePercent  float64 `json:"defense_percent,omitempty"`
	ProjectileBonus int     `json:"projectile_bonus,omitempty"`
	Legendary       bool    `json:"legendary,omitempty"`
}

// Repository is the run-scoped settings holder. Create with NewRepository,
// mutate upgrade-by-upgrade during play, Reset at run end.
type Repository struct {
	Player   PlayerStats
	Effects  map[balance.UpgradeID]EffectRecord
	Active   map[balance.SynergyID]bool
	RunBuild balance.Build
}

// NewRepository returns a repository seeded with the default tables.
func NewRepository() *Repository {
	r := &Repository{}
	r.Reset()
	return r
}

// Reset restores default player stats and effect records and empties the
// build and synergy set. Full-object replace; no partial state survives.
func (r *Repository) Reset() {
	r.Player = defaultPlayer()
	r.Effects = defaultEffects()
	r.Active = make(map[balance.SynergyID]bool)
	r.RunBuild = make(balance.Build)
}

// SetDamageReduction clamps to [0, 0.5]; a run can never become more than
// half damage-immune no matter what writes it.
func (r *Repository) SetDamageReduction(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 0.5 {
		v = 0.5
	}
	r.Player.DamageReduction = v
}

// ActivateSynergy marks a synergy live for this run.
func (r *Repository) ActivateSynergy(id balance.SynergyID) {
	r.Active[id] = true
}

// DeactivateSynergy removes a synergy from the active set.
func (r *Repository) DeactivateSynergy(id balance.SynergyID) {
	delete(r.Active, id)
}

// ActiveSynergies returns the active set in sorted array form, the shape
// the save collaborator consumes.
func (r *Repository) ActiveSynergies() []balance.SynergyID {
	out := make([]balance.SynergyID, 0, len(r.Active))
	for id := range r.Active {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func defaultPlayer() PlayerStats {
	return PlayerStats{
		Hull:         100,
		Shield:       50,
		Speed:        220,
		BaseDamage:   10,
		FireInterval: 0.25,
	}
}

// defaultEffects declares the full upgrade catalog's effect records.
func defaultEffects() map[balance.UpgradeID]EffectRecord {
	return map[balance.UpgradeID]EffectRecord{
		balance.PowerShot:       {Name: "Power Shot", DamagePercent: 25},
		balance.RapidFire:       {Name: "Rapid Fire", FireRatePercent: 30},
		balance.HeavyBarrel:     {Name: "Heavy Barrel", DamagePercent: 40, SpeedPercent: -5},
		balance.Plating:         {Name: "Plating", DefensePercent: 6, SpeedPercent: -2},
		balance.Stabilizers:     {Name: "Stabilizers", DefensePercent: 4},
		balance.PiercingRounds:  {Name: "Piercing Rounds", DamagePercent: 15},
		balance.Overdrive:       {Name: "Overdrive", FireRatePercent: 15},
		balance.ShieldGenerator: {Name: "Shield Generator", DefensePercent: 5},
		balance.HairTrigger:     {Name: "Hair Trigger", FireRatePercent: 10},
		balance.SpreadShot:      {Name: "Spread Shot", ProjectileBonus: 2},
		balance.HomingMissiles:  {Name: "Homing Missiles", ProjectileBonus: 1},
		balance.Magnet:          {Name: "Magnet"},
		balance.NanoRepair:      {Name: "Nano Repair"},
		balance.CritScope:       {Name: "Crit Scope", DamagePercent: 10},
		balance.Ricochet:        {Name: "Ricochet"},
		balance.Afterburner:     {Name: "Afterburner", SpeedPercent: 20},
		balance.ClusterBomb:     {Name: "Cluster Bomb", ProjectileBonus: 4},
		balance.DroneBuddy:      {Name: "Drone Buddy", ProjectileBonus: 1},
		balance.GlassCannon:     {Name: "Glass Cannon", DamagePercent: 150, DefensePercent: -50, Legendary: true},
		balance.BulletHell:      {Name: "Bullet Hell", DamagePercent: -30, FireRatePercent: 200, Legendary: true},
	}
}
