package balance

import "sort"

// UpgradeID identifies one entry of the closed upgrade catalog.
// New upgrades are added here, never as free-form strings.
type UpgradeID string

const (
	PowerShot       UpgradeID = "power-shot"
	RapidFire       UpgradeID = "rapid-fire"
	HeavyBarrel     UpgradeID = "heavy-barrel"
	Plating         UpgradeID = "plating"
	Stabilizers     UpgradeID = "stabilizers"
	PiercingRounds  UpgradeID = "piercing-rounds"
	Overdrive       UpgradeID = "overdrive"
	ShieldGenerator UpgradeID = "shield-generator"
	HairTrigger     UpgradeID = "hair-trigger"
	SpreadShot      UpgradeID = "spread-shot"
	HomingMissiles  UpgradeID = "homing-missiles"
	Magnet          UpgradeID = "magnet"
	NanoRepair      UpgradeID = "nano-repair"
	CritScope       UpgradeID = "crit-scope"
	Ricochet        UpgradeID = "ricochet"
	Afterburner     UpgradeID = "afterburner"
	ClusterBomb     UpgradeID = "cluster-bomb"
	DroneBuddy      UpgradeID = "drone-buddy"

	// Legendaries: binary, never stacked.
	GlassCannon UpgradeID = "glass-cannon"
	BulletHell  UpgradeID = "bullet-hell"
)

// AllUpgrades lists the full catalog in a stable order, for exhaustive
// iteration (simulation picks, settings defaults, shop offers).
var AllUpgrades = []UpgradeID{
	PowerShot, RapidFire, HeavyBarrel, Plating, Stabilizers,
	PiercingRounds, Overdrive, ShieldGenerator, HairTrigger, SpreadShot,
	HomingMissiles, Magnet, NanoRepair, CritScope, Ricochet,
	Afterburner, ClusterBomb, DroneBuddy, GlassCannon, BulletHell,
}

// SynergyID identifies a cross-upgrade combination bonus.
type SynergyID string

const (
	SynergyRailgun   SynergyID = "railgun"
	SynergyVampire   SynergyID = "vampire"
	SynergyShockwave SynergyID = "shockwave"
)

// Build maps upgrade ids to the stack count acquired this run.
// A missing key means zero stacks. The zero value (nil) is a valid empty build.
type Build map[UpgradeID]int

// Stacks returns the stack count for id; 0 if absent.
func (b Build) Stacks(id UpgradeID) int { return b[id] }

// With returns a copy of b with add more stacks of id.
// The receiver is never mutated; callers use this for speculative evaluation.
func (b Build) With(id UpgradeID, add int) Build {
	out := make(Build, len(b)+1)
	for k, v := range b {
		out[k] = v
	}
	out[id] += add
	return out
}

// Clone returns a deep copy of the build.
func (b Build) Clone() Build {
	out := make(Build, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// IDs returns the ids present in the build (count > 0), sorted, for
// deterministic reports.
func (b Build) IDs() []UpgradeID {
	out := make([]UpgradeID, 0, len(b))
	for id, n := range b {
		if n > 0 {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
