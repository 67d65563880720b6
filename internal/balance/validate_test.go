package balance

import (
	"strings"
	"testing"
)

// overloadedBuild is well past the 8x damage ceiling:
// power-shot 2.78 * heavy-barrel 2.27 * glass-cannon 2.5 * bullet-hell 0.7 ≈ 11x
func overloadedBuild() Build {
	return Build{
		PowerShot:   6,
		RapidFire:   6,
		HeavyBarrel: 3,
		GlassCannon: 1,
		BulletHell:  1,
	}
}

func TestValidateCombinationRejectsOverload(t *testing.T) {
	ev := NewEvaluator(Default())
	b := overloadedBuild()
	if dmg := ev.MaxDamageMultiplier(b); dmg <= 8.0 {
		t.Fatalf("expected damage > 8.0, got %f", dmg)
	}
	if ev.ValidateCombination(b) {
		t.Fatalf("overloaded build must not validate")
	}
	res := ev.ValidateCombinationDetailed(b)
	if res.Valid {
		t.Fatalf("detailed validation must agree")
	}
	if len(res.Reasons) == 0 {
		t.Fatalf("expected at least one reason")
	}
	if !strings.Contains(res.Reasons[0], "damage multiplier") {
		t.Fatalf("unexpected reason: %q", res.Reasons[0])
	}
}

func TestValidateCombinationEnforcesDPSCeiling(t *testing.T) {
	cfg := Default()
	cfg.MaxDPS = 3.0 // tighten so a legal-damage build breaches fire rate only
	ev := NewEvaluator(cfg)
	b := Build{RapidFire: 6} // 3.34x fire rate, 1x damage
	if dmg := ev.MaxDamageMultiplier(b); dmg > cfg.MaxDamage {
		t.Fatalf("setup broken: damage %f already over", dmg)
	}
	if ev.ValidateCombination(b) {
		t.Fatalf("simple form must enforce the dps ceiling too")
	}
	res := ev.ValidateCombinationDetailed(b)
	if len(res.Reasons) != 1 || !strings.Contains(res.Reasons[0], "fire rate") {
		t.Fatalf("expected a single fire-rate reason, got %v", res.Reasons)
	}
}

func TestDefenseNeverInvalidates(t *testing.T) {
	ev := NewEvaluator(Default())
	res := ev.ValidateCombinationDetailed(Build{Plating: 8, Stabilizers: 8, ShieldGenerator: 6})
	if !res.Valid {
		t.Fatalf("defense-only build must stay valid: %v", res.Reasons)
	}
	if res.Metrics.DamageReduction != 0.5 {
		t.Fatalf("reported reduction = %f, want 0.5", res.Metrics.DamageReduction)
	}
}

func TestCanSafelyAddUpgradeCapBreach(t *testing.T) {
	ev := NewEvaluator(Default())
	b := Build{PowerShot: 6, HeavyBarrel: 3, GlassCannon: 1}
	if ev.CanSafelyAddUpgrade(b, PowerShot, 1) {
		t.Fatalf("power-shot at cap must refuse another stack")
	}
}

func TestCanSafelyAddUpgradeCeilingBreach(t *testing.T) {
	ev := NewEvaluator(Default())
	// 3.89x damage; glass-cannon would land at 9.7x
	b := Build{PowerShot: 6, HeavyBarrel: 1}
	if !ev.ValidateCombination(b) {
		t.Fatalf("setup broken: base build should be legal")
	}
	if ev.CanSafelyAddUpgrade(b, GlassCannon, 1) {
		t.Fatalf("adding glass-cannon must breach the damage ceiling")
	}
	// six piercing-rounds stacks stay inside their cap but push 8.09x
	if ev.CanSafelyAddUpgrade(b, PiercingRounds, 6) {
		t.Fatalf("six piercing-rounds stacks must breach the damage ceiling")
	}
	if !ev.CanSafelyAddUpgrade(b, Plating, 1) {
		t.Fatalf("a defensive stack must remain admissible")
	}
}

func TestCanSafelyAddUpgradeDoesNotMutate(t *testing.T) {
	ev := NewEvaluator(Default())
	b := Build{PowerShot: 2}
	_ = ev.CanSafelyAddUpgrade(b, PowerShot, 3)
	_ = ev.CanSafelyAddUpgrade(b, GlassCannon, 1)
	if len(b) != 1 || b[PowerShot] != 2 {
		t.Fatalf("input build mutated: %v", b)
	}
}

func TestPowerSummaryStatus(t *testing.T) {
	ev := NewEvaluator(Default())
	if s := ev.PowerSummary(Build{}); !strings.Contains(s, StatusBalanced) {
		t.Fatalf("empty build summary = %q", s)
	}
	if s := ev.PowerSummary(overloadedBuild()); !strings.Contains(s, StatusOverpowered) {
		t.Fatalf("overloaded summary = %q", s)
	}
	// 7.21x damage sits just above 90% of the 8x ceiling
	near := Build{PowerShot: 6, HeavyBarrel: 2, PiercingRounds: 2}
	dmg := ev.MaxDamageMultiplier(near)
	if dmg <= 7.2 || dmg > 8.0 {
		t.Fatalf("setup broken: near-limit damage %f", dmg)
	}
	if s := ev.PowerSummary(near); !strings.Contains(s, StatusNearLimit) {
		t.Fatalf("near-limit summary = %q", s)
	}
}

func TestApplySynergyAdjustment(t *testing.T) {
	ev := NewEvaluator(Default())
	for _, base := range []float64{0.05, 0.2, 0.45} {
		got := ev.ApplySynergyAdjustment(SynergyRailgun, base)
		if got >= base {
			t.Fatalf("railgun must dampen %f, got %f", base, got)
		}
		if got < base*0.5 {
			t.Fatalf("railgun reduction bounded at 50%%: base %f got %f", base, got)
		}
	}
	// unknown synergy passes through
	if got := ev.ApplySynergyAdjustment("warp-echo", 0.3); got != 0.3 {
		t.Fatalf("unknown synergy changed power: %f", got)
	}
}

func TestLegendaryAdjustmentsLookup(t *testing.T) {
	ev := NewEvaluator(Default())
	gc := ev.LegendaryAdjustments(GlassCannon)
	if gc.DamageMultiplier != 2.5 || gc.CritChanceBonus != 0.08 {
		t.Fatalf("glass-cannon record = %+v", gc)
	}
	if zero := ev.LegendaryAdjustments("comet-core"); zero != (LegendaryEntry{}) {
		t.Fatalf("unknown legendary must return the zero record, got %+v", zero)
	}
}
