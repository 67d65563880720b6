package test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/starblitz/balance-backend/internal/balance"
	"github.com/starblitz/balance-backend/internal/config"
	"github.com/starblitz/balance-backend/internal/settings"
)

// loadShipped resolves the yaml tables the repository ships with.
func loadShipped(t *testing.T, mode string) *balance.Evaluator {
	t.Helper()
	l := config.NewLoader("../config")
	_, cfg, err := l.Resolve(mode, "", config.Overrides{})
	if err != nil {
		t.Fatalf("resolve shipped tables: %v", err)
	}
	return balance.NewEvaluator(cfg)
}

func TestShippedTablesMatchGameplayContract(t *testing.T) {
	ev := loadShipped(t, "")

	// cap boundary straight from the tables
	if !ev.CanStack(balance.PowerShot, 5) || ev.CanStack(balance.PowerShot, 6) {
		t.Fatal("power-shot cap boundary wrong in shipped tables")
	}

	// the canonical overloaded build must be rejected end to end
	b := balance.Build{
		balance.PowerShot:   6,
		balance.RapidFire:   6,
		balance.HeavyBarrel: 3,
		balance.GlassCannon: 1,
		balance.BulletHell:  1,
	}
	if ev.ValidateCombination(b) {
		t.Fatal("overloaded build validated against shipped tables")
	}
	if res := ev.ValidateCombinationDetailed(b); len(res.Reasons) == 0 {
		t.Fatal("expected reasons from shipped tables")
	}

	// defense clamp survives the yaml round trip
	if got := ev.MaxDefenseMultiplier(balance.Build{balance.Plating: 10}); got > 0.5 {
		t.Fatalf("defense %f over clamp with shipped tables", got)
	}
}

func TestHardcoreOverlayTightensCeilings(t *testing.T) {
	ev := loadShipped(t, "hardcore")
	cfg := ev.Config()
	if cfg.MaxDamage != 6.0 || cfg.MaxDPS != 15.0 {
		t.Fatalf("hardcore ceilings not applied: %+v", cfg)
	}
	if cfg.Caps[balance.Plating] != 6 {
		t.Fatalf("hardcore plating cap not applied: %d", cfg.Caps[balance.Plating])
	}
	// a build legal in default mode can be illegal in hardcore
	b := balance.Build{balance.PowerShot: 6, balance.HeavyBarrel: 3}
	if !loadShipped(t, "").ValidateCombination(b) {
		t.Fatal("setup broken: build should pass default mode")
	}
	if ev.ValidateCombination(b) {
		t.Fatal("6.3x damage must fail the hardcore 6x ceiling")
	}
}

func TestRepositorySnapshotTravelsAsJSON(t *testing.T) {
	r := settings.NewRepository()
	r.RunBuild[balance.PowerShot] = 3
	r.ActivateSynergy(balance.SynergyRailgun)
	r.SetDamageReduction(0.2)

	// the save collaborator sees only the serialized snapshot
	wire, err := json.Marshal(r.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var snap settings.Snapshot
	if err := json.Unmarshal(wire, &snap); err != nil {
		t.Fatal(err)
	}

	fresh := settings.NewRepository()
	fresh.Restore(snap)
	if !reflect.DeepEqual(r.Snapshot(), fresh.Snapshot()) {
		t.Fatal("snapshot did not survive the persistence boundary")
	}
}
