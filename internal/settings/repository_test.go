package settings

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/starblitz/balance-backend/internal/balance"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	r := NewRepository()
	r.Player.Hull = 80
	r.SetDamageReduction(0.3)
	r.RunBuild[balance.PowerShot] = 4
	r.RunBuild[balance.GlassCannon] = 1
	r.ActivateSynergy(balance.SynergyRailgun)
	r.ActivateSynergy(balance.SynergyVampire)

	snap := r.Snapshot()

	// trash the live state, then restore
	r.Reset()
	if len(r.RunBuild) != 0 || len(r.Active) != 0 {
		t.Fatalf("reset left state behind")
	}
	r.Restore(snap)

	if r.Player.Hull != 80 || r.Player.DamageReduction != 0.3 {
		t.Fatalf("player stats not restored: %+v", r.Player)
	}
	if r.RunBuild[balance.PowerShot] != 4 || r.RunBuild[balance.GlassCannon] != 1 {
		t.Fatalf("build not restored: %v", r.RunBuild)
	}
	if !r.Active[balance.SynergyRailgun] || !r.Active[balance.SynergyVampire] {
		t.Fatalf("synergy set not restored: %v", r.Active)
	}

	// field-for-field: a second snapshot equals the first
	if !reflect.DeepEqual(snap, r.Snapshot()) {
		t.Fatalf("snapshot/restore is not a fixed point")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	r := NewRepository()
	r.RunBuild[balance.RapidFire] = 2
	snap := r.Snapshot()

	r.RunBuild[balance.RapidFire] = 6
	r.Effects[balance.RapidFire] = EffectRecord{Name: "tampered"}
	if snap.Build["rapid-fire"] != 2 {
		t.Fatalf("snapshot shares build storage with the repository")
	}
	if snap.Effects["rapid-fire"].Name == "tampered" {
		t.Fatalf("snapshot shares effect storage with the repository")
	}

	// and the other direction
	snap.Build["rapid-fire"] = 99
	if r.RunBuild[balance.RapidFire] != 6 {
		t.Fatalf("repository shares storage with the snapshot")
	}
}

func TestSnapshotSerializes(t *testing.T) {
	r := NewRepository()
	r.ActivateSynergy(balance.SynergyShockwave)
	r.RunBuild[balance.Plating] = 3

	b, err := json.Marshal(r.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var back Snapshot
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	r2 := NewRepository()
	r2.Restore(back)
	if !reflect.DeepEqual(r.Snapshot(), r2.Snapshot()) {
		t.Fatalf("json round trip changed the state")
	}
}

func TestSetDamageReductionClamp(t *testing.T) {
	r := NewRepository()
	r.SetDamageReduction(0.9)
	if r.Player.DamageReduction != 0.5 {
		t.Fatalf("got %f, want clamp at 0.5", r.Player.DamageReduction)
	}
	r.SetDamageReduction(-1)
	if r.Player.DamageReduction != 0 {
		t.Fatalf("got %f, want clamp at 0", r.Player.DamageReduction)
	}
}

func TestActiveSynergiesSorted(t *testing.T) {
	r := NewRepository()
	r.ActivateSynergy(balance.SynergyVampire)
	r.ActivateSynergy(balance.SynergyRailgun)
	got := r.ActiveSynergies()
	if len(got) != 2 || got[0] != balance.SynergyRailgun || got[1] != balance.SynergyVampire {
		t.Fatalf("want sorted [railgun vampire], got %v", got)
	}
	r.DeactivateSynergy(balance.SynergyRailgun)
	if got := r.ActiveSynergies(); len(got) != 1 || got[0] != balance.SynergyVampire {
		t.Fatalf("deactivate failed: %v", got)
	}
}

func TestDefaultCatalogSize(t *testing.T) {
	r := NewRepository()
	if len(r.Effects) != 20 {
		t.Fatalf("expected 20 effect records, got %d", len(r.Effects))
	}
	for id, rec := range r.Effects {
		if rec.Name == "" {
			t.Fatalf("effect %s has no name", id)
		}
	}
}
