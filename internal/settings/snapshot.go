package settings

import "github.com/starblitz/balance-backend/internal/balance"

// Snapshot is the serializable aggregate of the whole repository: flat
// named sections plus the synergy set in array form. The save/load
// collaborator owns nothing inside it; every map is a deep copy.
type Snapshot struct {
	Player    PlayerStats             `json:"player"`
	Effects   map[string]EffectRecord `json:"effects"`
	Synergies []string                `json:"synergies"`
	Build     map[string]int          `json:"build"`
}

// Snapshot deep-copies the current state. Mutating the repository after
// the call never changes an already-taken snapshot, and vice versa.
func (r *Repository) Snapshot() Snapshot {
	s := Snapshot{
		Player:  r.Player,
		Effects: make(map[string]EffectRecord, len(r.Effects)),
		Build:   make(map[string]int, len(r.RunBuild)),
	}
	for id, rec := range r.Effects {
		s.Effects[string(id)] = rec
	}
	for id, n := range r.RunBuild {
		s.Build[string(id)] = n
	}
	for _, id := range r.ActiveSynergies() {
		s.Synergies = append(s.Synergies, string(id))
	}
	return s
}

// Restore replaces the repository's state wholesale from a snapshot,
// deep-copying everything in. Sections absent from the snapshot come back
// empty, not as leftovers of the previous run.
func (r *Repository) Restore(s Snapshot) {
	r.Player = s.Player
	r.Effects = make(map[balance.UpgradeID]EffectRecord, len(s.Effects))
	for id, rec := range s.Effects {
		r.Effects[balance.UpgradeID(id)] = rec
	}
	r.RunBuild = make(balance.Build, len(s.Build))
	for id, n := range s.Build {
		r.RunBuild[balance.UpgradeID(id)] = n
	}
	r.Active = make(map[balance.SynergyID]bool, len(s.Synergies))
	for _, id := range s.Synergies {
		r.Active[balance.SynergyID(id)] = true
	}
}
