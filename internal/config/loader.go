package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/mode/profile table files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "games", "default.yaml")
}
func (p Paths) ModePath(mode string) string {
	return filepath.Join(p.BaseDir, "games", mode+".yaml")
}
func (p Paths) ProfilePath(mode, profile string) string {
	return filepath.Join(p.BaseDir, "games", mode, "profiles", profile+".yaml")
}

// Loader reads yaml balance tables and merges default → mode → profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: "mode" or "mode/profile" or "$default"
}

// NewLoader creates a table loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the loader's path layout, for watcher wiring.
func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → mode → profile (both optional: a
// missing mode or profile file contributes nothing).
func (l *Loader) LoadMerged(mode, profile string) (RawConfig, error) {
	key := mode
	if profile != "" {
		key = mode + "/" + profile
	}
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	var modeCfg, profCfg RawConfig
	if mode != "" {
		modeCfg, _ = readYAML(l.paths.ModePath(mode)) // mode file may not exist
	}
	if profile != "" {
		profCfg, _ = readYAML(l.paths.ProfilePath(mode, profile))
	}

	merged := mergeRaw(mergeRaw(defCfg, modeCfg), profCfg)

	l.mu.Lock()
	l.cache[key] = merged
	l.cache["$default"] = defCfg
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears the cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads one yaml file. Missing files return a zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw overlays b on a: a non-nil field in b wins, so a mode file can
// tighten a ceiling the default already sets. Map entries merge per key.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// thresholds
	if b.Thresholds != nil {
		if out.Thresholds == nil {
			c := *b.Thresholds
			out.Thresholds = &c
		} else {
			t := *out.Thresholds
			if b.Thresholds.MaxDamage != nil {
				t.MaxDamage = b.Thresholds.MaxDamage
			}
			if b.Thresholds.MaxDPS != nil {
				t.MaxDPS = b.Thresholds.MaxDPS
			}
			if b.Thresholds.MaxDamageReduction != nil {
				t.MaxDamageReduction = b.Thresholds.MaxDamageReduction
			}
			out.Thresholds = &t
		}
	}

	// upgrades, per id
	if len(b.Upgrades) > 0 {
		merged := make(map[string]UpgradeCfg, len(a.Upgrades)+len(b.Upgrades))
		for k, v := range a.Upgrades {
			merged[k] = v
		}
		for k, v := range b.Upgrades {
			base, ok := merged[k]
			if !ok {
				merged[k] = v
				continue
			}
			if v.Base != nil {
				base.Base = v.Base
			}
			if v.Axis != "" {
				base.Axis = v.Axis
			}
			if v.Cap != nil {
				base.Cap = v.Cap
			}
			if v.Diminish != nil {
				if base.Diminish == nil {
					c := *v.Diminish
					base.Diminish = &c
				} else {
					d := *base.Diminish
					if v.Diminish.Threshold != nil {
						d.Threshold = v.Diminish.Threshold
					}
					if v.Diminish.ScalingFactor != nil {
						d.ScalingFactor = v.Diminish.ScalingFactor
					}
					base.Diminish = &d
				}
			}
			merged[k] = base
		}
		out.Upgrades = merged
	}

	// legendaries, per id
	if len(b.Legendaries) > 0 {
		merged := make(map[string]LegendaryCfg, len(a.Legendaries)+len(b.Legendaries))
		for k, v := range a.Legendaries {
			merged[k] = v
		}
		for k, v := range b.Legendaries {
			base, ok := merged[k]
			if !ok {
				merged[k] = v
				continue
			}
			if v.DamageMultiplier != nil {
				base.DamageMultiplier = v.DamageMultiplier
			}
			if v.FireRateMultiplier != nil {
				base.FireRateMultiplier = v.FireRateMultiplier
			}
			if v.CritChanceBonus != nil {
				base.CritChanceBonus = v.CritChanceBonus
			}
			merged[k] = base
		}
		out.Legendaries = merged
	}

	// synergies, per id
	if len(b.Synergies) > 0 {
		merged := make(map[string]SynergyCfg, len(a.Synergies)+len(b.Synergies))
		for k, v := range a.Synergies {
			merged[k] = v
		}
		for k, v := range b.Synergies {
			base, ok := merged[k]
			if !ok {
				merged[k] = v
				continue
			}
			if v.PowerReduction != nil {
				base.PowerReduction = v.PowerReduction
			}
			merged[k] = base
		}
		out.Synergies = merged
	}

	// player
	if b.Player != nil {
		if out.Player == nil {
			c := *b.Player
			out.Player = &c
		} else {
			p := *out.Player
			if b.Player.Hull != nil {
				p.Hull = b.Player.Hull
			}
			if b.Player.Shield != nil {
				p.Shield = b.Player.Shield
			}
			if b.Player.Speed != nil {
				p.Speed = b.Player.Speed
			}
			if b.Player.BaseDamage != nil {
				p.BaseDamage = b.Player.BaseDamage
			}
			if b.Player.FireInterval != nil {
				p.FireInterval = b.Player.FireInterval
			}
			out.Player = &p
		}
	}

	return out
}
