package balance

import (
	"math"
	"sort"
)

// SimParams describes one random-build simulation run. Each trial draws
// upgrade picks through CanSafelyAddUpgrade until the build locks (no pick
// is admissible) or MaxPicks is reached.
type SimParams struct {
	// MaxPicks bounds picks per trial; <= 0 defaults to 64.
	MaxPicks int
	// Weights biases the pick distribution per id. Missing ids weigh 1.
	// Only ids with positive weight are ever offered.
	Weights map[UpgradeID]float64
	// RNG defaults to the crypto source when nil.
	RNG RandomSource
}

// Stats summarizes integer samples: mean, variance, percentiles.
type Stats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	// raw samples for callers that build histograms
	Samples []int `json:"-"`
}

// SimResult reports a full simulation: pick-count distribution plus the
// average final aggregates across trials.
type SimResult struct {
	Picks      Stats   `json:"picks"`
	AvgDamage  float64 `json:"avg_damage"`
	AvgDPS     float64 `json:"avg_dps"`
	AvgDefense float64 `json:"avg_defense"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// eligible returns the ids the simulator may still pick for b, with their
// weights. Only ids the config knows (stackable or legendary) are offered;
// utility upgrades with no balance entry would never lock a build.
// Admissibility is exactly the gameplay gate: cap first, then the global
// ceilings on the hypothetical build.
func (e *Evaluator) eligible(b Build, weights map[UpgradeID]float64) ([]UpgradeID, []float64) {
	var ids []UpgradeID
	var ws []float64
	for _, id := range AllUpgrades {
		if _, ok := e.cfg.Stackables[id]; !ok {
			if _, ok := e.cfg.Legendaries[id]; !ok {
				continue
			}
		}
		w := 1.0
		if weights != nil {
			if v, ok := weights[id]; ok {
				w = v
			}
		}
		if w <= 0 {
			continue
		}
		if !e.CanSafelyAddUpgrade(b, id, 1) {
			continue
		}
		ids = append(ids, id)
		ws = append(ws, w)
	}
	return ids, ws
}

// pick selects one id by weight.
func pick(rng RandomSource, ids []UpgradeID, ws []float64) UpgradeID {
	var total float64
	for _, w := range ws {
		total += w
	}
	r := rng.Float64() * total
	for i, w := range ws {
		r -= w
		if r < 0 {
			return ids[i]
		}
	}
	return ids[len(ids)-1]
}

// simulateOne plays a single run of random acquisition and returns the
// number of picks accepted plus the final build.
func (e *Evaluator) simulateOne(p SimParams, rng RandomSource) (int, Build) {
	maxPicks := p.MaxPicks
	if maxPicks <= 0 {
		maxPicks = 64
	}
	b := make(Build)
	picks := 0
	for picks < maxPicks {
		ids, ws := e.eligible(b, p.Weights)
		if len(ids) == 0 {
			break // build is locked: nothing admissible remains
		}
		b[pick(rng, ids, ws)]++
		picks++
	}
	return picks, b
}

// RunBuildSim repeats random-acquisition trials and summarizes how many
// picks a run survives before the ceilings lock it, and where the final
// aggregates land. Balancing tool for tuning caps and thresholds.
func (e *Evaluator) RunBuildSim(p SimParams, trials int) SimResult {
	if trials <= 0 {
		return SimResult{}
	}
	rng := p.RNG
	if rng == nil {
		rng = DefaultRNG()
	}
	samples := make([]int, trials)
	var dmg, dps, def float64
	for i := 0; i < trials; i++ {
		picks, b := e.simulateOne(p, rng)
		samples[i] = picks
		dmg += e.MaxDamageMultiplier(b)
		dps += e.MaxDPSMultiplier(b)
		def += e.MaxDefenseMultiplier(b)
	}
	n := float64(trials)
	return SimResult{
		Picks:      calcStats(samples),
		AvgDamage:  dmg / n,
		AvgDPS:     dps / n,
		AvgDefense: def / n,
	}
}
