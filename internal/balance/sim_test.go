package balance

import (
	"math"
	"testing"
)

func TestRunBuildSimStaysInsideCeilings(t *testing.T) {
	ev := NewEvaluator(Default())
	res := ev.RunBuildSim(SimParams{RNG: NewSeededRNG(42)}, 500)
	if res.Picks.Mean <= 0 {
		t.Fatalf("expected positive mean picks, got %f", res.Picks.Mean)
	}
	// every pick went through the gameplay gate, so the averages cannot
	// exceed the ceilings
	if res.AvgDamage > 8.0 {
		t.Fatalf("avg damage %f over ceiling", res.AvgDamage)
	}
	if res.AvgDPS > 20.0 {
		t.Fatalf("avg dps %f over ceiling", res.AvgDPS)
	}
	if res.AvgDefense > 0.5 {
		t.Fatalf("avg defense %f over clamp", res.AvgDefense)
	}
}

func TestRunBuildSimReproducible(t *testing.T) {
	ev := NewEvaluator(Default())
	a := ev.RunBuildSim(SimParams{RNG: NewSeededRNG(7)}, 200)
	b := ev.RunBuildSim(SimParams{RNG: NewSeededRNG(7)}, 200)
	if a.Picks.Mean != b.Picks.Mean || a.AvgDamage != b.AvgDamage {
		t.Fatalf("same seed diverged: %+v vs %+v", a, b)
	}
}

func TestRunBuildSimWeights(t *testing.T) {
	ev := NewEvaluator(Default())
	// zero weight removes an id from the pool entirely
	weights := make(map[UpgradeID]float64)
	for _, id := range AllUpgrades {
		weights[id] = 0
	}
	weights[Plating] = 1
	res := ev.RunBuildSim(SimParams{Weights: weights, RNG: NewSeededRNG(1)}, 50)
	// plating caps at 8 stacks, so every trial locks there
	if res.Picks.Mean != 8 {
		t.Fatalf("plating-only runs should lock at 8 picks, mean = %f", res.Picks.Mean)
	}
	if res.AvgDPS != 1 {
		t.Fatalf("plating-only runs must not touch fire rate: %f", res.AvgDPS)
	}
}

func TestRunBuildSimNoTrials(t *testing.T) {
	ev := NewEvaluator(Default())
	if res := ev.RunBuildSim(SimParams{}, 0); res.Picks.Mean != 0 {
		t.Fatalf("zero trials should return the zero result, got %+v", res)
	}
}

func TestCalcStatsPercentiles(t *testing.T) {
	s := calcStats([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	if s.Mean != 5.5 {
		t.Fatalf("mean = %f", s.Mean)
	}
	if s.P50 != 5.5 {
		t.Fatalf("p50 = %f", s.P50)
	}
	if math.Abs(s.P90-9.1) > 1e-9 {
		t.Fatalf("p90 = %f", s.P90)
	}
	if s.StdDev <= 0 {
		t.Fatalf("stddev = %f", s.StdDev)
	}
}
