package shop

import (
	"math"
	"sort"

	"github.com/starblitz/balance-backend/internal/balance"
)

// offensiveGain scores one hypothetical purchase: the log-gain of the
// combined damage*fire-rate product. Log keeps gains additive so they are
// comparable across axes; defense counts via its reduction delta.
func offensiveGain(ev *balance.Evaluator, b balance.Build, id balance.UpgradeID) float64 {
	before := math.Log(ev.MaxDamageMultiplier(b)) + math.Log(ev.MaxDPSMultiplier(b))
	defBefore := ev.MaxDefenseMultiplier(b)
	h := b.With(id, 1)
	after := math.Log(ev.MaxDamageMultiplier(h)) + math.Log(ev.MaxDPSMultiplier(h))
	defAfter := ev.MaxDefenseMultiplier(h)
	return (after - before) + (defAfter - defBefore)
}

// MaxPowerUnderBudget spends at most budget credits on shop offers to
// maximize build power. Diminishing returns make the value of a stack
// depend on the stacks already bought, so this is a greedy
// marginal-value-per-credit walk rather than a memoized table: at each
// step buy the affordable, admissible offer with the best gain/cost ratio,
// stop when nothing qualifies.
func MaxPowerUnderBudget(ev *balance.Evaluator, cat Catalog, budget int) Plan {
	plan := Plan{Currency: cat.Currency}
	if budget <= 0 || len(cat.Offers) == 0 {
		return plan
	}

	build := make(balance.Build)
	counts := make(map[balance.UpgradeID]int)
	remaining := budget

	for {
		bestIdx := -1
		bestRatio := 0.0
		for i, o := range cat.Offers {
			if o.CostCredits <= 0 || o.CostCredits > remaining {
				continue
			}
			if !ev.CanSafelyAddUpgrade(build, o.ID, 1) {
				continue
			}
			gain := offensiveGain(ev, build, o.ID)
			if gain <= 0 {
				continue
			}
			ratio := gain / float64(o.CostCredits)
			if ratio > bestRatio {
				bestRatio = ratio
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		o := cat.Offers[bestIdx]
		build[o.ID]++
		counts[o.ID]++
		remaining -= o.CostCredits
	}

	return assemble(ev, cat, plan, build, counts, budget-remaining)
}

// MinCostForDamage buys the cheapest greedy sequence of stacks that lifts
// the damage aggregate to at least target. Returns an empty plan when the
// target is unreachable inside the global ceilings.
func MinCostForDamage(ev *balance.Evaluator, cat Catalog, target float64) Plan {
	plan := Plan{Currency: cat.Currency}
	if target <= 1 || len(cat.Offers) == 0 {
		return plan
	}

	build := make(balance.Build)
	counts := make(map[balance.UpgradeID]int)
	spend := 0

	for ev.MaxDamageMultiplier(build) < target {
		bestIdx := -1
		bestRatio := 0.0
		for i, o := range cat.Offers {
			if o.CostCredits <= 0 {
				continue
			}
			if !ev.CanSafelyAddUpgrade(build, o.ID, 1) {
				continue
			}
			gain := math.Log(ev.MaxDamageMultiplier(build.With(o.ID, 1))) - math.Log(ev.MaxDamageMultiplier(build))
			if gain <= 0 {
				continue
			}
			ratio := gain / float64(o.CostCredits)
			if ratio > bestRatio {
				bestRatio = ratio
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			// locked before reaching the target
			return Plan{Currency: cat.Currency}
		}
		o := cat.Offers[bestIdx]
		build[o.ID]++
		counts[o.ID]++
		spend += o.CostCredits
	}

	return assemble(ev, cat, plan, build, counts, spend)
}

// assemble turns the accumulated counts into a deterministic plan.
func assemble(ev *balance.Evaluator, cat Catalog, plan Plan, build balance.Build, counts map[balance.UpgradeID]int, spend int) Plan {
	byID := make(map[balance.UpgradeID]Offer, len(cat.Offers))
	for _, o := range cat.Offers {
		byID[o.ID] = o
	}
	ids := make([]balance.UpgradeID, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		o := byID[id]
		qty := counts[id]
		plan.Purchases = append(plan.Purchases, Purchase{
			ID:       id,
			Name:     o.Name,
			Qty:      qty,
			UnitCost: o.CostCredits,
			Subtotal: o.CostCredits * qty,
		})
		plan.TotalStacks += qty
	}
	plan.SpendCredits = spend
	plan.Damage = ev.MaxDamageMultiplier(build)
	plan.DPS = ev.MaxDPSMultiplier(build)
	plan.Defense = ev.MaxDefenseMultiplier(build)
	return plan
}
