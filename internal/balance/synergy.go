package balance

// ApplySynergyAdjustment dampens a combination bonus. If the synergy has a
// configured power reduction in (0,1) the base power is scaled down by it;
// unknown ids pass through unchanged.
func (e *Evaluator) ApplySynergyAdjustment(id SynergyID, basePower float64) float64 {
	s, ok := e.cfg.Synergies[id]
	if !ok {
		return basePower
	}
	if s.PowerReduction <= 0 || s.PowerReduction >= 1 {
		return basePower
	}
	return basePower * (1 - s.PowerReduction)
}

// LegendaryAdjustments returns the fixed adjustment record for a legendary
// id. Unknown ids return the zero record (no adjustments on any axis).
func (e *Evaluator) LegendaryAdjustments(id UpgradeID) LegendaryEntry {
	return e.cfg.Legendaries[id]
}
