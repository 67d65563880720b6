package shop

import "github.com/starblitz/balance-backend/internal/balance"

// Offer models one purchasable upgrade stack in the salvage shop.
type Offer struct {
	ID          balance.UpgradeID // catalog id the stack applies to
	Name        string            // display name, e.g., "Power Shot"
	CostCredits int               // credits per stack
}

// Catalog is the shop's offer list for one game mode.
type Catalog struct {
	Currency string // display name, e.g., "Salvage"
	Offers   []Offer
}

// Purchase is one line item in a plan.
type Purchase struct {
	ID       balance.UpgradeID `json:"id"`
	Name     string            `json:"name"`
	Qty      int               `json:"qty"`
	UnitCost int               `json:"unit_cost"`
	Subtotal int               `json:"subtotal"`
}

// Plan summarizes a spending plan and the build it produces.
type Plan struct {
	Purchases    []Purchase `json:"purchases"`
	SpendCredits int        `json:"spend_credits"`
	TotalStacks  int        `json:"total_stacks"`
	Damage       float64    `json:"damage"`
	DPS          float64    `json:"dps"`
	Defense      float64    `json:"defense"`
	Currency     string     `json:"currency"`
}

// DefaultCatalog prices the balance-relevant catalog. Costs rise with the
// per-stack power of the upgrade.
func DefaultCatalog() Catalog {
	return Catalog{
		Currency: "Salvage",
		Offers: []Offer{
			{ID: balance.PowerShot, Name: "Power Shot", CostCredits: 120},
			{ID: balance.RapidFire, Name: "Rapid Fire", CostCredits: 140},
			{ID: balance.HeavyBarrel, Name: "Heavy Barrel", CostCredits: 200},
			{ID: balance.PiercingRounds, Name: "Piercing Rounds", CostCredits: 90},
			{ID: balance.CritScope, Name: "Crit Scope", CostCredits: 70},
			{ID: balance.Overdrive, Name: "Overdrive", CostCredits: 90},
			{ID: balance.HairTrigger, Name: "Hair Trigger", CostCredits: 70},
			{ID: balance.Plating, Name: "Plating", CostCredits: 60},
			{ID: balance.Stabilizers, Name: "Stabilizers", CostCredits: 50},
			{ID: balance.ShieldGenerator, Name: "Shield Generator", CostCredits: 80},
			{ID: balance.GlassCannon, Name: "Glass Cannon", CostCredits: 600},
			{ID: balance.BulletHell, Name: "Bullet Hell", CostCredits: 600},
		},
	}
}
