// Model tuning constants: every rate the update rules use lives here,
// not inline at the call sites.
package country

const (
	// Production: each turn a country adds population*BaseProductionRate
	// plus stock*ReserveBonusRate to every resource stock.
	BaseProductionRate = 0.1
	ReserveBonusRate   = 0.02

	// Consumption per turn, per resource kind, used by trade clearing.
	ConsumptionRate = 0.2

	// Economy: taxes drag growth at half their rate, effective growth is
	// floored, and each turn adds a uniform fluctuation draw.
	TaxGrowthPenalty = 0.5
	MinGrowth        = -0.05
	FluctuationSpan  = 0.01

	// Policy step sizes and bounds.
	TaxStep    = 0.02
	MaxTaxRate = 0.5
	TariffStep = 0.05

	// Infrastructure investment: per-kind resource cost and growth reward.
	InvestCost        = 10.0
	InvestGrowthBonus = 0.005
)
