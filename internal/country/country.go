// Package country provides the per-entity state and the per-entity update
// rules: resource production, stochastic economic growth, policy application,
// and end-of-turn cleanup.
package country

import (
	"github.com/harlandq/geosim/internal/entropy"
)

// Country is one political/economic actor in the simulation.
type Country struct {
	Name string `json:"name"`

	// Economy
	Resources  Stockpile `json:"resources"`
	GDP        float64   `json:"gdp"`
	GrowthRate float64   `json:"growth_rate"` // Baseline fractional growth per turn
	Population float64   `json:"population"`  // Millions; constant for the run

	// Policy settings
	TaxRate    float64 `json:"tax_rate"`    // 0.0–0.5
	TariffRate float64 `json:"tariff_rate"` // 0.0–1.0

	// Directed sanction relation: names this country refuses to trade with.
	Sanctions map[string]bool `json:"sanctions"`

	// Names sanctioned this turn. Reporting only; cleared every turn by
	// ResetTurn, never consulted by trade clearing.
	NewSanctions map[string]bool `json:"new_sanctions"`
}

// New creates a country with empty sanction sets.
func New(name string) *Country {
	return &Country{
		Name:         name,
		Sanctions:    make(map[string]bool),
		NewSanctions: make(map[string]bool),
	}
}

// ProduceResources adds one turn of production to every resource stock:
// a population-driven base plus a small bonus proportional to reserves.
// Stocks compound without an upper bound; that is an accepted property of
// the model.
func (c *Country) ProduceResources() {
	for i := range c.Resources {
		c.Resources[i] += c.Population*BaseProductionRate + c.Resources[i]*ReserveBonusRate
	}
}

// UpdateEconomy applies one turn of GDP growth. Taxes drag the baseline
// growth rate, the result is floored at MinGrowth, and a uniform fluctuation
// draw from the injected source is added. GDP never goes below zero.
func (c *Country) UpdateEconomy(src *entropy.Source) {
	effective := c.GrowthRate - c.TaxRate*TaxGrowthPenalty
	if effective < MinGrowth {
		effective = MinGrowth
	}
	fluctuation := src.Range(-FluctuationSpan, FluctuationSpan)

	c.GDP += c.GDP * (effective + fluctuation)
	if c.GDP < 0 {
		c.GDP = 0
	}
}

// Consumption returns the per-turn consumption of any single resource kind.
func (c *Country) Consumption() float64 {
	return c.Population * ConsumptionRate
}

// CanInvest reports whether every resource stock covers the investment cost.
// Callers that need feedback probe this before applying InvestInfrastructure;
// Apply itself stays a silent no-op on failure.
func (c *Country) CanInvest() bool {
	return c.Resources.Min() >= InvestCost
}

// HasSanctioned reports whether this country sanctions the named one.
func (c *Country) HasSanctioned(name string) bool {
	return c.Sanctions[name]
}

// ResetTurn clears transient per-turn state. Called once per country per
// turn, after trade clearing.
func (c *Country) ResetTurn() {
	clear(c.NewSanctions)
}
