// Trade clearing: once-per-turn multilateral resource exchange across all
// countries, resolved independently per resource kind.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/harlandq/geosim/internal/country"
)

// resolveTrade reconciles supply and demand for every resource kind.
//
// For each kind: a country consuming more than its stock is an importer with
// demand = consumption - stock; otherwise it is an exporter with
// supply = stock - consumption. Each exporter ships its share of global
// supply against each importer's demand; the importer's tariff destroys part
// of the shipped volume. Sanction-blocked volume is never reallocated, so
// realized imports can fall short of stated demand.
//
// Supplies, demands, and totals are snapshotted before any stock moves, so
// the result is independent of pair iteration order.
func (w *World) resolveTrade() {
	w.Stats.TradeVolume = 0
	w.Stats.TariffLeakage = 0
	w.Stats.BlockedPairs = 0

	for _, res := range country.Resources {
		w.clearResource(res)
	}
}

func (w *World) clearResource(res country.Resource) {
	demands := make(map[string]float64, len(w.Countries))
	supplies := make(map[string]float64, len(w.Countries))
	totalDemand := 0.0
	totalSupply := 0.0

	for _, c := range w.Countries {
		consumption := c.Consumption()
		available := c.Resources[res]
		if available < consumption {
			demands[c.Name] = consumption - available
			totalDemand += consumption - available
			supplies[c.Name] = 0
		} else {
			supplies[c.Name] = available - consumption
			totalSupply += available - consumption
			demands[c.Name] = 0
		}
	}

	// A one-sided market clears nothing this turn.
	if totalSupply <= 0 || totalDemand <= 0 {
		return
	}

	volume := 0.0
	leakage := 0.0

	for _, importer := range w.Countries {
		demand := demands[importer.Name]
		if demand <= 0 {
			continue
		}
		for _, exporter := range w.Countries {
			supply := supplies[exporter.Name]
			if supply <= 0 {
				continue
			}
			// Sanctions block in both directions regardless of who
			// imposed them.
			if exporter.HasSanctioned(importer.Name) || importer.HasSanctioned(exporter.Name) {
				w.Stats.BlockedPairs++
				continue
			}

			share := supply / totalSupply
			shipped := share * demand
			received := shipped * (1 - importer.TariffRate)

			exporter.Resources[res] -= shipped
			importer.Resources[res] += received

			volume += shipped
			leakage += shipped - received
		}
	}

	w.Stats.TradeVolume += volume
	w.Stats.TariffLeakage += leakage

	if volume > 0 {
		w.EmitEvent(Event{
			Turn:        w.Turn + 1,
			Description: fmt.Sprintf("%.1f units of %s traded (%.1f lost to tariffs)", volume, res, leakage),
			Category:    "trade",
			Meta: map[string]any{
				"resource": res.String(),
				"volume":   volume,
				"leakage":  leakage,
			},
		})
		slog.Debug("resource cleared",
			"resource", res.String(),
			"total_supply", totalSupply,
			"total_demand", totalDemand,
			"volume", volume,
			"leakage", leakage,
		)
	}
}
