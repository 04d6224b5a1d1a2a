// AI policy selection: every non-player country picks one policy per turn.
package engine

import (
	"log/slog"

	"github.com/harlandq/geosim/internal/country"
)

// aiChoices is the pool AI countries draw from each turn, uniformly.
// Sanction is deliberately absent: AI countries never sanction, and the
// trailing no-op slot means a country can also sit a turn out.
var aiChoices = []country.PolicyKind{
	country.LowerTaxes,
	country.RaiseTaxes,
	country.LowerTariffs,
	country.RaiseTariffs,
	country.InvestInfrastructure,
}

// AdvanceTurn runs AI policy selection for every country except player, then
// resolves the turn. An empty player name makes the run fully AI-driven.
func (w *World) AdvanceTurn(player string) {
	for _, c := range w.Countries {
		if c.Name == player {
			continue
		}
		// len(aiChoices)+1 slots: the extra one is the no-op.
		pick := w.src.Intn(len(aiChoices) + 1)
		if pick >= len(aiChoices) {
			continue
		}
		kind := aiChoices[pick]
		changed := c.Apply(country.Policy{Kind: kind})
		slog.Debug("ai policy", "country", c.Name, "policy", kind, "changed", changed)
	}

	w.Update()
}
