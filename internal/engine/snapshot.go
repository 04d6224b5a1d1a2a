// Read model. The shell only ever sees copies, never the owned countries.
package engine

import (
	"sort"

	"github.com/harlandq/geosim/internal/country"
)

// CountrySnapshot is a point-in-time copy of one country's observable state.
type CountrySnapshot struct {
	Name         string             `json:"name"`
	GDP          float64            `json:"gdp"`
	GrowthRate   float64            `json:"growth_rate"`
	Population   float64            `json:"population"`
	TaxRate      float64            `json:"tax_rate"`
	TariffRate   float64            `json:"tariff_rate"`
	Resources    map[string]float64 `json:"resources"`
	Sanctions    []string           `json:"sanctions"`
	NewSanctions []string           `json:"new_sanctions"`
}

// WorldSnapshot is the full observable world state for one turn.
type WorldSnapshot struct {
	Turn      uint64            `json:"turn"`
	Countries []CountrySnapshot `json:"countries"`
	Stats     WorldStats        `json:"stats"`
}

// Snapshot copies the observable state of every country, in world order.
func (w *World) Snapshot() WorldSnapshot {
	countries := make([]CountrySnapshot, 0, len(w.Countries))
	for _, c := range w.Countries {
		countries = append(countries, snapshotCountry(c))
	}
	return WorldSnapshot{
		Turn:      w.Turn,
		Countries: countries,
		Stats:     w.Stats,
	}
}

// SnapshotCountry copies one country's observable state, or returns false if
// the name is unknown.
func (w *World) SnapshotCountry(name string) (CountrySnapshot, bool) {
	c, ok := w.Index[name]
	if !ok {
		return CountrySnapshot{}, false
	}
	return snapshotCountry(c), true
}

func snapshotCountry(c *country.Country) CountrySnapshot {
	resources := make(map[string]float64, country.NumResources)
	for i, q := range c.Resources {
		resources[country.Resource(i).String()] = q
	}
	return CountrySnapshot{
		Name:         c.Name,
		GDP:          c.GDP,
		GrowthRate:   c.GrowthRate,
		Population:   c.Population,
		TaxRate:      c.TaxRate,
		TariffRate:   c.TariffRate,
		Resources:    resources,
		Sanctions:    sortedNames(c.Sanctions),
		NewSanctions: sortedNames(c.NewSanctions),
	}
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
