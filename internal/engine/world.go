// Package engine provides the turn-resolution engine: the World orchestrator,
// the multilateral trade-clearing pass, and AI policy selection.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/harlandq/geosim/internal/country"
	"github.com/harlandq/geosim/internal/entropy"
)

// Construction errors. All invariants are checked once, at NewWorld; the
// per-turn code assumes they hold and never re-checks.
var (
	ErrNoCountries    = errors.New("world has no countries")
	ErrDuplicateName  = errors.New("duplicate country name")
	ErrInvalidCountry = errors.New("invalid country")
	ErrUnknownCountry = errors.New("unknown country")
)

// World owns the full set of countries and drives them through turns.
// Order of the country slice is the map position and nothing more.
type World struct {
	Countries []*country.Country
	Index     map[string]*country.Country

	Turn uint64 // Completed turns (0 before the first Update)

	Events []Event // Recent events (trimmed to keep memory bounded)
	Stats  WorldStats

	src     *entropy.Source
	drained int // Events already handed out by Drain
}

// Event is a notable occurrence in the world.
type Event struct {
	Turn        uint64         `json:"turn"`
	Description string         `json:"description"`
	Category    string         `json:"category"` // "policy", "sanction", "trade", "economy"
	Meta        map[string]any `json:"meta,omitempty"`
}

// WorldStats tracks aggregates refreshed at the end of every turn.
type WorldStats struct {
	TotalGDP        float64            `json:"total_gdp"`
	TotalStock      map[string]float64 `json:"total_stock"`
	TradeVolume     float64            `json:"trade_volume"`     // Exported volume this turn
	TariffLeakage   float64            `json:"tariff_leakage"`   // Destroyed by tariffs this turn
	BlockedPairs    int                `json:"blocked_pairs"`    // Sanction-blocked pairs this turn
	SanctionsActive int                `json:"sanctions_active"` // Directed sanction edges
}

// NewWorld validates the country set and builds a world around it.
// The random source is the engine's only non-determinism point; pass a
// seeded one for reproducible runs.
func NewWorld(countries []*country.Country, src *entropy.Source) (*World, error) {
	if len(countries) == 0 {
		return nil, ErrNoCountries
	}

	index := make(map[string]*country.Country, len(countries))
	for _, c := range countries {
		if err := validateCountry(c); err != nil {
			return nil, err
		}
		if _, exists := index[c.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
		}
		index[c.Name] = c
	}

	// Sanctions may be pre-seeded by a scenario; every target must exist.
	for _, c := range countries {
		for target := range c.Sanctions {
			if _, ok := index[target]; !ok {
				return nil, fmt.Errorf("%w: %q sanctions unknown country %q",
					ErrInvalidCountry, c.Name, target)
			}
		}
	}

	if src == nil {
		src = entropy.NewSource(0)
	}

	return &World{
		Countries: countries,
		Index:     index,
		src:       src,
	}, nil
}

func validateCountry(c *country.Country) error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCountry)
	}
	if c.Population <= 0 {
		return fmt.Errorf("%w: %q has non-positive population %v", ErrInvalidCountry, c.Name, c.Population)
	}
	if c.GDP < 0 {
		return fmt.Errorf("%w: %q has negative gdp %v", ErrInvalidCountry, c.Name, c.GDP)
	}
	if c.TaxRate < 0 || c.TaxRate > country.MaxTaxRate {
		return fmt.Errorf("%w: %q tax rate %v outside [0, %v]", ErrInvalidCountry, c.Name, c.TaxRate, country.MaxTaxRate)
	}
	if c.TariffRate < 0 || c.TariffRate > 1 {
		return fmt.Errorf("%w: %q tariff rate %v outside [0, 1]", ErrInvalidCountry, c.Name, c.TariffRate)
	}
	for i, q := range c.Resources {
		if q < 0 {
			return fmt.Errorf("%w: %q has negative %s stock %v", ErrInvalidCountry, c.Name, country.Resource(i), q)
		}
	}
	return nil
}

// Update runs one full turn. The four phases are strictly sequential: every
// country produces before any grows, grows before any trades, and the trade
// pass sees post-growth, pre-reset stocks. The turn summary is collected
// before the temp reset so new-sanction announcements survive into events.
func (w *World) Update() {
	for _, c := range w.Countries {
		c.ProduceResources()
	}
	for _, c := range w.Countries {
		c.UpdateEconomy(w.src)
	}

	w.resolveTrade()

	w.Turn++
	w.emitTurnSummary()

	for _, c := range w.Countries {
		c.ResetTurn()
	}

	w.updateStats()
	w.trimEvents()
}

// ApplyPolicy applies a policy command to the named country. An unknown
// acting country is a caller addressing mistake and returns an error;
// every policy precondition failure stays a silent no-op.
func (w *World) ApplyPolicy(name string, p country.Policy) error {
	c, ok := w.Index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCountry, name)
	}

	changed := c.Apply(p)
	if changed && p.Kind == country.Sanction {
		w.EmitEvent(Event{
			Turn:        w.Turn,
			Description: fmt.Sprintf("%s sanctioned %s", c.Name, p.Target),
			Category:    "sanction",
			Meta:        map[string]any{"actor": c.Name, "target": p.Target},
		})
	}

	slog.Debug("policy applied", "country", name, "policy", p.Kind, "target", p.Target, "changed", changed)
	return nil
}

// EmitEvent appends an event to the world's event buffer.
func (w *World) EmitEvent(e Event) {
	w.Events = append(w.Events, e)
}

// emitTurnSummary records per-turn announcements from transient state.
func (w *World) emitTurnSummary() {
	for _, c := range w.Countries {
		for target := range c.NewSanctions {
			w.EmitEvent(Event{
				Turn:        w.Turn,
				Description: fmt.Sprintf("%s cut trade ties with %s this turn", c.Name, target),
				Category:    "sanction",
				Meta:        map[string]any{"actor": c.Name, "target": target},
			})
		}
	}
}

// updateStats refreshes the aggregate stats from current country state.
// Trade volume and leakage are set by resolveTrade before this runs.
func (w *World) updateStats() {
	totalStock := make(map[string]float64, country.NumResources)
	totalGDP := 0.0
	sanctions := 0

	for _, c := range w.Countries {
		totalGDP += c.GDP
		sanctions += len(c.Sanctions)
		for i, q := range c.Resources {
			totalStock[country.Resource(i).String()] += q
		}
	}

	w.Stats.TotalGDP = totalGDP
	w.Stats.TotalStock = totalStock
	w.Stats.SanctionsActive = sanctions
}

// Drain returns the events emitted since the previous Drain. The journal
// uses this to append exactly once per event.
func (w *World) Drain() []Event {
	events := w.Events[w.drained:]
	w.drained = len(w.Events)
	return events
}

// trimEvents bounds the event buffer (keep last 1000).
func (w *World) trimEvents() {
	if len(w.Events) > 1000 {
		removed := len(w.Events) - 1000
		w.Events = w.Events[removed:]
		w.drained -= removed
		if w.drained < 0 {
			w.drained = 0
		}
	}
}

// Country returns the named country, or nil.
func (w *World) Country(name string) *country.Country {
	return w.Index[name]
}
