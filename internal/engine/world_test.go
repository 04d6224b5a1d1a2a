package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harlandq/geosim/internal/country"
	"github.com/harlandq/geosim/internal/entropy"
)

func simpleCountry(name string) *country.Country {
	c := country.New(name)
	c.GDP = 100
	c.GrowthRate = 0.02
	c.Population = 10
	c.TaxRate = 0.15
	c.TariffRate = 0.1
	c.Resources = country.Stockpile{50, 20, 10}
	return c
}

func TestNewWorldRejectsEmptySet(t *testing.T) {
	_, err := NewWorld(nil, entropy.NewSource(1))
	assert.ErrorIs(t, err, ErrNoCountries)
}

func TestNewWorldRejectsDuplicateNames(t *testing.T) {
	_, err := NewWorld([]*country.Country{
		simpleCountry("Albia"),
		simpleCountry("Albia"),
	}, entropy.NewSource(1))
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestNewWorldValidatesCountries(t *testing.T) {
	cases := map[string]func(*country.Country){
		"empty name":         func(c *country.Country) { c.Name = "" },
		"zero population":    func(c *country.Country) { c.Population = 0 },
		"negative gdp":       func(c *country.Country) { c.GDP = -1 },
		"tax above cap":      func(c *country.Country) { c.TaxRate = 0.51 },
		"negative tax":       func(c *country.Country) { c.TaxRate = -0.01 },
		"tariff above one":   func(c *country.Country) { c.TariffRate = 1.1 },
		"negative stock":     func(c *country.Country) { c.Resources[country.ResourceOil] = -5 },
		"unknown sanctionee": func(c *country.Country) { c.Sanctions["Nowhere"] = true },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			bad := simpleCountry("Albia")
			mutate(bad)
			_, err := NewWorld([]*country.Country{bad}, entropy.NewSource(1))
			assert.ErrorIs(t, err, ErrInvalidCountry)
		})
	}
}

func TestNewWorldAcceptsPreSeededSanctions(t *testing.T) {
	a := simpleCountry("Albia")
	b := simpleCountry("Borovia")
	a.Sanctions["Borovia"] = true

	w, err := NewWorld([]*country.Country{a, b}, entropy.NewSource(1))
	require.NoError(t, err)
	assert.Equal(t, a, w.Country("Albia"))
}

func TestUpdateAdvancesTurnAndStocks(t *testing.T) {
	a := simpleCountry("Albia")
	w := newTestWorld(t, a)

	w.Update()

	assert.Equal(t, uint64(1), w.Turn)
	// Production 10*0.1 + 50*0.02 = 2.0 oil; a lone country has no trade
	// partner, so the full production lands in the stockpile.
	assert.InDelta(t, 52.0, a.Resources[country.ResourceOil], 1e-9)
	assert.Greater(t, a.GDP, 0.0)
	assert.InDelta(t, a.GDP, w.Stats.TotalGDP, 1e-9)
}

func TestUpdateGDPNeverNegativeOverLongRun(t *testing.T) {
	a := simpleCountry("Albia")
	a.TaxRate = 0.5 // Effective growth pinned at the floor.
	b := simpleCountry("Borovia")
	w := newTestWorld(t, a, b)

	for i := 0; i < 300; i++ {
		w.Update()
		for _, c := range w.Countries {
			require.GreaterOrEqual(t, c.GDP, 0.0, "turn %d country %s", w.Turn, c.Name)
		}
	}
}

func TestApplyPolicyUnknownCountry(t *testing.T) {
	w := newTestWorld(t, simpleCountry("Albia"))

	err := w.ApplyPolicy("Zephyria", country.Policy{Kind: country.RaiseTaxes})
	assert.ErrorIs(t, err, ErrUnknownCountry)
}

func TestApplyPolicySanctionEmitsEvent(t *testing.T) {
	a := simpleCountry("Albia")
	b := simpleCountry("Borovia")
	w := newTestWorld(t, a, b)

	require.NoError(t, w.ApplyPolicy("Albia", country.Policy{Kind: country.Sanction, Target: "Borovia"}))

	require.Len(t, w.Events, 1)
	assert.Equal(t, "sanction", w.Events[0].Category)
	assert.True(t, a.HasSanctioned("Borovia"))

	// Re-sanctioning is a silent no-op and must not emit again.
	require.NoError(t, w.ApplyPolicy("Albia", country.Policy{Kind: country.Sanction, Target: "Borovia"}))
	assert.Len(t, w.Events, 1)
}

func TestUpdateSummarizesNewSanctionsThenResets(t *testing.T) {
	a := simpleCountry("Albia")
	b := simpleCountry("Borovia")
	w := newTestWorld(t, a, b)

	require.NoError(t, w.ApplyPolicy("Albia", country.Policy{Kind: country.Sanction, Target: "Borovia"}))
	w.Update()

	// One event from ApplyPolicy, one from the turn summary.
	summaries := 0
	for _, e := range w.Events {
		if e.Category == "sanction" {
			summaries++
		}
	}
	assert.Equal(t, 2, summaries)
	assert.Empty(t, a.NewSanctions, "transient flags cleared after the turn")
	assert.True(t, a.HasSanctioned("Borovia"), "the sanction itself persists")
	assert.Equal(t, 1, w.Stats.SanctionsActive)
}

func TestDrainReturnsEachEventOnce(t *testing.T) {
	w := newTestWorld(t, simpleCountry("Albia"), simpleCountry("Borovia"))

	require.NoError(t, w.ApplyPolicy("Albia", country.Policy{Kind: country.Sanction, Target: "Borovia"}))
	first := w.Drain()
	require.Len(t, first, 1)

	assert.Empty(t, w.Drain())

	w.Update() // Emits the turn summary event.
	second := w.Drain()
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0].Description, second[0].Description)
}

func TestTrimEventsKeepsDrainCursorValid(t *testing.T) {
	w := newTestWorld(t, simpleCountry("Albia"))

	for i := 0; i < 1500; i++ {
		w.EmitEvent(Event{Turn: w.Turn, Description: "tick", Category: "economy"})
	}
	w.trimEvents()

	assert.Len(t, w.Events, 1000)
	assert.Len(t, w.Drain(), 1000)
	assert.Empty(t, w.Drain())
}

func TestAdvanceTurnDeterministicPerSeed(t *testing.T) {
	run := func(seed int64) []float64 {
		a := simpleCountry("Albia")
		b := simpleCountry("Borovia")
		c := simpleCountry("Cyrenia")
		w, err := NewWorld([]*country.Country{a, b, c}, entropy.NewSource(seed))
		require.NoError(t, err)

		for i := 0; i < 25; i++ {
			w.AdvanceTurn("Albia")
		}
		return []float64{a.GDP, b.GDP, c.GDP, a.Resources.Total(), b.Resources.Total(), c.Resources.Total()}
	}

	assert.Equal(t, run(7), run(7))
	assert.NotEqual(t, run(7), run(8))
}

func TestAdvanceTurnLeavesPlayerPolicyAlone(t *testing.T) {
	a := simpleCountry("Albia")
	b := simpleCountry("Borovia")
	w := newTestWorld(t, a, b)

	playerTax, playerTariff := a.TaxRate, a.TariffRate
	for i := 0; i < 50; i++ {
		w.AdvanceTurn("Albia")
	}

	// AI never moves the player's rates. The AI country's rates may move,
	// but always stay inside their clamped ranges.
	assert.Equal(t, playerTax, a.TaxRate)
	assert.Equal(t, playerTariff, a.TariffRate)
	assert.GreaterOrEqual(t, b.TaxRate, 0.0)
	assert.LessOrEqual(t, b.TaxRate, country.MaxTaxRate)
	assert.GreaterOrEqual(t, b.TariffRate, 0.0)
	assert.LessOrEqual(t, b.TariffRate, 1.0)
}
