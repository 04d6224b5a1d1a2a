package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harlandq/geosim/internal/config"
	"github.com/harlandq/geosim/internal/country"
	"github.com/harlandq/geosim/internal/engine"
	"github.com/harlandq/geosim/internal/entropy"
)

func TestLoadScenarioFromYAML(t *testing.T) {
	raw := `
name: duel
seed: 7
countries:
  - name: Albia
    resources:
      oil: 50
      minerals: 20
      agriculture: 10
    gdp: 100
    growth_rate: 0.02
    population: 8
    tax_rate: 0.15
    tariff_rate: 0.1
  - name: Borovia
    resources:
      oil: 10
    gdp: 150
    growth_rate: 0.025
    population: 10
    tax_rate: 0.2
    tariff_rate: 0.3
    sanctions: [Albia]
`
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "duel", s.Name)
	assert.Equal(t, int64(7), s.Seed)
	require.Len(t, s.Countries, 2)

	countries, err := s.Build()
	require.NoError(t, err)

	albia, borovia := countries[0], countries[1]
	assert.InDelta(t, 50.0, albia.Resources[country.ResourceOil], 1e-9)
	assert.InDelta(t, 0.0, borovia.Resources[country.ResourceMinerals], 1e-9)
	assert.True(t, borovia.HasSanctioned("Albia"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("countries: {not: [a, list"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestBuildRejectsUnknownResource(t *testing.T) {
	s := &config.Scenario{
		Countries: []config.CountrySpec{
			{Name: "Albia", Resources: map[string]float64{"spice": 10}, Population: 8},
		},
	}
	_, err := s.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spice")
}

func TestDefaultScenarioBuildsValidWorld(t *testing.T) {
	s := config.Default()
	countries, err := s.Build()
	require.NoError(t, err)
	require.Len(t, countries, 4)

	w, err := engine.NewWorld(countries, entropy.NewSource(s.Seed))
	require.NoError(t, err)

	// The classic setup runs without upsetting any invariant.
	for i := 0; i < 10; i++ {
		w.AdvanceTurn("Albia")
	}
	assert.Equal(t, uint64(10), w.Turn)
}

func TestGenerateDeterministicPerSeed(t *testing.T) {
	a, err := config.Generate(99, 6)
	require.NoError(t, err)
	b, err := config.Generate(99, 6)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := config.Generate(100, 6)
	require.NoError(t, err)
	assert.NotEqual(t, a.Countries, c.Countries)
}

func TestGenerateStocksWithinBounds(t *testing.T) {
	s, err := config.Generate(3, 12)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, spec := range s.Countries {
		assert.False(t, seen[spec.Name], "duplicate name %q", spec.Name)
		seen[spec.Name] = true
		for res, qty := range spec.Resources {
			assert.GreaterOrEqual(t, qty, 5.0, "%s %s", spec.Name, res)
			assert.LessOrEqual(t, qty, 75.0, "%s %s", spec.Name, res)
		}
	}
}

func TestGenerateBuildsValidWorld(t *testing.T) {
	s, err := config.Generate(11, 5)
	require.NoError(t, err)

	countries, err := s.Build()
	require.NoError(t, err)

	_, err = engine.NewWorld(countries, entropy.NewSource(s.Seed))
	require.NoError(t, err)
}

func TestGenerateRejectsTinyWorlds(t *testing.T) {
	_, err := config.Generate(1, 1)
	assert.Error(t, err)
	_, err = config.Generate(1, 0)
	assert.Error(t, err)
}
