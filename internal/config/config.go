// Package config provides scenario loading and generation. A scenario is the
// full construction input for a world: the ordered country list with initial
// stocks, economy figures, and policy rates.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harlandq/geosim/internal/country"
)

// Scenario describes the initial world.
type Scenario struct {
	Name      string        `yaml:"name"`
	Seed      int64         `yaml:"seed"` // 0 = non-deterministic run
	Countries []CountrySpec `yaml:"countries"`
}

// CountrySpec is the scenario entry for one country.
type CountrySpec struct {
	Name       string             `yaml:"name"`
	Resources  map[string]float64 `yaml:"resources"`
	GDP        float64            `yaml:"gdp"`
	GrowthRate float64            `yaml:"growth_rate"`
	Population float64            `yaml:"population"`
	TaxRate    float64            `yaml:"tax_rate"`
	TariffRate float64            `yaml:"tariff_rate"`
	Sanctions  []string           `yaml:"sanctions,omitempty"`
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return &s, nil
}

// Build converts the scenario into the engine's construction input.
// Unknown resource names fail here; range validation is the world's job.
func (s *Scenario) Build() ([]*country.Country, error) {
	countries := make([]*country.Country, 0, len(s.Countries))
	for _, spec := range s.Countries {
		c := country.New(spec.Name)
		c.GDP = spec.GDP
		c.GrowthRate = spec.GrowthRate
		c.Population = spec.Population
		c.TaxRate = spec.TaxRate
		c.TariffRate = spec.TariffRate

		for name, qty := range spec.Resources {
			res, ok := country.ResourceFromString(name)
			if !ok {
				return nil, fmt.Errorf("country %q: unknown resource %q", spec.Name, name)
			}
			c.Resources[res] = qty
		}
		for _, target := range spec.Sanctions {
			c.Sanctions[target] = true
		}

		countries = append(countries, c)
	}
	return countries, nil
}

// Default returns the classic four-country scenario.
func Default() *Scenario {
	return &Scenario{
		Name: "classic",
		Seed: 42,
		Countries: []CountrySpec{
			{
				Name:       "Albia",
				Resources:  map[string]float64{"oil": 50, "minerals": 20, "agriculture": 10},
				GDP:        100,
				GrowthRate: 0.02,
				Population: 8,
				TaxRate:    0.15,
				TariffRate: 0.1,
			},
			{
				Name:       "Borovia",
				Resources:  map[string]float64{"oil": 10, "minerals": 60, "agriculture": 20},
				GDP:        150,
				GrowthRate: 0.025,
				Population: 10,
				TaxRate:    0.15,
				TariffRate: 0.1,
			},
			{
				Name:       "Cyrenia",
				Resources:  map[string]float64{"oil": 20, "minerals": 10, "agriculture": 70},
				GDP:        200,
				GrowthRate: 0.03,
				Population: 12,
				TaxRate:    0.15,
				TariffRate: 0.1,
			},
			{
				Name:       "Demeria",
				Resources:  map[string]float64{"oil": 30, "minerals": 30, "agriculture": 30},
				GDP:        250,
				GrowthRate: 0.035,
				Population: 14,
				TaxRate:    0.15,
				TariffRate: 0.1,
			},
		},
	}
}
