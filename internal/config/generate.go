// Procedural scenario generation using simplex noise. Each country sits at a
// point on a noise field per resource; the field value decides how rich its
// endowment of that resource is, so generated worlds have regional character
// instead of uniform stocks.
package config

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/harlandq/geosim/internal/country"
)

// Generation bounds. Endowments interpolate between poor and rich with the
// noise value; economy figures scale with the country index so generated
// worlds have the same spread as the classic scenario.
const (
	genPoorStock = 5.0
	genRichStock = 75.0
	genBaseGDP   = 100.0
	genGDPStep   = 50.0
	genBasePop   = 8.0
	genPopStep   = 2.0
)

// Generate builds an n-country scenario from a seed. The same seed and n
// always yield the same scenario.
func Generate(seed int64, n int) (*Scenario, error) {
	if n < 2 {
		return nil, fmt.Errorf("generate scenario: need at least 2 countries, got %d", n)
	}

	// One independent noise layer per resource kind.
	var layers [country.NumResources]opensimplex.Noise
	for i := range layers {
		layers[i] = opensimplex.NewNormalized(seed + int64(i))
	}

	s := &Scenario{
		Name: fmt.Sprintf("generated-%d", seed),
		Seed: seed,
	}

	for i := 0; i < n; i++ {
		// Spread countries along the noise field; the stride keeps
		// neighbors decorrelated.
		x := float64(i) * 2.7

		resources := make(map[string]float64, country.NumResources)
		for j, res := range country.Resources {
			v := layers[j].Eval2(x, 0.5)
			resources[res.String()] = genPoorStock + v*(genRichStock-genPoorStock)
		}

		s.Countries = append(s.Countries, CountrySpec{
			Name:       countryName(i),
			Resources:  resources,
			GDP:        genBaseGDP + float64(i)*genGDPStep,
			GrowthRate: 0.02 + float64(i)*0.005,
			Population: genBasePop + float64(i)*genPopStep,
			TaxRate:    0.15,
			TariffRate: 0.1,
		})
	}

	return s, nil
}

// nameParts combine into pronounceable country names; indexes beyond the
// combination space get a numeric suffix.
var namePrefixes = []string{"Al", "Bor", "Cyr", "Dem", "Er", "Fal", "Gal", "Hesp", "Ist", "Jor"}
var nameSuffixes = []string{"bia", "ovia", "enia", "eria", "mark", "land", "ia", "onia"}

func countryName(i int) string {
	prefix := namePrefixes[i%len(namePrefixes)]
	suffix := nameSuffixes[(i/len(namePrefixes))%len(nameSuffixes)]
	name := prefix + suffix
	round := i / (len(namePrefixes) * len(nameSuffixes))
	if round > 0 {
		name = fmt.Sprintf("%s-%d", name, round+1)
	}
	return name
}
