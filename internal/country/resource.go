package country

// Resource enumerates the fixed set of tradeable resource kinds.
type Resource uint8

const (
	ResourceOil         Resource = iota // Energy
	ResourceMinerals                    // Industry
	ResourceAgriculture                 // Food
)

// NumResources is the total number of resource kinds.
const NumResources = 3

// Resources lists all resource kinds in declaration order.
var Resources = [NumResources]Resource{ResourceOil, ResourceMinerals, ResourceAgriculture}

// Stockpile is a fixed-size array holding the quantity of each resource kind.
// Replaces map[string]float64; every country carries the identical kind set
// by construction, and iteration order is stable.
type Stockpile [NumResources]float64

// Total returns the sum across all resource kinds.
func (s Stockpile) Total() float64 {
	t := 0.0
	for _, q := range s {
		t += q
	}
	return t
}

// Min returns the smallest single stock.
func (s Stockpile) Min() float64 {
	m := s[0]
	for _, q := range s[1:] {
		if q < m {
			m = q
		}
	}
	return m
}

// String returns the resource kind name used in config files and the API.
func (r Resource) String() string {
	switch r {
	case ResourceOil:
		return "oil"
	case ResourceMinerals:
		return "minerals"
	case ResourceAgriculture:
		return "agriculture"
	}
	return "unknown"
}

// ResourceFromString maps a resource name to its kind.
func ResourceFromString(name string) (Resource, bool) {
	switch name {
	case "oil":
		return ResourceOil, true
	case "minerals":
		return ResourceMinerals, true
	case "agriculture":
		return ResourceAgriculture, true
	}
	return 0, false
}
