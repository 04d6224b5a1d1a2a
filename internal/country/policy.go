// Policy commands: the closed set of actions a player or AI can take on a
// country each turn. Every precondition failure is a silent no-op; the
// policy table has no error path.
package country

// PolicyKind enumerates the policy actions.
type PolicyKind uint8

const (
	LowerTaxes PolicyKind = iota
	RaiseTaxes
	LowerTariffs
	RaiseTariffs
	InvestInfrastructure
	Sanction
)

// NumPolicyKinds is the number of policy kinds.
const NumPolicyKinds = 6

// Policy is a policy command. Target is meaningful only for Sanction.
type Policy struct {
	Kind   PolicyKind `json:"kind"`
	Target string     `json:"target,omitempty"`
}

// String returns the policy name used in config files, logs, and the API.
func (k PolicyKind) String() string {
	switch k {
	case LowerTaxes:
		return "lower_taxes"
	case RaiseTaxes:
		return "raise_taxes"
	case LowerTariffs:
		return "lower_tariffs"
	case RaiseTariffs:
		return "raise_tariffs"
	case InvestInfrastructure:
		return "invest_in_infrastructure"
	case Sanction:
		return "sanction"
	}
	return "unknown"
}

// PolicyKindFromString maps a policy name to its kind.
func PolicyKindFromString(name string) (PolicyKind, bool) {
	switch name {
	case "lower_taxes":
		return LowerTaxes, true
	case "raise_taxes":
		return RaiseTaxes, true
	case "lower_tariffs":
		return LowerTariffs, true
	case "raise_tariffs":
		return RaiseTariffs, true
	case "invest_in_infrastructure":
		return InvestInfrastructure, true
	case "sanction":
		return Sanction, true
	}
	return 0, false
}

// Apply mutates the country according to the policy. Rate changes clamp to
// their bounds; investment requires every stock to cover the cost; sanction
// requires a target distinct from the actor and not already sanctioned.
// Returns true if state actually changed.
func (c *Country) Apply(p Policy) bool {
	switch p.Kind {
	case LowerTaxes:
		if c.TaxRate <= 0 {
			return false
		}
		c.TaxRate -= TaxStep
		if c.TaxRate < 0 {
			c.TaxRate = 0
		}
	case RaiseTaxes:
		if c.TaxRate >= MaxTaxRate {
			return false
		}
		c.TaxRate += TaxStep
		if c.TaxRate > MaxTaxRate {
			c.TaxRate = MaxTaxRate
		}
	case LowerTariffs:
		if c.TariffRate <= 0 {
			return false
		}
		c.TariffRate -= TariffStep
		if c.TariffRate < 0 {
			c.TariffRate = 0
		}
	case RaiseTariffs:
		if c.TariffRate >= 1 {
			return false
		}
		c.TariffRate += TariffStep
		if c.TariffRate > 1 {
			c.TariffRate = 1
		}
	case InvestInfrastructure:
		if !c.CanInvest() {
			return false
		}
		for i := range c.Resources {
			c.Resources[i] -= InvestCost
		}
		c.GrowthRate += InvestGrowthBonus
	case Sanction:
		if p.Target == "" || p.Target == c.Name || c.Sanctions[p.Target] {
			return false
		}
		c.Sanctions[p.Target] = true
		c.NewSanctions[p.Target] = true
	default:
		return false
	}
	return true
}
