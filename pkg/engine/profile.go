package engine

// Profile is the caller's bank configuration. It is passed by value into the engine
// constructors; engines keep no reference to it.
type Profile struct {
	BankName          string         `yaml:"bank_name" json:"bank_name"`
	BankSize          BankSize       `yaml:"bank_size" json:"bank_size"`
	NumSystems        int            `yaml:"num_systems,omitempty" json:"num_systems,omitempty"`
	Readiness         ReadinessLevel `yaml:"quantum_readiness" json:"quantum_readiness"`
	RiskTolerance     RiskTolerance  `yaml:"risk_tolerance" json:"risk_tolerance"`
	AdvancementFactor float64        `yaml:"quantum_advancement" json:"quantum_advancement"`
}

// DefaultProfile mirrors the defaults of the interactive dashboard
func DefaultProfile() Profile {
	return Profile{
		BankName:          "Sample Bank Corp",
		BankSize:          BankLarge,
		Readiness:         ReadinessLow,
		RiskTolerance:     ToleranceMedium,
		AdvancementFactor: 1.0,
	}
}

// WithDefaults fills zero-valued fields from DefaultProfile
func (p Profile) WithDefaults() Profile {
	d := DefaultProfile()
	if p.BankName == "" {
		p.BankName = d.BankName
	}
	if p.BankSize == "" {
		p.BankSize = d.BankSize
	}
	if p.Readiness == "" {
		p.Readiness = d.Readiness
	}
	if p.RiskTolerance == "" {
		p.RiskTolerance = d.RiskTolerance
	}
	if p.AdvancementFactor == 0 {
		p.AdvancementFactor = d.AdvancementFactor
	}
	return p
}

// VulnerabilityEngine builds a scoring engine for the profile's advancement factor
func (p Profile) VulnerabilityEngine() (*VulnerabilityEngine, error) {
	return NewVulnerabilityEngine(p.AdvancementFactor)
}

func (p Profile) ComplianceEngine() *ComplianceEngine {
	return NewComplianceEngine(p.BankSize, p.Readiness)
}

func (p Profile) CostEngine() *CostEngine {
	return NewCostEngine(p.BankSize, p.NumSystems, p.RiskTolerance)
}
