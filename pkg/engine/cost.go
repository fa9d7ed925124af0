package engine

import "math"

// MigrationPhase is a stage of the migration programme
type MigrationPhase string

const (
	PhaseAssessment MigrationPhase = "Assessment & Planning"
	PhasePilot      MigrationPhase = "Pilot Implementation"
	PhaseMigration  MigrationPhase = "Full Migration"
	PhaseValidation MigrationPhase = "Testing & Validation"
	PhaseDeployment MigrationPhase = "Production Deployment"
	PhaseMonitoring MigrationPhase = "Ongoing Monitoring"
)

// Phases are listed in execution order
var Phases = []MigrationPhase{
	PhaseAssessment, PhasePilot, PhaseMigration, PhaseValidation, PhaseDeployment, PhaseMonitoring,
}

// CostComponent holds the fixed cost drivers of a phase
type CostComponent struct {
	Category              string
	Description           string
	BaseCost              float64
	VariableCostPerSystem float64
	TimelineMonths        int
}

var costComponents = map[MigrationPhase]CostComponent{
	PhaseAssessment: {"Assessment", "Cryptographic inventory and risk assessment", 150000, 5000, 3},
	PhasePilot:      {"Pilot", "Proof of concept and pilot implementation", 300000, 15000, 6},
	PhaseMigration:  {"Migration", "Full system migration to PQC", 500000, 25000, 12},
	PhaseValidation: {"Validation", "Security testing and compliance validation", 200000, 8000, 4},
	PhaseDeployment: {"Deployment", "Production rollout and cutover", 250000, 12000, 3},
	PhaseMonitoring: {"Monitoring", "Ongoing monitoring and maintenance (annual)", 100000, 3000, 12},
}

// Component returns the cost drivers for a phase
func Component(phase MigrationPhase) (CostComponent, bool) {
	c, ok := costComponents[phase]
	return c, ok
}

var algorithmMigrationCosts = map[CryptoAlgorithm]float64{
	RSA2048:   75000,
	RSA4096:   85000,
	ECC256:    65000,
	ECC384:    70000,
	AES128:    40000,
	AES256:    35000,
	SHA256:    30000,
	SHA3:      25000,
	DES:       90000,
	TripleDES: 80000,
}

const defaultAlgorithmMigrationCost = 50000.0

var usageAreaComplexity = map[UsageArea]float64{
	CoreBanking:            2.0,
	PaymentProcessing:      2.2,
	CustomerAuthentication: 1.5,
	InternalCommunications: 0.8,
	DataStorage:            1.3,
	APISecurity:            1.2,
	MobileBanking:          1.4,
	ATMNetwork:             1.8,
}

type sizeProfile struct {
	Systems    int
	Multiplier float64
}

var bankSizeProfiles = map[BankSize]sizeProfile{
	BankSmall:      {50, 0.5},
	BankMedium:     {200, 0.8},
	BankLarge:      {500, 1.0},
	BankEnterprise: {2000, 1.5},
}

// RiskTolerance selects how much contingency is budgeted
type RiskTolerance string

const (
	ToleranceLow    RiskTolerance = "Low"
	ToleranceMedium RiskTolerance = "Medium"
	ToleranceHigh   RiskTolerance = "High"
)

var RiskTolerances = []RiskTolerance{ToleranceLow, ToleranceMedium, ToleranceHigh}

var contingencyRates = map[RiskTolerance]float64{
	ToleranceLow:    0.15,
	ToleranceMedium: 0.25,
	ToleranceHigh:   0.35,
}

// ContingencyRate maps a tolerance to its contingency fraction (unknown → Medium)
func ContingencyRate(t RiskTolerance) float64 {
	if r, ok := contingencyRates[t]; ok {
		return r
	}
	return contingencyRates[ToleranceMedium]
}

var (
	DefaultCostAlgorithms = []CryptoAlgorithm{RSA2048, ECC256, AES256}
	DefaultCostUsageAreas = []UsageArea{CoreBanking, PaymentProcessing, CustomerAuthentication}
)

const (
	CategoryAlgorithmMigration = "Algorithm-Specific Migration"
	CategoryRiskContingency    = "Risk Contingency"

	baseAnnualRiskCost = 1000000.0
	breachProbability  = 0.15
	savingsGrowthRate  = 1.05
	roiHorizonYears    = 10
	defaultROIYears    = 10.0
)

// CostLine is one entry in a cost breakdown
type CostLine struct {
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
}

// CostBreakdown keeps categories in computation order
type CostBreakdown []CostLine

// Get returns the cost of a category
func (b CostBreakdown) Get(category string) (float64, bool) {
	for _, l := range b {
		if l.Category == category {
			return l.Cost, true
		}
	}
	return 0, false
}

// Sum adds every line
func (b CostBreakdown) Sum() float64 {
	var total float64
	for _, l := range b {
		total += l.Cost
	}
	return total
}

// MigrationCostEstimate is the programme-level cost projection
type MigrationCostEstimate struct {
	TotalCost       float64       `json:"total_cost"`
	CostBreakdown   CostBreakdown `json:"cost_breakdown"`
	TimelineMonths  int           `json:"timeline_months"`
	RiskContingency float64       `json:"risk_contingency"`
	ROIYears        float64       `json:"roi_years"`
	AnnualSavings   float64       `json:"annual_savings"`
}

// CostEngine projects programme cost for a bank size and risk tolerance
type CostEngine struct {
	bankSize        BankSize
	numSystems      int
	sizeMultiplier  float64
	contingencyRate float64
}

// NewCostEngine creates an engine. numSystems <= 0 selects the size tier default;
// unknown sizes are costed as Large.
func NewCostEngine(size BankSize, numSystems int, tolerance RiskTolerance) *CostEngine {
	profile, ok := bankSizeProfiles[size]
	if !ok {
		profile = bankSizeProfiles[BankLarge]
	}
	if numSystems <= 0 {
		numSystems = profile.Systems
	}
	return &CostEngine{
		bankSize:        size,
		numSystems:      numSystems,
		sizeMultiplier:  profile.Multiplier,
		contingencyRate: ContingencyRate(tolerance),
	}
}

func (e *CostEngine) NumSystems() int { return e.numSystems }

func (e *CostEngine) SizeMultiplier() float64 { return e.sizeMultiplier }

func (e *CostEngine) ContingencyRate() float64 { return e.contingencyRate }

// PhaseCost is base×size multiplier + per-system cost × systems
func (e *CostEngine) PhaseCost(phase MigrationPhase) float64 {
	c, ok := costComponents[phase]
	if !ok {
		return 0
	}
	return c.BaseCost*e.sizeMultiplier + c.VariableCostPerSystem*float64(e.numSystems)
}

// AlgorithmMigrationCost sums the per-algorithm replacement cost
func (e *CostEngine) AlgorithmMigrationCost(algorithms []CryptoAlgorithm) float64 {
	var total float64
	for _, alg := range algorithms {
		base, ok := algorithmMigrationCosts[alg]
		if !ok {
			base = defaultAlgorithmMigrationCost
		}
		total += base * e.sizeMultiplier
	}
	return total
}

// ComplexityFactor is the mean complexity of the usage areas; empty input uses the defaults
func ComplexityFactor(areas []UsageArea) float64 {
	if len(areas) == 0 {
		areas = DefaultCostUsageAreas
	}
	var sum float64
	for _, a := range areas {
		c, ok := usageAreaComplexity[a]
		if !ok {
			c = 1.0
		}
		sum += c
	}
	return sum / float64(len(areas))
}

// AnnualRiskCost is the yearly expected loss the migration avoids
func (e *CostEngine) AnnualRiskCost() float64 {
	return baseAnnualRiskCost * e.sizeMultiplier * breachProbability * (1 + float64(e.numSystems)/1000)
}

// TotalMigrationCost projects the full programme. Empty inputs select the defaults.
func (e *CostEngine) TotalMigrationCost(algorithms []CryptoAlgorithm, areas []UsageArea) MigrationCostEstimate {
	return e.totalMigrationCost(algorithms, areas, e.contingencyRate)
}

func (e *CostEngine) totalMigrationCost(algorithms []CryptoAlgorithm, areas []UsageArea, contingencyRate float64) MigrationCostEstimate {
	if len(algorithms) == 0 {
		algorithms = DefaultCostAlgorithms
	}

	breakdown := make(CostBreakdown, 0, len(Phases)+2)
	timeline := 0
	for _, phase := range Phases {
		breakdown = append(breakdown, CostLine{Category: string(phase), Cost: e.PhaseCost(phase)})
		if phase != PhaseMonitoring {
			timeline += costComponents[phase].TimelineMonths
		}
	}
	breakdown = append(breakdown, CostLine{Category: CategoryAlgorithmMigration, Cost: e.AlgorithmMigrationCost(algorithms)})

	factor := ComplexityFactor(areas)
	for i := range breakdown {
		breakdown[i].Cost *= factor
	}

	subtotal := breakdown.Sum()
	contingency := subtotal * contingencyRate
	breakdown = append(breakdown, CostLine{Category: CategoryRiskContingency, Cost: contingency})
	total := subtotal + contingency

	annual := e.AnnualRiskCost()
	roi := defaultROIYears
	if annual > 0 {
		roi = total / annual
	}

	return MigrationCostEstimate{
		TotalCost:       total,
		CostBreakdown:   breakdown,
		TimelineMonths:  timeline,
		RiskContingency: contingency,
		ROIYears:        roi,
		AnnualSavings:   annual,
	}
}

// TimelineRow is one phase in the programme schedule
type TimelineRow struct {
	Phase          MigrationPhase `json:"phase"`
	StartMonth     int            `json:"start_month"`
	EndMonth       int            `json:"end_month"`
	DurationMonths int            `json:"duration_months"`
	PhaseCost      float64        `json:"phase_cost"`
	CumulativeCost float64        `json:"cumulative_cost"`
}

// CostTimeline schedules the non-monitoring phases back to back
func (e *CostEngine) CostTimeline() []TimelineRow {
	var (
		rows       []TimelineRow
		months     int
		cumulative float64
	)
	for _, phase := range Phases {
		if phase == PhaseMonitoring {
			continue
		}
		c := costComponents[phase]
		cost := e.PhaseCost(phase)
		cumulative += cost

		start := months + 1
		end := months + c.TimelineMonths
		months = end

		rows = append(rows, TimelineRow{
			Phase:          phase,
			StartMonth:     start,
			EndMonth:       end,
			DurationMonths: c.TimelineMonths,
			PhaseCost:      cost,
			CumulativeCost: cumulative,
		})
	}
	return rows
}

// ROIRow is one year of the savings projection
type ROIRow struct {
	Year              int     `json:"year"`
	AnnualSavings     float64 `json:"annual_risk_savings"`
	CumulativeSavings float64 `json:"cumulative_savings"`
	NetBenefit        float64 `json:"net_benefit"`
	ROIPercent        float64 `json:"roi_percent"`
}

// ROIAnalysis projects ten years of avoided risk cost growing 5% a year
func ROIAnalysis(estimate MigrationCostEstimate) []ROIRow {
	rows := make([]ROIRow, 0, roiHorizonYears)
	var cumulative float64
	for year := 1; year <= roiHorizonYears; year++ {
		savings := estimate.AnnualSavings * math.Pow(savingsGrowthRate, float64(year-1))
		cumulative += savings
		net := cumulative - estimate.TotalCost

		var roi float64
		if estimate.TotalCost > 0 {
			roi = net / estimate.TotalCost * 100
		}
		rows = append(rows, ROIRow{
			Year:              year,
			AnnualSavings:     savings,
			CumulativeSavings: cumulative,
			NetBenefit:        net,
			ROIPercent:        roi,
		})
	}
	return rows
}

// Scenario is a what-if delivery pace
type Scenario struct {
	Name           string
	TimelineFactor float64
	Tolerance      RiskTolerance
}

var Scenarios = []Scenario{
	{"Aggressive (2-year)", 0.7, ToleranceHigh},
	{"Standard (3-year)", 1.0, ToleranceMedium},
	{"Conservative (5-year)", 1.5, ToleranceLow},
}

// ScenarioRow is the projected outcome of a scenario
type ScenarioRow struct {
	Scenario       string        `json:"scenario"`
	TotalCost      float64       `json:"total_cost"`
	TimelineMonths int           `json:"timeline_months"`
	RiskLevel      RiskTolerance `json:"risk_level"`
	ROIYears       float64       `json:"roi_years"`
}

// CompareScenarios costs each scenario with the default algorithms and usage areas.
// The engine's own contingency rate is never touched.
func (e *CostEngine) CompareScenarios() []ScenarioRow {
	rows := make([]ScenarioRow, 0, len(Scenarios))
	for _, s := range Scenarios {
		est := e.totalMigrationCost(nil, nil, ContingencyRate(s.Tolerance))
		rows = append(rows, ScenarioRow{
			Scenario:       s.Name,
			TotalCost:      est.TotalCost * s.TimelineFactor,
			TimelineMonths: int(float64(est.TimelineMonths) * s.TimelineFactor),
			RiskLevel:      s.Tolerance,
			ROIYears:       est.ROIYears * s.TimelineFactor,
		})
	}
	return rows
}
