package engine

import (
	"fmt"
	"math"
)

// ThreatLevel is an ordinal severity; higher is worse
type ThreatLevel int

const (
	ThreatMinimal ThreatLevel = iota + 1
	ThreatLow
	ThreatMedium
	ThreatHigh
	ThreatCritical
)

// ThreatLevels lists levels from most to least severe
var ThreatLevels = []ThreatLevel{ThreatCritical, ThreatHigh, ThreatMedium, ThreatLow, ThreatMinimal}

func (t ThreatLevel) String() string {
	switch t {
	case ThreatCritical:
		return "CRITICAL"
	case ThreatHigh:
		return "HIGH"
	case ThreatMedium:
		return "MEDIUM"
	case ThreatLow:
		return "LOW"
	case ThreatMinimal:
		return "MINIMAL"
	default:
		return fmt.Sprintf("ThreatLevel(%d)", int(t))
	}
}

func (t ThreatLevel) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type algorithmProfile struct {
	Vulnerability float64
	YearsToBreak  float64
}

var algorithmProfiles = map[CryptoAlgorithm]algorithmProfile{
	RSA2048:   {0.95, 5},
	RSA4096:   {0.85, 8},
	ECC256:    {0.90, 6},
	ECC384:    {0.80, 7},
	AES128:    {0.40, 15},
	AES256:    {0.20, 25},
	SHA256:    {0.35, 12},
	SHA3:      {0.15, 30},
	DES:       {1.0, 1},
	TripleDES: {0.70, 3},
}

const (
	defaultVulnerability = 0.5
	defaultYearsToBreak  = 10.0
)

var sensitivityMultipliers = map[Sensitivity]float64{
	SensitivityCritical: 1.5,
	SensitivityHigh:     1.3,
	SensitivityMedium:   1.0,
	SensitivityLow:      0.7,
}

var sensitivityBonus = map[Sensitivity]int{
	SensitivityCritical: 20,
	SensitivityHigh:     15,
	SensitivityMedium:   10,
	SensitivityLow:      5,
}

var usageAreaWeights = map[UsageArea]float64{
	CoreBanking:            1.4,
	PaymentProcessing:      1.5,
	CustomerAuthentication: 1.3,
	InternalCommunications: 0.9,
	DataStorage:            1.1,
	APISecurity:            1.2,
	MobileBanking:          1.3,
	ATMNetwork:             1.4,
}

var usageAreaBaseCost = map[UsageArea]float64{
	CoreBanking:            500000,
	PaymentProcessing:      750000,
	CustomerAuthentication: 300000,
	InternalCommunications: 100000,
	DataStorage:            400000,
	APISecurity:            250000,
	MobileBanking:          350000,
	ATMNetwork:             600000,
}

const defaultAreaBaseCost = 200000.0

var threatComplexity = map[ThreatLevel]float64{
	ThreatCritical: 1.5,
	ThreatHigh:     1.3,
	ThreatMedium:   1.1,
	ThreatLow:      1.0,
	ThreatMinimal:  0.9,
}

func lookupProfile(a CryptoAlgorithm) (algorithmProfile, bool) {
	p, ok := algorithmProfiles[a]
	return p, ok
}

func sensitivityMultiplier(s Sensitivity) float64 {
	if m, ok := sensitivityMultipliers[s]; ok {
		return m
	}
	return 1.0
}

func usageAreaWeight(u UsageArea) float64 {
	if w, ok := usageAreaWeights[u]; ok {
		return w
	}
	return 1.0
}

// RiskAssessment is the derived result for one asset
type RiskAssessment struct {
	Asset              CryptoAsset
	VulnerabilityScore float64 // 0..1
	TimelineYears      float64
	ThreatLevel        ThreatLevel
	MigrationPriority  int
	MigrationCost      float64
	Recommendations    []string
}

// TopRecommendation is the first recommendation, the one surfaced in reports
func (r RiskAssessment) TopRecommendation() string {
	if len(r.Recommendations) == 0 {
		return "N/A"
	}
	return r.Recommendations[0]
}

// VulnerabilityEngine scores assets against a quantum progress assumption
type VulnerabilityEngine struct {
	advancementFactor float64
	rules             []RecommendationRule
}

// NewVulnerabilityEngine creates an engine. The factor scales vulnerability up and
// shortens time to threat; it must be positive and finite.
func NewVulnerabilityEngine(advancementFactor float64) (*VulnerabilityEngine, error) {
	if err := ValidateAdvancementFactor(advancementFactor); err != nil {
		return nil, err
	}
	return &VulnerabilityEngine{
		advancementFactor: advancementFactor,
		rules:             DefaultRecommendationRules(),
	}, nil
}

// ValidateAdvancementFactor rejects zero, negative, NaN and infinite factors
func ValidateAdvancementFactor(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidAdvancementFactor, f)
	}
	return nil
}

// AdvancementFactor returns the configured factor
func (e *VulnerabilityEngine) AdvancementFactor() float64 {
	return e.advancementFactor
}

// VulnerabilityScore returns the exposure of an asset in [0,1]
func (e *VulnerabilityEngine) VulnerabilityScore(asset CryptoAsset) float64 {
	base := defaultVulnerability
	if p, ok := lookupProfile(asset.Algorithm); ok {
		base = p.Vulnerability
	}

	volumeFactor := math.Min(1+(asset.DataVolumeGB/1000)*0.1, 1.5)

	score := base * sensitivityMultiplier(asset.DataSensitivity) * usageAreaWeight(asset.UsageArea) * volumeFactor
	score *= e.advancementFactor

	return math.Min(score, 1.0)
}

// ThreatTimeline estimates years until the algorithm is practically broken, at least one
func (e *VulnerabilityEngine) ThreatTimeline(asset CryptoAsset) float64 {
	years := defaultYearsToBreak
	if p, ok := lookupProfile(asset.Algorithm); ok {
		years = p.YearsToBreak
	}
	return math.Max(years/e.advancementFactor, 1.0)
}

// ClassifyThreatLevel combines score and horizon. years must be positive.
func ClassifyThreatLevel(score, years float64) ThreatLevel {
	combined := score * (10 / years)

	switch {
	case combined >= 1.5:
		return ThreatCritical
	case combined >= 1.0:
		return ThreatHigh
	case combined >= 0.6:
		return ThreatMedium
	case combined >= 0.3:
		return ThreatLow
	default:
		return ThreatMinimal
	}
}

// MigrationPriority ranks remediation work in [0,100]
func MigrationPriority(level ThreatLevel, sensitivity Sensitivity, area UsageArea) int {
	base := float64(level) * 20
	bonus := float64(sensitivityBonus[sensitivity])
	usage := usageAreaWeight(area) * 10

	priority := int(base + bonus + usage)
	if priority > 100 {
		return 100
	}
	return priority
}

// MigrationCost estimates the cost of moving one asset to quantum-safe crypto
func MigrationCost(asset CryptoAsset, level ThreatLevel) float64 {
	base, ok := usageAreaBaseCost[asset.UsageArea]
	if !ok {
		base = defaultAreaBaseCost
	}
	complexity, ok := threatComplexity[level]
	if !ok {
		complexity = 1.0
	}
	volumeFactor := 1 + (asset.DataVolumeGB/10000)*0.2

	return base * complexity * volumeFactor
}

// Recommendations returns ordered advice; the first entry is the top recommendation
func (e *VulnerabilityEngine) Recommendations(asset CryptoAsset, level ThreatLevel) []string {
	return ApplyRecommendationRules(e.rules, asset, level)
}

// AnalyzeAsset runs the full scoring pipeline for one asset
func (e *VulnerabilityEngine) AnalyzeAsset(asset CryptoAsset) RiskAssessment {
	score := e.VulnerabilityScore(asset)
	years := e.ThreatTimeline(asset)
	level := ClassifyThreatLevel(score, years)
	priority := MigrationPriority(level, asset.DataSensitivity, asset.UsageArea)
	cost := MigrationCost(asset, level)
	recs := e.Recommendations(asset, level)

	return RiskAssessment{
		Asset:              asset,
		VulnerabilityScore: score,
		TimelineYears:      years,
		ThreatLevel:        level,
		MigrationPriority:  priority,
		MigrationCost:      cost,
		Recommendations:    recs,
	}
}
