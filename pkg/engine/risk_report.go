package engine

import (
	"sort"
	"strconv"
)

// RiskRow is the flattened, display-ready form of a RiskAssessment
type RiskRow struct {
	AssetName          string          `json:"asset_name"`
	Algorithm          CryptoAlgorithm `json:"algorithm"`
	UsageArea          UsageArea       `json:"usage_area"`
	DataSensitivity    Sensitivity     `json:"data_sensitivity"`
	DataVolumeGB       float64         `json:"data_volume_gb"`
	VulnerabilityScore float64         `json:"vulnerability_score"` // 0..100, one decimal
	YearsToThreat      float64         `json:"years_to_threat"`
	ThreatLevel        string          `json:"threat_level"`
	MigrationPriority  int             `json:"migration_priority"`
	MigrationCost      float64         `json:"est_migration_cost"`
	TopRecommendation  string          `json:"top_recommendation"`
}

// RiskReportColumns are the headers used by tabular renderings
var RiskReportColumns = []string{
	"Asset Name", "Algorithm", "Usage Area", "Data Sensitivity", "Data Volume (GB)",
	"Vulnerability Score", "Years to Threat", "Threat Level", "Migration Priority",
	"Est. Migration Cost ($)", "Top Recommendation",
}

// round is correctly rounded on the exact binary value, half-even on ties
func round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// NewRiskRow flattens an assessment
func NewRiskRow(a RiskAssessment) RiskRow {
	return RiskRow{
		AssetName:          a.Asset.Name,
		Algorithm:          a.Asset.Algorithm,
		UsageArea:          a.Asset.UsageArea,
		DataSensitivity:    a.Asset.DataSensitivity,
		DataVolumeGB:       a.Asset.DataVolumeGB,
		VulnerabilityScore: round(a.VulnerabilityScore*100, 1),
		YearsToThreat:      round(a.TimelineYears, 1),
		ThreatLevel:        a.ThreatLevel.String(),
		MigrationPriority:  a.MigrationPriority,
		MigrationCost:      round(a.MigrationCost, 0),
		TopRecommendation:  a.TopRecommendation(),
	}
}

// GenerateRiskReport analyzes every asset with a fresh engine; rows keep input order
func GenerateRiskReport(assets []CryptoAsset, advancementFactor float64) ([]RiskRow, error) {
	eng, err := NewVulnerabilityEngine(advancementFactor)
	if err != nil {
		return nil, err
	}

	rows := make([]RiskRow, 0, len(assets))
	for _, asset := range assets {
		rows = append(rows, NewRiskRow(eng.AnalyzeAsset(asset)))
	}
	return rows, nil
}

// RiskSummary holds the headline numbers of a risk report
type RiskSummary struct {
	TotalAssets          int            `json:"total_assets"`
	ByThreatLevel        map[string]int `json:"by_threat_level"`
	AverageVulnerability float64        `json:"average_vulnerability"`
	TotalMigrationCost   float64        `json:"total_migration_cost"`
	AverageYearsToThreat float64        `json:"average_years_to_threat"`
	HighlyVulnerableAlgs []string       `json:"highly_vulnerable_algorithms"`
	UrgentAssets         []string       `json:"urgent_assets"`
	PriorityOrder        []string       `json:"priority_order"`
}

const (
	highlyVulnerableScore = 80.0
	urgentYears           = 5.0
)

// Count returns how many assets were classified at the given level
func (s RiskSummary) Count(level ThreatLevel) int {
	return s.ByThreatLevel[level.String()]
}

// Share returns the percentage of assets at the given level
func (s RiskSummary) Share(level ThreatLevel) float64 {
	if s.TotalAssets == 0 {
		return 0
	}
	return float64(s.Count(level)) / float64(s.TotalAssets) * 100
}

// Summarize aggregates report rows into executive metrics
func Summarize(rows []RiskRow) RiskSummary {
	s := RiskSummary{
		TotalAssets:   len(rows),
		ByThreatLevel: make(map[string]int, len(ThreatLevels)),
	}
	for _, l := range ThreatLevels {
		s.ByThreatLevel[l.String()] = 0
	}
	if len(rows) == 0 {
		return s
	}

	var vulnSum, yearsSum float64
	seenAlg := make(map[CryptoAlgorithm]bool)
	for _, r := range rows {
		s.ByThreatLevel[r.ThreatLevel]++
		vulnSum += r.VulnerabilityScore
		yearsSum += r.YearsToThreat
		s.TotalMigrationCost += r.MigrationCost

		if r.VulnerabilityScore > highlyVulnerableScore && !seenAlg[r.Algorithm] {
			seenAlg[r.Algorithm] = true
			s.HighlyVulnerableAlgs = append(s.HighlyVulnerableAlgs, string(r.Algorithm))
		}
		if r.YearsToThreat < urgentYears {
			s.UrgentAssets = append(s.UrgentAssets, r.AssetName)
		}
	}
	s.AverageVulnerability = vulnSum / float64(len(rows))
	s.AverageYearsToThreat = yearsSum / float64(len(rows))

	ordered := make([]RiskRow, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MigrationPriority > ordered[j].MigrationPriority
	})
	for _, r := range ordered {
		s.PriorityOrder = append(s.PriorityOrder, r.AssetName)
	}
	return s
}
