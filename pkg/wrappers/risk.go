package wrappers

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/qrisk-adk/pkg/engine"
	"github.com/user/qrisk-adk/pkg/report"
)

// RiskWrapper implements the Tool interface for the vulnerability engine
type RiskWrapper struct {
	Profile   engine.Profile
	Inventory *engine.Inventory
}

func (r *RiskWrapper) Name() string {
	return "AnalyzeCryptoRisk"
}

func (r *RiskWrapper) Description() string {
	return "Scores cryptographic assets for quantum vulnerability. With no asset fields it analyzes the loaded inventory; with an algorithm it analyzes that single asset."
}

func (r *RiskWrapper) Schema() map[string]interface{} {
	algs := make([]string, len(engine.Algorithms))
	for i, a := range engine.Algorithms {
		algs[i] = string(a)
	}
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name": map[string]interface{}{
				"type":        "string",
				"description": "Asset name for a single-asset analysis",
			},
			"algorithm": map[string]interface{}{
				"type":        "string",
				"description": "Algorithm of the single asset. Omit to analyze the whole inventory.",
				"enum":        algs,
			},
			"key_size": map[string]interface{}{
				"type":        "integer",
				"description": "Key size in bits",
			},
			"usage_area": map[string]interface{}{
				"type":        "string",
				"description": "Where the asset is used, e.g. 'Core Banking', 'ATM Network'",
			},
			"data_sensitivity": map[string]interface{}{
				"type":        "string",
				"description": "Critical, High, Medium or Low",
			},
			"data_volume_gb": map[string]interface{}{
				"type":        "number",
				"description": "Estimated volume of protected data in GB",
			},
			"quantum_advancement": map[string]interface{}{
				"type":        "number",
				"description": "Quantum advancement factor, 1.0 is the baseline. Higher means faster progress.",
			},
		},
	}
}

func (r *RiskWrapper) assets(args map[string]interface{}) ([]engine.CryptoAsset, error) {
	alg := stringArg(args, "algorithm")
	if alg == "" {
		if r.Inventory == nil {
			return engine.SampleInventory().Assets, nil
		}
		return r.Inventory.Assets, nil
	}

	parsed, err := engine.ParseAlgorithm(alg)
	if err != nil {
		return nil, err
	}
	keySize, ok, err := floatArg(args, "key_size")
	if err != nil {
		return nil, err
	}
	if !ok {
		keySize = 256
	}
	volume, _, err := floatArg(args, "data_volume_gb")
	if err != nil {
		return nil, err
	}
	name := stringArg(args, "name")
	if name == "" {
		name = string(parsed) + " asset"
	}
	sensitivity := stringArg(args, "data_sensitivity")
	if sensitivity == "" {
		sensitivity = string(engine.SensitivityMedium)
	}

	inv := &engine.Inventory{}
	err = inv.Add(engine.CryptoAsset{
		Name:            name,
		Algorithm:       parsed,
		KeySize:         int(keySize),
		UsageArea:       engine.UsageArea(stringArg(args, "usage_area")),
		DataSensitivity: engine.Sensitivity(sensitivity),
		DataVolumeGB:    volume,
	})
	if err != nil {
		return nil, err
	}
	return inv.Assets, nil
}

func (r *RiskWrapper) Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error) {
	assets, err := r.assets(args)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}

	factor := r.Profile.WithDefaults().AdvancementFactor
	if f, ok, err := floatArg(args, "quantum_advancement"); err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	} else if ok {
		factor = f
	}

	if progress != nil {
		progress(fmt.Sprintf("Scoring %d assets at advancement factor %.2f...", len(assets), factor))
	}

	rows, err := engine.GenerateRiskReport(assets, factor)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Quantum Risk Analysis (advancement factor %.2f):\n\n", factor))
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("[%s] %s (%s, %s)\n", row.ThreatLevel, row.AssetName, row.Algorithm, row.UsageArea))
		sb.WriteString(fmt.Sprintf("  Vulnerability: %.1f%%  Years to threat: %.1f  Priority: %d  Est. cost: %s\n",
			row.VulnerabilityScore, row.YearsToThreat, row.MigrationPriority, report.Money(row.MigrationCost)))
		sb.WriteString(fmt.Sprintf("  Recommendation: %s\n\n", row.TopRecommendation))
	}

	s := engine.Summarize(rows)
	var levels []string
	for _, l := range engine.ThreatLevels {
		levels = append(levels, fmt.Sprintf("%d %s", s.Count(l), l))
	}
	sb.WriteString(fmt.Sprintf("Summary: %d Assets (%s), Total migration cost %s",
		s.TotalAssets, strings.Join(levels, ", "), report.Money(s.TotalMigrationCost)))
	if len(s.UrgentAssets) > 0 {
		sb.WriteString(fmt.Sprintf("\nUnder 5 years to threat: %s", strings.Join(s.UrgentAssets, ", ")))
	}
	return sb.String(), nil
}
