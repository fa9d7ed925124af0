package wrappers

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/qrisk-adk/pkg/engine"
	"github.com/user/qrisk-adk/pkg/report"
)

// CostWrapper implements the Tool interface for the cost engine
type CostWrapper struct {
	Profile   engine.Profile
	Inventory *engine.Inventory
}

func (c *CostWrapper) Name() string {
	return "EstimateMigrationCost"
}

func (c *CostWrapper) Description() string {
	return "Estimates the post-quantum migration programme: total cost with breakdown, phase timeline, 10-year ROI, or delivery scenarios."
}

func (c *CostWrapper) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"view": map[string]interface{}{
				"type":        "string",
				"description": "What to return. Defaults to summary.",
				"enum":        []string{"summary", "timeline", "roi", "scenarios"},
			},
			"bank_size": map[string]interface{}{
				"type":        "string",
				"description": "Override the bank size: Small, Medium, Large or Enterprise",
			},
			"num_systems": map[string]interface{}{
				"type":        "integer",
				"description": "Number of systems to migrate. Defaults to the bank size tier.",
			},
			"risk_tolerance": map[string]interface{}{
				"type":        "string",
				"description": "Low, Medium or High; sets the contingency rate",
			},
			"algorithms": map[string]interface{}{
				"type":        "array",
				"description": "Algorithms to migrate. Defaults to those in the loaded inventory.",
				"items":       map[string]interface{}{"type": "string"},
			},
			"usage_areas": map[string]interface{}{
				"type":        "array",
				"description": "Usage areas involved. Defaults to those in the loaded inventory.",
				"items":       map[string]interface{}{"type": "string"},
			},
		},
	}
}

func (c *CostWrapper) inputs(args map[string]interface{}) ([]engine.CryptoAlgorithm, []engine.UsageArea) {
	var algs []engine.CryptoAlgorithm
	for _, name := range stringSliceArg(args, "algorithms") {
		alg, err := engine.ParseAlgorithm(name)
		if err != nil {
			alg = engine.CryptoAlgorithm(name)
		}
		algs = append(algs, alg)
	}
	var areas []engine.UsageArea
	for _, a := range stringSliceArg(args, "usage_areas") {
		areas = append(areas, engine.UsageArea(a))
	}
	if c.Inventory != nil {
		if len(algs) == 0 {
			algs = c.Inventory.Algorithms()
		}
		if len(areas) == 0 {
			areas = c.Inventory.UsageAreas()
		}
	}
	return algs, areas
}

func (c *CostWrapper) Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error) {
	p := c.Profile.WithDefaults()
	if v := stringArg(args, "bank_size"); v != "" {
		p.BankSize = engine.BankSize(v)
	}
	if v := stringArg(args, "risk_tolerance"); v != "" {
		p.RiskTolerance = engine.RiskTolerance(v)
	}
	n, ok, err := floatArg(args, "num_systems")
	if err != nil {
		return fmt.Sprintf("Error: %v", err), nil
	}
	if ok {
		p.NumSystems = int(n)
	}
	eng := p.CostEngine()

	view := strings.ToLower(stringArg(args, "view"))
	if progress != nil {
		progress(fmt.Sprintf("Estimating %s for a %s bank (%d systems)...", view, p.BankSize, eng.NumSystems()))
	}

	var sb strings.Builder
	switch view {
	case "timeline":
		sb.WriteString("Migration Timeline:\n")
		for _, r := range eng.CostTimeline() {
			sb.WriteString(fmt.Sprintf("Months %d-%d: %s (%s, cumulative %s)\n",
				r.StartMonth, r.EndMonth, r.Phase, report.Money(r.PhaseCost), report.Money(r.CumulativeCost)))
		}
	case "roi":
		algs, areas := c.inputs(args)
		est := eng.TotalMigrationCost(algs, areas)
		sb.WriteString(fmt.Sprintf("10-Year ROI on %s investment:\n", report.Money(est.TotalCost)))
		for _, r := range engine.ROIAnalysis(est) {
			sb.WriteString(fmt.Sprintf("Year %d: savings %s, net %s, ROI %.1f%%\n",
				r.Year, report.Money(r.AnnualSavings), report.Money(r.NetBenefit), r.ROIPercent))
		}
	case "scenarios":
		sb.WriteString("Delivery Scenarios:\n")
		for _, r := range eng.CompareScenarios() {
			sb.WriteString(fmt.Sprintf("%s: %s over %d months, %s risk, ROI in %.1f years\n",
				r.Scenario, report.Money(r.TotalCost), r.TimelineMonths, r.RiskLevel, r.ROIYears))
		}
	default:
		algs, areas := c.inputs(args)
		est := eng.TotalMigrationCost(algs, areas)
		sb.WriteString(fmt.Sprintf("Migration Cost Estimate (%s bank, %s risk tolerance):\n", p.BankSize, p.RiskTolerance))
		for _, l := range est.CostBreakdown {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", l.Category, report.Money(l.Cost)))
		}
		sb.WriteString(fmt.Sprintf("Total: %s over %d months. Annual risk savings %s, payback in %.1f years.",
			report.Money(est.TotalCost), est.TimelineMonths, report.Money(est.AnnualSavings), est.ROIYears))
	}
	return sb.String(), nil
}
