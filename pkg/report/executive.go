package report

import (
	_ "embed"
	"io"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/user/qrisk-adk/pkg/engine"
)

//go:embed templates/executive.md.tmpl
var executiveTemplate string

var executiveTmpl = template.Must(template.New("executive").Funcs(template.FuncMap{
	"date":     func(t time.Time) string { return t.Format("January 02, 2006") },
	"factor":   Factor,
	"join":     strings.Join,
	"millions": func(v float64) string { return strings.TrimSuffix(Millions(v), "M") },
	"money":    Money,
}).Parse(executiveTemplate))

// Factor prints a configured multiplier as entered, keeping one decimal for whole numbers
func Factor(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

type LevelShare struct {
	Level   string  `json:"level"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Executive bundles everything the executive report shows
type Executive struct {
	ID              string                       `json:"assessment_id"`
	GeneratedAt     time.Time                    `json:"generated_at"`
	Profile         engine.Profile               `json:"profile"`
	Summary         engine.RiskSummary           `json:"summary"`
	Distribution    []LevelShare                 `json:"distribution"`
	AverageCost     float64                      `json:"average_cost_per_asset"`
	Programme       engine.MigrationCostEstimate `json:"programme"`
	ComplianceScore float64                      `json:"compliance_score"`
	PriorityActions []engine.PriorityAction      `json:"priority_actions"`

	Critical engine.ThreatLevel `json:"-"`
	High     engine.ThreatLevel `json:"-"`
}

// NewExecutive runs all three engines for the inventory and profile
func NewExecutive(profile engine.Profile, inv *engine.Inventory, now time.Time) (*Executive, error) {
	profile = profile.WithDefaults()
	rows, err := engine.GenerateRiskReport(inv.Assets, profile.AdvancementFactor)
	if err != nil {
		return nil, err
	}
	summary := engine.Summarize(rows)

	comp := profile.ComplianceEngine()
	cost := profile.CostEngine()

	e := &Executive{
		ID:              uuid.NewString(),
		GeneratedAt:     now,
		Profile:         profile,
		Summary:         summary,
		Programme:       cost.TotalMigrationCost(inv.Algorithms(), inv.UsageAreas()),
		ComplianceScore: comp.OverallComplianceScore(),
		PriorityActions: comp.PriorityActions(),
		Critical:        engine.ThreatCritical,
		High:            engine.ThreatHigh,
	}
	if summary.TotalAssets > 0 {
		e.AverageCost = summary.TotalMigrationCost / float64(summary.TotalAssets)
	}
	for _, l := range engine.ThreatLevels {
		e.Distribution = append(e.Distribution, LevelShare{
			Level:   l.String(),
			Count:   summary.Count(l),
			Percent: summary.Share(l),
		})
	}
	return e, nil
}

// Markdown writes the executive report
func (e *Executive) Markdown(w io.Writer) error {
	return executiveTmpl.Execute(w, e)
}

// FileName is the suggested download name, e.g. executive_report_20260118.md
func (e *Executive) FileName() string {
	return "executive_report_" + e.GeneratedAt.Format("20060102") + ".md"
}
