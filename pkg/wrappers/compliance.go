package wrappers

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/qrisk-adk/pkg/engine"
)

// ComplianceWrapper implements the Tool interface for the compliance engine
type ComplianceWrapper struct {
	Profile engine.Profile
}

func (c *ComplianceWrapper) Name() string {
	return "AssessCompliance"
}

func (c *ComplianceWrapper) Description() string {
	return "Assesses post-quantum regulatory compliance (NIST, PCI-DSS, GDPR, SOX, Basel III, FFIEC, ISO 27001, SWIFT CSP) for the bank's readiness level. Can assess one regulation or all of them."
}

func (c *ComplianceWrapper) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"regulation": map[string]interface{}{
				"type":        "string",
				"description": "Regulation or requirement ID to assess (e.g. 'PCI-DSS', 'GDPR-Art-32'). If omitted, assesses all regulations.",
			},
			"readiness": map[string]interface{}{
				"type":        "string",
				"description": "Override the quantum readiness level: None, Low, Medium or High",
			},
			"bank_size": map[string]interface{}{
				"type":        "string",
				"description": "Override the bank size: Small, Medium, Large or Enterprise",
			},
		},
	}
}

func (c *ComplianceWrapper) newEngine(args map[string]interface{}) *engine.ComplianceEngine {
	p := c.Profile.WithDefaults()
	if v := stringArg(args, "readiness"); v != "" {
		p.Readiness = engine.ReadinessLevel(v)
	}
	if v := stringArg(args, "bank_size"); v != "" {
		p.BankSize = engine.BankSize(v)
	}
	return p.ComplianceEngine()
}

func (c *ComplianceWrapper) Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error) {
	eng := c.newEngine(args)

	regulation := stringArg(args, "regulation")
	statuses := eng.AssessAll()
	if regulation != "" {
		req, ok := engine.FindRequirement(regulation)
		if !ok {
			var names []string
			for _, r := range engine.Requirements() {
				names = append(names, string(r.Regulation))
			}
			return fmt.Sprintf("Regulation '%s' not found. Available: %s", regulation, strings.Join(names, ", ")), nil
		}
		statuses = []engine.ComplianceStatus{eng.AssessRequirement(req)}
	}

	if progress != nil {
		progress(fmt.Sprintf("Assessing %d requirements...", len(statuses)))
	}

	var sb strings.Builder
	sb.WriteString("Post-Quantum Compliance Assessment:\n\n")

	for _, s := range statuses {
		sb.WriteString(fmt.Sprintf("[%s] %s %s: %s\n", s.Status, s.Requirement.Regulation, s.Requirement.RequirementID, s.Requirement.Description))
		sb.WriteString(fmt.Sprintf("  Deadline: %s  Effort: %d days\n", s.Requirement.Deadline, s.EffortDays))
		sb.WriteString(fmt.Sprintf("  Gap: %s\n", s.GapAnalysis))
		sb.WriteString(fmt.Sprintf("  Risk: %s\n", s.Risk))
		sb.WriteString(fmt.Sprintf("  Next step: %s\n\n", s.RemediationSteps[0]))
	}

	sb.WriteString(fmt.Sprintf("Summary: %d Requirements, Status %s, Overall score %.1f%%",
		len(statuses), eng.CurrentStatus(), eng.OverallComplianceScore()))
	return sb.String(), nil
}
