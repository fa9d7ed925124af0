package engine

import (
	"bytes"
	"fmt"
	"text/template"
)

// RemediationPlaybook holds the gap-analysis templates and remediation step lists
// used by the compliance engine
type RemediationPlaybook struct {
	gapTemplates map[StatusLevel]*template.Template
	baseSteps    []string
	buildSteps   []string
	accelSteps   []string
	closingStep  string
}

var gapTemplateText = map[StatusLevel]string{
	StatusCompliant:          "No significant gaps identified. Maintain current controls and monitor for updates.",
	StatusPartiallyCompliant: "Partial implementation of {{.Description}}. Key gaps in quantum-specific controls.",
	StatusInProgress:         "Active remediation underway for {{.RequirementID}}. Timeline adherence critical.",
	StatusPlanning:           "Planning phase for {{.Description}}. Detailed roadmap required.",
	StatusNonCompliant:       "Significant gaps in meeting {{.RequirementID}}. Immediate action required.",
}

// DefaultRemediationPlaybook parses the built-in templates
func DefaultRemediationPlaybook() *RemediationPlaybook {
	p := &RemediationPlaybook{
		gapTemplates: make(map[StatusLevel]*template.Template, len(gapTemplateText)),
		baseSteps: []string{
			"Conduct detailed assessment against {{.RequirementID}} requirements",
			"Document current cryptographic inventory",
			"Identify quantum-vulnerable systems",
		},
		buildSteps: []string{
			"Develop quantum migration roadmap",
			"Allocate budget for compliance program",
			"Engage external auditors for gap assessment",
			"Establish governance committee for oversight",
		},
		accelSteps: []string{
			"Accelerate current migration activities",
			"Conduct internal audit of progress",
			"Document evidence of compliance efforts",
		},
		closingStep: "Implement continuous monitoring and reporting",
	}
	for status, text := range gapTemplateText {
		p.gapTemplates[status] = template.Must(template.New(string(status)).Parse(text))
	}
	return p
}

// GapAnalysis renders the gap text for a requirement in the given band
func (p *RemediationPlaybook) GapAnalysis(req ComplianceRequirement, status StatusLevel) string {
	tmpl, ok := p.gapTemplates[status]
	if !ok {
		tmpl = p.gapTemplates[StatusNonCompliant]
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		// templates are fixed and only reference string fields
		return fmt.Sprintf("Gap analysis unavailable for %s", req.RequirementID)
	}
	return buf.String()
}

// Steps builds the ordered remediation plan
func (p *RemediationPlaybook) Steps(req ComplianceRequirement, status StatusLevel) []string {
	steps := make([]string, 0, len(p.baseSteps)+len(p.buildSteps)+1)
	for i, s := range p.baseSteps {
		rendered, err := renderString(fmt.Sprintf("step-%d", i), s, req)
		if err != nil {
			rendered = s
		}
		steps = append(steps, rendered)
	}

	switch status {
	case StatusNonCompliant, StatusPlanning:
		steps = append(steps, p.buildSteps...)
	case StatusInProgress, StatusPartiallyCompliant:
		steps = append(steps, p.accelSteps...)
	}

	return append(steps, p.closingStep)
}

func renderString(name, tmplStr string, data interface{}) (string, error) {
	t, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
