package wrappers

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/qrisk-adk/pkg/engine"
)

// RemediationWrapper implements the Tool interface for compliance remediation planning
type RemediationWrapper struct {
	Profile engine.Profile
}

func (r *RemediationWrapper) Name() string {
	return "ListPriorityActions"
}

func (r *RemediationWrapper) Description() string {
	return "Lists the regulations that need action first (Non-Compliant or Planning), largest effort first. With a regulation it returns the full remediation plan for it."
}

func (r *RemediationWrapper) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"regulation": map[string]interface{}{
				"type":        "string",
				"description": "Regulation to return the full remediation plan for. If omitted, lists priority actions.",
			},
		},
	}
}

func (r *RemediationWrapper) Execute(ctx context.Context, args map[string]interface{}, progress func(string)) (string, error) {
	eng := r.Profile.WithDefaults().ComplianceEngine()

	regulation := stringArg(args, "regulation")

	// Case 1: full plan for one regulation
	if regulation != "" {
		req, ok := engine.FindRequirement(regulation)
		if !ok {
			return fmt.Sprintf("Regulation '%s' not found.", regulation), nil
		}
		if progress != nil {
			progress(fmt.Sprintf("Generating remediation plan for %s...", req.Regulation))
		}
		st := eng.AssessRequirement(req)

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Remediation plan for %s (%s), status %s, %d days:\n", req.Regulation, req.RequirementID, st.Status, st.EffortDays))
		for i, step := range st.RemediationSteps {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
		}
		return sb.String(), nil
	}

	// Case 2: priority list
	actions := eng.PriorityActions()
	if len(actions) == 0 {
		return fmt.Sprintf("No priority actions. Current status is %s for every regulation.", eng.CurrentStatus()), nil
	}

	var sb strings.Builder
	sb.WriteString("Priority Compliance Actions:\n")
	for i, a := range actions {
		sb.WriteString(fmt.Sprintf("%d. %s: %s (%d days, %s)\n", i+1, a.Regulation, a.Action, a.EffortDays, a.Risk))
	}
	return sb.String(), nil
}
