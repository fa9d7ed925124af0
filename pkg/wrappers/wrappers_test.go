package wrappers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/qrisk-adk/pkg/adk"
	"github.com/user/qrisk-adk/pkg/engine"
)

var _ = []adk.Tool{
	&RiskWrapper{}, &ComplianceWrapper{}, &RemediationWrapper{}, &CostWrapper{},
}

func run(t *testing.T, tool adk.Tool, args map[string]interface{}) string {
	t.Helper()
	var progress []string
	out, err := tool.Execute(context.Background(), args, func(m string) { progress = append(progress, m) })
	require.NoError(t, err)
	return out
}

func TestRiskWrapperInventory(t *testing.T) {
	tool := &RiskWrapper{Profile: engine.DefaultProfile(), Inventory: engine.SampleInventory()}
	out := run(t, tool, map[string]interface{}{})

	assert.Contains(t, out, "[CRITICAL] Core Banking TLS (RSA-2048, Core Banking)")
	assert.Contains(t, out, "Summary: 10 Assets (4 CRITICAL, 3 HIGH, 1 MEDIUM, 1 LOW, 1 MINIMAL)")
	assert.Contains(t, out, "Under 5 years to threat: ATM Communication")
}

func TestRiskWrapperSingleAsset(t *testing.T) {
	tool := &RiskWrapper{}
	out := run(t, tool, map[string]interface{}{
		"algorithm":        "des",
		"key_size":         float64(56),
		"usage_area":       "Core Banking",
		"data_sensitivity": "Critical",
	})
	assert.Contains(t, out, "[CRITICAL] DES asset (DES, Core Banking)")
	assert.Contains(t, out, "Priority: 100")
	assert.Contains(t, out, "Est. cost: $750,000")
	assert.Contains(t, out, "IMMEDIATE: Replace with AES-256")
}

func TestRiskWrapperErrors(t *testing.T) {
	tool := &RiskWrapper{}
	out := run(t, tool, map[string]interface{}{"algorithm": "RC4"})
	assert.True(t, strings.HasPrefix(out, "Error:"), out)

	out = run(t, tool, map[string]interface{}{"quantum_advancement": float64(-1)})
	assert.Contains(t, out, "positive finite")

	out = run(t, tool, map[string]interface{}{"quantum_advancement": "soon"})
	assert.True(t, strings.HasPrefix(out, "Error:"), out)
}

func TestComplianceWrapper(t *testing.T) {
	tool := &ComplianceWrapper{Profile: engine.DefaultProfile()}

	out := run(t, tool, map[string]interface{}{})
	assert.Contains(t, out, "[Planning] NIST NIST-PQC-2024")
	assert.Contains(t, out, "Summary: 8 Requirements, Status Planning, Overall score 30.0%")

	out = run(t, tool, map[string]interface{}{"regulation": "pci-dss", "readiness": "High"})
	assert.Contains(t, out, "[Compliant] PCI-DSS")
	assert.Contains(t, out, "Summary: 1 Requirements")

	out = run(t, tool, map[string]interface{}{"regulation": "HIPAA"})
	assert.Contains(t, out, "Regulation 'HIPAA' not found")
}

func TestRemediationWrapper(t *testing.T) {
	tool := &RemediationWrapper{Profile: engine.DefaultProfile()}

	out := run(t, tool, map[string]interface{}{})
	assert.True(t, strings.HasPrefix(out, "Priority Compliance Actions:\n1. NIST: "), out)

	out = run(t, tool, map[string]interface{}{"regulation": "GDPR"})
	assert.Contains(t, out, "Remediation plan for GDPR (GDPR-Art-32), status Planning")
	assert.Contains(t, out, "8. Implement continuous monitoring and reporting")

	ready := &RemediationWrapper{Profile: engine.Profile{Readiness: engine.ReadinessHigh}}
	out = run(t, ready, map[string]interface{}{})
	assert.Contains(t, out, "No priority actions")
}

func TestCostWrapperViews(t *testing.T) {
	tool := &CostWrapper{Profile: engine.DefaultProfile()}

	out := run(t, tool, map[string]interface{}{})
	assert.Contains(t, out, "Migration Cost Estimate (Large bank, Medium risk tolerance)")
	assert.Contains(t, out, "Assessment & Planning: $2,650,000")
	assert.Contains(t, out, "over 28 months")

	out = run(t, tool, map[string]interface{}{"view": "timeline"})
	assert.Contains(t, out, "Months 1-3: Assessment & Planning")
	assert.Contains(t, out, "Months 26-28: Production Deployment")

	out = run(t, tool, map[string]interface{}{"view": "roi"})
	assert.Contains(t, out, "Year 10:")

	out = run(t, tool, map[string]interface{}{"view": "scenarios", "bank_size": "Small"})
	assert.Contains(t, out, "Aggressive (2-year):")
	assert.Contains(t, out, "over 19 months")

	out = run(t, tool, map[string]interface{}{"num_systems": "lots"})
	assert.True(t, strings.HasPrefix(out, "Error:"), out)
}

func TestCostWrapperUsesInventoryInputs(t *testing.T) {
	inv := &engine.Inventory{}
	require.NoError(t, inv.Add(engine.CryptoAsset{Name: "HSM", Algorithm: engine.DES, KeySize: 56, UsageArea: engine.InternalCommunications, DataSensitivity: engine.SensitivityLow, DataVolumeGB: 0}))

	withInv := &CostWrapper{Profile: engine.DefaultProfile(), Inventory: inv}
	explicit := &CostWrapper{Profile: engine.DefaultProfile()}

	a := run(t, withInv, map[string]interface{}{})
	b := run(t, explicit, map[string]interface{}{
		"algorithms":  []interface{}{"DES"},
		"usage_areas": "Internal Communications",
	})
	assert.Equal(t, a, b)
}

func TestStringSliceArg(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, stringSliceArg(map[string]interface{}{"k": " a, ,b "}, "k"))
	assert.Equal(t, []string{"x"}, stringSliceArg(map[string]interface{}{"k": []interface{}{"x", ""}}, "k"))
	assert.Nil(t, stringSliceArg(map[string]interface{}{}, "k"))
}
