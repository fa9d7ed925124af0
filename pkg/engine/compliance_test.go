package engine

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverallComplianceScoreByReadiness(t *testing.T) {
	tests := []struct {
		readiness ReadinessLevel
		want      float64
		status    StatusLevel
	}{
		{ReadinessHigh, 100.0, StatusCompliant},
		{ReadinessMedium, 50.0, StatusInProgress},
		{ReadinessLow, 30.0, StatusPlanning},
		{ReadinessNone, 0.0, StatusNonCompliant},
		{"Unheard-of", 30.0, StatusPlanning},
		{"", 30.0, StatusPlanning},
	}
	for _, tt := range tests {
		eng := NewComplianceEngine(BankLarge, tt.readiness)
		assert.Equal(t, tt.want, eng.OverallComplianceScore(), "readiness %q", tt.readiness)
		assert.Equal(t, tt.status, eng.CurrentStatus(), "readiness %q", tt.readiness)
	}
}

func TestAssessRequirementPlanning(t *testing.T) {
	eng := NewComplianceEngine(BankLarge, ReadinessLow)
	nist, ok := FindRequirement("NIST")
	require.True(t, ok)

	st := eng.AssessRequirement(nist)
	assert.Equal(t, StatusPlanning, st.Status)
	assert.Equal(t, "Planning phase for Post-Quantum Cryptography Standards Adoption. Detailed roadmap required.", st.GapAnalysis)
	assert.Equal(t, 144, st.EffortDays)
	assert.Equal(t, "MEDIUM - Federal contract ineligibility", st.Risk)

	require.Len(t, st.RemediationSteps, 8)
	assert.Equal(t, "Conduct detailed assessment against NIST-PQC-2024 requirements", st.RemediationSteps[0])
	assert.Equal(t, "Develop quantum migration roadmap", st.RemediationSteps[3])
	assert.Equal(t, "Implement continuous monitoring and reporting", st.RemediationSteps[7])
}

func TestAssessRequirementStepsPerBand(t *testing.T) {
	gdpr, ok := FindRequirement("gdpr")
	require.True(t, ok)

	inProgress := NewComplianceEngine(BankMedium, ReadinessMedium).AssessRequirement(gdpr)
	assert.Len(t, inProgress.RemediationSteps, 7)
	assert.Equal(t, "Accelerate current migration activities", inProgress.RemediationSteps[3])
	assert.Equal(t, "Active remediation underway for GDPR-Art-32. Timeline adherence critical.", inProgress.GapAnalysis)
	assert.Equal(t, "HIGH - Up to 4% annual turnover", inProgress.Risk)

	compliant := NewComplianceEngine(BankLarge, ReadinessHigh).AssessRequirement(gdpr)
	assert.Len(t, compliant.RemediationSteps, 4)
	assert.Equal(t, "No significant gaps identified. Maintain current controls and monitor for updates.", compliant.GapAnalysis)
	assert.Equal(t, 9, compliant.EffortDays)

	nonCompliant := NewComplianceEngine(BankSmall, ReadinessNone).AssessRequirement(gdpr)
	assert.Len(t, nonCompliant.RemediationSteps, 8)
	assert.Equal(t, "Significant gaps in meeting GDPR-Art-32. Immediate action required.", nonCompliant.GapAnalysis)
	assert.Equal(t, 45, nonCompliant.EffortDays)
}

func TestPriorityActionsSortedByEffort(t *testing.T) {
	actions := NewComplianceEngine(BankLarge, ReadinessLow).PriorityActions()
	require.Len(t, actions, 8)

	var order []Regulation
	for _, a := range actions {
		order = append(order, a.Regulation)
	}
	assert.Equal(t, []Regulation{
		RegNIST, RegBaselIII, RegPCIDSS, RegFFIEC, RegGDPR, RegISO27001, RegSWIFTCSP, RegSOX,
	}, order)
	assert.Equal(t, 144, actions[0].EffortDays)
	assert.Equal(t, "Conduct detailed assessment against NIST-PQC-2024 requirements", actions[0].Action)
	assert.True(t, sort.SliceIsSorted(actions, func(i, j int) bool {
		return actions[i].EffortDays > actions[j].EffortDays
	}))

	assert.Empty(t, NewComplianceEngine(BankLarge, ReadinessMedium).PriorityActions())
	assert.Empty(t, NewComplianceEngine(BankLarge, ReadinessHigh).PriorityActions())
}

func TestComplianceReportOrder(t *testing.T) {
	rows := NewComplianceEngine(BankEnterprise, ReadinessNone).ComplianceReport()
	require.Len(t, rows, 8)

	want := []Regulation{RegNIST, RegPCIDSS, RegGDPR, RegSOX, RegBaselIII, RegFFIEC, RegISO27001, RegSWIFTCSP}
	for i, r := range rows {
		assert.Equal(t, want[i], r.Regulation)
		assert.Equal(t, StatusNonCompliant, r.CurrentStatus)
	}
	assert.Equal(t, 270, rows[0].EffortDays)
	assert.Equal(t, "HIGH - $5,000 - $100,000/month", rows[1].RiskLevel)
}

func TestUnknownBankSizeUsesNeutralEffort(t *testing.T) {
	sox, ok := FindRequirement("SOX-302/404")
	require.True(t, ok)

	st := NewComplianceEngine("Galactic", ReadinessNone).AssessRequirement(sox)
	assert.Equal(t, 60, st.EffortDays)
}

func TestRequirementsReturnsCopy(t *testing.T) {
	reqs := Requirements()
	reqs[0].Description = "mutated"
	assert.Equal(t, "Post-Quantum Cryptography Standards Adoption", Requirements()[0].Description)
}

func TestEmbeddedCatalogueLoads(t *testing.T) {
	reqs, err := ParseRequirements(requirementsYAML)
	require.NoError(t, err)
	require.Len(t, reqs, 8)

	assert.Equal(t, RegPCIDSS, reqs[1].Regulation)
	assert.Equal(t, "$5,000 - $100,000/month", reqs[1].PenaltyRange)
	assert.Equal(t, "2024 (current), 2026+ (quantum)", reqs[1].Deadline)
	assert.Equal(t, RegISO27001, reqs[6].Regulation)
	assert.Equal(t, "ISO-27001-A.10", reqs[6].RequirementID)
	assert.Equal(t, Requirements(), reqs)
}

func TestParseRequirementsErrors(t *testing.T) {
	_, err := ParseRequirements([]byte("requirements: ["))
	assert.Error(t, err)

	_, err = ParseRequirements([]byte("requirements: []\n"))
	assert.ErrorContains(t, err, "empty")

	_, err = ParseRequirements([]byte("requirements:\n  - regulation: NIST\n"))
	assert.ErrorContains(t, err, "requirement 1")

	dup := "requirements:\n" +
		"  - {regulation: GDPR, requirement_id: A}\n" +
		"  - {regulation: GDPR, requirement_id: B}\n"
	_, err = ParseRequirements([]byte(dup))
	assert.ErrorContains(t, err, `duplicate regulation "GDPR"`)
}
