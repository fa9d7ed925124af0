package engine

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Regulation identifies a regulatory body in the compliance catalogue
type Regulation string

const (
	RegNIST     Regulation = "NIST"
	RegPCIDSS   Regulation = "PCI-DSS"
	RegGDPR     Regulation = "GDPR"
	RegSOX      Regulation = "SOX"
	RegBaselIII Regulation = "Basel III"
	RegFFIEC    Regulation = "FFIEC"
	RegISO27001 Regulation = "ISO 27001"
	RegSWIFTCSP Regulation = "SWIFT CSP"
)

// ComplianceRequirement is one regulation's quantum-relevant obligation
type ComplianceRequirement struct {
	Regulation       Regulation `yaml:"regulation" json:"regulation"`
	RequirementID    string     `yaml:"requirement_id" json:"requirement_id"`
	Description      string     `yaml:"description" json:"description"`
	QuantumRelevance string     `yaml:"quantum_relevance" json:"quantum_relevance"`
	Deadline         string     `yaml:"deadline" json:"deadline"`
	PenaltyRange     string     `yaml:"penalty_range" json:"penalty_range"`
}

//go:embed catalogue/requirements.yaml
var requirementsYAML []byte

var requirementCatalogue = mustParseRequirements(requirementsYAML)

// ParseRequirements decodes a requirement catalogue; entries keep file order
func ParseRequirements(data []byte) ([]ComplianceRequirement, error) {
	var doc struct {
		Requirements []ComplianceRequirement `yaml:"requirements"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse requirement catalogue: %w", err)
	}
	if len(doc.Requirements) == 0 {
		return nil, fmt.Errorf("requirement catalogue is empty")
	}
	seen := make(map[Regulation]bool, len(doc.Requirements))
	for i, r := range doc.Requirements {
		if r.Regulation == "" || r.RequirementID == "" {
			return nil, fmt.Errorf("requirement %d: regulation and requirement_id are required", i+1)
		}
		if seen[r.Regulation] {
			return nil, fmt.Errorf("requirement %d: duplicate regulation %q", i+1, r.Regulation)
		}
		seen[r.Regulation] = true
	}
	return doc.Requirements, nil
}

func mustParseRequirements(data []byte) []ComplianceRequirement {
	reqs, err := ParseRequirements(data)
	if err != nil {
		panic(err)
	}
	return reqs
}

// Requirements returns a copy of the catalogue in declaration order
func Requirements() []ComplianceRequirement {
	out := make([]ComplianceRequirement, len(requirementCatalogue))
	copy(out, requirementCatalogue)
	return out
}

// StatusLevel is a compliance band derived from readiness
type StatusLevel string

const (
	StatusCompliant          StatusLevel = "Compliant"
	StatusPartiallyCompliant StatusLevel = "Partially Compliant"
	StatusInProgress         StatusLevel = "In Progress"
	StatusPlanning           StatusLevel = "Planning"
	StatusNonCompliant       StatusLevel = "Non-Compliant"
)

var statusScores = map[StatusLevel]float64{
	StatusCompliant:          100,
	StatusPartiallyCompliant: 70,
	StatusInProgress:         50,
	StatusPlanning:           30,
	StatusNonCompliant:       0,
}

// Score maps the band to its 0..100 value
func (s StatusLevel) Score() float64 {
	return statusScores[s]
}

var statusBands = []struct {
	threshold float64
	status    StatusLevel
}{
	{0.8, StatusCompliant},
	{0.6, StatusPartiallyCompliant},
	{0.4, StatusInProgress},
	{0.2, StatusPlanning},
}

// ReadinessLevel is the bank's self-assessed quantum readiness
type ReadinessLevel string

const (
	ReadinessHigh   ReadinessLevel = "High"
	ReadinessMedium ReadinessLevel = "Medium"
	ReadinessLow    ReadinessLevel = "Low"
	ReadinessNone   ReadinessLevel = "None"
)

var ReadinessLevels = []ReadinessLevel{ReadinessNone, ReadinessLow, ReadinessMedium, ReadinessHigh}

var readinessScores = map[ReadinessLevel]float64{
	ReadinessHigh:   0.8,
	ReadinessMedium: 0.5,
	ReadinessLow:    0.2,
	ReadinessNone:   0.0,
}

// BankSize is the size tier of the institution
type BankSize string

const (
	BankSmall      BankSize = "Small"
	BankMedium     BankSize = "Medium"
	BankLarge      BankSize = "Large"
	BankEnterprise BankSize = "Enterprise"
)

var BankSizes = []BankSize{BankSmall, BankMedium, BankLarge, BankEnterprise}

var baseEffortDays = map[Regulation]float64{
	RegNIST:     180,
	RegPCIDSS:   120,
	RegGDPR:     90,
	RegSOX:      60,
	RegBaselIII: 150,
	RegFFIEC:    100,
	RegISO27001: 80,
	RegSWIFTCSP: 70,
}

var statusEffortMultipliers = map[StatusLevel]float64{
	StatusCompliant:          0.1,
	StatusPartiallyCompliant: 0.4,
	StatusInProgress:         0.6,
	StatusPlanning:           0.8,
	StatusNonCompliant:       1.0,
}

var sizeEffortMultipliers = map[BankSize]float64{
	BankSmall:      0.5,
	BankMedium:     0.75,
	BankLarge:      1.0,
	BankEnterprise: 1.5,
}

var highRiskRegulations = map[Regulation]bool{
	RegPCIDSS:   true,
	RegGDPR:     true,
	RegSWIFTCSP: true,
	RegSOX:      true,
}

// ComplianceStatus is the assessed state of one requirement
type ComplianceStatus struct {
	Requirement      ComplianceRequirement `json:"requirement"`
	Status           StatusLevel           `json:"status"`
	GapAnalysis      string                `json:"gap_analysis"`
	RemediationSteps []string              `json:"remediation_steps"`
	EffortDays       int                   `json:"effort_days"`
	Risk             string                `json:"risk"`
}

// ComplianceEngine evaluates the catalogue for a bank profile
type ComplianceEngine struct {
	bankSize  BankSize
	readiness ReadinessLevel
	playbook  *RemediationPlaybook
}

// NewComplianceEngine creates an engine. An empty readiness defaults to Low.
func NewComplianceEngine(size BankSize, readiness ReadinessLevel) *ComplianceEngine {
	if readiness == "" {
		readiness = ReadinessLow
	}
	return &ComplianceEngine{
		bankSize:  size,
		readiness: readiness,
		playbook:  DefaultRemediationPlaybook(),
	}
}

// ReadinessScore maps the readiness level to 0..1 (unknown levels score as Low)
func (e *ComplianceEngine) ReadinessScore() float64 {
	if s, ok := readinessScores[e.readiness]; ok {
		return s
	}
	return readinessScores[ReadinessLow]
}

// CurrentStatus is the band for the configured readiness. It is the same for
// every requirement.
func (e *ComplianceEngine) CurrentStatus() StatusLevel {
	score := e.ReadinessScore()
	for _, b := range statusBands {
		if score >= b.threshold {
			return b.status
		}
	}
	return StatusNonCompliant
}

// AssessRequirement evaluates a single requirement
func (e *ComplianceEngine) AssessRequirement(req ComplianceRequirement) ComplianceStatus {
	status := e.CurrentStatus()
	return ComplianceStatus{
		Requirement:      req,
		Status:           status,
		GapAnalysis:      e.playbook.GapAnalysis(req, status),
		RemediationSteps: e.playbook.Steps(req, status),
		EffortDays:       e.estimateEffort(req, status),
		Risk:             nonComplianceRisk(req),
	}
}

func (e *ComplianceEngine) estimateEffort(req ComplianceRequirement, status StatusLevel) int {
	base, ok := baseEffortDays[req.Regulation]
	if !ok {
		base = 90
	}
	statusMult, ok := statusEffortMultipliers[status]
	if !ok {
		statusMult = 1.0
	}
	sizeMult, ok := sizeEffortMultipliers[e.bankSize]
	if !ok {
		sizeMult = 1.0
	}
	return int(base * statusMult * sizeMult)
}

func nonComplianceRisk(req ComplianceRequirement) string {
	if highRiskRegulations[req.Regulation] {
		return fmt.Sprintf("HIGH - %s", req.PenaltyRange)
	}
	return fmt.Sprintf("MEDIUM - %s", req.PenaltyRange)
}

// AssessAll evaluates the whole catalogue in declaration order
func (e *ComplianceEngine) AssessAll() []ComplianceStatus {
	out := make([]ComplianceStatus, 0, len(requirementCatalogue))
	for _, req := range requirementCatalogue {
		out = append(out, e.AssessRequirement(req))
	}
	return out
}

// OverallComplianceScore is the mean status score over the catalogue, 0..100
func (e *ComplianceEngine) OverallComplianceScore() float64 {
	statuses := e.AssessAll()
	var total float64
	for _, s := range statuses {
		total += s.Status.Score()
	}
	return total / float64(len(statuses))
}

// PriorityAction is an urgent first step for a lagging regulation
type PriorityAction struct {
	Regulation Regulation `json:"regulation"`
	Action     string     `json:"action"`
	EffortDays int        `json:"effort_days"`
	Risk       string     `json:"risk"`
}

// PriorityActions lists Non-Compliant and Planning requirements, largest effort first.
// Ties keep catalogue order.
func (e *ComplianceEngine) PriorityActions() []PriorityAction {
	var actions []PriorityAction
	for _, s := range e.AssessAll() {
		if s.Status != StatusNonCompliant && s.Status != StatusPlanning {
			continue
		}
		action := "Review requirements"
		if len(s.RemediationSteps) > 0 {
			action = s.RemediationSteps[0]
		}
		actions = append(actions, PriorityAction{
			Regulation: s.Requirement.Regulation,
			Action:     action,
			EffortDays: s.EffortDays,
			Risk:       s.Risk,
		})
	}
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].EffortDays > actions[j].EffortDays
	})
	return actions
}

// ComplianceRow is the flattened report form of a ComplianceStatus
type ComplianceRow struct {
	Regulation       Regulation  `json:"regulation"`
	RequirementID    string      `json:"requirement_id"`
	Description      string      `json:"description"`
	QuantumRelevance string      `json:"quantum_relevance"`
	Deadline         string      `json:"deadline"`
	CurrentStatus    StatusLevel `json:"current_status"`
	GapAnalysis      string      `json:"gap_analysis"`
	RemediationSteps []string    `json:"remediation_steps"`
	EffortDays       int         `json:"effort_days"`
	RiskLevel        string      `json:"risk_level"`
}

var ComplianceReportColumns = []string{
	"Regulation", "Requirement ID", "Description", "Quantum Relevance", "Deadline",
	"Current Status", "Gap Analysis", "Remediation Steps", "Effort (Days)", "Risk Level",
}

// ComplianceReport returns one row per requirement in catalogue order
func (e *ComplianceEngine) ComplianceReport() []ComplianceRow {
	statuses := e.AssessAll()
	rows := make([]ComplianceRow, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, ComplianceRow{
			Regulation:       s.Requirement.Regulation,
			RequirementID:    s.Requirement.RequirementID,
			Description:      s.Requirement.Description,
			QuantumRelevance: s.Requirement.QuantumRelevance,
			Deadline:         s.Requirement.Deadline,
			CurrentStatus:    s.Status,
			GapAnalysis:      s.GapAnalysis,
			RemediationSteps: s.RemediationSteps,
			EffortDays:       s.EffortDays,
			RiskLevel:        s.Risk,
		})
	}
	return rows
}

// FindRequirement looks up a requirement by regulation name, ignoring case
func FindRequirement(name string) (ComplianceRequirement, bool) {
	for _, r := range requirementCatalogue {
		if strings.EqualFold(string(r.Regulation), name) || strings.EqualFold(r.RequirementID, name) {
			return r, true
		}
	}
	return ComplianceRequirement{}, false
}
