package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/user/qrisk-adk/pkg/engine"
	"github.com/user/qrisk-adk/pkg/report"
)

// Catalog lists the enumerations a client needs to build its forms
func (s *Server) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"algorithms":       engine.Algorithms,
		"usage_areas":      engine.UsageAreas,
		"sensitivities":    engine.Sensitivities,
		"bank_sizes":       engine.BankSizes,
		"readiness_levels": engine.ReadinessLevels,
		"risk_tolerances":  engine.RiskTolerances,
		"phases":           engine.Phases,
		"requirements":     engine.Requirements(),
	})
}

func (s *Server) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, s.profile)
}

type riskRequest struct {
	Assets            []engine.CryptoAsset `json:"assets"`
	AdvancementFactor *float64             `json:"quantum_advancement"`
}

// Risk scores the posted assets, or the server inventory when none are sent
func (s *Server) Risk(c *gin.Context) {
	var req riskRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	inv := s.inventory
	if len(req.Assets) > 0 {
		inv = &engine.Inventory{}
		for i, a := range req.Assets {
			if err := inv.Add(a); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "index": i})
				return
			}
		}
	}

	factor := s.profile.AdvancementFactor
	if req.AdvancementFactor != nil {
		factor = *req.AdvancementFactor
	}

	rows, err := engine.GenerateRiskReport(inv.Assets, factor)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, engine.ErrInvalidAdvancementFactor) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessment_id": uuid.NewString(),
		"rows":          rows,
		"summary":       engine.Summarize(rows),
	})
}

// Compliance assesses the catalogue for ?bank_size= and ?readiness=, defaulting to the profile
func (s *Server) Compliance(c *gin.Context) {
	size := engine.BankSize(c.DefaultQuery("bank_size", string(s.profile.BankSize)))
	readiness := engine.ReadinessLevel(c.DefaultQuery("readiness", string(s.profile.Readiness)))

	eng := engine.NewComplianceEngine(size, readiness)
	c.JSON(http.StatusOK, gin.H{
		"bank_size":        size,
		"readiness":        readiness,
		"status":           eng.CurrentStatus(),
		"overall_score":    eng.OverallComplianceScore(),
		"requirements":     eng.ComplianceReport(),
		"priority_actions": eng.PriorityActions(),
	})
}

type costRequest struct {
	BankSize      engine.BankSize      `json:"bank_size"`
	NumSystems    int                  `json:"num_systems"`
	RiskTolerance engine.RiskTolerance `json:"risk_tolerance"`
	Algorithms    []string             `json:"algorithms"`
	UsageAreas    []engine.UsageArea   `json:"usage_areas"`
}

// Cost projects programme cost. Unknown algorithm names are costed at the default rate.
func (s *Server) Cost(c *gin.Context) {
	var req costRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.BankSize == "" {
		req.BankSize = s.profile.BankSize
	}
	if req.RiskTolerance == "" {
		req.RiskTolerance = s.profile.RiskTolerance
	}
	if req.NumSystems == 0 {
		req.NumSystems = s.profile.NumSystems
	}

	algs := make([]engine.CryptoAlgorithm, 0, len(req.Algorithms))
	for _, name := range req.Algorithms {
		alg, err := engine.ParseAlgorithm(name)
		if err != nil {
			alg = engine.CryptoAlgorithm(strings.TrimSpace(name))
		}
		algs = append(algs, alg)
	}

	eng := engine.NewCostEngine(req.BankSize, req.NumSystems, req.RiskTolerance)
	est := eng.TotalMigrationCost(algs, req.UsageAreas)
	c.JSON(http.StatusOK, gin.H{
		"num_systems": eng.NumSystems(),
		"estimate":    est,
		"timeline":    eng.CostTimeline(),
		"roi":         engine.ROIAnalysis(est),
		"scenarios":   eng.CompareScenarios(),
	})
}

// ExecutiveReport renders the executive report for the server inventory.
// ?format=json returns the underlying figures instead of Markdown.
func (s *Server) ExecutiveReport(c *gin.Context) {
	exec, err := report.NewExecutive(s.profile, s.inventory, s.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if strings.EqualFold(c.Query("format"), "json") {
		c.JSON(http.StatusOK, exec)
		return
	}

	var sb strings.Builder
	if err := exec.Markdown(&sb); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exec.FileName()+`"`)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(sb.String()))
}
