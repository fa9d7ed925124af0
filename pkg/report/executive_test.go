package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/qrisk-adk/pkg/engine"
)

func TestExecutiveMarkdown(t *testing.T) {
	now := time.Date(2026, time.January, 18, 9, 30, 0, 0, time.UTC)
	exec, err := NewExecutive(engine.DefaultProfile(), engine.SampleInventory(), now)
	require.NoError(t, err)

	_, err = uuid.Parse(exec.ID)
	require.NoError(t, err)
	assert.Equal(t, "executive_report_20260118.md", exec.FileName())
	require.Len(t, exec.Distribution, 5)
	assert.Equal(t, "CRITICAL", exec.Distribution[0].Level)
	assert.InDelta(t, 40.0, exec.Distribution[0].Percent, 1e-9)

	var buf bytes.Buffer
	require.NoError(t, exec.Markdown(&buf))
	out := buf.String()

	assert.Contains(t, out, "**Bank Name:** Sample Bank Corp")
	assert.Contains(t, out, "**Assessment Date:** January 18, 2026")
	assert.Contains(t, out, "**Bank Size Category:** Large")
	assert.Contains(t, out, "**Total Cryptographic Assets Analyzed:** 10")
	assert.Contains(t, out, "**Critical Threat Assets:** 4")
	assert.Contains(t, out, "**High Threat Assets:** 3")
	assert.Contains(t, out, "- CRITICAL: 4 assets (40.0%)")
	assert.Contains(t, out, "- MINIMAL: 1 assets (10.0%)")
	assert.Contains(t, out, "ATM Communication")
	assert.Contains(t, out, "**Overall Compliance Score:** 30.0%")
	assert.Contains(t, out, "Quantum Advancement Factor = 1.0, Readiness = Low")
	assert.Contains(t, out, "1. **Immediate Actions (0-6 months)**")
}

func TestExecutiveKeepsConfiguredFactor(t *testing.T) {
	p := engine.DefaultProfile()
	p.AdvancementFactor = 1.25
	exec, err := NewExecutive(p, engine.SampleInventory(), time.Now())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exec.Markdown(&buf))
	assert.Contains(t, buf.String(), "Quantum Advancement Factor = 1.25, Readiness = Low")

	assert.Equal(t, "2.0", Factor(2))
	assert.Equal(t, "0.75", Factor(0.75))
}

func TestExecutiveEmptyInventory(t *testing.T) {
	exec, err := NewExecutive(engine.Profile{}, &engine.Inventory{}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0.0, exec.AverageCost)

	var buf bytes.Buffer
	require.NoError(t, exec.Markdown(&buf))
	assert.Contains(t, buf.String(), "- CRITICAL: 0 assets (0.0%)")
}

func TestExecutiveRejectsBadFactor(t *testing.T) {
	p := engine.DefaultProfile()
	p.AdvancementFactor = -1
	_, err := NewExecutive(p, engine.SampleInventory(), time.Now())
	assert.ErrorIs(t, err, engine.ErrInvalidAdvancementFactor)
}
