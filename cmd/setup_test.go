package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/qrisk-adk/pkg/adk"
	"github.com/user/qrisk-adk/pkg/config"
	"github.com/user/qrisk-adk/pkg/engine"
)

type stubProvider struct {
	models []string
	err    error
}

func (s stubProvider) GenerateResponse(context.Context, []adk.Message, []adk.Tool) (string, *adk.ToolCall, error) {
	return "", nil, nil
}

func (s stubProvider) ListModels(context.Context) ([]string, error) { return s.models, s.err }

func stubFactory(p stubProvider) providerFactory {
	return func(context.Context, string, string, string) (adk.LLMProvider, error) { return p, nil }
}

func TestSetupWizardFullRun(t *testing.T) {
	input := strings.Join([]string{
		"First Quantum Bank",
		"small",
		"bogus", "medium",
		"",
		"-1", "1.5",
		"",
		"OpenAI",
		"sk-test-1234",
		"2",
	}, "\n") + "\n"

	var out bytes.Buffer
	cfg := config.Default()
	w := newSetupWizard(strings.NewReader(input), &out, stubFactory(stubProvider{models: []string{"gpt-4o", "gpt-4o-mini"}}))
	require.NoError(t, w.run(context.Background(), cfg))

	p := cfg.Profile
	assert.Equal(t, "First Quantum Bank", p.BankName)
	assert.Equal(t, engine.BankSmall, p.BankSize)
	assert.Equal(t, engine.ReadinessMedium, p.Readiness)
	assert.Equal(t, engine.ToleranceMedium, p.RiskTolerance)
	assert.Equal(t, 1.5, p.AdvancementFactor)
	assert.Equal(t, 0, p.NumSystems)

	assert.Equal(t, "openai", cfg.SelectedProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.SelectedModel)
	assert.Equal(t, "sk-test-1234", cfg.GetAPIKey("openai"))

	text := out.String()
	assert.Contains(t, text, `"bogus" is not one of None, Low, Medium, High`)
	assert.Contains(t, text, `"-1" is not a valid value`)
	assert.Contains(t, text, "First Quantum Bank: In Progress readiness, compliance score 50.0%")
	assert.Contains(t, text, "Analyst: openai / gpt-4o-mini")
}

func TestSetupWizardSkipsAnalystWithoutKey(t *testing.T) {
	var out bytes.Buffer
	cfg := config.Default()
	w := newSetupWizard(strings.NewReader(""), &out, stubFactory(stubProvider{}))
	require.NoError(t, w.run(context.Background(), cfg))

	assert.Equal(t, engine.DefaultProfile(), cfg.Profile)
	assert.Empty(t, cfg.GetAPIKey("gemini"))
	assert.Contains(t, out.String(), "Skipped.")
	assert.NotContains(t, out.String(), "Analyst:")
}

func TestSetupWizardKeepsExistingKey(t *testing.T) {
	cfg := config.Default()
	cfg.SetAPIKey("gemini", "AIza-existing-9876")

	// provider, key and model number all accept their defaults
	var out bytes.Buffer
	w := newSetupWizard(strings.NewReader(strings.Repeat("\n", 10)), &out,
		stubFactory(stubProvider{models: []string{"gemini-1.5-pro", "gemini-1.5-flash"}}))
	require.NoError(t, w.run(context.Background(), cfg))

	assert.Equal(t, "AIza-existing-9876", cfg.GetAPIKey("gemini"))
	assert.Equal(t, "gemini-1.5-flash", cfg.SelectedModel)
	assert.Contains(t, out.String(), "[****9876]")
}

func TestSetupWizardManualModelWhenListingFails(t *testing.T) {
	input := strings.Repeat("\n", 6) + "gemini\nkey-abcdef\ngemini-exp\n"

	var out bytes.Buffer
	cfg := config.Default()
	cfg.SelectedModel = ""
	w := newSetupWizard(strings.NewReader(input), &out, stubFactory(stubProvider{err: errors.New("quota exceeded")}))
	require.NoError(t, w.run(context.Background(), cfg))

	assert.Equal(t, "gemini-exp", cfg.SelectedModel)
	assert.Contains(t, out.String(), "Could not list models: quota exceeded")
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", mask(""))
	assert.Equal(t, "****", mask("abc"))
	assert.Equal(t, "****wxyz", mask("sk-abcdwxyz"))
}
