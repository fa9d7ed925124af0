package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/qrisk-adk/pkg/adk"
	"github.com/user/qrisk-adk/pkg/config"
	"github.com/user/qrisk-adk/pkg/engine"
	"github.com/user/qrisk-adk/pkg/report"
)

const noProvider = "none"

type providerFactory func(ctx context.Context, name, apiKey, model string) (adk.LLMProvider, error)

// setupWizard walks a user through the bank profile and, optionally, an AI analyst
type setupWizard struct {
	in          *bufio.Scanner
	out         io.Writer
	newProvider providerFactory
}

func newSetupWizard(in io.Reader, out io.Writer, newProvider providerFactory) *setupWizard {
	return &setupWizard{in: bufio.NewScanner(in), out: out, newProvider: newProvider}
}

// read returns the next trimmed answer; ok is false once input is exhausted
func (w *setupWizard) read() (string, bool) {
	if !w.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(w.in.Text()), true
}

// choose asks until the answer matches one of options (case-insensitive) or is blank
func (w *setupWizard) choose(label, current string, options []string) string {
	for {
		fmt.Fprintf(w.out, "%s (%s) [%s] > ", label, strings.Join(options, "/"), current)
		answer, ok := w.read()
		if !ok || answer == "" {
			return current
		}
		for _, o := range options {
			if strings.EqualFold(o, answer) {
				return o
			}
		}
		fmt.Fprintf(w.out, "  %q is not one of %s\n", answer, strings.Join(options, ", "))
	}
}

func (w *setupWizard) text(label, current string) string {
	fmt.Fprintf(w.out, "%s [%s] > ", label, current)
	if answer, ok := w.read(); ok && answer != "" {
		return answer
	}
	return current
}

func (w *setupWizard) number(label string, current float64, valid func(float64) bool) float64 {
	for {
		fmt.Fprintf(w.out, "%s [%g] > ", label, current)
		answer, ok := w.read()
		if !ok || answer == "" {
			return current
		}
		v, err := strconv.ParseFloat(answer, 64)
		if err == nil && valid(v) {
			return v
		}
		fmt.Fprintf(w.out, "  %q is not a valid value\n", answer)
	}
}

func names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func (w *setupWizard) profile(p engine.Profile) engine.Profile {
	fmt.Fprintln(w.out, "[1/3] Institution profile (Enter keeps the current value)")
	p.BankName = w.text("Bank name", p.BankName)
	p.BankSize = engine.BankSize(w.choose("Size category", string(p.BankSize), names(engine.BankSizes)))
	p.Readiness = engine.ReadinessLevel(w.choose("Quantum readiness", string(p.Readiness), names(engine.ReadinessLevels)))
	p.RiskTolerance = engine.RiskTolerance(w.choose("Risk tolerance", string(p.RiskTolerance), names(engine.RiskTolerances)))

	fmt.Fprintln(w.out, "\n[2/3] Threat and cost assumptions")
	p.AdvancementFactor = w.number("Quantum advancement factor, 0.5 slow to 2.0 fast", p.AdvancementFactor,
		func(v float64) bool { return v > 0 })
	systems := w.number("Systems in scope, 0 derives from size", float64(p.NumSystems),
		func(v float64) bool { return v >= 0 && v == float64(int(v)) })
	p.NumSystems = int(systems)
	return p
}

// analyst configures the optional LLM provider; it returns false when skipped or unusable
func (w *setupWizard) analyst(ctx context.Context, cfg *config.Config) bool {
	fmt.Fprintln(w.out, "\n[3/3] AI analyst for 'qrisk-adk interactive'")
	current := noProvider
	if cfg.SelectedProvider != "" && cfg.GetAPIKey(cfg.SelectedProvider) != "" {
		current = cfg.SelectedProvider
	}
	provider := w.choose("Provider", current, append(append([]string{}, adk.Providers...), noProvider))
	if provider == noProvider {
		fmt.Fprintln(w.out, "  Skipped. Reports and the API work without a provider.")
		return false
	}

	apiKey := w.text(fmt.Sprintf("%s API key", provider), mask(cfg.GetAPIKey(provider)))
	if apiKey == mask(cfg.GetAPIKey(provider)) {
		apiKey = cfg.GetAPIKey(provider)
	}
	if apiKey == "" {
		fmt.Fprintln(w.out, "  No key given; analyst not configured.")
		return false
	}

	model := cfg.SelectedModel
	llm, err := w.newProvider(ctx, provider, apiKey, "")
	var models []string
	if err == nil {
		models, err = llm.ListModels(ctx)
	}
	if err == nil && len(models) == 0 {
		err = fmt.Errorf("provider returned no models")
	}
	if err != nil {
		fmt.Fprintf(w.out, "  Could not list models: %v\n", err)
		model = w.text("Model name", model)
	} else {
		if model == "" || !contains(models, model) {
			model = models[0]
		}
		for i, m := range models {
			fmt.Fprintf(w.out, "  %2d. %s\n", i+1, m)
		}
		idx := w.number("Model number", float64(indexOf(models, model)+1),
			func(v float64) bool { return v >= 1 && v <= float64(len(models)) && v == float64(int(v)) })
		model = models[int(idx)-1]
	}
	if model == "" {
		fmt.Fprintln(w.out, "  No model chosen; analyst not configured.")
		return false
	}

	cfg.SelectedProvider = provider
	cfg.SelectedModel = model
	cfg.SetAPIKey(provider, apiKey)
	return true
}

func contains(list []string, s string) bool { return indexOf(list, s) >= 0 }

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// run updates cfg in place and prints a short preview of the resulting posture
func (w *setupWizard) run(ctx context.Context, cfg *config.Config) error {
	fmt.Fprintln(w.out, "QRisk-ADK setup")
	cfg.Profile = w.profile(cfg.Profile.WithDefaults())
	if _, err := cfg.Profile.VulnerabilityEngine(); err != nil {
		return err
	}
	withAnalyst := w.analyst(ctx, cfg)

	comp := cfg.Profile.ComplianceEngine()
	est := cfg.Profile.CostEngine().TotalMigrationCost(nil, nil)
	fmt.Fprintf(w.out, "\n%s: %s readiness, compliance score %.1f%%, default programme %s over %d months\n",
		cfg.Profile.BankName, comp.CurrentStatus(), comp.OverallComplianceScore(), report.Millions(est.TotalCost), est.TimelineMonths)
	if withAnalyst {
		fmt.Fprintf(w.out, "Analyst: %s / %s\n", cfg.SelectedProvider, cfg.SelectedModel)
	}
	return nil
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the bank profile and the optional AI analyst",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		w := newSetupWizard(os.Stdin, cmd.OutOrStdout(), adk.NewProvider)
		if err := w.run(context.Background(), cfg); err != nil {
			return err
		}
		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		path, _ := config.GetConfigPath()
		fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s. Try 'qrisk-adk report' next.\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(setupCmd)
}
