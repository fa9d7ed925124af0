package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/qrisk-adk/pkg/config"
	"github.com/user/qrisk-adk/pkg/engine"
	"github.com/user/qrisk-adk/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "qrisk-adk",
	Short: "Quantum Risk Analyst for banks (ADK Pattern)",
	Long: `QRisk-ADK scores a bank's cryptographic assets for quantum vulnerability,
assesses post-quantum regulatory compliance and projects migration cost.
Results are available from the command line, over HTTP, or through an AI agent.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init()
		if DebugMode {
			logging.SetDebug(true)
		}
	},
}

var (
	DebugMode bool

	flagBankName      string
	flagBankSize      string
	flagReadiness     string
	flagRiskTolerance string
	flagAdvancement   float64
	flagNumSystems    int
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")

	rootCmd.PersistentFlags().StringVar(&flagBankName, "bank-name", "", "Bank name shown on reports")
	rootCmd.PersistentFlags().StringVar(&flagBankSize, "bank-size", "", "Bank size (Small, Medium, Large, Enterprise)")
	rootCmd.PersistentFlags().StringVar(&flagReadiness, "readiness", "", "Quantum readiness (None, Low, Medium, High)")
	rootCmd.PersistentFlags().StringVar(&flagRiskTolerance, "risk-tolerance", "", "Risk tolerance (Low, Medium, High)")
	rootCmd.PersistentFlags().Float64Var(&flagAdvancement, "advancement", 0, "Quantum advancement factor (1.0 = baseline, typically 0.5-2.0)")
	rootCmd.PersistentFlags().IntVar(&flagNumSystems, "num-systems", 0, "Number of systems to migrate (default depends on bank size)")
}

// loadProfile reads the config file and environment, then applies any profile flags
func loadProfile(cmd *cobra.Command) (engine.Profile, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return engine.Profile{}, err
	}
	p := cfg.Profile

	flags := cmd.Flags()
	if flags.Changed("bank-name") {
		p.BankName = flagBankName
	}
	if flags.Changed("bank-size") {
		p.BankSize = engine.BankSize(flagBankSize)
	}
	if flags.Changed("readiness") {
		p.Readiness = engine.ReadinessLevel(flagReadiness)
	}
	if flags.Changed("risk-tolerance") {
		p.RiskTolerance = engine.RiskTolerance(flagRiskTolerance)
	}
	if flags.Changed("num-systems") {
		p.NumSystems = flagNumSystems
	}
	if flags.Changed("advancement") {
		if err := engine.ValidateAdvancementFactor(flagAdvancement); err != nil {
			return engine.Profile{}, fmt.Errorf("--advancement: %w", err)
		}
		p.AdvancementFactor = flagAdvancement
	}

	p = p.WithDefaults()
	logging.Debugf("Profile: %+v", p)
	return p, nil
}

// loadInventory reads an inventory file, or returns the sample bank when path is empty
func loadInventory(path string) (*engine.Inventory, error) {
	if path == "" {
		logging.Debugf("No inventory given, using the sample bank inventory")
		return engine.SampleInventory(), nil
	}
	inv, err := engine.LoadInventory(path)
	if err != nil {
		return nil, err
	}
	logging.Debugf("Loaded %d assets from %s", len(inv.Assets), path)
	return inv, nil
}

// openOutput returns stdout for "" or "-", otherwise creates the file
func openOutput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
