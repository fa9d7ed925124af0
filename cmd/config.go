package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/qrisk-adk/pkg/adk"
	"github.com/user/qrisk-adk/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration (providers, models, keys)",
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Manually set API key for a provider",
	Run: func(cmd *cobra.Command, args []string) {
		provider, _ := cmd.Flags().GetString("provider")
		key, _ := cmd.Flags().GetString("key")

		if provider == "" || key == "" {
			fmt.Println("Error: --provider and --key are required")
			return
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		cfg.SetAPIKey(strings.ToLower(provider), key)
		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Printf("API key saved for provider: %s\n", provider)
	},
}

var setModelCmd = &cobra.Command{
	Use:   "set-model",
	Short: "Manually set the active provider and model",
	Run: func(cmd *cobra.Command, args []string) {
		provider, _ := cmd.Flags().GetString("provider")
		model, _ := cmd.Flags().GetString("model")

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		if provider != "" {
			cfg.SelectedProvider = strings.ToLower(provider)
		}
		if model != "" {
			cfg.SelectedModel = model
		}

		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Printf("Active configuration updated: Provider=%s, Model=%s\n", cfg.SelectedProvider, cfg.SelectedModel)
	},
}

var listModelsCmd = &cobra.Command{
	Use:   "list-models",
	Short: "List available models from the configured provider",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Println("Error loading config:", err)
			return
		}

		provider := cfg.SelectedProvider
		if provider == "" {
			fmt.Println("No provider selected. Please run 'qrisk-adk config setup'.")
			return
		}
		apiKey := cfg.GetAPIKey(provider)
		if apiKey == "" {
			fmt.Printf("No API key found for %s.\n", provider)
			return
		}

		fmt.Printf("Fetching models for %s...\n", provider)
		ctx := context.Background()
		p, err := adk.NewProvider(ctx, provider, apiKey, "")
		if err != nil {
			fmt.Println("Error initializing provider:", err)
			return
		}

		models, err := p.ListModels(ctx)
		if err != nil {
			fmt.Println("Error fetching models:", err)
			return
		}

		fmt.Printf("\nAvailable Models (%s):\n", provider)
		for _, m := range models {
			mark := " "
			if m == cfg.SelectedModel {
				mark = "*"
			}
			fmt.Printf("%s %s\n", mark, m)
		}
	},
}

var setProfileCmd = &cobra.Command{
	Use:   "set-profile",
	Short: "Save the bank profile used by every command",
	Long: `Saves the bank profile. Use the global profile flags, for example:

  qrisk-adk config set-profile --bank-name "Harbour Savings" --bank-size Medium --readiness Low`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}
		profile, err := loadProfile(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		cfg.Profile = profile

		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Printf("Profile saved: %s (%s), readiness %s, risk tolerance %s, advancement %.2f\n",
			profile.BankName, profile.BankSize, profile.Readiness, profile.RiskTolerance, profile.AdvancementFactor)
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration (keys masked)",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}
		path, _ := config.GetConfigPath()
		p := cfg.Profile
		fmt.Printf("Config file:    %s\n", path)
		fmt.Printf("Bank:           %s (%s)\n", p.BankName, p.BankSize)
		fmt.Printf("Readiness:      %s\n", p.Readiness)
		fmt.Printf("Risk tolerance: %s\n", p.RiskTolerance)
		fmt.Printf("Advancement:    %.2f\n", p.AdvancementFactor)
		if p.NumSystems > 0 {
			fmt.Printf("Systems:        %d\n", p.NumSystems)
		}
		fmt.Printf("Provider:       %s (Model: %s)\n", cfg.SelectedProvider, cfg.SelectedModel)
		for _, name := range adk.Providers {
			masked := mask(cfg.GetAPIKey(name))
			if masked == "" {
				masked = "not set"
			}
			fmt.Printf("  %-8s key: %s\n", name, masked)
		}
	},
}

// mask hides all but the last four characters of an API key
func mask(key string) string {
	switch {
	case key == "":
		return ""
	case len(key) > 4:
		return "****" + key[len(key)-4:]
	default:
		return "****"
	}
}

func init() {
	setKeyCmd.Flags().StringP("provider", "p", "", "Provider (gemini, openai)")
	setKeyCmd.Flags().StringP("key", "k", "", "API Key")

	setModelCmd.Flags().StringP("provider", "p", "", "Provider (gemini, openai)")
	setModelCmd.Flags().StringP("model", "m", "", "Model name")

	configCmd.AddCommand(setKeyCmd)
	configCmd.AddCommand(setModelCmd)
	configCmd.AddCommand(listModelsCmd)
	configCmd.AddCommand(setProfileCmd)
	configCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(configCmd)
}
