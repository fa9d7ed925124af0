package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/qrisk-adk/pkg/adk"
	"github.com/user/qrisk-adk/pkg/config"
	"github.com/user/qrisk-adk/pkg/wrappers"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start the interactive analyst agent session",
	Run: func(cmd *cobra.Command, args []string) {
		inventoryPath, _ := cmd.Flags().GetString("inventory")

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}
		profile, err := loadProfile(cmd)
		if err != nil {
			fmt.Printf("Error loading profile: %v\n", err)
			return
		}
		inv, err := loadInventory(inventoryPath)
		if err != nil {
			fmt.Printf("Error loading inventory: %v\n", err)
			return
		}

		providerName := cfg.SelectedProvider
		if providerName == "" {
			providerName = "gemini" // Default
		}

		// config.LoadConfig already falls back to GOOGLE_API_KEY / OPENAI_API_KEY
		apiKey := cfg.GetAPIKey(providerName)
		if apiKey == "" {
			fmt.Println("Error: API Key not found.")
			fmt.Println("Please run 'qrisk-adk config setup' to configure your keys.")
			return
		}

		ctx := context.Background()
		modelName := cfg.SelectedModel
		fmt.Printf("Connecting to %s (Model: %s)...\n", providerName, modelName)

		provider, err := adk.NewProvider(ctx, providerName, apiKey, modelName)
		if err != nil {
			fmt.Printf("Error creating AI provider: %v\n", err)
			return
		}
		if closer, ok := provider.(interface{ Close() }); ok {
			defer closer.Close()
		}

		agent := adk.NewAgent(provider)

		// Register Tools
		agent.RegisterTool(&wrappers.RiskWrapper{Profile: profile, Inventory: inv})
		agent.RegisterTool(&wrappers.ComplianceWrapper{Profile: profile})
		agent.RegisterTool(&wrappers.RemediationWrapper{Profile: profile})
		agent.RegisterTool(&wrappers.CostWrapper{Profile: profile, Inventory: inv})

		agent.SetSystemPrompt(adk.GetSystemPrompt() +
			fmt.Sprintf("\nThe bank is %s (%s), readiness %s, risk tolerance %s, %d assets loaded.\n",
				profile.BankName, profile.BankSize, profile.Readiness, profile.RiskTolerance, len(inv.Assets)))

		// Start chat loop
		scanner := bufio.NewScanner(os.Stdin)
		fmt.Println("\n---------------------------------------------------------")
		fmt.Println("QRisk-ADK Analyst Initialized. Ready for questions.")
		fmt.Println("Example: 'Which assets need to migrate first?'")
		fmt.Println("Example: 'What would an aggressive two-year programme cost?'")
		fmt.Println("Type 'reset' to clear the conversation, 'quit' or 'exit' to stop.")
		fmt.Println("---------------------------------------------------------")

		for {
			fmt.Print("\n> ")
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "quit" || input == "exit" {
				break
			}
			if input == "reset" {
				agent.Reset()
				fmt.Println("Conversation cleared.")
				continue
			}
			if input == "" {
				continue
			}

			fmt.Print("Agent thinking... ")
			resp, err := agent.Chat(ctx, input, func(msg string) {
				// Clear current line and print progress
				fmt.Printf("\r\033[K[Progress]: %s\nAgent thinking... ", msg)
			})
			// Clear thinking line
			fmt.Print("\r\033[K")

			if err != nil {
				fmt.Printf("Error: %v\n", err)
			} else {
				fmt.Printf("\n[Agent]: %s\n", resp)
			}
		}
	},
}

func init() {
	interactiveCmd.Flags().StringP("inventory", "i", "", "YAML inventory file (defaults to the sample bank)")
	rootCmd.AddCommand(interactiveCmd)
}
