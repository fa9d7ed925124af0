package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/qrisk-adk/pkg/engine"
	"github.com/user/qrisk-adk/pkg/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score an asset inventory for quantum vulnerability",
	Run: func(cmd *cobra.Command, args []string) {
		inventoryPath, _ := cmd.Flags().GetString("inventory")
		formatStr, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("output")
		summaryOnly, _ := cmd.Flags().GetBool("summary")

		format, err := report.ParseFormat(formatStr)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
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

		rows, err := engine.GenerateRiskReport(inv.Assets, profile.AdvancementFactor)
		if err != nil {
			fmt.Printf("Error analyzing inventory: %v\n", err)
			return
		}

		out, closeOut, err := openOutput(outPath)
		if err != nil {
			fmt.Printf("Error opening output: %v\n", err)
			return
		}
		defer closeOut()

		summary := engine.Summarize(rows)
		if summaryOnly {
			if format == report.FormatJSON {
				if err := report.WriteJSON(out, summary); err != nil {
					fmt.Printf("Error writing summary: %v\n", err)
				}
				return
			}
			printSummary(out, summary)
			return
		}

		if err := report.RiskTable(rows).Write(out, format); err != nil {
			fmt.Printf("Error writing report: %v\n", err)
			return
		}
		if format == report.FormatTable {
			fmt.Fprintln(out)
			printSummary(out, summary)
		}
	},
}

func printSummary(w io.Writer, s engine.RiskSummary) {
	fmt.Fprintf(w, "Total Cryptographic Assets: %d (%d Critical, %d High)\n",
		s.TotalAssets, s.Count(engine.ThreatCritical), s.Count(engine.ThreatHigh))
	fmt.Fprintf(w, "Average Vulnerability Score: %.1f%%\n", s.AverageVulnerability)
	fmt.Fprintf(w, "Est. Total Migration Cost: %s\n", report.Millions(s.TotalMigrationCost))
	fmt.Fprintf(w, "Avg. Years to Threat: %.1f yrs\n", s.AverageYearsToThreat)
	if len(s.HighlyVulnerableAlgs) > 0 {
		fmt.Fprintf(w, "Highly vulnerable algorithms in use: %s\n", strings.Join(s.HighlyVulnerableAlgs, ", "))
	}
	if len(s.UrgentAssets) > 0 {
		fmt.Fprintf(w, "Assets with <5 year threat window: %s\n", strings.Join(s.UrgentAssets, ", "))
	}
}

func init() {
	analyzeCmd.Flags().StringP("inventory", "i", "", "YAML inventory file (defaults to the sample bank)")
	analyzeCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	analyzeCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	analyzeCmd.Flags().Bool("summary", false, "Print only the executive metrics")
	rootCmd.AddCommand(analyzeCmd)
}
