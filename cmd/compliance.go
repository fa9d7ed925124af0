package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/qrisk-adk/pkg/engine"
	"github.com/user/qrisk-adk/pkg/report"
)

var complianceCmd = &cobra.Command{
	Use:   "compliance",
	Short: "Assess post-quantum regulatory compliance",
	Run: func(cmd *cobra.Command, args []string) {
		formatStr, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("output")
		priority, _ := cmd.Flags().GetBool("priority")
		regulation, _ := cmd.Flags().GetString("regulation")

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
		eng := profile.ComplianceEngine()

		out, closeOut, err := openOutput(outPath)
		if err != nil {
			fmt.Printf("Error opening output: %v\n", err)
			return
		}
		defer closeOut()

		if regulation != "" {
			req, ok := engine.FindRequirement(regulation)
			if !ok {
				fmt.Printf("Regulation '%s' not found.\n", regulation)
				return
			}
			st := eng.AssessRequirement(req)
			if format == report.FormatJSON {
				if err := report.WriteJSON(out, st); err != nil {
					fmt.Printf("Error writing report: %v\n", err)
				}
				return
			}
			fmt.Fprintf(out, "%s (%s): %s\n", req.Regulation, req.RequirementID, req.Description)
			fmt.Fprintf(out, "Status: %s\nGap: %s\nRisk: %s\nEffort: %d days\n", st.Status, st.GapAnalysis, st.Risk, st.EffortDays)
			for i, step := range st.RemediationSteps {
				fmt.Fprintf(out, "%d. %s\n", i+1, step)
			}
			return
		}

		table := report.ComplianceTable(eng.ComplianceReport())
		if priority {
			table = report.PriorityTable(eng.PriorityActions())
		}
		if err := table.Write(out, format); err != nil {
			fmt.Printf("Error writing report: %v\n", err)
			return
		}
		if format == report.FormatTable {
			fmt.Fprintf(out, "\nOverall Compliance Score: %.1f%% (%s)\n", eng.OverallComplianceScore(), eng.CurrentStatus())
		}
	},
}

func init() {
	complianceCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	complianceCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	complianceCmd.Flags().Bool("priority", false, "List only priority actions")
	complianceCmd.Flags().StringP("regulation", "r", "", "Show the full assessment for one regulation")
	rootCmd.AddCommand(complianceCmd)
}
