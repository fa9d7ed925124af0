package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/qrisk-adk/pkg/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the Markdown executive report",
	Run: func(cmd *cobra.Command, args []string) {
		inventoryPath, _ := cmd.Flags().GetString("inventory")
		outPath, _ := cmd.Flags().GetString("output")
		asJSON, _ := cmd.Flags().GetBool("json")

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

		exec, err := report.NewExecutive(profile, inv, time.Now())
		if err != nil {
			fmt.Printf("Error building report: %v\n", err)
			return
		}

		if outPath == "auto" {
			outPath = exec.FileName()
		}
		out, closeOut, err := openOutput(outPath)
		if err != nil {
			fmt.Printf("Error opening output: %v\n", err)
			return
		}
		defer closeOut()

		if asJSON {
			err = report.WriteJSON(out, exec)
		} else {
			err = exec.Markdown(out)
		}
		if err != nil {
			fmt.Printf("Error writing report: %v\n", err)
			return
		}
		if outPath != "" && outPath != "-" {
			fmt.Printf("Report %s written to %s\n", exec.ID, outPath)
		}
	},
}

func init() {
	reportCmd.Flags().StringP("inventory", "i", "", "YAML inventory file (defaults to the sample bank)")
	reportCmd.Flags().StringP("output", "o", "", "Write to file; 'auto' names it executive_report_YYYYMMDD.md")
	reportCmd.Flags().Bool("json", false, "Emit the report figures as JSON instead of Markdown")
	rootCmd.AddCommand(reportCmd)
}
