package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/qrisk-adk/pkg/engine"
	"github.com/user/qrisk-adk/pkg/report"
)

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Project migration cost, timeline, ROI and scenarios",
	Long: `Projects the post-quantum migration programme for the configured bank.
Algorithms and usage areas come from the inventory unless given explicitly.`,
	Run: func(cmd *cobra.Command, args []string) {
		inventoryPath, _ := cmd.Flags().GetString("inventory")
		formatStr, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("output")
		view, _ := cmd.Flags().GetString("view")
		algNames, _ := cmd.Flags().GetStringSlice("algorithms")
		areaNames, _ := cmd.Flags().GetStringSlice("usage-areas")

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

		algs := inv.Algorithms()
		if len(algNames) > 0 {
			algs = nil
			for _, n := range algNames {
				alg, err := engine.ParseAlgorithm(n)
				if err != nil {
					alg = engine.CryptoAlgorithm(n)
				}
				algs = append(algs, alg)
			}
		}
		areas := inv.UsageAreas()
		if len(areaNames) > 0 {
			areas = nil
			for _, n := range areaNames {
				areas = append(areas, engine.UsageArea(n))
			}
		}

		eng := profile.CostEngine()
		est := eng.TotalMigrationCost(algs, areas)

		var table report.Table
		switch view {
		case "summary", "":
			table = report.BreakdownTable(est)
		case "timeline":
			table = report.TimelineTable(eng.CostTimeline())
		case "roi":
			table = report.ROITable(engine.ROIAnalysis(est))
		case "scenarios":
			table = report.ScenarioTable(eng.CompareScenarios())
		default:
			fmt.Printf("Error: unknown view %q (want summary, timeline, roi or scenarios)\n", view)
			return
		}

		out, closeOut, err := openOutput(outPath)
		if err != nil {
			fmt.Printf("Error opening output: %v\n", err)
			return
		}
		defer closeOut()

		if err := table.Write(out, format); err != nil {
			fmt.Printf("Error writing report: %v\n", err)
			return
		}
		if format == report.FormatTable && (view == "summary" || view == "") {
			fmt.Fprintf(out, "\nSystems: %d  Timeline: %d months  Annual risk savings: %s  Payback: %.1f years\n",
				eng.NumSystems(), est.TimelineMonths, report.Money(est.AnnualSavings), est.ROIYears)
		}
	},
}

func init() {
	costCmd.Flags().StringP("inventory", "i", "", "YAML inventory file (defaults to the sample bank)")
	costCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	costCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	costCmd.Flags().String("view", "summary", "What to show (summary, timeline, roi, scenarios)")
	costCmd.Flags().StringSlice("algorithms", nil, "Algorithms to migrate, overriding the inventory")
	costCmd.Flags().StringSlice("usage-areas", nil, "Usage areas involved, overriding the inventory")
	rootCmd.AddCommand(costCmd)
}
