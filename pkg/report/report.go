// Package report renders engine results as aligned tables, CSV, JSON and a
// Markdown executive report.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/user/qrisk-adk/pkg/engine"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, csv or json)", s)
	}
}

var printer = message.NewPrinter(language.English)

// Money formats whole dollars with thousands separators
func Money(v float64) string {
	return printer.Sprintf("$%.0f", v)
}

// Millions formats a dollar amount as "$12.34M"
func Millions(v float64) string {
	return fmt.Sprintf("$%.2fM", v/1e6)
}

// Table is a header row plus string cells. Data is the typed value written for JSON.
type Table struct {
	Headers []string
	Rows    [][]string
	Data    interface{}
}

// Write renders the table in the requested format
func (t Table) Write(w io.Writer, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatJSON:
		return WriteJSON(w, t.Data)
	default:
		return WriteTable(w, t)
	}
}

func WriteTable(w io.Writer, t Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	sep := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		sep[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))
	for _, r := range t.Rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func ftoa(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func RiskTable(rows []engine.RiskRow) Table {
	t := Table{Headers: engine.RiskReportColumns, Data: rows}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.AssetName,
			string(r.Algorithm),
			string(r.UsageArea),
			string(r.DataSensitivity),
			ftoa(r.DataVolumeGB, 0),
			ftoa(r.VulnerabilityScore, 1),
			ftoa(r.YearsToThreat, 1),
			r.ThreatLevel,
			strconv.Itoa(r.MigrationPriority),
			ftoa(r.MigrationCost, 0),
			r.TopRecommendation,
		})
	}
	return t
}

// ComplianceTable joins remediation steps with "; " so each requirement stays on one row
func ComplianceTable(rows []engine.ComplianceRow) Table {
	t := Table{Headers: engine.ComplianceReportColumns, Data: rows}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			string(r.Regulation),
			r.RequirementID,
			r.Description,
			r.QuantumRelevance,
			r.Deadline,
			string(r.CurrentStatus),
			r.GapAnalysis,
			strings.Join(r.RemediationSteps, "; "),
			strconv.Itoa(r.EffortDays),
			r.RiskLevel,
		})
	}
	return t
}

func PriorityTable(actions []engine.PriorityAction) Table {
	t := Table{Headers: []string{"Regulation", "Action", "Effort (Days)", "Risk"}, Data: actions}
	for _, a := range actions {
		t.Rows = append(t.Rows, []string{string(a.Regulation), a.Action, strconv.Itoa(a.EffortDays), a.Risk})
	}
	return t
}

func BreakdownTable(est engine.MigrationCostEstimate) Table {
	t := Table{Headers: []string{"Category", "Cost ($)"}, Data: est}
	for _, l := range est.CostBreakdown {
		t.Rows = append(t.Rows, []string{l.Category, ftoa(l.Cost, 0)})
	}
	t.Rows = append(t.Rows, []string{"Total", ftoa(est.TotalCost, 0)})
	return t
}

func TimelineTable(rows []engine.TimelineRow) Table {
	t := Table{
		Headers: []string{"Phase", "Start Month", "End Month", "Duration (Months)", "Phase Cost", "Cumulative Cost"},
		Data:    rows,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			string(r.Phase),
			strconv.Itoa(r.StartMonth),
			strconv.Itoa(r.EndMonth),
			strconv.Itoa(r.DurationMonths),
			ftoa(r.PhaseCost, 0),
			ftoa(r.CumulativeCost, 0),
		})
	}
	return t
}

func ROITable(rows []engine.ROIRow) Table {
	t := Table{
		Headers: []string{"Year", "Annual Risk Savings", "Cumulative Savings", "Net Benefit", "ROI %"},
		Data:    rows,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Year),
			ftoa(r.AnnualSavings, 0),
			ftoa(r.CumulativeSavings, 0),
			ftoa(r.NetBenefit, 0),
			ftoa(r.ROIPercent, 1),
		})
	}
	return t
}

func ScenarioTable(rows []engine.ScenarioRow) Table {
	t := Table{
		Headers: []string{"Scenario", "Total Cost", "Timeline (Months)", "Risk Level", "ROI Years"},
		Data:    rows,
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Scenario,
			ftoa(r.TotalCost, 0),
			strconv.Itoa(r.TimelineMonths),
			string(r.RiskLevel),
			ftoa(r.ROIYears, 1),
		})
	}
	return t
}
