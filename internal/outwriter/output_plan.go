package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
)

// PrintPlanResult outputs a sample size plan, dispatching based on the
// output format configured.
func PrintPlanResult(plan schema.PlannedSampleSize, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, plan)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVPlan(w, plan)
		}, "Wrote CSV")
	default:
		// Parquet makes no sense for a single scalar recommendation;
		// fall through to the human-readable table.
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePlanTable(w, plan)
		}, "Wrote table")
	}
}

// writePlanTable writes the human-readable plan.
func writePlanTable(w io.Writer, plan schema.PlannedSampleSize) error {
	table := tablewriter.NewWriter(w)

	table.Header([]string{"Minimum N", "Recommended N", "Safety Margin", "Power", "Alpha"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	data := [][]string{{
		strconv.Itoa(plan.MinimumN),
		strconv.Itoa(plan.RecommendedN),
		fmt.Sprintf("%.2fx", plan.SafetyMargin),
		fmt.Sprintf("%.2f", plan.Power),
		fmt.Sprintf("%.3f", plan.Alpha),
	}}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVPlan writes the plan as a single CSV row.
func writeCSVPlan(w io.Writer, plan schema.PlannedSampleSize) error {
	header := []string{"minimum_n", "recommended_n", "safety_margin", "power", "alpha"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		record := []string{
			strconv.Itoa(plan.MinimumN),
			strconv.Itoa(plan.RecommendedN),
			strconv.FormatFloat(plan.SafetyMargin, 'f', -1, 64),
			strconv.FormatFloat(plan.Power, 'f', -1, 64),
			strconv.FormatFloat(plan.Alpha, 'f', -1, 64),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
		return nil
	})
}
