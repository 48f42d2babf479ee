package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/internal/parquet"
	"github.com/perfgate/perfgate/schema"
)

// PrintComparisonReport outputs a detection verdict, dispatching based
// on the output format configured.
func PrintComparisonReport(report *schema.ComparisonReport, cfg *contract.Config) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVComparison(w, report, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		rows := []parquet.ComparisonRow{parquet.ConvertComparisonReport(report)}
		if err := parquet.WriteComparisonParquet(rows, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Printf("Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(w, report, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeComparisonTable writes the baseline/current comparison with the verdict.
func writeComparisonTable(w io.Writer, report *schema.ComparisonReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)

	table.Header([]string{"Metric", "Baseline", "Current", "Delta"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var red, green, yellow func(...any) string
	if cfg.UseColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
	}

	delta := report.Current.Stats.Mean - report.Baseline.Stats.Mean
	worse := (delta > 0) == schema.WorseIsIncrease(report.Current.Unit)
	var deltaStr string
	switch {
	case delta == 0:
		deltaStr = yellow(fmtFloat(0))
	case worse:
		deltaStr = red(fmt.Sprintf("%+.*f ▲", cfg.Precision, delta))
	default:
		deltaStr = green(fmt.Sprintf("%+.*f ▼", cfg.Precision, delta))
	}

	data := [][]string{
		{
			fmt.Sprintf("Mean (%s)", report.Current.Unit),
			fmtFloat(report.Baseline.Stats.Mean),
			fmtFloat(report.Current.Stats.Mean),
			deltaStr,
		},
		{
			"StdDev",
			fmtStdDev(report.Baseline.Stats, fmtFloat),
			fmtStdDev(report.Current.Stats, fmtFloat),
			"",
		},
		{
			"N",
			strconv.Itoa(report.Baseline.Stats.N),
			strconv.Itoa(report.Current.Stats.N),
			"",
		},
		{
			"CI",
			fmtInterval(report.Baseline.Interval.Lower, report.Baseline.Interval.Upper, report.Baseline.Interval.Level, fmtFloat),
			fmtInterval(report.Current.Interval.Lower, report.Current.Interval.Upper, report.Current.Interval.Level, fmtFloat),
			"",
		},
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	writeVerdict(w, report, cfg, fmtFloat)
	return nil
}

// writeVerdict prints the classification, held criteria and effect size
// below the comparison table.
func writeVerdict(w io.Writer, report *schema.ComparisonReport, cfg *contract.Config, fmtFloat func(float64) string) {
	verdictLabel := contract.GetPlainVerdictLabel(report.Verdict.Classification)
	if cfg.UseColors {
		verdictLabel = contract.GetColorVerdictLabel(report.Verdict.Classification)
	}

	fmt.Fprintf(w, "Verdict: %s\n", verdictLabel)
	if len(report.Verdict.Criteria) > 0 {
		fmt.Fprintf(w, "Criteria held: %s\n", strings.Join(criteriaLabels(report.Verdict.Criteria), ", "))
	}
	if report.Verdict.WeakSignal {
		fmt.Fprintln(w, "Weak signal: mean shift without corroboration")
	}
	fmt.Fprintf(w, "Effect size: d=%s (%s) | Mean shift: %sσ\n",
		fmtFloat(report.Effect.CohensD),
		contract.GetBucketLabel(report.Effect.Bucket),
		fmtFloat(report.MeanShiftSigmas))
	fmt.Fprintf(w, "Baseline from: %s", report.Baseline.CreatedAt.Format(time.RFC3339))
	if report.Baseline.Context.CommitHash != "" {
		fmt.Fprintf(w, " (commit %s)", report.Baseline.Context.CommitHash)
	}
	fmt.Fprintln(w)

	if report.Current.TargetViolation != "" {
		viol := report.Current.TargetViolation
		if cfg.UseColors {
			viol = contract.RegressedColor.Sprint(viol)
		}
		fmt.Fprintf(w, "Target violation: %s\n", viol)
	}
}

// criteriaLabels converts criteria to display strings.
func criteriaLabels(criteria []schema.Criterion) []string {
	labels := make([]string, len(criteria))
	for i, criterion := range criteria {
		labels[i] = string(criterion)
	}
	return labels
}

// writeCSVComparison writes the comparison as a single CSV row.
func writeCSVComparison(w io.Writer, report *schema.ComparisonReport, fmtFloat func(float64) string) error {
	header := []string{
		"benchmark_id", "unit", "baseline_mean", "current_mean", "delta",
		"cohens_d", "effect_bucket", "mean_shift_sigmas",
		"classification", "criteria", "weak_signal", "target_violation",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		record := []string{
			report.Current.BenchmarkID,
			string(report.Current.Unit),
			fmtFloat(report.Baseline.Stats.Mean),
			fmtFloat(report.Current.Stats.Mean),
			fmtFloat(report.Current.Stats.Mean - report.Baseline.Stats.Mean),
			fmtFloat(report.Effect.CohensD),
			string(report.Effect.Bucket),
			fmtFloat(report.MeanShiftSigmas),
			string(report.Verdict.Classification),
			strings.Join(criteriaLabels(report.Verdict.Criteria), "|"),
			strconv.FormatBool(report.Verdict.WeakSignal),
			report.Current.TargetViolation,
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
		return nil
	})
}
