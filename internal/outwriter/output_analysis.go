package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/internal/parquet"
	"github.com/perfgate/perfgate/schema"
)

// PrintAnalysisReport outputs a single-run analysis, dispatching based
// on the output format configured.
func PrintAnalysisReport(report *schema.AnalysisReport, cfg *contract.Config) error {
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
			return writeCSVAnalysis(w, report, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		rows := []parquet.AnalysisRow{parquet.ConvertAnalysisReport(report)}
		if err := parquet.WriteAnalysisParquet(rows, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Printf("Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisTable(w, report, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeAnalysisTable writes the human-readable analysis report.
func writeAnalysisTable(w io.Writer, report *schema.AnalysisReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)

	table.Header([]string{"Benchmark", "Unit", "Mean", "StdDev", "N", "Confidence Interval", "Resamples"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	data := [][]string{{
		contract.TruncateID(report.BenchmarkID, getMaxTableIDWidth(cfg)),
		string(report.Unit),
		fmtFloat(report.Stats.Mean),
		fmtStdDev(report.Stats, fmtFloat),
		strconv.Itoa(report.Stats.N),
		fmtInterval(report.Interval.Lower, report.Interval.Upper, report.Interval.Level, fmtFloat),
		strconv.Itoa(report.Resamples),
	}}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	writeProvenance(w, report)

	if report.TargetViolation != "" {
		viol := report.TargetViolation
		if cfg.UseColors {
			viol = contract.RegressedColor.Sprint(viol)
		}
		fmt.Fprintf(w, "Target violation: %s\n", viol)
	}
	return nil
}

// writeProvenance prints the reproducibility context below a table.
func writeProvenance(w io.Writer, report *schema.AnalysisReport) {
	fmt.Fprintf(w, "Seed: %d | Env: %s | %s\n",
		report.Context.Seed,
		report.Context.EnvFingerprint,
		report.Context.Timestamp.Format(time.RFC3339))
	if report.Context.CommitHash != "" {
		fmt.Fprintf(w, "Commit: %s\n", report.Context.CommitHash)
	}
	if report.Context.HardwareTag != "" {
		fmt.Fprintf(w, "Hardware: %s\n", report.Context.HardwareTag)
	}
	if report.WarmupCount > 0 {
		fmt.Fprintf(w, "Warmup samples trimmed: %d\n", report.WarmupCount)
	}
}

// writeCSVAnalysis writes the analysis report as a single CSV row.
func writeCSVAnalysis(w io.Writer, report *schema.AnalysisReport, fmtFloat func(float64) string) error {
	header := []string{
		"benchmark_id", "unit", "mean", "stddev", "n",
		"ci_lower", "ci_upper", "ci_level", "resamples", "warmup_count",
		"seed", "commit_hash", "hardware_tag", "env_fingerprint", "timestamp", "target_violation",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		record := []string{
			report.BenchmarkID,
			string(report.Unit),
			fmtFloat(report.Stats.Mean),
			csvStdDev(report.Stats, fmtFloat),
			strconv.Itoa(report.Stats.N),
			fmtFloat(report.Interval.Lower),
			fmtFloat(report.Interval.Upper),
			strconv.FormatFloat(report.Interval.Level, 'f', -1, 64),
			strconv.Itoa(report.Resamples),
			strconv.Itoa(report.WarmupCount),
			strconv.FormatUint(report.Context.Seed, 10),
			report.Context.CommitHash,
			report.Context.HardwareTag,
			report.Context.EnvFingerprint,
			report.Context.Timestamp.Format(time.RFC3339),
			report.TargetViolation,
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
		return nil
	})
}

// fmtStdDev formats a standard deviation for table output; single
// sample runs show "n/a".
func fmtStdDev(stats schema.SummaryStatistics, fmtFloat func(float64) string) string {
	if !stats.HasStdDev() {
		return "n/a"
	}
	return fmtFloat(stats.StdDev)
}

// csvStdDev formats a standard deviation for CSV output; single sample
// runs leave the field empty.
func csvStdDev(stats schema.SummaryStatistics, fmtFloat func(float64) string) string {
	if !stats.HasStdDev() {
		return ""
	}
	return fmtFloat(stats.StdDev)
}
