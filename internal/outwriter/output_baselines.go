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

// PrintBaselineList outputs stored baseline history, dispatching based
// on the output format configured.
func PrintBaselineList(records []schema.BaselineRecord, cfg *contract.Config) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVBaselines(w, records, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteBaselinesParquet(parquet.ConvertBaselineRecords(records), cfg.OutputFile); err != nil {
			return err
		}
		fmt.Printf("Exported %d baseline records to: %s\n", len(records), cfg.OutputFile)
		return nil
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBaselineTable(w, records, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeBaselineTable writes the human-readable baseline history.
func writeBaselineTable(w io.Writer, records []schema.BaselineRecord, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No baseline records found")
		return nil
	}

	table := tablewriter.NewWriter(w)

	table.Header([]string{"Benchmark", "Unit", "Mean", "N", "Confidence Interval", "Min N", "Created"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, record := range records {
		data = append(data, []string{
			contract.TruncateID(record.BenchmarkID, getMaxTableIDWidth(cfg)),
			string(record.Unit),
			fmtFloat(record.Stats.Mean),
			strconv.Itoa(record.Stats.N),
			fmtInterval(record.Interval.Lower, record.Interval.Upper, record.Interval.Level, fmtFloat),
			strconv.Itoa(record.PlannedMinimumN),
			record.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVBaselines writes one CSV row per baseline record.
func writeCSVBaselines(w io.Writer, records []schema.BaselineRecord, fmtFloat func(float64) string) error {
	header := []string{
		"benchmark_id", "unit", "mean", "stddev", "n",
		"ci_lower", "ci_upper", "ci_level", "resamples", "planned_minimum_n",
		"seed", "commit_hash", "hardware_tag", "env_fingerprint", "created_at",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, record := range records {
			row := []string{
				record.BenchmarkID,
				string(record.Unit),
				fmtFloat(record.Stats.Mean),
				csvStdDev(record.Stats, fmtFloat),
				strconv.Itoa(record.Stats.N),
				fmtFloat(record.Interval.Lower),
				fmtFloat(record.Interval.Upper),
				strconv.FormatFloat(record.Interval.Level, 'f', -1, 64),
				strconv.Itoa(record.Resamples),
				strconv.Itoa(record.PlannedMinimumN),
				strconv.FormatUint(record.Context.Seed, 10),
				record.Context.CommitHash,
				record.Context.HardwareTag,
				record.Context.EnvFingerprint,
				record.CreatedAt.Format(time.RFC3339),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// PrintStoreStatus prints baseline store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Baseline Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Records: %d\n", status.RecordCount)
	if status.RecordCount > 0 {
		fmt.Printf("Benchmarks: %d\n", status.BenchmarkCount)
		fmt.Printf("Newest Record: %s\n", status.NewestRecord.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Record: %s\n", status.OldestRecord.Format("2006-01-02 15:04:05"))
	}
}
