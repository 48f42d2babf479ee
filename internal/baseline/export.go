package baseline

import (
	"context"
	"errors"
	"fmt"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/internal/parquet"
)

// ExecuteBaselineExport performs the actual export of baseline records to a Parquet file.
func ExecuteBaselineExport(ctx context.Context, store contract.BaselineStore, benchmarkID, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Check if there's any data to export
	status, err := store.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get baseline status: %w", err)
	}

	if status.RecordCount == 0 {
		return errors.New("no baseline records found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total baseline records: %d\n", status.RecordCount)
	fmt.Printf("Total benchmarks: %d\n", status.BenchmarkCount)

	// Retrieve the record history (all benchmarks when no ID is given)
	records, err := store.List(ctx, benchmarkID)
	if err != nil {
		return fmt.Errorf("failed to retrieve baseline records: %w", err)
	}

	// Convert to Parquet format and write
	rows := parquet.ConvertBaselineRecords(records)
	if err := parquet.WriteBaselinesParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write baseline records: %w", err)
	}
	fmt.Printf("Exported %d baseline records to: %s\n", len(rows), outputFile)

	return nil
}
