package cmd

import (
	"github.com/perfgate/perfgate/core"
	"github.com/perfgate/perfgate/internal/baseline"
	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/internal/outwriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// baselineCmd is the parent command for baseline store operations.
var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Manage stored baselines (promote, list, status, clear, export, migrate)",
	Long: `Manage the dated, append-only baseline store.

Baselines are promoted explicitly: detection never writes the store, so
a regressed run can never silently become the new normal. Each promote
appends a dated record and moves the "latest" pointer; history stays
queryable with --tag.

Examples:
  # Promote today's samples as the new baseline
  perfgate baseline promote results.json --benchmark api-p99 --commit $SHA

  # Review the dated history for one benchmark
  perfgate baseline list --benchmark api-p99

  # Export the full store for offline analysis
  perfgate baseline export --output-file baselines.parquet`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// baselinePromoteCmd records a sample file's summary as the new baseline.
var baselinePromoteCmd = &cobra.Command{
	Use:   "promote <samples-file>",
	Short: "Promote a sample file's summary as the new baseline.",
	Long: `Summarize a sample file and append it to the baseline store.

The record captures the summary statistics, the bootstrap interval, the
planned minimum sample count and full provenance (seed, commit hash,
hardware tag, environment fingerprint). The "latest" pointer moves to
the new record atomically; prior records are kept for --tag lookups.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePromote(rootCtx, cfg, baselineStore); err != nil {
			contract.LogFatal("Cannot promote baseline", err)
		}
	},
}

// baselineListCmd shows the dated baseline history.
var baselineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored baseline records, newest first.",
	Long: `List the dated baseline history.

Without --benchmark every record in the store is shown; with it, only
that benchmark's history. Supports the usual output formats, including
Parquet export with --output parquet --output-file.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBaselineList(rootCtx, cfg, baselineStore); err != nil {
			contract.LogFatal("Cannot list baselines", err)
		}
	},
}

// baselineStatusCmd shows baseline store health and record counts.
var baselineStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show baseline store status.",
	Long:    `Display baseline store status: backend, connectivity, record and benchmark counts, and the age range of stored records.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := baselineStore.Status(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot get baseline status", err)
		}
		outwriter.PrintStoreStatus(status)
	},
}

// baselineClearCmd deletes stored baseline records.
var baselineClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear stored baseline records.",
	Long: `Delete baseline records and their latest pointers.

With --benchmark only that benchmark's history is removed; without it
the whole store is cleared.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBaselineClear(rootCtx, cfg, baselineStore); err != nil {
			contract.LogFatal("Cannot clear baselines", err)
		}
	},
}

// baselineExportCmd exports the record history to a Parquet file.
var baselineExportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Export baseline records to a Parquet file.",
	Long:    `Export the baseline record history to a Parquet file for offline analysis with pandas, DuckDB or similar tools. Requires --output-file.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := baseline.ExecuteBaselineExport(rootCtx, baselineStore, cfg.BenchmarkID, cfg.OutputFile); err != nil {
			contract.LogFatal("Cannot export baselines", err)
		}
	},
}

// baselineMigrateCmd runs schema migrations for the baseline store.
var baselineMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run baseline store schema migrations.",
	Long: `Apply or roll back baseline store schema migrations.

By default migrates to the latest version. Use --target-version 0 to
roll back to the initial state, or a positive number to pin a specific
schema version.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := baseline.MigrateBaselines(cfg.StoreBackend, cfg.StoreConnect, targetVersion); err != nil {
			contract.LogFatal("Cannot migrate baseline store", err)
		}
	},
}
