// Package cmd defines the command-line interface for perfgate.
package cmd

import (
	"github.com/perfgate/perfgate/core"
	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(baselineCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the baseline subcommands to the parent baseline command
	baselineCmd.AddCommand(baselinePromoteCmd)
	baselineCmd.AddCommand(baselineListCmd)
	baselineCmd.AddCommand(baselineStatusCmd)
	baselineCmd.AddCommand(baselineClearCmd)
	baselineCmd.AddCommand(baselineExportCmd)
	baselineCmd.AddCommand(baselineMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("benchmark", "b", "", "Benchmark identifier (defaults to the sample file name)")
	rootCmd.PersistentFlags().String("unit", "", "Metric unit: duration-ms or rate-per-sec")
	rootCmd.PersistentFlags().Uint64("seed", schema.DefaultSeed, "Seed for deterministic resampling")
	rootCmd.PersistentFlags().Int("resamples", core.DefaultResamples, "Number of bootstrap resamples")
	rootCmd.PersistentFlags().Float64("confidence", core.DefaultConfidence, "Confidence level for bootstrap intervals (exclusive 0..1)")
	rootCmd.PersistentFlags().Int("workers", core.DefaultWorkers, "Number of concurrent bootstrap workers")
	rootCmd.PersistentFlags().Int("warmup", 0, "Number of leading samples to discard as warmup")
	rootCmd.PersistentFlags().Int("sample-limit", 0, "Cap on samples read after warmup (0 = no cap)")
	rootCmd.PersistentFlags().Float64("max-mean", 0, "Absolute performance target for the mean (0 = no target)")
	rootCmd.PersistentFlags().String("commit", "", "Commit hash recorded for provenance")
	rootCmd.PersistentFlags().String("hardware-tag", "", "Hardware tag recorded for provenance")
	rootCmd.PersistentFlags().Float64("shift-sigma", core.DefaultMeanShiftSigma, "Mean shift threshold in baseline standard deviations")
	rootCmd.PersistentFlags().Float64("effect-threshold", core.DefaultEffectThreshold, "Absolute Cohen's d treated as a large effect")
	rootCmd.PersistentFlags().Int("corroboration", core.DefaultCorroborationCount, "Corroborating criteria required alongside a mean shift (1 or 2)")
	rootCmd.PersistentFlags().Bool("strict", false, "Exit nonzero on regressed or insufficient-data verdicts")
	rootCmd.PersistentFlags().Float64("effect-target", 0, "Smallest relative mean change worth detecting (planning)")
	rootCmd.PersistentFlags().Float64("rel-stddev", 0, "Expected relative standard deviation (planning)")
	rootCmd.PersistentFlags().Float64("power", core.DefaultPower, "Desired statistical power (planning)")
	rootCmd.PersistentFlags().Float64("alpha", core.DefaultAlpha, "Significance level (planning)")
	rootCmd.PersistentFlags().Float64("margin", core.DefaultSafetyMargin, "Safety margin applied to the planned sample size")
	rootCmd.PersistentFlags().Int("planned-min", 0, "Planned minimum sample count stored with promoted baselines")
	rootCmd.PersistentFlags().String("baseline-backend", string(schema.SQLiteBackend), "Baseline backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("baseline-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("tag", "", "Date tag (e.g., 2026-08-29) for historical baseline lookups")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of baselineMigrateCmd to Viper
	baselineMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(baselineMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding baseline migrate flags", err)
	}
}
