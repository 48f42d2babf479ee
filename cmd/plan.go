package cmd

import (
	"github.com/perfgate/perfgate/core"
	"github.com/perfgate/perfgate/internal/contract"
	"github.com/spf13/cobra"
)

// planCmd recommends a sample size before any benchmarking happens.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Recommend how many samples to collect per benchmark run.",
	Long: `Compute the minimum sample count needed to detect a given effect.

Uses a normal-approximation power calculation: you state the smallest
relative mean change you care about and the benchmark's expected
relative noise, and perfgate reports the minimum and margin-adjusted
recommended sample counts.

No samples are read - this is purely informational.

Examples:
  # Detect a 5% shift on a benchmark with 10% relative noise
  perfgate plan --effect-target 0.05 --rel-stddev 0.10

  # Demand more power for a flaky benchmark
  perfgate plan --effect-target 0.05 --rel-stddev 0.25 --power 0.90

  # Machine-readable output for CI tooling
  perfgate plan --effect-target 0.03 --rel-stddev 0.08 --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePlan(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run sample planning", err)
		}
	},
}
