package cmd

import (
	"github.com/perfgate/perfgate/core"
	"github.com/perfgate/perfgate/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of all statistics and criteria.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display mathematical formulas and definitions for all statistics",
	Long: `Show the formal definitions and formulas behind every reported number.

Provides complete transparency into how verdicts are reached, including:
- Summary statistics and the bootstrap interval construction
- The Cohen's d effect size and its magnitude buckets
- The sample size planning formula
- Each detection criterion and its threshold

No samples are read - this is purely informational.

Use this to:
- Explain a verdict to your team
- Document the gating methodology
- Sanity-check threshold overrides before enabling --strict

Examples:
  # Show the definitions as text
  perfgate metrics

  # Machine-readable definitions
  perfgate metrics --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
