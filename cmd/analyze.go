package cmd

import (
	"github.com/perfgate/perfgate/core"
	"github.com/perfgate/perfgate/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd summarizes a single sample file without any baseline comparison.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <samples-file>",
	Short: "Summarize benchmark samples with a bootstrap confidence interval.",
	Long: `Read raw benchmark samples and report their summary statistics.

Computes the sample mean, standard deviation and a percentile bootstrap
confidence interval for the mean, all derived from a fixed seed so two
runs over the same file always agree bit for bit.

Examples:
  # Summarize a JSON sample file
  perfgate analyze results.json

  # Trim 5 warmup iterations and seed the resampler explicitly
  perfgate analyze results.json --warmup 5 --seed 1234

  # Flag means above an absolute budget
  perfgate analyze results.json --max-mean 250 --unit duration-ms

  # Export the summary for tracking
  perfgate analyze results.json --output csv --output-file summary.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run sample analysis", err)
		}
	},
}
