package cmd

import (
	"os"

	"github.com/perfgate/perfgate/core"
	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
	"github.com/spf13/cobra"
)

// detectCmd compares a sample file against the stored baseline and gates on
// the verdict.
var detectCmd = &cobra.Command{
	Use:   "detect <samples-file>",
	Short: "Compare samples against the stored baseline and classify the change.",
	Long: `Decide whether the current run regressed relative to its baseline.

A regression verdict requires a mean shift beyond the sigma threshold
plus at least one corroborating criterion (non-overlapping confidence
intervals or a large effect size), so single-criterion noise does not
fail builds. Direction is unit-aware: higher ops/sec is better, higher
latency is worse.

With --strict the process exit code carries the verdict for CI/CD:
  0  unchanged or improved
  1  regressed (or a violated --max-mean target)
  2  insufficient data to decide

Examples:
  # Gate a CI run against the latest promoted baseline
  perfgate detect results.json --benchmark api-p99 --strict

  # Compare against the baseline promoted on a specific day
  perfgate detect results.json --benchmark api-p99 --tag 2026-08-01

  # Require both corroborating criteria before failing
  perfgate detect results.json --corroboration 2 --strict`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		report, err := core.ExecuteDetect(rootCtx, cfg, baselineStore)
		if err != nil {
			contract.LogFatal("Cannot run regression detection", err)
		}
		if !cfg.Strict {
			return
		}
		switch report.Verdict.Classification {
		case schema.Regressed:
			os.Exit(1)
		case schema.InsufficientData:
			os.Exit(2)
		}
		if report.Current.TargetViolation != "" {
			os.Exit(1)
		}
	},
}
