package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
)

// metricDefinition describes one reported statistic or detection
// criterion for the metrics command.
type metricDefinition struct {
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
	Formula string `json:"formula"`
}

// metricsRenderModel is the complete processed payload for rendering.
type metricsRenderModel struct {
	Statistics []metricDefinition `json:"statistics"`
	Criteria   []metricDefinition `json:"criteria"`
}

// buildMetricsRenderModel assembles the static definitions.
func buildMetricsRenderModel() *metricsRenderModel {
	return &metricsRenderModel{
		Statistics: []metricDefinition{
			{
				Name:    "mean",
				Purpose: "Central tendency of the benchmark samples",
				Formula: "sum(x) / n",
			},
			{
				Name:    "stddev",
				Purpose: "Run-to-run noise, sample standard deviation",
				Formula: "sqrt(sum((x - mean)^2) / (n - 1))",
			},
			{
				Name:    "bootstrap_ci",
				Purpose: "Percentile confidence interval for the mean from seeded resampling",
				Formula: "quantiles of resample means at (1-level)/2 and level+(1-level)/2",
			},
			{
				Name:    "cohens_d",
				Purpose: "Standardized effect size between two sample sets",
				Formula: "(mean_a - mean_b) / pooled_stddev",
			},
			{
				Name:    "planned_n",
				Purpose: "Minimum samples to detect the target effect at the configured power",
				Formula: "2 * (z_alpha + z_power)^2 * (stddev / effect)^2",
			},
		},
		Criteria: []metricDefinition{
			{
				Name:    string(schema.MeanShiftCriterion),
				Purpose: "Primary signal: current mean moved away from the baseline mean",
				Formula: "|mean_cur - mean_base| > sigma_threshold * stddev_base",
			},
			{
				Name:    string(schema.CiNonOverlapCriterion),
				Purpose: "Corroboration: the two confidence intervals do not overlap",
				Formula: "upper_cur < lower_base or lower_cur > upper_base",
			},
			{
				Name:    string(schema.LargeEffectCriterion),
				Purpose: "Corroboration: the standardized effect is practically relevant",
				Formula: "|cohens_d| > effect_threshold",
			},
		},
	}
}

// PrintMetricsDefinitions displays the formal definitions of the
// reported statistics and detection criteria. This is a static display
// that does not require any sample data.
func PrintMetricsDefinitions(cfg *contract.Config) error {
	renderModel := buildMetricsRenderModel()

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, renderModel)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVMetrics(w, renderModel)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTextMetrics(w, renderModel)
		}, "Wrote text")
	}
}

// writeTextMetrics writes the metric definitions in a readable layout.
func writeTextMetrics(w io.Writer, renderModel *metricsRenderModel) error {
	fmt.Fprintln(w, "Statistics")
	fmt.Fprintln(w, "==========")
	for _, def := range renderModel.Statistics {
		fmt.Fprintf(w, "\n%s\n  %s\n  Formula: %s\n", def.Name, def.Purpose, def.Formula)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Detection criteria")
	fmt.Fprintln(w, "==================")
	for _, def := range renderModel.Criteria {
		fmt.Fprintf(w, "\n%s\n  %s\n  Formula: %s\n", def.Name, def.Purpose, def.Formula)
	}
	return nil
}

// writeCSVMetrics writes the metric definitions in CSV format.
func writeCSVMetrics(w io.Writer, renderModel *metricsRenderModel) error {
	header := []string{"Kind", "Name", "Purpose", "Formula"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, def := range renderModel.Statistics {
			if err := csvWriter.Write([]string{"statistic", def.Name, def.Purpose, def.Formula}); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		for _, def := range renderModel.Criteria {
			if err := csvWriter.Write([]string{"criterion", def.Name, def.Purpose, def.Formula}); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
