package cmd

import (
	"fmt"

	"github.com/huangsam/lifespan/core"
	"github.com/spf13/cobra"
)

// analyzeCmd runs the attention lifespan pipeline over one CSV file.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <csv-file>",
	Short: "Measure attention lifespan and regimes for every event in a CSV.",
	Long: `Load a daily attention CSV and report, per event:
- peak attention
- half-life in days from the peak to the first value at or below half of it
- total attention (area under the curve)
- exponential decay rate ln2/half-life

Events with a half-life of 2 days or more are persistent, all others are
shocks. Total attention is regressed on peak within each regime.

The first two lines of the file are skipped, the next line is the header and
its first column holds the date. Rows with unreadable dates are dropped and
unreadable numbers count as zero.

Examples:
  # Print the report with a terminal scatter plot
  lifespan analyze trends.csv

  # Reproduce the classic Latin-1 reading and save the plot as PNG
  lifespan analyze trends.csv --encoding latin1 --plot-file regimes.png

  # Export the top 20 events as JSON
  lifespan analyze trends.csv --output json --limit 20 --output-file report.json

  # Write Parquet for downstream analysis
  lifespan analyze trends.csv --output parquet --output-file metrics.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := core.ExecuteAnalyze(rootCtx, cfg, cacheManager); err != nil {
			return fmt.Errorf("cannot run attention analysis: %w", err)
		}
		return nil
	},
}
