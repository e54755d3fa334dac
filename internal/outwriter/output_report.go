package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/lifespan/internal/contract"
	"github.com/huangsam/lifespan/internal/parquet"
	"github.com/huangsam/lifespan/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// metricsColumns are the column names shared by the table, CSV and Parquet outputs.
var metricsColumns = []string{"event", "peak", "half_life_days", "total_attention", "decay_lambda", "regime"}

// PrintAnalysisReport outputs the report, dispatching based on the output format configured.
func PrintAnalysisReport(report schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONReport(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVReport(report, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetReport(report, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTextReport(w, report, cfg, fmtFloat, intFmt, duration)
		}, "Wrote report")
	}
	return nil
}

// printJSONReport handles opening the file and calling the JSON writer.
func printJSONReport(report schema.AnalysisReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONReport(w, report, cfg.ResultLimit)
	}, "Wrote JSON")
}

// printCSVReport handles opening the file and calling the CSV writer.
func printCSVReport(report schema.AnalysisReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVMetrics(w, report.Top(cfg.ResultLimit), fmtFloat)
	}, "Wrote CSV")
}

// printParquetReport writes the ranked metrics rows to cfg.OutputFile.
func printParquetReport(report schema.AnalysisReport, cfg *contract.Config) error {
	rows := parquet.ConvertMetricsRecords(report.RunID, report.Top(cfg.ResultLimit))
	if err := parquet.WriteMetricsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeTextReport renders the human-readable report: regime counts, one
// regression block per regime with data, the scatter plot and the metrics table.
func writeTextReport(w io.Writer, report schema.AnalysisReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	if err := writeRegimeCounts(w, report.RegimeCounts, cfg, intFmt); err != nil {
		return err
	}
	for _, r := range report.Regressions {
		if !r.HasData() {
			continue
		}
		if err := writeRegressionBlock(w, r, cfg); err != nil {
			return err
		}
	}
	if cfg.Plot != schema.NoPlot {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, renderScatter(report.Metrics, getPlotWidth(cfg), plotHeight, cfg.UseColors)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\n%s\n\n", sectionTitle("=== ATTENTION LIFESPAN METRICS ===", cfg)); err != nil {
		return err
	}
	rows := report.Top(cfg.ResultLimit)
	if err := writeMetricsTable(w, rows, cfg, fmtFloat); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d of %d events\n", len(rows), len(report.Metrics)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeRegimeCounts prints how many events landed in each regime, largest first.
func writeRegimeCounts(w io.Writer, counts []schema.RegimeCount, cfg *contract.Config, intFmt string) error {
	if _, err := fmt.Fprintln(w, sectionTitle("=== REGIME COUNTS ===", cfg)); err != nil {
		return err
	}
	if len(counts) == 0 {
		_, err := fmt.Fprintln(w, "no events with attention")
		return err
	}
	for _, c := range counts {
		label := fmt.Sprintf("%-12s", c.Regime)
		if cfg.UseColors {
			label = contract.RegimeColor(c.Regime).Sprint(label)
		}
		if _, err := fmt.Fprintf(w, "%s "+intFmt+"\n", label, c.Count); err != nil {
			return err
		}
	}
	return nil
}

// writeRegressionBlock prints the AUC ~ Peak fit of one regime.
func writeRegressionBlock(w io.Writer, r schema.RegressionResult, cfg *contract.Config) error {
	title := fmt.Sprintf("=== %s REGIME ===", strings.ToUpper(string(r.Regime)))
	if cfg.UseColors {
		title = contract.RegimeColor(r.Regime).Sprint(title)
	}
	_, err := fmt.Fprintf(w, "\n%s\nAUC ~ Peak\nIntercept: %.3f\nSlope: %.3f\nR² = %.3f\n",
		title, r.Intercept, r.Slope, r.RSquared)
	return err
}

// writeMetricsTable renders the ranked metrics records as a table.
func writeMetricsTable(w io.Writer, records []schema.MetricsRecord, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)

	table.Header(metricsColumns)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Formatting.AutoFormat = tw.Off
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, m := range records {
		row := []string{
			contract.TruncateName(m.Event, nameWidth),
			fmtFloat(m.Peak),
			formatOptionalInt(m.HalfLifeDays, undefinedText),
			fmtFloat(m.TotalAttention),
			formatOptionalFloat(m.DecayLambda, fmtFloat, undefinedText),
			regimeLabel(m.Regime, cfg),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVMetrics writes one row per metrics record. Undefined values are empty cells.
func writeCSVMetrics(w io.Writer, records []schema.MetricsRecord, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, metricsColumns, func(csvWriter *csv.Writer) error {
		for _, m := range records {
			rec := []string{
				m.Event,
				fmtFloat(m.Peak),
				formatOptionalInt(m.HalfLifeDays, ""),
				fmtFloat(m.TotalAttention),
				formatOptionalFloat(m.DecayLambda, fmtFloat, ""),
				string(m.Regime),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONReport writes the report with its metrics truncated to limit rows.
func writeJSONReport(w io.Writer, report schema.AnalysisReport, limit int) error {
	report.Metrics = report.Top(limit)
	if report.Metrics == nil {
		report.Metrics = []schema.MetricsRecord{}
	}
	if report.RegimeCounts == nil {
		report.RegimeCounts = []schema.RegimeCount{}
	}
	return writeJSON(w, report)
}

func sectionTitle(title string, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.HeaderColor.Sprint(title)
	}
	return title
}

func regimeLabel(regime schema.Regime, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(regime)
	}
	return string(regime)
}
