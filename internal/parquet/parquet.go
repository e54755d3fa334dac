// Package parquet provides the Parquet export of attention metrics
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/huangsam/lifespan/schema"
	"github.com/parquet-go/parquet-go"
)

// MetricsRow is one event of an analysis run as written to Parquet.
type MetricsRow struct {
	// RunID identifies the analysis run that produced the row
	RunID string `parquet:"run_id,snappy"`

	// Rank is the 1-based position when ordered by total attention
	Rank int32 `parquet:"rank,snappy"`

	Event string  `parquet:"event,snappy"`
	Peak  float64 `parquet:"peak,snappy"`

	// HalfLifeDays is null when the series never decays to half its peak
	HalfLifeDays *int32 `parquet:"half_life_days,optional,snappy"`

	TotalAttention float64 `parquet:"total_attention,snappy"`

	// DecayLambda is null when the half-life is undefined or zero
	DecayLambda *float64 `parquet:"decay_lambda,optional,snappy"`

	Regime string `parquet:"regime,snappy"`
}

// WriteMetricsParquet writes rows to a Parquet file at outputPath.
func WriteMetricsParquet(rows []MetricsRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is derived from the MetricsRow struct tags
	writer := parquet.NewGenericWriter[MetricsRow](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertMetricsRecords converts ranked metrics records to Parquet rows.
func ConvertMetricsRecords(runID string, records []schema.MetricsRecord) []MetricsRow {
	rows := make([]MetricsRow, len(records))
	for i, r := range records {
		rows[i] = MetricsRow{
			RunID:          runID,
			Rank:           int32(i + 1),
			Event:          r.Event,
			Peak:           r.Peak,
			TotalAttention: r.TotalAttention,
			DecayLambda:    r.DecayLambda,
			Regime:         string(r.Regime),
		}
		if r.HalfLifeDays != nil {
			hl := int32(*r.HalfLifeDays)
			rows[i].HalfLifeDays = &hl
		}
	}
	return rows
}
