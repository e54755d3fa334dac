// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"time"

	"github.com/huangsam/lifespan/internal/contract"
	"github.com/huangsam/lifespan/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints the analysis report using the configured output format,
// then saves the scatter plot image when a plot file was requested.
func (ow *OutWriter) WriteReport(report schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	if err := PrintAnalysisReport(report, cfg, duration); err != nil {
		return err
	}
	if cfg.PlotFile == "" {
		return nil
	}
	if err := SavePlotImage(report.Metrics, cfg.PlotFile); err != nil {
		return fmt.Errorf("error writing plot image: %w", err)
	}
	return nil
}

// LogAnalysisHeader prints a one-line summary of the loaded input.
func LogAnalysisHeader(cfg *contract.Config, stats schema.LoadStats, cacheHit bool) {
	fmt.Printf("🔎 Input: %s (Encoding: %s, Events: %d, Days: %d)\n", cfg.InputPath, stats.Encoding, stats.Events, stats.RowsKept)
	if skipped := stats.InvalidDateRows + stats.DuplicateDateRows; skipped > 0 || stats.ZeroFilledCells > 0 {
		fmt.Printf("🧹 Skipped %d rows, zero-filled %d cells\n", skipped, stats.ZeroFilledCells)
	}
	if cacheHit {
		fmt.Printf("⚡ Loaded from %s cache\n", cfg.CacheBackend)
	}
}
