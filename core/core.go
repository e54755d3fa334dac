// Package core has core logic for attention metrics, regime classification and regression.
package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/lifespan/internal/contract"
	"github.com/huangsam/lifespan/internal/outwriter"
	"github.com/huangsam/lifespan/schema"
)

// ExecuteAnalyze runs the full pipeline on cfg.InputPath and writes the report.
// It serves as the main entry point for the 'analyze' command.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := GetAnalysisReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteReport(report, cfg, duration)
}

// GetAnalysisReport loads the input (through the cache when configured) and
// analyzes it without writing anything to stdout.
func GetAnalysisReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.AnalysisReport, error) {
	start := time.Now()
	table, hit, err := cachedLoadTable(cfg, mgr)
	if err != nil {
		return schema.AnalysisReport{}, err
	}
	if !shouldSuppressHeader(ctx) && cfg.Output == schema.TextOut {
		outwriter.LogAnalysisHeader(cfg, table.Stats, hit)
	}

	report, err := Analyze(ctx, table)
	if err != nil {
		return schema.AnalysisReport{}, err
	}
	report.RunID = uuid.NewString()
	report.Input = cfg.InputPath
	report.GeneratedAt = time.Now().UTC()
	report.CacheHit = hit
	report.DurationMs = time.Since(start).Milliseconds()
	return report, nil
}
