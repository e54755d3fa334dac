package core

import (
	"context"

	"github.com/huangsam/lifespan/core/algo"
	"github.com/huangsam/lifespan/internal/log"
	"github.com/huangsam/lifespan/schema"
)

// Analyze runs the metric, classification and regression stages over a loaded
// table. Regressions use every surviving event; metrics come back ranked by
// total attention.
func Analyze(ctx context.Context, table schema.AttentionTable) (schema.AnalysisReport, error) {
	records := ComputeMetrics(table)
	log.Debugw("computed metrics", "events", len(table.Events), "alive", len(records))
	if err := ctx.Err(); err != nil {
		return schema.AnalysisReport{}, err
	}

	ClassifyAll(records)
	regressions := FitByRegime(records)
	for _, r := range regressions {
		log.Debugw("fitted regression", "regime", r.Regime, "n", r.N, "intercept", r.Intercept, "slope", r.Slope, "r_squared", r.RSquared)
	}
	if err := ctx.Err(); err != nil {
		return schema.AnalysisReport{}, err
	}

	return schema.AnalysisReport{
		Load:         table.Stats,
		RegimeCounts: CountRegimes(records),
		Regressions:  regressions,
		Metrics:      algo.RankMetrics(records, 0),
	}, nil
}
