package schema

import "time"

// AnalysisReport is everything the reporter prints for one run.
type AnalysisReport struct {
	RunID        string             `json:"run_id"`
	Input        string             `json:"input"`
	GeneratedAt  time.Time          `json:"generated_at"`
	DurationMs   int64              `json:"duration_ms"`
	CacheHit     bool               `json:"cache_hit"`
	Load         LoadStats          `json:"load"`
	RegimeCounts []RegimeCount      `json:"regime_counts"`
	Regressions  []RegressionResult `json:"regressions"`
	Metrics      []MetricsRecord    `json:"metrics"`
}

// Top returns at most limit metrics rows; a limit of 0 or less returns all of them.
func (r AnalysisReport) Top(limit int) []MetricsRecord {
	if limit > 0 && len(r.Metrics) > limit {
		return r.Metrics[:limit]
	}
	return r.Metrics
}
