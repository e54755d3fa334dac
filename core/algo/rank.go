// Package algo has ordering helpers for metrics records.
package algo

import (
	"sort"

	"github.com/huangsam/lifespan/schema"
)

// RankMetrics sorts records by total attention in descending order and
// returns the top 'limit' records. Ties are broken by event name so the
// order is deterministic. A limit of 0 or less keeps every record.
func RankMetrics(records []schema.MetricsRecord, limit int) []schema.MetricsRecord {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].TotalAttention != records[j].TotalAttention {
			return records[i].TotalAttention > records[j].TotalAttention
		}
		return records[i].Event < records[j].Event
	})
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}

// PeakRange returns the smallest and largest peak among records.
func PeakRange(records []schema.MetricsRecord) (lo, hi float64) {
	for i, r := range records {
		if i == 0 || r.Peak < lo {
			lo = r.Peak
		}
		if i == 0 || r.Peak > hi {
			hi = r.Peak
		}
	}
	return lo, hi
}

// AttentionRange returns the smallest and largest total attention among records.
func AttentionRange(records []schema.MetricsRecord) (lo, hi float64) {
	for i, r := range records {
		if i == 0 || r.TotalAttention < lo {
			lo = r.TotalAttention
		}
		if i == 0 || r.TotalAttention > hi {
			hi = r.TotalAttention
		}
	}
	return lo, hi
}
