package core

import (
	"cmp"
	"slices"

	"github.com/huangsam/lifespan/schema"
)

// Classify maps a half-life to its regime. An undefined half-life is a shock.
func Classify(halfLife *int) schema.Regime {
	if halfLife != nil && *halfLife >= schema.PersistenceThresholdDays {
		return schema.PersistentRegime
	}
	return schema.ShockRegime
}

// ClassifyAll assigns the regime of every record in place.
func ClassifyAll(records []schema.MetricsRecord) {
	for i := range records {
		records[i].Regime = Classify(records[i].HalfLifeDays)
	}
}

// CountRegimes returns the number of records per regime, largest first.
// Regimes without records are omitted.
func CountRegimes(records []schema.MetricsRecord) []schema.RegimeCount {
	counts := make(map[schema.Regime]int, len(schema.AllRegimes))
	for _, r := range records {
		counts[r.Regime]++
	}
	out := make([]schema.RegimeCount, 0, len(counts))
	for regime, n := range counts {
		out = append(out, schema.RegimeCount{Regime: regime, Count: n})
	}
	slices.SortFunc(out, func(a, b schema.RegimeCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Regime, b.Regime)
	})
	return out
}

// FilterRegime returns the records that belong to regime, preserving order.
func FilterRegime(records []schema.MetricsRecord, regime schema.Regime) []schema.MetricsRecord {
	var out []schema.MetricsRecord
	for _, r := range records {
		if r.Regime == regime {
			out = append(out, r)
		}
	}
	return out
}
