package core

import (
	"math"
	"time"

	"github.com/huangsam/lifespan/schema"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

const oneDay = 24 * time.Hour

// PeakMagnitude returns the largest observation of the series, or 0 for an empty series.
func PeakMagnitude(s schema.EventSeries) float64 {
	if s.Len() == 0 {
		return 0
	}
	return floats.Max(s.Values)
}

// AttentionHalfLife returns the number of calendar days from the first peak
// until the first observation at or below half the peak, counting from the
// peak itself. ok is false when the peak is 0 or the series never falls that far.
func AttentionHalfLife(s schema.EventSeries) (days int, ok bool) {
	if s.Len() == 0 {
		return 0, false
	}
	peakIdx := floats.MaxIdx(s.Values)
	peak := s.Values[peakIdx]
	if peak == 0 {
		return 0, false
	}

	halfLevel := 0.5 * peak
	for i := peakIdx; i < s.Len(); i++ {
		if s.Values[i] <= halfLevel {
			return int(s.Days[i].Sub(s.Days[peakIdx]) / oneDay), true
		}
	}
	return 0, false
}

// TotalAttentionAUC integrates the series with the trapezoidal rule over row
// positions. Rows are one unit apart whatever the calendar gap between them.
func TotalAttentionAUC(s schema.EventSeries) float64 {
	n := s.Len()
	if n < 2 {
		return 0
	}
	x := floats.Span(make([]float64, n), 0, float64(n-1))
	return integrate.Trapezoidal(x, s.Values)
}

// DecayLambda returns the exponential decay rate ln2/half-life.
// ok is false when the half-life is undefined or not strictly positive.
func DecayLambda(s schema.EventSeries) (lambda float64, ok bool) {
	return decayFromHalfLife(AttentionHalfLife(s))
}

func decayFromHalfLife(halfLife int, ok bool) (float64, bool) {
	if !ok || halfLife <= 0 {
		return 0, false
	}
	return math.Ln2 / float64(halfLife), true
}

// EventMetrics derives the metrics record of one event. The regime is left empty.
func EventMetrics(s schema.EventSeries) schema.MetricsRecord {
	record := schema.MetricsRecord{
		Event:          s.Name,
		Peak:           PeakMagnitude(s),
		TotalAttention: TotalAttentionAUC(s),
	}
	halfLife, ok := AttentionHalfLife(s)
	if ok {
		record.HalfLifeDays = &halfLife
	}
	if lambda, ok := decayFromHalfLife(halfLife, ok); ok {
		record.DecayLambda = &lambda
	}
	return record
}

// ComputeMetrics derives one record per event and drops dead events,
// those whose total attention is not positive.
func ComputeMetrics(table schema.AttentionTable) []schema.MetricsRecord {
	records := make([]schema.MetricsRecord, 0, len(table.Events))
	for _, s := range table.Events {
		record := EventMetrics(s)
		if record.TotalAttention <= 0 {
			continue
		}
		records = append(records, record)
	}
	return records
}
