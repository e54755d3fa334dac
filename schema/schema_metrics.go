package schema

import (
	"encoding/json"
	"math"
	"time"
)

// EventSeries is the attention time series of a single event, ordered by day.
type EventSeries struct {
	Name   string      `msgpack:"name"`
	Days   []time.Time `msgpack:"days"`
	Values []float64   `msgpack:"values"`
}

// Len returns the number of observations in the series.
func (s EventSeries) Len() int {
	return len(s.Values)
}

// AttentionTable is the cleaned input: one row per valid day, one series per event.
type AttentionTable struct {
	Days   []time.Time   `msgpack:"days"`
	Events []EventSeries `msgpack:"events"`
	Stats  LoadStats     `msgpack:"stats"`
}

// LoadStats records what the loader recovered from silently.
type LoadStats struct {
	Encoding          Encoding `json:"encoding" msgpack:"encoding"`
	RowsRead          int      `json:"rows_read" msgpack:"rows_read"`
	RowsKept          int      `json:"rows_kept" msgpack:"rows_kept"`
	InvalidDateRows   int      `json:"invalid_date_rows" msgpack:"invalid_date_rows"`
	DuplicateDateRows int      `json:"duplicate_date_rows" msgpack:"duplicate_date_rows"`
	ZeroFilledCells   int      `json:"zero_filled_cells" msgpack:"zero_filled_cells"`
	Events            int      `json:"events" msgpack:"events"`
}

// MetricsRecord holds the derived metrics of one event.
// HalfLifeDays and DecayLambda are nil when undefined.
type MetricsRecord struct {
	Event          string   `json:"event"`
	Peak           float64  `json:"peak"`
	HalfLifeDays   *int     `json:"half_life_days"`
	TotalAttention float64  `json:"total_attention"`
	DecayLambda    *float64 `json:"decay_lambda"`
	Regime         Regime   `json:"regime"`
}

// MarshalJSON encodes non-finite values as null.
func (m MetricsRecord) MarshalJSON() ([]byte, error) {
	var lambda *float64
	if m.DecayLambda != nil {
		lambda = FiniteOrNil(*m.DecayLambda)
	}
	return json.Marshal(struct {
		Event          string   `json:"event"`
		Peak           *float64 `json:"peak"`
		HalfLifeDays   *int     `json:"half_life_days"`
		TotalAttention *float64 `json:"total_attention"`
		DecayLambda    *float64 `json:"decay_lambda"`
		Regime         Regime   `json:"regime"`
	}{
		Event:          m.Event,
		Peak:           FiniteOrNil(m.Peak),
		HalfLifeDays:   m.HalfLifeDays,
		TotalAttention: FiniteOrNil(m.TotalAttention),
		DecayLambda:    lambda,
		Regime:         m.Regime,
	})
}

// RegressionResult is the OLS fit of total attention on peak for one regime.
// Coefficients are NaN when the regime has no rows; RSquared is NaN when
// total attention has no variance.
type RegressionResult struct {
	Regime    Regime
	N         int
	Intercept float64
	Slope     float64
	RSquared  float64
}

// HasData reports whether the regime contributed any rows to the fit.
func (r RegressionResult) HasData() bool {
	return r.N > 0
}

// MarshalJSON encodes NaN values as null.
func (r RegressionResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Regime    Regime   `json:"regime"`
		N         int      `json:"n"`
		Intercept *float64 `json:"intercept"`
		Slope     *float64 `json:"slope"`
		RSquared  *float64 `json:"r_squared"`
	}{
		Regime:    r.Regime,
		N:         r.N,
		Intercept: FiniteOrNil(r.Intercept),
		Slope:     FiniteOrNil(r.Slope),
		RSquared:  FiniteOrNil(r.RSquared),
	})
}

// RegimeCount is the number of events assigned to a regime.
type RegimeCount struct {
	Regime Regime `json:"regime"`
	Count  int    `json:"count"`
}

// FiniteOrNil returns a pointer to v, or nil when v is NaN or infinite.
func FiniteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
