package schema

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegressionResultMarshalJSON(t *testing.T) {
	t.Run("finite values", func(t *testing.T) {
		r := RegressionResult{Regime: ShockRegime, N: 3, Intercept: 1.5, Slope: 2, RSquared: 0.75}
		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.JSONEq(t, `{"regime":"shock","n":3,"intercept":1.5,"slope":2,"r_squared":0.75}`, string(data))
	})

	t.Run("nan values become null", func(t *testing.T) {
		r := RegressionResult{Regime: PersistentRegime, Intercept: math.NaN(), Slope: math.NaN(), RSquared: math.NaN()}
		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.JSONEq(t, `{"regime":"persistent","n":0,"intercept":null,"slope":null,"r_squared":null}`, string(data))
		assert.False(t, r.HasData())
	})
}

func TestFiniteOrNil(t *testing.T) {
	assert.Nil(t, FiniteOrNil(math.NaN()))
	assert.Nil(t, FiniteOrNil(math.Inf(1)))
	assert.Nil(t, FiniteOrNil(math.Inf(-1)))
	v := FiniteOrNil(0.25)
	require.NotNil(t, v)
	assert.Equal(t, 0.25, *v)
}

func TestMetricsRecordJSONUndefined(t *testing.T) {
	m := MetricsRecord{Event: "x", Peak: 4, TotalAttention: 6, Regime: ShockRegime}
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"x","peak":4,"half_life_days":null,"total_attention":6,"decay_lambda":null,"regime":"shock"}`, string(data))
}

func TestMetricsRecordJSONNonFinite(t *testing.T) {
	lambda := math.NaN()
	m := MetricsRecord{Event: "big", Peak: math.MaxFloat64, TotalAttention: math.Inf(1), DecayLambda: &lambda, Regime: ShockRegime}
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"big","peak":1.7976931348623157e+308,"half_life_days":null,"total_attention":null,"decay_lambda":null,"regime":"shock"}`, string(data))

	data, err = json.Marshal(AnalysisReport{Metrics: []MetricsRecord{m}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_attention":null`)
}

func TestAnalysisReportTop(t *testing.T) {
	report := AnalysisReport{Metrics: []MetricsRecord{{Event: "a"}, {Event: "b"}, {Event: "c"}}}
	assert.Len(t, report.Top(0), 3)
	assert.Len(t, report.Top(-1), 3)
	assert.Len(t, report.Top(2), 2)
	assert.Len(t, report.Top(10), 3)
	assert.Equal(t, "a", report.Top(1)[0].Event)
}
