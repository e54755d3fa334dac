package core

import (
	"testing"

	"github.com/huangsam/lifespan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		halfLife *int
		expected schema.Regime
	}{
		{"undefined", nil, schema.ShockRegime},
		{"zero", intPtr(0), schema.ShockRegime},
		{"one day", intPtr(1), schema.ShockRegime},
		{"threshold", intPtr(2), schema.PersistentRegime},
		{"long", intPtr(30), schema.PersistentRegime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.halfLife))
		})
	}
}

func TestClassifyAll(t *testing.T) {
	records := []schema.MetricsRecord{
		{Event: "a", HalfLifeDays: intPtr(5)},
		{Event: "b"},
		{Event: "c", HalfLifeDays: intPtr(1)},
	}
	ClassifyAll(records)
	assert.Equal(t, schema.PersistentRegime, records[0].Regime)
	assert.Equal(t, schema.ShockRegime, records[1].Regime)
	assert.Equal(t, schema.ShockRegime, records[2].Regime)
}

func TestCountRegimes(t *testing.T) {
	t.Run("largest first", func(t *testing.T) {
		records := []schema.MetricsRecord{
			{Regime: schema.PersistentRegime},
			{Regime: schema.ShockRegime},
			{Regime: schema.PersistentRegime},
		}
		counts := CountRegimes(records)
		require.Len(t, counts, 2)
		assert.Equal(t, schema.RegimeCount{Regime: schema.PersistentRegime, Count: 2}, counts[0])
		assert.Equal(t, schema.RegimeCount{Regime: schema.ShockRegime, Count: 1}, counts[1])
	})

	t.Run("ties by name", func(t *testing.T) {
		records := []schema.MetricsRecord{
			{Regime: schema.ShockRegime},
			{Regime: schema.PersistentRegime},
		}
		counts := CountRegimes(records)
		require.Len(t, counts, 2)
		assert.Equal(t, schema.PersistentRegime, counts[0].Regime)
	})

	t.Run("missing regimes omitted", func(t *testing.T) {
		counts := CountRegimes([]schema.MetricsRecord{{Regime: schema.ShockRegime}})
		assert.Equal(t, []schema.RegimeCount{{Regime: schema.ShockRegime, Count: 1}}, counts)
		assert.Empty(t, CountRegimes(nil))
	})
}

func TestFilterRegime(t *testing.T) {
	records := []schema.MetricsRecord{
		{Event: "a", Regime: schema.ShockRegime},
		{Event: "b", Regime: schema.PersistentRegime},
		{Event: "c", Regime: schema.ShockRegime},
	}
	shock := FilterRegime(records, schema.ShockRegime)
	require.Len(t, shock, 2)
	assert.Equal(t, "a", shock[0].Event)
	assert.Equal(t, "c", shock[1].Event)
	assert.Empty(t, FilterRegime(nil, schema.PersistentRegime))
}
