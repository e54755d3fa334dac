package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/lifespan/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []schema.MetricsRecord {
	halfLife := 4
	lambda := 0.17328679513998632
	return []schema.MetricsRecord{
		{Event: "Storm", Peak: 90, HalfLifeDays: &halfLife, TotalAttention: 310.5, DecayLambda: &lambda, Regime: schema.PersistentRegime},
		{Event: "Recall", Peak: 40, TotalAttention: 55, Regime: schema.ShockRegime},
	}
}

func readRows(t *testing.T, path string) []MetricsRow {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[MetricsRow](file)
	defer reader.Close()

	rows := make([]MetricsRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func TestMetricsRowStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(MetricsRow))
	require.NotNil(t, s)

	for _, colName := range []string{"run_id", "rank", "event", "peak", "half_life_days", "total_attention", "decay_lambda", "regime"} {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}

	col, _ := s.Lookup("half_life_days")
	assert.True(t, col.Node.Optional(), "half_life_days should be optional")
	col, _ = s.Lookup("decay_lambda")
	assert.True(t, col.Node.Optional(), "decay_lambda should be optional")
}

func TestConvertMetricsRecords(t *testing.T) {
	rows := ConvertMetricsRecords("run-1", sampleRecords())
	require.Len(t, rows, 2)

	assert.Equal(t, "run-1", rows[0].RunID)
	assert.Equal(t, int32(1), rows[0].Rank)
	assert.Equal(t, "Storm", rows[0].Event)
	require.NotNil(t, rows[0].HalfLifeDays)
	assert.Equal(t, int32(4), *rows[0].HalfLifeDays)
	require.NotNil(t, rows[0].DecayLambda)
	assert.Equal(t, "persistent", rows[0].Regime)

	assert.Equal(t, int32(2), rows[1].Rank)
	assert.Nil(t, rows[1].HalfLifeDays)
	assert.Nil(t, rows[1].DecayLambda)
}

func TestWriteMetricsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "metrics.parquet")
	data := ConvertMetricsRecords("run-1", sampleRecords())

	require.NoError(t, WriteMetricsParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	readData := readRows(t, outputPath)
	require.Len(t, readData, len(data), "Should read all records")
	for i := range data {
		assert.Equal(t, data[i].Event, readData[i].Event)
		assert.Equal(t, data[i].Rank, readData[i].Rank)
		assert.InDelta(t, data[i].Peak, readData[i].Peak, 1e-12)
		assert.InDelta(t, data[i].TotalAttention, readData[i].TotalAttention, 1e-12)
		assert.Equal(t, data[i].Regime, readData[i].Regime)
	}

	// Nullable columns survive the round trip
	require.NotNil(t, readData[0].HalfLifeDays)
	assert.Equal(t, int32(4), *readData[0].HalfLifeDays)
	assert.Nil(t, readData[1].HalfLifeDays)
	assert.Nil(t, readData[1].DecayLambda)
}

func TestWriteMetricsParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteMetricsParquet([]MetricsRow{}, outputPath))

	_, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist even with empty data")
	assert.Empty(t, readRows(t, outputPath))
}

func TestWriteMetricsParquet_InvalidPath(t *testing.T) {
	err := WriteMetricsParquet(nil, "/nonexistent/directory/metrics.parquet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}
