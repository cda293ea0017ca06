package dataset

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/entity"
)

func TestAnalyze_Overview(t *testing.T) {
	svc := newTestService(t)
	ds := createTestDataset(t, svc, true,
		entity.FieldDefinition{Name: "name", Type: entity.FieldTypeString, Required: true, IsSearchable: true},
		entity.FieldDefinition{Name: "age", Type: entity.FieldTypeNumber, Required: true},
		entity.FieldDefinition{Name: "county", Type: entity.FieldTypeSelect},
	)
	seedRecords(t, svc, ds,
		map[string]interface{}{"name": "Ada", "age": 34},
		map[string]interface{}{"name": "Grace", "age": 41},
	)

	analytics, err := svc.Analyze(ds.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), analytics.Overview.TotalRecords)
	assert.Equal(t, 3, analytics.Overview.TotalFields)
	assert.Equal(t, 2, analytics.Overview.RequiredFields)
	assert.Equal(t, 1, analytics.Overview.SearchableFields)

	assert.Equal(t, AnalyticsSampleCap, analytics.Sampling.Cap)
	assert.Equal(t, 2, analytics.Sampling.SampleSize)
	assert.False(t, analytics.Sampling.Sampled)
}

func TestAnalyze_FieldCounts(t *testing.T) {
	svc := newTestService(t)
	ds := createTestDataset(t, svc, false,
		entity.FieldDefinition{Name: "county", Type: entity.FieldTypeSelect},
	)
	seedRecords(t, svc, ds,
		map[string]interface{}{"county": "Wake"},
		map[string]interface{}{"county": "Wake"},
		map[string]interface{}{"county": "Durham"},
		map[string]interface{}{},
		map[string]interface{}{"county": nil},
	)

	analytics, err := svc.Analyze(ds.ID)
	require.NoError(t, err)

	stats, ok := analytics.FieldStats["county"]
	require.True(t, ok)
	assert.Equal(t, entity.FieldTypeSelect, stats.Type)
	assert.Equal(t, 3, stats.TotalValues)
	assert.Equal(t, 2, stats.NullCount)
	assert.Equal(t, 2, stats.UniqueCount)
}

func TestAnalyze_NumericAggregates(t *testing.T) {
	svc := newTestService(t)
	ds := createTestDataset(t, svc, false,
		entity.FieldDefinition{Name: "age", Type: entity.FieldTypeNumber},
	)
	seedRecords(t, svc, ds,
		map[string]interface{}{"age": 20},
		map[string]interface{}{"age": 40},
		map[string]interface{}{"age": "60"},
		map[string]interface{}{"age": "not a number"},
	)

	analytics, err := svc.Analyze(ds.ID)
	require.NoError(t, err)

	stats := analytics.FieldStats["age"]
	require.NotNil(t, stats.Min)
	require.NotNil(t, stats.Max)
	require.NotNil(t, stats.Avg)

	assert.Equal(t, 20.0, *stats.Min)
	assert.Equal(t, 60.0, *stats.Max)
	assert.Equal(t, 40.0, *stats.Avg)
	assert.LessOrEqual(t, *stats.Min, *stats.Avg)
	assert.LessOrEqual(t, *stats.Avg, *stats.Max)
}

func TestAnalyze_NumericKeysAbsentWithoutNumericValues(t *testing.T) {
	svc := newTestService(t)
	ds := createTestDataset(t, svc, false,
		entity.FieldDefinition{Name: "age", Type: entity.FieldTypeNumber},
	)
	seedRecords(t, svc, ds,
		map[string]interface{}{"age": "unknown"},
		map[string]interface{}{},
	)

	analytics, err := svc.Analyze(ds.ID)
	require.NoError(t, err)

	stats := analytics.FieldStats["age"]
	assert.Nil(t, stats.Min)
	assert.Nil(t, stats.Max)
	assert.Nil(t, stats.Avg)
}

func TestAnalyze_MostCommonValues(t *testing.T) {
	svc := newTestService(t)
	ds := createTestDataset(t, svc, false,
		entity.FieldDefinition{Name: "county", Type: entity.FieldTypeString},
	)
	seedRecords(t, svc, ds,
		map[string]interface{}{"county": "Wake"},
		map[string]interface{}{"county": "Durham"},
		map[string]interface{}{"county": "Wake"},
		map[string]interface{}{"county": "Orange"},
		map[string]interface{}{"county": "Wake"},
		map[string]interface{}{"county": "Durham"},
	)

	analytics, err := svc.Analyze(ds.ID)
	require.NoError(t, err)

	mostCommon := analytics.FieldStats["county"].MostCommon
	require.Len(t, mostCommon, 3)

	assert.Equal(t, "Wake", mostCommon[0].Value)
	assert.Equal(t, 3, mostCommon[0].Count)
	assert.InDelta(t, 50.0, mostCommon[0].Percentage, 0.001)

	assert.Equal(t, "Durham", mostCommon[1].Value)
	assert.Equal(t, 2, mostCommon[1].Count)

	assert.Equal(t, "Orange", mostCommon[2].Value)
	assert.Equal(t, 1, mostCommon[2].Count)
}

func TestAnalyze_MostCommonTieBreaksByFirstEncounter(t *testing.T) {
	values := []interface{}{"b", "a", "b", "a", "c"}

	frequencies := mostCommonValues(values, 5)
	require.Len(t, frequencies, 3)

	// "b" and "a" tie at 2; "b" was seen first.
	assert.Equal(t, "b", frequencies[0].Value)
	assert.Equal(t, "a", frequencies[1].Value)
	assert.Equal(t, "c", frequencies[2].Value)
}

func TestAnalyze_MostCommonLimitsToTopFive(t *testing.T) {
	values := []interface{}{"a", "b", "c", "d", "e", "f", "g"}

	frequencies := mostCommonValues(values, 5)
	assert.Len(t, frequencies, 5)
}

func TestAnalyze_UnknownDataset(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Analyze(uuid.New())
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 Bytes", formatBytes(0))
	assert.Equal(t, "512 Bytes", formatBytes(512))
	assert.Equal(t, "1023 Bytes", formatBytes(1023))
	assert.Equal(t, "1 KB", formatBytes(1024))
	assert.Equal(t, "1.5 KB", formatBytes(1536))
	assert.Equal(t, "1 MB", formatBytes(1024*1024))
	assert.Equal(t, "2.5 GB", formatBytes(int64(2.5*1024*1024*1024)))
}
