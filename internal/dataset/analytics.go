package dataset

import (
	"math"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/entity"
)

// AnalyticsSampleCap bounds how many records field statistics are computed
// over. Datasets beyond the cap get sample-derived estimates; the payload says
// so explicitly via Sampling.
const AnalyticsSampleCap = 1000

type ValueFrequency struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type FieldStats struct {
	Type        entity.FieldType `json:"type"`
	TotalValues int              `json:"totalValues"`
	NullCount   int              `json:"nullCount"`
	UniqueCount int              `json:"uniqueCount"`
	Min         *float64         `json:"min,omitempty"`
	Max         *float64         `json:"max,omitempty"`
	Avg         *float64         `json:"avg,omitempty"`
	MostCommon  []ValueFrequency `json:"mostCommon,omitempty"`
}

type AnalyticsOverview struct {
	TotalRecords     int64 `json:"totalRecords"`
	TotalFields      int   `json:"totalFields"`
	RequiredFields   int   `json:"requiredFields"`
	SearchableFields int   `json:"searchableFields"`
}

type StorageInfo struct {
	Size          int64  `json:"size"`
	SizeFormatted string `json:"sizeFormatted"`
}

type SamplingInfo struct {
	Cap        int  `json:"cap"`
	SampleSize int  `json:"sampleSize"`
	Sampled    bool `json:"sampled"`
}

type Analytics struct {
	Overview   AnalyticsOverview     `json:"overview"`
	FieldStats map[string]FieldStats `json:"fieldStats"`
	Storage    StorageInfo           `json:"storage"`
	Sampling   SamplingInfo          `json:"sampling"`
}

// Analyze reduces a bounded sample of a dataset's active records into
// per-field statistics and dataset-level rollups. Overview.TotalRecords comes
// from dataset metadata and is exact; everything under FieldStats is computed
// over the sample only.
func (s *Service) Analyze(datasetID uuid.UUID) (*Analytics, error) {
	ds, err := s.GetDataset(datasetID)
	if err != nil {
		return nil, err
	}

	sample, err := s.QueryRecords(QueryParams{
		DatasetID: datasetID,
		Page:      1,
		PageSize:  AnalyticsSampleCap,
	})
	if err != nil {
		return nil, err
	}

	schema := ds.Schema.Data()
	fieldStats := make(map[string]FieldStats, len(schema.Fields))
	for _, field := range schema.Fields {
		fieldStats[field.Name] = computeFieldStats(field, sample.Records)
	}

	return &Analytics{
		Overview: AnalyticsOverview{
			TotalRecords:     ds.Metadata.RecordCount,
			TotalFields:      len(schema.Fields),
			RequiredFields:   len(schema.RequiredFields()),
			SearchableFields: len(schema.SearchableFields()),
		},
		FieldStats: fieldStats,
		Storage: StorageInfo{
			Size:          ds.Metadata.Size,
			SizeFormatted: formatBytes(ds.Metadata.Size),
		},
		Sampling: SamplingInfo{
			Cap:        AnalyticsSampleCap,
			SampleSize: len(sample.Records),
			Sampled:    sample.Total > int64(len(sample.Records)),
		},
	}, nil
}

func computeFieldStats(field entity.FieldDefinition, sample []entity.DatasetRecord) FieldStats {
	var values []interface{}
	for _, record := range sample {
		if value, ok := record.Data[field.Name]; ok && value != nil {
			values = append(values, value)
		}
	}

	unique := make(map[string]struct{}, len(values))
	for _, value := range values {
		unique[stringValue(value)] = struct{}{}
	}

	stats := FieldStats{
		Type:        field.Type,
		TotalValues: len(values),
		NullCount:   len(sample) - len(values),
		UniqueCount: len(unique),
	}

	if field.Type == entity.FieldTypeNumber {
		stats.Min, stats.Max, stats.Avg = numericStats(values)
	}

	if field.Type == entity.FieldTypeString || field.Type == entity.FieldTypeSelect {
		stats.MostCommon = mostCommonValues(values, 5)
	}

	return stats
}

// numericStats returns min/max/avg over the numeric-coercible, non-NaN subset
// of values, or all-nil when no such values exist.
func numericStats(values []interface{}) (*float64, *float64, *float64) {
	var numbers []float64
	for _, value := range values {
		if f, ok := coerceFloat(value); ok {
			numbers = append(numbers, f)
		}
	}
	if len(numbers) == 0 {
		return nil, nil, nil
	}

	min, max, sum := numbers[0], numbers[0], 0.0
	for _, n := range numbers {
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
		sum += n
	}
	avg := sum / float64(len(numbers))
	return &min, &max, &avg
}

// mostCommonValues ranks distinct values by frequency, ties broken by first
// encounter in the sample.
func mostCommonValues(values []interface{}, limit int) []ValueFrequency {
	if len(values) == 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, value := range values {
		key := stringValue(value)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	frequencies := make([]ValueFrequency, 0, len(order))
	for _, key := range order {
		frequencies = append(frequencies, ValueFrequency{
			Value:      key,
			Count:      counts[key],
			Percentage: float64(counts[key]) / float64(len(values)) * 100,
		})
	}
	return frequencies
}

// formatBytes renders a byte count on the binary unit ladder, rounded to two
// decimals. Zero renders literally as "0 Bytes".
func formatBytes(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	exp := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if exp >= len(sizes) {
		exp = len(sizes) - 1
	}
	value := math.Round(float64(bytes)/math.Pow(1024, float64(exp))*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizes[exp]
}
