package dataset

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/entity"
)

const (
	defaultPage     = 1
	defaultPageSize = 25
)

type QueryParams struct {
	DatasetID uuid.UUID
	Page      int
	PageSize  int
	Search    string
	SortBy    string
	SortOrder string
}

type QueryResult struct {
	Records    []entity.DatasetRecord `json:"records"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	Total      int64                  `json:"total"`
	TotalPages int                    `json:"totalPages"`
}

// QueryRecords returns one page of a dataset's active records. Search matches
// case-insensitive substrings against fields the schema marks searchable; a
// dataset with no searchable fields treats search as a no-op. Sorting accepts
// schema field names plus the reserved createdAt/updatedAt keys; unknown keys
// fall back to insertion order instead of erroring. Total counts all matches
// before pagination, and pages past the end yield an empty page.
//
// Record documents are schemaless, so search and field sorts are evaluated in
// process over a single dataset-scoped fetch rather than pushed into SQL.
func (s *Service) QueryRecords(params QueryParams) (*QueryResult, error) {
	ds, err := s.GetDataset(params.DatasetID)
	if err != nil {
		return nil, err
	}

	page := params.Page
	if page < 1 {
		page = defaultPage
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	var records []entity.DatasetRecord
	err = s.ctx.DB.
		Where("dataset_id = ? AND status = ?", params.DatasetID, entity.RecordStatusActive).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	schema := ds.Schema.Data()
	records = filterRecords(records, schema, params.Search)
	sortRecords(records, schema, params.SortBy, params.SortOrder)

	total := int64(len(records))
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	start := (page - 1) * pageSize
	end := start + pageSize
	switch {
	case start >= len(records):
		records = []entity.DatasetRecord{}
	case end > len(records):
		records = records[start:]
	default:
		records = records[start:end]
	}

	return &QueryResult{
		Records:    records,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func filterRecords(records []entity.DatasetRecord, schema entity.SchemaDefinition, search string) []entity.DatasetRecord {
	if search == "" {
		return records
	}
	searchable := schema.SearchableFields()
	if len(searchable) == 0 {
		return records
	}

	needle := strings.ToLower(search)
	filtered := records[:0]
	for _, record := range records {
		for _, field := range searchable {
			value, ok := record.Data[field.Name]
			if !ok || value == nil {
				continue
			}
			if strings.Contains(strings.ToLower(stringValue(value)), needle) {
				filtered = append(filtered, record)
				break
			}
		}
	}
	return filtered
}

func sortRecords(records []entity.DatasetRecord, schema entity.SchemaDefinition, sortBy, sortOrder string) {
	var less func(a, b entity.DatasetRecord) bool

	switch {
	case sortBy == "createdAt":
		less = func(a, b entity.DatasetRecord) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case sortBy == "updatedAt":
		less = func(a, b entity.DatasetRecord) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		field, ok := schema.Field(sortBy)
		if !ok {
			// Unknown sort keys keep insertion order to stay permissive
			// for UI callers.
			return
		}
		less = func(a, b entity.DatasetRecord) bool {
			return compareValues(a.Data[field.Name], b.Data[field.Name]) < 0
		}
	}

	desc := sortOrder == "desc"
	sort.SliceStable(records, func(i, j int) bool {
		if desc {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}
