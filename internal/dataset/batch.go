package dataset

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/entity"
)

// BatchRecordInput is one candidate record in a batch ingestion request.
type BatchRecordInput struct {
	Data   map[string]interface{} `json:"data"`
	Source string                 `json:"source,omitempty"`
}

// BatchCreateRecords ingests multiple records in one call with all-or-nothing
// semantics. Every candidate is validated before anything is written; under
// strict mode a single invalid candidate rejects the whole batch, reporting
// each invalid zero-based input index with its missing fields. On success the
// records are created in input order and returned in the same order.
func (s *Service) BatchCreateRecords(datasetID uuid.UUID, inputs []BatchRecordInput, userID string) ([]entity.DatasetRecord, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}

	ds, err := s.activeDataset(datasetID)
	if err != nil {
		return nil, err
	}

	schema := ds.Schema.Data()
	strict := ds.Config.Data().Validation.StrictMode

	var invalid []BatchItemError
	for i, input := range inputs {
		if missing := ValidateRecord(schema, strict, input.Data); len(missing) > 0 {
			invalid = append(invalid, BatchItemError{Index: i, MissingFields: missing})
		}
	}
	if len(invalid) > 0 {
		return nil, &BatchValidationError{Items: invalid}
	}

	records := make([]entity.DatasetRecord, 0, len(inputs))
	var totalSize int64
	for _, input := range inputs {
		records = append(records, entity.DatasetRecord{
			ID:        uuid.New(),
			DatasetID: datasetID,
			Data:      datatypes.JSONMap(input.Data),
			Status:    entity.RecordStatusActive,
			Source:    input.Source,
			Version:   1,
			CreatedBy: userID,
			UpdatedBy: userID,
		})
		totalSize += dataSize(input.Data)
	}

	err = s.ctx.DB.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			if err := tx.Create(&records[i]).Error; err != nil {
				return err
			}
		}
		return bumpDatasetMetadata(tx, datasetID, len(records), totalSize)
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(datasetID, nil, entity.AuditActionCreate, userID, map[string]interface{}{
		"after": map[string]interface{}{"count": len(records)},
	})
	for i := range records {
		s.indexRecord(ds, &records[i])
	}

	return records, nil
}
