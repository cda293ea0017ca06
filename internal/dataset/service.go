package dataset

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/appcontext"
	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/entity"
	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/services"
)

const recordSearchIndex = "records"

// Service implements the dataset engine: schema-bound dataset containers and
// the record store beneath them. It is stateless; every method is an
// independent unit of work against the database.
type Service struct {
	ctx *appcontext.Context
}

func NewService(ctx *appcontext.Context) *Service {
	return &Service{ctx: ctx}
}

type CreateDatasetInput struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Schema      entity.SchemaDefinition `json:"schema"`
	Config      entity.DatasetConfig    `json:"config"`
}

type UpdateDatasetInput struct {
	Name        *string                  `json:"name"`
	Description *string                  `json:"description"`
	Schema      *entity.SchemaDefinition `json:"schema"`
	Config      *entity.DatasetConfig    `json:"config"`
}

func (s *Service) CreateDataset(input CreateDatasetInput, userID string) (*entity.Dataset, error) {
	if input.Name == "" {
		return nil, ErrMissingName
	}

	ds := entity.Dataset{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Schema:      datatypes.NewJSONType(input.Schema),
		Config:      datatypes.NewJSONType(input.Config),
		Status:      entity.DatasetStatusActive,
		CreatedBy:   userID,
	}

	if err := s.ctx.DB.Create(&ds).Error; err != nil {
		return nil, err
	}

	s.logAudit(ds.ID, nil, entity.AuditActionCreate, userID, map[string]interface{}{
		"after": map[string]interface{}{"name": ds.Name},
	})

	return &ds, nil
}

func (s *Service) GetDataset(datasetID uuid.UUID) (*entity.Dataset, error) {
	var ds entity.Dataset
	if err := s.ctx.DB.Where("id = ?", datasetID).First(&ds).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, err
	}
	return &ds, nil
}

func (s *Service) ListDatasets(status entity.DatasetStatus, limit int) ([]entity.Dataset, error) {
	query := s.ctx.DB.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var datasets []entity.Dataset
	if err := query.Find(&datasets).Error; err != nil {
		return nil, err
	}
	return datasets, nil
}

func (s *Service) UpdateDataset(datasetID uuid.UUID, input UpdateDatasetInput, userID string) (*entity.Dataset, error) {
	ds, err := s.GetDataset(datasetID)
	if err != nil {
		return nil, err
	}

	prevName := ds.Name
	changes := map[string]interface{}{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrMissingName
		}
		ds.Name = *input.Name
		changes["name"] = *input.Name
	}
	if input.Description != nil {
		ds.Description = *input.Description
		changes["description"] = *input.Description
	}
	if input.Schema != nil {
		ds.Schema = datatypes.NewJSONType(*input.Schema)
		changes["schema"] = true
	}
	if input.Config != nil {
		ds.Config = datatypes.NewJSONType(*input.Config)
		changes["config"] = true
	}

	if err := s.ctx.DB.Save(ds).Error; err != nil {
		return nil, err
	}

	s.logAudit(ds.ID, nil, entity.AuditActionUpdate, userID, map[string]interface{}{
		"before": map[string]interface{}{"name": prevName},
		"after":  changes,
	})

	return ds, nil
}

// DeleteDataset soft-deletes the container. Records underneath keep their own
// status and are not cascaded; they become unreachable through the
// dataset-scoped routes only.
func (s *Service) DeleteDataset(datasetID uuid.UUID, userID string) error {
	ds, err := s.GetDataset(datasetID)
	if err != nil {
		return err
	}

	err = s.ctx.DB.Model(ds).Updates(map[string]interface{}{
		"status":     entity.DatasetStatusDeleted,
		"updated_at": time.Now().UTC(),
	}).Error
	if err != nil {
		return err
	}

	s.logAudit(ds.ID, nil, entity.AuditActionDelete, userID, nil)
	return nil
}

// activeDataset resolves a dataset for a write path. Soft-deleted datasets do
// not accept new records and resolve as not found.
func (s *Service) activeDataset(datasetID uuid.UUID) (*entity.Dataset, error) {
	ds, err := s.GetDataset(datasetID)
	if err != nil {
		return nil, err
	}
	if ds.Status != entity.DatasetStatusActive {
		return nil, ErrDatasetNotFound
	}
	return ds, nil
}

// CreateRecord validates data against the dataset schema and persists a new
// active record, bumping the dataset's record count and size atomically.
func (s *Service) CreateRecord(datasetID uuid.UUID, data map[string]interface{}, source, userID string) (*entity.DatasetRecord, error) {
	ds, err := s.activeDataset(datasetID)
	if err != nil {
		return nil, err
	}

	if missing := ValidateRecord(ds.Schema.Data(), ds.Config.Data().Validation.StrictMode, data); len(missing) > 0 {
		return nil, &ValidationError{MissingFields: missing}
	}

	record := entity.DatasetRecord{
		ID:        uuid.New(),
		DatasetID: datasetID,
		Data:      datatypes.JSONMap(data),
		Status:    entity.RecordStatusActive,
		Source:    source,
		Version:   1,
		CreatedBy: userID,
		UpdatedBy: userID,
	}

	err = s.ctx.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return bumpDatasetMetadata(tx, datasetID, 1, dataSize(data))
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(datasetID, &record.ID, entity.AuditActionCreate, userID, map[string]interface{}{"after": data})
	s.indexRecord(ds, &record)
	s.notifySubmission(ds, &record)

	return &record, nil
}

func (s *Service) GetRecord(recordID uuid.UUID) (*entity.DatasetRecord, error) {
	var record entity.DatasetRecord
	if err := s.ctx.DB.Where("id = ?", recordID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetDatasetRecord fetches a record through the dataset it is addressed
// under. A record that exists under a different dataset is an ownership
// violation, not a missing record.
func (s *Service) GetDatasetRecord(datasetID, recordID uuid.UUID) (*entity.DatasetRecord, error) {
	record, err := s.GetRecord(recordID)
	if err != nil {
		return nil, err
	}
	if record.DatasetID != datasetID {
		return nil, ErrRecordNotInDataset
	}
	return record, nil
}

// UpdateRecord merges partial data into the record's existing data map; keys
// not present in the patch are preserved. The version stamp is incremented
// with SQL-side arithmetic. Required fields are not re-checked
// here, so a patch can blank a field that strict mode demanded at creation.
// That matches the platform's current write contract.
func (s *Service) UpdateRecord(recordID uuid.UUID, partial map[string]interface{}, userID string) (*entity.DatasetRecord, error) {
	record, err := s.GetRecord(recordID)
	if err != nil {
		return nil, err
	}

	if record.Data == nil {
		record.Data = datatypes.JSONMap{}
	}
	before := make(map[string]interface{}, len(record.Data))
	for key, value := range record.Data {
		before[key] = value
	}
	for key, value := range partial {
		record.Data[key] = value
	}

	err = s.ctx.DB.Model(record).Updates(map[string]interface{}{
		"data":       record.Data,
		"updated_by": userID,
		"version":    gorm.Expr("version + 1"),
	}).Error
	if err != nil {
		return nil, err
	}
	record.UpdatedBy = userID
	record.Version++

	s.logAudit(record.DatasetID, &record.ID, entity.AuditActionUpdate, userID, map[string]interface{}{
		"before": before,
		"after":  partial,
	})

	if ds, dsErr := s.GetDataset(record.DatasetID); dsErr == nil {
		s.indexRecord(ds, record)
	}

	return record, nil
}

// DeleteRecord soft-deletes a record and decrements the dataset counter.
func (s *Service) DeleteRecord(recordID uuid.UUID, userID string) error {
	record, err := s.GetRecord(recordID)
	if err != nil {
		return err
	}

	err = s.ctx.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(record).Updates(map[string]interface{}{
			"status":     entity.RecordStatusDeleted,
			"updated_by": userID,
		}).Error
		if err != nil {
			return err
		}
		return bumpDatasetMetadata(tx, record.DatasetID, -1, 0)
	})
	if err != nil {
		return err
	}

	s.logAudit(record.DatasetID, &record.ID, entity.AuditActionDelete, userID, nil)
	s.removeFromIndex(record.ID)
	return nil
}

// bumpDatasetMetadata adjusts the derived counters with SQL-side arithmetic so
// concurrent record writes cannot lose increments.
func bumpDatasetMetadata(tx *gorm.DB, datasetID uuid.UUID, countDelta int, sizeDelta int64) error {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"meta_record_count": gorm.Expr("meta_record_count + ?", countDelta),
		"updated_at":        now,
	}
	if countDelta > 0 {
		updates["meta_size"] = gorm.Expr("meta_size + ?", sizeDelta)
		updates["meta_last_record_at"] = now
	}
	return tx.Model(&entity.Dataset{}).Where("id = ?", datasetID).UpdateColumns(updates).Error
}

func dataSize(data map[string]interface{}) int64 {
	raw, err := json.Marshal(data)
	if err != nil {
		return 0
	}
	return int64(len(raw))
}

// indexRecord pushes the searchable slice of a record into the external search
// index. Best effort: a missing or failing index never fails the write.
func (s *Service) indexRecord(ds *entity.Dataset, record *entity.DatasetRecord) {
	if s.ctx.MeilisearchClient == nil {
		return
	}

	doc := map[string]interface{}{
		"id":         record.ID.String(),
		"dataset_id": ds.ID.String(),
	}
	for _, field := range ds.Schema.Data().SearchableFields() {
		if value, ok := record.Data[field.Name]; ok {
			doc[field.Name] = value
		}
	}

	if _, err := s.ctx.MeilisearchClient.Index(recordSearchIndex).AddDocuments([]map[string]interface{}{doc}); err != nil {
		s.ctx.Logger.Warn("Failed to index record", zap.String("record_id", record.ID.String()), zap.Error(err))
	}
}

func (s *Service) removeFromIndex(recordID uuid.UUID) {
	if s.ctx.MeilisearchClient == nil {
		return
	}
	if _, err := s.ctx.MeilisearchClient.Index(recordSearchIndex).DeleteDocument(recordID.String()); err != nil {
		s.ctx.Logger.Warn("Failed to remove record from index", zap.String("record_id", recordID.String()), zap.Error(err))
	}
}

// notifySubmission emails the dataset's configured recipients about a new
// submission. Failures are logged, never surfaced to the caller.
func (s *Service) notifySubmission(ds *entity.Dataset, record *entity.DatasetRecord) {
	cfg := ds.Config.Data().Notifications
	if !cfg.EmailOnSubmit || len(cfg.EmailRecipients) == 0 {
		return
	}
	if err := services.SendSubmissionEmail(cfg.EmailRecipients, ds.Name, record.ID.String()); err != nil {
		s.ctx.Logger.Warn("Failed to send submission notification", zap.String("dataset_id", ds.ID.String()), zap.Error(err))
	}
}
