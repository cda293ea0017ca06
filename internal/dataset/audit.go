package dataset

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/entity"
)

const defaultAuditLimit = 100

// logAudit appends an entry to the dataset's write history. Best effort: a
// failing audit write is logged and never fails the operation it describes.
func (s *Service) logAudit(datasetID uuid.UUID, recordID *uuid.UUID, action entity.AuditAction, actorID string, details map[string]interface{}) {
	log := entity.AuditLog{
		ID:        uuid.New(),
		DatasetID: datasetID,
		RecordID:  recordID,
		Action:    action,
		ActorID:   actorID,
		Details:   datatypes.JSONMap(details),
	}
	if err := s.ctx.DB.Create(&log).Error; err != nil {
		s.ctx.Logger.Warn("Failed to write audit log", zap.String("dataset_id", datasetID.String()), zap.Error(err))
	}
}

// ListAuditLogs returns a dataset's audit history, newest first.
func (s *Service) ListAuditLogs(datasetID uuid.UUID, limit int) ([]entity.AuditLog, error) {
	if _, err := s.GetDataset(datasetID); err != nil {
		return nil, err
	}

	if limit < 1 {
		limit = defaultAuditLimit
	}

	var logs []entity.AuditLog
	err := s.ctx.DB.
		Where("dataset_id = ?", datasetID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
