package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionExport AuditAction = "export"
)

// AuditLog is one immutable entry in a dataset's write history. RecordID is
// nil for dataset-level actions. Details carries before/after snapshots as an
// untyped document, matching whatever shape the action touched.
type AuditLog struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	DatasetID uuid.UUID         `gorm:"type:uuid;not null;index" json:"datasetId"`
	RecordID  *uuid.UUID        `gorm:"type:uuid" json:"recordId,omitempty"`
	Action    AuditAction       `gorm:"type:varchar(32);not null" json:"action"`
	ActorID   string            `gorm:"type:varchar(255)" json:"actorId"`
	Details   datatypes.JSONMap `json:"details,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}
