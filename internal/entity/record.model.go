package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RecordStatus string

const (
	RecordStatusActive  RecordStatus = "active"
	RecordStatusDeleted RecordStatus = "deleted"
)

// DatasetRecord is one row under a dataset. Data is an untyped field-name to
// value map; the schema constrains presence of required fields only, never
// value shape. A record belongs to exactly one dataset for its lifetime.
// Version starts at 1 and counts data mutations.
type DatasetRecord struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	DatasetID uuid.UUID          `gorm:"type:uuid;not null;index" json:"datasetId"`
	Data      datatypes.JSONMap  `json:"data"`
	Status    RecordStatus       `gorm:"type:varchar(16);not null;default:'active';index" json:"status"`
	Source    string             `gorm:"type:varchar(255)" json:"source,omitempty"`
	Version   int64              `gorm:"not null;default:1" json:"version"`
	CreatedBy string             `gorm:"type:varchar(255)" json:"createdBy"`
	UpdatedBy string             `gorm:"type:varchar(255)" json:"updatedBy"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
