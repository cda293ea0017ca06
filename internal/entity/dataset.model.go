package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DatasetStatus string

const (
	DatasetStatusActive  DatasetStatus = "active"
	DatasetStatusDeleted DatasetStatus = "deleted"
)

type FieldType string

const (
	FieldTypeString      FieldType = "string"
	FieldTypeNumber      FieldType = "number"
	FieldTypeBoolean     FieldType = "boolean"
	FieldTypeDate        FieldType = "date"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiselect FieldType = "multiselect"
)

// FieldDefinition is one column of a dataset schema. Field names are the keys
// of record data maps; insertion order is display order.
type FieldDefinition struct {
	Name         string    `json:"name"`
	Type         FieldType `json:"type"`
	Required     bool      `json:"required"`
	IsSearchable bool      `json:"isSearchable"`
	Options      []string  `json:"options,omitempty"`
}

type SchemaDefinition struct {
	Fields []FieldDefinition `json:"fields"`
}

// Field returns the definition for name, if the schema declares it.
func (s SchemaDefinition) Field(name string) (FieldDefinition, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

func (s SchemaDefinition) RequiredFields() []FieldDefinition {
	var fields []FieldDefinition
	for _, f := range s.Fields {
		if f.Required {
			fields = append(fields, f)
		}
	}
	return fields
}

func (s SchemaDefinition) SearchableFields() []FieldDefinition {
	var fields []FieldDefinition
	for _, f := range s.Fields {
		if f.IsSearchable {
			fields = append(fields, f)
		}
	}
	return fields
}

type ValidationConfig struct {
	StrictMode bool `json:"strictMode"`
}

type NotificationConfig struct {
	EmailOnSubmit   bool     `json:"emailOnSubmit"`
	EmailRecipients []string `json:"emailRecipients,omitempty"`
}

type DatasetConfig struct {
	Validation    ValidationConfig   `json:"validation"`
	Notifications NotificationConfig `json:"notifications"`
}

// DatasetMetadata holds derived counters maintained on record writes.
// RecordCount tracks active records and is bumped with atomic SQL increments.
type DatasetMetadata struct {
	RecordCount  int64      `gorm:"column:meta_record_count;not null;default:0" json:"recordCount"`
	Size         int64      `gorm:"column:meta_size;not null;default:0" json:"size"`
	LastRecordAt *time.Time `gorm:"column:meta_last_record_at" json:"lastRecordAt,omitempty"`
}

// Dataset is a named schema-bound record container. Schema and config travel
// as JSONB documents so operators can define arbitrary tabular shapes without
// migrations.
type Dataset struct {
	ID          uuid.UUID                            `gorm:"type:uuid;primary_key" json:"id"`
	Name        string                               `gorm:"type:varchar(255);not null" json:"name"`
	Description string                               `gorm:"type:text" json:"description,omitempty"`
	Schema      datatypes.JSONType[SchemaDefinition] `json:"schema"`
	Config      datatypes.JSONType[DatasetConfig]    `json:"config"`
	Metadata    DatasetMetadata                      `gorm:"embedded" json:"metadata"`
	Status      DatasetStatus                        `gorm:"type:varchar(16);not null;default:'active';index" json:"status"`
	CreatedBy   string                               `gorm:"type:varchar(255)" json:"createdBy"`
	CreatedAt   time.Time                            `json:"createdAt"`
	UpdatedAt   time.Time                            `json:"updatedAt"`
}
