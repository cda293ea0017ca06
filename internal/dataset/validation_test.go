package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/entity"
)

func testSchema(fields ...entity.FieldDefinition) entity.SchemaDefinition {
	return entity.SchemaDefinition{Fields: fields}
}

func TestValidateRecord_StrictModeMissingField(t *testing.T) {
	schema := testSchema(
		entity.FieldDefinition{Name: "name", Type: entity.FieldTypeString, Required: true},
		entity.FieldDefinition{Name: "age", Type: entity.FieldTypeNumber, Required: true},
		entity.FieldDefinition{Name: "notes", Type: entity.FieldTypeString},
	)

	missing := ValidateRecord(schema, true, map[string]interface{}{"name": "Ada"})
	assert.Equal(t, []string{"age"}, missing)
}

func TestValidateRecord_EmptyStringCountsAsMissing(t *testing.T) {
	schema := testSchema(entity.FieldDefinition{Name: "name", Type: entity.FieldTypeString, Required: true})

	assert.Equal(t, []string{"name"}, ValidateRecord(schema, true, map[string]interface{}{"name": ""}))
	assert.Equal(t, []string{"name"}, ValidateRecord(schema, true, map[string]interface{}{"name": nil}))
	assert.Equal(t, []string{"name"}, ValidateRecord(schema, true, map[string]interface{}{}))
}

func TestValidateRecord_FalsyNonStringValuesArePresent(t *testing.T) {
	schema := testSchema(
		entity.FieldDefinition{Name: "active", Type: entity.FieldTypeBoolean, Required: true},
		entity.FieldDefinition{Name: "count", Type: entity.FieldTypeNumber, Required: true},
	)

	missing := ValidateRecord(schema, true, map[string]interface{}{"active": false, "count": 0})
	assert.Empty(t, missing)
}

func TestValidateRecord_NonStrictAlwaysPasses(t *testing.T) {
	schema := testSchema(entity.FieldDefinition{Name: "name", Type: entity.FieldTypeString, Required: true})

	assert.Empty(t, ValidateRecord(schema, false, map[string]interface{}{}))
	assert.Empty(t, ValidateRecord(schema, false, nil))
}

func TestValidateRecord_MissingFieldsInSchemaOrder(t *testing.T) {
	schema := testSchema(
		entity.FieldDefinition{Name: "first", Type: entity.FieldTypeString, Required: true},
		entity.FieldDefinition{Name: "second", Type: entity.FieldTypeString, Required: true},
		entity.FieldDefinition{Name: "third", Type: entity.FieldTypeString, Required: true},
	)

	missing := ValidateRecord(schema, true, map[string]interface{}{"second": "present"})
	assert.Equal(t, []string{"first", "third"}, missing)
}
