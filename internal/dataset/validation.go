package dataset

import (
	"github.com/brianstittsr/windsurf-WL4WJ-CHWOne-sub010/internal/entity"
)

// ValidateRecord checks a candidate payload against a dataset schema and
// returns the names of missing required fields, in schema order. A field is
// missing when its key is absent, its value is nil, or its value is an empty
// string. Value shapes are never checked; outside strict mode the schema is
// advisory and the result is always empty.
func ValidateRecord(schema entity.SchemaDefinition, strictMode bool, data map[string]interface{}) []string {
	if !strictMode {
		return nil
	}

	var missing []string
	for _, field := range schema.RequiredFields() {
		value, ok := data[field.Name]
		if !ok || value == nil || value == "" {
			missing = append(missing, field.Name)
		}
	}
	return missing
}
