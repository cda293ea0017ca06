package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// coerceFloat attempts numeric interpretation of an untyped field value.
// Numbers and numeric strings qualify; NaN never does.
func coerceFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, !math.IsNaN(v)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil && !math.IsNaN(f)
	default:
		return 0, false
	}
}

// stringValue renders an untyped field value for searching, grouping and
// export. Nil renders empty.
func stringValue(value interface{}) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// compareValues orders two field values: numerically when both coerce,
// lexicographically (case-insensitive) otherwise. Missing values order first.
func compareValues(a, b interface{}) int {
	af, aok := coerceFloat(a)
	bf, bok := coerceFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(stringValue(a)), strings.ToLower(stringValue(b)))
}
